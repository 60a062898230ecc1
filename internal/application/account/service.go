package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wcontent-api/internal/application/verification"
	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/infrastructure/google"
	"github.com/wcontent-api/internal/pkg/clock"
	"github.com/wcontent-api/internal/pkg/id"
	"github.com/wcontent-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldUsername     = "username"
	fieldEmail        = "email"
	fieldPasswordHash = "password_hash"
	fieldUserType     = "user_type"
	fieldChannelID    = "channel_id"
	fieldChannelName  = "channel_name"
	fieldChannelURL   = "channel_url"
	fieldGoogleSub    = "google_sub"
)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	GoogleAuth(ctx context.Context, idToken string) (*domain.AuthResult, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, accountID string, req domain.UpdateAccountRequest) (*domain.Account, error)
	Delete(ctx context.Context, accountID string) error
}

type accountStore interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	Delete(ctx context.Context, accountID string) error
}

type tokenIssuer interface {
	Issue(subject, accountID string) (string, error)
}

type googleVerifier interface {
	Verify(ctx context.Context, idToken string) (*google.Identity, error)
}

type welcomeNotifier interface {
	SendWelcome(ctx context.Context, email string)
}

type ServiceDeps struct {
	Accounts accountStore
	Tokens   tokenIssuer
	Google   googleVerifier
	Notifier welcomeNotifier
	Clock    clock.Clocker
}

type service struct {
	repo     accountStore
	tokens   tokenIssuer
	google   googleVerifier
	notifier welcomeNotifier
	clock    clock.Clocker
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:     deps.Accounts,
		tokens:   deps.Tokens,
		google:   deps.Google,
		notifier: deps.Notifier,
		clock:    deps.Clock,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	return s
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	req.Email = verification.NormalizeIdentity(req.Email)
	if err := checkDraft(req); err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("User with email %s already exists: %w", req.Email, domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	a := &domain.Account{
		AccountID:    id.New(),
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
		UserType:     req.UserType,
		Verified:     true,
		AuthProvider: domain.AuthProviderLocal,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.UserType == domain.UserTypeChannelOwner {
		a.ChannelID = req.ChannelID
		a.ChannelName = req.ChannelName
		a.ChannelURL = req.ChannelURL
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "account registered", "account_id", a.AccountID, "user_type", a.UserType)

	if s.notifier != nil {
		s.notifier.SendWelcome(ctx, a.Email)
	}
	return s.authResult(a)
}

type requiredField struct{ value, msg string }

// checkDraft reports the first missing field with its own message.
func checkDraft(req domain.RegisterRequest) error {
	required := []requiredField{
		{req.Username, "Username is required"},
		{req.Password, "Password is required"},
		{req.Email, "Email is required"},
		{req.UserType, "User type is required"},
	}
	if req.UserType == domain.UserTypeChannelOwner {
		required = append(required,
			requiredField{req.ChannelID, "Channel ID is required for Channel Owners"},
			requiredField{req.ChannelName, "Channel Name is required for Channel Owners"},
			requiredField{req.ChannelURL, "Channel URL is required for Channel Owners"},
		)
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s: %w", f.msg, domain.ErrBadRequest)
		}
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	req.Email = verification.NormalizeIdentity(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	a, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if a.PasswordHash == "" {
		return nil, fmt.Errorf("account uses Google sign-in: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("Invalid password: %w", domain.ErrUnauthorized)
	}
	return s.authResult(a)
}

// GoogleAuth signs in with a Google ID token, creating a Creator account on first use.
// An existing local account with the same email is linked to the Google subject.
func (s *service) GoogleAuth(ctx context.Context, idToken string) (*domain.AuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("ID token is required: %w", domain.ErrBadRequest)
	}
	ident, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.GetByGoogleSub(ctx, ident.Sub)
	if err == nil {
		return s.authResult(a)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	email := verification.NormalizeIdentity(ident.Email)
	a, err = s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.repo.Update(ctx, a.AccountID, map[string]interface{}{fieldGoogleSub: ident.Sub}); err != nil {
			return nil, err
		}
		a.GoogleSub = ident.Sub
		return s.authResult(a)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	now := s.clock.Now().UTC()
	name := ident.Name
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	a = &domain.Account{
		AccountID:    id.New(),
		Username:     name,
		Email:        email,
		UserType:     domain.UserTypeCreator,
		Verified:     true,
		AuthProvider: domain.AuthProviderGoogle,
		GoogleSub:    ident.Sub,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "account created from google sign-in", "account_id", a.AccountID)
	if s.notifier != nil {
		s.notifier.SendWelcome(ctx, a.Email)
	}
	return s.authResult(a)
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.Get(ctx, accountID)
}

func (s *service) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, accountID string, req domain.UpdateAccountRequest) (*domain.Account, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	updates := map[string]interface{}{}
	if req.Username != nil {
		updates[fieldUsername] = *req.Username
	}
	if req.Email != nil {
		email := verification.NormalizeIdentity(*req.Email)
		cur, err := s.repo.Get(ctx, accountID)
		if err != nil {
			return nil, err
		}
		if email != cur.Email {
			exists, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("User with email %s already exists: %w", email, domain.ErrConflict)
			}
			updates[fieldEmail] = email
		}
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates[fieldPasswordHash] = string(hash)
	}
	if req.UserType != nil {
		switch *req.UserType {
		case domain.UserTypeChannelOwner, domain.UserTypeCreator:
			updates[fieldUserType] = *req.UserType
		default:
			return nil, fmt.Errorf("invalid user type: %w", domain.ErrBadRequest)
		}
	}
	if req.ChannelID != nil {
		updates[fieldChannelID] = *req.ChannelID
	}
	if req.ChannelName != nil {
		updates[fieldChannelName] = *req.ChannelName
	}
	if req.ChannelURL != nil {
		updates[fieldChannelURL] = *req.ChannelURL
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, accountID)
	}
	if err := s.repo.Update(ctx, accountID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, accountID)
}

func (s *service) Delete(ctx context.Context, accountID string) error {
	return s.repo.Delete(ctx, accountID)
}

func (s *service) authResult(a *domain.Account) (*domain.AuthResult, error) {
	token, err := s.tokens.Issue(a.Email, a.AccountID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.AuthResult{Token: token, User: a}, nil
}
