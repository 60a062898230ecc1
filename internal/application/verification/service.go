package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/pkg/id"
	"github.com/wcontent-api/internal/pkg/validate"
)

const (
	DefaultTTL        = 10 * time.Minute
	DefaultCodeLength = 6
)

// Store holds pending one-time codes keyed by identity.
//
// Validate must be atomic: for a live entry, exactly one of several concurrent
// calls with the right code returns true and the entry is gone afterwards.
// A wrong code leaves the entry in place. Missing, expired and mismatched
// entries all report (false, nil); the error is reserved for backend failures.
type Store interface {
	Put(ctx context.Context, identity, code string, ttl time.Duration) error
	Validate(ctx context.Context, identity, code string) (bool, error)
}

type Service interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
}

type accountLookup interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// otpNotifier delivers the code out of band. Delivery is best-effort and never reports back.
type otpNotifier interface {
	SendOTP(ctx context.Context, email, code string)
}

type ServiceDeps struct {
	Store      Store
	Accounts   accountLookup
	Notifier   otpNotifier
	TTL        time.Duration
	CodeLength int
	// Generate overrides code generation; defaults to id.Digits.
	Generate func(n int) (string, error)
}

type service struct {
	store    Store
	accounts accountLookup
	notifier otpNotifier
	ttl      time.Duration
	length   int
	generate func(n int) (string, error)
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		store:    deps.Store,
		accounts: deps.Accounts,
		notifier: deps.Notifier,
		ttl:      deps.TTL,
		length:   deps.CodeLength,
		generate: deps.Generate,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if s.length < 1 {
		s.length = DefaultCodeLength
	}
	if s.generate == nil {
		s.generate = id.Digits
	}
	return s
}

func (s *service) RequestOTP(ctx context.Context, email string) error {
	email = NormalizeIdentity(email)
	if !validate.Email(email) {
		return fmt.Errorf("a valid email is required: %w", domain.ErrBadRequest)
	}
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if exists {
		return fmt.Errorf("User with email %s already exists: %w", email, domain.ErrConflict)
	}

	code, err := s.generate(s.length)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.store.Put(ctx, email, code, s.ttl); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	slog.InfoContext(ctx, "otp issued", "email", email, "ttl", s.ttl.String())

	if s.notifier != nil {
		s.notifier.SendOTP(ctx, email, code)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	email = NormalizeIdentity(email)
	if email == "" || code == "" {
		return fmt.Errorf("Invalid or expired OTP: %w", domain.ErrInvalidOTP)
	}
	ok, err := s.store.Validate(ctx, email, code)
	if err != nil {
		return fmt.Errorf("validate otp: %w", err)
	}
	if !ok {
		return fmt.Errorf("Invalid or expired OTP: %w", domain.ErrInvalidOTP)
	}
	return nil
}

// NormalizeIdentity canonicalises an email so issue and validate agree on the key.
func NormalizeIdentity(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
