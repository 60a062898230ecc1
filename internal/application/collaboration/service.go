package collaboration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/pkg/clock"
	"github.com/wcontent-api/internal/pkg/id"
	"github.com/wcontent-api/internal/pkg/validate"
)

type Service interface {
	// Create stores a collaboration post for userID and returns the updated account.
	Create(ctx context.Context, userID string, req domain.CreateCollaborationRequest) (*domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Collaboration, error)
	ListAll(ctx context.Context) ([]domain.Collaboration, error)
	// Delete removes a collaboration. A non-empty actorID must be the creator.
	Delete(ctx context.Context, collaborationID, actorID string) error
	Apply(ctx context.Context, collaborationID string, req domain.CollabApplyRequest) (*domain.CollabRequest, error)
	ListRequests(ctx context.Context, collaborationID string) ([]domain.CollabRequest, error)
}

type collaborationStore interface {
	Put(ctx context.Context, c *domain.Collaboration) error
	Get(ctx context.Context, collaborationID string) (*domain.Collaboration, error)
	List(ctx context.Context) ([]domain.Collaboration, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Collaboration, error)
	Delete(ctx context.Context, collaborationID string) error
	AddRequest(ctx context.Context, collaborationID string, req domain.CollabRequest) error
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	AddCollaboration(ctx context.Context, accountID, collaborationID string) error
	RemoveCollaboration(ctx context.Context, accountID, collaborationID string) error
}

type requestNotifier interface {
	SendNewCollabRequest(ctx context.Context, ownerEmail string, r domain.CollabRequest, title, collaborationID string)
	SendCollabRequestConfirmation(ctx context.Context, email, title string)
}

type ServiceDeps struct {
	Collaborations collaborationStore
	Accounts       accountStore
	Notifier       requestNotifier
	Clock          clock.Clocker
}

type service struct {
	repo     collaborationStore
	accounts accountStore
	notifier requestNotifier
	clock    clock.Clocker
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:     deps.Collaborations,
		accounts: deps.Accounts,
		notifier: deps.Notifier,
		clock:    deps.Clock,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	return s
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateCollaborationRequest) (*domain.Account, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	owner, err := s.accounts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	email := req.Email
	if email == "" {
		email = owner.Email
	}
	link := req.ChannelLink
	if link == "" {
		link = owner.ChannelURL
	}
	c := &domain.Collaboration{
		CollaborationID:   id.New(),
		CreatorID:         owner.AccountID,
		CreatorName:       owner.Username,
		Title:             req.Title,
		ContentCategory:   req.ContentCategory,
		CollaborationType: req.CollaborationType,
		Description:       req.Description,
		Timeline:          req.Timeline,
		Platform:          req.Platform,
		ChannelLink:       link,
		Email:             email,
		Open:              true,
		PostedDate:        s.clock.Now().UTC(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	if err := s.accounts.AddCollaboration(ctx, owner.AccountID, c.CollaborationID); err != nil {
		return nil, fmt.Errorf("link collaboration: %w", err)
	}
	owner.Collaborations = append(owner.Collaborations, c.CollaborationID)
	return owner, nil
}

// ListByUser returns the collaborations posted by userID. Unknown users are NotFound.
func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Collaboration, error) {
	if _, err := s.accounts.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByCreator(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]domain.Collaboration, error) {
	return s.repo.List(ctx)
}

// Delete removes the collaboration and unlinks it from its creator.
// Deleting an unknown id succeeds. An empty actorID means the caller is unauthenticated.
func (s *service) Delete(ctx context.Context, collaborationID, actorID string) error {
	c, err := s.repo.Get(ctx, collaborationID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if actorID != "" && actorID != c.CreatorID {
		return fmt.Errorf("only the creator can delete this collaboration: %w", domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, collaborationID); err != nil {
		return err
	}
	if err := s.accounts.RemoveCollaboration(ctx, c.CreatorID, collaborationID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.WarnContext(ctx, "unlink collaboration from creator", "collaboration_id", collaborationID, "creator_id", c.CreatorID, "err", err)
	}
	return nil
}

func (s *service) Apply(ctx context.Context, collaborationID string, req domain.CollabApplyRequest) (*domain.CollabRequest, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	c, err := s.repo.Get(ctx, collaborationID)
	if err != nil {
		return nil, err
	}
	r := domain.CollabRequest{
		RequestID:      id.New(),
		RequesterName:  strings.TrimSpace(req.RequesterName),
		RequesterEmail: req.RequesterEmail,
		Message:        req.Message,
		AppliedDate:    req.AppliedDate,
	}
	if r.AppliedDate == "" {
		r.AppliedDate = s.clock.Now().UTC().Format(time.DateOnly)
	}
	if err := s.repo.AddRequest(ctx, c.CollaborationID, r); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "collaboration request submitted", "collaboration_id", c.CollaborationID, "request_id", r.RequestID)

	if s.notifier != nil {
		s.notifier.SendNewCollabRequest(ctx, c.Email, r, c.Title, c.CollaborationID)
		s.notifier.SendCollabRequestConfirmation(ctx, r.RequesterEmail, c.Title)
	}
	return &r, nil
}

func (s *service) ListRequests(ctx context.Context, collaborationID string) ([]domain.CollabRequest, error) {
	c, err := s.repo.Get(ctx, collaborationID)
	if err != nil {
		return nil, err
	}
	if c.Requests == nil {
		return []domain.CollabRequest{}, nil
	}
	return c.Requests, nil
}
