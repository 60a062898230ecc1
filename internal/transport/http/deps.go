package http

import (
	"context"
	"io"
	"time"

	"github.com/wcontent-api/internal/application/verification"
	"github.com/wcontent-api/internal/domain"
	"github.com/wcontent-api/internal/infrastructure/google"
	jwtinfra "github.com/wcontent-api/internal/infrastructure/jwt"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Accounts       AccountRepository
	Opportunities  OpportunityRepository
	Collaborations CollaborationRepository
	OTPStore       verification.Store
	Resumes        ObjectStore
	Notifier       Notifier
	JWTProvider    *jwtinfra.Provider
	Google         GoogleVerifier
}

// AccountRepository is the minimal interface the router requires from an account store.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	Delete(ctx context.Context, accountID string) error
	AddCollaboration(ctx context.Context, accountID, collaborationID string) error
	RemoveCollaboration(ctx context.Context, accountID, collaborationID string) error
}

// OpportunityRepository is the minimal interface the router requires from an opportunity store.
type OpportunityRepository interface {
	Put(ctx context.Context, o *domain.Opportunity) error
	Get(ctx context.Context, opportunityID string) (*domain.Opportunity, error)
	List(ctx context.Context) ([]domain.Opportunity, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Opportunity, error)
	AddApplicant(ctx context.Context, opportunityID string, a domain.Applicant) error
}

// CollaborationRepository is the minimal interface the router requires from a collaboration store.
type CollaborationRepository interface {
	Put(ctx context.Context, c *domain.Collaboration) error
	Get(ctx context.Context, collaborationID string) (*domain.Collaboration, error)
	List(ctx context.Context) ([]domain.Collaboration, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Collaboration, error)
	Delete(ctx context.Context, collaborationID string) error
	AddRequest(ctx context.Context, collaborationID string, req domain.CollabRequest) error
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Notifier sends the best-effort emails. A nil Notifier disables them.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string)
	SendWelcome(ctx context.Context, email string)
	SendNewApplication(ctx context.Context, ownerEmail string, a domain.Applicant, title, opportunityID string)
	SendApplicationConfirmation(ctx context.Context, email, title string)
	SendNewCollabRequest(ctx context.Context, ownerEmail string, r domain.CollabRequest, title, collaborationID string)
	SendCollabRequestConfirmation(ctx context.Context, email, title string)
}

// GoogleVerifier checks Google ID tokens.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*google.Identity, error)
}
