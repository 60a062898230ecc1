package opportunity

import (
	"context"
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
	Create(ctx context.Context, ownerID string, req domain.CreateOpportunityRequest) (*domain.Opportunity, error)
	ListAll(ctx context.Context) ([]domain.Opportunity, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Opportunity, error)
	Get(ctx context.Context, opportunityID string) (*domain.Opportunity, error)
	Apply(ctx context.Context, opportunityID string, req domain.ApplyRequest) (*domain.Applicant, error)
	ListApplicants(ctx context.Context, opportunityID string) ([]domain.Applicant, error)
	MyApplications(ctx context.Context, userID string) ([]domain.MyApplication, error)
}

type opportunityStore interface {
	Put(ctx context.Context, o *domain.Opportunity) error
	Get(ctx context.Context, opportunityID string) (*domain.Opportunity, error)
	List(ctx context.Context) ([]domain.Opportunity, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Opportunity, error)
	AddApplicant(ctx context.Context, opportunityID string, a domain.Applicant) error
}

type accountGetter interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

type applicationNotifier interface {
	SendNewApplication(ctx context.Context, ownerEmail string, a domain.Applicant, title, opportunityID string)
	SendApplicationConfirmation(ctx context.Context, email, title string)
}

type ServiceDeps struct {
	Opportunities opportunityStore
	Accounts      accountGetter
	Notifier      applicationNotifier
	Clock         clock.Clocker
}

type service struct {
	repo     opportunityStore
	accounts accountGetter
	notifier applicationNotifier
	clock    clock.Clocker
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		repo:     deps.Opportunities,
		accounts: deps.Accounts,
		notifier: deps.Notifier,
		clock:    deps.Clock,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	return s
}

func (s *service) Create(ctx context.Context, ownerID string, req domain.CreateOpportunityRequest) (*domain.Opportunity, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	owner, err := s.accounts.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	email := req.Email
	if email == "" {
		email = owner.Email
	}
	o := &domain.Opportunity{
		OpportunityID: id.New(),
		OwnerID:       owner.AccountID,
		Title:         req.Title,
		Company:       req.Company,
		Location:      req.Location,
		Description:   req.Description,
		Requirements:  req.Requirements,
		Type:          req.Type,
		SalaryRange:   req.SalaryRange,
		Email:         email,
		PostedDate:    s.clock.Now().UTC(),
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Opportunity, error) {
	return s.repo.List(ctx)
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]domain.Opportunity, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Get(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	return s.repo.Get(ctx, opportunityID)
}

// Apply appends an application to the opportunity and notifies both sides.
func (s *service) Apply(ctx context.Context, opportunityID string, req domain.ApplyRequest) (*domain.Applicant, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrBadRequest)
	}
	o, err := s.repo.Get(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	a := domain.Applicant{
		ApplicantID:     id.New(),
		UserID:          req.UserID,
		Name:            strings.TrimSpace(req.Name),
		Email:           req.Email,
		ResumeURL:       req.ResumeURL,
		ApplicationDate: req.ApplicationDate,
	}
	if a.ApplicationDate == "" {
		a.ApplicationDate = s.clock.Now().UTC().Format(time.DateOnly)
	}
	if err := s.repo.AddApplicant(ctx, o.OpportunityID, a); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "application submitted", "opportunity_id", o.OpportunityID, "applicant_id", a.ApplicantID)

	if s.notifier != nil {
		s.notifier.SendNewApplication(ctx, o.Email, a, o.Title, o.OpportunityID)
		s.notifier.SendApplicationConfirmation(ctx, a.Email, o.Title)
	}
	return &a, nil
}

func (s *service) ListApplicants(ctx context.Context, opportunityID string) ([]domain.Applicant, error) {
	o, err := s.repo.Get(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if o.Applicants == nil {
		return []domain.Applicant{}, nil
	}
	return o.Applicants, nil
}

// MyApplications scans every opportunity for applications made by userID.
// The embedded opportunity is returned without its applicant list.
func (s *service) MyApplications(ctx context.Context, userID string) ([]domain.MyApplication, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.MyApplication{}
	for i := range all {
		o := all[i]
		var mine []domain.Applicant
		for _, a := range o.Applicants {
			if a.UserID != "" && a.UserID == userID {
				mine = append(mine, a)
			}
		}
		if len(mine) == 0 {
			continue
		}
		o.Applicants = nil
		for _, a := range mine {
			out = append(out, domain.MyApplication{
				Opportunity:     &o,
				ApplicantID:     a.ApplicantID,
				ApplicationDate: a.ApplicationDate,
				ResumeURL:       a.ResumeURL,
				Name:            a.Name,
				Email:           a.Email,
			})
		}
	}
	return out, nil
}
