package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	fileapp "github.com/wcontent-api/internal/application/file"
	"github.com/wcontent-api/internal/domain"
)

type mockAccountSvc struct{ mock.Mock }

func authResult(args mock.Arguments) (*domain.AuthResult, error) {
	if r, _ := args.Get(0).(*domain.AuthResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func accountResult(args mock.Arguments) (*domain.Account, error) {
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountSvc) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	return authResult(m.Called(ctx, req))
}
func (m *mockAccountSvc) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	return authResult(m.Called(ctx, req))
}
func (m *mockAccountSvc) GoogleAuth(ctx context.Context, idToken string) (*domain.AuthResult, error) {
	return authResult(m.Called(ctx, idToken))
}
func (m *mockAccountSvc) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	return accountResult(m.Called(ctx, accountID))
}
func (m *mockAccountSvc) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Account)
	return list, args.Error(1)
}
func (m *mockAccountSvc) Update(ctx context.Context, accountID string, req domain.UpdateAccountRequest) (*domain.Account, error) {
	return accountResult(m.Called(ctx, accountID, req))
}
func (m *mockAccountSvc) Delete(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

type mockOTPSvc struct{ mock.Mock }

func (m *mockOTPSvc) RequestOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockOTPSvc) VerifyOTP(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

type mockOpportunitySvc struct{ mock.Mock }

func (m *mockOpportunitySvc) Create(ctx context.Context, ownerID string, req domain.CreateOpportunityRequest) (*domain.Opportunity, error) {
	args := m.Called(ctx, ownerID, req)
	o, _ := args.Get(0).(*domain.Opportunity)
	return o, args.Error(1)
}
func (m *mockOpportunitySvc) ListAll(ctx context.Context) ([]domain.Opportunity, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Opportunity)
	return list, args.Error(1)
}
func (m *mockOpportunitySvc) ListByOwner(ctx context.Context, ownerID string) ([]domain.Opportunity, error) {
	args := m.Called(ctx, ownerID)
	list, _ := args.Get(0).([]domain.Opportunity)
	return list, args.Error(1)
}
func (m *mockOpportunitySvc) Get(ctx context.Context, opportunityID string) (*domain.Opportunity, error) {
	args := m.Called(ctx, opportunityID)
	o, _ := args.Get(0).(*domain.Opportunity)
	return o, args.Error(1)
}
func (m *mockOpportunitySvc) Apply(ctx context.Context, opportunityID string, req domain.ApplyRequest) (*domain.Applicant, error) {
	args := m.Called(ctx, opportunityID, req)
	a, _ := args.Get(0).(*domain.Applicant)
	return a, args.Error(1)
}
func (m *mockOpportunitySvc) ListApplicants(ctx context.Context, opportunityID string) ([]domain.Applicant, error) {
	args := m.Called(ctx, opportunityID)
	list, _ := args.Get(0).([]domain.Applicant)
	return list, args.Error(1)
}
func (m *mockOpportunitySvc) MyApplications(ctx context.Context, userID string) ([]domain.MyApplication, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]domain.MyApplication)
	return list, args.Error(1)
}

type mockCollabSvc struct{ mock.Mock }

func (m *mockCollabSvc) Create(ctx context.Context, userID string, req domain.CreateCollaborationRequest) (*domain.Account, error) {
	return accountResult(m.Called(ctx, userID, req))
}
func (m *mockCollabSvc) ListByUser(ctx context.Context, userID string) ([]domain.Collaboration, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]domain.Collaboration)
	return list, args.Error(1)
}
func (m *mockCollabSvc) ListAll(ctx context.Context) ([]domain.Collaboration, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Collaboration)
	return list, args.Error(1)
}
func (m *mockCollabSvc) Delete(ctx context.Context, collaborationID, actorID string) error {
	return m.Called(ctx, collaborationID, actorID).Error(0)
}
func (m *mockCollabSvc) Apply(ctx context.Context, collaborationID string, req domain.CollabApplyRequest) (*domain.CollabRequest, error) {
	args := m.Called(ctx, collaborationID, req)
	r, _ := args.Get(0).(*domain.CollabRequest)
	return r, args.Error(1)
}
func (m *mockCollabSvc) ListRequests(ctx context.Context, collaborationID string) ([]domain.CollabRequest, error) {
	args := m.Called(ctx, collaborationID)
	list, _ := args.Get(0).([]domain.CollabRequest)
	return list, args.Error(1)
}

type mockFileSvc struct{ mock.Mock }

func (m *mockFileSvc) UploadResume(ctx context.Context, in fileapp.ResumeInput) (*domain.UploadedFile, error) {
	args := m.Called(ctx, in)
	f, _ := args.Get(0).(*domain.UploadedFile)
	return f, args.Error(1)
}
