package collaboration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wcontent-api/internal/domain"
)

// --- mocks ---

type mockCollabStore struct{ mock.Mock }

func (m *mockCollabStore) Put(ctx context.Context, c *domain.Collaboration) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCollabStore) Get(ctx context.Context, collaborationID string) (*domain.Collaboration, error) {
	args := m.Called(ctx, collaborationID)
	if c, _ := args.Get(0).(*domain.Collaboration); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCollabStore) List(ctx context.Context) ([]domain.Collaboration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Collaboration), args.Error(1)
}
func (m *mockCollabStore) ListByCreator(ctx context.Context, creatorID string) ([]domain.Collaboration, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).([]domain.Collaboration), args.Error(1)
}
func (m *mockCollabStore) Delete(ctx context.Context, collaborationID string) error {
	return m.Called(ctx, collaborationID).Error(0)
}
func (m *mockCollabStore) AddRequest(ctx context.Context, collaborationID string, req domain.CollabRequest) error {
	return m.Called(ctx, collaborationID, req).Error(0)
}

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccounts) AddCollaboration(ctx context.Context, accountID, collaborationID string) error {
	return m.Called(ctx, accountID, collaborationID).Error(0)
}
func (m *mockAccounts) RemoveCollaboration(ctx context.Context, accountID, collaborationID string) error {
	return m.Called(ctx, accountID, collaborationID).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendNewCollabRequest(ctx context.Context, ownerEmail string, r domain.CollabRequest, title, collaborationID string) {
	m.Called(ctx, ownerEmail, r, title, collaborationID)
}
func (m *mockNotifier) SendCollabRequestConfirmation(ctx context.Context, email, title string) {
	m.Called(ctx, email, title)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

type fixture struct {
	repo     *mockCollabStore
	accounts *mockAccounts
	notifier *mockNotifier
	svc      Service
}

func newFixture() *fixture {
	f := &fixture{repo: &mockCollabStore{}, accounts: &mockAccounts{}, notifier: &mockNotifier{}}
	f.svc = NewService(ServiceDeps{Collaborations: f.repo, Accounts: f.accounts, Notifier: f.notifier, Clock: fixedClock{}})
	return f
}

func owner() *domain.Account {
	return &domain.Account{AccountID: "u1", Username: "alice", Email: "alice@example.com", ChannelURL: "https://youtube.com/@alice"}
}

// --- Create ---

func TestCreate_LinksToAccount(t *testing.T) {
	f := newFixture()
	f.accounts.On("Get", mock.Anything, "u1").Return(owner(), nil)
	f.repo.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Collaboration) bool {
		return c.CreatorID == "u1" && c.CreatorName == "alice" && c.Open &&
			c.Email == "alice@example.com" && c.ChannelLink == "https://youtube.com/@alice"
	})).Return(nil)
	f.accounts.On("AddCollaboration", mock.Anything, "u1", mock.AnythingOfType("string")).Return(nil)

	acc, err := f.svc.Create(context.Background(), "u1", domain.CreateCollaborationRequest{Title: "Podcast", Description: "Guest spot"})

	require.NoError(t, err)
	require.Len(t, acc.Collaborations, 1)
	assert.NotEmpty(t, acc.Collaborations[0])
	f.repo.AssertExpectations(t)
	f.accounts.AssertExpectations(t)
}

func TestCreate_UnknownUser(t *testing.T) {
	f := newFixture()
	f.accounts.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Create(context.Background(), "ghost", domain.CreateCollaborationRequest{Title: "t", Description: "d"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), "u1", domain.CreateCollaborationRequest{Title: "t"})

	assert.Equal(t, domain.KindValidation, domain.Kind(err))
}

// --- ListByUser ---

func TestListByUser_UnknownUser(t *testing.T) {
	f := newFixture()
	f.accounts.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := f.svc.ListByUser(context.Background(), "ghost")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.repo.AssertNotCalled(t, "ListByCreator", mock.Anything, mock.Anything)
}

func TestListByUser(t *testing.T) {
	f := newFixture()
	f.accounts.On("Get", mock.Anything, "u1").Return(owner(), nil)
	f.repo.On("ListByCreator", mock.Anything, "u1").Return([]domain.Collaboration{{CollaborationID: "c1"}}, nil)

	got, err := f.svc.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// --- Delete ---

func TestDelete_UnlinksCreator(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c1").Return(&domain.Collaboration{CollaborationID: "c1", CreatorID: "u1"}, nil)
	f.repo.On("Delete", mock.Anything, "c1").Return(nil)
	f.accounts.On("RemoveCollaboration", mock.Anything, "u1", "c1").Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), "c1", ""))
	f.repo.AssertExpectations(t)
	f.accounts.AssertExpectations(t)
}

func TestDelete_UnknownIsNoop(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c9").Return(nil, domain.ErrNotFound)

	require.NoError(t, f.svc.Delete(context.Background(), "c9", "u2"))
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_UnlinkFailureIgnored(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c1").Return(&domain.Collaboration{CollaborationID: "c1", CreatorID: "u1"}, nil)
	f.repo.On("Delete", mock.Anything, "c1").Return(nil)
	f.accounts.On("RemoveCollaboration", mock.Anything, "u1", "c1").Return(errors.New("throttled"))

	assert.NoError(t, f.svc.Delete(context.Background(), "c1", ""))
}

func TestDelete_CreatorMayDelete(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c1").Return(&domain.Collaboration{CollaborationID: "c1", CreatorID: "u1"}, nil)
	f.repo.On("Delete", mock.Anything, "c1").Return(nil)
	f.accounts.On("RemoveCollaboration", mock.Anything, "u1", "c1").Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), "c1", "u1"))
	f.repo.AssertExpectations(t)
}

func TestDelete_OtherAccountForbidden(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c1").Return(&domain.Collaboration{CollaborationID: "c1", CreatorID: "u1"}, nil)

	err := f.svc.Delete(context.Background(), "c1", "u2")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.accounts.AssertNotCalled(t, "RemoveCollaboration", mock.Anything, mock.Anything, mock.Anything)
}

// --- Apply ---

func TestApply_NotifiesBothSides(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c1").Return(&domain.Collaboration{CollaborationID: "c1", Title: "Podcast", Email: "alice@example.com"}, nil)
	f.repo.On("AddRequest", mock.Anything, "c1", mock.MatchedBy(func(r domain.CollabRequest) bool {
		return r.AppliedDate == "2026-03-01" && r.RequestID != ""
	})).Return(nil)
	f.notifier.On("SendNewCollabRequest", mock.Anything, "alice@example.com", mock.Anything, "Podcast", "c1").Return()
	f.notifier.On("SendCollabRequestConfirmation", mock.Anything, "bob@example.com", "Podcast").Return()

	r, err := f.svc.Apply(context.Background(), "c1", domain.CollabApplyRequest{
		RequesterName: " Bob ", RequesterEmail: "bob@example.com", Message: "Let's talk",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bob", r.RequesterName)
	f.repo.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestApply_MissingCollaboration(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c9").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Apply(context.Background(), "c9", domain.CollabApplyRequest{RequesterName: "Bob", RequesterEmail: "bob@example.com"})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.notifier.AssertNotCalled(t, "SendNewCollabRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApply_RequiresRequesterEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Apply(context.Background(), "c1", domain.CollabApplyRequest{RequesterName: "Bob"})

	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestListRequests(t *testing.T) {
	f := newFixture()
	f.repo.On("Get", mock.Anything, "c1").Return(&domain.Collaboration{CollaborationID: "c1"}, nil)

	got, err := f.svc.ListRequests(context.Background(), "c1")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
