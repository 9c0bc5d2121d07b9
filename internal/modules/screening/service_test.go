package screening

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentalhub/internal/domain"
	"rentalhub/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.BookingRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatusIfPending(ctx context.Context, id string, status domain.RequestStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRequestRepository) ListByOwner(ctx context.Context, ownerID int64, status domain.RequestStatus) ([]domain.BookingRequest, error) {
	args := m.Called(ctx, ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) LatestByTenantAndProperty(ctx context.Context, tenantID int64, propertyID string) (*domain.BookingRequest, error) {
	args := m.Called(ctx, tenantID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

func (m *MockRequestRepository) HasPending(ctx context.Context, tenantID int64, propertyID string) (bool, error) {
	args := m.Called(ctx, tenantID, propertyID)
	return args.Bool(0), args.Error(1)
}

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, in scoring.Input) (scoring.Result, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(scoring.Result), args.Error(1)
}

func validProfile() domain.TenantProfile {
	return domain.TenantProfile{
		FullName:       "Ahmad bin Razak",
		NricOrPassport: "950101-14-XXXX",
		Nationality:    "Malaysian",
		Race:           "Malay",
		Occupation:     "Software Engineer",
		MonthlyIncome:  8500,
		PaxAdults:      2,
		PaxKids:        0,
		MoveInDate:     "2026-09-01",
		ContractPeriod: 12,
		DepositAgreed:  true,
	}
}

func testProperty() *domain.Property {
	return &domain.Property{
		ID:      "kl_1",
		Title:   "Vista Damansara Condo",
		Price:   2300,
		Type:    domain.PropertyCondo,
		OwnerID: 1,
	}
}

func TestService_Create_Success(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)
	mockScorer := new(MockScorer)

	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)
	mockRequests.On("HasPending", mock.Anything, int64(42), "kl_1").Return(false, nil)
	mockScorer.On("Score", mock.Anything, mock.Anything).Return(scoring.Result{Score: 85, Reasoning: "Strong income-to-rent ratio."}, nil)
	mockRequests.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockRequests, mockProperties, mockScorer)

	r, err := service.Create(context.Background(), 42, CreateRequestRequest{
		PropertyID: "kl_1",
		Profile:    validProfile(),
	})

	assert.NoError(t, err)
	assert.NotNil(t, r)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Equal(t, 85, r.AIScore)
	assert.Equal(t, 2300, r.RentAtTime)
	assert.Equal(t, int64(42), r.TenantID)
	mockRequests.AssertExpectations(t)
}

// Missing consent must short-circuit before any scoring or storage happens.
func TestService_Create_ConsentRequired(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)
	mockScorer := new(MockScorer)

	service := NewService(mockRequests, mockProperties, mockScorer)

	profile := validProfile()
	profile.DepositAgreed = false

	_, err := service.Create(context.Background(), 42, CreateRequestRequest{
		PropertyID: "kl_1",
		Profile:    profile,
	})

	assert.ErrorIs(t, err, ErrConsentRequired)
	mockScorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything)
	mockRequests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_ValidationError(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)
	mockScorer := new(MockScorer)

	service := NewService(mockRequests, mockProperties, mockScorer)

	profile := validProfile()
	profile.PaxAdults = 0

	_, err := service.Create(context.Background(), 42, CreateRequestRequest{
		PropertyID: "kl_1",
		Profile:    profile,
	})

	assert.ErrorIs(t, err, ErrValidation)
	mockRequests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_PropertyNotFound(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)
	mockScorer := new(MockScorer)

	mockProperties.On("GetByID", mock.Anything, "kl_404").Return(nil, nil)

	service := NewService(mockRequests, mockProperties, mockScorer)

	_, err := service.Create(context.Background(), 42, CreateRequestRequest{
		PropertyID: "kl_404",
		Profile:    validProfile(),
	})

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestService_Create_DuplicatePending(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)
	mockScorer := new(MockScorer)

	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)
	mockRequests.On("HasPending", mock.Anything, int64(42), "kl_1").Return(true, nil)

	service := NewService(mockRequests, mockProperties, mockScorer)

	_, err := service.Create(context.Background(), 42, CreateRequestRequest{
		PropertyID: "kl_1",
		Profile:    validProfile(),
	})

	assert.ErrorIs(t, err, ErrDuplicateRequest)
	mockScorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything)
}

// The partial unique index is the hard guarantee; a constraint violation on
// insert surfaces as the same duplicate error the pre-check produces.
func TestService_Create_UniqueViolationOnInsert(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)
	mockScorer := new(MockScorer)

	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)
	mockRequests.On("HasPending", mock.Anything, int64(42), "kl_1").Return(false, nil)
	mockScorer.On("Score", mock.Anything, mock.Anything).Return(scoring.Result{Score: 80, Reasoning: "ok"}, nil)
	mockRequests.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: idx_one_pending_request"))

	service := NewService(mockRequests, mockProperties, mockScorer)

	_, err := service.Create(context.Background(), 42, CreateRequestRequest{
		PropertyID: "kl_1",
		Profile:    validProfile(),
	})

	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

// Race and nationality stay out of the scoring input even though the profile
// carries them.
func TestService_Create_ScoringInputExcludesProtectedFields(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)
	mockScorer := new(MockScorer)

	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)
	mockRequests.On("HasPending", mock.Anything, int64(42), "kl_1").Return(false, nil)
	mockScorer.On("Score", mock.Anything, scoring.Input{
		Occupation:     "Software Engineer",
		MonthlyIncome:  8500,
		PaxAdults:      2,
		PaxKids:        0,
		ContractPeriod: 12,
		MonthlyRent:    2300,
	}).Return(scoring.Result{Score: 90, Reasoning: "ok"}, nil)
	mockRequests.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockRequests, mockProperties, mockScorer)

	_, err := service.Create(context.Background(), 42, CreateRequestRequest{
		PropertyID: "kl_1",
		Profile:    validProfile(),
	})

	assert.NoError(t, err)
	mockScorer.AssertExpectations(t)
}

func TestService_Transition_Approve(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)

	pending := &domain.BookingRequest{
		ID:         "req_1",
		PropertyID: "kl_1",
		TenantID:   42,
		Status:     domain.RequestPending,
		CreatedAt:  time.Now().UTC(),
	}
	mockRequests.On("GetByID", mock.Anything, "req_1").Return(pending, nil)
	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)
	mockRequests.On("UpdateStatusIfPending", mock.Anything, "req_1", domain.RequestApproved).Return(int64(1), nil)

	service := NewService(mockRequests, mockProperties, new(MockScorer))

	r, err := service.Transition(context.Background(), "req_1", domain.RequestApproved, 1)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestApproved, r.Status)
	mockRequests.AssertExpectations(t)
}

// Terminal states are immutable: deciding an already approved request fails
// and never touches storage.
func TestService_Transition_AlreadyTerminal(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)

	approved := &domain.BookingRequest{
		ID:         "req_1",
		PropertyID: "kl_1",
		TenantID:   42,
		Status:     domain.RequestApproved,
	}
	mockRequests.On("GetByID", mock.Anything, "req_1").Return(approved, nil)
	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)

	service := NewService(mockRequests, mockProperties, new(MockScorer))

	_, err := service.Transition(context.Background(), "req_1", domain.RequestRejected, 1)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	mockRequests.AssertNotCalled(t, "UpdateStatusIfPending", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Transition_TargetMustBeTerminal(t *testing.T) {
	service := NewService(new(MockRequestRepository), new(MockPropertyRepository), new(MockScorer))

	_, err := service.Transition(context.Background(), "req_1", domain.RequestPending, 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = service.Transition(context.Background(), "req_1", domain.RequestStatus("CANCELLED"), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Transition_Forbidden(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)

	pending := &domain.BookingRequest{
		ID:         "req_1",
		PropertyID: "kl_1",
		TenantID:   42,
		Status:     domain.RequestPending,
	}
	mockRequests.On("GetByID", mock.Anything, "req_1").Return(pending, nil)
	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)

	service := NewService(mockRequests, mockProperties, new(MockScorer))

	// Property belongs to owner 1, actor is owner 2.
	_, err := service.Transition(context.Background(), "req_1", domain.RequestApproved, 2)

	assert.ErrorIs(t, err, ErrForbidden)
	mockRequests.AssertNotCalled(t, "UpdateStatusIfPending", mock.Anything, mock.Anything, mock.Anything)
}

// Two owners deciding the same request at once: the loser sees zero affected
// rows and gets the same invalid-transition error as a stale retry.
func TestService_Transition_LostRace(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockProperties := new(MockPropertyRepository)

	pending := &domain.BookingRequest{
		ID:         "req_1",
		PropertyID: "kl_1",
		TenantID:   42,
		Status:     domain.RequestPending,
	}
	mockRequests.On("GetByID", mock.Anything, "req_1").Return(pending, nil)
	mockProperties.On("GetByID", mock.Anything, "kl_1").Return(testProperty(), nil)
	mockRequests.On("UpdateStatusIfPending", mock.Anything, "req_1", domain.RequestRejected).Return(int64(0), nil)

	service := NewService(mockRequests, mockProperties, new(MockScorer))

	_, err := service.Transition(context.Background(), "req_1", domain.RequestRejected, 1)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Transition_RequestNotFound(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockRequests.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	service := NewService(mockRequests, new(MockPropertyRepository), new(MockScorer))

	_, err := service.Transition(context.Background(), "missing", domain.RequestApproved, 1)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestService_ListByStatus_Filter(t *testing.T) {
	mockRequests := new(MockRequestRepository)

	pendingOnly := []domain.BookingRequest{
		{ID: "req_1", Status: domain.RequestPending},
	}
	mockRequests.On("ListByOwner", mock.Anything, int64(1), domain.RequestPending).Return(pendingOnly, nil)

	service := NewService(mockRequests, new(MockPropertyRepository), new(MockScorer))

	out, err := service.ListByStatus(context.Background(), 1, "pending")

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, domain.RequestPending, out[0].Status)
}

func TestService_ListByStatus_AllAndEmpty(t *testing.T) {
	mockRequests := new(MockRequestRepository)
	mockRequests.On("ListByOwner", mock.Anything, int64(1), domain.RequestStatus("")).Return([]domain.BookingRequest{}, nil).Twice()

	service := NewService(mockRequests, new(MockPropertyRepository), new(MockScorer))

	_, err := service.ListByStatus(context.Background(), 1, "")
	assert.NoError(t, err)

	_, err = service.ListByStatus(context.Background(), 1, "ALL")
	assert.NoError(t, err)

	mockRequests.AssertExpectations(t)
}

func TestService_ListByStatus_InvalidFilter(t *testing.T) {
	service := NewService(new(MockRequestRepository), new(MockPropertyRepository), new(MockScorer))

	_, err := service.ListByStatus(context.Background(), 1, "CANCELLED")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_MyRequest(t *testing.T) {
	mockRequests := new(MockRequestRepository)

	latest := &domain.BookingRequest{ID: "req_9", PropertyID: "kl_1", TenantID: 42, Status: domain.RequestApproved}
	mockRequests.On("LatestByTenantAndProperty", mock.Anything, int64(42), "kl_1").Return(latest, nil)
	mockRequests.On("LatestByTenantAndProperty", mock.Anything, int64(42), "kl_2").Return(nil, nil)

	service := NewService(mockRequests, new(MockPropertyRepository), new(MockScorer))

	r, err := service.MyRequest(context.Background(), 42, "kl_1")
	assert.NoError(t, err)
	assert.Equal(t, "req_9", r.ID)

	_, err = service.MyRequest(context.Background(), 42, "kl_2")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}
