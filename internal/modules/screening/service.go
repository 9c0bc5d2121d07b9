package screening

import (
	"context"
	"strings"
	"time"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/validator"
	"rentalhub/internal/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	requests   RequestRepository
	properties PropertyRepository
	scorer     scoring.Scorer
}

func NewService(requests RequestRepository, properties PropertyRepository, scorer scoring.Scorer) *Service {
	return &Service{
		requests:   requests,
		properties: properties,
		scorer:     scorer,
	}
}

// Create validates the submitted profile, scores it against the property's
// rent and stores a PENDING request with the profile snapshot embedded.
// Consent is checked before anything else; no scoring call is made and
// nothing is stored when it fails.
func (s *Service) Create(ctx context.Context, tenantID int64, req CreateRequestRequest) (*domain.BookingRequest, error) {
	if !req.Profile.DepositAgreed {
		return nil, ErrConsentRequired
	}
	if violations := validator.Validate(req.Profile); violations != nil {
		return nil, &FieldErrors{Fields: violations}
	}

	property, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}

	exists, err := s.requests.HasPending(ctx, tenantID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	result, err := s.scorer.Score(ctx, scoring.Input{
		Occupation:     req.Profile.Occupation,
		MonthlyIncome:  req.Profile.MonthlyIncome,
		PaxAdults:      req.Profile.PaxAdults,
		PaxKids:        req.Profile.PaxKids,
		ContractPeriod: req.Profile.ContractPeriod,
		MonthlyRent:    property.Price,
	})
	if err != nil {
		return nil, err
	}

	r := &domain.BookingRequest{
		ID:          uuid.NewString(),
		PropertyID:  property.ID,
		TenantID:    tenantID,
		Profile:     req.Profile,
		Status:      domain.RequestPending,
		RentAtTime:  property.Price,
		AIScore:     result.Score,
		AIReasoning: result.Reasoning,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.requests.Create(ctx, r); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	return r, nil
}

// Transition moves a PENDING request to APPROVED or REJECTED. Terminal
// states are immutable; re-transitioning fails and the stored state is
// preserved. Only the owner of the request's property may decide.
func (s *Service) Transition(ctx context.Context, requestID string, newStatus domain.RequestStatus, actorOwnerID int64) (*domain.BookingRequest, error) {
	if !newStatus.Valid() || !newStatus.Terminal() {
		return nil, ErrInvalidTransition
	}

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRequestNotFound
	}

	property, err := s.properties.GetByID(ctx, r.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil || property.OwnerID != actorOwnerID {
		return nil, ErrForbidden
	}

	if r.Status != domain.RequestPending {
		return nil, ErrInvalidTransition
	}

	affected, err := s.requests.UpdateStatusIfPending(ctx, requestID, newStatus)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the race to another decision on the same request.
		return nil, ErrInvalidTransition
	}

	r.Status = newStatus
	return r, nil
}

// ListByStatus returns the owner's requests, newest first. Filter is one of
// ALL, PENDING, APPROVED, REJECTED; empty means ALL.
func (s *Service) ListByStatus(ctx context.Context, ownerID int64, filter string) ([]domain.BookingRequest, error) {
	filter = strings.ToUpper(strings.TrimSpace(filter))
	if filter == "" || filter == "ALL" {
		return s.requests.ListByOwner(ctx, ownerID, "")
	}

	status := domain.RequestStatus(filter)
	if !status.Valid() {
		return nil, ErrValidation
	}
	return s.requests.ListByOwner(ctx, ownerID, status)
}

// MyRequest returns the tenant's latest request for the property, the
// record behind the tenant's status banner and chat gate.
func (s *Service) MyRequest(ctx context.Context, tenantID int64, propertyID string) (*domain.BookingRequest, error) {
	r, err := s.requests.LatestByTenantAndProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRequestNotFound
	}
	return r, nil
}

// isUniqueViolation matches the idx_one_pending_request index on both
// supported databases.
func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
