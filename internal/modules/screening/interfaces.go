package screening

import (
	"context"

	"rentalhub/internal/domain"
)

// RequestRepository is the storage contract for booking requests.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) error
	GetByID(ctx context.Context, id string) (*domain.BookingRequest, error)
	UpdateStatusIfPending(ctx context.Context, id string, status domain.RequestStatus) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64, status domain.RequestStatus) ([]domain.BookingRequest, error)
	LatestByTenantAndProperty(ctx context.Context, tenantID int64, propertyID string) (*domain.BookingRequest, error)
	HasPending(ctx context.Context, tenantID int64, propertyID string) (bool, error)
}

// PropertyRepository is the catalog lookup the workflow needs.
type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}
