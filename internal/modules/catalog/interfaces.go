package catalog

import (
	"context"

	"rentalhub/internal/domain"
)

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context, types, furnishings []string, maxPrice int) ([]domain.Property, error)
}
