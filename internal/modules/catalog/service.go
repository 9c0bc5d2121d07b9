package catalog

import (
	"context"

	"rentalhub/internal/domain"
)

type Service struct {
	properties PropertyRepository
}

func NewService(properties PropertyRepository) *Service {
	return &Service{properties: properties}
}

// List returns properties passing every given constraint.
func (s *Service) List(ctx context.Context, f Filter) ([]domain.Property, error) {
	if f.MaxPrice < 0 {
		return nil, ErrValidation
	}
	for _, t := range f.Types {
		if !domain.PropertyType(t).Valid() {
			return nil, ErrValidation
		}
	}
	for _, fu := range f.Furnishings {
		if !domain.Furnishing(fu).Valid() {
			return nil, ErrValidation
		}
	}

	return s.properties.List(ctx, f.Types, f.Furnishings, f.MaxPrice)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}
