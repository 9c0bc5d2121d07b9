package repository

import (
	"context"
	"encoding/json"
	"errors"

	"rentalhub/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	Title       string `gorm:"column:title"`
	Location    string `gorm:"column:location"`
	Price       int    `gorm:"column:price"`
	Type        string `gorm:"column:type;index"`
	Furnishing  string `gorm:"column:furnishing;index"`
	Rooms       int    `gorm:"column:rooms"`
	Bathrooms   int    `gorm:"column:bathrooms"`
	Sqft        int    `gorm:"column:sqft"`
	Tags        string `gorm:"column:tags;type:text"`
	Description string `gorm:"column:description;type:text"`
	OwnerID     int64  `gorm:"column:owner_id;index"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	var tags []string
	if m.Tags != "" {
		_ = json.Unmarshal([]byte(m.Tags), &tags)
	}

	return &domain.Property{
		ID:          m.ID,
		Title:       m.Title,
		Location:    m.Location,
		Price:       m.Price,
		Type:        domain.PropertyType(m.Type),
		Furnishing:  domain.Furnishing(m.Furnishing),
		Rooms:       m.Rooms,
		Bathrooms:   m.Bathrooms,
		Sqft:        m.Sqft,
		Tags:        tags,
		Description: m.Description,
		OwnerID:     m.OwnerID,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	var tags string
	if len(p.Tags) > 0 {
		b, _ := json.Marshal(p.Tags)
		tags = string(b)
	}

	return propertyModel{
		ID:          p.ID,
		Title:       p.Title,
		Location:    p.Location,
		Price:       p.Price,
		Type:        string(p.Type),
		Furnishing:  string(p.Furnishing),
		Rooms:       p.Rooms,
		Bathrooms:   p.Bathrooms,
		Sqft:        p.Sqft,
		Tags:        tags,
		Description: p.Description,
		OwnerID:     p.OwnerID,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	var m propertyModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainProperty(m), nil
}

// List returns properties matching all of the given constraints. Empty
// type/furnishing sets and a zero maxPrice mean "no constraint".
func (r *PropertyRepository) List(ctx context.Context, types, furnishings []string, maxPrice int) ([]domain.Property, error) {
	q := r.db.WithContext(ctx).Model(&propertyModel{})
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	if len(furnishings) > 0 {
		q = q.Where("furnishing IN ?", furnishings)
	}
	if maxPrice > 0 {
		q = q.Where("price <= ?", maxPrice)
	}

	var rows []propertyModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}
