package repository

import (
	"context"
	"errors"
	"time"

	"rentalhub/internal/domain"

	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// profileColumns flattens the embedded profile snapshot. Snapshot columns
// are written once at create time and never updated, which keeps past
// requests immune to later profile edits.
type profileColumns struct {
	FullName       string `gorm:"column:profile_full_name"`
	NricOrPassport string `gorm:"column:profile_nric_or_passport"`
	Gender         string `gorm:"column:profile_gender"`
	Nationality    string `gorm:"column:profile_nationality"`
	Race           string `gorm:"column:profile_race"`
	Occupation     string `gorm:"column:profile_occupation"`
	CompanyName    string `gorm:"column:profile_company_name"`
	OfficeLocation string `gorm:"column:profile_office_location"`
	MonthlyIncome  int    `gorm:"column:profile_monthly_income"`
	PaxAdults      int    `gorm:"column:profile_pax_adults"`
	PaxKids        int    `gorm:"column:profile_pax_kids"`
	MoveInDate     string `gorm:"column:profile_move_in_date"`
	ContractPeriod int    `gorm:"column:profile_contract_period"`
	DepositAgreed  bool   `gorm:"column:profile_deposit_agreed"`
	Bio            string `gorm:"column:profile_bio;type:text"`
}

type requestModel struct {
	// Seq is the insertion-order tie-breaker for equal created_at values.
	Seq         int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ID          string    `gorm:"column:id;uniqueIndex"`
	PropertyID  string    `gorm:"column:property_id;index"`
	TenantID    int64     `gorm:"column:tenant_id;index"`
	Profile     profileColumns `gorm:"embedded"`
	Status      string    `gorm:"column:status;index"`
	RentAtTime  int       `gorm:"column:rent_at_time"`
	AIScore     int       `gorm:"column:ai_score"`
	AIReasoning string    `gorm:"column:ai_reasoning;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (requestModel) TableName() string { return "booking_requests" }

func toDomainRequest(m requestModel) *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		TenantID:   m.TenantID,
		Profile: domain.TenantProfile{
			FullName:       m.Profile.FullName,
			NricOrPassport: m.Profile.NricOrPassport,
			Gender:         m.Profile.Gender,
			Nationality:    m.Profile.Nationality,
			Race:           m.Profile.Race,
			Occupation:     m.Profile.Occupation,
			CompanyName:    m.Profile.CompanyName,
			OfficeLocation: m.Profile.OfficeLocation,
			MonthlyIncome:  m.Profile.MonthlyIncome,
			PaxAdults:      m.Profile.PaxAdults,
			PaxKids:        m.Profile.PaxKids,
			MoveInDate:     m.Profile.MoveInDate,
			ContractPeriod: m.Profile.ContractPeriod,
			DepositAgreed:  m.Profile.DepositAgreed,
			Bio:            m.Profile.Bio,
		},
		Status:      domain.RequestStatus(m.Status),
		RentAtTime:  m.RentAtTime,
		AIScore:     m.AIScore,
		AIReasoning: m.AIReasoning,
		CreatedAt:   m.CreatedAt,
	}
}

func toRequestModel(r *domain.BookingRequest) requestModel {
	return requestModel{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		TenantID:   r.TenantID,
		Profile: profileColumns{
			FullName:       r.Profile.FullName,
			NricOrPassport: r.Profile.NricOrPassport,
			Gender:         r.Profile.Gender,
			Nationality:    r.Profile.Nationality,
			Race:           r.Profile.Race,
			Occupation:     r.Profile.Occupation,
			CompanyName:    r.Profile.CompanyName,
			OfficeLocation: r.Profile.OfficeLocation,
			MonthlyIncome:  r.Profile.MonthlyIncome,
			PaxAdults:      r.Profile.PaxAdults,
			PaxKids:        r.Profile.PaxKids,
			MoveInDate:     r.Profile.MoveInDate,
			ContractPeriod: r.Profile.ContractPeriod,
			DepositAgreed:  r.Profile.DepositAgreed,
			Bio:            r.Profile.Bio,
		},
		Status:      string(r.Status),
		RentAtTime:  r.RentAtTime,
		AIScore:     r.AIScore,
		AIReasoning: r.AIReasoning,
		CreatedAt:   r.CreatedAt,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.BookingRequest) error {
	m := toRequestModel(req)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*req = *toDomainRequest(m)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.BookingRequest, error) {
	var m requestModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainRequest(m), nil
}

// UpdateStatusIfPending flips the status only while the stored row is still
// PENDING. The guard lives in the WHERE clause so two concurrent decisions
// cannot both win; the caller inspects the affected count.
func (r *RequestRepository) UpdateStatusIfPending(ctx context.Context, id string, status domain.RequestStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("id = ? AND status = ?", id, string(domain.RequestPending)).
		Update("status", string(status))
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// ListByOwner returns requests for all properties of the owner,
// most-recent-first; insertion order breaks created_at ties. An empty status
// means no status filter.
func (r *RequestRepository) ListByOwner(ctx context.Context, ownerID int64, status domain.RequestStatus) ([]domain.BookingRequest, error) {
	q := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Joins("JOIN properties ON properties.id = booking_requests.property_id").
		Where("properties.owner_id = ?", ownerID)
	if status != "" {
		q = q.Where("booking_requests.status = ?", string(status))
	}

	var rows []requestModel
	err := q.Order("booking_requests.created_at DESC, booking_requests.seq DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.BookingRequest, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

// LatestByTenantAndProperty returns the tenant's newest request for the
// property, or nil when none exists.
func (r *RequestRepository) LatestByTenantAndProperty(ctx context.Context, tenantID int64, propertyID string) (*domain.BookingRequest, error) {
	var m requestModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("created_at DESC, seq DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainRequest(m), nil
}

// HasPending reports whether the tenant already has an open request for the
// property. The partial unique index idx_one_pending_request is the hard
// guarantee; this check exists to give a clean error on the common path.
func (r *RequestRepository) HasPending(ctx context.Context, tenantID int64, propertyID string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&requestModel{}).
		Where("tenant_id = ? AND property_id = ? AND status = ?", tenantID, propertyID, string(domain.RequestPending)).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}
