package domain

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// Terminal reports whether the status can never change again.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// ChatUnlocked derives the chat gate from the status alone. Chat with the
// owner opens if and only if the request was approved.
func (s RequestStatus) ChatUnlocked() bool {
	return s == RequestApproved
}

// TenantProfile is the screening questionnaire a tenant submits with a
// request. It is embedded into the request by value, so later submissions
// never alter past requests.
//
// Race and nationality are profile metadata shown to the owner; they are
// deliberately kept out of automated scoring (see internal/scoring).
type TenantProfile struct {
	FullName       string `json:"full_name" validate:"required"`
	NricOrPassport string `json:"nric_or_passport" validate:"required"`
	Gender         string `json:"gender,omitempty"`
	Nationality    string `json:"nationality"`
	Race           string `json:"race,omitempty"`
	Occupation     string `json:"occupation" validate:"required"`
	CompanyName    string `json:"company_name"`
	OfficeLocation string `json:"office_location"`
	MonthlyIncome  int    `json:"monthly_income" validate:"gte=0"`
	PaxAdults      int    `json:"pax_adults" validate:"gte=1"`
	PaxKids        int    `json:"pax_kids" validate:"gte=0"`
	MoveInDate     string `json:"move_in_date"`
	ContractPeriod int    `json:"contract_period" validate:"gte=1"`
	DepositAgreed  bool   `json:"deposit_agreed"`
	Bio            string `json:"bio,omitempty"`
}

// BookingRequest links one profile submission to one property. Status starts
// at PENDING; APPROVED and REJECTED are terminal.
type BookingRequest struct {
	ID          string        `json:"id"`
	PropertyID  string        `json:"property_id"`
	TenantID    int64         `json:"tenant_id"`
	Profile     TenantProfile `json:"tenant_profile"`
	Status      RequestStatus `json:"status"`
	RentAtTime  int           `json:"rent_at_time"`
	AIScore     int           `json:"ai_score"`
	AIReasoning string        `json:"ai_reasoning"`
	CreatedAt   time.Time     `json:"created_at"`
}
