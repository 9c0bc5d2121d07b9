package screening

import (
	"time"

	"rentalhub/internal/domain"
)

type CreateRequestRequest struct {
	PropertyID string               `json:"property_id" binding:"required"`
	Profile    domain.TenantProfile `json:"profile" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RequestResponse struct {
	ID           string               `json:"id"`
	PropertyID   string               `json:"property_id"`
	TenantID     int64                `json:"tenant_id"`
	Profile      domain.TenantProfile `json:"tenant_profile"`
	Status       domain.RequestStatus `json:"status"`
	AIScore      int                  `json:"ai_score"`
	AIReasoning  string               `json:"ai_reasoning"`
	ChatUnlocked bool                 `json:"chat_unlocked"`
	CreatedAt    string               `json:"created_at"`
}

func ToRequestResponse(r *domain.BookingRequest) *RequestResponse {
	if r == nil {
		return nil
	}
	return &RequestResponse{
		ID:           r.ID,
		PropertyID:   r.PropertyID,
		TenantID:     r.TenantID,
		Profile:      r.Profile,
		Status:       r.Status,
		AIScore:      r.AIScore,
		AIReasoning:  r.AIReasoning,
		ChatUnlocked: r.Status.ChatUnlocked(),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}
