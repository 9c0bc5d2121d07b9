package chat

import (
	"time"

	"rentalhub/internal/domain"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}

type ConversationResponse struct {
	ID        int64  `json:"id"`
	RequestID string `json:"request_id"`
	TenantID  int64  `json:"tenant_id"`
	OwnerID   int64  `json:"owner_id"`
	CreatedAt string `json:"created_at"`
}

type MessageResponse struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversation_id"`
	SenderID       int64  `json:"sender_id"`
	Content        string `json:"content"`
	IsMine         bool   `json:"is_mine"`
	CreatedAt      string `json:"created_at"`
}

func ToConversationResponse(c *domain.Conversation) *ConversationResponse {
	if c == nil {
		return nil
	}
	return &ConversationResponse{
		ID:        c.ID,
		RequestID: c.RequestID,
		TenantID:  c.TenantID,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func ToMessageResponse(m *domain.Message, currentUserID int64) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsMine:         m.SenderID == currentUserID,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}
