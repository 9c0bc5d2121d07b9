package domain

import "time"

// Conversation is the tenant<->owner channel attached to an approved
// booking request. One conversation per request.
type Conversation struct {
	ID        int64     `json:"id"`
	RequestID string    `json:"request_id"`
	TenantID  int64     `json:"tenant_id"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
