package chat

import (
	"context"

	"rentalhub/internal/domain"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *domain.Conversation) error
	GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error)
	GetConversationByRequestID(ctx context.Context, requestID string) (*domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*domain.BookingRequest, error)
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}
