package repository

import (
	"context"
	"errors"
	"time"

	"rentalhub/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type conversationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	RequestID string    `gorm:"column:request_id;uniqueIndex"`
	TenantID  int64     `gorm:"column:tenant_id;index"`
	OwnerID   int64     `gorm:"column:owner_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (conversationModel) TableName() string { return "conversations" }

type messageModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	ConversationID int64     `gorm:"column:conversation_id;index"`
	SenderID       int64     `gorm:"column:sender_id"`
	Content        string    `gorm:"column:content;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainConversation(m conversationModel) *domain.Conversation {
	return &domain.Conversation{
		ID:        m.ID,
		RequestID: m.RequestID,
		TenantID:  m.TenantID,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
	}
}

func toDomainMessage(m messageModel) *domain.Message {
	return &domain.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func (r *ChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	m := conversationModel{
		RequestID: conv.RequestID,
		TenantID:  conv.TenantID,
		OwnerID:   conv.OwnerID,
		CreatedAt: conv.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*conv = *toDomainConversation(m)
	return nil
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	var m conversationModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) GetConversationByRequestID(ctx context.Context, requestID string) (*domain.Conversation, error) {
	var m conversationModel
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainConversation(m), nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*msg = *toDomainMessage(m)
	return nil
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit, offset int) ([]domain.Message, error) {
	var rows []messageModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMessage(m))
	}
	return out, nil
}
