package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rentalhub/internal/domain"
)

type Service struct {
	chats      ChatRepository
	requests   RequestRepository
	properties PropertyRepository
	hub        *Hub
}

func NewService(chats ChatRepository, requests RequestRepository, properties PropertyRepository, hub *Hub) *Service {
	return &Service{
		chats:      chats,
		requests:   requests,
		properties: properties,
		hub:        hub,
	}
}

// OpenConversation returns the conversation for an approved request,
// creating it on first access. The chat gate is derived from the request's
// current status on every call, never cached.
func (s *Service) OpenConversation(ctx context.Context, userID int64, requestID string) (*domain.Conversation, error) {
	req, ownerID, err := s.gate(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if userID != req.TenantID && userID != ownerID {
		return nil, ErrNotParticipant
	}

	existing, err := s.chats.GetConversationByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	conv := &domain.Conversation{
		RequestID: requestID,
		TenantID:  req.TenantID,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chats.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conv, nil
}

// SendMessage persists the message and pushes it to the peer when online.
func (s *Service) SendMessage(ctx context.Context, senderID, conversationID int64, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	conv, err := s.conversationFor(ctx, senderID, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.chats.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("store message: %w", err)
	}

	if s.hub != nil {
		peer := conv.TenantID
		if senderID == conv.TenantID {
			peer = conv.OwnerID
		}
		_ = s.hub.SendToUser(peer, ToMessageResponse(msg, peer))
	}

	return msg, nil
}

func (s *Service) ListMessages(ctx context.Context, userID, conversationID int64, limit, offset int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.conversationFor(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	return s.chats.ListMessages(ctx, conversationID, limit, offset)
}

// conversationFor loads the conversation, re-derives the gate from the
// request's current status and verifies the caller participates.
func (s *Service) conversationFor(ctx context.Context, userID, conversationID int64) (*domain.Conversation, error) {
	conv, err := s.chats.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	if userID != conv.TenantID && userID != conv.OwnerID {
		return nil, ErrNotParticipant
	}

	if _, _, err := s.gate(ctx, conv.RequestID); err != nil {
		return nil, err
	}

	return conv, nil
}

// gate loads the request and enforces the chat lock: unlocked iff the
// request is APPROVED. Returns the owning user of the request's property.
func (s *Service) gate(ctx context.Context, requestID string) (*domain.BookingRequest, int64, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, 0, fmt.Errorf("find request: %w", err)
	}
	if req == nil {
		return nil, 0, ErrRequestNotFound
	}
	if !req.Status.ChatUnlocked() {
		return nil, 0, ErrChatLocked
	}

	property, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, 0, fmt.Errorf("find property: %w", err)
	}
	if property == nil {
		return nil, 0, ErrRequestNotFound
	}

	return req, property.OwnerID, nil
}
