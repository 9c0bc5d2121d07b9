package chat

import "errors"

var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrChatLocked           = errors.New("chat is locked until the request is approved")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyContent         = errors.New("message content cannot be empty")
)
