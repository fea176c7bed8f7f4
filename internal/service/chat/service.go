// Package chat implements message posting and room transcript reads.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
)

var (
	ErrRoomRequired = errors.New("room id is required")
	ErrTextLength   = errors.New("text must be 1-500 characters")
)

// maxTextLen bounds message text on post.
const maxTextLen = 500

// defaultListLimit is used when the caller does not bound the transcript read.
const defaultListLimit = 50

// Store is the message storage this service consumes.
type Store interface {
	CreateMessage(ctx context.Context, msg chat.Message) error
	MessagesByRoom(ctx context.Context, roomID string, limit int) ([]chat.Message, error)
}

// Service encapsulates message persistence rules.
type Service struct {
	messages Store
}

// NewService wires the service to its storage.
func NewService(messages Store) *Service {
	return &Service{messages: messages}
}

// Post stores a message in a room. Anonymous callers post as "guest". The
// room reference is not verified: posting into an id with no room record is
// allowed and the message simply dangles.
func (s *Service) Post(ctx context.Context, roomID, user, text string) (chat.Message, error) {
	if roomID == "" {
		return chat.Message{}, ErrRoomRequired
	}
	if n := len([]rune(text)); n == 0 || n > maxTextLen {
		return chat.Message{}, ErrTextLength
	}
	if user == "" {
		user = "guest"
	}

	msg := chat.Message{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		User:      user,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return chat.Message{}, err
	}
	return msg, nil
}

// List returns up to limit messages for a room, newest first. A non-positive
// limit falls back to the default.
func (s *Service) List(ctx context.Context, roomID string, limit int) ([]chat.Message, error) {
	if roomID == "" {
		return nil, ErrRoomRequired
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.messages.MessagesByRoom(ctx, roomID, limit)
}
