package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ChatRole identifies who authored a chat turn.
type ChatRole string

// Possible chat roles
const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// Chat message validation errors
var (
	ErrEmptyChatMessageID     = errors.New("chat message ID cannot be empty")
	ErrEmptyChatMessageUserID = errors.New("chat message user ID cannot be empty")
	ErrEmptyChatContent       = errors.New("chat message content cannot be empty")
	ErrInvalidChatRole        = errors.New("invalid chat role")
)

// ChatMessage is a single turn of the study assistant conversation.
// DocumentID is set when the turn was asked in the context of a document.
type ChatMessage struct {
	ID         uuid.UUID     `json:"id"`
	UserID     uuid.UUID     `json:"user_id"`
	DocumentID uuid.NullUUID `json:"document_id,omitempty"`
	Role       ChatRole      `json:"role"`
	Content    string        `json:"content"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewChatMessage creates a new ChatMessage. documentID may be uuid.Nil for
// conversations not tied to a document.
func NewChatMessage(userID, documentID uuid.UUID, role ChatRole, content string) (*ChatMessage, error) {
	msg := &ChatMessage{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: uuid.NullUUID{UUID: documentID, Valid: documentID != uuid.Nil},
		Role:       role,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the ChatMessage has valid data.
func (m *ChatMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyChatMessageID
	}

	if m.UserID == uuid.Nil {
		return ErrEmptyChatMessageUserID
	}

	if m.Role != ChatRoleUser && m.Role != ChatRoleAssistant {
		return ErrInvalidChatRole
	}

	if m.Content == "" {
		return ErrEmptyChatContent
	}

	return nil
}
