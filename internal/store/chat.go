package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// ChatStore defines the interface for chat transcript persistence.
type ChatStore interface {
	// Create appends one message to the user's transcript.
	Create(ctx context.Context, message *domain.ChatMessage) error

	// ListRecent returns the user's most recent messages, oldest-first,
	// capped at limit. documentID narrows the transcript to one document
	// when valid.
	ListRecent(ctx context.Context, userID uuid.UUID, documentID uuid.NullUUID, limit int) ([]*domain.ChatMessage, error)

	// WithTx returns a new ChatStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ChatStore
}
