package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// QuizStore defines the interface for quiz persistence. A document has at
// most one quiz; regeneration replaces it.
type QuizStore interface {
	// Upsert saves the quiz, replacing any existing one for the same
	// document.
	Upsert(ctx context.Context, quiz *domain.Quiz) error

	// GetByDocument retrieves the quiz for one of the user's documents.
	// Returns ErrQuizNotFound if none exists.
	GetByDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Quiz, error)

	// WithTx returns a new QuizStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) QuizStore
}
