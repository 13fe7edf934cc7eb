package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// FlashcardStore defines the interface for flashcard persistence.
type FlashcardStore interface {
	// CreateBatch saves a set of flashcards in one statement. An empty
	// batch is a no-op.
	CreateBatch(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID retrieves one of the user's flashcards.
	// Returns ErrFlashcardNotFound if it does not exist or belongs to
	// someone else.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Flashcard, error)

	// ListByDocument returns the flashcards generated from one of the
	// user's documents, oldest-first.
	ListByDocument(ctx context.Context, userID, documentID uuid.UUID) ([]*domain.Flashcard, error)

	// DeleteByDocument removes all flashcards generated from a document,
	// used when regenerating a deck.
	DeleteByDocument(ctx context.Context, userID, documentID uuid.UUID) error

	// WithTx returns a new FlashcardStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
