package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// ReviewStore defines the interface for spaced-repetition state persistence.
// One row exists per flashcard, created with the card and updated on every
// review.
type ReviewStore interface {
	// CreateBatch saves initial review state for a set of new flashcards.
	CreateBatch(ctx context.Context, reviews []*domain.FlashcardReview) error

	// GetByFlashcard retrieves the review state for one of the user's
	// flashcards. Returns ErrReviewNotFound if none exists.
	GetByFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) (*domain.FlashcardReview, error)

	// Update persists rescheduled review state after a review.
	Update(ctx context.Context, review *domain.FlashcardReview) error

	// ListDue returns review state for the user's cards due at or before
	// the given time, soonest-first, capped at limit.
	ListDue(ctx context.Context, userID uuid.UUID, due time.Time, limit int) ([]*domain.FlashcardReview, error)

	// WithTx returns a new ReviewStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ReviewStore
}
