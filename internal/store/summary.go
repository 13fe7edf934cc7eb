package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// SummaryStore defines the interface for summary persistence. A document
// has at most one summary; regeneration replaces it.
type SummaryStore interface {
	// Upsert saves the summary, replacing any existing one for the same
	// document.
	Upsert(ctx context.Context, summary *domain.Summary) error

	// GetByDocument retrieves the summary for one of the user's documents.
	// Returns ErrSummaryNotFound if none exists.
	GetByDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Summary, error)

	// WithTx returns a new SummaryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) SummaryStore
}
