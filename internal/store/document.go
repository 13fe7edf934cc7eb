package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// DocumentStore defines the interface for document persistence. All lookups
// are scoped by owner; a document belonging to another user reads as
// ErrDocumentNotFound.
type DocumentStore interface {
	// Create saves a new document.
	Create(ctx context.Context, doc *domain.Document) error

	// GetByID retrieves one of the user's documents, including its text.
	// Returns ErrDocumentNotFound if it does not exist or belongs to
	// someone else.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Document, error)

	// GetForGeneration retrieves a document by ID alone, including its
	// text. Used by the background generation pipeline, which acts on
	// behalf of the owner recorded on the document.
	GetForGeneration(ctx context.Context, id uuid.UUID) (*domain.Document, error)

	// ListByUser returns the user's documents newest-first, without the
	// text column.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error)

	// UpdateStatus transitions a document's processing status.
	// Returns ErrDocumentNotFound if the document does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error

	// WithTx returns a new DocumentStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) DocumentStore
}
