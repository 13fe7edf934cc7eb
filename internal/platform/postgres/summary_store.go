package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// PostgresSummaryStore implements the store.SummaryStore interface using a
// PostgreSQL database as the storage backend.
type PostgresSummaryStore struct {
	db store.DBTX
}

// NewPostgresSummaryStore creates a new PostgreSQL implementation of the
// SummaryStore interface.
func NewPostgresSummaryStore(db store.DBTX) *PostgresSummaryStore {
	return &PostgresSummaryStore{db: db}
}

// Ensure PostgresSummaryStore implements store.SummaryStore interface
var _ store.SummaryStore = (*PostgresSummaryStore)(nil)

// Upsert implements store.SummaryStore.Upsert. The unique constraint on
// document_id makes regeneration replace the previous summary in place.
func (s *PostgresSummaryStore) Upsert(ctx context.Context, summary *domain.Summary) error {
	if err := summary.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO summaries (id, user_id, document_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (document_id) DO UPDATE
		SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		summary.ID,
		summary.UserID,
		summary.DocumentID,
		summary.Content,
		summary.CreatedAt,
		summary.UpdatedAt,
	)
	return MapError(err)
}

// GetByDocument implements store.SummaryStore.GetByDocument
func (s *PostgresSummaryStore) GetByDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Summary, error) {
	query := `
		SELECT id, user_id, document_id, content, created_at, updated_at
		FROM summaries
		WHERE document_id = $1 AND user_id = $2
	`
	var summary domain.Summary
	var createdAt, updatedAt time.Time
	err := s.db.QueryRowContext(ctx, query, documentID, userID).Scan(
		&summary.ID, &summary.UserID, &summary.DocumentID,
		&summary.Content, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrSummaryNotFound
		}
		return nil, MapError(err)
	}
	summary.CreatedAt = createdAt.UTC()
	summary.UpdatedAt = updatedAt.UTC()
	return &summary, nil
}

// WithTx implements store.SummaryStore.WithTx
func (s *PostgresSummaryStore) WithTx(tx *sql.Tx) store.SummaryStore {
	return &PostgresSummaryStore{db: tx}
}
