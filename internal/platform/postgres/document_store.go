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

// PostgresDocumentStore implements the store.DocumentStore interface using
// a PostgreSQL database as the storage backend.
type PostgresDocumentStore struct {
	db store.DBTX
}

// NewPostgresDocumentStore creates a new PostgreSQL implementation of the
// DocumentStore interface.
func NewPostgresDocumentStore(db store.DBTX) *PostgresDocumentStore {
	return &PostgresDocumentStore{db: db}
}

// Ensure PostgresDocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*PostgresDocumentStore)(nil)

// Create implements store.DocumentStore.Create
func (s *PostgresDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO documents (id, user_id, title, file_name, text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.FileName,
		doc.Text,
		doc.Status,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return MapError(err)
}

// GetByID implements store.DocumentStore.GetByID. The user scope in the
// WHERE clause makes another user's document read as not found.
func (s *PostgresDocumentStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Document, error) {
	query := `
		SELECT id, user_id, title, file_name, text, status, created_at, updated_at
		FROM documents
		WHERE id = $1 AND user_id = $2
	`
	var doc domain.Document
	var createdAt, updatedAt time.Time
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&doc.ID, &doc.UserID, &doc.Title, &doc.FileName, &doc.Text,
		&doc.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrDocumentNotFound
		}
		return nil, MapError(err)
	}
	doc.CreatedAt = createdAt.UTC()
	doc.UpdatedAt = updatedAt.UTC()
	return &doc, nil
}

// GetForGeneration retrieves a document by ID alone, for the background
// task path where ownership was established when the task was enqueued.
func (s *PostgresDocumentStore) GetForGeneration(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query := `
		SELECT id, user_id, title, file_name, text, status, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	var doc domain.Document
	var createdAt, updatedAt time.Time
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.UserID, &doc.Title, &doc.FileName, &doc.Text,
		&doc.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrDocumentNotFound
		}
		return nil, MapError(err)
	}
	doc.CreatedAt = createdAt.UTC()
	doc.UpdatedAt = updatedAt.UTC()
	return &doc, nil
}

// ListByUser implements store.DocumentStore.ListByUser. The text column is
// omitted; list views never need the full document body.
func (s *PostgresDocumentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error) {
	query := `
		SELECT id, user_id, title, file_name, status, created_at, updated_at
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		var doc domain.Document
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&doc.ID, &doc.UserID, &doc.Title, &doc.FileName,
			&doc.Status, &createdAt, &updatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		doc.CreatedAt = createdAt.UTC()
		doc.UpdatedAt = updatedAt.UTC()
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return docs, nil
}

// UpdateStatus implements store.DocumentStore.UpdateStatus
func (s *PostgresDocumentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	query := `
		UPDATE documents
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrDocumentNotFound)
}

// WithTx implements store.DocumentStore.WithTx
func (s *PostgresDocumentStore) WithTx(tx *sql.Tx) store.DocumentStore {
	return &PostgresDocumentStore{db: tx}
}
