package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db store.DBTX
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface.
func NewPostgresFlashcardStore(db store.DBTX) *PostgresFlashcardStore {
	return &PostgresFlashcardStore{db: db}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// CreateBatch implements store.FlashcardStore.CreateBatch using one
// multi-row INSERT.
func (s *PostgresFlashcardStore) CreateBatch(ctx context.Context, cards []*domain.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}

	const fieldsPerCard = 7
	placeholders := make([]string, 0, len(cards))
	args := make([]any, 0, len(cards)*fieldsPerCard)
	for i, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		base := i * fieldsPerCard
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args,
			card.ID, card.UserID, card.DocumentID,
			card.Question, card.Answer, card.CreatedAt, card.UpdatedAt)
	}

	query := `
		INSERT INTO flashcards (id, user_id, document_id, question, answer, created_at, updated_at)
		VALUES ` + strings.Join(placeholders, ", ")

	_, err := s.db.ExecContext(ctx, query, args...)
	return MapError(err)
}

// GetByID implements store.FlashcardStore.GetByID
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Flashcard, error) {
	query := `
		SELECT id, user_id, document_id, question, answer, created_at, updated_at
		FROM flashcards
		WHERE id = $1 AND user_id = $2
	`
	var card domain.Flashcard
	var createdAt, updatedAt time.Time
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&card.ID, &card.UserID, &card.DocumentID,
		&card.Question, &card.Answer, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, MapError(err)
	}
	card.CreatedAt = createdAt.UTC()
	card.UpdatedAt = updatedAt.UTC()
	return &card, nil
}

// ListByDocument implements store.FlashcardStore.ListByDocument
func (s *PostgresFlashcardStore) ListByDocument(ctx context.Context, userID, documentID uuid.UUID) ([]*domain.Flashcard, error) {
	query := `
		SELECT id, user_id, document_id, question, answer, created_at, updated_at
		FROM flashcards
		WHERE document_id = $1 AND user_id = $2
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, documentID, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	var cards []*domain.Flashcard
	for rows.Next() {
		var card domain.Flashcard
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&card.ID, &card.UserID, &card.DocumentID,
			&card.Question, &card.Answer, &createdAt, &updatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		card.CreatedAt = createdAt.UTC()
		card.UpdatedAt = updatedAt.UTC()
		cards = append(cards, &card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

// DeleteByDocument implements store.FlashcardStore.DeleteByDocument.
// Deleting zero rows is not an error; the document may simply have no deck
// yet.
func (s *PostgresFlashcardStore) DeleteByDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	query := `
		DELETE FROM flashcards
		WHERE document_id = $1 AND user_id = $2
	`
	_, err := s.db.ExecContext(ctx, query, documentID, userID)
	return MapError(err)
}

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{db: tx}
}
