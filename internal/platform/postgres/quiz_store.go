package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// PostgresQuizStore implements the store.QuizStore interface using a
// PostgreSQL database as the storage backend. Questions are stored as a
// JSONB column; the quiz is always read and written as a whole.
type PostgresQuizStore struct {
	db store.DBTX
}

// NewPostgresQuizStore creates a new PostgreSQL implementation of the
// QuizStore interface.
func NewPostgresQuizStore(db store.DBTX) *PostgresQuizStore {
	return &PostgresQuizStore{db: db}
}

// Ensure PostgresQuizStore implements store.QuizStore interface
var _ store.QuizStore = (*PostgresQuizStore)(nil)

// Upsert implements store.QuizStore.Upsert.
func (s *PostgresQuizStore) Upsert(ctx context.Context, quiz *domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz questions: %w", err)
	}

	query := `
		INSERT INTO quizzes (id, user_id, document_id, questions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (document_id) DO UPDATE
		SET questions = EXCLUDED.questions, updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		quiz.ID,
		quiz.UserID,
		quiz.DocumentID,
		questions,
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	return MapError(err)
}

// GetByDocument implements store.QuizStore.GetByDocument
func (s *PostgresQuizStore) GetByDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Quiz, error) {
	query := `
		SELECT id, user_id, document_id, questions, created_at, updated_at
		FROM quizzes
		WHERE document_id = $1 AND user_id = $2
	`
	var quiz domain.Quiz
	var questions []byte
	var createdAt, updatedAt time.Time
	err := s.db.QueryRowContext(ctx, query, documentID, userID).Scan(
		&quiz.ID, &quiz.UserID, &quiz.DocumentID,
		&questions, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrQuizNotFound
		}
		return nil, MapError(err)
	}

	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quiz questions: %w", err)
	}
	quiz.CreatedAt = createdAt.UTC()
	quiz.UpdatedAt = updatedAt.UTC()
	return &quiz, nil
}

// WithTx implements store.QuizStore.WithTx
func (s *PostgresQuizStore) WithTx(tx *sql.Tx) store.QuizStore {
	return &PostgresQuizStore{db: tx}
}
