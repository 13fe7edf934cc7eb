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

// PostgresReviewStore implements the store.ReviewStore interface using a
// PostgreSQL database as the storage backend.
type PostgresReviewStore struct {
	db store.DBTX
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface.
func NewPostgresReviewStore(db store.DBTX) *PostgresReviewStore {
	return &PostgresReviewStore{db: db}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

const reviewColumns = `flashcard_id, user_id, due, stability, difficulty,
	elapsed_days, scheduled_days, reps, lapses, state, last_review, updated_at`

// CreateBatch implements store.ReviewStore.CreateBatch.
func (s *PostgresReviewStore) CreateBatch(ctx context.Context, reviews []*domain.FlashcardReview) error {
	if len(reviews) == 0 {
		return nil
	}

	const fieldsPerReview = 12
	placeholders := make([]string, 0, len(reviews))
	args := make([]any, 0, len(reviews)*fieldsPerReview)
	for i, review := range reviews {
		if err := review.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		base := i * fieldsPerReview
		nums := make([]string, fieldsPerReview)
		for j := range nums {
			nums[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(nums, ", ")+")")
		args = append(args,
			review.FlashcardID, review.UserID, review.Due,
			review.Stability, review.Difficulty,
			review.ElapsedDays, review.ScheduledDays,
			review.Reps, review.Lapses, review.State,
			nullableTime(review.LastReview), review.UpdatedAt)
	}

	query := `INSERT INTO flashcard_reviews (` + reviewColumns + `) VALUES ` +
		strings.Join(placeholders, ", ")

	_, err := s.db.ExecContext(ctx, query, args...)
	return MapError(err)
}

// GetByFlashcard implements store.ReviewStore.GetByFlashcard
func (s *PostgresReviewStore) GetByFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) (*domain.FlashcardReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM flashcard_reviews
		WHERE flashcard_id = $1 AND user_id = $2
	`
	review, err := scanReview(s.db.QueryRowContext(ctx, query, flashcardID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrReviewNotFound
		}
		return nil, MapError(err)
	}
	return review, nil
}

// Update implements store.ReviewStore.Update
func (s *PostgresReviewStore) Update(ctx context.Context, review *domain.FlashcardReview) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE flashcard_reviews
		SET due = $1, stability = $2, difficulty = $3, elapsed_days = $4,
			scheduled_days = $5, reps = $6, lapses = $7, state = $8,
			last_review = $9, updated_at = $10
		WHERE flashcard_id = $11 AND user_id = $12
	`
	result, err := s.db.ExecContext(ctx, query,
		review.Due, review.Stability, review.Difficulty,
		review.ElapsedDays, review.ScheduledDays,
		review.Reps, review.Lapses, review.State,
		nullableTime(review.LastReview), review.UpdatedAt,
		review.FlashcardID, review.UserID,
	)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrReviewNotFound)
}

// ListDue implements store.ReviewStore.ListDue
func (s *PostgresReviewStore) ListDue(ctx context.Context, userID uuid.UUID, due time.Time, limit int) ([]*domain.FlashcardReview, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM flashcard_reviews
		WHERE user_id = $1 AND due <= $2
		ORDER BY due ASC
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, due, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	var reviews []*domain.FlashcardReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, MapError(err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return reviews, nil
}

// WithTx implements store.ReviewStore.WithTx
func (s *PostgresReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &PostgresReviewStore{db: tx}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*domain.FlashcardReview, error) {
	var review domain.FlashcardReview
	var due, updatedAt time.Time
	var lastReview sql.NullTime
	err := row.Scan(
		&review.FlashcardID, &review.UserID, &due,
		&review.Stability, &review.Difficulty,
		&review.ElapsedDays, &review.ScheduledDays,
		&review.Reps, &review.Lapses, &review.State,
		&lastReview, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	review.Due = due.UTC()
	review.UpdatedAt = updatedAt.UTC()
	if lastReview.Valid {
		review.LastReview = lastReview.Time.UTC()
	}
	return &review, nil
}

// nullableTime maps the zero time to NULL so "never reviewed" round-trips.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
