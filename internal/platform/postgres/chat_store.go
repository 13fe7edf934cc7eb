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

// PostgresChatStore implements the store.ChatStore interface using a
// PostgreSQL database as the storage backend.
type PostgresChatStore struct {
	db store.DBTX
}

// NewPostgresChatStore creates a new PostgreSQL implementation of the
// ChatStore interface.
func NewPostgresChatStore(db store.DBTX) *PostgresChatStore {
	return &PostgresChatStore{db: db}
}

// Ensure PostgresChatStore implements store.ChatStore interface
var _ store.ChatStore = (*PostgresChatStore)(nil)

// Create implements store.ChatStore.Create
func (s *PostgresChatStore) Create(ctx context.Context, message *domain.ChatMessage) error {
	if err := message.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO chat_messages (id, user_id, document_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		message.ID,
		message.UserID,
		message.DocumentID,
		message.Role,
		message.Content,
		message.CreatedAt,
	)
	return MapError(err)
}

// ListRecent implements store.ChatStore.ListRecent. The inner query selects
// the newest rows; the outer one restores chronological order.
func (s *PostgresChatStore) ListRecent(ctx context.Context, userID uuid.UUID, documentID uuid.NullUUID, limit int) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, user_id, document_id, role, content, created_at
		FROM (
			SELECT id, user_id, document_id, role, content, created_at
			FROM chat_messages
			WHERE user_id = $1 AND ($2::uuid IS NULL OR document_id = $2)
			ORDER BY created_at DESC
			LIMIT $3
		) recent
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, userID, documentID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		var createdAt time.Time
		if err := rows.Scan(
			&msg.ID, &msg.UserID, &msg.DocumentID,
			&msg.Role, &msg.Content, &createdAt,
		); err != nil {
			return nil, MapError(err)
		}
		msg.CreatedAt = createdAt.UTC()
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return messages, nil
}

// WithTx implements store.ChatStore.WithTx
func (s *PostgresChatStore) WithTx(tx *sql.Tx) store.ChatStore {
	return &PostgresChatStore{db: tx}
}
