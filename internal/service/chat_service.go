package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// defaultHistoryLimit caps chat history reads when the caller does not
// specify a limit.
const defaultHistoryLimit = 50

// ChatService runs the study assistant conversation. Replies are grounded
// in a document's text when the conversation is tied to one.
type ChatService interface {
	// SendMessage stores the user's message, produces a reply, stores it,
	// and returns the assistant's message. documentID may be uuid.Nil for
	// conversations not tied to a document.
	SendMessage(ctx context.Context, userID, documentID uuid.UUID, message string) (*domain.ChatMessage, error)

	// History returns the most recent messages oldest-first, capped at
	// limit (defaultHistoryLimit when limit <= 0).
	History(ctx context.Context, userID uuid.UUID, documentID uuid.NullUUID, limit int) ([]*domain.ChatMessage, error)
}

// chatServiceImpl implements the ChatService interface
type chatServiceImpl struct {
	chats     store.ChatStore
	documents store.DocumentStore
	generator generation.Generator
	db        *sql.DB
	logger    *slog.Logger
	runTx     func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewChatService creates a new ChatService.
// It returns an error if any of the required dependencies are nil.
func NewChatService(
	chats store.ChatStore,
	documents store.DocumentStore,
	generator generation.Generator,
	db *sql.DB,
	logger *slog.Logger,
) (ChatService, error) {
	if chats == nil {
		return nil, errors.New("chat store cannot be nil")
	}
	if documents == nil {
		return nil, errors.New("document store cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &chatServiceImpl{
		chats:     chats,
		documents: documents,
		generator: generator,
		db:        db,
		logger:    logger.With("component", "chat_service"),
		runTx:     store.RunInTransaction,
	}, nil
}

// SendMessage produces and persists one conversation turn. The user message
// and the reply are stored together so the transcript never shows an
// unanswered question.
func (s *chatServiceImpl) SendMessage(ctx context.Context, userID, documentID uuid.UUID, message string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	var documentText string
	if documentID != uuid.Nil {
		doc, err := s.documents.GetByID(ctx, userID, documentID)
		if err != nil {
			if errors.Is(err, store.ErrDocumentNotFound) {
				return nil, ErrDocumentNotFound
			}
			return nil, fmt.Errorf("failed to load chat document: %w", err)
		}
		documentText = doc.Text
	}

	userMsg, err := domain.NewChatMessage(userID, documentID, domain.ChatRoleUser, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}

	reply, err := s.generator.RespondToChat(ctx, message, documentText)
	if err != nil {
		s.logger.Error("failed to generate chat reply",
			"error", err,
			"user_id", userID,
			"document_id", documentID)
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}

	assistantMsg, err := domain.NewChatMessage(userID, documentID, domain.ChatRoleAssistant, reply)
	if err != nil {
		return nil, fmt.Errorf("failed to create reply message: %w", err)
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txChats := s.chats.WithTx(tx)
		if err := txChats.Create(ctx, userMsg); err != nil {
			return fmt.Errorf("failed to save user message: %w", err)
		}
		if err := txChats.Create(ctx, assistantMsg); err != nil {
			return fmt.Errorf("failed to save assistant message: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to save chat turn",
			"error", err,
			"user_id", userID,
			"document_id", documentID)
		return nil, err
	}

	s.logger.Debug("chat turn completed",
		"user_id", userID,
		"document_id", documentID,
		"reply_length", len(reply))

	return assistantMsg, nil
}

// History returns the most recent messages oldest-first.
func (s *chatServiceImpl) History(ctx context.Context, userID uuid.UUID, documentID uuid.NullUUID, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	messages, err := s.chats.ListRecent(ctx, userID, documentID, limit)
	if err != nil {
		s.logger.Error("failed to load chat history",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return messages, nil
}
