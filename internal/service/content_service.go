package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// ContentService persists and serves generated study material. The save
// methods are called by the background generation pipeline; the read methods
// back the HTTP API.
type ContentService interface {
	// SaveSummary stores the document's summary, replacing any previous one.
	SaveSummary(ctx context.Context, userID, documentID uuid.UUID, content string) error

	// SaveFlashcards replaces the document's deck with the given drafts and
	// creates initial review state for each new card.
	SaveFlashcards(ctx context.Context, userID, documentID uuid.UUID, drafts []generation.CardDraft) error

	// SaveQuiz stores the document's quiz, replacing any previous one.
	SaveQuiz(ctx context.Context, userID, documentID uuid.UUID, questions []domain.QuizQuestion) error

	// GetSummary retrieves the summary for one of the user's documents.
	GetSummary(ctx context.Context, userID, documentID uuid.UUID) (*domain.Summary, error)

	// ListFlashcards returns the deck for one of the user's documents,
	// oldest-first.
	ListFlashcards(ctx context.Context, userID, documentID uuid.UUID) ([]*domain.Flashcard, error)

	// GetQuiz retrieves the quiz for one of the user's documents.
	GetQuiz(ctx context.Context, userID, documentID uuid.UUID) (*domain.Quiz, error)
}

// contentServiceImpl implements the ContentService interface
type contentServiceImpl struct {
	summaries store.SummaryStore
	cards     store.FlashcardStore
	quizzes   store.QuizStore
	reviews   store.ReviewStore
	db        *sql.DB
	logger    *slog.Logger
	runTx     func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewContentService creates a new ContentService.
// It returns an error if any of the required stores are nil.
func NewContentService(
	summaries store.SummaryStore,
	cards store.FlashcardStore,
	quizzes store.QuizStore,
	reviews store.ReviewStore,
	db *sql.DB,
	logger *slog.Logger,
) (ContentService, error) {
	if summaries == nil || cards == nil || quizzes == nil || reviews == nil {
		return nil, errors.New("content service stores cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &contentServiceImpl{
		summaries: summaries,
		cards:     cards,
		quizzes:   quizzes,
		reviews:   reviews,
		db:        db,
		logger:    logger.With("component", "content_service"),
		runTx:     store.RunInTransaction,
	}, nil
}

// SaveSummary stores the document's summary, replacing any previous one.
func (s *contentServiceImpl) SaveSummary(ctx context.Context, userID, documentID uuid.UUID, content string) error {
	summary, err := domain.NewSummary(userID, documentID, content)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}

	if err := s.summaries.Upsert(ctx, summary); err != nil {
		s.logger.Error("failed to save summary",
			"error", err,
			"document_id", documentID)
		return fmt.Errorf("failed to save summary: %w", err)
	}

	s.logger.Debug("summary saved",
		"document_id", documentID,
		"length", len(content))
	return nil
}

// SaveFlashcards replaces the document's deck atomically. Deleting the old
// cards cascades to their review state, so the new deck always starts fresh.
func (s *contentServiceImpl) SaveFlashcards(ctx context.Context, userID, documentID uuid.UUID, drafts []generation.CardDraft) error {
	cards := make([]*domain.Flashcard, 0, len(drafts))
	reviews := make([]*domain.FlashcardReview, 0, len(drafts))
	for _, draft := range drafts {
		card, err := domain.NewFlashcard(userID, documentID, draft.Question, draft.Answer)
		if err != nil {
			return fmt.Errorf("failed to create flashcard: %w", err)
		}
		review, err := domain.NewFlashcardReview(card.ID, userID)
		if err != nil {
			return fmt.Errorf("failed to create review state: %w", err)
		}
		cards = append(cards, card)
		reviews = append(reviews, review)
	}

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.cards.WithTx(tx).DeleteByDocument(ctx, userID, documentID); err != nil {
			return fmt.Errorf("failed to clear previous deck: %w", err)
		}
		if err := s.cards.WithTx(tx).CreateBatch(ctx, cards); err != nil {
			return fmt.Errorf("failed to save flashcards: %w", err)
		}
		if err := s.reviews.WithTx(tx).CreateBatch(ctx, reviews); err != nil {
			return fmt.Errorf("failed to save review state: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to save flashcard deck",
			"error", err,
			"document_id", documentID,
			"card_count", len(cards))
		return err
	}

	s.logger.Debug("flashcard deck saved",
		"document_id", documentID,
		"card_count", len(cards))
	return nil
}

// SaveQuiz stores the document's quiz, replacing any previous one.
func (s *contentServiceImpl) SaveQuiz(ctx context.Context, userID, documentID uuid.UUID, questions []domain.QuizQuestion) error {
	quiz, err := domain.NewQuiz(userID, documentID, questions)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	if err := s.quizzes.Upsert(ctx, quiz); err != nil {
		s.logger.Error("failed to save quiz",
			"error", err,
			"document_id", documentID)
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	s.logger.Debug("quiz saved",
		"document_id", documentID,
		"question_count", len(questions))
	return nil
}

// GetSummary retrieves the summary for one of the user's documents.
func (s *contentServiceImpl) GetSummary(ctx context.Context, userID, documentID uuid.UUID) (*domain.Summary, error) {
	summary, err := s.summaries.GetByDocument(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, store.ErrSummaryNotFound) {
			return nil, ErrSummaryNotReady
		}
		return nil, fmt.Errorf("failed to retrieve summary: %w", err)
	}
	return summary, nil
}

// ListFlashcards returns the deck for one of the user's documents.
func (s *contentServiceImpl) ListFlashcards(ctx context.Context, userID, documentID uuid.UUID) ([]*domain.Flashcard, error) {
	cards, err := s.cards.ListByDocument(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flashcards: %w", err)
	}
	return cards, nil
}

// GetQuiz retrieves the quiz for one of the user's documents.
func (s *contentServiceImpl) GetQuiz(ctx context.Context, userID, documentID uuid.UUID) (*domain.Quiz, error) {
	quiz, err := s.quizzes.GetByDocument(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, store.ErrQuizNotFound) {
			return nil, ErrQuizNotReady
		}
		return nil, fmt.Errorf("failed to retrieve quiz: %w", err)
	}
	return quiz, nil
}
