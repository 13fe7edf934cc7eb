package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// defaultDueLimit caps due-card listings when the caller does not specify
// a limit.
const defaultDueLimit = 20

// DueCard pairs a flashcard with its current review state for study
// sessions.
type DueCard struct {
	Flashcard *domain.Flashcard       `json:"flashcard"`
	Review    *domain.FlashcardReview `json:"review"`
}

// ReviewService schedules flashcard reviews using the FSRS spaced-repetition
// algorithm.
type ReviewService interface {
	// SubmitReview records a rating for a flashcard and reschedules it.
	// Rating is one of "again", "hard", "good", or "easy".
	SubmitReview(ctx context.Context, userID, flashcardID uuid.UUID, rating string) (*domain.FlashcardReview, error)

	// ListDueCards returns the user's cards due now, soonest-first, capped
	// at limit (defaultDueLimit when limit <= 0).
	ListDueCards(ctx context.Context, userID uuid.UUID, limit int) ([]*DueCard, error)
}

// reviewServiceImpl implements the ReviewService interface
type reviewServiceImpl struct {
	reviews  store.ReviewStore
	cards    store.FlashcardStore
	params   fsrs.Parameters
	timeFunc func() time.Time // Injectable for testing
	logger   *slog.Logger
}

// NewReviewService creates a new ReviewService with default FSRS parameters.
// It returns an error if any of the required stores are nil.
func NewReviewService(
	reviews store.ReviewStore,
	cards store.FlashcardStore,
	logger *slog.Logger,
) (ReviewService, error) {
	if reviews == nil {
		return nil, errors.New("review store cannot be nil")
	}
	if cards == nil {
		return nil, errors.New("flashcard store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		reviews:  reviews,
		cards:    cards,
		params:   fsrs.DefaultParam(),
		timeFunc: time.Now,
		logger:   logger.With("component", "review_service"),
	}, nil
}

// ParseRating maps a rating name to its FSRS rating. Comparison is
// case-insensitive.
func ParseRating(rating string) (fsrs.Rating, error) {
	switch strings.ToLower(strings.TrimSpace(rating)) {
	case "again":
		return fsrs.Again, nil
	case "hard":
		return fsrs.Hard, nil
	case "good":
		return fsrs.Good, nil
	case "easy":
		return fsrs.Easy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}
}

// SubmitReview records a rating and reschedules the card.
func (s *reviewServiceImpl) SubmitReview(ctx context.Context, userID, flashcardID uuid.UUID, rating string) (*domain.FlashcardReview, error) {
	fsrsRating, err := ParseRating(rating)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByFlashcard(ctx, userID, flashcardID)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to load review state: %w", err)
	}

	now := s.timeFunc().UTC()
	scheduling := s.params.Repeat(review.ToFSRS(), now)
	info, ok := scheduling[fsrsRating]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRating, rating)
	}

	review.ApplyFSRS(info.Card)
	if err := s.reviews.Update(ctx, review); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		s.logger.Error("failed to save rescheduled review",
			"error", err,
			"flashcard_id", flashcardID)
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.logger.Debug("flashcard reviewed",
		"flashcard_id", flashcardID,
		"user_id", userID,
		"rating", rating,
		"next_due", review.Due)

	return review, nil
}

// ListDueCards returns the user's cards due now, soonest-first.
func (s *reviewServiceImpl) ListDueCards(ctx context.Context, userID uuid.UUID, limit int) ([]*DueCard, error) {
	if limit <= 0 {
		limit = defaultDueLimit
	}

	due, err := s.reviews.ListDue(ctx, userID, s.timeFunc().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reviews: %w", err)
	}

	cards := make([]*DueCard, 0, len(due))
	for _, review := range due {
		card, err := s.cards.GetByID(ctx, userID, review.FlashcardID)
		if err != nil {
			if errors.Is(err, store.ErrFlashcardNotFound) {
				// Deck was regenerated between the two reads; the
				// orphaned state will disappear on the next pass.
				s.logger.Warn("due review without flashcard",
					"flashcard_id", review.FlashcardID)
				continue
			}
			return nil, fmt.Errorf("failed to load due flashcard: %w", err)
		}
		cards = append(cards, &DueCard{Flashcard: card, Review: review})
	}
	return cards, nil
}
