package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"
)

// Review validation errors
var (
	ErrEmptyReviewCardID = errors.New("review flashcard ID cannot be empty")
	ErrEmptyReviewUserID = errors.New("review user ID cannot be empty")
)

// FlashcardReview holds the FSRS spaced-repetition scheduling state for one
// flashcard. One row exists per card, created alongside the card.
type FlashcardReview struct {
	FlashcardID   uuid.UUID `json:"flashcard_id"`
	UserID        uuid.UUID `json:"user_id"`
	Due           time.Time `json:"due"`
	Stability     float64   `json:"stability"`
	Difficulty    float64   `json:"difficulty"`
	ElapsedDays   int       `json:"elapsed_days"`
	ScheduledDays int       `json:"scheduled_days"`
	Reps          int       `json:"reps"`
	Lapses        int       `json:"lapses"`
	State         int       `json:"state"`
	LastReview    time.Time `json:"last_review,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewFlashcardReview creates the initial scheduling state for a freshly
// generated card: due immediately, never reviewed.
func NewFlashcardReview(flashcardID, userID uuid.UUID) (*FlashcardReview, error) {
	review := &FlashcardReview{
		FlashcardID: flashcardID,
		UserID:      userID,
		Due:         time.Now().UTC(),
		State:       int(fsrs.New),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the FlashcardReview has valid data.
func (r *FlashcardReview) Validate() error {
	if r.FlashcardID == uuid.Nil {
		return ErrEmptyReviewCardID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyReviewUserID
	}

	return nil
}

// ToFSRS converts the stored state into an fsrs.Card for scheduling.
func (r *FlashcardReview) ToFSRS() fsrs.Card {
	card := fsrs.Card{
		Due:           r.Due,
		Stability:     r.Stability,
		Difficulty:    r.Difficulty,
		ElapsedDays:   uint64(maxInt(r.ElapsedDays, 0)),
		ScheduledDays: uint64(maxInt(r.ScheduledDays, 0)),
		Reps:          uint64(maxInt(r.Reps, 0)),
		Lapses:        uint64(maxInt(r.Lapses, 0)),
		State:         fsrs.State(maxInt(r.State, 0)),
	}
	if !r.LastReview.IsZero() {
		card.LastReview = r.LastReview
	}
	return card
}

// ApplyFSRS copies a scheduled fsrs.Card back into the stored state and
// refreshes the UpdatedAt timestamp.
func (r *FlashcardReview) ApplyFSRS(card fsrs.Card) {
	r.Due = card.Due
	r.Stability = card.Stability
	r.Difficulty = card.Difficulty
	r.ElapsedDays = int(card.ElapsedDays)
	r.ScheduledDays = int(card.ScheduledDays)
	r.Reps = int(card.Reps)
	r.Lapses = int(card.Lapses)
	r.State = int(card.State)
	r.LastReview = card.LastReview
	r.UpdatedAt = time.Now().UTC()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
