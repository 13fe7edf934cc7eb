package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	ErrEmptyFlashcardID     = errors.New("flashcard ID cannot be empty")
	ErrEmptyFlashcardUserID = errors.New("flashcard user ID cannot be empty")
	ErrEmptyFlashcardDocID  = errors.New("flashcard document ID cannot be empty")
	ErrEmptyQuestion        = errors.New("flashcard question cannot be empty")
	ErrEmptyAnswer          = errors.New("flashcard answer cannot be empty")
)

// Flashcard is a single question/answer pair generated from a document.
// Both sides are always non-empty.
type Flashcard struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewFlashcard creates a new Flashcard owned by the given user and document.
// Returns an error if validation fails.
func NewFlashcard(userID, documentID uuid.UUID, question, answer string) (*Flashcard, error) {
	card := &Flashcard{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: documentID,
		Question:   question,
		Answer:     answer,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrEmptyFlashcardID
	}

	if f.UserID == uuid.Nil {
		return ErrEmptyFlashcardUserID
	}

	if f.DocumentID == uuid.Nil {
		return ErrEmptyFlashcardDocID
	}

	if f.Question == "" {
		return ErrEmptyQuestion
	}

	if f.Answer == "" {
		return ErrEmptyAnswer
	}

	return nil
}
