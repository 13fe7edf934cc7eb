package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Quiz-specific validation errors
var (
	ErrEmptyQuizID        = errors.New("quiz ID cannot be empty")
	ErrEmptyQuizUserID    = errors.New("quiz user ID cannot be empty")
	ErrEmptyQuizDocID     = errors.New("quiz document ID cannot be empty")
	ErrEmptyQuizQuestions = errors.New("quiz must contain at least one question")
	ErrInvalidQuestion    = errors.New("invalid quiz question")
)

// QuizOptionCount is the fixed number of options every question carries:
// one correct answer and three distractors.
const QuizOptionCount = 4

// QuizQuestion is a single multiple-choice question. Options always holds
// exactly four entries and Correct indexes the verified correct value.
type QuizQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Validate checks the structural invariants of a quiz question.
func (q *QuizQuestion) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	}
	if q.Question == "" {
		return fmt.Errorf("%w: question %s has no text", ErrInvalidQuestion, q.ID)
	}
	if len(q.Options) != QuizOptionCount {
		return fmt.Errorf("%w: question %s has %d options, want %d",
			ErrInvalidQuestion, q.ID, len(q.Options), QuizOptionCount)
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("%w: question %s correct index %d out of range",
			ErrInvalidQuestion, q.ID, q.Correct)
	}
	if q.Options[q.Correct] == "" {
		return fmt.Errorf("%w: question %s has an empty correct option",
			ErrInvalidQuestion, q.ID)
	}
	return nil
}

// Quiz is an ordered set of multiple-choice questions generated from one
// document. Questions are stored as a JSONB column.
type Quiz struct {
	ID         uuid.UUID      `json:"id"`
	UserID     uuid.UUID      `json:"user_id"`
	DocumentID uuid.UUID      `json:"document_id"`
	Questions  []QuizQuestion `json:"questions"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// NewQuiz creates a new Quiz owned by the given user and document.
// Returns an error if validation fails.
func NewQuiz(userID, documentID uuid.UUID, questions []QuizQuestion) (*Quiz, error) {
	quiz := &Quiz{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: documentID,
		Questions:  questions,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	return quiz, nil
}

// Validate checks if the Quiz and every contained question are valid.
func (z *Quiz) Validate() error {
	if z.ID == uuid.Nil {
		return ErrEmptyQuizID
	}

	if z.UserID == uuid.Nil {
		return ErrEmptyQuizUserID
	}

	if z.DocumentID == uuid.Nil {
		return ErrEmptyQuizDocID
	}

	if len(z.Questions) == 0 {
		return ErrEmptyQuizQuestions
	}

	for i := range z.Questions {
		if err := z.Questions[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
