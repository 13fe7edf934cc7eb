package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Summary-specific validation errors
var (
	ErrEmptySummaryID      = errors.New("summary ID cannot be empty")
	ErrEmptySummaryUserID  = errors.New("summary user ID cannot be empty")
	ErrEmptySummaryDocID   = errors.New("summary document ID cannot be empty")
	ErrEmptySummaryContent = errors.New("summary content cannot be empty")
)

// Summary is the extractive or model-written summary of one document.
type Summary struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSummary creates a new Summary owned by the given user and document.
// Returns an error if validation fails.
func NewSummary(userID, documentID uuid.UUID, content string) (*Summary, error) {
	summary := &Summary{
		ID:         uuid.New(),
		UserID:     userID,
		DocumentID: documentID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := summary.Validate(); err != nil {
		return nil, err
	}

	return summary, nil
}

// Validate checks if the Summary has valid data.
func (s *Summary) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySummaryID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySummaryUserID
	}

	if s.DocumentID == uuid.Nil {
		return ErrEmptySummaryDocID
	}

	if s.Content == "" {
		return ErrEmptySummaryContent
	}

	return nil
}
