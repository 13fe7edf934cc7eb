package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// DocumentStatus represents the processing state of an uploaded document.
type DocumentStatus string

// Possible document status values
const (
	DocumentStatusPending             DocumentStatus = "pending"
	DocumentStatusProcessing          DocumentStatus = "processing"
	DocumentStatusCompleted           DocumentStatus = "completed"
	DocumentStatusCompletedWithErrors DocumentStatus = "completed_with_errors"
	DocumentStatusFailed              DocumentStatus = "failed"
)

// Common validation errors for Document
var (
	ErrEmptyDocumentID     = errors.New("document ID cannot be empty")
	ErrEmptyDocumentUserID = errors.New("document user ID cannot be empty")
	ErrEmptyDocumentTitle  = errors.New("document title cannot be empty")
	ErrEmptyDocumentText   = errors.New("document text cannot be empty")
	ErrInvalidDocStatus    = errors.New("invalid document status")
)

// Document represents a study document uploaded by a user. It holds the
// extracted plain text and tracks the state of content generation
// (summary, flashcards, quiz) running against it.
type Document struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Title     string         `json:"title"`
	FileName  string         `json:"file_name,omitempty"`
	Text      string         `json:"text"`
	Status    DocumentStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewDocument creates a new Document with pending status.
// Returns an error if validation fails.
func NewDocument(userID uuid.UUID, title, fileName, text string) (*Document, error) {
	doc := &Document{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		FileName:  fileName,
		Text:      text,
		Status:    DocumentStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate checks if the Document has valid data.
func (d *Document) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDocumentID
	}

	if d.UserID == uuid.Nil {
		return ErrEmptyDocumentUserID
	}

	if d.Title == "" {
		return ErrEmptyDocumentTitle
	}

	if d.Text == "" {
		return ErrEmptyDocumentText
	}

	if !isValidDocumentStatus(d.Status) {
		return ErrInvalidDocStatus
	}

	return nil
}

// UpdateStatus updates the document's status and the UpdatedAt timestamp.
// Returns an error if the new status is invalid.
func (d *Document) UpdateStatus(status DocumentStatus) error {
	if !isValidDocumentStatus(status) {
		return ErrInvalidDocStatus
	}

	d.Status = status
	d.UpdatedAt = time.Now().UTC()
	return nil
}

func isValidDocumentStatus(status DocumentStatus) bool {
	switch status {
	case DocumentStatusPending, DocumentStatusProcessing, DocumentStatusCompleted,
		DocumentStatusCompletedWithErrors, DocumentStatusFailed:
		return true
	default:
		return false
	}
}
