package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrDocumentNotFound indicates the document does not exist or belongs
	// to another user. Maps to HTTP 404.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrSummaryNotReady indicates no summary exists for the document yet,
	// either because generation is still running or because it failed.
	// Maps to HTTP 404.
	ErrSummaryNotReady = errors.New("summary not available yet")

	// ErrQuizNotReady indicates no quiz exists for the document yet.
	// Maps to HTTP 404.
	ErrQuizNotReady = errors.New("quiz not available yet")

	// ErrFlashcardNotFound indicates the flashcard does not exist or
	// belongs to another user. Maps to HTTP 404.
	ErrFlashcardNotFound = errors.New("flashcard not found")

	// ErrReviewNotFound indicates no review state exists for the flashcard.
	// Maps to HTTP 404.
	ErrReviewNotFound = errors.New("review state not found")

	// ErrInvalidRating indicates a review rating outside again/hard/good/easy.
	// Maps to HTTP 400.
	ErrInvalidRating = errors.New("invalid review rating")

	// ErrEmptyMessage indicates a chat request with no message text.
	// Maps to HTTP 400.
	ErrEmptyMessage = errors.New("chat message cannot be empty")
)
