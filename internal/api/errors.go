package api

import (
	"errors"
	"net/http"

	"github.com/MuhammadAhmed-503/study-buddy/internal/api/shared"
	"github.com/MuhammadAhmed-503/study-buddy/internal/extract"
	"github.com/MuhammadAhmed-503/study-buddy/internal/service"
	"github.com/MuhammadAhmed-503/study-buddy/internal/service/auth"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrSummaryNotReady),
		errors.Is(err, service.ErrQuizNotReady),
		errors.Is(err, service.ErrFlashcardNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, extract.ErrEmptyFile),
		errors.Is(err, extract.ErrNoText),
		errors.Is(err, extract.ErrUnsupportedEncoding):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, service.ErrDocumentNotFound):
		return "Document not found"

	case errors.Is(err, service.ErrSummaryNotReady):
		return "Summary not available yet"

	case errors.Is(err, service.ErrQuizNotReady):
		return "Quiz not available yet"

	case errors.Is(err, service.ErrFlashcardNotFound):
		return "Flashcard not found"

	case errors.Is(err, service.ErrReviewNotFound):
		return "Review state not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, service.ErrInvalidRating):
		return "Rating must be one of: again, hard, good, easy"

	case errors.Is(err, service.ErrEmptyMessage):
		return "Message cannot be empty"

	case errors.Is(err, extract.ErrEmptyFile):
		return "Uploaded file is empty"

	case errors.Is(err, extract.ErrNoText):
		return "No extractable text in file"

	case errors.Is(err, extract.ErrUnsupportedEncoding):
		return "File must be a PDF or UTF-8 text"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps a service-layer error to an HTTP response with a
// sanitized message, logging the underlying error.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
