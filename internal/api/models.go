package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UploadDocumentRequest defines the JSON payload for uploading a document as
// raw text. File uploads use multipart form data instead.
type UploadDocumentRequest struct {
	Title    string `json:"title"`
	FileName string `json:"file_name" validate:"required"`
	Text     string `json:"text"      validate:"required,min=1"`
}

// DocumentResponse represents a document in API responses. Text is included
// only when a single document is fetched.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FileName  string    `json:"file_name"`
	Status    string    `json:"status"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SummaryResponse represents a generated document summary.
type SummaryResponse struct {
	DocumentID string    `json:"document_id"`
	Content    string    `json:"content"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FlashcardResponse represents a single generated flashcard.
type FlashcardResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuizResponse represents a generated quiz.
type QuizResponse struct {
	DocumentID string                `json:"document_id"`
	Questions  []domain.QuizQuestion `json:"questions"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// ChatRequest defines the payload for the chat endpoint. DocumentID is
// optional; when set, the reply is grounded in that document's text.
type ChatRequest struct {
	DocumentID string `json:"document_id,omitempty"`
	Message    string `json:"message" validate:"required,min=1"`
}

// ChatMessageResponse represents one turn of the chat transcript.
type ChatMessageResponse struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id,omitempty"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitReviewRequest defines the payload for reviewing a flashcard.
type SubmitReviewRequest struct {
	Rating string `json:"rating" validate:"required,oneof=again hard good easy"`
}

// ReviewResponse represents a flashcard's scheduling state.
type ReviewResponse struct {
	FlashcardID string    `json:"flashcard_id"`
	Due         time.Time `json:"due"`
	State       int       `json:"state"`
	Reps        int       `json:"reps"`
	Lapses      int       `json:"lapses"`
}

// DueCardResponse pairs a due flashcard with its scheduling state.
type DueCardResponse struct {
	Flashcard FlashcardResponse `json:"flashcard"`
	Review    ReviewResponse    `json:"review"`
}

func documentToResponse(doc *domain.Document, includeText bool) DocumentResponse {
	resp := DocumentResponse{
		ID:        doc.ID.String(),
		Title:     doc.Title,
		FileName:  doc.FileName,
		Status:    string(doc.Status),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if includeText {
		resp.Text = doc.Text
	}
	return resp
}

func flashcardToResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:         card.ID.String(),
		DocumentID: card.DocumentID.String(),
		Question:   card.Question,
		Answer:     card.Answer,
		CreatedAt:  card.CreatedAt,
	}
}

func chatMessageToResponse(msg *domain.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:        msg.ID.String(),
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
	if msg.DocumentID.Valid {
		resp.DocumentID = msg.DocumentID.UUID.String()
	}
	return resp
}

func reviewToResponse(review *domain.FlashcardReview) ReviewResponse {
	return ReviewResponse{
		FlashcardID: review.FlashcardID.String(),
		Due:         review.Due,
		State:       review.State,
		Reps:        review.Reps,
		Lapses:      review.Lapses,
	}
}
