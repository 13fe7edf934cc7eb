package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/MuhammadAhmed-503/study-buddy/internal/api/shared"
	"github.com/MuhammadAhmed-503/study-buddy/internal/service"
)

// ReviewHandler handles spaced-repetition review requests.
type ReviewHandler struct {
	reviews   service.ReviewService
	validator *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviews:   reviews,
		validator: validator.New(),
	}
}

// SubmitReview handles POST /api/flashcards/{id}/review.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, flashcardID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	review, err := h.reviews.SubmitReview(r.Context(), userID, flashcardID, req.Rating)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reviewToResponse(review))
}

// ListDue handles GET /api/reviews/due. Optional limit query parameter.
func (h *ReviewHandler) ListDue(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	due, err := h.reviews.ListDueCards(r.Context(), userID, limit)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	responses := make([]DueCardResponse, 0, len(due))
	for _, item := range due {
		responses = append(responses, DueCardResponse{
			Flashcard: flashcardToResponse(item.Flashcard),
			Review:    reviewToResponse(item.Review),
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}
