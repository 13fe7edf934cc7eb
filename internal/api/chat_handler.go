package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/api/shared"
	"github.com/MuhammadAhmed-503/study-buddy/internal/service"
)

// ChatHandler handles study assistant chat requests.
type ChatHandler struct {
	chat      service.ChatService
	validator *validator.Validate
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{
		chat:      chat,
		validator: validator.New(),
	}
}

// SendMessage handles POST /api/chat. The reply is generated synchronously
// and both sides of the turn are persisted.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ChatRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	documentID := uuid.Nil
	if req.DocumentID != "" {
		parsed, err := uuid.Parse(req.DocumentID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid document_id")
			return
		}
		documentID = parsed
	}

	reply, err := h.chat.SendMessage(r.Context(), userID, documentID, req.Message)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, chatMessageToResponse(reply))
}

// History handles GET /api/chat. Optional query parameters: document_id to
// narrow the transcript to one document, limit to cap the number of turns.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var documentID uuid.NullUUID
	if raw := r.URL.Query().Get("document_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid document_id")
			return
		}
		documentID = uuid.NullUUID{UUID: parsed, Valid: true}
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

	messages, err := h.chat.History(r.Context(), userID, documentID, limit)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	responses := make([]ChatMessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, chatMessageToResponse(msg))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}
