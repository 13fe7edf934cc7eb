package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MuhammadAhmed-503/study-buddy/internal/api/shared"
	"github.com/MuhammadAhmed-503/study-buddy/internal/service"
)

// maxUploadBytes caps document uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// DocumentHandler handles document-related HTTP requests.
type DocumentHandler struct {
	documents service.DocumentService
	content   service.ContentService
	validator *validator.Validate
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documents service.DocumentService, content service.ContentService) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		content:   content,
		validator: validator.New(),
	}
}

// Upload handles POST /api/documents. Multipart requests carry the document
// as a "file" part with an optional "title" field; JSON requests carry raw
// text. Processing happens asynchronously, so the response is 202 Accepted
// with the document in pending status.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var title, fileName string
	var data []byte

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Missing file upload")
			return
		}
		defer func() { _ = file.Close() }()

		data, err = io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to read upload", err)
			return
		}
		fileName = header.Filename
		title = r.FormValue("title")
	} else {
		var req UploadDocumentRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
		title = req.Title
		fileName = req.FileName
		data = []byte(req.Text)
	}

	doc, err := h.documents.UploadDocument(r.Context(), userID, title, fileName, data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, documentToResponse(doc, false))
}

// List handles GET /api/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	docs, err := h.documents.ListDocuments(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	responses := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, documentToResponse(doc, false))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /api/documents/{id}, returning the document with its text.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.documents.GetDocument(r.Context(), userID, documentID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, documentToResponse(doc, true))
}

// Regenerate handles POST /api/documents/{id}/regenerate, replacing the
// document's generated study content.
func (h *DocumentHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.documents.RegenerateContent(r.Context(), userID, documentID); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GetSummary handles GET /api/documents/{id}/summary.
func (h *DocumentHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.content.GetSummary(r.Context(), userID, documentID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{
		DocumentID: summary.DocumentID.String(),
		Content:    summary.Content,
		UpdatedAt:  summary.UpdatedAt,
	})
}

// ListFlashcards handles GET /api/documents/{id}/flashcards.
func (h *DocumentHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	cards, err := h.content.ListFlashcards(r.Context(), userID, documentID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	responses := make([]FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, flashcardToResponse(card))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetQuiz handles GET /api/documents/{id}/quiz.
func (h *DocumentHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	userID, documentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	quiz, err := h.content.GetQuiz(r.Context(), userID, documentID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{
		DocumentID: quiz.DocumentID.String(),
		Questions:  quiz.Questions,
		UpdatedAt:  quiz.UpdatedAt,
	})
}
