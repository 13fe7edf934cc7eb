package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
)

// Default sizes for generated study material. The HTTP API can regenerate
// with explicit counts later; the upload pipeline uses these.
const (
	DefaultFlashcardCount = 10
	DefaultQuizCount      = 5
)

// Dependency validation errors
var (
	ErrNilDocumentService = errors.New("document service cannot be nil")
	ErrNilContentService  = errors.New("content service cannot be nil")
	ErrNilGenerator       = errors.New("generator cannot be nil")
	ErrNilLogger          = errors.New("logger cannot be nil")
	ErrEmptyDocumentID    = errors.New("document ID cannot be empty")
	ErrEmptyTaskUserID    = errors.New("user ID cannot be empty")
)

// DocumentService defines the document operations the task needs. Defined
// here so the task package does not depend on the service package.
type DocumentService interface {
	// GetDocumentForGeneration retrieves a document with its full text,
	// bypassing the per-user scoping used by API reads: the task acts on
	// behalf of the owner recorded in the payload.
	GetDocumentForGeneration(ctx context.Context, documentID uuid.UUID) (*domain.Document, error)

	// UpdateDocumentStatus transitions the document's processing status.
	UpdateDocumentStatus(ctx context.Context, documentID uuid.UUID, status domain.DocumentStatus) error
}

// ContentService persists generated study material.
type ContentService interface {
	// SaveSummary stores the document's summary, replacing any previous one.
	SaveSummary(ctx context.Context, userID, documentID uuid.UUID, content string) error

	// SaveFlashcards stores a generated deck along with initial review
	// state, replacing the document's previous deck.
	SaveFlashcards(ctx context.Context, userID, documentID uuid.UUID, drafts []generation.CardDraft) error

	// SaveQuiz stores the document's quiz, replacing any previous one.
	SaveQuiz(ctx context.Context, userID, documentID uuid.UUID, questions []domain.QuizQuestion) error
}

// documentGenerationPayload is the serialized task data.
type documentGenerationPayload struct {
	DocumentID uuid.UUID `json:"document_id"`
	UserID     uuid.UUID `json:"user_id"`
}

// DocumentGenerationTask generates the full set of study material for one
// uploaded document: summary, flashcards, and quiz, in that order. The
// stages are independent; one failing does not stop the others. The final
// document status reflects the outcome: completed when every stage
// succeeded, completed_with_errors on a partial failure, failed when
// nothing could be generated.
type DocumentGenerationTask struct {
	id         uuid.UUID
	documentID uuid.UUID
	userID     uuid.UUID
	documents  DocumentService
	content    ContentService
	generator  generation.Generator
	logger     *slog.Logger
	status     TaskStatus
}

// NewDocumentGenerationTask creates a new document generation task.
func NewDocumentGenerationTask(
	documentID, userID uuid.UUID,
	documents DocumentService,
	content ContentService,
	generator generation.Generator,
	logger *slog.Logger,
) (*DocumentGenerationTask, error) {
	if documents == nil {
		return nil, ErrNilDocumentService
	}
	if content == nil {
		return nil, ErrNilContentService
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if documentID == uuid.Nil {
		return nil, ErrEmptyDocumentID
	}
	if userID == uuid.Nil {
		return nil, ErrEmptyTaskUserID
	}

	return &DocumentGenerationTask{
		id:         uuid.New(),
		documentID: documentID,
		userID:     userID,
		documents:  documents,
		content:    content,
		generator:  generator,
		logger:     logger.With("task_type", TaskTypeDocumentGeneration, "document_id", documentID),
		status:     TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *DocumentGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *DocumentGenerationTask) Type() string {
	return TaskTypeDocumentGeneration
}

// Payload returns the task data as a byte slice
func (t *DocumentGenerationTask) Payload() []byte {
	data, err := json.Marshal(documentGenerationPayload{
		DocumentID: t.documentID,
		UserID:     t.userID,
	})
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *DocumentGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute runs all three generation stages against the document text and
// records the aggregate outcome on the document.
func (t *DocumentGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting document generation task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	doc, err := t.documents.GetDocumentForGeneration(ctx, t.documentID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to retrieve document", "error", err)
		return fmt.Errorf("failed to retrieve document: %w", err)
	}

	if err := t.documents.UpdateDocumentStatus(ctx, t.documentID, domain.DocumentStatusProcessing); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to update document status to processing", "error", err)
		return fmt.Errorf("failed to update document status to processing: %w", err)
	}

	var stageErrs []error

	if err := t.generateSummary(ctx, doc); err != nil {
		stageErrs = append(stageErrs, fmt.Errorf("summary: %w", err))
	}
	if err := t.generateFlashcards(ctx, doc); err != nil {
		stageErrs = append(stageErrs, fmt.Errorf("flashcards: %w", err))
	}
	if err := t.generateQuiz(ctx, doc); err != nil {
		stageErrs = append(stageErrs, fmt.Errorf("quiz: %w", err))
	}

	finalStatus := domain.DocumentStatusCompleted
	switch len(stageErrs) {
	case 0:
	case 3:
		finalStatus = domain.DocumentStatusFailed
	default:
		finalStatus = domain.DocumentStatusCompletedWithErrors
	}

	if err := t.documents.UpdateDocumentStatus(ctx, t.documentID, finalStatus); err != nil {
		// The generated content is already saved; log rather than fail.
		t.logger.Error("failed to update document final status",
			"error", err,
			"final_status", finalStatus)
	}

	if finalStatus == domain.DocumentStatusFailed {
		t.status = TaskStatusFailed
		return fmt.Errorf("all generation stages failed: %w", errors.Join(stageErrs...))
	}

	if len(stageErrs) > 0 {
		t.logger.Warn("document generation completed with errors",
			"failed_stages", len(stageErrs),
			"error", errors.Join(stageErrs...))
	}

	t.status = TaskStatusCompleted
	t.logger.Info("document generation task completed", "final_status", finalStatus)
	return nil
}

func (t *DocumentGenerationTask) generateSummary(ctx context.Context, doc *domain.Document) error {
	summary, err := t.generator.GenerateSummary(ctx, doc.Text)
	if err != nil {
		t.logger.Error("summary generation failed", "error", err)
		return err
	}
	if err := t.content.SaveSummary(ctx, t.userID, t.documentID, summary); err != nil {
		t.logger.Error("saving summary failed", "error", err)
		return err
	}
	return nil
}

func (t *DocumentGenerationTask) generateFlashcards(ctx context.Context, doc *domain.Document) error {
	drafts, err := t.generator.GenerateFlashcards(ctx, doc.Text, DefaultFlashcardCount)
	if err != nil {
		t.logger.Error("flashcard generation failed", "error", err)
		return err
	}
	if len(drafts) == 0 {
		t.logger.Warn("no flashcards generated for document")
		return nil
	}
	if err := t.content.SaveFlashcards(ctx, t.userID, t.documentID, drafts); err != nil {
		t.logger.Error("saving flashcards failed", "error", err)
		return err
	}
	t.logger.Info("flashcards generated", "count", len(drafts))
	return nil
}

func (t *DocumentGenerationTask) generateQuiz(ctx context.Context, doc *domain.Document) error {
	questions, err := t.generator.GenerateQuiz(ctx, doc.Text, DefaultQuizCount)
	if err != nil {
		t.logger.Error("quiz generation failed", "error", err)
		return err
	}
	if len(questions) == 0 {
		t.logger.Warn("no quiz questions generated for document")
		return nil
	}
	if err := t.content.SaveQuiz(ctx, t.userID, t.documentID, questions); err != nil {
		t.logger.Error("saving quiz failed", "error", err)
		return err
	}
	t.logger.Info("quiz generated", "count", len(questions))
	return nil
}
