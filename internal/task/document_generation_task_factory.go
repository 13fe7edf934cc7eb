package task

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
)

// DocumentGenerationTaskFactory creates DocumentGenerationTask instances
// with the shared service dependencies baked in.
type DocumentGenerationTaskFactory struct {
	documents DocumentService
	content   ContentService
	generator generation.Generator
	logger    *slog.Logger
}

// NewDocumentGenerationTaskFactory creates a new factory.
func NewDocumentGenerationTaskFactory(
	documents DocumentService,
	content ContentService,
	generator generation.Generator,
	logger *slog.Logger,
) *DocumentGenerationTaskFactory {
	return &DocumentGenerationTaskFactory{
		documents: documents,
		content:   content,
		generator: generator,
		logger:    logger.With("component", "document_generation_task_factory"),
	}
}

// CreateTask creates a new DocumentGenerationTask for the given document.
func (f *DocumentGenerationTaskFactory) CreateTask(documentID, userID uuid.UUID) (Task, error) {
	return NewDocumentGenerationTask(
		documentID,
		userID,
		f.documents,
		f.content,
		f.generator,
		f.logger,
	)
}
