package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/events"
	"github.com/MuhammadAhmed-503/study-buddy/internal/extract"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// DocumentService provides document-related operations. Uploading a document
// also kicks off background generation of its study content.
type DocumentService interface {
	// UploadDocument extracts text from the uploaded file, stores the
	// document with pending status, and emits a generation task event.
	UploadDocument(ctx context.Context, userID uuid.UUID, title, fileName string, data []byte) (*domain.Document, error)

	// GetDocument retrieves one of the user's documents, including its text.
	GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, error)

	// ListDocuments returns the user's documents newest-first, without text.
	ListDocuments(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error)

	// RegenerateContent re-runs content generation for an existing
	// document, replacing its summary, flashcards, and quiz.
	RegenerateContent(ctx context.Context, userID, documentID uuid.UUID) error

	// GetDocumentForGeneration retrieves a document by ID alone for the
	// background pipeline, which acts on behalf of the recorded owner.
	GetDocumentForGeneration(ctx context.Context, documentID uuid.UUID) (*domain.Document, error)

	// UpdateDocumentStatus transitions a document's processing status.
	UpdateDocumentStatus(ctx context.Context, documentID uuid.UUID, status domain.DocumentStatus) error
}

// documentServiceImpl implements the DocumentService interface
type documentServiceImpl struct {
	docStore store.DocumentStore
	db       *sql.DB
	emitter  events.EventEmitter
	logger   *slog.Logger
	runTx    func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewDocumentService creates a new DocumentService.
// It returns an error if any of the required dependencies are nil.
func NewDocumentService(
	docStore store.DocumentStore,
	db *sql.DB,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (DocumentService, error) {
	if docStore == nil {
		return nil, errors.New("document store cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("event emitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &documentServiceImpl{
		docStore: docStore,
		db:       db,
		emitter:  emitter,
		logger:   logger.With("component", "document_service"),
		runTx:    store.RunInTransaction,
	}, nil
}

// UploadDocument extracts text, persists the document, and emits a
// generation task event.
func (s *documentServiceImpl) UploadDocument(
	ctx context.Context,
	userID uuid.UUID,
	title, fileName string,
	data []byte,
) (*domain.Document, error) {
	text, err := extract.Text(fileName, data)
	if err != nil {
		s.logger.Warn("failed to extract text from upload",
			"error", err,
			"user_id", userID,
			"file_name", fileName)
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	if strings.TrimSpace(title) == "" {
		title = titleFromFileName(fileName)
	}

	doc, err := domain.NewDocument(userID, title, fileName, text)
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.docStore.WithTx(tx).Create(ctx, doc)
	})
	if err != nil {
		s.logger.Error("failed to save document",
			"error", err,
			"user_id", userID,
			"document_id", doc.ID)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	if err := s.emitGeneration(ctx, doc.ID, userID); err != nil {
		return nil, err
	}

	s.logger.Info("document uploaded and queued for generation",
		"document_id", doc.ID,
		"user_id", userID,
		"text_length", len(doc.Text))

	return doc, nil
}

// GetDocument retrieves one of the user's documents.
func (s *documentServiceImpl) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docStore.GetByID(ctx, userID, documentID)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil, ErrDocumentNotFound
		}
		s.logger.Error("failed to retrieve document",
			"error", err,
			"document_id", documentID)
		return nil, fmt.Errorf("failed to retrieve document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns the user's documents newest-first.
func (s *documentServiceImpl) ListDocuments(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error) {
	docs, err := s.docStore.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list documents",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// RegenerateContent resets the document to pending and re-emits the
// generation event.
func (s *documentServiceImpl) RegenerateContent(ctx context.Context, userID, documentID uuid.UUID) error {
	// Owner check before touching status.
	if _, err := s.GetDocument(ctx, userID, documentID); err != nil {
		return err
	}

	if err := s.UpdateDocumentStatus(ctx, documentID, domain.DocumentStatusPending); err != nil {
		return err
	}

	if err := s.emitGeneration(ctx, documentID, userID); err != nil {
		return err
	}

	s.logger.Info("document queued for regeneration",
		"document_id", documentID,
		"user_id", userID)
	return nil
}

// GetDocumentForGeneration retrieves a document by ID alone, for the
// background pipeline.
func (s *documentServiceImpl) GetDocumentForGeneration(ctx context.Context, documentID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docStore.GetForGeneration(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve document for generation: %w", err)
	}
	return doc, nil
}

// UpdateDocumentStatus transitions a document's processing status.
func (s *documentServiceImpl) UpdateDocumentStatus(ctx context.Context, documentID uuid.UUID, status domain.DocumentStatus) error {
	if err := s.docStore.UpdateStatus(ctx, documentID, status); err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return ErrDocumentNotFound
		}
		s.logger.Error("failed to update document status",
			"error", err,
			"document_id", documentID,
			"status", status)
		return fmt.Errorf("failed to update document status: %w", err)
	}
	return nil
}

func (s *documentServiceImpl) emitGeneration(ctx context.Context, documentID, userID uuid.UUID) error {
	payload := events.DocumentGenerationPayload{
		DocumentID: documentID,
		UserID:     userID,
	}
	event, err := events.NewTaskRequestEvent(events.TaskTypeDocumentGeneration, payload)
	if err != nil {
		s.logger.Error("failed to create generation event",
			"error", err,
			"document_id", documentID)
		return fmt.Errorf("failed to create generation event: %w", err)
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit generation event",
			"error", err,
			"document_id", documentID,
			"event_id", event.ID)
		return fmt.Errorf("failed to emit generation event: %w", err)
	}
	return nil
}

// titleFromFileName derives a display title from an upload's file name by
// dropping the extension.
func titleFromFileName(fileName string) string {
	base := filepath.Base(fileName)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.TrimSpace(title) == "" {
		return "Untitled document"
	}
	return title
}
