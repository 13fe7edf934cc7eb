package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/events"
	"github.com/MuhammadAhmed-503/study-buddy/internal/extract"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

func newTestDocumentService(t *testing.T, docs *MockDocumentStore, emitter *MockEventEmitter) *documentServiceImpl {
	t.Helper()

	svc, err := NewDocumentService(docs, nil, emitter, slog.Default())
	require.NoError(t, err)

	impl := svc.(*documentServiceImpl)
	impl.runTx = stubRunTx
	return impl
}

func TestNewDocumentServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := NewDocumentService(nil, nil, &MockEventEmitter{}, slog.Default())
	assert.Error(t, err)

	_, err = NewDocumentService(&MockDocumentStore{}, nil, nil, slog.Default())
	assert.Error(t, err)
}

func TestUploadDocument(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docs := new(MockDocumentStore)
	emitter := new(MockEventEmitter)
	svc := newTestDocumentService(t, docs, emitter)

	docs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	var emitted *events.TaskRequestEvent
	emitter.On("EmitEvent", mock.Anything, mock.AnythingOfType("*events.TaskRequestEvent")).
		Run(func(args mock.Arguments) {
			emitted = args.Get(1).(*events.TaskRequestEvent)
		}).
		Return(nil)

	doc, err := svc.UploadDocument(
		context.Background(), userID, "Biology Notes", "notes.txt",
		[]byte("Photosynthesis converts light energy into chemical energy."))
	require.NoError(t, err)

	assert.Equal(t, userID, doc.UserID)
	assert.Equal(t, "Biology Notes", doc.Title)
	assert.Equal(t, domain.DocumentStatusPending, doc.Status)
	assert.Equal(t, "Photosynthesis converts light energy into chemical energy.", doc.Text)

	require.NotNil(t, emitted)
	assert.Equal(t, events.TaskTypeDocumentGeneration, emitted.Type)

	docs.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestUploadDocumentDerivesTitleFromFileName(t *testing.T) {
	t.Parallel()

	docs := new(MockDocumentStore)
	emitter := new(MockEventEmitter)
	svc := newTestDocumentService(t, docs, emitter)

	docs.On("Create", mock.Anything, mock.Anything).Return(nil)
	emitter.On("EmitEvent", mock.Anything, mock.Anything).Return(nil)

	doc, err := svc.UploadDocument(
		context.Background(), uuid.New(), "  ", "chapter-3.txt", []byte("some text"))
	require.NoError(t, err)
	assert.Equal(t, "chapter-3", doc.Title)
}

func TestUploadDocumentExtractionFailure(t *testing.T) {
	t.Parallel()

	docs := new(MockDocumentStore)
	emitter := new(MockEventEmitter)
	svc := newTestDocumentService(t, docs, emitter)

	_, err := svc.UploadDocument(context.Background(), uuid.New(), "Empty", "empty.txt", nil)
	assert.ErrorIs(t, err, extract.ErrEmptyFile)

	// Nothing was stored or emitted.
	docs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	emitter.AssertNotCalled(t, "EmitEvent", mock.Anything, mock.Anything)
}

func TestUploadDocumentSaveFailure(t *testing.T) {
	t.Parallel()

	docs := new(MockDocumentStore)
	emitter := new(MockEventEmitter)
	svc := newTestDocumentService(t, docs, emitter)

	docs.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	_, err := svc.UploadDocument(context.Background(), uuid.New(), "Notes", "notes.txt", []byte("text"))
	assert.Error(t, err)
	emitter.AssertNotCalled(t, "EmitEvent", mock.Anything, mock.Anything)
}

func TestGetDocumentNotFound(t *testing.T) {
	t.Parallel()

	docs := new(MockDocumentStore)
	emitter := new(MockEventEmitter)
	svc := newTestDocumentService(t, docs, emitter)

	userID := uuid.New()
	docID := uuid.New()
	docs.On("GetByID", mock.Anything, userID, docID).Return(nil, store.ErrDocumentNotFound)

	_, err := svc.GetDocument(context.Background(), userID, docID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestRegenerateContent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()

	docs := new(MockDocumentStore)
	emitter := new(MockEventEmitter)
	svc := newTestDocumentService(t, docs, emitter)

	existing, err := domain.NewDocument(userID, "Notes", "notes.txt", "text")
	require.NoError(t, err)
	existing.ID = docID

	docs.On("GetByID", mock.Anything, userID, docID).Return(existing, nil)
	docs.On("UpdateStatus", mock.Anything, docID, domain.DocumentStatusPending).Return(nil)
	emitter.On("EmitEvent", mock.Anything, mock.Anything).Return(nil)

	err = svc.RegenerateContent(context.Background(), userID, docID)
	require.NoError(t, err)

	docs.AssertExpectations(t)
	emitter.AssertExpectations(t)
}

func TestRegenerateContentUnknownDocument(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()

	docs := new(MockDocumentStore)
	emitter := new(MockEventEmitter)
	svc := newTestDocumentService(t, docs, emitter)

	docs.On("GetByID", mock.Anything, userID, docID).Return(nil, store.ErrDocumentNotFound)

	err := svc.RegenerateContent(context.Background(), userID, docID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	docs.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTitleFromFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fileName string
		want     string
	}{
		{"notes.txt", "notes"},
		{"lecture-05.pdf", "lecture-05"},
		{"archive.tar.gz", "archive.tar"},
		{"no-extension", "no-extension"},
		{".txt", "Untitled document"},
		{"", "Untitled document"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, titleFromFileName(tc.fileName), "fileName=%q", tc.fileName)
	}
}
