package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/events"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

// stubRunTx runs the transaction function directly with a nil transaction.
// The mock stores return themselves from WithTx, so everything inside the
// function hits the same mock.
func stubRunTx(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}

// MockDocumentStore mocks the store.DocumentStore interface
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentStore) GetForGeneration(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Document), args.Error(1)
}

func (m *MockDocumentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockDocumentStore) WithTx(tx *sql.Tx) store.DocumentStore {
	return m
}

// MockChatStore mocks the store.ChatStore interface
type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) Create(ctx context.Context, message *domain.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatStore) ListRecent(ctx context.Context, userID uuid.UUID, documentID uuid.NullUUID, limit int) ([]*domain.ChatMessage, error) {
	args := m.Called(ctx, userID, documentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatMessage), args.Error(1)
}

func (m *MockChatStore) WithTx(tx *sql.Tx) store.ChatStore {
	return m
}

// MockFlashcardStore mocks the store.FlashcardStore interface
type MockFlashcardStore struct {
	mock.Mock
}

func (m *MockFlashcardStore) CreateBatch(ctx context.Context, cards []*domain.Flashcard) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *MockFlashcardStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Flashcard, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardStore) ListByDocument(ctx context.Context, userID, documentID uuid.UUID) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardStore) DeleteByDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	args := m.Called(ctx, userID, documentID)
	return args.Error(0)
}

func (m *MockFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return m
}

// MockSummaryStore mocks the store.SummaryStore interface
type MockSummaryStore struct {
	mock.Mock
}

func (m *MockSummaryStore) Upsert(ctx context.Context, summary *domain.Summary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryStore) GetByDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Summary, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

func (m *MockSummaryStore) WithTx(tx *sql.Tx) store.SummaryStore {
	return m
}

// MockQuizStore mocks the store.QuizStore interface
type MockQuizStore struct {
	mock.Mock
}

func (m *MockQuizStore) Upsert(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizStore) GetByDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Quiz, error) {
	args := m.Called(ctx, userID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizStore) WithTx(tx *sql.Tx) store.QuizStore {
	return m
}

// MockReviewStore mocks the store.ReviewStore interface
type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) CreateBatch(ctx context.Context, reviews []*domain.FlashcardReview) error {
	args := m.Called(ctx, reviews)
	return args.Error(0)
}

func (m *MockReviewStore) GetByFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) (*domain.FlashcardReview, error) {
	args := m.Called(ctx, userID, flashcardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardReview), args.Error(1)
}

func (m *MockReviewStore) Update(ctx context.Context, review *domain.FlashcardReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewStore) ListDue(ctx context.Context, userID uuid.UUID, due time.Time, limit int) ([]*domain.FlashcardReview, error) {
	args := m.Called(ctx, userID, due, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FlashcardReview), args.Error(1)
}

func (m *MockReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return m
}

// MockEventEmitter mocks the events.EventEmitter interface
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockGenerator mocks the generation.Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateSummary(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateFlashcards(ctx context.Context, text string, count int) ([]generation.CardDraft, error) {
	args := m.Called(ctx, text, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]generation.CardDraft), args.Error(1)
}

func (m *MockGenerator) GenerateQuiz(ctx context.Context, text string, count int) ([]domain.QuizQuestion, error) {
	args := m.Called(ctx, text, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizQuestion), args.Error(1)
}

func (m *MockGenerator) RespondToChat(ctx context.Context, message, documentText string) (string, error) {
	args := m.Called(ctx, message, documentText)
	return args.String(0), args.Error(1)
}
