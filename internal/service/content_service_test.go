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
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

type contentServiceMocks struct {
	summaries *MockSummaryStore
	cards     *MockFlashcardStore
	quizzes   *MockQuizStore
	reviews   *MockReviewStore
}

func newTestContentService(t *testing.T) (*contentServiceImpl, contentServiceMocks) {
	t.Helper()

	mocks := contentServiceMocks{
		summaries: new(MockSummaryStore),
		cards:     new(MockFlashcardStore),
		quizzes:   new(MockQuizStore),
		reviews:   new(MockReviewStore),
	}

	svc, err := NewContentService(
		mocks.summaries, mocks.cards, mocks.quizzes, mocks.reviews, nil, slog.Default())
	require.NoError(t, err)

	impl := svc.(*contentServiceImpl)
	impl.runTx = stubRunTx
	return impl, mocks
}

func TestSaveSummary(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()
	svc, mocks := newTestContentService(t)

	mocks.summaries.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Summary")).
		Run(func(args mock.Arguments) {
			summary := args.Get(1).(*domain.Summary)
			assert.Equal(t, userID, summary.UserID)
			assert.Equal(t, docID, summary.DocumentID)
			assert.Equal(t, "A short summary.", summary.Content)
		}).
		Return(nil)

	err := svc.SaveSummary(context.Background(), userID, docID, "A short summary.")
	require.NoError(t, err)
	mocks.summaries.AssertExpectations(t)
}

func TestSaveFlashcardsReplacesDeck(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()
	svc, mocks := newTestContentService(t)

	drafts := []generation.CardDraft{
		{Question: "What is a cell?", Answer: "The basic unit of life."},
		{Question: "What is ATP?", Answer: "The cell's energy currency."},
	}

	var savedCards []*domain.Flashcard
	var savedReviews []*domain.FlashcardReview

	mocks.cards.On("DeleteByDocument", mock.Anything, userID, docID).Return(nil)
	mocks.cards.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedCards = args.Get(1).([]*domain.Flashcard)
		}).
		Return(nil)
	mocks.reviews.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedReviews = args.Get(1).([]*domain.FlashcardReview)
		}).
		Return(nil)

	err := svc.SaveFlashcards(context.Background(), userID, docID, drafts)
	require.NoError(t, err)

	require.Len(t, savedCards, 2)
	require.Len(t, savedReviews, 2)
	for i, card := range savedCards {
		assert.Equal(t, drafts[i].Question, card.Question)
		assert.Equal(t, drafts[i].Answer, card.Answer)
		assert.Equal(t, card.ID, savedReviews[i].FlashcardID)
		assert.Equal(t, userID, savedReviews[i].UserID)
	}

	mocks.cards.AssertExpectations(t)
	mocks.reviews.AssertExpectations(t)
}

func TestSaveFlashcardsClearFailureAborts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()
	svc, mocks := newTestContentService(t)

	mocks.cards.On("DeleteByDocument", mock.Anything, userID, docID).
		Return(errors.New("connection reset"))

	err := svc.SaveFlashcards(context.Background(), userID, docID, []generation.CardDraft{
		{Question: "Q", Answer: "A"},
	})
	assert.Error(t, err)
	mocks.cards.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	mocks.reviews.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestSaveQuiz(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()
	svc, mocks := newTestContentService(t)

	questions := []domain.QuizQuestion{
		{
			ID:       uuid.NewString(),
			Question: "Which organelle produces ATP?",
			Options:  []string{"Nucleus", "Mitochondrion", "Ribosome", "Golgi apparatus"},
			Correct:  1,
		},
	}

	mocks.quizzes.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Quiz")).
		Run(func(args mock.Arguments) {
			quiz := args.Get(1).(*domain.Quiz)
			assert.Equal(t, docID, quiz.DocumentID)
			assert.Len(t, quiz.Questions, 1)
		}).
		Return(nil)

	err := svc.SaveQuiz(context.Background(), userID, docID, questions)
	require.NoError(t, err)
	mocks.quizzes.AssertExpectations(t)
}

func TestGetSummaryNotReady(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()
	svc, mocks := newTestContentService(t)

	mocks.summaries.On("GetByDocument", mock.Anything, userID, docID).
		Return(nil, store.ErrSummaryNotFound)

	_, err := svc.GetSummary(context.Background(), userID, docID)
	assert.ErrorIs(t, err, ErrSummaryNotReady)
}

func TestGetQuizNotReady(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()
	svc, mocks := newTestContentService(t)

	mocks.quizzes.On("GetByDocument", mock.Anything, userID, docID).
		Return(nil, store.ErrQuizNotFound)

	_, err := svc.GetQuiz(context.Background(), userID, docID)
	assert.ErrorIs(t, err, ErrQuizNotReady)
}
