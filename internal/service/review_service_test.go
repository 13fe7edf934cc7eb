package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	fsrs "github.com/open-spaced-repetition/go-fsrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/store"
)

func newTestReviewService(t *testing.T, reviews *MockReviewStore, cards *MockFlashcardStore, now time.Time) *reviewServiceImpl {
	t.Helper()

	svc, err := NewReviewService(reviews, cards, slog.Default())
	require.NoError(t, err)

	impl := svc.(*reviewServiceImpl)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    fsrs.Rating
		wantErr bool
	}{
		{"again", fsrs.Again, false},
		{"hard", fsrs.Hard, false},
		{"good", fsrs.Good, false},
		{"easy", fsrs.Easy, false},
		{"GOOD", fsrs.Good, false},
		{" easy ", fsrs.Easy, false},
		{"excellent", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseRating(tc.input)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRating, "input=%q", tc.input)
			continue
		}
		require.NoError(t, err, "input=%q", tc.input)
		assert.Equal(t, tc.want, got, "input=%q", tc.input)
	}
}

func TestSubmitReviewReschedulesCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	reviews := new(MockReviewStore)
	cards := new(MockFlashcardStore)
	svc := newTestReviewService(t, reviews, cards, now)

	state, err := domain.NewFlashcardReview(cardID, userID)
	require.NoError(t, err)
	state.Due = now.Add(-time.Hour)

	reviews.On("GetByFlashcard", mock.Anything, userID, cardID).Return(state, nil)
	reviews.On("Update", mock.Anything, state).Return(nil)

	updated, err := svc.SubmitReview(context.Background(), userID, cardID, "good")
	require.NoError(t, err)

	assert.Equal(t, 1, updated.Reps)
	assert.Equal(t, int(fsrs.Learning), updated.State)
	assert.True(t, updated.Due.After(now), "due should move into the future")
	assert.Equal(t, now, updated.LastReview)

	reviews.AssertExpectations(t)
}

func TestSubmitReviewInvalidRating(t *testing.T) {
	t.Parallel()

	reviews := new(MockReviewStore)
	svc := newTestReviewService(t, reviews, new(MockFlashcardStore), time.Now())

	_, err := svc.SubmitReview(context.Background(), uuid.New(), uuid.New(), "amazing")
	assert.ErrorIs(t, err, ErrInvalidRating)
	reviews.AssertNotCalled(t, "GetByFlashcard", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReviewUnknownCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	cardID := uuid.New()

	reviews := new(MockReviewStore)
	svc := newTestReviewService(t, reviews, new(MockFlashcardStore), time.Now())

	reviews.On("GetByFlashcard", mock.Anything, userID, cardID).Return(nil, store.ErrReviewNotFound)

	_, err := svc.SubmitReview(context.Background(), userID, cardID, "good")
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestListDueCards(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	docID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	reviews := new(MockReviewStore)
	cards := new(MockFlashcardStore)
	svc := newTestReviewService(t, reviews, cards, now)

	card, err := domain.NewFlashcard(userID, docID, "What is DNA?", "Deoxyribonucleic acid.")
	require.NoError(t, err)

	state, err := domain.NewFlashcardReview(card.ID, userID)
	require.NoError(t, err)

	reviews.On("ListDue", mock.Anything, userID, now, defaultDueLimit).
		Return([]*domain.FlashcardReview{state}, nil)
	cards.On("GetByID", mock.Anything, userID, card.ID).Return(card, nil)

	due, err := svc.ListDueCards(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, card, due[0].Flashcard)
	assert.Equal(t, state, due[0].Review)
}

func TestListDueCardsSkipsOrphanedState(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	reviews := new(MockReviewStore)
	cards := new(MockFlashcardStore)
	svc := newTestReviewService(t, reviews, cards, now)

	orphan, err := domain.NewFlashcardReview(uuid.New(), userID)
	require.NoError(t, err)

	reviews.On("ListDue", mock.Anything, userID, now, 5).
		Return([]*domain.FlashcardReview{orphan}, nil)
	cards.On("GetByID", mock.Anything, userID, orphan.FlashcardID).
		Return(nil, store.ErrFlashcardNotFound)

	due, err := svc.ListDueCards(context.Background(), userID, 5)
	require.NoError(t, err)
	assert.Empty(t, due)
}
