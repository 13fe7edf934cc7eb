package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
)

type stubDocumentService struct {
	doc       *domain.Document
	getErr    error
	statuses  []domain.DocumentStatus
	statusErr error
}

func (s *stubDocumentService) GetDocumentForGeneration(context.Context, uuid.UUID) (*domain.Document, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.doc, nil
}

func (s *stubDocumentService) UpdateDocumentStatus(_ context.Context, _ uuid.UUID, status domain.DocumentStatus) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	s.statuses = append(s.statuses, status)
	return nil
}

func (s *stubDocumentService) finalStatus() domain.DocumentStatus {
	if len(s.statuses) == 0 {
		return ""
	}
	return s.statuses[len(s.statuses)-1]
}

type stubContentService struct {
	summaries  int
	flashcards int
	quizzes    int
	saveErr    error
}

func (s *stubContentService) SaveSummary(context.Context, uuid.UUID, uuid.UUID, string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.summaries++
	return nil
}

func (s *stubContentService) SaveFlashcards(_ context.Context, _, _ uuid.UUID, drafts []generation.CardDraft) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.flashcards += len(drafts)
	return nil
}

func (s *stubContentService) SaveQuiz(_ context.Context, _, _ uuid.UUID, questions []domain.QuizQuestion) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.quizzes += len(questions)
	return nil
}

// stubTaskGenerator lets each stage fail independently.
type stubTaskGenerator struct {
	summaryErr   error
	flashcardErr error
	quizErr      error
	chatErr      error
}

func (g *stubTaskGenerator) GenerateSummary(context.Context, string) (string, error) {
	if g.summaryErr != nil {
		return "", g.summaryErr
	}
	return "a summary", nil
}

func (g *stubTaskGenerator) GenerateFlashcards(_ context.Context, _ string, count int) ([]generation.CardDraft, error) {
	if g.flashcardErr != nil {
		return nil, g.flashcardErr
	}
	drafts := make([]generation.CardDraft, count)
	for i := range drafts {
		drafts[i] = generation.CardDraft{Question: "q", Answer: "a"}
	}
	return drafts, nil
}

func (g *stubTaskGenerator) GenerateQuiz(_ context.Context, _ string, count int) ([]domain.QuizQuestion, error) {
	if g.quizErr != nil {
		return nil, g.quizErr
	}
	questions := make([]domain.QuizQuestion, count)
	for i := range questions {
		questions[i] = domain.QuizQuestion{
			ID:       "q1",
			Question: "pick",
			Options:  []string{"a", "b", "c", "d"},
			Correct:  0,
		}
	}
	return questions, nil
}

func (g *stubTaskGenerator) RespondToChat(context.Context, string, string) (string, error) {
	if g.chatErr != nil {
		return "", g.chatErr
	}
	return "reply", nil
}

func testDocument(t *testing.T) *domain.Document {
	t.Helper()
	doc, err := domain.NewDocument(uuid.New(), "Biology Notes", "notes.txt",
		"Photosynthesis is the process by which plants convert light energy into chemical energy.")
	require.NoError(t, err)
	return doc
}

func newTestTask(
	t *testing.T,
	docs *stubDocumentService,
	content *stubContentService,
	gen generation.Generator,
) *DocumentGenerationTask {
	t.Helper()
	task, err := NewDocumentGenerationTask(
		uuid.New(), uuid.New(),
		docs, content, gen,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	return task
}

func TestNewDocumentGenerationTask_Validation(t *testing.T) {
	t.Parallel()

	docs := &stubDocumentService{}
	content := &stubContentService{}
	gen := &stubTaskGenerator{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewDocumentGenerationTask(uuid.Nil, uuid.New(), docs, content, gen, log)
	assert.ErrorIs(t, err, ErrEmptyDocumentID)

	_, err = NewDocumentGenerationTask(uuid.New(), uuid.Nil, docs, content, gen, log)
	assert.ErrorIs(t, err, ErrEmptyTaskUserID)

	_, err = NewDocumentGenerationTask(uuid.New(), uuid.New(), nil, content, gen, log)
	assert.ErrorIs(t, err, ErrNilDocumentService)

	_, err = NewDocumentGenerationTask(uuid.New(), uuid.New(), docs, content, nil, log)
	assert.ErrorIs(t, err, ErrNilGenerator)
}

func TestDocumentGenerationTask_Execute(t *testing.T) {
	t.Parallel()

	t.Run("all stages succeed", func(t *testing.T) {
		t.Parallel()
		docs := &stubDocumentService{doc: testDocument(t)}
		content := &stubContentService{}
		task := newTestTask(t, docs, content, &stubTaskGenerator{})

		require.NoError(t, task.Execute(context.Background()))

		assert.Equal(t, domain.DocumentStatusCompleted, docs.finalStatus())
		assert.Equal(t, 1, content.summaries)
		assert.Equal(t, DefaultFlashcardCount, content.flashcards)
		assert.Equal(t, DefaultQuizCount, content.quizzes)
		assert.Equal(t, TaskStatusCompleted, task.Status())
	})

	t.Run("one stage failing yields completed_with_errors", func(t *testing.T) {
		t.Parallel()
		docs := &stubDocumentService{doc: testDocument(t)}
		content := &stubContentService{}
		task := newTestTask(t, docs, content, &stubTaskGenerator{
			quizErr: errors.New("quiz generation broke"),
		})

		require.NoError(t, task.Execute(context.Background()))

		assert.Equal(t, domain.DocumentStatusCompletedWithErrors, docs.finalStatus())
		assert.Equal(t, 1, content.summaries)
		assert.Equal(t, DefaultFlashcardCount, content.flashcards)
		assert.Zero(t, content.quizzes)
	})

	t.Run("all stages failing yields failed document and task error", func(t *testing.T) {
		t.Parallel()
		docs := &stubDocumentService{doc: testDocument(t)}
		content := &stubContentService{}
		task := newTestTask(t, docs, content, &stubTaskGenerator{
			summaryErr:   errors.New("s"),
			flashcardErr: errors.New("f"),
			quizErr:      errors.New("q"),
		})

		err := task.Execute(context.Background())

		require.Error(t, err)
		assert.Equal(t, domain.DocumentStatusFailed, docs.finalStatus())
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("document fetch failure fails the task", func(t *testing.T) {
		t.Parallel()
		docs := &stubDocumentService{getErr: errors.New("gone")}
		task := newTestTask(t, docs, &stubContentService{}, &stubTaskGenerator{})

		err := task.Execute(context.Background())

		require.Error(t, err)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})
}
