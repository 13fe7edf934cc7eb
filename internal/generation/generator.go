package generation

import (
	"context"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// CardDraft is a generated question/answer pair before it is persisted as a
// domain.Flashcard. Backends produce drafts; the document pipeline attaches
// ownership and identity.
type CardDraft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generator is the boundary between the application core and a
// content-generation backend. Implementations must be safe for concurrent
// use; the task runner and HTTP handlers share one instance.
//
// Result-length contracts are soft: GenerateFlashcards and GenerateQuiz aim
// for count items but may return fewer when the source text cannot support
// more. Returning zero items without an error is valid degraded output.
type Generator interface {
	// GenerateSummary produces a short prose summary of text.
	GenerateSummary(ctx context.Context, text string) (string, error)

	// GenerateFlashcards produces up to count question/answer drafts from text.
	GenerateFlashcards(ctx context.Context, text string, count int) ([]CardDraft, error)

	// GenerateQuiz produces up to count four-option questions from text.
	// Question IDs are normalized to q1..qN in result order.
	GenerateQuiz(ctx context.Context, text string, count int) ([]domain.QuizQuestion, error)

	// RespondToChat produces a reply to message, grounded in documentText
	// when it is non-empty.
	RespondToChat(ctx context.Context, message, documentText string) (string, error)
}
