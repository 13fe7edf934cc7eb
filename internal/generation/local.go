package generation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/textgen"
)

// LocalEngine is the heuristic Generator backed by the textgen package. It
// performs no I/O and never returns an error, which makes it the terminal
// fallback: when it runs, the caller gets whatever the heuristics can
// extract from the text.
type LocalEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ Generator = (*LocalEngine)(nil)

// NewLocalEngine creates a LocalEngine seeded from the wall clock.
func NewLocalEngine() *LocalEngine {
	return &LocalEngine{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewLocalEngineWithSource creates a LocalEngine with a caller-controlled
// random source, used by tests that need reproducible quizzes.
func NewLocalEngineWithSource(src rand.Source) *LocalEngine {
	return &LocalEngine{rng: rand.New(src)}
}

// GenerateSummary implements Generator.
func (e *LocalEngine) GenerateSummary(_ context.Context, text string) (string, error) {
	return textgen.GenerateSummary(text), nil
}

// GenerateFlashcards implements Generator.
func (e *LocalEngine) GenerateFlashcards(_ context.Context, text string, count int) ([]CardDraft, error) {
	pairs := textgen.GenerateFlashcards(text, count)
	drafts := make([]CardDraft, len(pairs))
	for i, p := range pairs {
		drafts[i] = CardDraft{Question: p.Question, Answer: p.Answer}
	}
	return drafts, nil
}

// GenerateQuiz implements Generator. The shared rng is mutex-guarded because
// *rand.Rand is not safe for concurrent use.
func (e *LocalEngine) GenerateQuiz(_ context.Context, text string, count int) ([]domain.QuizQuestion, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return textgen.GenerateQuiz(e.rng, text, count), nil
}

// RespondToChat implements Generator.
func (e *LocalEngine) RespondToChat(_ context.Context, message, documentText string) (string, error) {
	return textgen.Respond(message, documentText), nil
}
