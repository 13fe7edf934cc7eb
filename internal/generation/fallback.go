package generation

import (
	"context"
	"log/slog"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

// FallbackGenerator tries the remote backend first and degrades to the local
// engine when the remote call fails or returns nothing usable. The fallback
// is invisible to callers: every method keeps the remote backend's contract
// and only the used_fallback log attribute records which path served the
// request.
type FallbackGenerator struct {
	remote Generator
	local  Generator
	logger *slog.Logger
}

var _ Generator = (*FallbackGenerator)(nil)

// NewFallbackGenerator composes a remote and a local backend. remote may be
// nil when no API key is configured, in which case every call goes straight
// to the local engine. local must be non-nil.
func NewFallbackGenerator(remote, local Generator, logger *slog.Logger) *FallbackGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackGenerator{remote: remote, local: local, logger: logger}
}

// GenerateSummary implements Generator.
func (g *FallbackGenerator) GenerateSummary(ctx context.Context, text string) (string, error) {
	if g.remote != nil {
		summary, err := g.remote.GenerateSummary(ctx, text)
		if err == nil && summary != "" {
			g.logUsed(ctx, "summary", false, nil)
			return summary, nil
		}
		g.logUsed(ctx, "summary", true, err)
	}
	return g.local.GenerateSummary(ctx, text)
}

// GenerateFlashcards implements Generator.
func (g *FallbackGenerator) GenerateFlashcards(ctx context.Context, text string, count int) ([]CardDraft, error) {
	if g.remote != nil {
		drafts, err := g.remote.GenerateFlashcards(ctx, text, count)
		if err == nil && len(drafts) > 0 {
			g.logUsed(ctx, "flashcards", false, nil)
			return drafts, nil
		}
		g.logUsed(ctx, "flashcards", true, err)
	}
	return g.local.GenerateFlashcards(ctx, text, count)
}

// GenerateQuiz implements Generator.
func (g *FallbackGenerator) GenerateQuiz(ctx context.Context, text string, count int) ([]domain.QuizQuestion, error) {
	if g.remote != nil {
		questions, err := g.remote.GenerateQuiz(ctx, text, count)
		if err == nil && len(questions) > 0 {
			g.logUsed(ctx, "quiz", false, nil)
			return questions, nil
		}
		g.logUsed(ctx, "quiz", true, err)
	}
	return g.local.GenerateQuiz(ctx, text, count)
}

// RespondToChat implements Generator.
func (g *FallbackGenerator) RespondToChat(ctx context.Context, message, documentText string) (string, error) {
	if g.remote != nil {
		reply, err := g.remote.RespondToChat(ctx, message, documentText)
		if err == nil && reply != "" {
			g.logUsed(ctx, "chat", false, nil)
			return reply, nil
		}
		g.logUsed(ctx, "chat", true, err)
	}
	return g.local.RespondToChat(ctx, message, documentText)
}

func (g *FallbackGenerator) logUsed(ctx context.Context, operation string, usedFallback bool, err error) {
	if !usedFallback {
		g.logger.DebugContext(ctx, "generation served by remote backend",
			"operation", operation,
			"used_fallback", false)
		return
	}
	attrs := []any{
		"operation", operation,
		"used_fallback", true,
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	} else {
		attrs = append(attrs, "reason", "remote returned empty result")
	}
	g.logger.WarnContext(ctx, "generation falling back to local engine", attrs...)
}
