package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
)

// Options configures the remote client.
type Options struct {
	// APIKey authenticates against the endpoint. Required.
	APIKey string
	// Model names the chat model to use, e.g. "gpt-4o-mini". Required.
	Model string
	// BaseURL overrides the API endpoint. Empty means the official API.
	BaseURL string
	// MaxTokens caps each completion. Zero means no explicit cap.
	MaxTokens int
	// Temperature controls sampling. Zero value is passed through as-is.
	Temperature float32
}

// Client implements generation.Generator against an OpenAI-compatible
// chat-completions endpoint.
type Client struct {
	api    *goopenai.Client
	opts   Options
	logger *slog.Logger
}

var _ generation.Generator = (*Client)(nil)

// NewClient builds the remote client. It validates options but performs no
// network call; a bad API key surfaces on first use.
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", generation.ErrNotConfigured)
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", generation.ErrNotConfigured)
	}
	if logger == nil {
		logger = slog.Default()
	}

	cfg := goopenai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}

	return &Client{
		api:    goopenai.NewClientWithConfig(cfg),
		opts:   opts,
		logger: logger,
	}, nil
}

// GenerateSummary implements generation.Generator.
func (c *Client) GenerateSummary(ctx context.Context, text string) (string, error) {
	content, err := c.complete(ctx, summarySystemPrompt, summaryUserPrompt(text))
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(content)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", generation.ErrInvalidResponse)
	}
	return summary, nil
}

// GenerateFlashcards implements generation.Generator.
func (c *Client) GenerateFlashcards(ctx context.Context, text string, count int) ([]generation.CardDraft, error) {
	content, err := c.complete(ctx, flashcardSystemPrompt, flashcardUserPrompt(text, count))
	if err != nil {
		return nil, err
	}
	drafts, err := parseCardDrafts(content)
	if err != nil {
		return nil, err
	}
	if len(drafts) > count {
		drafts = drafts[:count]
	}
	return drafts, nil
}

// GenerateQuiz implements generation.Generator.
func (c *Client) GenerateQuiz(ctx context.Context, text string, count int) ([]domain.QuizQuestion, error) {
	content, err := c.complete(ctx, quizSystemPrompt, quizUserPrompt(text, count))
	if err != nil {
		return nil, err
	}
	questions, err := parseQuizQuestions(content)
	if err != nil {
		return nil, err
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

// RespondToChat implements generation.Generator.
func (c *Client) RespondToChat(ctx context.Context, message, documentText string) (string, error) {
	content, err := c.complete(ctx, chatSystemPrompt, chatUserPrompt(message, documentText))
	if err != nil {
		return "", err
	}
	reply := strings.TrimSpace(content)
	if reply == "" {
		return "", fmt.Errorf("%w: empty chat reply", generation.ErrInvalidResponse)
	}
	return reply, nil
}

// complete runs one system+user chat completion and returns the first
// choice's content.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.opts.Model,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", c.mapAPIError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contains no choices", generation.ErrInvalidResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// mapAPIError classifies transport errors so callers can distinguish
// retryable failures. Rate limits and server errors are transient;
// everything else is a hard generation failure.
func (c *Client) mapAPIError(ctx context.Context, err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		c.logger.WarnContext(ctx, "chat completion request failed",
			"status", apiErr.HTTPStatusCode,
			"error", apiErr.Message)
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500 {
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	c.logger.WarnContext(ctx, "chat completion request failed", "error", err)
	return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
}
