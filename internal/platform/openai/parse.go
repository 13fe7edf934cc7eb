package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
)

// extractJSON strips markdown code fences from a model response and returns
// the JSON payload. Models frequently wrap JSON in ```json fences even when
// told not to.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	if idx := strings.LastIndex(content, "```"); idx >= 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}

// parseCardDrafts decodes a flashcard response. Items missing a question or
// an answer are dropped; a response with no usable item is an error.
func parseCardDrafts(content string) ([]generation.CardDraft, error) {
	var raw []generation.CardDraft
	if err := json.Unmarshal([]byte(extractJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing flashcard JSON: %v", generation.ErrInvalidResponse, err)
	}

	drafts := make([]generation.CardDraft, 0, len(raw))
	for _, d := range raw {
		d.Question = strings.TrimSpace(d.Question)
		d.Answer = strings.TrimSpace(d.Answer)
		if d.Question == "" || d.Answer == "" {
			continue
		}
		drafts = append(drafts, d)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("%w: no usable flashcards in response", generation.ErrInvalidResponse)
	}
	return drafts, nil
}

// parseQuizQuestions decodes a quiz response and renumbers question IDs to
// q1..qN in result order. Items failing domain validation are dropped; a
// response with no usable item is an error.
func parseQuizQuestions(content string) ([]domain.QuizQuestion, error) {
	var raw []domain.QuizQuestion
	if err := json.Unmarshal([]byte(extractJSON(content)), &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing quiz JSON: %v", generation.ErrInvalidResponse, err)
	}

	questions := make([]domain.QuizQuestion, 0, len(raw))
	for _, q := range raw {
		q.ID = fmt.Sprintf("q%d", len(questions)+1)
		if err := q.Validate(); err != nil {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no usable quiz questions in response", generation.ErrInvalidResponse)
	}
	return questions, nil
}
