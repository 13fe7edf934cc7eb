package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "bare JSON passes through",
			content: `[{"question":"q","answer":"a"}]`,
			want:    `[{"question":"q","answer":"a"}]`,
		},
		{
			name:    "json fence is stripped",
			content: "```json\n[{\"question\":\"q\"}]\n```",
			want:    `[{"question":"q"}]`,
		},
		{
			name:    "plain fence is stripped",
			content: "```\n[1,2,3]\n```",
			want:    `[1,2,3]`,
		},
		{
			name:    "surrounding whitespace is trimmed",
			content: "  \n[1]\n ",
			want:    `[1]`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extractJSON(tt.content))
		})
	}
}

func TestParseCardDrafts(t *testing.T) {
	t.Parallel()

	t.Run("valid drafts parse", func(t *testing.T) {
		t.Parallel()
		drafts, err := parseCardDrafts(`[
			{"question":"What is osmosis?","answer":"Diffusion of water across a membrane."},
			{"question":"What is diffusion?","answer":"Movement from high to low concentration."}
		]`)

		require.NoError(t, err)
		require.Len(t, drafts, 2)
		assert.Equal(t, "What is osmosis?", drafts[0].Question)
	})

	t.Run("incomplete items are dropped", func(t *testing.T) {
		t.Parallel()
		drafts, err := parseCardDrafts(`[
			{"question":"","answer":"orphaned answer"},
			{"question":"kept","answer":"kept answer"}
		]`)

		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "kept", drafts[0].Question)
	})

	t.Run("malformed JSON is an invalid response", func(t *testing.T) {
		t.Parallel()
		_, err := parseCardDrafts("the model apologizes instead of answering")
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("no usable items is an invalid response", func(t *testing.T) {
		t.Parallel()
		_, err := parseCardDrafts(`[{"question":"","answer":""}]`)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})
}

func TestParseQuizQuestions(t *testing.T) {
	t.Parallel()

	t.Run("ids are renumbered", func(t *testing.T) {
		t.Parallel()
		questions, err := parseQuizQuestions(`[
			{"id":"whatever","question":"Pick one","options":["a","b","c","d"],"correct":1,"explanation":"because"},
			{"id":"","question":"Pick another","options":["w","x","y","z"],"correct":3,"explanation":""}
		]`)

		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "q1", questions[0].ID)
		assert.Equal(t, "q2", questions[1].ID)
	})

	t.Run("invalid questions are dropped", func(t *testing.T) {
		t.Parallel()
		questions, err := parseQuizQuestions(`[
			{"question":"too few options","options":["a","b"],"correct":0},
			{"question":"out of range","options":["a","b","c","d"],"correct":7},
			{"question":"kept","options":["a","b","c","d"],"correct":2}
		]`)

		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "kept", questions[0].Question)
		assert.Equal(t, "q1", questions[0].ID)
	})

	t.Run("fenced quiz JSON parses", func(t *testing.T) {
		t.Parallel()
		questions, err := parseQuizQuestions("```json\n" +
			`[{"question":"Pick","options":["a","b","c","d"],"correct":0}]` +
			"\n```")

		require.NoError(t, err)
		require.Len(t, questions, 1)
	})

	t.Run("empty array is an invalid response", func(t *testing.T) {
		t.Parallel()
		_, err := parseQuizQuestions(`[]`)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})
}
