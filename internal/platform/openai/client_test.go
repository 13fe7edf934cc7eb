package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadAhmed-503/study-buddy/internal/generation"
)

// completionServer fakes the chat-completions endpoint, replying with the
// given assistant content for every request.
func completionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		if status != http.StatusOK {
			w.WriteHeader(status)
			io.WriteString(w, `{"error":{"message":"nope","type":"server_error"}}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
		require.NoError(t, err)
	}))
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: baseURL + "/v1",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Options{Model: "m"}, nil)
	assert.ErrorIs(t, err, generation.ErrNotConfigured)

	_, err = NewClient(Options{APIKey: "k"}, nil)
	assert.ErrorIs(t, err, generation.ErrNotConfigured)
}

func TestClient_GenerateSummary(t *testing.T) {
	t.Parallel()

	server := completionServer(t, "A tidy three sentence summary.", http.StatusOK)
	defer server.Close()

	summary, err := testClient(t, server.URL).GenerateSummary(context.Background(), "source text")

	require.NoError(t, err)
	assert.Equal(t, "A tidy three sentence summary.", summary)
}

func TestClient_GenerateFlashcards_StripsFences(t *testing.T) {
	t.Parallel()

	server := completionServer(t, "```json\n"+
		`[{"question":"What is osmosis?","answer":"Water diffusion across a membrane."}]`+
		"\n```", http.StatusOK)
	defer server.Close()

	drafts, err := testClient(t, server.URL).GenerateFlashcards(context.Background(), "source text", 3)

	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "What is osmosis?", drafts[0].Question)
}

func TestClient_GenerateQuiz_RenumbersAndCaps(t *testing.T) {
	t.Parallel()

	server := completionServer(t,
		`[{"id":"a","question":"One","options":["a","b","c","d"],"correct":0},`+
			`{"id":"b","question":"Two","options":["a","b","c","d"],"correct":1},`+
			`{"id":"c","question":"Three","options":["a","b","c","d"],"correct":2}]`,
		http.StatusOK)
	defer server.Close()

	questions, err := testClient(t, server.URL).GenerateQuiz(context.Background(), "source text", 2)

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "q1", questions[0].ID)
	assert.Equal(t, "q2", questions[1].ID)
}

func TestClient_ServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	server := completionServer(t, "", http.StatusInternalServerError)
	defer server.Close()

	_, err := testClient(t, server.URL).GenerateSummary(context.Background(), "source text")

	assert.ErrorIs(t, err, generation.ErrTransientFailure)
}
