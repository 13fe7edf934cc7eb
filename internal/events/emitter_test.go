package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []*TaskRequestEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *TaskRequestEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func testEmitter() *InMemoryEventEmitter {
	return NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewTaskRequestEvent(t *testing.T) {
	t.Parallel()

	payload := DocumentGenerationPayload{DocumentID: uuid.New(), UserID: uuid.New()}
	event, err := NewTaskRequestEvent(TaskTypeDocumentGeneration, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TaskTypeDocumentGeneration, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var decoded DocumentGenerationPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestInMemoryEventEmitter_EmitEvent(t *testing.T) {
	t.Parallel()

	t.Run("delivers to all handlers", func(t *testing.T) {
		t.Parallel()
		emitter := testEmitter()
		first := &recordingHandler{}
		second := &recordingHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event, err := NewTaskRequestEvent(TaskTypeDocumentGeneration, DocumentGenerationPayload{
			DocumentID: uuid.New(),
			UserID:     uuid.New(),
		})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Len(t, first.events, 1)
		assert.Len(t, second.events, 1)
	})

	t.Run("failing handler does not block later handlers", func(t *testing.T) {
		t.Parallel()
		emitter := testEmitter()
		failing := &recordingHandler{err: errors.New("handler broke")}
		healthy := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(healthy)

		event, err := NewTaskRequestEvent(TaskTypeDocumentGeneration, DocumentGenerationPayload{})
		require.NoError(t, err)

		emitErr := emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, emitErr, "handler broke")
		assert.Len(t, healthy.events, 1)
	})

	t.Run("no handlers is not an error", func(t *testing.T) {
		t.Parallel()
		emitter := testEmitter()
		event, err := NewTaskRequestEvent(TaskTypeDocumentGeneration, DocumentGenerationPayload{})
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})
}
