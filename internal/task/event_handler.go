package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MuhammadAhmed-503/study-buddy/internal/events"
)

// TaskFactoryEventHandler bridges the events package and the task runner:
// it turns TaskRequestEvents into tasks and submits them. Registering it on
// the event emitter is what wires "document uploaded" to "generation runs".
type TaskFactoryEventHandler struct {
	factory *DocumentGenerationTaskFactory
	runner  *TaskRunner
	logger  *slog.Logger
}

// NewTaskFactoryEventHandler creates a handler that builds tasks with the
// given factory and submits them to the given runner.
func NewTaskFactoryEventHandler(
	factory *DocumentGenerationTaskFactory,
	runner *TaskRunner,
	logger *slog.Logger,
) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent implements events.EventHandler. Events of unknown type are
// ignored so new event types can be introduced without breaking this
// handler.
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != events.TaskTypeDocumentGeneration {
		h.logger.Debug("ignoring event of unhandled type",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var payload events.DocumentGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal event payload: %w", err)
	}

	t, err := h.factory.CreateTask(payload.DocumentID, payload.UserID)
	if err != nil {
		return fmt.Errorf("failed to create task from event: %w", err)
	}

	if err := h.runner.Submit(ctx, t); err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task submitted from event",
		"event_id", event.ID,
		"task_id", t.ID(),
		"document_id", payload.DocumentID)
	return nil
}
