package task

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTaskStore is an in-memory TaskStore that records status transitions.
type mockTaskStore struct {
	mu         sync.Mutex
	saved      []Task
	statuses   map[uuid.UUID][]TaskStatus
	pending    []Task
	processing []Task
	saveErr    error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{statuses: make(map[uuid.UUID][]TaskStatus)}
}

func (m *mockTaskStore) SaveTask(_ context.Context, t Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, t)
	return nil
}

func (m *mockTaskStore) UpdateTaskStatus(_ context.Context, taskID uuid.UUID, status TaskStatus, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[taskID] = append(m.statuses[taskID], status)
	return nil
}

func (m *mockTaskStore) GetPendingTasks(context.Context) ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending, nil
}

func (m *mockTaskStore) GetProcessingTasks(context.Context, time.Duration) ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.processing, nil
}

func (m *mockTaskStore) WithTx(*sql.Tx) TaskStore { return m }

func (m *mockTaskStore) statusHistory(id uuid.UUID) []TaskStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := make([]TaskStatus, len(m.statuses[id]))
	copy(history, m.statuses[id])
	return history
}

// fakeTask is a controllable Task for runner tests.
type fakeTask struct {
	id       uuid.UUID
	execErr  error
	executed chan struct{}
}

func newFakeTask(execErr error) *fakeTask {
	return &fakeTask{id: uuid.New(), execErr: execErr, executed: make(chan struct{})}
}

func (t *fakeTask) ID() uuid.UUID      { return t.id }
func (t *fakeTask) Type() string       { return "fake_task" }
func (t *fakeTask) Payload() []byte    { return []byte(`{}`) }
func (t *fakeTask) Status() TaskStatus { return TaskStatusPending }

func (t *fakeTask) Execute(context.Context) error {
	close(t.executed)
	return t.execErr
}

func testRunner(store TaskStore) *TaskRunner {
	cfg := TaskRunnerConfig{
		WorkerCount:            1,
		QueueSize:              4,
		StuckTaskAge:           time.Hour,
		StuckTaskCheckInterval: time.Hour,
	}
	return NewTaskRunner(store, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func waitExecuted(t *testing.T, ft *fakeTask) {
	t.Helper()
	select {
	case <-ft.executed:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not executed in time")
	}
}

func TestTaskRunner_SubmitAndExecute(t *testing.T) {
	t.Parallel()

	store := newMockTaskStore()
	runner := testRunner(store)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	ft := newFakeTask(nil)
	require.NoError(t, runner.Submit(context.Background(), ft))

	waitExecuted(t, ft)
	assert.Eventually(t, func() bool {
		history := store.statusHistory(ft.id)
		return len(history) == 2 &&
			history[0] == TaskStatusProcessing &&
			history[1] == TaskStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTaskRunner_FailedTaskIsMarkedFailed(t *testing.T) {
	t.Parallel()

	store := newMockTaskStore()
	runner := testRunner(store)

	var handlerCalled sync.WaitGroup
	handlerCalled.Add(1)
	runner.SetErrorHandler(func(Task, error) { handlerCalled.Done() })

	require.NoError(t, runner.Start())
	defer runner.Stop()

	ft := newFakeTask(errors.New("generation exploded"))
	require.NoError(t, runner.Submit(context.Background(), ft))

	waitExecuted(t, ft)
	handlerCalled.Wait()

	assert.Eventually(t, func() bool {
		history := store.statusHistory(ft.id)
		return len(history) == 2 && history[1] == TaskStatusFailed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTaskRunner_SubmitFailsWhenSaveFails(t *testing.T) {
	t.Parallel()

	store := newMockTaskStore()
	store.saveErr = errors.New("db down")
	runner := testRunner(store)

	err := runner.Submit(context.Background(), newFakeTask(nil))
	assert.ErrorContains(t, err, "failed to save task")
}

func TestTaskRunner_RecoverRequeuesUnfinishedTasks(t *testing.T) {
	t.Parallel()

	store := newMockTaskStore()
	pending := newFakeTask(nil)
	interrupted := newFakeTask(nil)
	store.pending = []Task{pending}
	store.processing = []Task{interrupted}

	runner := testRunner(store)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	waitExecuted(t, pending)
	waitExecuted(t, interrupted)

	// The interrupted task must be reset to pending before re-execution.
	assert.Eventually(t, func() bool {
		history := store.statusHistory(interrupted.id)
		return len(history) >= 1 && history[0] == TaskStatusPending
	}, 2*time.Second, 10*time.Millisecond)
}
