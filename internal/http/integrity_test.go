package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/novelzone/internal/database/integrity"
	"github.com/mrlokans/novelzone/internal/tasks"
)

type fakeTaskQueue struct {
	enqueued []backlite.Task
	status   backlite.TaskStatus
	err      error
}

func (f *fakeTaskQueue) Enqueue(task backlite.Task) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.enqueued = append(f.enqueued, task)
	return "task-1", nil
}

func (f *fakeTaskQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return f.status, f.err
}

func TestIntegrityController_Check(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.do(t, "GET", "/api/admin/integrity")
	require.Equal(t, http.StatusOK, w.Code)

	result := decode[integrity.Result](t, w)
	assert.Equal(t, "api", result.Trigger)
	require.NotNil(t, result.Report)
	assert.True(t, result.Report.Clean())

	last, ok := env.monitor.Last()
	require.True(t, ok)
	assert.Equal(t, "api", last.Trigger)
}

func TestIntegrityController_Last(t *testing.T) {
	env := setupTestEnv(t, nil)

	assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/api/admin/integrity/last").Code)

	env.monitor.Record("schedule", &integrity.Report{Chapters: []uint{3}}, nil)

	w := env.do(t, "GET", "/api/admin/integrity/last")
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[integrity.Result](t, w)
	assert.Equal(t, "schedule", result.Trigger)
	require.NotNil(t, result.Report)
	assert.Equal(t, []uint{3}, result.Report.Chapters)
}

func TestIntegrityController_Run(t *testing.T) {
	t.Run("enqueues a verification task", func(t *testing.T) {
		queue := &fakeTaskQueue{}
		env := setupTestEnv(t, queue)

		w := env.do(t, "POST", "/api/admin/integrity/run")
		require.Equal(t, http.StatusAccepted, w.Code)

		require.Len(t, queue.enqueued, 1)
		task, ok := queue.enqueued[0].(tasks.VerifyIntegrityTask)
		require.True(t, ok)
		assert.Equal(t, "api", task.Trigger)
	})

	t.Run("queue failure is 500", func(t *testing.T) {
		env := setupTestEnv(t, &fakeTaskQueue{err: errors.New("queue closed")})
		assert.Equal(t, http.StatusInternalServerError, env.do(t, "POST", "/api/admin/integrity/run").Code)
	})

	t.Run("disabled queue is 503", func(t *testing.T) {
		env := setupTestEnv(t, nil)
		assert.Equal(t, http.StatusServiceUnavailable, env.do(t, "POST", "/api/admin/integrity/run").Code)
		assert.Equal(t, http.StatusServiceUnavailable, env.do(t, "GET", "/api/admin/integrity/runs/abc").Code)
	})
}

func TestIntegrityController_RunStatus(t *testing.T) {
	t.Run("reports task status", func(t *testing.T) {
		env := setupTestEnv(t, &fakeTaskQueue{status: backlite.TaskStatusSuccess})

		w := env.do(t, "GET", "/api/admin/integrity/runs/task-1")
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[map[string]interface{}](t, w)
		assert.Equal(t, "task-1", response["id"])
		assert.Equal(t, "success", response["status"])
	})

	t.Run("unknown task is 404", func(t *testing.T) {
		env := setupTestEnv(t, &fakeTaskQueue{status: backlite.TaskStatusNotFound})
		assert.Equal(t, http.StatusNotFound, env.do(t, "GET", "/api/admin/integrity/runs/nope").Code)
	})
}
