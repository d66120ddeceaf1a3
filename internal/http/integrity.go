package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/novelzone/internal/database/integrity"
	"github.com/mrlokans/novelzone/internal/tasks"
)

// IntegrityTaskQueue enqueues integrity checks and reports on them.
type IntegrityTaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// IntegrityController exposes the orphan checker to operators.
type IntegrityController struct {
	monitor *integrity.Monitor
	queue   IntegrityTaskQueue
}

// NewIntegrityController creates the controller. queue may be nil when the
// task queue is disabled; Run then responds 503.
func NewIntegrityController(monitor *integrity.Monitor, queue IntegrityTaskQueue) *IntegrityController {
	return &IntegrityController{monitor: monitor, queue: queue}
}

// Check handles GET /api/admin/integrity
// Runs the checker synchronously on the request's connection.
func (ic *IntegrityController) Check(c *gin.Context) {
	h, ok := acquireHandle(c)
	if !ok {
		return
	}

	report, err := integrity.NewChecker(h.DB()).Check()
	result := ic.monitor.Record("api", report, err)
	if err != nil {
		respondStoreError(c, err, "integrity report")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Last handles GET /api/admin/integrity/last
func (ic *IntegrityController) Last(c *gin.Context) {
	result, ok := ic.monitor.Last()
	if !ok {
		respondNotFound(c, "integrity result")
		return
	}
	c.JSON(http.StatusOK, result)
}

// Run handles POST /api/admin/integrity/run
func (ic *IntegrityController) Run(c *gin.Context) {
	if ic.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	id, err := ic.queue.Enqueue(tasks.VerifyIntegrityTask{Trigger: "api"})
	if err != nil {
		respondInternalError(c, err, "enqueue integrity check")
		return
	}
	respondAccepted(c, "integrity check enqueued", gin.H{"task_id": id})
}

// RunStatus handles GET /api/admin/integrity/runs/:id
func (ic *IntegrityController) RunStatus(c *gin.Context) {
	if ic.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	taskID := c.Param("id")
	status, err := ic.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "integrity task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": taskID, "status": tasks.StatusString(status)})
}
