package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/shelfsync/internal/tasks"
)

// TaskRunner enqueues maintenance tasks and reports their status.
// Implemented by tasks.Client.
type TaskRunner interface {
	EnqueueLinkSweep() (string, error)
	EnqueueAuditCleanup(retentionDays int) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

const (
	taskTypeLinkSweep    = "sweep_links"
	taskTypeAuditCleanup = "cleanup_audit"
)

// TasksController handles task queue management endpoints.
type TasksController struct {
	runner        TaskRunner
	retentionDays int
}

// NewTasksController creates a new TasksController.
func NewTasksController(runner TaskRunner, retentionDays int) *TasksController {
	return &TasksController{runner: runner, retentionDays: retentionDays}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// ListTaskTypes handles GET /api/tasks/types
// Returns the list of available task types that can be triggered.
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        taskTypeLinkSweep,
			Description: "Remove book/author links whose book or author no longer exists",
			Queue:       tasks.QueueSweepLinks,
		},
		{
			Type:        taskTypeAuditCleanup,
			Description: "Delete audit events older than the retention period",
			Queue:       tasks.QueueCleanupAuditEvents,
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
// Returns the status of a specific task.
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.runner.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run
// Manually triggers a task of the specified type.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var (
		taskID string
		err    error
	)
	switch taskType {
	case taskTypeLinkSweep:
		taskID, err = tc.runner.EnqueueLinkSweep()
	case taskTypeAuditCleanup:
		taskID, err = tc.runner.EnqueueAuditCleanup(tc.retentionDays)
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	respondAccepted(c, "task enqueued", gin.H{
		"task_id": taskID,
		"type":    taskType,
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
