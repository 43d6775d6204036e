package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackr/task-tracker-api/internal/dto"
	apierrors "github.com/tasktrackr/task-tracker-api/internal/errors"
	"github.com/tasktrackr/task-tracker-api/internal/middleware"
	"github.com/tasktrackr/task-tracker-api/internal/models"
	"github.com/tasktrackr/task-tracker-api/internal/services"
)

// TaskHandler translates HTTP requests into task-service calls.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create creates a new task for the authenticated actor.
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if !req.Priority.IsValid() {
		apierrors.BadRequest(c, "Invalid priority")
		return
	}
	if req.Status != "" && !req.Status.IsValid() {
		apierrors.BadRequest(c, "Invalid status")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Deadline:      req.Deadline.Time,
		Status:        req.Status,
		ResponsibleID: req.ResponsibleUserID,
	}, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskResponse(*task))
}

// Get returns a single task by id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// Update applies a partial update on behalf of the authenticated actor.
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := taskID(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		apierrors.BadRequest(c, "Invalid priority")
		return
	}
	if req.Status != nil && !req.Status.IsValid() {
		apierrors.BadRequest(c, "Invalid status")
		return
	}

	input := services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		ResponsibleID: req.ResponsibleUserID,
	}
	if req.Deadline != nil {
		input.Deadline = &req.Deadline.Time
	}

	task, err := h.taskService.Update(id, input, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// Delete permanently removes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(id, actor); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Complete marks a task as concluded.
func (h *TaskHandler) Complete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Complete(id, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// Claim links the authenticated actor as owner of an unowned task.
func (h *TaskHandler) Claim(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.LinkToSelf(id, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponse(*task))
}

// Search lists tasks matching the query filters, scoped to the actor.
func (h *TaskHandler) Search(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	input := services.SearchTasksInput{
		Title:       c.Query("title"),
		Responsible: c.Query("responsible"),
		OnlyOpen:    true,
	}

	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		if !priority.IsValid() {
			apierrors.BadRequest(c, "Invalid priority")
			return
		}
		input.Priority = &priority
	}

	if raw := c.Query("deadlineFrom"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid deadlineFrom, expected YYYY-MM-DD")
			return
		}
		input.DeadlineFrom = &from
	}
	if raw := c.Query("deadlineTo"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid deadlineTo, expected YYYY-MM-DD")
			return
		}
		input.DeadlineTo = &to
	}

	if raw := c.Query("onlyNotConcluded"); raw != "" {
		onlyOpen, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid onlyNotConcluded, expected boolean")
			return
		}
		input.OnlyOpen = onlyOpen
	}

	tasks, err := h.taskService.Search(input, actor)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskResponses(tasks))
}

func taskID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return 0, false
	}
	return id, true
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrResponsibleNotFound):
		apierrors.NotFound(c, "Responsible user not found")
	case errors.Is(err, services.ErrConcludedTaskLocked):
		apierrors.Forbidden(c, "Standard users cannot modify or remove concluded tasks")
	case errors.Is(err, services.ErrNotTaskOwner):
		apierrors.Forbidden(c, "You must be the assigned owner to modify this task")
	case errors.Is(err, services.ErrTaskAlreadyOwned):
		apierrors.Forbidden(c, "Task already has an owner")
	case errors.Is(err, services.ErrDeadlineInPast):
		apierrors.BadRequest(c, "Deadline must be today or in the future")
	default:
		apierrors.InternalError(c, "")
	}
}
