package dto

import (
	"time"

	"github.com/tasktrackr/task-tracker-api/internal/models"
)

// CreateTaskRequest is the input for creating a task. The responsible user
// is optional; without it the task is created unassigned.
type CreateTaskRequest struct {
	Title             string              `json:"title" binding:"required,max=200"`
	Description       string              `json:"description" binding:"max=5000"`
	ResponsibleUserID *uint64             `json:"responsibleUserId"`
	Priority          models.TaskPriority `json:"priority" binding:"required"`
	Deadline          *DateOnly           `json:"deadline" binding:"required"`
	Status            models.TaskStatus   `json:"status"`
}

// UpdateTaskRequest is a partial update; absent fields leave the existing
// values untouched.
type UpdateTaskRequest struct {
	Title             *string              `json:"title"`
	Description       *string              `json:"description"`
	ResponsibleUserID *uint64              `json:"responsibleUserId"`
	Priority          *models.TaskPriority `json:"priority"`
	Deadline          *DateOnly            `json:"deadline"`
	Status            *models.TaskStatus   `json:"status"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Responsible   string              `json:"responsible"`
	Priority      models.TaskPriority `json:"priority"`
	Deadline      DateOnly            `json:"deadline"`
	Status        models.TaskStatus   `json:"status"`
	ResponsibleID *uint64             `json:"responsibleId"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ToTaskResponse converts a Task model to TaskResponse.
func ToTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Responsible:   task.Responsible,
		Priority:      task.Priority,
		Deadline:      NewDateOnly(task.Deadline),
		Status:        task.Status,
		ResponsibleID: task.OwnerID,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of tasks preserving order.
func ToTaskResponses(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskResponse(task)
	}
	return out
}
