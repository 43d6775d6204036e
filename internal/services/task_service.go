package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tasktrackr/task-tracker-api/internal/models"
	"github.com/tasktrackr/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrConcludedTaskLocked = errors.New("standard users cannot modify or remove concluded tasks")
	ErrNotTaskOwner        = errors.New("user is not the assigned owner of this task")
	ErrTaskAlreadyOwned    = errors.New("task already has an owner")
	ErrDeadlineInPast      = errors.New("deadline must be today or in the future")
	ErrResponsibleNotFound = errors.New("responsible user not found")
)

// TaskService enforces ownership and role rules on every task mutation and
// scopes search results to the calling actor. Every operation takes the
// resolved actor explicitly; there is no ambient security context.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title         string
	Description   string
	Priority      models.TaskPriority
	Deadline      time.Time
	Status        models.TaskStatus
	ResponsibleID *uint64
}

// UpdateTaskInput represents a partial update. Nil fields are left
// unchanged; no field supports explicit clearing.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	Deadline      *time.Time
	Status        *models.TaskStatus
	ResponsibleID *uint64
}

// SearchTasksInput holds the optional search filters.
type SearchTasksInput struct {
	Title        string
	Responsible  string
	Priority     *models.TaskPriority
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	OnlyOpen     bool
}

// Create creates a task on behalf of any authenticated actor. The task may
// be left unassigned; when a responsible user is given, the denormalized
// responsible name is taken from that user at assignment time.
func (s *TaskService) Create(input CreateTaskInput, actor *models.User) (*models.Task, error) {
	if dateOnly(input.Deadline).Before(dateOnly(time.Now())) {
		return nil, ErrDeadlineInPast
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusInProgress
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Deadline:    dateOnly(input.Deadline),
		Status:      status,
	}

	if input.ResponsibleID != nil {
		responsible, err := s.resolveResponsible(*input.ResponsibleID)
		if err != nil {
			return nil, err
		}
		task.OwnerID = &responsible.ID
		task.Responsible = responsible.Name
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Get returns a task by ID.
func (s *TaskService) Get(id uint64) (*models.Task, error) {
	return s.findTask(id)
}

// Update applies a partial update. A change set whose only effect is
// assigning the actor as owner of an unowned task is treated as a
// self-claim and skips the modification guard; the terminal-status lock
// still applies to it. Everything else goes through the guard first.
func (s *TaskService) Update(id uint64, input UpdateTaskInput, actor *models.User) (*models.Task, error) {
	existing, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	if isSelfClaim(existing, input, actor) {
		if existing.IsConcluded() {
			return nil, ErrConcludedTaskLocked
		}
		existing.OwnerID = &actor.ID
		existing.Responsible = actor.Name
		if err := s.taskRepo.Update(existing); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
		return existing, nil
	}

	if err := s.ensureCanModify(existing, actor); err != nil {
		return nil, err
	}

	if input.Title != nil {
		existing.Title = *input.Title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Priority != nil {
		existing.Priority = *input.Priority
	}
	if input.Deadline != nil {
		existing.Deadline = dateOnly(*input.Deadline)
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}
	if input.ResponsibleID != nil {
		// Owner and responsible name always move together.
		responsible, err := s.resolveResponsible(*input.ResponsibleID)
		if err != nil {
			return nil, err
		}
		existing.OwnerID = &responsible.ID
		existing.Responsible = responsible.Name
	}

	if err := s.taskRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return existing, nil
}

// Delete permanently removes a task, subject to the modification guard.
func (s *TaskService) Delete(id uint64, actor *models.User) error {
	existing, err := s.findTask(id)
	if err != nil {
		return err
	}

	if err := s.ensureCanModify(existing, actor); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(existing.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// Complete forces the task into its terminal status, subject to the
// modification guard. Completing an already concluded task is a no-op.
func (s *TaskService) Complete(id uint64, actor *models.User) (*models.Task, error) {
	existing, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureCanModify(existing, actor); err != nil {
		return nil, err
	}

	existing.Status = models.TaskStatusConcluded
	if err := s.taskRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return existing, nil
}

// LinkToSelf assigns the actor as owner of a task that has no owner yet.
// Concluded tasks and tasks owned by someone else are rejected; linking a
// task the actor already owns succeeds without change.
func (s *TaskService) LinkToSelf(id uint64, actor *models.User) (*models.Task, error) {
	existing, err := s.findTask(id)
	if err != nil {
		return nil, err
	}

	if existing.IsConcluded() {
		return nil, ErrConcludedTaskLocked
	}

	if existing.OwnerID != nil && *existing.OwnerID != actor.ID {
		return nil, ErrTaskAlreadyOwned
	}

	existing.OwnerID = &actor.ID
	existing.Responsible = actor.Name

	if err := s.taskRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to link task: %w", err)
	}

	return existing, nil
}

// Search returns tasks matching the filters, scoped to what the actor may
// see: admins see everything, everyone else only unowned tasks and their
// own. Results are ordered by deadline, then priority severity, then id.
func (s *TaskService) Search(input SearchTasksInput, actor *models.User) ([]models.Task, error) {
	filter := repository.TaskFilter{
		Title:        input.Title,
		Responsible:  input.Responsible,
		Priority:     input.Priority,
		DeadlineFrom: input.DeadlineFrom,
		DeadlineTo:   input.DeadlineTo,
		OnlyOpen:     input.OnlyOpen,
	}
	if !actor.IsAdmin() {
		filter.OwnerScope = &actor.ID
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].Deadline.Equal(tasks[j].Deadline) {
			return tasks[i].Deadline.Before(tasks[j].Deadline)
		}
		ri, rj := tasks[i].Priority.SeverityRank(), tasks[j].Priority.SeverityRank()
		if ri != rj {
			return ri < rj
		}
		return tasks[i].ID < tasks[j].ID
	})

	return tasks, nil
}

// ensureCanModify is the shared guard for update, delete and complete.
// Admins bypass it entirely. Everyone else is rejected on concluded tasks
// and on tasks they do not own, unowned tasks included.
func (s *TaskService) ensureCanModify(task *models.Task, actor *models.User) error {
	if actor.IsAdmin() {
		return nil
	}

	if task.IsConcluded() {
		return ErrConcludedTaskLocked
	}

	if !task.IsOwnedBy(actor.ID) {
		return ErrNotTaskOwner
	}

	return nil
}

// isSelfClaim reports whether the change set's only effect is assigning the
// actor as owner of a currently unowned task.
func isSelfClaim(existing *models.Task, input UpdateTaskInput, actor *models.User) bool {
	return existing.OwnerID == nil &&
		input.ResponsibleID != nil &&
		*input.ResponsibleID == actor.ID &&
		input.Title == nil &&
		input.Description == nil &&
		input.Priority == nil &&
		input.Deadline == nil &&
		input.Status == nil
}

func (s *TaskService) findTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) resolveResponsible(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponsibleNotFound
		}
		return nil, fmt.Errorf("failed to find responsible user: %w", err)
	}
	return user, nil
}

// dateOnly truncates a timestamp to calendar-date precision.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
