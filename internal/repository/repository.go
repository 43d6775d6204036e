package repository

import (
	"time"

	"github.com/tasktrackr/task-tracker-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete permanently removes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks.
// String filters are matched as case-insensitive substrings; OwnerScope,
// when set, restricts results to unowned tasks or tasks owned by that user.
type TaskFilter struct {
	Title        string
	Responsible  string
	Priority     *models.TaskPriority
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
	OnlyOpen     bool
	OwnerScope   *uint64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ExistsByEmail reports whether a user with the given email exists
	ExistsByEmail(email string) (bool, error)

	// Search finds users whose name or email contains the term.
	// A blank term returns all users.
	Search(term string) ([]models.User, error)
}
