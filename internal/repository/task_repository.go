package repository

import (
	"strings"

	"github.com/tasktrackr/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	// LOWER + LIKE keeps substring matching case-insensitive across drivers
	if filter.Title != "" {
		query = query.Where("LOWER(tasks.title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Responsible != "" {
		query = query.Where("LOWER(tasks.responsible) LIKE ?", "%"+strings.ToLower(filter.Responsible)+"%")
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.DeadlineFrom != nil {
		query = query.Where("tasks.deadline >= ?", *filter.DeadlineFrom)
	}
	if filter.DeadlineTo != nil {
		query = query.Where("tasks.deadline <= ?", *filter.DeadlineTo)
	}
	if filter.OnlyOpen {
		query = query.Where("tasks.status <> ?", models.TaskStatusConcluded)
	}
	if filter.OwnerScope != nil {
		query = query.Where("tasks.owner_id = ? OR tasks.owner_id IS NULL", *filter.OwnerScope)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete permanently removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.Task{}, id).Error
}
