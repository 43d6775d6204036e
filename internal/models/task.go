package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusInProgress TaskStatus = "EM_ANDAMENTO"
	TaskStatusConcluded  TaskStatus = "CONCLUIDA"
)

// IsValid reports whether the value is one of the recognized statuses.
func (s TaskStatus) IsValid() bool {
	return s == TaskStatusInProgress || s == TaskStatusConcluded
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "ALTA"
	TaskPriorityMedium TaskPriority = "MEDIA"
	TaskPriorityLow    TaskPriority = "BAIXA"
)

// IsValid reports whether the value is one of the recognized priorities.
func (p TaskPriority) IsValid() bool {
	return p == TaskPriorityHigh || p == TaskPriorityMedium || p == TaskPriorityLow
}

// SeverityRank orders priorities for sorting: ALTA before MEDIA before BAIXA.
// Unrecognized or empty priorities sort last.
func (p TaskPriority) SeverityRank() int {
	switch p {
	case TaskPriorityHigh:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityLow:
		return 3
	default:
		return int(^uint(0) >> 1)
	}
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Responsible string       `gorm:"type:varchar(150)" json:"responsible"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	Deadline    time.Time    `gorm:"type:date;not null" json:"deadline"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'EM_ANDAMENTO'" json:"status"`
	OwnerID     *uint64      `gorm:"index" json:"owner_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsConcluded reports whether the task reached its terminal status.
func (t *Task) IsConcluded() bool {
	return t.Status == TaskStatusConcluded
}

// IsOwnedBy reports whether the task is assigned to the given user.
func (t *Task) IsOwnedBy(userID uint64) bool {
	return t.OwnerID != nil && *t.OwnerID == userID
}
