package models

import (
	"strings"
	"time"
)

// Role is the privilege level of an actor, resolved from the stored roles
// string at the decision boundary. Only the flat string is persisted.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

const (
	RoleTokenUser  = "ROLE_USER"
	RoleTokenAdmin = "ROLE_ADMIN"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(150);not null" json:"name"`
	Email        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Roles        string    `gorm:"type:varchar(255);not null" json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	OwnedTasks []Task `gorm:"foreignKey:OwnerID" json:"-"`
}

// Role resolves the stored roles string to a privilege level. The stored
// value is a flat token list, so containment (not equality) decides admin.
func (u *User) Role() Role {
	if strings.Contains(u.Roles, RoleTokenAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

func (u *User) IsAdmin() bool {
	return u.Role() == RoleAdmin
}
