package dto

import (
	"fmt"

	"github.com/tasktrackr/task-tracker-api/internal/models"
)

// RegisterRequest is the input for user registration. Roles are optional;
// blanks default to ROLE_USER in the service layer.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=150"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Roles    string `json:"roles" binding:"max=255"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    uint64 `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Roles     string `json:"roles"`
}

// UserResponse represents a user in API responses, without credentials.
type UserResponse struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles string `json:"roles"`
}

// UserOptionResponse is the value/label pair the assignment dropdown uses.
type UserOptionResponse struct {
	Value uint64 `json:"value"`
	Label string `json:"label"`
}

// ToUserResponse converts a User model to UserResponse.
func ToUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.Roles,
	}
}

// ToUserOptionResponse converts a User model to an option entry.
func ToUserOptionResponse(user models.User) UserOptionResponse {
	return UserOptionResponse{
		Value: user.ID,
		Label: fmt.Sprintf("%s (%s)", user.Name, user.Email),
	}
}
