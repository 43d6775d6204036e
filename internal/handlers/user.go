package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackr/task-tracker-api/internal/dto"
	apierrors "github.com/tasktrackr/task-tracker-api/internal/errors"
	"github.com/tasktrackr/task-tracker-api/internal/services"
)

// UserHandler serves user lookups for the task-assignment dropdown.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SearchOptions returns users as value/label pairs. A blank query returns
// everyone; non-blank queries need at least two characters.
func (h *UserHandler) SearchOptions(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query != "" && utf8.RuneCountInString(query) < 2 {
		apierrors.BadRequest(c, "Search term must have at least 2 characters")
		return
	}

	users, err := h.userService.Search(query)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	options := make([]dto.UserOptionResponse, len(users))
	for i, user := range users {
		options[i] = dto.ToUserOptionResponse(user)
	}

	c.JSON(http.StatusOK, options)
}
