package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasktrackr/task-tracker-api/internal/auth"
	apierrors "github.com/tasktrackr/task-tracker-api/internal/errors"
	"github.com/tasktrackr/task-tracker-api/internal/models"
	"github.com/tasktrackr/task-tracker-api/internal/services"
)

const contextKeyActor = "actor"

// RequireAuth resolves the caller's identity from a Bearer token and loads
// the full user record into the request context. Any failure along the way
// ends in 401: an invalid token, an expired token and a token naming an
// unknown principal are indistinguishable to the caller.
func RequireAuth(tokens *auth.TokenService, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if !tokens.Validate(tokenStr) {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		email, err := tokens.Subject(tokenStr)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		actor, err := users.GetByEmail(email)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(contextKeyActor, actor)
		c.Next()
	}
}

// GetActor retrieves the authenticated user from the request context.
func GetActor(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(contextKeyActor)
	if !exists {
		return nil, false
	}
	actor, ok := v.(*models.User)
	return actor, ok
}
