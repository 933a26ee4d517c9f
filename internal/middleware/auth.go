package middleware

import (
	"strings"

	"poker_school_backend/internal/service"
	"poker_school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextToken  = "token"
)

// AuthMiddleware resolves the bearer token through the external identity
// service and stores the user id plus the raw token (handlers that need
// signup info forward it) in the request context.
func AuthMiddleware(identity *service.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		userID, err := identity.Resolve(c.Request.Context(), token)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// UserID reads the resolved user id from the context; empty outside the
// authenticated group.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func Token(c *gin.Context) string {
	return c.GetString(ContextToken)
}
