package middleware

import (
	"github.com/gin-gonic/gin"

	"qna-backend/internal/shared/authz"
	"qna-backend/internal/shared/response"
)

// AdminMiddleware checks the role set by AuthMiddleware. Must run after it.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		role, ok := roleVal.(string)
		if !ok || role != authz.RoleAdmin {
			response.Forbidden(c, "admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
