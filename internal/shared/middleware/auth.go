package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/internal/shared/authz"
	"qna-backend/internal/shared/response"
	"qna-backend/pkg/jwt"
)

// AuthMiddleware validates the Bearer token and stores the actor identity in
// the gin context under "userID" and "role".
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user id in token")
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// ActorFromContext rebuilds the authz.Actor stored by AuthMiddleware.
// ok=false means the route was not behind AuthMiddleware.
func ActorFromContext(c *gin.Context) (authz.Actor, bool) {
	idVal, exists := c.Get("userID")
	if !exists {
		return authz.Actor{}, false
	}
	id, ok := idVal.(uuid.UUID)
	if !ok {
		return authz.Actor{}, false
	}

	role := c.GetString("role")
	if role == "" {
		role = authz.RoleUser
	}

	return authz.Actor{ID: id, Role: role}, true
}
