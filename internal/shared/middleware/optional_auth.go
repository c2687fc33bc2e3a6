package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/pkg/jwt"
)

// OptionalAuthMiddleware resolves the actor when a valid Bearer token is
// present but never rejects the request. Public reads use this so the
// response can carry the viewer's own vote state.
func OptionalAuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set("userID", userID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// ViewerID returns the authenticated user's id, or uuid.Nil for anonymous
// requests. Use on routes behind OptionalAuthMiddleware.
func ViewerID(c *gin.Context) uuid.UUID {
	if actor, ok := ActorFromContext(c); ok {
		return actor.ID
	}
	return uuid.Nil
}
