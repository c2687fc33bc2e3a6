package notification

import (
	"errors"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/shared/response"
	"qna-backend/pkg/logger"
)

var ErrNotificationNotFound = errors.New("notification not found")

// HandleNotificationError maps domain errors to HTTP responses.
func HandleNotificationError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrNotificationNotFound) {
		response.NotFound(c, "Notification not found")
		return true
	}

	logger.Error("notification operation failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
