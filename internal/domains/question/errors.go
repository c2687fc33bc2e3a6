package question

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/domains/tag"
	"qna-backend/internal/shared/authz"
	"qna-backend/internal/shared/response"
	"qna-backend/pkg/logger"
)

var ErrQuestionNotFound = errors.New("question not found")

var questionErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrQuestionNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "Question not found",
	},
	tag.ErrNoTags: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: "A question needs at least one tag",
	},
	tag.ErrInvalidTag: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: "One or more tag ids do not exist",
	},
	authz.ErrForbidden: {
		Status:  http.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: "You are not allowed to perform this action",
	},
}

// HandleQuestionError maps domain errors to HTTP responses. Returns true when
// err was handled (including unknown errors, which become 500s).
func HandleQuestionError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range questionErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("question operation failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
