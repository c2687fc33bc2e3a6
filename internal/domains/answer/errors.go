package answer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/shared/authz"
	"qna-backend/internal/shared/response"
	"qna-backend/pkg/logger"
)

var (
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAnswerMismatch is returned when the answer exists but does not
	// belong to the question it is being accepted for.
	ErrAnswerMismatch = errors.New("answer does not belong to this question")
)

var answerErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrAnswerNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "Answer not found",
	},
	ErrQuestionNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "Question not found",
	},
	ErrAnswerMismatch: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: "The answer does not belong to this question",
	},
	authz.ErrForbidden: {
		Status:  http.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: "You are not allowed to perform this action",
	},
}

// HandleAnswerError maps domain errors to HTTP responses. Returns true when
// err was handled (including unknown errors, which become 500s).
func HandleAnswerError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range answerErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("answer operation failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
