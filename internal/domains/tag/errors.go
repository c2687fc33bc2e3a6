package tag

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/shared/authz"
	"qna-backend/internal/shared/response"
	"qna-backend/pkg/logger"
)

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag name already exists")
	ErrInvalidTag       = errors.New("one or more tag ids are invalid")
	ErrNoTags           = errors.New("at least one tag is required")
)

var tagErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrTagNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "The specified tag does not exist",
	},
	ErrTagAlreadyExists: {
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: "A tag with this name already exists",
	},
	ErrInvalidTag: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: "One or more tag ids are invalid",
	},
	ErrNoTags: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: "At least one valid tag is required",
	},
	authz.ErrForbidden: {
		Status:  http.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: "Only admins can manage tags",
	},
}

func HandleTagError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range tagErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("tag operation failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
