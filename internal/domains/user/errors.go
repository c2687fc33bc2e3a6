package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/shared/response"
	"qna-backend/pkg/logger"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

var userErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrUserNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "User not found",
	},
	ErrEmailTaken: {
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: "Email is already registered",
	},
	ErrUsernameTaken: {
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: "Username is already taken",
	},
	ErrInvalidCredentials: {
		Status:  http.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: "Invalid email or password",
	},
	ErrInvalidToken: {
		Status:  http.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: "Invalid or expired token",
	},
}

// HandleUserError maps domain errors to HTTP responses. Returns true when err
// was handled (including unknown errors, which become 500s).
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range userErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("user operation failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
