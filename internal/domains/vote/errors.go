package vote

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/shared/response"
	"qna-backend/pkg/logger"
)

var (
	ErrTargetNotFound    = errors.New("vote target not found")
	ErrInvalidDirection  = errors.New("invalid vote direction")
	ErrInvalidTargetKind = errors.New("invalid vote target kind")
	ErrVoteConflict      = errors.New("vote conflict: concurrent vote on the same target")
)

var voteErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrTargetNotFound: {
		Status:  http.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: "The vote target does not exist",
	},
	ErrInvalidDirection: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: "Vote direction must be upvote or downvote",
	},
	ErrInvalidTargetKind: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_INPUT",
		Message: "Vote target must be a question or an answer",
	},
	ErrVoteConflict: {
		Status:  http.StatusConflict,
		Code:    "CONFLICT",
		Message: "Another vote on this target won the race, please retry",
	},
}

// HandleVoteError maps domain errors to HTTP responses. Returns true when err
// was handled (including unknown errors, which become 500s).
func HandleVoteError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	for sentinel, cfg := range voteErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	logger.Error("vote operation failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
