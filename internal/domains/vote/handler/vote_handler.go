package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/internal/domains/vote"
	"qna-backend/internal/shared/authz"
	"qna-backend/internal/shared/middleware"
	"qna-backend/internal/shared/response"
)

type Handler struct {
	service vote.Service
}

func NewHandler(service vote.Service) *Handler {
	return &Handler{service: service}
}

// VoteQuestion - POST /questions/:id/vote
func (h *Handler) VoteQuestion(c *gin.Context) {
	h.castVote(c, func(actor authz.Actor, targetID uuid.UUID, direction vote.Direction) (*vote.CastVoteResponse, error) {
		return h.service.VoteQuestion(c.Request.Context(), actor, targetID, direction)
	})
}

// VoteAnswer - POST /answers/:id/vote
func (h *Handler) VoteAnswer(c *gin.Context) {
	h.castVote(c, func(actor authz.Actor, targetID uuid.UUID, direction vote.Direction) (*vote.CastVoteResponse, error) {
		return h.service.VoteAnswer(c.Request.Context(), actor, targetID, direction)
	})
}

func (h *Handler) castVote(c *gin.Context, cast func(authz.Actor, uuid.UUID, vote.Direction) (*vote.CastVoteResponse, error)) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid target id")
		return
	}

	var req vote.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	result, err := cast(actor, targetID, vote.Direction(req.Direction))
	if vote.HandleVoteError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}
