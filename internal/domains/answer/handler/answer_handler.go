package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/internal/domains/answer"
	"qna-backend/internal/shared/middleware"
	"qna-backend/internal/shared/response"
)

type Handler struct {
	service answer.Service
}

func NewHandler(service answer.Service) *Handler {
	return &Handler{service: service}
}

// Create - POST /questions/:id/answers
func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid question id")
		return
	}

	var req answer.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	view, err := h.service.Create(c.Request.Context(), actor, questionID, req)
	if answer.HandleAnswerError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, view)
}

// ListByQuestion - GET /questions/:id/answers
func (h *Handler) ListByQuestion(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid question id")
		return
	}

	views, err := h.service.ListByQuestion(c.Request.Context(), questionID, middleware.ViewerID(c))
	if answer.HandleAnswerError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, views)
}

// Update - PUT /answers/:id
func (h *Handler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid answer id")
		return
	}

	var req answer.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	view, err := h.service.Update(c.Request.Context(), actor, id, req)
	if answer.HandleAnswerError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, view)
}

// Delete - DELETE /answers/:id
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid answer id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); answer.HandleAnswerError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Accept - POST /answers/:id/accept
func (h *Handler) Accept(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid answer id")
		return
	}

	answers, err := h.service.Accept(c.Request.Context(), actor, id)
	if answer.HandleAnswerError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, answers)
}
