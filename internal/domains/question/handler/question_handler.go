package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/internal/domains/question"
	"qna-backend/internal/shared/middleware"
	"qna-backend/internal/shared/response"
)

type Handler struct {
	service question.Service
}

func NewHandler(service question.Service) *Handler {
	return &Handler{service: service}
}

// List - GET /questions
func (h *Handler) List(c *gin.Context) {
	var query question.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	if err := query.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), middleware.ViewerID(c), query)
	if question.HandleQuestionError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	})
}

// Get - GET /questions/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid question id")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id, middleware.ViewerID(c))
	if question.HandleQuestionError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Create - POST /questions
func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req question.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	summary, err := h.service.Create(c.Request.Context(), actor, req)
	if question.HandleQuestionError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, summary)
}

// Update - PUT /questions/:id
func (h *Handler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid question id")
		return
	}

	var req question.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	summary, err := h.service.Update(c.Request.Context(), actor, id, req)
	if question.HandleQuestionError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Delete - DELETE /questions/:id
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid question id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); question.HandleQuestionError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
