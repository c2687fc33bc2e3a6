package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/internal/domains/tag"
	"qna-backend/internal/shared/middleware"
	"qna-backend/internal/shared/response"
)

type Handler struct {
	service tag.Service
}

func NewHandler(service tag.Service) *Handler {
	return &Handler{service: service}
}

// List - GET /tags
func (h *Handler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if tag.HandleTagError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// Popular - GET /tags/popular?limit=10
func (h *Handler) Popular(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	tags, err := h.service.Popular(c.Request.Context(), limit)
	if tag.HandleTagError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// Create - POST /admin/tags
func (h *Handler) Create(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req tag.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), actor, req)
	if tag.HandleTagError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update - PUT /admin/tags/:id
func (h *Handler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	var req tag.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), actor, id, req)
	if tag.HandleTagError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete - DELETE /admin/tags/:id
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tag id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); tag.HandleTagError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "tag deleted"})
}
