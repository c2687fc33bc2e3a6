package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/internal/domains/notification"
	"qna-backend/internal/shared/middleware"
	"qna-backend/internal/shared/response"
)

const defaultListLimit = 50

type Handler struct {
	repo notification.Repository
}

func NewHandler(repo notification.Repository) *Handler {
	return &Handler{repo: repo}
}

// List - GET /notifications
func (h *Handler) List(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			response.BadRequest(c, "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	items, err := h.repo.List(c.Request.Context(), actor.ID, limit)
	if notification.HandleNotificationError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, items)
}

// UnreadCount - GET /notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	count, err := h.repo.UnreadCount(c.Request.Context(), actor.ID)
	if notification.HandleNotificationError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

// MarkRead - POST /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.repo.MarkRead(c.Request.Context(), actor.ID, id); notification.HandleNotificationError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// MarkAllRead - POST /notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	if err := h.repo.MarkAllRead(c.Request.Context(), actor.ID); notification.HandleNotificationError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true})
}
