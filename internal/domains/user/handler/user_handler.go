package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qna-backend/internal/domains/user"
	"qna-backend/internal/shared/middleware"
	"qna-backend/internal/shared/response"
)

type Handler struct {
	service user.Service
}

func NewHandler(service user.Service) *Handler {
	return &Handler{service: service}
}

// Register - POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	auth, err := h.service.Register(c.Request.Context(), req)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, auth)
}

// Login - POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Refresh - POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_INPUT", "validation failed", err.Error())
		return
	}

	auth, err := h.service.Refresh(c.Request.Context(), req)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, auth)
}

// Me - GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	account, err := h.service.Me(c.Request.Context(), actor.ID)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, account)
}

// GetProfile - GET /users/:id
func (h *Handler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if user.HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, profile)
}
