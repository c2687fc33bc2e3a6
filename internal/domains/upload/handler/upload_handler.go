package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"qna-backend/internal/domains/upload"
	"qna-backend/internal/shared/authz"
	"qna-backend/internal/shared/middleware"
	"qna-backend/internal/shared/response"
	"qna-backend/pkg/logger"
)

type Handler struct {
	service *upload.Service
}

func NewHandler(service *upload.Service) *Handler {
	return &Handler{service: service}
}

// UploadImage - POST /uploads/images (multipart form, field "image")
func (h *Handler) UploadImage(c *gin.Context) {
	if _, ok := middleware.ActorFromContext(c); !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	if fileHeader.Size > upload.MaxImageSize {
		response.BadRequest(c, "image exceeds the 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, upload.MaxImageSize+1))
	if err != nil {
		response.BadRequest(c, "could not read image")
		return
	}

	// Sniff the real type; the client-sent header is not trusted.
	contentType := http.DetectContentType(data)

	url, err := h.service.UploadImage(c.Request.Context(), data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrImageTooLarge):
			response.BadRequest(c, "image exceeds the 5MB limit")
		case errors.Is(err, upload.ErrUnsupportedType):
			response.BadRequest(c, "only JPEG and PNG images are supported")
		default:
			logger.Error("image upload failed", err)
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

// DeleteImage - DELETE /uploads/images/:filename (admin)
func (h *Handler) DeleteImage(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	err := h.service.DeleteImage(c.Request.Context(), actor, c.Param("filename"))
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrForbidden):
			response.Forbidden(c, "admin access required")
		case errors.Is(err, upload.ErrInvalidImageKey):
			response.BadRequest(c, "invalid image filename")
		default:
			logger.Error("image delete failed", err)
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
