package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"qna-backend/internal/shared/authz"
)

// Images are embedded in question and answer bodies by URL; the API stores
// the bytes and hands the URL back.
const (
	MaxImageSize = 5 << 20 // 5 MB
)

var (
	ErrImageTooLarge   = errors.New("image exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrInvalidImageKey = errors.New("invalid image key")
)

// Storage is the object store the images land in.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Service validates and stores rich-text images.
type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// UploadImage stores the image and returns its public URL. Only JPEG and PNG
// are accepted, up to MaxImageSize bytes.
func (s *Service) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	ext, ok := extensions[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	key := fmt.Sprintf("images/%s%s", uuid.New(), ext)
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return url, nil
}

// DeleteImage removes a stored image by filename. Uploads are not tracked
// per user, so removal is a moderation action restricted to admins.
func (s *Service) DeleteImage(ctx context.Context, actor authz.Actor, filename string) error {
	if !actor.IsAdmin() {
		return authz.ErrForbidden
	}
	if filename == "" || strings.ContainsAny(filename, "/\\") {
		return ErrInvalidImageKey
	}
	if err := s.storage.Delete(ctx, "images/"+filename); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
