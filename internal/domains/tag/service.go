package tag

import (
	"context"

	"github.com/google/uuid"

	"qna-backend/internal/shared/authz"
)

type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateTagRequest) (*Tag, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateTagRequest) (*Tag, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
	List(ctx context.Context) ([]Tag, error)
	Popular(ctx context.Context, limit int) ([]PopularTag, error)

	Validator
}

// Validator is the narrow slice of the tag service the question domain needs.
type Validator interface {
	// ValidateIDs fails with ErrNoTags for an empty list and ErrInvalidTag
	// when any id is unknown.
	ValidateIDs(ctx context.Context, ids []uuid.UUID) error
}
