package tag

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Tag) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	List(ctx context.Context) ([]Tag, error)
	Popular(ctx context.Context, limit int) ([]PopularTag, error)
	Update(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountExisting returns how many of the given ids exist. Used to validate
	// tag id lists on question create/update.
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
}
