package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// ActivityCounts returns the user's question and answer totals.
	ActivityCounts(ctx context.Context, id uuid.UUID) (questions, answers int, err error)
}
