package user

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)

	// Me returns the caller's own account, email included. GetProfile is
	// the public view and never exposes the email.
	Me(ctx context.Context, id uuid.UUID) (*User, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
}
