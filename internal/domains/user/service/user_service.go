package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"qna-backend/internal/domains/user"
	"qna-backend/internal/shared/authz"
	"qna-backend/pkg/jwt"
	"qna-backend/pkg/logger"
)

const bcryptCost = 12

type userService struct {
	repo user.Repository
	jwt  *jwt.Manager
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo: repo,
		jwt:  jwtManager,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         authz.RoleUser,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("user registered", map[string]interface{}{
		"user_id":  u.ID.String(),
		"username": u.Username,
	})

	return s.issueTokens(u)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		// same error as a bad password, to avoid leaking which emails exist
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, req user.RefreshRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	// Re-read the user so a changed role takes effect on the new pair.
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *userService) Me(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, answers, err := s.repo.ActivityCounts(ctx, id)
	if err != nil {
		return nil, err
	}

	return &user.Profile{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		QuestionCount: questions,
		AnswerCount:   answers,
		CreatedAt:     u.CreatedAt,
	}, nil
}

func (s *userService) issueTokens(u *user.User) (*user.AuthResponse, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Username, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &user.AuthResponse{
		User:         u,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
