package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna-backend/internal/domains/user"
	"qna-backend/pkg/jwt"
)

type memoryUserRepo struct {
	users     map[uuid.UUID]*user.User
	questions map[uuid.UUID]int
	answers   map[uuid.UUID]int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:     map[uuid.UUID]*user.User{},
		questions: map[uuid.UUID]int{},
		answers:   map[uuid.UUID]int{},
	}
}

func (m *memoryUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memoryUserRepo) GetByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memoryUserRepo) ActivityCounts(_ context.Context, id uuid.UUID) (int, int, error) {
	return m.questions[id], m.answers[id], nil
}

func newTestService(t *testing.T) (*memoryUserRepo, user.Service) {
	t.Helper()
	repo := newMemoryUserRepo()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	return repo, NewUserService(repo, manager)
}

func register(t *testing.T, svc user.Service, username, email string) *user.AuthResponse {
	t.Helper()
	auth, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "correct horse",
	})
	require.NoError(t, err)
	return auth
}

func TestRegisterAndLogin(t *testing.T) {
	_, svc := newTestService(t)
	auth := register(t, svc, "alice", "alice@example.com")

	assert.Equal(t, "alice", auth.User.Username)
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.NotContains(t, auth.User.PasswordHash, "correct horse")

	login, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	_, svc := newTestService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	// Unknown email looks identical to a bad password.
	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever!",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := newTestService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "another pass",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestRefresh(t *testing.T) {
	_, svc := newTestService(t)
	auth := register(t, svc, "alice", "alice@example.com")

	refreshed, err := svc.Refresh(context.Background(), user.RefreshRequest{
		RefreshToken: auth.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not a refresh token.
	_, err = svc.Refresh(context.Background(), user.RefreshRequest{
		RefreshToken: auth.AccessToken,
	})
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestGetProfile_ActivityCounts(t *testing.T) {
	repo, svc := newTestService(t)
	auth := register(t, svc, "alice", "alice@example.com")

	repo.questions[auth.User.ID] = 3
	repo.answers[auth.User.ID] = 7

	profile, err := svc.GetProfile(context.Background(), auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, profile.QuestionCount)
	assert.Equal(t, 7, profile.AnswerCount)
}

func TestGetProfile_OmitsEmail(t *testing.T) {
	_, svc := newTestService(t)
	auth := register(t, svc, "alice", "alice@example.com")

	profile, err := svc.GetProfile(context.Background(), auth.User.ID)
	require.NoError(t, err)

	// Profiles are served unauthenticated; the email stays private.
	body, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "alice@example.com")
	assert.NotContains(t, string(body), "email")
}

func TestMe_IncludesOwnEmail(t *testing.T) {
	_, svc := newTestService(t)
	auth := register(t, svc, "alice", "alice@example.com")

	account, err := svc.Me(context.Background(), auth.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", account.Email)

	// The password hash never serializes.
	body, err := json.Marshal(account)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
}
