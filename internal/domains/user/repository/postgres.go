package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"qna-backend/internal/domains/user"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.Role).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return user.ErrEmailTaken
			}
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

const userSelect = `
	SELECT id, username, email, password_hash, role, created_at, updated_at
	FROM users
`

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.getOne(ctx, userSelect+` WHERE id = $1`, id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, userSelect+` WHERE email = $1`, email)
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getOne(ctx, userSelect+` WHERE username = $1`, username)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *postgresRepository) ActivityCounts(ctx context.Context, id uuid.UUID) (int, int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM questions WHERE author_id = $1),
			(SELECT COUNT(*) FROM answers WHERE author_id = $1)
	`

	var questions, answers int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&questions, &answers); err != nil {
		return 0, 0, fmt.Errorf("failed to count user activity: %w", err)
	}
	return questions, answers, nil
}
