package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"qna-backend/internal/domains/notification"
)

// postgresRepository implements both the notification store and the content
// lookups the worker needs; they share the pool and live in one place.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *postgresRepository {
	return &postgresRepository{pool: pool}
}

var (
	_ notification.Repository    = (*postgresRepository)(nil)
	_ notification.ContentSource = (*postgresRepository)(nil)
)

func (r *postgresRepository) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, question_id, answer_id, actor_id, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, now())
		RETURNING created_at
	`

	err := r.pool.QueryRow(ctx, query,
		n.ID, n.UserID, n.Type, n.QuestionID, n.AnswerID, n.ActorID, n.Message,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *postgresRepository) List(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	query := `
		SELECT id, user_id, type, question_id, answer_id, actor_id, message, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	items := []notification.Notification{}
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(
			&n.ID, &n.UserID, &n.Type, &n.QuestionID, &n.AnswerID, &n.ActorID,
			&n.Message, &n.Read, &n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *postgresRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE user_id = $1 AND NOT read`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM notifications WHERE read AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup notifications: %w", err)
	}
	return int(result.RowsAffected()), nil
}

func (r *postgresRepository) QuestionInfo(ctx context.Context, id uuid.UUID) (uuid.UUID, string, error) {
	var authorID uuid.UUID
	var title string
	err := r.pool.QueryRow(ctx,
		`SELECT author_id, title FROM questions WHERE id = $1`, id,
	).Scan(&authorID, &title)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, "", fmt.Errorf("question %s not found", id)
	}
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to get question info: %w", err)
	}
	return authorID, title, nil
}

func (r *postgresRepository) AnswerAuthor(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM answers WHERE id = $1`, id).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("answer %s not found", id)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get answer author: %w", err)
	}
	return authorID, nil
}

func (r *postgresRepository) Username(ctx context.Context, id uuid.UUID) (string, error) {
	var username string
	err := r.pool.QueryRow(ctx, `SELECT username FROM users WHERE id = $1`, id).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("user %s not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get username: %w", err)
	}
	return username, nil
}
