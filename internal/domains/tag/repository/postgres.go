package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"qna-backend/internal/domains/tag"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, t *tag.Tag) error {
	query := `
		INSERT INTO tags (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tag.ErrTagAlreadyExists
		}
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM tags WHERE id = $1`

	var t tag.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tag.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &t, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]tag.Tag, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM tags ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []tag.Tag{}
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return tags, nil
}

func (r *postgresRepository) Popular(ctx context.Context, limit int) ([]tag.PopularTag, error) {
	query := `
		SELECT t.id, t.name, t.description, COUNT(qt.question_id) AS question_count
		FROM tags t
		LEFT JOIN question_tags qt ON qt.tag_id = t.id
		GROUP BY t.id
		ORDER BY question_count DESC, t.name ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular tags: %w", err)
	}
	defer rows.Close()

	tags := []tag.PopularTag{}
	for rows.Next() {
		var t tag.PopularTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan popular tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return tags, nil
}

func (r *postgresRepository) Update(ctx context.Context, t *tag.Tag) error {
	query := `
		UPDATE tags
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, t.Name, t.Description, t.UpdatedAt, t.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return tag.ErrTagAlreadyExists
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return tag.ErrTagNotFound
	}
	return nil
}

func (r *postgresRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}

	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tags WHERE id = ANY($1::uuid[])`,
		pq.Array(strs),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return count, nil
}
