package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"qna-backend/internal/domains/answer"
	"qna-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) answer.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, a *answer.Answer) error {
	query := `
		INSERT INTO answers (id, question_id, author_id, content, is_accepted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, false, now(), now())
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, a.ID, a.QuestionID, a.AuthorID, a.Content).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// question_id foreign key: parent question is gone
			return answer.ErrQuestionNotFound
		}
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*answer.Answer, error) {
	query := `
		SELECT id, question_id, author_id, content, is_accepted, created_at, updated_at
		FROM answers
		WHERE id = $1
	`

	var a answer.Answer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.QuestionID, &a.AuthorID, &a.Content, &a.IsAccepted, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, answer.ErrAnswerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) GetView(ctx context.Context, id uuid.UUID) (*answer.AnswerView, error) {
	query := `
		SELECT a.id, a.question_id, a.content, a.is_accepted, a.created_at, a.updated_at,
		       u.id, u.username
		FROM answers a
		JOIN users u ON u.id = a.author_id
		WHERE a.id = $1
	`

	var v answer.AnswerView
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.QuestionID, &v.Content, &v.IsAccepted, &v.CreatedAt, &v.UpdatedAt,
		&v.Author.ID, &v.Author.Username,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, answer.ErrAnswerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return &v, nil
}

func (r *postgresRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]answer.AnswerView, error) {
	query := `
		SELECT a.id, a.question_id, a.content, a.is_accepted, a.created_at, a.updated_at,
		       u.id, u.username
		FROM answers a
		JOIN users u ON u.id = a.author_id
		WHERE a.question_id = $1
		ORDER BY a.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	views := []answer.AnswerView{}
	for rows.Next() {
		var v answer.AnswerView
		err := rows.Scan(
			&v.ID, &v.QuestionID, &v.Content, &v.IsAccepted, &v.CreatedAt, &v.UpdatedAt,
			&v.Author.ID, &v.Author.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return views, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, content string) error {
	query := `UPDATE answers SET content = $1, updated_at = now() WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, content, id)
	if err != nil {
		return fmt.Errorf("failed to update answer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return answer.ErrAnswerNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// answer_votes rows go with the answer via ON DELETE CASCADE
	result, err := r.pool.Exec(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return answer.ErrAnswerNotFound
	}
	return nil
}

// Accept locks the parent question row so concurrent accepts on the same
// question serialize, then demotes any currently accepted sibling and
// promotes answerID in the same transaction. Between the two updates the
// question briefly has zero accepted answers, never two.
func (r *postgresRepository) Accept(ctx context.Context, questionID, answerID uuid.UUID) (bool, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM questions WHERE id = $1 FOR UPDATE`, questionID).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return false, answer.ErrQuestionNotFound
		}
		if err != nil {
			return false, fmt.Errorf("failed to lock question: %w", err)
		}

		var alreadyAccepted bool
		err = tx.QueryRow(ctx,
			`SELECT is_accepted FROM answers WHERE id = $1 AND question_id = $2`,
			answerID, questionID,
		).Scan(&alreadyAccepted)
		if errors.Is(err, pgx.ErrNoRows) {
			return false, answer.ErrAnswerMismatch
		}
		if err != nil {
			return false, fmt.Errorf("failed to check answer: %w", err)
		}
		if alreadyAccepted {
			// re-accepting the accepted answer is a no-op
			return false, nil
		}

		_, err = tx.Exec(ctx,
			`UPDATE answers SET is_accepted = false, updated_at = now()
			 WHERE question_id = $1 AND is_accepted`,
			questionID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to demote accepted answer: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE answers SET is_accepted = true, updated_at = now() WHERE id = $1`,
			answerID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to accept answer: %w", err)
		}

		return true, nil
	})
}

func (r *postgresRepository) QuestionAuthor(ctx context.Context, questionID uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM questions WHERE id = $1`, questionID).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, answer.ErrQuestionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get question author: %w", err)
	}
	return authorID, nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM answers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check answer existence: %w", err)
	}
	return exists, nil
}
