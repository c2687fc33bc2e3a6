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
	"github.com/lib/pq"

	"qna-backend/internal/domains/question"
	"qna-backend/internal/domains/tag"
	"qna-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) question.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, q *question.Question, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		insertQuestion := `
			INSERT INTO questions (id, author_id, title, description, view_count, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 0, now(), now())
			RETURNING created_at, updated_at
		`
		err := tx.QueryRow(ctx, insertQuestion, q.ID, q.AuthorID, q.Title, q.Description).
			Scan(&q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}

		for _, tagID := range tagIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO question_tags (question_id, tag_id) VALUES ($1, $2)
				 ON CONFLICT (question_id, tag_id) DO NOTHING`,
				q.ID, tagID,
			)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23503" {
					// tag deleted between validation and insert
					return tag.ErrInvalidTag
				}
				return fmt.Errorf("failed to link tag: %w", err)
			}
		}
		return nil
	})
}

// summarySelect is the projection shared by GetByID and List. Vote summaries
// are not part of it; the service derives those from the ledger.
const summarySelect = `
	SELECT q.id, q.title, q.description, q.view_count, q.created_at, q.updated_at,
	       u.id, u.username,
	       (SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answer_count
	FROM questions q
	JOIN users u ON u.id = q.author_id
`

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*question.QuestionSummary, error) {
	var s question.QuestionSummary
	err := r.pool.QueryRow(ctx, summarySelect+` WHERE q.id = $1`, id).Scan(
		&s.ID, &s.Title, &s.Description, &s.ViewCount, &s.CreatedAt, &s.UpdatedAt,
		&s.Author.ID, &s.Author.Username, &s.AnswerCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, question.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	tags, err := r.tagsForQuestions(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	s.Tags = tags[id]
	if s.Tags == nil {
		s.Tags = []tag.Tag{}
	}
	return &s, nil
}

// buildPredicates assembles the WHERE clause shared by List and its count
// query. All predicates reference only the questions table (subqueries for
// tags and answers) so the two queries cannot drift.
func buildPredicates(opts question.ListOptions) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.Tag != "" {
		args = append(args, opts.Tag)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM question_tags qt
			JOIN tags t ON t.id = qt.tag_id
			WHERE qt.question_id = q.id AND t.name = $%d
		)`, len(args)))
	}

	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(q.title ILIKE $%d OR q.description ILIKE $%d)`, n, n,
		))
	}

	if opts.Filter == question.FilterUnanswered {
		conditions = append(conditions,
			`NOT EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.id)`)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps a filter to its ORDER BY. The votes ordering derives the
// score from the ledger inline; active takes the latest timestamp across the
// question and its answers.
func orderClause(filter question.Filter) string {
	switch filter {
	case question.FilterPopular, question.FilterViews:
		return ` ORDER BY q.view_count DESC, q.created_at DESC, q.id`
	case question.FilterActive:
		return ` ORDER BY GREATEST(
			q.updated_at,
			COALESCE((SELECT MAX(a.updated_at) FROM answers a WHERE a.question_id = q.id), q.updated_at)
		) DESC, q.id`
	case question.FilterVotes:
		return ` ORDER BY COALESCE((
			SELECT COUNT(*) FILTER (WHERE direction = 'upvote')
			     - COUNT(*) FILTER (WHERE direction = 'downvote')
			FROM question_votes v WHERE v.question_id = q.id
		), 0) DESC, q.created_at DESC, q.id`
	default: // newest, unanswered
		return ` ORDER BY q.created_at DESC, q.id`
	}
}

func (r *postgresRepository) List(ctx context.Context, opts question.ListOptions) ([]question.QuestionSummary, int, error) {
	where, args := buildPredicates(opts)

	var total int
	countQuery := `SELECT COUNT(*) FROM questions q` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count questions: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	listQuery := summarySelect + where + orderClause(opts.Filter) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	summaries := []question.QuestionSummary{}
	for rows.Next() {
		var s question.QuestionSummary
		err := rows.Scan(
			&s.ID, &s.Title, &s.Description, &s.ViewCount, &s.CreatedAt, &s.UpdatedAt,
			&s.Author.ID, &s.Author.Username, &s.AnswerCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan question: %w", err)
		}
		s.Tags = []tag.Tag{}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	ids := make([]uuid.UUID, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}
	tagsByQuestion, err := r.tagsForQuestions(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range summaries {
		if tags, ok := tagsByQuestion[summaries[i].ID]; ok {
			summaries[i].Tags = tags
		}
	}

	return summaries, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, title, description string) error {
	query := `UPDATE questions SET title = $1, description = $2, updated_at = now() WHERE id = $3`

	result, err := r.pool.Exec(ctx, query, title, description, id)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return question.ErrQuestionNotFound
	}
	return nil
}

func (r *postgresRepository) ReplaceTags(ctx context.Context, questionID uuid.UUID, tagIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM question_tags WHERE question_id = $1`, questionID); err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		for _, tagID := range tagIDs {
			_, err := tx.Exec(ctx,
				`INSERT INTO question_tags (question_id, tag_id) VALUES ($1, $2)
				 ON CONFLICT (question_id, tag_id) DO NOTHING`,
				questionID, tagID,
			)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23503" {
					return tag.ErrInvalidTag
				}
				return fmt.Errorf("failed to link tag: %w", err)
			}
		}
		return nil
	})
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// answers, question_tags, and both vote ledgers cascade
	result, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return question.ErrQuestionNotFound
	}
	return nil
}

func (r *postgresRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE questions SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if result.RowsAffected() == 0 {
		return question.ErrQuestionNotFound
	}
	return nil
}

func (r *postgresRepository) AuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM questions WHERE id = $1`, id).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, question.ErrQuestionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get question author: %w", err)
	}
	return authorID, nil
}

func (r *postgresRepository) QuestionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check question existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) tagsForQuestions(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]tag.Tag, error) {
	result := make(map[uuid.UUID][]tag.Tag, len(questionIDs))
	if len(questionIDs) == 0 {
		return result, nil
	}

	ids := make([]string, len(questionIDs))
	for i, id := range questionIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT qt.question_id, t.id, t.name, t.description, t.created_at, t.updated_at
		FROM question_tags qt
		JOIN tags t ON t.id = qt.tag_id
		WHERE qt.question_id = ANY($1::uuid[])
		ORDER BY t.name
	`
	rows, err := r.pool.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load question tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var questionID uuid.UUID
		var t tag.Tag
		if err := rows.Scan(&questionID, &t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question tag: %w", err)
		}
		result[questionID] = append(result[questionID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
