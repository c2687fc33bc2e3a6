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

	"qna-backend/internal/domains/vote"
	"qna-backend/pkg/database"
)

// postgresRepository keeps the two ledgers (question_votes, answer_votes) in
// PostgreSQL. Raw SQL with pgxpool.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) vote.Repository {
	return &postgresRepository{pool: pool}
}

// ledgerTable maps a target kind to its table and target column.
func ledgerTable(kind vote.TargetKind) (table, targetCol string, err error) {
	switch kind {
	case vote.TargetQuestion:
		return "question_votes", "question_id", nil
	case vote.TargetAnswer:
		return "answer_votes", "answer_id", nil
	default:
		return "", "", vote.ErrInvalidTargetKind
	}
}

// CastVote runs the toggle inside one transaction. The SELECT ... FOR UPDATE
// serializes concurrent votes by the same user on the same target; the unique
// (user_id, target) index is the backstop for the insert race between two
// first-time votes, which surfaces as ErrVoteConflict.
func (r *postgresRepository) CastVote(ctx context.Context, voterID, targetID uuid.UUID, kind vote.TargetKind, direction vote.Direction) (vote.Outcome, error) {
	table, targetCol, err := ledgerTable(kind)
	if err != nil {
		return "", err
	}

	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (vote.Outcome, error) {
		selectQuery := fmt.Sprintf(
			`SELECT direction FROM %s WHERE user_id = $1 AND %s = $2 FOR UPDATE`,
			table, targetCol,
		)

		var existing *vote.Direction
		var current vote.Direction
		err := tx.QueryRow(ctx, selectQuery, voterID, targetID).Scan(&current)
		switch {
		case err == nil:
			existing = &current
		case errors.Is(err, pgx.ErrNoRows):
			existing = nil
		default:
			return "", fmt.Errorf("failed to look up existing vote: %w", err)
		}

		outcome := vote.Resolve(existing, direction)

		switch outcome {
		case vote.OutcomeCreated:
			insertQuery := fmt.Sprintf(`
				INSERT INTO %s (id, user_id, %s, direction, created_at, updated_at)
				VALUES ($1, $2, $3, $4, now(), now())
				ON CONFLICT (user_id, %s) DO NOTHING
			`, table, targetCol, targetCol)

			result, err := tx.Exec(ctx, insertQuery, uuid.New(), voterID, targetID, direction)
			if err != nil {
				return "", mapLedgerError(err)
			}
			if result.RowsAffected() == 0 {
				// Another transaction inserted between our lookup and insert.
				return "", vote.ErrVoteConflict
			}

		case vote.OutcomeRemoved:
			deleteQuery := fmt.Sprintf(
				`DELETE FROM %s WHERE user_id = $1 AND %s = $2`,
				table, targetCol,
			)
			if _, err := tx.Exec(ctx, deleteQuery, voterID, targetID); err != nil {
				return "", fmt.Errorf("failed to remove vote: %w", err)
			}

		case vote.OutcomeSwitched:
			updateQuery := fmt.Sprintf(
				`UPDATE %s SET direction = $1, updated_at = now() WHERE user_id = $2 AND %s = $3`,
				table, targetCol,
			)
			if _, err := tx.Exec(ctx, updateQuery, direction, voterID, targetID); err != nil {
				return "", fmt.Errorf("failed to switch vote: %w", err)
			}
		}

		return outcome, nil
	})
}

func (r *postgresRepository) Summary(ctx context.Context, targetID uuid.UUID, kind vote.TargetKind, viewerID uuid.UUID) (*vote.Summary, error) {
	table, targetCol, err := ledgerTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) FILTER (WHERE direction = 'upvote')   AS upvotes,
			COUNT(*) FILTER (WHERE direction = 'downvote') AS downvotes,
			COALESCE(MAX(direction) FILTER (WHERE user_id = $2), '') AS viewer
		FROM %s
		WHERE %s = $1
	`, table, targetCol)

	var summary vote.Summary
	var viewer string
	err = r.pool.QueryRow(ctx, query, targetID, viewerID).Scan(
		&summary.Upvotes, &summary.Downvotes, &viewer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize votes: %w", err)
	}

	summary.Score = summary.Upvotes - summary.Downvotes
	summary.Viewer = vote.Direction(viewer)
	return &summary, nil
}

func (r *postgresRepository) SummaryForTargets(ctx context.Context, targetIDs []uuid.UUID, kind vote.TargetKind, viewerID uuid.UUID) (map[uuid.UUID]*vote.Summary, error) {
	result := make(map[uuid.UUID]*vote.Summary, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = &vote.Summary{}
	}
	if len(targetIDs) == 0 {
		return result, nil
	}

	table, targetCol, err := ledgerTable(kind)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(targetIDs))
	for i, id := range targetIDs {
		ids[i] = id.String()
	}

	query := fmt.Sprintf(`
		SELECT
			%s AS target_id,
			COUNT(*) FILTER (WHERE direction = 'upvote')   AS upvotes,
			COUNT(*) FILTER (WHERE direction = 'downvote') AS downvotes,
			COALESCE(MAX(direction) FILTER (WHERE user_id = $2), '') AS viewer
		FROM %s
		WHERE %s = ANY($1::uuid[])
		GROUP BY %s
	`, targetCol, table, targetCol, targetCol)

	rows, err := r.pool.Query(ctx, query, pq.Array(ids), viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var targetID uuid.UUID
		var summary vote.Summary
		var viewer string
		if err := rows.Scan(&targetID, &summary.Upvotes, &summary.Downvotes, &viewer); err != nil {
			return nil, fmt.Errorf("failed to scan vote summary: %w", err)
		}
		summary.Score = summary.Upvotes - summary.Downvotes
		summary.Viewer = vote.Direction(viewer)
		result[targetID] = &summary
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// mapLedgerError translates constraint violations to domain errors.
func mapLedgerError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation on (user_id, target)
			return vote.ErrVoteConflict
		case "23503": // foreign_key_violation: target deleted concurrently
			return vote.ErrTargetNotFound
		}
	}
	return fmt.Errorf("failed to insert vote: %w", err)
}
