package vote

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the vote ledger: one row per (user, target) pair, per target
// kind. Implementations must make CastVote atomic per target so two
// concurrent requests cannot both observe "no existing vote".
type Repository interface {
	// CastVote applies toggle semantics for one (voter, target) pair:
	// no row -> insert (Created); same direction -> delete (Removed);
	// opposite direction -> update in place (Switched).
	CastVote(ctx context.Context, voterID, targetID uuid.UUID, kind TargetKind, direction Direction) (Outcome, error)

	// Summary recomputes score and viewer state from the ledger.
	// viewerID may be uuid.Nil for anonymous reads.
	Summary(ctx context.Context, targetID uuid.UUID, kind TargetKind, viewerID uuid.UUID) (*Summary, error)

	// SummaryForTargets batches Summary for a list of targets of one kind.
	// Targets with no votes are present in the result with a zero Summary.
	SummaryForTargets(ctx context.Context, targetIDs []uuid.UUID, kind TargetKind, viewerID uuid.UUID) (map[uuid.UUID]*Summary, error)
}

// TargetSource verifies that a vote target exists before the ledger is
// touched. Implemented by the question and answer repositories.
type TargetSource interface {
	QuestionExists(ctx context.Context, id uuid.UUID) (bool, error)
	AnswerExists(ctx context.Context, id uuid.UUID) (bool, error)
}
