package vote

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Direction is the way a user voted on a target.
type Direction string

const (
	DirectionUp   Direction = "upvote"
	DirectionDown Direction = "downvote"
)

func (d Direction) IsValid() bool {
	switch d {
	case DirectionUp, DirectionDown:
		return true
	}
	return false
}

func (d Direction) String() string {
	return string(d)
}

// TargetKind selects which ledger a vote lands in.
type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
)

func (k TargetKind) IsValid() bool {
	switch k {
	case TargetQuestion, TargetAnswer:
		return true
	}
	return false
}

// Outcome describes what CastVote did to the ledger.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"  // first vote by this user on this target
	OutcomeSwitched Outcome = "switched" // direction flipped in place
	OutcomeRemoved  Outcome = "removed"  // same direction again, toggled off
)

// Vote is one ledger row: at most one per (user, target) pair.
type Vote struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	TargetID  uuid.UUID `json:"target_id" db:"target_id"`
	Direction Direction `json:"direction" db:"direction"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Summary is the read model derived from the ledger on every read; the score
// is never stored.
type Summary struct {
	Score     int       `json:"score"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Viewer    Direction `json:"viewer_vote,omitempty"` // empty when anonymous or not voted
}

// Resolve decides what a new vote request does to an existing ledger entry.
// existing is nil when the user has not voted on the target yet. Both the
// postgres ledger and the test fakes go through this so toggle semantics
// cannot drift between them.
func Resolve(existing *Direction, requested Direction) Outcome {
	if existing == nil {
		return OutcomeCreated
	}
	if *existing == requested {
		return OutcomeRemoved
	}
	return OutcomeSwitched
}

// CastVoteRequest is the vote mutation body.
type CastVoteRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (r CastVoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Direction,
			validation.Required.Error("direction is required"),
			validation.In(string(DirectionUp), string(DirectionDown)).Error("direction must be upvote or downvote"),
		),
	)
}

// CastVoteResponse is what vote endpoints return: the recomputed state of the
// target after the mutation.
type CastVoteResponse struct {
	TargetID uuid.UUID `json:"target_id"`
	Outcome  Outcome   `json:"outcome"`
	Summary  Summary   `json:"votes"`
}
