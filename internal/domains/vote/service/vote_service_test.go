package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna-backend/internal/domains/vote"
	"qna-backend/internal/shared/authz"
)

// memoryLedger is an in-memory vote.Repository sharing toggle semantics with
// the postgres ledger through vote.Resolve.
type memoryLedger struct {
	entries map[vote.TargetKind]map[ledgerKey]vote.Direction
}

type ledgerKey struct {
	voterID  uuid.UUID
	targetID uuid.UUID
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		entries: map[vote.TargetKind]map[ledgerKey]vote.Direction{
			vote.TargetQuestion: {},
			vote.TargetAnswer:   {},
		},
	}
}

func (m *memoryLedger) CastVote(_ context.Context, voterID, targetID uuid.UUID, kind vote.TargetKind, direction vote.Direction) (vote.Outcome, error) {
	ledger := m.entries[kind]
	key := ledgerKey{voterID: voterID, targetID: targetID}

	var existing *vote.Direction
	if current, ok := ledger[key]; ok {
		existing = &current
	}

	outcome := vote.Resolve(existing, direction)
	switch outcome {
	case vote.OutcomeCreated, vote.OutcomeSwitched:
		ledger[key] = direction
	case vote.OutcomeRemoved:
		delete(ledger, key)
	}
	return outcome, nil
}

func (m *memoryLedger) Summary(_ context.Context, targetID uuid.UUID, kind vote.TargetKind, viewerID uuid.UUID) (*vote.Summary, error) {
	summary := &vote.Summary{}
	for key, direction := range m.entries[kind] {
		if key.targetID != targetID {
			continue
		}
		if direction == vote.DirectionUp {
			summary.Upvotes++
		} else {
			summary.Downvotes++
		}
		if key.voterID == viewerID {
			summary.Viewer = direction
		}
	}
	summary.Score = summary.Upvotes - summary.Downvotes
	return summary, nil
}

func (m *memoryLedger) SummaryForTargets(ctx context.Context, targetIDs []uuid.UUID, kind vote.TargetKind, viewerID uuid.UUID) (map[uuid.UUID]*vote.Summary, error) {
	result := make(map[uuid.UUID]*vote.Summary, len(targetIDs))
	for _, id := range targetIDs {
		summary, err := m.Summary(ctx, id, kind, viewerID)
		if err != nil {
			return nil, err
		}
		result[id] = summary
	}
	return result, nil
}

func (m *memoryLedger) rowCount(kind vote.TargetKind, targetID uuid.UUID) int {
	count := 0
	for key := range m.entries[kind] {
		if key.targetID == targetID {
			count++
		}
	}
	return count
}

// memoryTargets is a vote.TargetSource backed by sets of known ids.
type memoryTargets struct {
	questions map[uuid.UUID]bool
	answers   map[uuid.UUID]bool
}

func newMemoryTargets() *memoryTargets {
	return &memoryTargets{
		questions: map[uuid.UUID]bool{},
		answers:   map[uuid.UUID]bool{},
	}
}

func (m *memoryTargets) QuestionExists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.questions[id], nil
}

func (m *memoryTargets) AnswerExists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.answers[id], nil
}

func newTestService() (vote.Service, *memoryLedger, *memoryTargets) {
	ledger := newMemoryLedger()
	targets := newMemoryTargets()
	return NewVoteService(ledger, targets), ledger, targets
}

func actorFor(id uuid.UUID) authz.Actor {
	return authz.Actor{ID: id, Role: authz.RoleUser}
}

func TestVoteQuestion_ToggleCycle(t *testing.T) {
	svc, ledger, targets := newTestService()
	questionID := uuid.New()
	targets.questions[questionID] = true
	voter := uuid.New()

	// First upvote creates the ledger row.
	res, err := svc.VoteQuestion(context.Background(), actorFor(voter), questionID, vote.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeCreated, res.Outcome)
	assert.Equal(t, 1, res.Summary.Score)
	assert.Equal(t, vote.DirectionUp, res.Summary.Viewer)

	// Same direction again toggles it off.
	res, err = svc.VoteQuestion(context.Background(), actorFor(voter), questionID, vote.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeRemoved, res.Outcome)
	assert.Equal(t, 0, res.Summary.Score)
	assert.Empty(t, res.Summary.Viewer)
	assert.Equal(t, 0, ledger.rowCount(vote.TargetQuestion, questionID))

	// A third cast recreates it, back to the original score.
	res, err = svc.VoteQuestion(context.Background(), actorFor(voter), questionID, vote.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeCreated, res.Outcome)
	assert.Equal(t, 1, res.Summary.Score)
}

func TestVoteAnswer_SwitchKeepsSingleRow(t *testing.T) {
	svc, ledger, targets := newTestService()
	answerID := uuid.New()
	targets.answers[answerID] = true
	voter := uuid.New()

	_, err := svc.VoteAnswer(context.Background(), actorFor(voter), answerID, vote.DirectionUp)
	require.NoError(t, err)

	res, err := svc.VoteAnswer(context.Background(), actorFor(voter), answerID, vote.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeSwitched, res.Outcome)
	assert.Equal(t, -1, res.Summary.Score)
	assert.Equal(t, vote.DirectionDown, res.Summary.Viewer)

	// Never two rows for one (user, target) pair.
	assert.Equal(t, 1, ledger.rowCount(vote.TargetAnswer, answerID))
}

func TestVoteQuestion_ScoreDerivation(t *testing.T) {
	svc, _, targets := newTestService()
	questionID := uuid.New()
	targets.questions[questionID] = true

	// 5 upvotes, 3 downvotes, interleaved: score must be 2 regardless of order.
	for i := 0; i < 5; i++ {
		_, err := svc.VoteQuestion(context.Background(), actorFor(uuid.New()), questionID, vote.DirectionUp)
		require.NoError(t, err)
		if i < 3 {
			_, err = svc.VoteQuestion(context.Background(), actorFor(uuid.New()), questionID, vote.DirectionDown)
			require.NoError(t, err)
		}
	}

	res, err := svc.VoteQuestion(context.Background(), actorFor(uuid.New()), questionID, vote.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Summary.Upvotes)
	assert.Equal(t, 3, res.Summary.Downvotes)
	assert.Equal(t, 3, res.Summary.Score)
}

func TestVoteQuestion_TwoUsersScenario(t *testing.T) {
	svc, ledger, targets := newTestService()
	questionID := uuid.New()
	targets.questions[questionID] = true
	u1 := uuid.New()
	u2 := uuid.New()

	// U1 upvotes: 0 -> 1.
	res, err := svc.VoteQuestion(context.Background(), actorFor(u1), questionID, vote.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Summary.Score)

	// U2 downvotes: 1 -> 0.
	res, err = svc.VoteQuestion(context.Background(), actorFor(u2), questionID, vote.DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Summary.Score)

	// U1 upvotes again: toggle-off removes U1's vote, 0 -> -1.
	res, err = svc.VoteQuestion(context.Background(), actorFor(u1), questionID, vote.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeRemoved, res.Outcome)
	assert.Equal(t, -1, res.Summary.Score)

	// Final ledger: exactly one row, U2's downvote.
	assert.Equal(t, 1, ledger.rowCount(vote.TargetQuestion, questionID))
	summary, err := ledger.Summary(context.Background(), questionID, vote.TargetQuestion, u2)
	require.NoError(t, err)
	assert.Equal(t, vote.DirectionDown, summary.Viewer)
}

func TestVoteQuestion_InvalidDirection(t *testing.T) {
	svc, _, targets := newTestService()
	questionID := uuid.New()
	targets.questions[questionID] = true

	_, err := svc.VoteQuestion(context.Background(), actorFor(uuid.New()), questionID, vote.Direction("sideways"))
	assert.ErrorIs(t, err, vote.ErrInvalidDirection)
}

func TestVoteQuestion_TargetNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.VoteQuestion(context.Background(), actorFor(uuid.New()), uuid.New(), vote.DirectionUp)
	assert.ErrorIs(t, err, vote.ErrTargetNotFound)
}

func TestVoteAnswer_SelfVoteAllowed(t *testing.T) {
	svc, _, targets := newTestService()
	answerID := uuid.New()
	targets.answers[answerID] = true
	author := uuid.New()

	// No self-vote restriction exists; the author's vote counts like any other.
	res, err := svc.VoteAnswer(context.Background(), actorFor(author), answerID, vote.DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, vote.OutcomeCreated, res.Outcome)
	assert.Equal(t, 1, res.Summary.Score)
}
