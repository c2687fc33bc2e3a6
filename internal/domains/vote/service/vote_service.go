package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"qna-backend/internal/domains/vote"
	"qna-backend/internal/shared/authz"
)

// voteService validates the request, checks the target, and delegates the
// atomic toggle to the ledger. The returned summary is recomputed from the
// ledger after the mutation, never cached.
type voteService struct {
	repo    vote.Repository
	targets vote.TargetSource
}

func NewVoteService(repo vote.Repository, targets vote.TargetSource) vote.Service {
	return &voteService{
		repo:    repo,
		targets: targets,
	}
}

func (s *voteService) VoteQuestion(ctx context.Context, actor authz.Actor, questionID uuid.UUID, direction vote.Direction) (*vote.CastVoteResponse, error) {
	return s.castVote(ctx, actor, questionID, vote.TargetQuestion, direction)
}

func (s *voteService) VoteAnswer(ctx context.Context, actor authz.Actor, answerID uuid.UUID, direction vote.Direction) (*vote.CastVoteResponse, error) {
	return s.castVote(ctx, actor, answerID, vote.TargetAnswer, direction)
}

func (s *voteService) castVote(ctx context.Context, actor authz.Actor, targetID uuid.UUID, kind vote.TargetKind, direction vote.Direction) (*vote.CastVoteResponse, error) {
	if !direction.IsValid() {
		return nil, vote.ErrInvalidDirection
	}

	// Voting on your own content is allowed. The product has not decided
	// otherwise, so the ledger stays permissive.
	exists, err := s.targetExists(ctx, targetID, kind)
	if err != nil {
		return nil, fmt.Errorf("check vote target: %w", err)
	}
	if !exists {
		return nil, vote.ErrTargetNotFound
	}

	outcome, err := s.repo.CastVote(ctx, actor.ID, targetID, kind, direction)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.Summary(ctx, targetID, kind, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("summarize votes after cast: %w", err)
	}

	return &vote.CastVoteResponse{
		TargetID: targetID,
		Outcome:  outcome,
		Summary:  *summary,
	}, nil
}

func (s *voteService) targetExists(ctx context.Context, targetID uuid.UUID, kind vote.TargetKind) (bool, error) {
	switch kind {
	case vote.TargetQuestion:
		return s.targets.QuestionExists(ctx, targetID)
	case vote.TargetAnswer:
		return s.targets.AnswerExists(ctx, targetID)
	default:
		return false, vote.ErrInvalidTargetKind
	}
}
