package vote

import (
	"context"

	"github.com/google/uuid"

	"qna-backend/internal/shared/authz"
)

// Service is the vote boundary consumed by the HTTP layer.
type Service interface {
	VoteQuestion(ctx context.Context, actor authz.Actor, questionID uuid.UUID, direction Direction) (*CastVoteResponse, error)
	VoteAnswer(ctx context.Context, actor authz.Actor, answerID uuid.UUID, direction Direction) (*CastVoteResponse, error)
}
