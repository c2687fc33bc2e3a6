package answer

import (
	"context"

	"github.com/google/uuid"

	"qna-backend/internal/shared/authz"
)

// Service is the answer use-case surface. viewerID may be uuid.Nil for
// anonymous reads.
type Service interface {
	Create(ctx context.Context, actor authz.Actor, questionID uuid.UUID, req CreateAnswerRequest) (*AnswerView, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateAnswerRequest) (*AnswerView, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error

	// Accept marks the answer as accepted and returns the question's answers
	// in display order. Only the parent question's author may do this; a
	// previously accepted answer is silently demoted.
	Accept(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]AnswerView, error)

	ListByQuestion(ctx context.Context, questionID, viewerID uuid.UUID) ([]AnswerView, error)
}

// Notifier fans out answer events to the owning users. Implementations
// enqueue background work; delivery failures must not fail the request.
type Notifier interface {
	NotifyNewAnswer(ctx context.Context, questionID, answerID, actorID uuid.UUID) error
	NotifyAnswerAccepted(ctx context.Context, questionID, answerID, actorID uuid.UUID) error
}
