package question

import (
	"context"

	"github.com/google/uuid"

	"qna-backend/internal/domains/answer"
	"qna-backend/internal/shared/authz"
)

// Service is the question use-case surface. viewerID may be uuid.Nil for
// anonymous reads; it only affects the viewer_vote field in summaries.
type Service interface {
	Create(ctx context.Context, actor authz.Actor, req CreateQuestionRequest) (*QuestionSummary, error)

	// Get returns the full detail view and increments the view counter.
	Get(ctx context.Context, id, viewerID uuid.UUID) (*QuestionDetail, error)

	List(ctx context.Context, viewerID uuid.UUID, query ListQuery) (*ListResult, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req UpdateQuestionRequest) (*QuestionSummary, error)
	Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error
}

// AnswerSource supplies the answers embedded in a question detail view, in
// display order with vote summaries filled. Implemented by the answer
// service.
type AnswerSource interface {
	ListByQuestion(ctx context.Context, questionID, viewerID uuid.UUID) ([]answer.AnswerView, error)
}
