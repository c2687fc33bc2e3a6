package answer

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists answers and enforces the single-accepted-answer
// invariant inside Accept.
type Repository interface {
	Create(ctx context.Context, a *Answer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Answer, error)

	// GetView is GetByID with the author resolved; vote summary left zero.
	GetView(ctx context.Context, id uuid.UUID) (*AnswerView, error)

	// ListByQuestion returns the question's answers with their authors
	// resolved. Vote summaries are filled in by the service.
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]AnswerView, error)

	Update(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Accept marks answerID as the question's accepted answer, clearing any
	// previously accepted sibling in the same transaction. The parent
	// question row is locked so two racing accepts serialize. Returns false
	// when the answer was already accepted (no-op).
	Accept(ctx context.Context, questionID, answerID uuid.UUID) (bool, error)

	// QuestionAuthor resolves the author of the parent question, for the
	// accept authorization check.
	QuestionAuthor(ctx context.Context, questionID uuid.UUID) (uuid.UUID, error)

	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
