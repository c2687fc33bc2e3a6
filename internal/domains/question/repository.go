package question

import (
	"context"

	"github.com/google/uuid"
)

// ListOptions is the storage-level shape of a list query: filter plus
// optional tag-name and text predicates, already paged.
type ListOptions struct {
	Filter Filter
	Tag    string
	Search string
	Offset int
	Limit  int
}

// Repository persists questions and their tag links. Read methods resolve
// authors, tags, and answer counts; vote summaries are filled in by the
// service from the ledger.
type Repository interface {
	// Create inserts the question and its tag links in one transaction.
	Create(ctx context.Context, q *Question, tagIDs []uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*QuestionSummary, error)

	// List returns one page plus the unpaged total for the same predicates.
	List(ctx context.Context, opts ListOptions) ([]QuestionSummary, int, error)

	Update(ctx context.Context, id uuid.UUID, title, description string) error

	// ReplaceTags swaps the question's tag set atomically.
	ReplaceTags(ctx context.Context, questionID uuid.UUID, tagIDs []uuid.UUID) error

	// Delete removes the question; answers and both vote ledgers cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViews bumps the monotonic view counter.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	AuthorID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	QuestionExists(ctx context.Context, id uuid.UUID) (bool, error)
}
