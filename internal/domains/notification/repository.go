package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error

	// List returns the user's notifications, newest first.
	List(ctx context.Context, userID uuid.UUID, limit int) ([]Notification, error)

	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkRead only touches the user's own row; a foreign id is NotFound.
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// DeleteReadBefore purges read notifications created before the cutoff,
	// returning how many were removed. Used by the nightly cleanup job.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// ContentSource resolves the bits of questions, answers, and users that the
// worker needs to build notification messages.
type ContentSource interface {
	QuestionInfo(ctx context.Context, id uuid.UUID) (authorID uuid.UUID, title string, err error)
	AnswerAuthor(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	Username(ctx context.Context, id uuid.UUID) (string, error)
}
