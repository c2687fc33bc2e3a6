package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type tells the client which event produced the notification.
type Type string

const (
	TypeNewAnswer      Type = "new_answer"
	TypeAnswerAccepted Type = "answer_accepted"
)

// Notification is one inbox entry for a user. Read entries are purged by the
// nightly cleanup job once they are old enough.
type Notification struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Type       Type      `json:"type" db:"type"`
	QuestionID uuid.UUID `json:"question_id" db:"question_id"`
	AnswerID   uuid.UUID `json:"answer_id" db:"answer_id"`
	ActorID    uuid.UUID `json:"actor_id" db:"actor_id"`
	Message    string    `json:"message" db:"message"`
	Read       bool      `json:"read" db:"read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
