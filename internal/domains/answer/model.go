package answer

import (
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"qna-backend/internal/domains/vote"
)

// Answer belongs to exactly one question. At most one answer per question
// carries IsAccepted; Repository.Accept enforces that transactionally.
type Answer struct {
	ID         uuid.UUID `json:"id" db:"id"`
	QuestionID uuid.UUID `json:"question_id" db:"question_id"`
	AuthorID   uuid.UUID `json:"author_id" db:"author_id"`
	Content    string    `json:"content" db:"content"`
	IsAccepted bool      `json:"is_accepted" db:"is_accepted"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// Author is the public slice of the answer's author.
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// AnswerView is the read model returned to clients: the answer plus its
// author and the vote state recomputed from the ledger.
type AnswerView struct {
	ID         uuid.UUID    `json:"id"`
	QuestionID uuid.UUID    `json:"question_id"`
	Author     Author       `json:"author"`
	Content    string       `json:"content"`
	IsAccepted bool         `json:"is_accepted"`
	Votes      vote.Summary `json:"votes"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Sort orders answers for display: the accepted answer first, then by score
// descending, then oldest first. Ties on score keep the earlier answer ahead.
func Sort(answers []AnswerView) {
	sort.SliceStable(answers, func(i, j int) bool {
		a, b := answers[i], answers[j]
		if a.IsAccepted != b.IsAccepted {
			return a.IsAccepted
		}
		if a.Votes.Score != b.Votes.Score {
			return a.Votes.Score > b.Votes.Score
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r CreateAnswerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 30000).Error("content must be between 1 and 30000 characters"),
		),
	)
}

type UpdateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

func (r UpdateAnswerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.Length(1, 30000).Error("content must be between 1 and 30000 characters"),
		),
	)
}
