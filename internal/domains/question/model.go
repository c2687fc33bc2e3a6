package question

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"qna-backend/internal/domains/answer"
	"qna-backend/internal/domains/tag"
	"qna-backend/internal/domains/vote"
)

// Question is the persisted entity. ViewCount only ever grows; every detail
// read bumps it.
type Question struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AuthorID    uuid.UUID `json:"author_id" db:"author_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ViewCount   int       `json:"view_count" db:"view_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// QuestionSummary is the list-page read model: the question with author,
// tags, answer count, and the vote state recomputed from the ledger.
type QuestionSummary struct {
	ID          uuid.UUID    `json:"id"`
	Author      Author       `json:"author"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Tags        []tag.Tag    `json:"tags"`
	AnswerCount int          `json:"answer_count"`
	ViewCount   int          `json:"view_count"`
	Votes       vote.Summary `json:"votes"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// QuestionDetail is the detail-page read model: the summary plus all answers
// in display order.
type QuestionDetail struct {
	QuestionSummary
	Answers []answer.AnswerView `json:"answers"`
}

// Filter selects the list ordering (and, for unanswered, a predicate).
type Filter string

const (
	FilterNewest     Filter = "newest"     // created_at desc
	FilterUnanswered Filter = "unanswered" // zero answers, created_at desc
	FilterPopular    Filter = "popular"    // view_count desc
	FilterActive     Filter = "active"     // latest activity across question and answers
	FilterVotes      Filter = "votes"      // ledger-derived score desc
	FilterViews      Filter = "views"      // view_count desc
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterNewest, FilterUnanswered, FilterPopular, FilterActive, FilterVotes, FilterViews:
		return true
	}
	return false
}

// ParseFilter falls back to newest for the empty string, the original
// default. Unknown values are kept so validation can reject them.
func ParseFilter(s string) Filter {
	if s == "" {
		return FilterNewest
	}
	return Filter(s)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListQuery is the query-string surface of the list endpoint.
type ListQuery struct {
	Filter   string `form:"filter"`
	Tag      string `form:"tag"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

func (q ListQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Filter, validation.In(
			string(FilterNewest), string(FilterUnanswered), string(FilterPopular),
			string(FilterActive), string(FilterVotes), string(FilterViews),
		).Error("unknown filter")),
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.PageSize, validation.Min(0), validation.Max(maxPageSize)),
	)
}

// Normalize applies paging defaults after validation.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	return q
}

// ListResult is one page of questions plus the paging math the client needs.
type ListResult struct {
	Items      []QuestionSummary `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

type CreateQuestionRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description" binding:"required"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

func (r CreateQuestionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, 50000).Error("description must be between 1 and 50000 characters"),
		),
	)
}

// UpdateQuestionRequest edits title, description, and optionally the tag set.
// TagIDs nil means "leave tags alone"; an empty slice is rejected by the tag
// validator.
type UpdateQuestionRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description" binding:"required"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

func (r UpdateQuestionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200).Error("title must be between 1 and 200 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, 50000).Error("description must be between 1 and 50000 characters"),
		),
	)
}
