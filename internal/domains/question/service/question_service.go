package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"qna-backend/internal/domains/question"
	"qna-backend/internal/domains/tag"
	"qna-backend/internal/domains/vote"
	"qna-backend/internal/shared/authz"
	"qna-backend/pkg/logger"
)

// questionService composes the question store with the tag directory, the
// vote ledger, and the answer read model. All derived state (scores, viewer
// votes, answer ordering) is recomputed on every read.
type questionService struct {
	repo    question.Repository
	tags    tag.Validator
	votes   vote.Repository
	answers question.AnswerSource
}

func NewQuestionService(repo question.Repository, tags tag.Validator, votes vote.Repository, answers question.AnswerSource) question.Service {
	return &questionService{
		repo:    repo,
		tags:    tags,
		votes:   votes,
		answers: answers,
	}
}

func (s *questionService) Create(ctx context.Context, actor authz.Actor, req question.CreateQuestionRequest) (*question.QuestionSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	tagIDs := dedupeTagIDs(req.TagIDs)
	if err := s.tags.ValidateIDs(ctx, tagIDs); err != nil {
		return nil, err
	}

	q := &question.Question{
		ID:          uuid.New(),
		AuthorID:    actor.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, q, tagIDs); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, q.ID)
}

func (s *questionService) Get(ctx context.Context, id, viewerID uuid.UUID) (*question.QuestionDetail, error) {
	// The counter moves before the read so the response reflects this view.
	// Losing the increment on a later failure is acceptable; losing
	// concurrent increments is not, and the atomic UPDATE prevents that.
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}

	summary, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	votes, err := s.votes.Summary(ctx, id, vote.TargetQuestion, viewerID)
	if err != nil {
		return nil, fmt.Errorf("summarize question votes: %w", err)
	}
	summary.Votes = *votes

	answers, err := s.answers.ListByQuestion(ctx, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}

	return &question.QuestionDetail{
		QuestionSummary: *summary,
		Answers:         answers,
	}, nil
}

func (s *questionService) List(ctx context.Context, viewerID uuid.UUID, query question.ListQuery) (*question.ListResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	query = query.Normalize()

	opts := question.ListOptions{
		Filter: question.ParseFilter(query.Filter),
		Tag:    query.Tag,
		Search: query.Search,
		Offset: (query.Page - 1) * query.PageSize,
		Limit:  query.PageSize,
	}

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := s.fillVotes(ctx, items, viewerID); err != nil {
		return nil, err
	}

	totalPages := (total + query.PageSize - 1) / query.PageSize
	return &question.ListResult{
		Items:      items,
		Total:      total,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *questionService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req question.UpdateQuestionRequest) (*question.QuestionSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	authorID, err := s.repo.AuthorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanEdit(actor, authorID); err != nil {
		return nil, err
	}

	// nil leaves the tag set alone; anything else replaces it
	if req.TagIDs != nil {
		tagIDs := dedupeTagIDs(req.TagIDs)
		if err := s.tags.ValidateIDs(ctx, tagIDs); err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTags(ctx, id, tagIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, req.Title, req.Description); err != nil {
		return nil, err
	}

	summary, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.Summary(ctx, id, vote.TargetQuestion, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("summarize question votes: %w", err)
	}
	summary.Votes = *votes
	return summary, nil
}

func (s *questionService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	authorID, err := s.repo.AuthorID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanDelete(actor, authorID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("question deleted", map[string]interface{}{
		"question_id": id.String(),
		"actor_id":    actor.ID.String(),
		"admin":       actor.IsAdmin(),
	})
	return nil
}

// dedupeTagIDs drops repeated ids before they reach the question_tags
// primary key; clients may send the same tag twice.
func dedupeTagIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique
}

func (s *questionService) fillVotes(ctx context.Context, items []question.QuestionSummary, viewerID uuid.UUID) error {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	summaries, err := s.votes.SummaryForTargets(ctx, ids, vote.TargetQuestion, viewerID)
	if err != nil {
		return fmt.Errorf("summarize question votes: %w", err)
	}
	for i := range items {
		if summary, ok := summaries[items[i].ID]; ok {
			items[i].Votes = *summary
		}
	}
	return nil
}
