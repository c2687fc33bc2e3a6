package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"qna-backend/internal/domains/answer"
	"qna-backend/internal/domains/vote"
	"qna-backend/internal/shared/authz"
	"qna-backend/pkg/logger"
)

type answerService struct {
	repo     answer.Repository
	votes    vote.Repository
	notifier answer.Notifier
}

func NewAnswerService(repo answer.Repository, votes vote.Repository, notifier answer.Notifier) answer.Service {
	return &answerService{
		repo:     repo,
		votes:    votes,
		notifier: notifier,
	}
}

func (s *answerService) Create(ctx context.Context, actor authz.Actor, questionID uuid.UUID, req answer.CreateAnswerRequest) (*answer.AnswerView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a := &answer.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		AuthorID:   actor.ID,
		Content:    req.Content,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	// Fan-out must not fail the request; the answer is already committed.
	if err := s.notifier.NotifyNewAnswer(ctx, questionID, a.ID, actor.ID); err != nil {
		logger.Error("failed to enqueue new-answer notification", err)
	}

	return s.repo.GetView(ctx, a.ID)
}

func (s *answerService) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, req answer.UpdateAnswerRequest) (*answer.AnswerView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanEdit(actor, a.AuthorID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, req.Content); err != nil {
		return nil, err
	}

	return s.view(ctx, id, actor.ID)
}

func (s *answerService) Delete(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanDelete(actor, a.AuthorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *answerService) Accept(ctx context.Context, actor authz.Actor, id uuid.UUID) ([]answer.AnswerView, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questionAuthor, err := s.repo.QuestionAuthor(ctx, a.QuestionID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccept(actor, questionAuthor); err != nil {
		return nil, err
	}

	changed, err := s.repo.Accept(ctx, a.QuestionID, id)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := s.notifier.NotifyAnswerAccepted(ctx, a.QuestionID, id, actor.ID); err != nil {
			logger.Error("failed to enqueue answer-accepted notification", err)
		}
	}

	return s.ListByQuestion(ctx, a.QuestionID, actor.ID)
}

func (s *answerService) ListByQuestion(ctx context.Context, questionID, viewerID uuid.UUID) ([]answer.AnswerView, error) {
	views, err := s.repo.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}

	summaries, err := s.votes.SummaryForTargets(ctx, ids, vote.TargetAnswer, viewerID)
	if err != nil {
		return nil, fmt.Errorf("summarize answer votes: %w", err)
	}
	for i := range views {
		if summary, ok := summaries[views[i].ID]; ok {
			views[i].Votes = *summary
		}
	}

	answer.Sort(views)
	return views, nil
}

func (s *answerService) view(ctx context.Context, id, viewerID uuid.UUID) (*answer.AnswerView, error) {
	v, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := s.votes.Summary(ctx, id, vote.TargetAnswer, viewerID)
	if err != nil {
		return nil, fmt.Errorf("summarize answer votes: %w", err)
	}
	v.Votes = *summary
	return v, nil
}
