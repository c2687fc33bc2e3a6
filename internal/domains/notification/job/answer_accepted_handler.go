package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"qna-backend/internal/domains/notification"
	"qna-backend/internal/shared"
	"qna-backend/internal/shared/utils"
)

// AnswerAcceptedHandler tells an answer's author their answer was accepted.
type AnswerAcceptedHandler struct {
	repo    notification.Repository
	content notification.ContentSource
}

func NewAnswerAcceptedHandler(repo notification.Repository, content notification.ContentSource) *AnswerAcceptedHandler {
	return &AnswerAcceptedHandler{
		repo:    repo,
		content: content,
	}
}

func (h *AnswerAcceptedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.AnswerAcceptedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	questionID := utils.ParseStringToUUID(payload.QuestionID)
	answerID := utils.ParseStringToUUID(payload.AnswerID)
	actorID := utils.ParseStringToUUID(payload.ActorID)

	answerAuthor, err := h.content.AnswerAuthor(ctx, answerID)
	if err != nil {
		log.Warn().Str("answer_id", payload.AnswerID).Err(err).
			Msg("Skipping answer-accepted notification")
		return nil
	}

	// Accepting your own answer does not notify you.
	if answerAuthor == actorID {
		return nil
	}

	// Content deleted before the task ran is not a failure worth retrying.
	_, title, err := h.content.QuestionInfo(ctx, questionID)
	if err != nil {
		log.Warn().Str("question_id", payload.QuestionID).Err(err).
			Msg("Skipping answer-accepted notification")
		return nil
	}

	n := &notification.Notification{
		ID:         uuid.New(),
		UserID:     answerAuthor,
		Type:       notification.TypeAnswerAccepted,
		QuestionID: questionID,
		AnswerID:   answerID,
		ActorID:    actorID,
		Message:    fmt.Sprintf("Your answer to %q was accepted", title),
	}
	if err := h.repo.Create(ctx, n); err != nil {
		return err
	}

	log.Info().
		Str("user_id", answerAuthor.String()).
		Str("answer_id", payload.AnswerID).
		Msg("Answer-accepted notification created")
	return nil
}
