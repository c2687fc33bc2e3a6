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

// NewAnswerHandler materializes a "someone answered your question"
// notification for the question author.
type NewAnswerHandler struct {
	repo    notification.Repository
	content notification.ContentSource
}

func NewNewAnswerHandler(repo notification.Repository, content notification.ContentSource) *NewAnswerHandler {
	return &NewAnswerHandler{
		repo:    repo,
		content: content,
	}
}

func (h *NewAnswerHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.NewAnswerPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	questionID := utils.ParseStringToUUID(payload.QuestionID)
	actorID := utils.ParseStringToUUID(payload.ActorID)

	authorID, title, err := h.content.QuestionInfo(ctx, questionID)
	if err != nil {
		// question deleted before the task ran; nothing to notify about
		log.Warn().Str("question_id", payload.QuestionID).Err(err).
			Msg("Skipping new-answer notification")
		return nil
	}

	// Answering your own question does not notify you.
	if authorID == actorID {
		return nil
	}

	actorName, err := h.content.Username(ctx, actorID)
	if err != nil {
		return fmt.Errorf("resolve actor: %w", err)
	}

	n := &notification.Notification{
		ID:         uuid.New(),
		UserID:     authorID,
		Type:       notification.TypeNewAnswer,
		QuestionID: questionID,
		AnswerID:   utils.ParseStringToUUID(payload.AnswerID),
		ActorID:    actorID,
		Message:    fmt.Sprintf("%s answered your question %q", actorName, title),
	}
	if err := h.repo.Create(ctx, n); err != nil {
		return err
	}

	log.Info().
		Str("user_id", authorID.String()).
		Str("question_id", payload.QuestionID).
		Msg("New-answer notification created")
	return nil
}
