package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"qna-backend/internal/domains/notification"
	"qna-backend/internal/shared"
)

const defaultRetentionDays = 30

// CleanupHandler purges read notifications past their retention window. Runs
// from the nightly cron schedule.
type CleanupHandler struct {
	repo notification.Repository
}

func NewCleanupHandler(repo notification.Repository) *CleanupHandler {
	return &CleanupHandler{repo: repo}
}

func (h *CleanupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupReadNotificationsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	days := payload.OlderThanDays
	if days <= 0 {
		days = defaultRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	deleted, err := h.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	log.Info().
		Int("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("Cleaned up read notifications")
	return nil
}
