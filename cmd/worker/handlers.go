package main

import (
	"github.com/hibiken/asynq"

	"qna-backend/internal/domains/notification/job"
	"qna-backend/internal/shared"
	"qna-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	newAnswer      *job.NewAnswerHandler
	answerAccepted *job.AnswerAcceptedHandler
	cleanup        *job.CleanupHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		newAnswer:      job.NewNewAnswerHandler(c.NotificationRepo, c.NotificationContent),
		answerAccepted: job.NewAnswerAcceptedHandler(c.NotificationRepo, c.NotificationContent),
		cleanup:        job.NewCleanupHandler(c.NotificationRepo),
	}
}

// RegisterHandlers wires every handler into the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeNotifyNewAnswer, h.newAnswer.ProcessTask)
	mux.HandleFunc(shared.TypeNotifyAnswerAccepted, h.answerAccepted.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupReadNotification, h.cleanup.ProcessTask)
}
