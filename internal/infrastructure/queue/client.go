package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"qna-backend/internal/shared"
)

// Client is the task producer side of the queue. It implements the
// notification fan-out the answer service needs.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

func (c *Client) NotifyNewAnswer(ctx context.Context, questionID, answerID, actorID uuid.UUID) error {
	payload, err := json.Marshal(shared.NewAnswerPayload{
		QuestionID: questionID.String(),
		AnswerID:   answerID.String(),
		ActorID:    actorID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeNotifyNewAnswer, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeNotifyNewAnswer, err)
	}
	return nil
}

func (c *Client) NotifyAnswerAccepted(ctx context.Context, questionID, answerID, actorID uuid.UUID) error {
	payload, err := json.Marshal(shared.AnswerAcceptedPayload{
		QuestionID: questionID.String(),
		AnswerID:   answerID.String(),
		ActorID:    actorID.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeNotifyAnswerAccepted, payload)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueHigh),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeNotifyAnswerAccepted, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
