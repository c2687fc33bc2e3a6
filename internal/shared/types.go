package shared

// Asynq task type names. Grouped here so the API (producer) and the worker
// (consumer) agree without importing each other's domains.
const (
	TypeNotifyNewAnswer         = "notification:new_answer"
	TypeNotifyAnswerAccepted    = "notification:answer_accepted"
	TypeCleanupReadNotification = "notification:cleanup_read"
)

// Queue names with their worker priorities.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// NewAnswerPayload is enqueued when someone answers a question; the worker
// fans it out to the question author.
type NewAnswerPayload struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
	ActorID    string `json:"actorId"`
}

// AnswerAcceptedPayload is enqueued when a question author accepts an answer;
// the worker notifies the answer author.
type AnswerAcceptedPayload struct {
	QuestionID string `json:"questionId"`
	AnswerID   string `json:"answerId"`
	ActorID    string `json:"actorId"`
}

// CleanupReadNotificationsPayload drives the nightly cleanup job.
type CleanupReadNotificationsPayload struct {
	OlderThanDays int `json:"olderThanDays"`
}
