package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna-backend/internal/domains/notification"
	"qna-backend/internal/shared"
)

type memoryNotificationRepo struct {
	created []notification.Notification
}

func (m *memoryNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	m.created = append(m.created, *n)
	return nil
}

func (m *memoryNotificationRepo) List(_ context.Context, _ uuid.UUID, _ int) ([]notification.Notification, error) {
	return m.created, nil
}

func (m *memoryNotificationRepo) UnreadCount(_ context.Context, _ uuid.UUID) (int, error) {
	return len(m.created), nil
}

func (m *memoryNotificationRepo) MarkRead(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (m *memoryNotificationRepo) MarkAllRead(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (m *memoryNotificationRepo) DeleteReadBefore(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

type questionInfo struct {
	author uuid.UUID
	title  string
}

type fakeContent struct {
	questions map[uuid.UUID]questionInfo
	answers   map[uuid.UUID]uuid.UUID
	usernames map[uuid.UUID]string
}

func (f *fakeContent) QuestionInfo(_ context.Context, id uuid.UUID) (uuid.UUID, string, error) {
	q, ok := f.questions[id]
	if !ok {
		return uuid.Nil, "", errors.New("question not found")
	}
	return q.author, q.title, nil
}

func (f *fakeContent) AnswerAuthor(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	author, ok := f.answers[id]
	if !ok {
		return uuid.Nil, errors.New("answer not found")
	}
	return author, nil
}

func (f *fakeContent) Username(_ context.Context, id uuid.UUID) (string, error) {
	name, ok := f.usernames[id]
	if !ok {
		return "", errors.New("user not found")
	}
	return name, nil
}

func newAnswerTask(t *testing.T, questionID, answerID, actorID uuid.UUID) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(shared.NewAnswerPayload{
		QuestionID: questionID.String(),
		AnswerID:   answerID.String(),
		ActorID:    actorID.String(),
	})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeNotifyNewAnswer, payload)
}

func acceptedTask(t *testing.T, questionID, answerID, actorID uuid.UUID) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(shared.AnswerAcceptedPayload{
		QuestionID: questionID.String(),
		AnswerID:   answerID.String(),
		ActorID:    actorID.String(),
	})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeNotifyAnswerAccepted, payload)
}

func TestNewAnswerHandler_NotifiesQuestionAuthor(t *testing.T) {
	author := uuid.New()
	actor := uuid.New()
	questionID := uuid.New()
	answerID := uuid.New()

	repo := &memoryNotificationRepo{}
	content := &fakeContent{
		questions: map[uuid.UUID]questionInfo{questionID: {author: author, title: "how do channels work"}},
		usernames: map[uuid.UUID]string{actor: "alice"},
	}
	h := NewNewAnswerHandler(repo, content)

	err := h.ProcessTask(context.Background(), newAnswerTask(t, questionID, answerID, actor))
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, author, repo.created[0].UserID)
	assert.Equal(t, notification.TypeNewAnswer, repo.created[0].Type)
	assert.Contains(t, repo.created[0].Message, "alice")
}

func TestNewAnswerHandler_SkipsSelfAnswer(t *testing.T) {
	author := uuid.New()
	questionID := uuid.New()

	repo := &memoryNotificationRepo{}
	content := &fakeContent{
		questions: map[uuid.UUID]questionInfo{questionID: {author: author, title: "t"}},
		usernames: map[uuid.UUID]string{author: "alice"},
	}
	h := NewNewAnswerHandler(repo, content)

	err := h.ProcessTask(context.Background(), newAnswerTask(t, questionID, uuid.New(), author))
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestNewAnswerHandler_DeletedQuestionIsNotRetried(t *testing.T) {
	repo := &memoryNotificationRepo{}
	h := NewNewAnswerHandler(repo, &fakeContent{questions: map[uuid.UUID]questionInfo{}})

	err := h.ProcessTask(context.Background(), newAnswerTask(t, uuid.New(), uuid.New(), uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestAnswerAcceptedHandler_NotifiesAnswerAuthor(t *testing.T) {
	questionAuthor := uuid.New()
	answerAuthor := uuid.New()
	questionID := uuid.New()
	answerID := uuid.New()

	repo := &memoryNotificationRepo{}
	content := &fakeContent{
		questions: map[uuid.UUID]questionInfo{questionID: {author: questionAuthor, title: "how do channels work"}},
		answers:   map[uuid.UUID]uuid.UUID{answerID: answerAuthor},
	}
	h := NewAnswerAcceptedHandler(repo, content)

	err := h.ProcessTask(context.Background(), acceptedTask(t, questionID, answerID, questionAuthor))
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, answerAuthor, repo.created[0].UserID)
	assert.Equal(t, notification.TypeAnswerAccepted, repo.created[0].Type)
}

func TestAnswerAcceptedHandler_SkipsSelfAccept(t *testing.T) {
	author := uuid.New()
	questionID := uuid.New()
	answerID := uuid.New()

	repo := &memoryNotificationRepo{}
	content := &fakeContent{
		questions: map[uuid.UUID]questionInfo{questionID: {author: author, title: "t"}},
		answers:   map[uuid.UUID]uuid.UUID{answerID: author},
	}
	h := NewAnswerAcceptedHandler(repo, content)

	err := h.ProcessTask(context.Background(), acceptedTask(t, questionID, answerID, author))
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}

func TestAnswerAcceptedHandler_DeletedContentIsNotRetried(t *testing.T) {
	answerAuthor := uuid.New()
	answerID := uuid.New()

	repo := &memoryNotificationRepo{}

	// answer already gone
	h := NewAnswerAcceptedHandler(repo, &fakeContent{answers: map[uuid.UUID]uuid.UUID{}})
	err := h.ProcessTask(context.Background(), acceptedTask(t, uuid.New(), answerID, uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, repo.created)

	// answer still there but the question was deleted first
	h = NewAnswerAcceptedHandler(repo, &fakeContent{
		questions: map[uuid.UUID]questionInfo{},
		answers:   map[uuid.UUID]uuid.UUID{answerID: answerAuthor},
	})
	err = h.ProcessTask(context.Background(), acceptedTask(t, uuid.New(), answerID, uuid.New()))
	require.NoError(t, err)
	assert.Empty(t, repo.created)
}
