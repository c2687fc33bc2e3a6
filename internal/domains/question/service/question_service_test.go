package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qna-backend/internal/domains/answer"
	"qna-backend/internal/domains/question"
	"qna-backend/internal/domains/tag"
	"qna-backend/internal/domains/vote"
	"qna-backend/internal/shared/authz"
)

type memoryQuestionRepo struct {
	questions   map[uuid.UUID]*question.Question
	tagsByQ     map[uuid.UUID][]uuid.UUID
	answerCount map[uuid.UUID]int
	usernames   map[uuid.UUID]string

	seq int // preserves insertion order for newest sorting in tests
	ord map[uuid.UUID]int
}

func newMemoryQuestionRepo() *memoryQuestionRepo {
	return &memoryQuestionRepo{
		questions:   map[uuid.UUID]*question.Question{},
		tagsByQ:     map[uuid.UUID][]uuid.UUID{},
		answerCount: map[uuid.UUID]int{},
		usernames:   map[uuid.UUID]string{},
		ord:         map[uuid.UUID]int{},
	}
}

func (m *memoryQuestionRepo) Create(_ context.Context, q *question.Question, tagIDs []uuid.UUID) error {
	q.CreatedAt = time.Now()
	q.UpdatedAt = q.CreatedAt
	copied := *q
	m.questions[q.ID] = &copied
	m.tagsByQ[q.ID] = append([]uuid.UUID{}, tagIDs...)
	m.seq++
	m.ord[q.ID] = m.seq
	return nil
}

func (m *memoryQuestionRepo) summary(q *question.Question) question.QuestionSummary {
	tags := []tag.Tag{}
	for _, id := range m.tagsByQ[q.ID] {
		tags = append(tags, tag.Tag{ID: id})
	}
	return question.QuestionSummary{
		ID:          q.ID,
		Author:      question.Author{ID: q.AuthorID, Username: m.usernames[q.AuthorID]},
		Title:       q.Title,
		Description: q.Description,
		Tags:        tags,
		AnswerCount: m.answerCount[q.ID],
		ViewCount:   q.ViewCount,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func (m *memoryQuestionRepo) GetByID(_ context.Context, id uuid.UUID) (*question.QuestionSummary, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, question.ErrQuestionNotFound
	}
	s := m.summary(q)
	return &s, nil
}

func (m *memoryQuestionRepo) List(_ context.Context, opts question.ListOptions) ([]question.QuestionSummary, int, error) {
	var all []*question.Question
	for _, q := range m.questions {
		if opts.Filter == question.FilterUnanswered && m.answerCount[q.ID] > 0 {
			continue
		}
		all = append(all, q)
	}
	// newest first
	sort.Slice(all, func(i, j int) bool {
		return m.ord[all[i].ID] > m.ord[all[j].ID]
	})

	total := len(all)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	page := []question.QuestionSummary{}
	for _, q := range all[start:end] {
		page = append(page, m.summary(q))
	}
	return page, total, nil
}

func (m *memoryQuestionRepo) Update(_ context.Context, id uuid.UUID, title, description string) error {
	q, ok := m.questions[id]
	if !ok {
		return question.ErrQuestionNotFound
	}
	q.Title = title
	q.Description = description
	q.UpdatedAt = time.Now()
	return nil
}

func (m *memoryQuestionRepo) ReplaceTags(_ context.Context, questionID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, ok := m.questions[questionID]; !ok {
		return question.ErrQuestionNotFound
	}
	m.tagsByQ[questionID] = append([]uuid.UUID{}, tagIDs...)
	return nil
}

func (m *memoryQuestionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.questions[id]; !ok {
		return question.ErrQuestionNotFound
	}
	delete(m.questions, id)
	delete(m.tagsByQ, id)
	return nil
}

func (m *memoryQuestionRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	q, ok := m.questions[id]
	if !ok {
		return question.ErrQuestionNotFound
	}
	q.ViewCount++
	return nil
}

func (m *memoryQuestionRepo) AuthorID(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	q, ok := m.questions[id]
	if !ok {
		return uuid.Nil, question.ErrQuestionNotFound
	}
	return q.AuthorID, nil
}

func (m *memoryQuestionRepo) QuestionExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.questions[id]
	return ok, nil
}

// fakeTagValidator accepts a fixed set of tag ids.
type fakeTagValidator struct {
	known map[uuid.UUID]bool
}

func (f *fakeTagValidator) ValidateIDs(_ context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return tag.ErrNoTags
	}
	for _, id := range ids {
		if !f.known[id] {
			return tag.ErrInvalidTag
		}
	}
	return nil
}

type fakeVotes struct {
	summaries map[uuid.UUID]vote.Summary
}

func (f *fakeVotes) CastVote(context.Context, uuid.UUID, uuid.UUID, vote.TargetKind, vote.Direction) (vote.Outcome, error) {
	return "", errors.New("not used")
}

func (f *fakeVotes) Summary(_ context.Context, targetID uuid.UUID, _ vote.TargetKind, _ uuid.UUID) (*vote.Summary, error) {
	s := f.summaries[targetID]
	return &s, nil
}

func (f *fakeVotes) SummaryForTargets(_ context.Context, targetIDs []uuid.UUID, _ vote.TargetKind, _ uuid.UUID) (map[uuid.UUID]*vote.Summary, error) {
	result := map[uuid.UUID]*vote.Summary{}
	for _, id := range targetIDs {
		s := f.summaries[id]
		result[id] = &s
	}
	return result, nil
}

type fakeAnswers struct {
	byQuestion map[uuid.UUID][]answer.AnswerView
}

func (f *fakeAnswers) ListByQuestion(_ context.Context, questionID, _ uuid.UUID) ([]answer.AnswerView, error) {
	views := f.byQuestion[questionID]
	if views == nil {
		views = []answer.AnswerView{}
	}
	return views, nil
}

type fixture struct {
	repo    *memoryQuestionRepo
	tags    *fakeTagValidator
	votes   *fakeVotes
	answers *fakeAnswers
	svc     question.Service

	goTag uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	goTag := uuid.New()
	repo := newMemoryQuestionRepo()
	tags := &fakeTagValidator{known: map[uuid.UUID]bool{goTag: true}}
	votes := &fakeVotes{summaries: map[uuid.UUID]vote.Summary{}}
	answers := &fakeAnswers{byQuestion: map[uuid.UUID][]answer.AnswerView{}}

	return &fixture{
		repo:    repo,
		tags:    tags,
		votes:   votes,
		answers: answers,
		svc:     NewQuestionService(repo, tags, votes, answers),
		goTag:   goTag,
	}
}

func (f *fixture) ask(t *testing.T, actor authz.Actor, title string) *question.QuestionSummary {
	t.Helper()
	summary, err := f.svc.Create(context.Background(), actor, question.CreateQuestionRequest{
		Title:       title,
		Description: "details about " + title,
		TagIDs:      []uuid.UUID{f.goTag},
	})
	require.NoError(t, err)
	return summary
}

func someUser() authz.Actor {
	return authz.Actor{ID: uuid.New(), Role: authz.RoleUser}
}

func TestCreate_RequiresValidTags(t *testing.T) {
	f := newFixture(t)
	actor := someUser()

	_, err := f.svc.Create(context.Background(), actor, question.CreateQuestionRequest{
		Title:       "untagged",
		Description: "no tags at all",
	})
	assert.ErrorIs(t, err, tag.ErrNoTags)

	_, err = f.svc.Create(context.Background(), actor, question.CreateQuestionRequest{
		Title:       "bad tag",
		Description: "one unknown id",
		TagIDs:      []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, tag.ErrInvalidTag)

	created := f.ask(t, actor, "good question")
	assert.Equal(t, actor.ID, created.Author.ID)
}

func TestCreate_DeduplicatesTagIDs(t *testing.T) {
	f := newFixture(t)
	actor := someUser()

	created, err := f.svc.Create(context.Background(), actor, question.CreateQuestionRequest{
		Title:       "repeated tag",
		Description: "same tag sent twice",
		TagIDs:      []uuid.UUID{f.goTag, f.goTag},
	})
	require.NoError(t, err)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, []uuid.UUID{f.goTag}, f.repo.tagsByQ[created.ID])
}

func TestUpdate_DeduplicatesTagIDs(t *testing.T) {
	f := newFixture(t)
	owner := someUser()
	q := f.ask(t, owner, "tagged")

	updated, err := f.svc.Update(context.Background(), owner, q.ID, question.UpdateQuestionRequest{
		Title:       "tagged",
		Description: "same",
		TagIDs:      []uuid.UUID{f.goTag, f.goTag, f.goTag},
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, []uuid.UUID{f.goTag}, f.repo.tagsByQ[q.ID])
}

func TestGet_IncrementsViewCount(t *testing.T) {
	f := newFixture(t)
	q := f.ask(t, someUser(), "views")

	first, err := f.svc.Get(context.Background(), q.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ViewCount)

	second, err := f.svc.Get(context.Background(), q.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ViewCount)
}

func TestGet_EmbedsVotesAndAnswers(t *testing.T) {
	f := newFixture(t)
	q := f.ask(t, someUser(), "detail")

	f.votes.summaries[q.ID] = vote.Summary{Score: 2, Upvotes: 3, Downvotes: 1}
	f.answers.byQuestion[q.ID] = []answer.AnswerView{
		{ID: uuid.New(), QuestionID: q.ID, Content: "an answer"},
	}

	detail, err := f.svc.Get(context.Background(), q.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Votes.Score)
	require.Len(t, detail.Answers, 1)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, question.ErrQuestionNotFound)
}

func TestList_Pagination(t *testing.T) {
	f := newFixture(t)
	actor := someUser()
	for i := 0; i < 5; i++ {
		f.ask(t, actor, "question")
	}

	result, err := f.svc.List(context.Background(), uuid.Nil, question.ListQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
}

func TestList_UnansweredFilter(t *testing.T) {
	f := newFixture(t)
	actor := someUser()
	answered := f.ask(t, actor, "answered")
	open := f.ask(t, actor, "open")
	f.repo.answerCount[answered.ID] = 2

	result, err := f.svc.List(context.Background(), uuid.Nil, question.ListQuery{Filter: "unanswered"})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, open.ID, result.Items[0].ID)
}

func TestList_RejectsUnknownFilter(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), uuid.Nil, question.ListQuery{Filter: "trending"})
	assert.Error(t, err)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	owner := someUser()
	q := f.ask(t, owner, "original title")

	_, err := f.svc.Update(context.Background(), someUser(), q.ID, question.UpdateQuestionRequest{
		Title:       "hijacked",
		Description: "nope",
	})
	assert.ErrorIs(t, err, authz.ErrForbidden)

	// Admins cannot edit either; only delete.
	admin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	_, err = f.svc.Update(context.Background(), admin, q.ID, question.UpdateQuestionRequest{
		Title:       "moderated",
		Description: "nope",
	})
	assert.ErrorIs(t, err, authz.ErrForbidden)

	updated, err := f.svc.Update(context.Background(), owner, q.ID, question.UpdateQuestionRequest{
		Title:       "better title",
		Description: "better details",
	})
	require.NoError(t, err)
	assert.Equal(t, "better title", updated.Title)
}

func TestUpdate_ReplacesTagsWhenProvided(t *testing.T) {
	f := newFixture(t)
	owner := someUser()
	q := f.ask(t, owner, "tagged")

	otherTag := uuid.New()
	f.tags.known[otherTag] = true

	updated, err := f.svc.Update(context.Background(), owner, q.ID, question.UpdateQuestionRequest{
		Title:       "tagged",
		Description: "same",
		TagIDs:      []uuid.UUID{otherTag},
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, otherTag, updated.Tags[0].ID)

	// nil tag set leaves the tags alone
	updated, err = f.svc.Update(context.Background(), owner, q.ID, question.UpdateQuestionRequest{
		Title:       "tagged",
		Description: "same again",
	})
	require.NoError(t, err)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, otherTag, updated.Tags[0].ID)
}

func TestDelete_OwnerOrAdmin(t *testing.T) {
	f := newFixture(t)
	owner := someUser()
	q1 := f.ask(t, owner, "one")
	q2 := f.ask(t, owner, "two")

	assert.ErrorIs(t, f.svc.Delete(context.Background(), someUser(), q1.ID), authz.ErrForbidden)
	assert.NoError(t, f.svc.Delete(context.Background(), owner, q1.ID))

	admin := authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	assert.NoError(t, f.svc.Delete(context.Background(), admin, q2.ID))
}
