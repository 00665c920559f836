package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
)

func (e *testEnv) seedLogEntry(t *testing.T, topicID, moderatorID uint64, action domain.RuleAction) {
	t.Helper()
	entry := &domain.ModLogEntry{
		TopicID:     topicID,
		ModeratorID: moderatorID,
		Action:      action,
		TargetType:  domain.TargetPost,
		TargetID:    1,
	}
	if err := e.modLog.Record(entry); err != nil {
		t.Fatalf("seed log entry: %v", err)
	}
}

func TestListTopic_UnknownTopic(t *testing.T) {
	env := newTestEnv(t)
	svc := NewModLogService(env.modLog, env.topics)

	_, _, err := svc.ListTopic(42, domain.ModLogFilter{})
	assert.True(t, errors.Is(err, common.ErrTopicNotFound))
}

func TestListTopic_NewestFirstWithFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := NewModLogService(env.modLog, env.topics)
	owner := env.seedUser(t, "owner", 0)
	mod := env.seedUser(t, "mod", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	env.seedLogEntry(t, topic.ID, owner.ID, domain.ActionRemove)
	env.seedLogEntry(t, topic.ID, mod.ID, domain.ActionFilter)
	env.seedLogEntry(t, topic.ID, owner.ID, domain.ActionApprove)

	entries, total, err := svc.ListTopic(topic.ID, domain.ModLogFilter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	// Newest first
	assert.Equal(t, domain.ActionApprove, entries[0].Action)
	assert.Equal(t, domain.ActionRemove, entries[2].Action)

	// Filter by action
	entries, total, err = svc.ListTopic(topic.ID, domain.ModLogFilter{Action: domain.ActionFilter})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, mod.ID, entries[0].ModeratorID)

	// Filter by moderator
	_, total, err = svc.ListTopic(topic.ID, domain.ModLogFilter{ModeratorID: owner.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListTopic_PaginationNormalized(t *testing.T) {
	env := newTestEnv(t)
	svc := NewModLogService(env.modLog, env.topics)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	for i := 0; i < 25; i++ {
		env.seedLogEntry(t, topic.ID, owner.ID, domain.ActionRemove)
	}

	// Out-of-range inputs fall back to defaults
	entries, total, err := svc.ListTopic(topic.ID, domain.ModLogFilter{Page: -1, Limit: 9999})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, entries, 20)
}

func TestListModerator_CrossTopic(t *testing.T) {
	env := newTestEnv(t)
	svc := NewModLogService(env.modLog, env.topics)
	owner := env.seedUser(t, "owner", 0)
	a := env.seedTopic(t, "topic-a", owner.ID)
	b := env.seedTopic(t, "topic-b", owner.ID)

	env.seedLogEntry(t, a.ID, owner.ID, domain.ActionRemove)
	env.seedLogEntry(t, b.ID, owner.ID, domain.ActionFilter)

	entries, total, err := svc.ListModerator(owner.ID, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)
}

func TestListGlobal_AllTopics(t *testing.T) {
	env := newTestEnv(t)
	svc := NewModLogService(env.modLog, env.topics)
	owner := env.seedUser(t, "owner", 0)
	mod := env.seedUser(t, "mod", 0)
	a := env.seedTopic(t, "topic-a", owner.ID)
	b := env.seedTopic(t, "topic-b", mod.ID)

	env.seedLogEntry(t, a.ID, owner.ID, domain.ActionRemove)
	env.seedLogEntry(t, b.ID, mod.ID, domain.ActionFilter)

	_, total, err := svc.ListGlobal(1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
