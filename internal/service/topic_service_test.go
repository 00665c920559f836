package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
)

func TestCreateTopic_DuplicateName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)

	topic, err := env.topicSvc.CreateTopic(owner.ID, "golang", nil)
	assert.NoError(t, err)
	assert.Equal(t, owner.ID, topic.OwnerID)

	_, err = env.topicSvc.CreateTopic(owner.ID, "golang", nil)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestJoinAndLeave(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	user := env.seedUser(t, "user", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	ctx := context.Background()

	assert.NoError(t, env.topicSvc.Join(ctx, user.ID, topic.ID))

	// Double join conflicts; the owner never joins
	err := env.topicSvc.Join(ctx, user.ID, topic.ID)
	assert.True(t, errors.Is(err, common.ErrConflict))
	err = env.topicSvc.Join(ctx, owner.ID, topic.ID)
	assert.True(t, errors.Is(err, common.ErrConflict))

	// Join feeds the trending signal
	var events int64
	env.db.Model(&domain.ActivityEvent{}).Where("kind = ?", domain.ActivityJoin).Count(&events)
	assert.Equal(t, int64(1), events)

	assert.NoError(t, env.topicSvc.Leave(user.ID, topic.ID))
	m, _ := env.members.Find(topic.ID, user.ID)
	assert.Nil(t, m)
}

func TestLeave_BannedMemberCannotLeave(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	banned := env.seedUser(t, "banned", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedBannedMember(t, topic.ID, banned.ID)

	err := env.topicSvc.Leave(banned.ID, topic.ID)
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestSetBanned_AuditsAndNotifies(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	member := env.seedUser(t, "member", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, member.ID, domain.MemberRoleMember)

	reason := "repeated spam"
	assert.NoError(t, env.topicSvc.SetBanned(owner.ID, topic.ID, member.ID, true, &reason))

	m, _ := env.members.Find(topic.ID, member.ID)
	assert.True(t, m.IsBanned)

	entries, total, _ := env.modLog.FindByTopic(topic.ID, domain.ModLogFilter{Page: 1, Limit: 20})
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.ActionBan, entries[0].Action)
	assert.Equal(t, domain.TargetUser, entries[0].TargetType)
	assert.Equal(t, member.ID, entries[0].TargetID)

	var notifications int64
	env.db.Model(&domain.Notification{}).Where("user_id = ? AND type = ?", member.ID, domain.NotifyMembership).Count(&notifications)
	assert.Equal(t, int64(1), notifications)
}

func TestSetBanned_ModeratorsProtected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	mod := env.seedUser(t, "mod", 0)
	member := env.seedUser(t, "member", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, mod.ID, domain.MemberRoleModerator)
	env.seedMember(t, topic.ID, member.ID, domain.MemberRoleMember)

	// A plain member cannot ban
	err := env.topicSvc.SetBanned(member.ID, topic.ID, mod.ID, true, nil)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	// Moderators and the owner cannot be banned
	err = env.topicSvc.SetBanned(owner.ID, topic.ID, mod.ID, true, nil)
	assert.True(t, errors.Is(err, common.ErrForbidden))
	err = env.topicSvc.SetBanned(mod.ID, topic.ID, owner.ID, true, nil)
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestSetModerator_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	mod := env.seedUser(t, "mod", 0)
	member := env.seedUser(t, "member", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, mod.ID, domain.MemberRoleModerator)
	env.seedMember(t, topic.ID, member.ID, domain.MemberRoleMember)

	// Even moderators cannot grant roles
	err := env.topicSvc.SetModerator(mod.ID, topic.ID, member.ID, true)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	assert.NoError(t, env.topicSvc.SetModerator(owner.ID, topic.ID, member.ID, true))
	m, _ := env.members.Find(topic.ID, member.ID)
	assert.Equal(t, domain.MemberRoleModerator, m.Role)
}
