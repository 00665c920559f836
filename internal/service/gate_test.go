package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
)

func TestGateCheck_RoleResolution(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	mod := env.seedUser(t, "mod", 0)
	member := env.seedUser(t, "member", 0)
	outsider := env.seedUser(t, "outsider", 0)
	super := env.seedSuperuser(t, "admin")
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, mod.ID, domain.MemberRoleModerator)
	env.seedMember(t, topic.ID, member.ID, domain.MemberRoleMember)

	tests := []struct {
		name        string
		userID      uint64
		role        Role
		canModerate bool
	}{
		{"owner", owner.ID, RoleOwner, true},
		{"moderator", mod.ID, RoleModerator, true},
		{"member", member.ID, RoleMember, false},
		{"outsider", outsider.ID, RoleNone, false},
		{"superuser without membership", super.ID, RoleNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, err := env.gate.Check(tt.userID, topic.ID)
			assert.NoError(t, err)
			assert.Equal(t, tt.role, access.Role)
			assert.Equal(t, tt.canModerate, access.CanModerate())
		})
	}
}

func TestGateCheck_UnknownTopicAndUser(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	_, err := env.gate.Check(owner.ID, 999)
	assert.True(t, errors.Is(err, common.ErrTopicNotFound))

	_, err = env.gate.Check(999, topic.ID)
	assert.True(t, errors.Is(err, common.ErrUserNotFound))
}

func TestCheckSubmission_BannedAndOutsider(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	banned := env.seedUser(t, "banned", 0)
	outsider := env.seedUser(t, "outsider", 0)
	super := env.seedSuperuser(t, "admin")
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedBannedMember(t, topic.ID, banned.ID)

	_, err := env.gate.CheckSubmission(banned.ID, topic.ID)
	assert.True(t, errors.Is(err, common.ErrBanned))

	_, err = env.gate.CheckSubmission(outsider.ID, topic.ID)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	// Owner and superuser submit without a membership row
	_, err = env.gate.CheckSubmission(owner.ID, topic.ID)
	assert.NoError(t, err)
	_, err = env.gate.CheckSubmission(super.ID, topic.ID)
	assert.NoError(t, err)
}
