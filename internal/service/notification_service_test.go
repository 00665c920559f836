package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
)

func (e *testEnv) seedNotification(t *testing.T, userID uint64, message string) *domain.Notification {
	t.Helper()
	n := &domain.Notification{UserID: userID, Type: domain.NotifyMention, RelatedID: 1, Message: message}
	if err := e.notifications.Create(n); err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return n
}

func TestNotifications_ReadFlow(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(env.notifications)
	user := env.seedUser(t, "user", 0)

	first := env.seedNotification(t, user.ID, "one")
	env.seedNotification(t, user.ID, "two")

	summary, err := svc.GetUnreadCount(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.TotalUnread)

	assert.NoError(t, svc.MarkAsRead(user.ID, first.ID))
	summary, _ = svc.GetUnreadCount(user.ID)
	assert.Equal(t, 1, summary.TotalUnread)

	assert.NoError(t, svc.MarkAllAsRead(user.ID))
	summary, _ = svc.GetUnreadCount(user.ID)
	assert.Equal(t, 0, summary.TotalUnread)
}

func TestNotifications_OwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(env.notifications)
	alice := env.seedUser(t, "alice", 0)
	bob := env.seedUser(t, "bob", 0)
	n := env.seedNotification(t, alice.ID, "for alice")

	err := svc.MarkAsRead(bob.ID, n.ID)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	err = svc.Delete(bob.ID, n.ID)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	err = svc.MarkAsRead(alice.ID, 999)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestNotifications_DeleteHidesFromList(t *testing.T) {
	env := newTestEnv(t)
	svc := NewNotificationService(env.notifications)
	user := env.seedUser(t, "user", 0)
	n := env.seedNotification(t, user.ID, "gone soon")

	assert.NoError(t, svc.Delete(user.ID, n.ID))

	list, err := svc.GetList(user.ID, 1, 20)
	assert.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, int64(0), list.Total)
}
