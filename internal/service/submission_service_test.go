package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
)

func TestSubmitPost_BannedRejectedBeforeSideEffects(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	banned := env.seedUser(t, "banned", 0)
	env.seedUser(t, "alice", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedBannedMember(t, topic.ID, banned.ID)

	_, err := env.submission.SubmitPost(context.Background(), banned.ID, topic.ID, "title", "hello @alice")
	assert.True(t, errors.Is(err, common.ErrBanned))

	// Nothing persisted, no mentions, no notifications
	var posts, mentions, notifications int64
	env.db.Model(&domain.Post{}).Count(&posts)
	env.db.Model(&domain.Mention{}).Count(&mentions)
	env.db.Model(&domain.Notification{}).Count(&notifications)
	assert.Zero(t, posts)
	assert.Zero(t, mentions)
	assert.Zero(t, notifications)
}

func TestSubmitPost_NonMemberForbidden(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	outsider := env.seedUser(t, "outsider", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	_, err := env.submission.SubmitPost(context.Background(), outsider.ID, topic.ID, "t", "b")
	assert.True(t, errors.Is(err, common.ErrForbidden))
}

func TestSubmitPost_FullPipeline(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	alice := env.seedUser(t, "alice", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)

	post, err := env.submission.SubmitPost(context.Background(), author.ID, topic.ID, "hello", "ping @alice")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusActive, post.Status)

	// Owner got a new_post notification
	var ownerNotifs []domain.Notification
	env.db.Where("user_id = ? AND type = ?", owner.ID, domain.NotifyNewPost).Find(&ownerNotifs)
	assert.Len(t, ownerNotifs, 1)

	// Mention fanout ran
	var mentions []domain.Mention
	env.db.Where("mentioned_id = ?", alice.ID).Find(&mentions)
	assert.Len(t, mentions, 1)

	// Activity event recorded for trending
	var events []domain.ActivityEvent
	env.db.Find(&events)
	assert.Len(t, events, 1)
	assert.Equal(t, domain.ActivityPost, events[0].Kind)
}

func TestSubmitPost_OwnerMentionNotDoubleNotified(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)

	_, err := env.submission.SubmitPost(context.Background(), author.ID, topic.ID, "hi", "thanks @owner")
	assert.NoError(t, err)

	// Mention row exists but only one notification reached the owner
	var mentions int64
	env.db.Model(&domain.Mention{}).Where("mentioned_id = ?", owner.ID).Count(&mentions)
	assert.Equal(t, int64(1), mentions)

	var notifications int64
	env.db.Model(&domain.Notification{}).Where("user_id = ?", owner.ID).Count(&notifications)
	assert.Equal(t, int64(1), notifications)
}

func TestSubmitPost_AutomodFiltersImmediately(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)
	env.seedRule(t, topic.ID, owner.ID, "no spam", 0,
		domain.RuleConditions{ContentContains: []string{"spam"}}, domain.ActionFilter)

	post, err := env.submission.SubmitPost(context.Background(), author.ID, topic.ID, "t", "pure spam here")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusFiltered, post.Status)

	reloaded, _ := env.posts.FindByID(post.ID)
	assert.Equal(t, domain.StatusFiltered, reloaded.Status)
}

func TestSubmitPost_MultipleRulesFireInOrder(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)
	// Higher priority filter fires first, then the report rule still fires
	env.seedRule(t, topic.ID, owner.ID, "filter", 10,
		domain.RuleConditions{ContentContains: []string{"bad"}}, domain.ActionFilter)
	env.seedRule(t, topic.ID, owner.ID, "report", 1,
		domain.RuleConditions{ContentContains: []string{"bad"}}, domain.ActionReport)

	post, err := env.submission.SubmitPost(context.Background(), author.ID, topic.ID, "t", "bad content")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusFiltered, post.Status)

	_, total, _ := env.reports.FindByTopic(topic.ID, 0, 10)
	assert.Equal(t, int64(1), total)
}

func TestSubmitPost_DisabledRuleDoesNotFire(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)
	rule := env.seedRule(t, topic.ID, owner.ID, "off", 0,
		domain.RuleConditions{ContentContains: []string{"spam"}}, domain.ActionRemove)
	env.db.Model(rule).Update("enabled", false)

	post, err := env.submission.SubmitPost(context.Background(), author.ID, topic.ID, "t", "spam away")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusActive, post.Status)
}

func TestSubmitComment_LockedPostRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)
	post := env.seedPost(t, topic.ID, owner.ID, domain.StatusActive)
	env.db.Model(post).Update("is_locked", true)

	_, err := env.submission.SubmitComment(context.Background(), author.ID, post.ID, "me too")
	assert.True(t, errors.Is(err, common.ErrPostLocked))

	// Lock rejects the owner as well; it is not a permission check
	_, err = env.submission.SubmitComment(context.Background(), owner.ID, post.ID, "owner reply")
	assert.True(t, errors.Is(err, common.ErrPostLocked))
}

func TestSubmitComment_RemovedPostNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)
	post := env.seedPost(t, topic.ID, owner.ID, domain.StatusRemoved)

	_, err := env.submission.SubmitComment(context.Background(), author.ID, post.ID, "hello?")
	assert.True(t, errors.Is(err, common.ErrPostNotFound))
}

func TestSubmitComment_CountsAndActivity(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)
	post := env.seedPost(t, topic.ID, owner.ID, domain.StatusActive)

	comment, err := env.submission.SubmitComment(context.Background(), author.ID, post.ID, "nice post")
	assert.NoError(t, err)
	assert.Equal(t, post.TopicID, comment.TopicID)

	reloaded, _ := env.posts.FindByID(post.ID)
	assert.EqualValues(t, 1, reloaded.CommentCount)

	var events []domain.ActivityEvent
	env.db.Where("kind = ?", domain.ActivityComment).Find(&events)
	assert.Len(t, events, 1)
	assert.Equal(t, post.ID, *events[0].PostID)
}

func TestRecordVote_AdjustsAuthorCred(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	author := env.seedUser(t, "author", 5)
	voter := env.seedUser(t, "voter", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, author.ID, domain.MemberRoleMember)
	env.seedMember(t, topic.ID, voter.ID, domain.MemberRoleMember)
	post := env.seedPost(t, topic.ID, author.ID, domain.StatusActive)

	assert.NoError(t, env.submission.RecordVote(context.Background(), voter.ID, post.ID, 1))

	reloaded, _ := env.users.FindByID(author.ID)
	assert.Equal(t, 6, reloaded.Karma())

	// Downvotes settle too, clamped at zero overall
	assert.NoError(t, env.submission.RecordVote(context.Background(), voter.ID, post.ID, -1))
	reloaded, _ = env.users.FindByID(author.ID)
	assert.Equal(t, 5, reloaded.Karma())
}

func TestRecordVote_SelfVoteRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	post := env.seedPost(t, topic.ID, owner.ID, domain.StatusActive)

	err := env.submission.RecordVote(context.Background(), owner.ID, post.ID, 1)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestSubmitPost_EmptyBodyRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	_, err := env.submission.SubmitPost(context.Background(), owner.ID, topic.ID, "title", "   ")
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	_, err = env.submission.SubmitPost(context.Background(), owner.ID, topic.ID, "", "body")
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}
