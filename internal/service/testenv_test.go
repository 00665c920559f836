package service

import (
	"testing"
	"time"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Topic{},
		&domain.TopicMembership{},
		&domain.Post{},
		&domain.Comment{},
		&domain.AutomodRule{},
		&domain.ModLogEntry{},
		&domain.Mention{},
		&domain.Notification{},
		&domain.Report{},
		&domain.ActivityEvent{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// testEnv bundles real repositories and services over an in-memory
// database so pipeline tests exercise the same code paths as production.
type testEnv struct {
	db *gorm.DB

	users         repository.UserRepository
	topics        repository.TopicRepository
	members       repository.MembershipRepository
	posts         repository.PostRepository
	comments      repository.CommentRepository
	rules         repository.AutomodRepository
	modLog        repository.ModLogRepository
	mentions      repository.MentionRepository
	notifications repository.NotificationRepository
	reports       repository.ReportRepository
	activity      repository.ActivityRepository

	gate       *Gate
	mentionSvc *MentionService
	automod    *AutomodService
	moderation *ModerationService
	trending   *TrendingService
	submission *SubmissionService
	topicSvc   *TopicService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)

	env := &testEnv{
		db:            db,
		users:         repository.NewUserRepository(db),
		topics:        repository.NewTopicRepository(db),
		members:       repository.NewMembershipRepository(db),
		posts:         repository.NewPostRepository(db),
		comments:      repository.NewCommentRepository(db),
		rules:         repository.NewAutomodRepository(db),
		modLog:        repository.NewModLogRepository(db),
		mentions:      repository.NewMentionRepository(db),
		notifications: repository.NewNotificationRepository(db),
		reports:       repository.NewReportRepository(db),
		activity:      repository.NewActivityRepository(db),
	}

	env.gate = NewGate(env.users, env.topics, env.members)
	env.mentionSvc = NewMentionService(env.users, env.mentions, env.notifications)
	env.automod = NewAutomodService(env.rules, env.gate)
	env.moderation = NewModerationService(env.posts, env.comments, env.modLog, env.reports, env.notifications, env.gate)
	env.trending = NewTrendingService(env.activity, env.topics, env.posts, nil, 24, 7)
	env.topicSvc = NewTopicService(env.topics, env.members, env.modLog, env.notifications, env.gate, env.trending)
	env.submission = NewSubmissionService(
		env.posts, env.comments, env.rules, env.topics, env.users, env.notifications,
		env.gate, env.mentionSvc, env.moderation, env.trending,
	)
	return env
}

func (e *testEnv) seedUser(t *testing.T, username string, karma int) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		PostCred: karma,
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func (e *testEnv) seedSuperuser(t *testing.T, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:    username,
		Email:       username + "@example.com",
		IsSuperuser: true,
	}
	if err := e.users.Create(user); err != nil {
		t.Fatalf("seed superuser %s: %v", username, err)
	}
	return user
}

func (e *testEnv) seedTopic(t *testing.T, name string, ownerID uint64) *domain.Topic {
	t.Helper()
	topic := &domain.Topic{Name: name, OwnerID: ownerID, LastActivityAt: time.Now()}
	if err := e.topics.Create(topic); err != nil {
		t.Fatalf("seed topic %s: %v", name, err)
	}
	return topic
}

func (e *testEnv) seedMember(t *testing.T, topicID, userID uint64, role domain.MemberRole) {
	t.Helper()
	m := &domain.TopicMembership{TopicID: topicID, UserID: userID, Role: role}
	if err := e.members.Create(m); err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func (e *testEnv) seedBannedMember(t *testing.T, topicID, userID uint64) {
	t.Helper()
	m := &domain.TopicMembership{TopicID: topicID, UserID: userID, Role: domain.MemberRoleMember, IsBanned: true}
	if err := e.members.Create(m); err != nil {
		t.Fatalf("seed banned membership: %v", err)
	}
}

func (e *testEnv) seedPost(t *testing.T, topicID, authorID uint64, status domain.ModerationStatus) *domain.Post {
	t.Helper()
	post := &domain.Post{
		TopicID:  topicID,
		AuthorID: authorID,
		Title:    "seed post",
		Body:     "seed body",
		Status:   status,
	}
	if err := e.posts.Create(post); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func (e *testEnv) seedRule(t *testing.T, topicID, createdBy uint64, name string, priority int, conditions domain.RuleConditions, action domain.RuleAction) *domain.AutomodRule {
	t.Helper()
	rule := &domain.AutomodRule{
		TopicID:    topicID,
		Name:       name,
		Enabled:    true,
		Priority:   priority,
		Conditions: conditions,
		Action:     action,
		CreatedBy:  createdBy,
	}
	if err := e.rules.Create(rule); err != nil {
		t.Fatalf("seed rule %s: %v", name, err)
	}
	return rule
}

func intPtr(v int) *int { return &v }
