package service

import (
	"fmt"
	"time"

	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/repository"
)

// Role is the effective authority of a user within a topic
type Role string

const (
	RoleNone      Role = "none"
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleOwner     Role = "owner"
)

// AccessSnapshot is the gate's answer for one (user, topic) pair, taken
// once per request so the pipeline sees a consistent view.
type AccessSnapshot struct {
	UserID    uint64
	Username  string
	TopicID   uint64
	Role      Role
	Banned    bool
	Superuser bool

	// Author context for the automod matcher
	Karma          int
	AccountCreated time.Time
}

// CanModerate reports whether the snapshot grants moderation authority
func (s *AccessSnapshot) CanModerate() bool {
	return s.Superuser || s.Role == RoleModerator || s.Role == RoleOwner
}

// AccountAgeDays returns the author's account age in whole days at now
func (s *AccessSnapshot) AccountAgeDays(now time.Time) int {
	return int(now.Sub(s.AccountCreated).Hours() / 24)
}

// Gate resolves role, ban status and the superuser flag for a user within
// a topic. The moderation pipeline consumes it before any side effect runs.
type Gate struct {
	userRepo   repository.UserRepository
	topicRepo  repository.TopicRepository
	memberRepo repository.MembershipRepository
}

// NewGate creates a new Gate
func NewGate(
	userRepo repository.UserRepository,
	topicRepo repository.TopicRepository,
	memberRepo repository.MembershipRepository,
) *Gate {
	return &Gate{
		userRepo:   userRepo,
		topicRepo:  topicRepo,
		memberRepo: memberRepo,
	}
}

// Check resolves the access snapshot for (userID, topicID)
func (g *Gate) Check(userID, topicID uint64) (*AccessSnapshot, error) {
	topic, err := g.topicRepo.FindByID(topicID)
	if err != nil {
		return nil, fmt.Errorf("gate: load topic: %w", err)
	}
	if topic == nil {
		return nil, common.ErrTopicNotFound
	}

	user, err := g.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("gate: load user: %w", err)
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}

	snapshot := &AccessSnapshot{
		UserID:         userID,
		Username:       user.Username,
		TopicID:        topicID,
		Role:           RoleNone,
		Superuser:      user.IsSuperuser,
		Karma:          user.Karma(),
		AccountCreated: user.CreatedAt,
	}

	if topic.OwnerID == userID {
		snapshot.Role = RoleOwner
		return snapshot, nil
	}

	membership, err := g.memberRepo.Find(topicID, userID)
	if err != nil {
		return nil, fmt.Errorf("gate: load membership: %w", err)
	}
	if membership != nil {
		snapshot.Banned = membership.IsBanned
		if membership.Role == domain.MemberRoleModerator {
			snapshot.Role = RoleModerator
		} else {
			snapshot.Role = RoleMember
		}
	}

	return snapshot, nil
}

// CheckSubmission runs the gate for a content submission. A banned member
// is rejected here, before mention extraction or automod ever run.
func (g *Gate) CheckSubmission(userID, topicID uint64) (*AccessSnapshot, error) {
	snapshot, err := g.Check(userID, topicID)
	if err != nil {
		return nil, err
	}
	if snapshot.Banned {
		return nil, common.ErrBanned
	}
	if snapshot.Role == RoleNone && !snapshot.Superuser {
		return nil, common.ErrForbidden
	}
	return snapshot, nil
}
