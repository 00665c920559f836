package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/repository"
	"github.com/talkwave/talkwave-backend/pkg/logger"
)

// TopicService handles topic lifecycle and membership
type TopicService struct {
	topicRepo        repository.TopicRepository
	memberRepo       repository.MembershipRepository
	modLogRepo       repository.ModLogRepository
	notificationRepo repository.NotificationRepository
	gate             *Gate
	trending         *TrendingService
}

// NewTopicService creates a new TopicService
func NewTopicService(
	topicRepo repository.TopicRepository,
	memberRepo repository.MembershipRepository,
	modLogRepo repository.ModLogRepository,
	notificationRepo repository.NotificationRepository,
	gate *Gate,
	trending *TrendingService,
) *TopicService {
	return &TopicService{
		topicRepo:        topicRepo,
		memberRepo:       memberRepo,
		modLogRepo:       modLogRepo,
		notificationRepo: notificationRepo,
		gate:             gate,
		trending:         trending,
	}
}

// CreateTopic creates a topic owned by the caller. Ownership is implicit;
// the owner never holds a membership row.
func (s *TopicService) CreateTopic(ownerID uint64, name string, description *string) (*domain.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, fmt.Errorf("%w: topic name must be 1-100 characters", common.ErrInvalidInput)
	}

	existing, err := s.topicRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: topic %q already exists", common.ErrConflict, name)
	}

	topic := &domain.Topic{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.topicRepo.Create(topic); err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	return topic, nil
}

// GetTopic returns one topic by id
func (s *TopicService) GetTopic(id uint64) (*domain.Topic, error) {
	topic, err := s.topicRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, common.ErrTopicNotFound
	}
	return topic, nil
}

// Join adds the caller as a member of a topic
func (s *TopicService) Join(ctx context.Context, userID, topicID uint64) error {
	topic, err := s.topicRepo.FindByID(topicID)
	if err != nil {
		return err
	}
	if topic == nil {
		return common.ErrTopicNotFound
	}
	if topic.OwnerID == userID {
		return fmt.Errorf("%w: owner is already a member", common.ErrConflict)
	}

	existing, err := s.memberRepo.Find(topicID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsBanned {
			return common.ErrBanned
		}
		return fmt.Errorf("%w: already a member", common.ErrConflict)
	}

	membership := &domain.TopicMembership{
		TopicID: topicID,
		UserID:  userID,
		Role:    domain.MemberRoleMember,
	}
	if err := s.memberRepo.Create(membership); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}

	if err := s.trending.RecordActivity(ctx, domain.ActivityJoin, topicID, nil); err != nil {
		logger.Warn("record join activity failed: %v", err)
	}
	return nil
}

// Leave removes the caller's membership. Banned members cannot leave:
// deleting the row would clear the ban.
func (s *TopicService) Leave(userID, topicID uint64) error {
	membership, err := s.memberRepo.Find(topicID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return common.ErrNotFound
	}
	if membership.IsBanned {
		return common.ErrForbidden
	}
	return s.memberRepo.Delete(topicID, userID)
}

// SetBanned bans or unbans a member. Requires moderator authority; the
// topic owner and moderators cannot be banned. Every change is audited.
func (s *TopicService) SetBanned(actorID, topicID, userID uint64, banned bool, reason *string) error {
	access, err := s.gate.Check(actorID, topicID)
	if err != nil {
		return err
	}
	if !access.CanModerate() {
		return common.ErrForbidden
	}

	target, err := s.gate.Check(userID, topicID)
	if err != nil {
		return err
	}
	if target.Role == RoleNone {
		return common.ErrNotFound
	}
	if target.Role == RoleOwner || target.Role == RoleModerator {
		return fmt.Errorf("%w: cannot ban a moderator or the owner", common.ErrForbidden)
	}

	if err := s.memberRepo.SetBanned(topicID, userID, banned); err != nil {
		return fmt.Errorf("set banned: %w", err)
	}

	action := domain.ActionBan
	if !banned {
		action = domain.ActionUnban
	}
	entry := &domain.ModLogEntry{
		TopicID:     topicID,
		ModeratorID: actorID,
		Action:      action,
		TargetType:  domain.TargetUser,
		TargetID:    userID,
		Reason:      reason,
	}
	if err := s.modLogRepo.Record(entry); err != nil {
		logger.Error("mod log append for %s failed: %v", action, err)
	}

	message := "You were banned from a topic"
	if !banned {
		message = "Your ban was lifted"
	}
	notification := &domain.Notification{
		UserID:    userID,
		Type:      domain.NotifyMembership,
		RelatedID: topicID,
		Message:   message,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Warn("membership notification failed: %v", err)
	}
	return nil
}

// SetModerator grants or revokes the moderator role. Only the topic owner
// or a superuser may change roles.
func (s *TopicService) SetModerator(actorID, topicID, userID uint64, moderator bool) error {
	access, err := s.gate.Check(actorID, topicID)
	if err != nil {
		return err
	}
	if access.Role != RoleOwner && !access.Superuser {
		return common.ErrForbidden
	}

	membership, err := s.memberRepo.Find(topicID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return common.ErrNotFound
	}
	if membership.IsBanned {
		return fmt.Errorf("%w: banned members cannot moderate", common.ErrConflict)
	}

	role := domain.MemberRoleMember
	if moderator {
		role = domain.MemberRoleModerator
	}
	if err := s.memberRepo.SetRole(topicID, userID, role); err != nil {
		return fmt.Errorf("set role: %w", err)
	}

	notification := &domain.Notification{
		UserID:    userID,
		Type:      domain.NotifyMembership,
		RelatedID: topicID,
		Message:   fmt.Sprintf("Your role changed to %s", role),
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Warn("membership notification failed: %v", err)
	}
	return nil
}
