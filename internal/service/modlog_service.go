package service

import (
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/repository"
)

// ModLogService is the read side of the moderation audit trail. Writes go
// through the executor only; there is no public mutation surface.
type ModLogService struct {
	modLogRepo repository.ModLogRepository
	topicRepo  repository.TopicRepository
}

// NewModLogService creates a new ModLogService
func NewModLogService(modLogRepo repository.ModLogRepository, topicRepo repository.TopicRepository) *ModLogService {
	return &ModLogService{modLogRepo: modLogRepo, topicRepo: topicRepo}
}

func normalizeFilter(filter *domain.ModLogFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
}

// ListTopic returns a topic's audit entries, newest first. The per-topic
// log is a public audit trail: no authentication required.
func (s *ModLogService) ListTopic(topicID uint64, filter domain.ModLogFilter) ([]domain.ModLogEntry, int64, error) {
	topic, err := s.topicRepo.FindByID(topicID)
	if err != nil {
		return nil, 0, err
	}
	if topic == nil {
		return nil, 0, common.ErrTopicNotFound
	}

	normalizeFilter(&filter)
	return s.modLogRepo.FindByTopic(topicID, filter)
}

// ListModerator returns one moderator's entries across topics
func (s *ModLogService) ListModerator(moderatorID uint64, page, limit int) ([]domain.ModLogEntry, int64, error) {
	filter := domain.ModLogFilter{Page: page, Limit: limit}
	normalizeFilter(&filter)
	return s.modLogRepo.FindByModerator(moderatorID, (filter.Page-1)*filter.Limit, filter.Limit)
}

// ListGlobal returns the cross-topic audit view. Callers must already be
// verified as superusers; this is enforced at the route level.
func (s *ModLogService) ListGlobal(page, limit int) ([]domain.ModLogEntry, int64, error) {
	filter := domain.ModLogFilter{Page: page, Limit: limit}
	normalizeFilter(&filter)
	return s.modLogRepo.FindAll((filter.Page-1)*filter.Limit, filter.Limit)
}
