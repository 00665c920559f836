package repository

import (
	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// ModLogRepository is the append-only audit store. There is deliberately
// no update or delete method: entries are write-once.
type ModLogRepository interface {
	Record(entry *domain.ModLogEntry) error
	FindByTopic(topicID uint64, filter domain.ModLogFilter) ([]domain.ModLogEntry, int64, error)
	FindByModerator(moderatorID uint64, offset, limit int) ([]domain.ModLogEntry, int64, error)
	FindAll(offset, limit int) ([]domain.ModLogEntry, int64, error)
}

type modLogRepository struct {
	db *gorm.DB
}

// NewModLogRepository creates a new ModLogRepository
func NewModLogRepository(db *gorm.DB) ModLogRepository {
	return &modLogRepository{db: db}
}

func (r *modLogRepository) Record(entry *domain.ModLogEntry) error {
	return r.db.Create(entry).Error
}

func (r *modLogRepository) FindByTopic(topicID uint64, filter domain.ModLogFilter) ([]domain.ModLogEntry, int64, error) {
	query := r.db.Model(&domain.ModLogEntry{}).Where("topic_id = ?", topicID)
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ModeratorID != 0 {
		query = query.Where("moderator_id = ?", filter.ModeratorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var entries []domain.ModLogEntry
	// Most-recent-first: the audit order moderators expect
	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *modLogRepository) FindByModerator(moderatorID uint64, offset, limit int) ([]domain.ModLogEntry, int64, error) {
	query := r.db.Model(&domain.ModLogEntry{}).Where("moderator_id = ?", moderatorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []domain.ModLogEntry
	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *modLogRepository) FindAll(offset, limit int) ([]domain.ModLogEntry, int64, error) {
	var total int64
	if err := r.db.Model(&domain.ModLogEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []domain.ModLogEntry
	if err := r.db.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
