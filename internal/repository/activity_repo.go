package repository

import (
	"context"
	"time"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// ActivityRepository handles trending activity events
type ActivityRepository interface {
	Record(ctx context.Context, event *domain.ActivityEvent) error
	FindSince(ctx context.Context, since time.Time) ([]domain.ActivityEvent, error)
	FindPostEventsSince(ctx context.Context, since time.Time) ([]domain.ActivityEvent, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) error
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Record(ctx context.Context, event *domain.ActivityEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *activityRepository) FindSince(ctx context.Context, since time.Time) ([]domain.ActivityEvent, error) {
	var events []domain.ActivityEvent
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (r *activityRepository) FindPostEventsSince(ctx context.Context, since time.Time) ([]domain.ActivityEvent, error) {
	var events []domain.ActivityEvent
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND post_id IS NOT NULL", since).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	return events, err
}

// DeleteBefore prunes events older than the scoring window
func (r *activityRepository) DeleteBefore(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&domain.ActivityEvent{}).Error
}
