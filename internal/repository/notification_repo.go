package repository

import (
	"errors"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository handles notification data operations
type NotificationRepository interface {
	Create(notification *domain.Notification) error
	FindByID(id uint64) (*domain.Notification, error)
	GetUnreadCount(userID uint64) (int64, error)
	GetList(userID uint64, offset, limit int) ([]domain.Notification, int64, error)
	MarkAsRead(id uint64) error
	MarkAllAsRead(userID uint64) error
	SoftDelete(id uint64) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *domain.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindByID(id uint64) (*domain.Notification, error) {
	var notification domain.Notification
	err := r.db.Where("id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) GetUnreadCount(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND status = ?", userID, domain.NotificationUnread).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) GetList(userID uint64, offset, limit int) ([]domain.Notification, int64, error) {
	query := r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND status != ?", userID, domain.NotificationDeleted)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []domain.Notification
	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkAsRead(id uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("id = ? AND status = ?", id, domain.NotificationUnread).
		Update("status", domain.NotificationRead).Error
}

func (r *notificationRepository) MarkAllAsRead(userID uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND status = ?", userID, domain.NotificationUnread).
		Update("status", domain.NotificationRead).Error
}

// SoftDelete marks the notification deleted; rows are kept for audit
func (r *notificationRepository) SoftDelete(id uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("status", domain.NotificationDeleted).Error
}
