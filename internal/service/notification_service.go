package service

import (
	"time"

	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/repository"
)

// NotificationService handles notification business logic
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// GetUnreadCount returns the unread notification count for a user
func (s *NotificationService) GetUnreadCount(userID uint64) (*domain.NotificationSummaryResponse, error) {
	count, err := s.repo.GetUnreadCount(userID)
	if err != nil {
		return nil, err
	}
	return &domain.NotificationSummaryResponse{TotalUnread: int(count)}, nil
}

// GetList returns paginated notifications for a user
func (s *NotificationService) GetList(userID uint64, page, limit int) (*domain.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	notifications, total, err := s.repo.GetList(userID, offset, limit)
	if err != nil {
		return nil, err
	}

	unreadCount, err := s.repo.GetUnreadCount(userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = domain.NotificationItem{
			ID:        n.ID,
			Type:      n.Type,
			RelatedID: n.RelatedID,
			Message:   n.Message,
			Status:    string(n.Status),
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}

	return &domain.NotificationListResponse{
		Items:       items,
		Total:       total,
		UnreadCount: unreadCount,
		Page:        page,
		Limit:       limit,
	}, nil
}

// MarkAsRead marks a notification as read after ownership check
func (s *NotificationService) MarkAsRead(userID, notificationID uint64) error {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return common.ErrNotFound
	}
	if n.UserID != userID {
		return common.ErrForbidden
	}
	return s.repo.MarkAsRead(notificationID)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *NotificationService) MarkAllAsRead(userID uint64) error {
	return s.repo.MarkAllAsRead(userID)
}

// Delete soft-deletes a notification after ownership check
func (s *NotificationService) Delete(userID, notificationID uint64) error {
	n, err := s.repo.FindByID(notificationID)
	if err != nil {
		return err
	}
	if n == nil {
		return common.ErrNotFound
	}
	if n.UserID != userID {
		return common.ErrForbidden
	}
	return s.repo.SoftDelete(notificationID)
}
