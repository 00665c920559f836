package repository

import (
	"errors"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// MembershipRepository handles topic membership data access
type MembershipRepository interface {
	Find(topicID, userID uint64) (*domain.TopicMembership, error)
	Create(m *domain.TopicMembership) error
	Delete(topicID, userID uint64) error
	SetBanned(topicID, userID uint64, banned bool) error
	SetRole(topicID, userID uint64, role domain.MemberRole) error
}

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Find(topicID, userID uint64) (*domain.TopicMembership, error) {
	var m domain.TopicMembership
	err := r.db.Where("topic_id = ? AND user_id = ?", topicID, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) Create(m *domain.TopicMembership) error {
	return r.db.Create(m).Error
}

func (r *membershipRepository) Delete(topicID, userID uint64) error {
	return r.db.Where("topic_id = ? AND user_id = ?", topicID, userID).
		Delete(&domain.TopicMembership{}).Error
}

func (r *membershipRepository) SetBanned(topicID, userID uint64, banned bool) error {
	return r.db.Model(&domain.TopicMembership{}).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Update("is_banned", banned).Error
}

func (r *membershipRepository) SetRole(topicID, userID uint64, role domain.MemberRole) error {
	return r.db.Model(&domain.TopicMembership{}).
		Where("topic_id = ? AND user_id = ?", topicID, userID).
		Update("role", role).Error
}
