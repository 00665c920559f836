package repository

import (
	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// MentionRepository handles mention data access
type MentionRepository interface {
	Create(mention *domain.Mention) error
	ExistsForPost(postID, mentionedID uint64) (bool, error)
	ExistsForComment(commentID, mentionedID uint64) (bool, error)
	FindByMentioned(userID uint64, offset, limit int) ([]domain.Mention, int64, error)
}

type mentionRepository struct {
	db *gorm.DB
}

// NewMentionRepository creates a new MentionRepository
func NewMentionRepository(db *gorm.DB) MentionRepository {
	return &mentionRepository{db: db}
}

func (r *mentionRepository) Create(mention *domain.Mention) error {
	return r.db.Create(mention).Error
}

func (r *mentionRepository) ExistsForPost(postID, mentionedID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Mention{}).
		Where("post_id = ? AND mentioned_id = ?", postID, mentionedID).
		Count(&count).Error
	return count > 0, err
}

func (r *mentionRepository) ExistsForComment(commentID, mentionedID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Mention{}).
		Where("comment_id = ? AND mentioned_id = ?", commentID, mentionedID).
		Count(&count).Error
	return count > 0, err
}

func (r *mentionRepository) FindByMentioned(userID uint64, offset, limit int) ([]domain.Mention, int64, error) {
	query := r.db.Model(&domain.Mention{}).Where("mentioned_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var mentions []domain.Mention
	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&mentions).Error; err != nil {
		return nil, 0, err
	}
	return mentions, total, nil
}
