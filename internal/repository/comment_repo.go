package repository

import (
	"errors"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository handles comment data access
type CommentRepository interface {
	FindByID(id uint64) (*domain.Comment, error)
	Create(comment *domain.Comment) error
	TransitionStatus(id uint64, from, to domain.ModerationStatus) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindByID(id uint64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) TransitionStatus(id uint64, from, to domain.ModerationStatus) (bool, error) {
	res := r.db.Model(&domain.Comment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}
