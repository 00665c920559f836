package repository

import (
	"errors"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// PostRepository handles post data access
type PostRepository interface {
	FindByID(id uint64) (*domain.Post, error)
	FindByIDs(ids []uint64) ([]domain.Post, error)
	Create(post *domain.Post) error
	// TransitionStatus updates the moderation state only when the current
	// state still matches from. Returns false when another actor got there
	// first (optimistic check, see concurrency notes in the service).
	TransitionStatus(id uint64, from, to domain.ModerationStatus) (bool, error)
	SetLocked(id uint64, locked bool) (bool, error)
	IncrementCommentCount(id uint64) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByIDs(ids []uint64) ([]domain.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []domain.Post
	err := r.db.Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

func (r *postRepository) Create(post *domain.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) TransitionStatus(id uint64, from, to domain.ModerationStatus) (bool, error) {
	res := r.db.Model(&domain.Post{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (r *postRepository) SetLocked(id uint64, locked bool) (bool, error) {
	res := r.db.Model(&domain.Post{}).
		Where("id = ? AND is_locked = ?", id, !locked).
		Update("is_locked", locked)
	return res.RowsAffected > 0, res.Error
}

func (r *postRepository) IncrementCommentCount(id uint64) error {
	return r.db.Model(&domain.Post{}).Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
}
