package repository

import (
	"errors"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// AutomodRepository handles automod rule data access
type AutomodRepository interface {
	FindByID(id uint64) (*domain.AutomodRule, error)
	// FindByTopic returns all rules for a topic in evaluation order:
	// priority descending, created_at ascending for ties.
	FindByTopic(topicID uint64) ([]domain.AutomodRule, error)
	// FindEnabledByTopic returns the consistent rule snapshot the matcher
	// evaluates against for one submission.
	FindEnabledByTopic(topicID uint64) ([]domain.AutomodRule, error)
	Create(rule *domain.AutomodRule) error
	Save(rule *domain.AutomodRule) error
	Delete(id uint64) error
}

type automodRepository struct {
	db *gorm.DB
}

// NewAutomodRepository creates a new AutomodRepository
func NewAutomodRepository(db *gorm.DB) AutomodRepository {
	return &automodRepository{db: db}
}

func (r *automodRepository) FindByID(id uint64) (*domain.AutomodRule, error) {
	var rule domain.AutomodRule
	err := r.db.Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *automodRepository) FindByTopic(topicID uint64) ([]domain.AutomodRule, error) {
	var rules []domain.AutomodRule
	err := r.db.Where("topic_id = ?", topicID).
		Order("priority DESC, created_at ASC, id ASC").
		Find(&rules).Error
	return rules, err
}

func (r *automodRepository) FindEnabledByTopic(topicID uint64) ([]domain.AutomodRule, error) {
	var rules []domain.AutomodRule
	err := r.db.Where("topic_id = ? AND enabled = ?", topicID, true).
		Order("priority DESC, created_at ASC, id ASC").
		Find(&rules).Error
	return rules, err
}

func (r *automodRepository) Create(rule *domain.AutomodRule) error {
	return r.db.Create(rule).Error
}

func (r *automodRepository) Save(rule *domain.AutomodRule) error {
	return r.db.Save(rule).Error
}

func (r *automodRepository) Delete(id uint64) error {
	return r.db.Where("id = ?", id).Delete(&domain.AutomodRule{}).Error
}
