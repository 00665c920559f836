package repository

import (
	"errors"
	"time"

	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// TopicRepository handles topic data access
type TopicRepository interface {
	FindByID(id uint64) (*domain.Topic, error)
	FindByName(name string) (*domain.Topic, error)
	FindByIDs(ids []uint64) ([]domain.Topic, error)
	Create(topic *domain.Topic) error
	UpdateTrendingScore(id uint64, score float64) error
	TouchActivity(id uint64, at time.Time) error
}

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) FindByID(id uint64) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.Where("id = ?", id).First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) FindByName(name string) (*domain.Topic, error) {
	var topic domain.Topic
	err := r.db.Where("name = ?", name).First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) FindByIDs(ids []uint64) ([]domain.Topic, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var topics []domain.Topic
	err := r.db.Where("id IN ?", ids).Find(&topics).Error
	return topics, err
}

func (r *topicRepository) Create(topic *domain.Topic) error {
	return r.db.Create(topic).Error
}

// UpdateTrendingScore is the only write path for the derived score
func (r *topicRepository) UpdateTrendingScore(id uint64, score float64) error {
	return r.db.Model(&domain.Topic{}).Where("id = ?", id).
		UpdateColumn("trending_score", score).Error
}

func (r *topicRepository) TouchActivity(id uint64, at time.Time) error {
	return r.db.Model(&domain.Topic{}).Where("id = ?", id).
		UpdateColumn("last_activity_at", at).Error
}
