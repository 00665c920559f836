package repository

import (
	"github.com/talkwave/talkwave-backend/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository handles report data access
type ReportRepository interface {
	Create(report *domain.Report) error
	FindByTopic(topicID uint64, offset, limit int) ([]domain.Report, int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *domain.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindByTopic(topicID uint64, offset, limit int) ([]domain.Report, int64, error) {
	query := r.db.Model(&domain.Report{}).Where("topic_id = ?", topicID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []domain.Report
	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
