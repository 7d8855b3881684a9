package repository

import (
	"context"
	"time"

	"typehero/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines interface for abuse report operations
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	HasOpenReport(ctx context.Context, reporterID, commentID uint) (bool, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.Report, error)
	Resolve(ctx context.Context, id uint, status string, adminID uint, note string) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).
		Preload("Reporter").
		Preload("ResolvedByUser").
		First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// HasOpenReport reports whether the reporter already has an open report
// against the comment. Resolved and dismissed reports do not count; a user
// may report again once their previous report was handled.
func (r *reportRepository) HasOpenReport(ctx context.Context, reporterID, commentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("reporter_id = ? AND comment_id = ? AND status = ?",
			reporterID, commentID, models.ReportStatusOpen).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reportRepository) List(
	ctx context.Context,
	status string,
	limit, offset int,
) ([]*models.Report, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reports []*models.Report
	err := query.
		Preload("Reporter").
		Preload("ResolvedByUser").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) Resolve(ctx context.Context, id uint, status string, adminID uint, note string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":              status,
			"resolved_by_user_id": adminID,
			"resolved_at":         now,
			"resolution_note":     note,
		}).Error
}
