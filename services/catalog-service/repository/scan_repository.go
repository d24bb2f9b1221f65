package repository

import (
	"context"

	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"gorm.io/gorm"
)

// ScanRepository is append-only: history rows are never updated.
type ScanRepository interface {
	Create(ctx context.Context, scan *models.ScanHistory) error
	FindByUser(ctx context.Context, userID string, page, limit int) ([]models.ScanHistory, int64, error)
}

type GormScanRepository struct {
	db *gorm.DB
}

func NewGormScanRepository(db *gorm.DB) ScanRepository {
	return &GormScanRepository{db: db}
}

func (r *GormScanRepository) Create(ctx context.Context, scan *models.ScanHistory) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *GormScanRepository) FindByUser(ctx context.Context, userID string, page, limit int) ([]models.ScanHistory, int64, error) {
	var scans []models.ScanHistory
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ScanHistory{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&scans).Error; err != nil {
		return nil, 0, err
	}
	return scans, total, nil
}
