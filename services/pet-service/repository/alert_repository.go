package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertRepository interface {
	CreateIfAbsent(ctx context.Context, alert *models.RecallAlert) (bool, error)
	FindByOwner(ctx context.Context, filter models.AlertFilter) ([]models.RecallAlert, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, ownerID string) error
}

type GormAlertRepository struct {
	db *gorm.DB
}

func NewGormAlertRepository(db *gorm.DB) AlertRepository {
	return &GormAlertRepository{db: db}
}

// CreateIfAbsent inserts the alert unless one already exists for the same
// recall and subject. It reports whether a row was written.
func (r *GormAlertRepository) CreateIfAbsent(ctx context.Context, alert *models.RecallAlert) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recall_number"}, {Name: "subject_type"}, {Name: "subject_id"}},
			DoNothing: true,
		}).
		Create(alert)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormAlertRepository) FindByOwner(ctx context.Context, filter models.AlertFilter) ([]models.RecallAlert, int64, error) {
	var alerts []models.RecallAlert
	var total int64

	query := r.db.WithContext(ctx).Model(&models.RecallAlert{}).Where("owner_user_id = ?", filter.OwnerUserID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Offset(offset).Limit(filter.Limit).
		Order("created_at DESC").
		Find(&alerts).Error; err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

func (r *GormAlertRepository) MarkRead(ctx context.Context, id uuid.UUID, ownerID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.RecallAlert{}).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
