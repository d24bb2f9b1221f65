package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"gorm.io/gorm"
)

// RecallRepository defines data-access operations for recalls. There is no
// delete; recalls are only deactivated.
type RecallRepository interface {
	Create(ctx context.Context, recall *models.ProductRecall) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductRecall, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]models.ProductRecall, error)
	FindActive(ctx context.Context, page, limit int) ([]models.ProductRecall, int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type GormRecallRepository struct {
	db *gorm.DB
}

func NewGormRecallRepository(db *gorm.DB) RecallRepository {
	return &GormRecallRepository{db: db}
}

func (r *GormRecallRepository) Create(ctx context.Context, recall *models.ProductRecall) error {
	return r.db.WithContext(ctx).Create(recall).Error
}

func (r *GormRecallRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductRecall, error) {
	var rc models.ProductRecall
	if err := r.db.WithContext(ctx).First(&rc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *GormRecallRepository) FindByProduct(ctx context.Context, productID uuid.UUID, activeOnly bool) ([]models.ProductRecall, error) {
	var recalls []models.ProductRecall
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("recall_date DESC").Find(&recalls).Error; err != nil {
		return nil, err
	}
	return recalls, nil
}

func (r *GormRecallRepository) FindActive(ctx context.Context, page, limit int) ([]models.ProductRecall, int64, error) {
	var recalls []models.ProductRecall
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ProductRecall{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("recall_date DESC").
		Find(&recalls).Error; err != nil {
		return nil, 0, err
	}
	return recalls, total, nil
}

func (r *GormRecallRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.ProductRecall{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
