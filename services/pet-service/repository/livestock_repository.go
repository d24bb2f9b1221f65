package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"gorm.io/gorm"
)

type LivestockRepository interface {
	Create(ctx context.Context, herd *models.Livestock) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.Livestock, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Livestock, error)
	Update(ctx context.Context, herd *models.Livestock) error
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error

	CreateFeed(ctx context.Context, feed *models.FeedRecord) error
	FindFeeds(ctx context.Context, livestockID uuid.UUID, page, limit int) ([]models.FeedRecord, int64, error)
	DeleteFeed(ctx context.Context, livestockID, feedID uuid.UUID) error
	FindLivestockByProduct(ctx context.Context, productID uuid.UUID) ([]models.Livestock, error)
}

type GormLivestockRepository struct {
	db *gorm.DB
}

func NewGormLivestockRepository(db *gorm.DB) LivestockRepository {
	return &GormLivestockRepository{db: db}
}

func (r *GormLivestockRepository) Create(ctx context.Context, herd *models.Livestock) error {
	return r.db.WithContext(ctx).Create(herd).Error
}

func (r *GormLivestockRepository) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.Livestock, error) {
	var herd models.Livestock
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		First(&herd).Error; err != nil {
		return nil, err
	}
	return &herd, nil
}

func (r *GormLivestockRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Livestock, error) {
	var herds []models.Livestock
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("name ASC").
		Find(&herds).Error; err != nil {
		return nil, err
	}
	return herds, nil
}

func (r *GormLivestockRepository) Update(ctx context.Context, herd *models.Livestock) error {
	return r.db.WithContext(ctx).Save(herd).Error
}

func (r *GormLivestockRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		Delete(&models.Livestock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormLivestockRepository) CreateFeed(ctx context.Context, feed *models.FeedRecord) error {
	return r.db.WithContext(ctx).Create(feed).Error
}

func (r *GormLivestockRepository) FindFeeds(ctx context.Context, livestockID uuid.UUID, page, limit int) ([]models.FeedRecord, int64, error) {
	var feeds []models.FeedRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&models.FeedRecord{}).Where("livestock_id = ?", livestockID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("fed_at DESC").
		Find(&feeds).Error; err != nil {
		return nil, 0, err
	}
	return feeds, total, nil
}

func (r *GormLivestockRepository) DeleteFeed(ctx context.Context, livestockID, feedID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND livestock_id = ?", feedID, livestockID).
		Delete(&models.FeedRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindLivestockByProduct returns every herd with a feed record for the product.
func (r *GormLivestockRepository) FindLivestockByProduct(ctx context.Context, productID uuid.UUID) ([]models.Livestock, error) {
	var herds []models.Livestock
	sub := r.db.Model(&models.FeedRecord{}).Select("livestock_id").Where("product_id = ?", productID)
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Find(&herds).Error; err != nil {
		return nil, err
	}
	return herds, nil
}
