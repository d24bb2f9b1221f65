package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"gorm.io/gorm"
)

// ReviewRepository defines data-access operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.ProductReview) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductReview, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]models.ProductReview, int64, error)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error)
	Update(ctx context.Context, review *models.ProductReview) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) ReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.ProductReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductReview, error) {
	var rev models.ProductReview
	if err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]models.ProductReview, int64, error) {
	var reviews []models.ProductReview
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ProductReview{}).Where("product_id = ?", productID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListForProduct returns every live review of a product, used by analysis.
func (r *GormReviewRepository) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error) {
	var reviews []models.ProductReview
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) Update(ctx context.Context, review *models.ProductReview) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductReview{}, "id = ?", id).Error
}
