package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"gorm.io/gorm"
)

// BlacklistRepository defines data-access operations for the ingredient blacklist.
type BlacklistRepository interface {
	Create(ctx context.Context, entry *models.BlacklistEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BlacklistEntry, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.BlacklistEntry, error)
	Update(ctx context.Context, entry *models.BlacklistEntry) error
}

type GormBlacklistRepository struct {
	db *gorm.DB
}

func NewGormBlacklistRepository(db *gorm.DB) BlacklistRepository {
	return &GormBlacklistRepository{db: db}
}

func (r *GormBlacklistRepository) Create(ctx context.Context, entry *models.BlacklistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormBlacklistRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BlacklistEntry, error) {
	var e models.BlacklistEntry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindAll returns entries ordered by creation so match order is stable.
func (r *GormBlacklistRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.BlacklistEntry, error) {
	var entries []models.BlacklistEntry
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormBlacklistRepository) Update(ctx context.Context, entry *models.BlacklistEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}
