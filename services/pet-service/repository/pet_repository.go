package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"gorm.io/gorm"
)

// PetRepository defines data-access operations for pets and their saved
// products. Lookups are scoped to the owner so other users' rows read as
// not found.
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.Pet, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error

	SaveProduct(ctx context.Context, saved *models.SavedProduct) error
	FindSavedProducts(ctx context.Context, petID uuid.UUID) ([]models.SavedProduct, error)
	DeleteSavedProduct(ctx context.Context, petID, savedID uuid.UUID) error
	FindPetsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Pet, error)
}

type GormPetRepository struct {
	db *gorm.DB
}

func NewGormPetRepository(db *gorm.DB) PetRepository {
	return &GormPetRepository{db: db}
}

func (r *GormPetRepository) Create(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		First(&pet).Error; err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *GormPetRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerID).
		Order("name ASC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *GormPetRepository) Update(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Save(pet).Error
}

func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_user_id = ?", id, ownerID).
		Delete(&models.Pet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormPetRepository) SaveProduct(ctx context.Context, saved *models.SavedProduct) error {
	return r.db.WithContext(ctx).Create(saved).Error
}

func (r *GormPetRepository) FindSavedProducts(ctx context.Context, petID uuid.UUID) ([]models.SavedProduct, error) {
	var saved []models.SavedProduct
	if err := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("created_at DESC").
		Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *GormPetRepository) DeleteSavedProduct(ctx context.Context, petID, savedID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND pet_id = ?", savedID, petID).
		Delete(&models.SavedProduct{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindPetsByProduct returns every pet with the product on its saved list.
func (r *GormPetRepository) FindPetsByProduct(ctx context.Context, productID uuid.UUID) ([]models.Pet, error) {
	var pets []models.Pet
	sub := r.db.Model(&models.SavedProduct{}).Select("pet_id").Where("product_id = ?", productID)
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}
