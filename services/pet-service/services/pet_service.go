package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/pawsitivecheck/backend/services/pet-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PetService manages pet profiles and their saved products. Every call is
// scoped to the owner.
type PetService interface {
	List(ctx context.Context, ownerID string) ([]models.Pet, error)
	Get(ctx context.Context, id uuid.UUID, ownerID string) (*models.Pet, error)
	Create(ctx context.Context, ownerID string, req *models.CreatePetRequest) (*models.Pet, error)
	Update(ctx context.Context, id uuid.UUID, ownerID string, req *models.UpdatePetRequest) (*models.Pet, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error

	ListSaved(ctx context.Context, petID uuid.UUID, ownerID string) ([]models.SavedProduct, error)
	SaveProduct(ctx context.Context, petID uuid.UUID, ownerID string, req *models.SaveProductRequest) (*models.SavedProduct, error)
	RemoveSaved(ctx context.Context, petID, savedID uuid.UUID, ownerID string) error
}

type petService struct {
	repo   repository.PetRepository
	logger *zap.Logger
}

func NewPetService(repo repository.PetRepository, logger *zap.Logger) PetService {
	return &petService{repo: repo, logger: logger}
}

func (s *petService) List(ctx context.Context, ownerID string) ([]models.Pet, error) {
	pets, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list pets", zap.String("user_id", ownerID), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pets, nil
}

func (s *petService) Get(ctx context.Context, id uuid.UUID, ownerID string) (*models.Pet, error) {
	pet, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, storeError(err, ErrPetNotFound)
	}
	return pet, nil
}

func (s *petService) Create(ctx context.Context, ownerID string, req *models.CreatePetRequest) (*models.Pet, error) {
	pet := &models.Pet{
		OwnerUserID: ownerID,
		Name:        strings.TrimSpace(req.Name),
		Species:     req.Species,
		Breed:       strings.TrimSpace(req.Breed),
		Sex:         req.Sex,
		BirthDate:   req.BirthDate,
		WeightKg:    req.WeightKg,
		Allergies:   normalizeAllergies(req.Allergies),
		Notes:       req.Notes,
	}
	if pet.Name == "" {
		return nil, apperrors.New(http.StatusBadRequest, "name is required", nil)
	}
	if err := s.repo.Create(ctx, pet); err != nil {
		s.logger.Error("Failed to create pet", zap.String("user_id", ownerID), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pet, nil
}

func (s *petService) Update(ctx context.Context, id uuid.UUID, ownerID string, req *models.UpdatePetRequest) (*models.Pet, error) {
	pet, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, storeError(err, ErrPetNotFound)
	}

	if req.Name != nil {
		pet.Name = strings.TrimSpace(*req.Name)
	}
	if req.Species != nil {
		pet.Species = *req.Species
	}
	if req.Breed != nil {
		pet.Breed = strings.TrimSpace(*req.Breed)
	}
	if req.Sex != nil {
		pet.Sex = *req.Sex
	}
	if req.BirthDate != nil {
		pet.BirthDate = req.BirthDate
	}
	if req.WeightKg != nil {
		pet.WeightKg = req.WeightKg
	}
	if req.Allergies != nil {
		pet.Allergies = normalizeAllergies(req.Allergies)
	}
	if req.Notes != nil {
		pet.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		s.logger.Error("Failed to update pet", zap.String("pet_id", id.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return pet, nil
}

func (s *petService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return storeError(err, ErrPetNotFound)
	}
	return nil
}

func (s *petService) ListSaved(ctx context.Context, petID uuid.UUID, ownerID string) ([]models.SavedProduct, error) {
	if _, err := s.Get(ctx, petID, ownerID); err != nil {
		return nil, err
	}
	saved, err := s.repo.FindSavedProducts(ctx, petID)
	if err != nil {
		s.logger.Error("Failed to list saved products", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return saved, nil
}

func (s *petService) SaveProduct(ctx context.Context, petID uuid.UUID, ownerID string, req *models.SaveProductRequest) (*models.SavedProduct, error) {
	if _, err := s.Get(ctx, petID, ownerID); err != nil {
		return nil, err
	}
	saved := &models.SavedProduct{
		PetID:       petID,
		ProductID:   req.ProductID,
		ProductName: strings.TrimSpace(req.ProductName),
		Notes:       req.Notes,
	}
	if err := s.repo.SaveProduct(ctx, saved); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySaved
		}
		s.logger.Error("Failed to save product", zap.String("pet_id", petID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return saved, nil
}

func (s *petService) RemoveSaved(ctx context.Context, petID, savedID uuid.UUID, ownerID string) error {
	if _, err := s.Get(ctx, petID, ownerID); err != nil {
		return err
	}
	if err := s.repo.DeleteSavedProduct(ctx, petID, savedID); err != nil {
		return storeError(err, ErrSavedNotFound)
	}
	return nil
}

// normalizeAllergies lower-cases, trims and de-duplicates allergy names.
func normalizeAllergies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}
