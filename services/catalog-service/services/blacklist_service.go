package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlacklistService manages flagged ingredients.
type BlacklistService interface {
	ListActive(ctx context.Context) ([]models.BlacklistEntry, *ServiceError)
	Create(ctx context.Context, req *models.CreateBlacklistRequest) (*models.BlacklistEntry, *ServiceError)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateBlacklistRequest) (*models.BlacklistEntry, *ServiceError)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.BlacklistEntry, *ServiceError)
}

type blacklistServiceImpl struct {
	repo     repository.BlacklistRepository
	source   BlacklistSource
	products ProductCache
	logger   *zap.Logger
}

func NewBlacklistService(repo repository.BlacklistRepository, source BlacklistSource, products ProductCache, logger *zap.Logger) BlacklistService {
	return &blacklistServiceImpl{repo: repo, source: source, products: products, logger: logger}
}

func (s *blacklistServiceImpl) ListActive(ctx context.Context) ([]models.BlacklistEntry, *ServiceError) {
	entries, err := s.source.Active(ctx)
	if err != nil {
		s.logger.Error("Failed to list blacklist", zap.Error(err))
		return nil, internalError("Failed to fetch blacklist")
	}
	return entries, nil
}

func (s *blacklistServiceImpl) Create(ctx context.Context, req *models.CreateBlacklistRequest) (*models.BlacklistEntry, *ServiceError) {
	entry := &models.BlacklistEntry{
		IngredientName: strings.TrimSpace(req.IngredientName),
		Reason:         req.Reason,
		Severity:       req.Severity,
		IsActive:       true,
	}
	if len(entry.IngredientName) < 2 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "ingredient_name must be at least 2 characters"}
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "ingredient is already blacklisted"}
		}
		s.logger.Error("Failed to create blacklist entry", zap.Error(err))
		return nil, internalError("Failed to create blacklist entry")
	}
	s.changed(ctx, entry)
	return entry, nil
}

func (s *blacklistServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateBlacklistRequest) (*models.BlacklistEntry, *ServiceError) {
	entry, svcErr := s.find(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}
	if req.Reason != nil {
		entry.Reason = *req.Reason
	}
	if req.Severity != nil {
		entry.Severity = *req.Severity
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		s.logger.Error("Failed to update blacklist entry", zap.String("entry_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to update blacklist entry")
	}
	s.changed(ctx, entry)
	return entry, nil
}

func (s *blacklistServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) (*models.BlacklistEntry, *ServiceError) {
	inactive := false
	return s.Update(ctx, id, &models.UpdateBlacklistRequest{IsActive: &inactive})
}

func (s *blacklistServiceImpl) find(ctx context.Context, id uuid.UUID) (*models.BlacklistEntry, *ServiceError) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("blacklist entry not found")
		}
		s.logger.Error("Failed to fetch blacklist entry", zap.String("entry_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to fetch blacklist entry")
	}
	return entry, nil
}

// changed drops cached blacklist and product lookups after any edit.
func (s *blacklistServiceImpl) changed(ctx context.Context, entry *models.BlacklistEntry) {
	s.source.Invalidate()
	if err := s.products.InvalidateAll(ctx); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
	s.logger.Info("Blacklist changed",
		zap.String("ingredient", entry.IngredientName),
		zap.Bool("active", entry.IsActive))
}
