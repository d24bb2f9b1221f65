package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/pawsitivecheck/backend/services/pet-service/repository"
	"go.uber.org/zap"
)

type LivestockService interface {
	List(ctx context.Context, ownerID string) ([]models.Livestock, error)
	Get(ctx context.Context, id uuid.UUID, ownerID string) (*models.Livestock, error)
	Create(ctx context.Context, ownerID string, req *models.CreateLivestockRequest) (*models.Livestock, error)
	Update(ctx context.Context, id uuid.UUID, ownerID string, req *models.UpdateLivestockRequest) (*models.Livestock, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error

	ListFeeds(ctx context.Context, id uuid.UUID, ownerID string, page, limit int) ([]models.FeedRecord, int64, error)
	AddFeed(ctx context.Context, id uuid.UUID, ownerID string, req *models.CreateFeedRecordRequest) (*models.FeedRecord, error)
	DeleteFeed(ctx context.Context, id, feedID uuid.UUID, ownerID string) error
}

type livestockService struct {
	repo   repository.LivestockRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewLivestockService(repo repository.LivestockRepository, logger *zap.Logger) LivestockService {
	return &livestockService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *livestockService) List(ctx context.Context, ownerID string) ([]models.Livestock, error) {
	herds, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list livestock", zap.String("user_id", ownerID), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return herds, nil
}

func (s *livestockService) Get(ctx context.Context, id uuid.UUID, ownerID string) (*models.Livestock, error) {
	herd, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, storeError(err, ErrLivestockNotFound)
	}
	return herd, nil
}

func (s *livestockService) Create(ctx context.Context, ownerID string, req *models.CreateLivestockRequest) (*models.Livestock, error) {
	herd := &models.Livestock{
		OwnerUserID: ownerID,
		Name:        strings.TrimSpace(req.Name),
		Species:     strings.ToLower(strings.TrimSpace(req.Species)),
		HeadCount:   req.HeadCount,
		Location:    strings.TrimSpace(req.Location),
		Notes:       req.Notes,
	}
	if err := s.repo.Create(ctx, herd); err != nil {
		s.logger.Error("Failed to create livestock", zap.String("user_id", ownerID), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return herd, nil
}

func (s *livestockService) Update(ctx context.Context, id uuid.UUID, ownerID string, req *models.UpdateLivestockRequest) (*models.Livestock, error) {
	herd, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, storeError(err, ErrLivestockNotFound)
	}

	if req.Name != nil {
		herd.Name = strings.TrimSpace(*req.Name)
	}
	if req.Species != nil {
		herd.Species = strings.ToLower(strings.TrimSpace(*req.Species))
	}
	if req.HeadCount != nil {
		herd.HeadCount = *req.HeadCount
	}
	if req.Location != nil {
		herd.Location = strings.TrimSpace(*req.Location)
	}
	if req.Notes != nil {
		herd.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, herd); err != nil {
		s.logger.Error("Failed to update livestock", zap.String("livestock_id", id.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return herd, nil
}

func (s *livestockService) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return storeError(err, ErrLivestockNotFound)
	}
	return nil
}

func (s *livestockService) ListFeeds(ctx context.Context, id uuid.UUID, ownerID string, page, limit int) ([]models.FeedRecord, int64, error) {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return nil, 0, err
	}
	page, limit = normalizePage(page, limit)
	feeds, total, err := s.repo.FindFeeds(ctx, id, page, limit)
	if err != nil {
		s.logger.Error("Failed to list feed records", zap.String("livestock_id", id.String()), zap.Error(err))
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}
	return feeds, total, nil
}

func (s *livestockService) AddFeed(ctx context.Context, id uuid.UUID, ownerID string, req *models.CreateFeedRecordRequest) (*models.FeedRecord, error) {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return nil, err
	}

	fedAt := s.now()
	if req.FedAt != nil {
		fedAt = req.FedAt.UTC()
	}
	feed := &models.FeedRecord{
		LivestockID: id,
		FeedName:    strings.TrimSpace(req.FeedName),
		Brand:       strings.TrimSpace(req.Brand),
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		FedAt:       fedAt,
		Notes:       req.Notes,
	}
	if err := s.repo.CreateFeed(ctx, feed); err != nil {
		s.logger.Error("Failed to create feed record", zap.String("livestock_id", id.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return feed, nil
}

func (s *livestockService) DeleteFeed(ctx context.Context, id, feedID uuid.UUID, ownerID string) error {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.repo.DeleteFeed(ctx, id, feedID); err != nil {
		return storeError(err, ErrFeedNotFound)
	}
	return nil
}
