package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecallService manages product recalls. Recalls are deactivated, never deleted.
type RecallService interface {
	ListActive(ctx context.Context, page, limit int) ([]models.ProductRecall, int64, *ServiceError)
	ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductRecall, *ServiceError)
	Create(ctx context.Context, req *models.CreateRecallRequest) (*models.ProductRecall, *ServiceError)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.ProductRecall, *ServiceError)
}

type recallServiceImpl struct {
	recalls  repository.RecallRepository
	products repository.ProductRepository
	cache    ProductCache
	events   *EventPublisher
	metrics  *awspkg.MetricsClient
	logger   *zap.Logger
}

func NewRecallService(
	recalls repository.RecallRepository,
	products repository.ProductRepository,
	cache ProductCache,
	events *EventPublisher,
	metrics *awspkg.MetricsClient,
	logger *zap.Logger,
) RecallService {
	return &recallServiceImpl{
		recalls:  recalls,
		products: products,
		cache:    cache,
		events:   events,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *recallServiceImpl) ListActive(ctx context.Context, page, limit int) ([]models.ProductRecall, int64, *ServiceError) {
	page, limit = normalizePage(page, limit)
	recalls, total, err := s.recalls.FindActive(ctx, page, limit)
	if err != nil {
		s.logger.Error("Failed to list recalls", zap.Error(err))
		return nil, 0, internalError("Failed to fetch recalls")
	}
	return recalls, total, nil
}

func (s *recallServiceImpl) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductRecall, *ServiceError) {
	recalls, err := s.recalls.FindByProduct(ctx, productID, false)
	if err != nil {
		s.logger.Error("Failed to list product recalls", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, internalError("Failed to fetch recalls")
	}
	return recalls, nil
}

func (s *recallServiceImpl) Create(ctx context.Context, req *models.CreateRecallRequest) (*models.ProductRecall, *ServiceError) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound(MsgProductNotFound)
		}
		s.logger.Error("Failed to fetch product for recall", zap.Error(err))
		return nil, internalError("Failed to create recall")
	}

	recall := &models.ProductRecall{
		ProductID:       req.ProductID,
		RecallNumber:    strings.TrimSpace(req.RecallNumber),
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Severity:        req.Severity,
		RecallDate:      req.RecallDate.UTC(),
		AffectedBatches: req.AffectedBatches,
		IsActive:        true,
	}
	if err := s.recalls.Create(ctx, recall); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "a recall with this number already exists"}
		}
		s.logger.Error("Failed to create recall", zap.Error(err))
		return nil, internalError("Failed to create recall")
	}

	s.invalidateProduct(ctx, product)
	s.publish(ctx, models.EventRecallIssued, recall, product)
	s.recordMetric(recall.Severity)

	s.logger.Info("Recall issued",
		zap.String("recall_number", recall.RecallNumber),
		zap.String("product_id", product.ID.String()),
		zap.String("severity", string(recall.Severity)))
	return recall, nil
}

func (s *recallServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) (*models.ProductRecall, *ServiceError) {
	recall, err := s.recalls.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("recall not found")
		}
		s.logger.Error("Failed to fetch recall", zap.String("recall_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to deactivate recall")
	}
	if !recall.IsActive {
		return recall, nil
	}

	if err := s.recalls.Deactivate(ctx, id); err != nil {
		s.logger.Error("Failed to deactivate recall", zap.String("recall_id", id.String()), zap.Error(err))
		return nil, internalError("Failed to deactivate recall")
	}
	recall.IsActive = false

	product, err := s.products.FindByID(ctx, recall.ProductID)
	if err != nil {
		s.logger.Warn("Recalled product unavailable", zap.String("product_id", recall.ProductID.String()), zap.Error(err))
		product = &models.Product{ID: recall.ProductID}
	}
	s.invalidateProduct(ctx, product)
	s.publish(ctx, models.EventRecallDeactivated, recall, product)
	return recall, nil
}

// invalidateProduct marks the product for re-analysis and drops its cache entry.
func (s *recallServiceImpl) invalidateProduct(ctx context.Context, product *models.Product) {
	if err := s.products.MarkStale(ctx, product.ID); err != nil {
		s.logger.Warn("Failed to mark product stale", zap.String("product_id", product.ID.String()), zap.Error(err))
	}
	if product.Barcode != nil {
		s.cache.InvalidateBarcode(ctx, *product.Barcode)
	}
}

func (s *recallServiceImpl) publish(ctx context.Context, eventType string, recall *models.ProductRecall, product *models.Product) {
	s.events.Publish(ctx, eventType, models.RecallEvent{
		EventType:    eventType,
		RecallID:     recall.ID.String(),
		RecallNumber: recall.RecallNumber,
		ProductID:    recall.ProductID.String(),
		ProductName:  product.Name,
		Severity:     recall.Severity,
		Title:        recall.Title,
		Timestamp:    time.Now().UTC(),
	})
}

func (s *recallServiceImpl) recordMetric(severity models.RecallSeverity) {
	if !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metrics.RecordCount(ctx, awspkg.MetricRecallsIssued, map[string]string{"Severity": string(severity)}); err != nil {
			s.logger.Warn("Failed to record recall metric", zap.Error(err))
		}
	}()
}
