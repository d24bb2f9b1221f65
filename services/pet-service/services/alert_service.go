package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/google/uuid"
	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	apperrors "github.com/pawsitivecheck/backend/services/common/errors"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/pawsitivecheck/backend/services/pet-service/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrMalformedEvent marks events that can never be processed. Consumers
// should drop them instead of retrying.
var ErrMalformedEvent = errors.New("malformed recall event")

// AlertService turns catalog recall events into per-animal alerts.
type AlertService interface {
	HandleRecallEvent(ctx context.Context, event *models.RecallEvent) (int, error)
	List(ctx context.Context, filter models.AlertFilter) ([]models.RecallAlert, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, ownerID string) error
}

type alertService struct {
	alerts    repository.AlertRepository
	pets      repository.PetRepository
	livestock repository.LivestockRepository
	metrics   *awspkg.MetricsClient
	logger    *zap.Logger
}

func NewAlertService(
	alerts repository.AlertRepository,
	pets repository.PetRepository,
	livestock repository.LivestockRepository,
	metrics *awspkg.MetricsClient,
	logger *zap.Logger,
) AlertService {
	return &alertService{
		alerts:    alerts,
		pets:      pets,
		livestock: livestock,
		metrics:   metrics,
		logger:    logger,
	}
}

// HandleRecallEvent creates one alert per pet or herd linked to the recalled
// product and returns how many were new. Redelivered events create nothing.
func (s *alertService) HandleRecallEvent(ctx context.Context, event *models.RecallEvent) (int, error) {
	if event.EventType != models.EventRecallIssued {
		s.logger.Debug("Ignoring recall event", zap.String("event_type", event.EventType))
		return 0, nil
	}
	productID, err := uuid.Parse(event.ProductID)
	if err != nil || strings.TrimSpace(event.RecallNumber) == "" {
		return 0, fmt.Errorf("%w: product_id=%q recall_number=%q", ErrMalformedEvent, event.ProductID, event.RecallNumber)
	}

	var (
		pets  []models.Pet
		herds []models.Livestock
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pets, err = s.pets.FindPetsByProduct(gctx, productID)
		return err
	})
	g.Go(func() error {
		var err error
		herds, err = s.livestock.FindLivestockByProduct(gctx, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("find subjects for product %s: %w", productID, err)
	}

	candidates := make([]models.RecallAlert, 0, len(pets)+len(herds))
	for _, p := range pets {
		candidates = append(candidates, s.newAlert(event, productID, p.OwnerUserID, models.SubjectPet, p.ID, p.Name))
	}
	for _, h := range herds {
		candidates = append(candidates, s.newAlert(event, productID, h.OwnerUserID, models.SubjectLivestock, h.ID, h.Name))
	}

	created := 0
	for i := range candidates {
		ok, err := s.alerts.CreateIfAbsent(ctx, &candidates[i])
		if err != nil {
			return created, fmt.Errorf("create alert for %s %s: %w", candidates[i].SubjectType, candidates[i].SubjectID, err)
		}
		if ok {
			created++
		}
	}

	s.logger.Info("Processed recall event",
		zap.String("recall_number", event.RecallNumber),
		zap.String("product_id", productID.String()),
		zap.Int("subjects", len(candidates)),
		zap.Int("created", created),
	)
	s.recordMetric(created, event.Severity)
	return created, nil
}

func (s *alertService) newAlert(event *models.RecallEvent, productID uuid.UUID, owner string, subject models.SubjectType, subjectID uuid.UUID, subjectName string) models.RecallAlert {
	product := event.ProductName
	if product == "" {
		product = "A product"
	}
	msg := fmt.Sprintf("%s linked to %s was recalled (%s): %s", product, subjectName, event.Severity, event.Title)
	return models.RecallAlert{
		OwnerUserID:  owner,
		SubjectType:  subject,
		SubjectID:    subjectID,
		SubjectName:  subjectName,
		ProductID:    productID,
		ProductName:  event.ProductName,
		RecallNumber: event.RecallNumber,
		Severity:     event.Severity,
		Message:      msg,
	}
}

func (s *alertService) List(ctx context.Context, filter models.AlertFilter) ([]models.RecallAlert, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	alerts, total, err := s.alerts.FindByOwner(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list alerts", zap.String("user_id", filter.OwnerUserID), zap.Error(err))
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}
	return alerts, total, nil
}

func (s *alertService) MarkRead(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := s.alerts.MarkRead(ctx, id, ownerID); err != nil {
		return storeError(err, ErrAlertNotFound)
	}
	return nil
}

func (s *alertService) recordMetric(created int, severity string) {
	if created == 0 || !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metrics.PutMetric(ctx, awspkg.MetricRecallAlerts, float64(created), types.StandardUnitCount, map[string]string{"Severity": severity}); err != nil {
			s.logger.Warn("Failed to record alert metric", zap.Error(err))
		}
	}()
}
