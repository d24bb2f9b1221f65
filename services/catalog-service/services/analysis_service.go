package services

import (
	"context"
	"fmt"
	"time"

	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalysisService runs the ingredient evaluator and safety scorer for a
// product and persists the derived fields.
type AnalysisService interface {
	// Analyze recomputes and stores the product's safety attributes.
	Analyze(ctx context.Context, product *models.Product) (*models.AnalysisResult, error)
	// Preview scores an unsaved candidate against the current blacklist only.
	Preview(ctx context.Context, product *models.Product) *models.AnalysisResult
}

type analysisServiceImpl struct {
	products  repository.ProductRepository
	recalls   repository.RecallRepository
	reviews   repository.ReviewRepository
	blacklist BlacklistSource
	cache     ProductCache
	events    *EventPublisher
	metrics   *awspkg.MetricsClient
	cfg       SafetyConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewAnalysisService(
	products repository.ProductRepository,
	recalls repository.RecallRepository,
	reviews repository.ReviewRepository,
	blacklist BlacklistSource,
	cache ProductCache,
	events *EventPublisher,
	metrics *awspkg.MetricsClient,
	cfg SafetyConfig,
	logger *zap.Logger,
) AnalysisService {
	return &analysisServiceImpl{
		products:  products,
		recalls:   recalls,
		reviews:   reviews,
		blacklist: blacklist,
		cache:     cache,
		events:    events,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type analysisInputs struct {
	recalls   []models.ProductRecall
	reviews   []models.ProductReview
	blacklist []models.BlacklistEntry
	partial   bool
}

// loadInputs fetches recalls, reviews and the blacklist concurrently. A failed
// source is logged and left empty.
func (s *analysisServiceImpl) loadInputs(ctx context.Context, product *models.Product) *analysisInputs {
	out := &analysisInputs{}
	var g errgroup.Group
	var recallErr, reviewErr, blacklistErr error

	g.Go(func() error {
		out.recalls, recallErr = s.recalls.FindByProduct(ctx, product.ID, true)
		return nil
	})
	g.Go(func() error {
		out.reviews, reviewErr = s.reviews.ListForProduct(ctx, product.ID)
		return nil
	})
	g.Go(func() error {
		out.blacklist, blacklistErr = s.blacklist.Active(ctx)
		return nil
	})
	_ = g.Wait()

	sources := []struct {
		name string
		err  error
	}{{"recalls", recallErr}, {"reviews", reviewErr}, {"blacklist", blacklistErr}}
	for _, src := range sources {
		if src.err == nil {
			continue
		}
		out.partial = true
		s.logger.Warn("Analysis source unavailable",
			zap.String("product_id", product.ID.String()),
			zap.String("source", src.name),
			zap.Error(src.err))
	}
	return out
}

func (s *analysisServiceImpl) Analyze(ctx context.Context, product *models.Product) (*models.AnalysisResult, error) {
	in := s.loadInputs(ctx, product)

	previousScore := product.CosmicScore
	previousClarity := product.CosmicClarity
	result := s.evaluate(product, in)

	product.CosmicScore = result.CosmicScore
	product.CosmicClarity = result.CosmicClarity
	product.ClarityOverridden = false
	product.TransparencyLevel = result.TransparencyLevel
	product.IsBlacklisted = result.IsBlacklisted
	product.SuspiciousIngredients = result.SuspiciousIngredients
	if in.partial {
		// leave the product stale so the next scan retries with full inputs
		product.LastAnalyzedAt = nil
	} else {
		analyzedAt := result.AnalyzedAt
		product.LastAnalyzedAt = &analyzedAt
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}
	s.cache.SetAsync(product)

	s.logger.Info("Product analyzed",
		zap.String("product_id", product.ID.String()),
		zap.Int("cosmic_score", result.CosmicScore),
		zap.String("cosmic_clarity", string(result.CosmicClarity)),
		zap.Bool("partial", result.Partial),
	)

	if previousScore != result.CosmicScore || previousClarity != result.CosmicClarity {
		s.events.Publish(ctx, models.EventProductAnalyzed, models.ProductAnalyzedEvent{
			EventType:     models.EventProductAnalyzed,
			ProductID:     product.ID.String(),
			CosmicScore:   result.CosmicScore,
			CosmicClarity: result.CosmicClarity,
			PreviousScore: previousScore,
			Timestamp:     result.AnalyzedAt,
		})
	}
	s.recordMetric(result.CosmicClarity)

	return result, nil
}

func (s *analysisServiceImpl) Preview(ctx context.Context, product *models.Product) *models.AnalysisResult {
	in := &analysisInputs{}
	blacklist, err := s.blacklist.Active(ctx)
	if err != nil {
		s.logger.Warn("Blacklist unavailable for preview", zap.Error(err))
		in.partial = true
	}
	in.blacklist = blacklist
	return s.evaluate(product, in)
}

func (s *analysisServiceImpl) evaluate(product *models.Product, in *analysisInputs) *models.AnalysisResult {
	ingredients := EvaluateIngredients(product.Ingredients, in.blacklist, s.cfg)
	score := ScoreProduct(ScoreInput{
		Product:          product,
		Recalls:          in.recalls,
		Reviews:          in.reviews,
		BlacklistMatches: ingredients.Suspicious,
	}, s.cfg)

	return &models.AnalysisResult{
		CosmicScore:           score.CosmicScore,
		CosmicClarity:         score.CosmicClarity,
		SuspiciousIngredients: ingredients.Suspicious,
		TransparencyLevel:     ingredients.Transparency,
		IsBlacklisted:         len(ingredients.Suspicious) > 0,
		ActiveRecalls:         score.ActiveRecalls,
		SafetyConcernReviews:  score.ConcernReviews,
		TotalReviews:          score.TotalReviews,
		Partial:               in.partial,
		AnalyzedAt:            s.now(),
	}
}

func (s *analysisServiceImpl) recordMetric(clarity models.CosmicClarity) {
	if !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metrics.RecordCount(ctx, awspkg.MetricProductsAnalyzed, map[string]string{"Clarity": string(clarity)}); err != nil {
			s.logger.Warn("Failed to record metric", zap.Error(err))
		}
	}()
}

// StoredAnalysis reports a product's persisted safety attributes without
// recomputing them.
func StoredAnalysis(product *models.Product) *models.AnalysisResult {
	result := &models.AnalysisResult{
		CosmicScore:           product.CosmicScore,
		CosmicClarity:         product.CosmicClarity,
		SuspiciousIngredients: product.SuspiciousIngredients,
		TransparencyLevel:     product.TransparencyLevel,
		IsBlacklisted:         product.IsBlacklisted,
	}
	if result.SuspiciousIngredients == nil {
		result.SuspiciousIngredients = []string{}
	}
	if product.LastAnalyzedAt != nil {
		result.AnalyzedAt = *product.LastAnalyzedAt
	}
	return result
}
