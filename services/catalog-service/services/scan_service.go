package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"github.com/pawsitivecheck/backend/services/catalog-service/providers"
	"github.com/pawsitivecheck/backend/services/catalog-service/repository"
	"go.uber.org/zap"
)

const historyWriteTimeout = 5 * time.Second

// ScanService implements scan intake and scan history.
type ScanService interface {
	Intake(ctx context.Context, userID string, payload models.ScanPayload) (*models.ScanResult, *ServiceError)
	Record(ctx context.Context, userID string, req *models.RecordScanRequest) (*models.ScanHistory, *ServiceError)
	History(ctx context.Context, userID string, page, limit int) ([]models.ScanHistory, int64, *ServiceError)
}

type scanServiceImpl struct {
	products   repository.ProductRepository
	scans      repository.ScanRepository
	cache      ProductCache
	analysis   AnalysisService
	search     providers.ProductSearchProvider
	recognizer providers.ImageRecognizer
	metrics    *awspkg.MetricsClient
	staleAfter time.Duration
	retryDelay time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewScanService(
	products repository.ProductRepository,
	scans repository.ScanRepository,
	cache ProductCache,
	analysis AnalysisService,
	search providers.ProductSearchProvider,
	recognizer providers.ImageRecognizer,
	metrics *awspkg.MetricsClient,
	cfg SafetyConfig,
	logger *zap.Logger,
) ScanService {
	if recognizer == nil {
		recognizer = providers.NoopImageRecognizer{}
	}
	return &scanServiceImpl{
		products:   products,
		scans:      scans,
		cache:      cache,
		analysis:   analysis,
		search:     search,
		recognizer: recognizer,
		metrics:    metrics,
		staleAfter: cfg.StaleAfter,
		retryDelay: 100 * time.Millisecond,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Intake runs one scan: validate, look up locally, fall back to the external
// search, record history and return a unified result.
func (s *scanServiceImpl) Intake(ctx context.Context, userID string, payload models.ScanPayload) (*models.ScanResult, *ServiceError) {
	payload, err := NormalizeScanPayload(payload)
	if err != nil {
		s.logger.Info("Rejected scan payload", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: MsgInvalidPayload, Err: err}
	}

	result, err := s.resolve(ctx, payload)
	if err != nil {
		s.logger.Error("Scan lookup failed",
			zap.String("user_id", userID),
			zap.String("kind", string(payload.Kind)),
			zap.Error(err))
		s.recordHistory(ctx, userID, payload, &models.ScanResult{Status: models.ScanStatusFailed, Source: models.SourceNone})
		s.recordOutcome(payload.Kind, models.ScanStatusFailed)
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: MsgScanFailed, Err: err}
	}

	result.ScanID = s.recordHistory(ctx, userID, payload, result)
	s.recordOutcome(payload.Kind, result.Status)
	return result, nil
}

// resolve returns an error only for LookupFailed; everything else resolves
// to a result.
func (s *scanServiceImpl) resolve(ctx context.Context, payload models.ScanPayload) (*models.ScanResult, error) {
	barcode, searchText := "", ""

	switch payload.Kind {
	case models.ScanKindBarcode:
		barcode = payload.Value
	case models.ScanKindImage:
		rec, err := s.recognizer.Recognize(ctx, payload.Value)
		if err != nil {
			s.logger.Warn("Image recognition failed", zap.Error(fmt.Errorf("%w: %v", ErrExternalSearchFailed, err)))
			return notFoundResult(), nil
		}
		if rec == nil {
			return notFoundResult(), nil
		}
		if code, err := NormalizeBarcode(rec.Barcode); err == nil {
			barcode = code
		}
		searchText = strings.TrimSpace(strings.Join([]string{rec.Brand, rec.ProductName}, " "))
	}

	if barcode != "" {
		product, err := s.lookupWithRetry(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if product != nil {
			return s.foundResult(ctx, product), nil
		}
	}

	return s.externalSearch(ctx, barcode, searchText), nil
}

// lookupWithRetry queries the store by barcode, retrying once on errors other
// than not-found.
func (s *scanServiceImpl) lookupWithRetry(ctx context.Context, barcode string) (*models.Product, error) {
	if product, ok := s.cache.GetByBarcode(ctx, barcode); ok {
		return product, nil
	}

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		product, err := s.products.FindByBarcode(ctx, barcode)
		if err == nil {
			s.cache.SetAsync(product)
			return product, nil
		}
		if isNotFound(err) {
			return nil, nil
		}
		lastErr = err
		s.logger.Warn("Local product lookup failed",
			zap.String("barcode", barcode),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == 1 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrLookupFailed, ctx.Err())
			case <-time.After(s.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrLookupFailed, lastErr)
}

func (s *scanServiceImpl) foundResult(ctx context.Context, product *models.Product) *models.ScanResult {
	result := &models.ScanResult{
		Status:  models.ScanStatusFound,
		Source:  models.SourceLocal,
		Product: product,
	}

	if !product.IsStale(s.now(), s.staleAfter) {
		result.Analysis = StoredAnalysis(product)
		return result
	}

	analysis, err := s.analysis.Analyze(ctx, product)
	if err != nil {
		s.logger.Warn("Re-analysis failed, returning stored values",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		result.Analysis = StoredAnalysis(product)
		result.Analysis.Partial = true
		return result
	}
	result.Analysis = analysis
	return result
}

func (s *scanServiceImpl) externalSearch(ctx context.Context, barcode, searchText string) *models.ScanResult {
	var (
		candidate *models.Product
		err       error
	)
	switch {
	case barcode != "":
		candidate, err = s.search.SearchByBarcode(ctx, barcode)
	case searchText != "":
		candidate, err = s.search.SearchByName(ctx, searchText)
	default:
		return notFoundResult()
	}

	if err != nil {
		s.logger.Warn("External product search failed",
			zap.String("barcode", barcode),
			zap.Error(fmt.Errorf("%w: %v", ErrExternalSearchFailed, err)))
		return notFoundResult()
	}
	if candidate == nil {
		return notFoundResult()
	}

	return &models.ScanResult{
		Status:   models.ScanStatusInternet,
		Source:   models.SourceInternet,
		Product:  candidate,
		Analysis: s.analysis.Preview(ctx, candidate),
	}
}

// recordHistory appends one history row. The write is detached from the
// request's cancellation and bounded by its own timeout.
func (s *scanServiceImpl) recordHistory(ctx context.Context, userID string, payload models.ScanPayload, result *models.ScanResult) *uuid.UUID {
	entry := &models.ScanHistory{
		UserID:      userID,
		ScanType:    payload.Kind,
		ScannedData: describeScannedData(payload),
		Status:      result.Status,
	}
	if result.Product != nil && result.Source == models.SourceLocal {
		id := result.Product.ID
		entry.ProductID = &id
	}
	if result.Analysis != nil {
		snapshot, err := json.Marshal(result.Analysis)
		if err == nil {
			entry.AnalysisResult = snapshot
		}
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	if err := s.scans.Create(writeCtx, entry); err != nil {
		s.logger.Error("Failed to record scan history",
			zap.String("user_id", userID),
			zap.String("status", string(result.Status)),
			zap.Error(err))
		return nil
	}
	id := entry.ID
	return &id
}

func (s *scanServiceImpl) recordOutcome(kind models.ScanKind, status models.ScanStatus) {
	if !s.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dims := map[string]string{"Kind": string(kind), "Status": string(status)}
		if err := s.metrics.RecordCount(ctx, awspkg.MetricScanOutcome, dims); err != nil {
			s.logger.Warn("Failed to record scan metric", zap.Error(err))
		}
	}()
}

// Record stores a scan the client resolved on its own.
func (s *scanServiceImpl) Record(ctx context.Context, userID string, req *models.RecordScanRequest) (*models.ScanHistory, *ServiceError) {
	kind := req.ScanType
	if kind == "" {
		kind = models.ScanKindBarcode
	}
	data := strings.TrimSpace(req.ScannedData)
	if data == "" {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: MsgInvalidPayload, Err: ErrInvalidPayload}
	}

	status := models.ScanStatusRecorded
	if req.ProductID != nil {
		status = models.ScanStatusFound
	}
	entry := &models.ScanHistory{
		UserID:      userID,
		ProductID:   req.ProductID,
		ScanType:    kind,
		ScannedData: describeScannedData(models.ScanPayload{Kind: kind, Value: data}),
		Status:      status,
	}
	if len(req.AnalysisResult) > 0 && string(req.AnalysisResult) != "null" {
		if !json.Valid(req.AnalysisResult) {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "analysisResult must be valid JSON"}
		}
		entry.AnalysisResult = req.AnalysisResult
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()
	if err := s.scans.Create(writeCtx, entry); err != nil {
		s.logger.Error("Failed to record client scan", zap.String("user_id", userID), zap.Error(err))
		return nil, internalError("Failed to record scan")
	}
	return entry, nil
}

func (s *scanServiceImpl) History(ctx context.Context, userID string, page, limit int) ([]models.ScanHistory, int64, *ServiceError) {
	page, limit = normalizePage(page, limit)
	scans, total, err := s.scans.FindByUser(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("Failed to load scan history", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, internalError("Failed to load scan history")
	}
	return scans, total, nil
}

func notFoundResult() *models.ScanResult {
	return &models.ScanResult{
		Status:  models.ScanStatusNotFound,
		Source:  models.SourceNone,
		Message: MsgProductNotFound,
	}
}
