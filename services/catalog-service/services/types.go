package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ServiceError is a typed error with an HTTP status code. Err, when set,
// carries the classified cause for errors.Is checks.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Err }

// Scan intake failure classes.
var (
	ErrInvalidPayload       = errors.New("invalid scan payload")
	ErrLookupFailed         = errors.New("product lookup failed")
	ErrExternalSearchFailed = errors.New("external product search failed")
)

// User-facing messages. Raw errors are logged, never returned.
const (
	MsgProductNotFound = "product not found"
	MsgScanFailed      = "scan failed, try again"
	MsgInvalidPayload  = "invalid scan payload"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductCache is the barcode cache used for scan lookups.
type ProductCache interface {
	GetByBarcode(ctx context.Context, barcode string) (*models.Product, bool)
	SetAsync(product *models.Product)
	InvalidateBarcode(ctx context.Context, barcode string)
	InvalidateAll(ctx context.Context) error
}

// BlacklistSource serves the active blacklist, typically from a cache.
type BlacklistSource interface {
	Active(ctx context.Context) ([]models.BlacklistEntry, error)
	Invalidate()
}

// EventPublisher publishes domain events to an SNS topic.
type EventPublisher struct {
	client   awspkg.SNSPublisher
	topicArn string
	logger   *zap.Logger
}

func NewEventPublisher(client awspkg.SNSPublisher, topicArn string, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{client: client, topicArn: topicArn, logger: logger}
}

// Publish is best effort; failures are logged.
func (p *EventPublisher) Publish(ctx context.Context, eventType string, event interface{}) {
	if p == nil || p.client == nil || p.topicArn == "" {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := p.client.Publish(ctx, p.topicArn, data); err != nil {
		p.logger.Error("Failed to publish event", zap.String("event_type", eventType), zap.Error(err))
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func notFound(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: message}
}

func internalError(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: message}
}
