package consumer

import (
	"context"
	"encoding/json"
	"errors"

	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	"github.com/pawsitivecheck/backend/services/pet-service/models"
	"github.com/pawsitivecheck/backend/services/pet-service/services"
	"go.uber.org/zap"
)

// Poller is the queue side of the consumer; *awspkg.SQSConsumer satisfies it.
type Poller interface {
	StartPolling(ctx context.Context, handler awspkg.MessageHandler) error
}

// RecallConsumer feeds catalog recall events from SQS into the alert service.
type RecallConsumer struct {
	poller  Poller
	alerts  services.AlertService
	metrics *awspkg.MetricsClient
	logger  *zap.Logger
}

func NewRecallConsumer(poller Poller, alerts services.AlertService, metrics *awspkg.MetricsClient, logger *zap.Logger) *RecallConsumer {
	return &RecallConsumer{poller: poller, alerts: alerts, metrics: metrics, logger: logger}
}

// Start blocks until ctx is cancelled.
func (c *RecallConsumer) Start(ctx context.Context) {
	if err := c.poller.StartPolling(ctx, c.Handle); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error("Recall consumer stopped", zap.Error(err))
	}
}

// Handle processes one message body. Unparseable messages are acknowledged
// so they do not loop; processing failures are returned so SQS redelivers.
func (c *RecallConsumer) Handle(ctx context.Context, body string) error {
	var event models.RecallEvent
	if err := json.Unmarshal([]byte(awspkg.UnwrapSNS(body)), &event); err != nil {
		c.logger.Error("Failed to unmarshal recall event", zap.Error(err))
		c.record(ctx, "malformed")
		return nil
	}

	created, err := c.alerts.HandleRecallEvent(ctx, &event)
	if err != nil {
		if errors.Is(err, services.ErrMalformedEvent) {
			c.logger.Error("Dropping malformed recall event", zap.Error(err))
			c.record(ctx, "malformed")
			return nil
		}
		c.logger.Error("Failed to process recall event",
			zap.String("event_type", event.EventType),
			zap.String("recall_number", event.RecallNumber),
			zap.Error(err),
		)
		c.record(ctx, "failed")
		return err
	}

	c.logger.Debug("Recall event handled", zap.String("recall_number", event.RecallNumber), zap.Int("alerts", created))
	c.record(ctx, "processed")
	return nil
}

func (c *RecallConsumer) record(ctx context.Context, outcome string) {
	if !c.metrics.IsEnabled() {
		return
	}
	if err := c.metrics.RecordCount(ctx, awspkg.MetricSQSMessages, map[string]string{"Outcome": outcome}); err != nil {
		c.logger.Warn("Failed to record SQS metric", zap.Error(err))
	}
}
