package services

import (
	"context"
	"encoding/json"

	aws_pkg "pos-service/pkg/aws"

	"go.uber.org/zap"
)

// Metrics records business counters. *aws_pkg.MetricsClient satisfies it.
type Metrics interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
}

// eventPublisher sends domain events to SNS after the owning transaction
// has committed. Publishing is best effort: failures are logged and never
// reach the caller.
type eventPublisher struct {
	snsClient   aws_pkg.SNSPublisher
	snsTopicArn string
	logger      *zap.Logger
}

func newEventPublisher(snsClient aws_pkg.SNSPublisher, topicArn string, logger *zap.Logger) *eventPublisher {
	return &eventPublisher{snsClient: snsClient, snsTopicArn: topicArn, logger: logger}
}

func (p *eventPublisher) publish(ctx context.Context, eventType string, payload interface{}) {
	if p == nil || p.snsClient == nil || p.snsTopicArn == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := p.snsClient.Publish(ctx, p.snsTopicArn, body); err != nil {
		p.logger.Warn("SNS publish failed", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	p.logger.Debug("Event published", zap.String("event_type", eventType))
}

func recordCount(ctx context.Context, m Metrics, logger *zap.Logger, name string, dims map[string]string) {
	if m == nil {
		return
	}
	if err := m.RecordCount(ctx, name, dims); err != nil {
		logger.Debug("Failed to record metric", zap.String("metric", name), zap.Error(err))
	}
}
