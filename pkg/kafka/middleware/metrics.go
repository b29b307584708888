package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"aeroclub/pkg/kafka"
	"aeroclub/pkg/logger"
)

type Metrics struct {
	MessagesPublished       atomic.Int64
	MessagesPublishedFailed atomic.Int64
	PublishDurationTotal    atomic.Int64 // nanoseconds

	MessagesConsumed       atomic.Int64
	MessagesConsumedFailed atomic.Int64
	ConsumeDurationTotal   atomic.Int64 // nanoseconds
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Reset() {
	m.MessagesPublished.Store(0)
	m.MessagesPublishedFailed.Store(0)
	m.PublishDurationTotal.Store(0)
	m.MessagesConsumed.Store(0)
	m.MessagesConsumedFailed.Store(0)
	m.ConsumeDurationTotal.Store(0)
}

func (m *Metrics) AvgPublishDuration() time.Duration {
	n := m.MessagesPublished.Load() + m.MessagesPublishedFailed.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.PublishDurationTotal.Load() / n)
}

func (m *Metrics) AvgConsumeDuration() time.Duration {
	n := m.MessagesConsumed.Load() + m.MessagesConsumedFailed.Load()
	if n == 0 {
		return 0
	}
	return time.Duration(m.ConsumeDurationTotal.Load() / n)
}

func (m *Metrics) MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.PublishDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.MessagesPublishedFailed.Add(1)
		} else {
			m.MessagesPublished.Add(1)
		}
		return err
	}
}

func (m *Metrics) MetricsConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)
		m.ConsumeDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.MessagesConsumedFailed.Add(1)
		} else {
			m.MessagesConsumed.Add(1)
		}
		return err
	}
}

// LogSnapshot writes the current counters as one structured log line.
func (m *Metrics) LogSnapshot(log *logger.Logger) {
	log.Info("kafka metrics",
		"published", m.MessagesPublished.Load(),
		"published_failed", m.MessagesPublishedFailed.Load(),
		"avg_publish_duration", m.AvgPublishDuration(),
		"consumed", m.MessagesConsumed.Load(),
		"consumed_failed", m.MessagesConsumedFailed.Load(),
		"avg_consume_duration", m.AvgConsumeDuration(),
	)
}
