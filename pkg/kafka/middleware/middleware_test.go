package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"aeroclub/pkg/kafka"
	"aeroclub/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestMetricsConsumerMiddleware(t *testing.T) {
	m := NewMetrics()
	mw := m.MetricsConsumerMiddleware()

	ok := func(ctx context.Context, msg kafka.Message) error { return nil }
	fail := func(ctx context.Context, msg kafka.Message) error { return errors.New("boom") }

	assert.NoError(t, mw(context.Background(), kafka.Message{}, ok))
	assert.NoError(t, mw(context.Background(), kafka.Message{}, ok))
	assert.Error(t, mw(context.Background(), kafka.Message{}, fail))

	assert.Equal(t, int64(2), m.MessagesConsumed.Load())
	assert.Equal(t, int64(1), m.MessagesConsumedFailed.Load())

	m.Reset()
	assert.Equal(t, int64(0), m.MessagesConsumed.Load())
	assert.Equal(t, int64(0), m.AvgConsumeDuration().Nanoseconds())
}

func TestMetricsProducerMiddleware(t *testing.T) {
	m := NewMetrics()
	mw := m.MetricsProducerMiddleware()

	err := mw(context.Background(), kafka.Message{}, func(ctx context.Context, msg kafka.Message) error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, int64(1), m.MessagesPublished.Load())
	m.LogSnapshot(logger.Discard())
}

func TestLoggingMiddlewarePassesErrorThrough(t *testing.T) {
	want := errors.New("boom")
	mw := LoggingConsumerMiddleware(logger.Discard())

	got := mw(context.Background(), kafka.Message{Headers: map[string]string{}}, func(ctx context.Context, msg kafka.Message) error {
		return want
	})
	assert.Equal(t, want, got)
}
