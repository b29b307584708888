// Package events publishes booking mutations to Kafka.
package events

import (
	"context"
	"fmt"
	"time"

	"aeroclub/pkg/identity"
	"aeroclub/pkg/kafka"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/middleware"
	"aeroclub/pkg/model"
)

const (
	SchemaVersion = "1"
	Source        = "bookings"
)

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessagePublisher
	log      *logger.Logger
	now      func() time.Time
}

func NewKafkaPublisher(producer MessagePublisher, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, log: log, now: time.Now}
}

// Publish sends one event keyed by the resource id, so events for the same
// aircraft stay ordered within a partition.
func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	event := model.BookingEvent{
		Type:       eventType,
		Booking:    *booking,
		MemberID:   identity.MemberID(ctx),
		OccurredAt: p.now().UTC(),
	}

	msg, err := kafka.NewMessage().
		WithKey(booking.ResourceID).
		WithValue(event).
		WithEventID("").
		WithEventType(eventType).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.log.Debug("Booking event published",
		"event_type", eventType,
		"event_id", msg.GetEventID(),
		"booking_id", booking.ID,
	)
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher returns a Publisher that drops every event.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Booking) error {
	return nil
}
