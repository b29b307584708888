package handler

import (
	"context"
	"fmt"
	"time"

	"aeroclub/internal/audit/repository"
	"aeroclub/pkg/kafka"
	"aeroclub/pkg/logger"
	"aeroclub/pkg/model"
)

// EventConsumer turns booking events read from Kafka into audit records.
type EventConsumer struct {
	repo repository.EventRepository
	log  *logger.Logger
	now  func() time.Time
}

func NewEventConsumer(repo repository.EventRepository, log *logger.Logger) *EventConsumer {
	return &EventConsumer{repo: repo, log: log, now: time.Now}
}

// Handle is a kafka.MessageHandler. Malformed messages fail permanently and
// go to the DLQ; store failures are retried.
func (c *EventConsumer) Handle(ctx context.Context, msg kafka.Message) error {
	eventID := msg.GetEventID()
	if eventID == "" {
		return kafka.NewPermanentError("booking event has no event id", nil)
	}

	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("invalid booking event payload", err)
	}

	switch event.Type {
	case model.BookingCreated, model.BookingUpdated, model.BookingDeleted:
	default:
		return kafka.NewPermanentError(fmt.Sprintf("unknown booking event type %q", event.Type), nil)
	}

	stored, err := c.repo.Store(ctx, &model.StoredBookingEvent{
		ID:            eventID,
		Event:         event,
		CorrelationID: msg.GetCorrelationID(),
		Partition:     msg.Partition,
		Offset:        msg.Offset,
		ReceivedAt:    c.now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		return kafka.NewTransientError("failed to store booking event", err)
	}

	if !stored {
		c.log.Debug("Booking event already stored", "event_id", eventID)
		return nil
	}

	c.log.Info("Booking event stored",
		"event_id", eventID,
		"event_type", event.Type,
		"booking_id", event.Booking.ID,
		"resource_id", event.Booking.ResourceID,
	)
	return nil
}
