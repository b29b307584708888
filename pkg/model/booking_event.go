package model

import "time"

const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
	BookingDeleted = "booking.deleted"
)

// BookingEvent is published after every successful booking mutation.
type BookingEvent struct {
	Type       string    `json:"type" bson:"type"`
	Booking    Booking   `json:"booking" bson:"booking"`
	MemberID   string    `json:"member_id,omitempty" bson:"member_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}

// StoredBookingEvent is the audit record of a consumed BookingEvent. ID is the
// event id from the message headers.
type StoredBookingEvent struct {
	ID            string       `bson:"_id" json:"id"`
	Event         BookingEvent `bson:"event" json:"event"`
	CorrelationID string       `bson:"correlation_id,omitempty" json:"correlation_id,omitempty"`
	Partition     int          `bson:"partition" json:"partition"`
	Offset        int64        `bson:"offset" json:"offset"`
	ReceivedAt    time.Time    `bson:"received_at" json:"received_at"`
}
