package model

import (
	"time"
)

// Booking is a reservation of one resource (an aircraft) for a closed time
// interval. ResourceID is the key bookings must not overlap on; MemberID only
// records who made the reservation.
type Booking struct {
	ID         string    `json:"id,omitempty" bson:"_id,omitempty" gorm:"primaryKey;type:varchar(36)" validate:"omitempty"`
	Title      string    `json:"title" bson:"title" gorm:"size:120" validate:"max=120"`
	Details    string    `json:"details,omitempty" bson:"details" gorm:"size:2000" validate:"omitempty,max=2000"`
	StartTime  time.Time `json:"start_time" bson:"start_time" gorm:"not null;index:idx_bookings_resource_interval,priority:2" validate:"required"`
	EndTime    time.Time `json:"end_time" bson:"end_time" gorm:"not null;index:idx_bookings_resource_interval,priority:3" validate:"required,gtfield=StartTime"`
	ResourceID string    `json:"resource_id" bson:"resource_id" gorm:"size:64;not null;index:idx_bookings_resource_interval,priority:1" validate:"required,max=64"`
	MemberID   string    `json:"member_id,omitempty" bson:"member_id" gorm:"size:64;index" validate:"omitempty,max=64"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at" gorm:"not null"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingUpdate is a partial update. Nil fields keep the stored value.
type BookingUpdate struct {
	Title      *string    `json:"title,omitempty" validate:"omitempty,max=120"`
	Details    *string    `json:"details,omitempty" validate:"omitempty,max=2000"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	ResourceID *string    `json:"resource_id,omitempty" validate:"omitempty,max=64"`
}

// IsEmpty reports whether the update would change nothing.
func (u *BookingUpdate) IsEmpty() bool {
	return u.Title == nil && u.Details == nil && u.StartTime == nil && u.EndTime == nil && u.ResourceID == nil
}

// Merge returns a copy of b with every non-nil field of u applied.
func (u *BookingUpdate) Merge(b *Booking) *Booking {
	merged := *b
	if u.Title != nil {
		merged.Title = *u.Title
	}
	if u.Details != nil {
		merged.Details = *u.Details
	}
	if u.StartTime != nil {
		merged.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		merged.EndTime = *u.EndTime
	}
	if u.ResourceID != nil {
		merged.ResourceID = *u.ResourceID
	}
	return &merged
}

// BookingFilter selects bookings from a store. Zero-valued fields are not
// applied. TitleContains and DetailsContains are case-insensitive literal
// substring matches.
type BookingFilter struct {
	ID              string
	TitleContains   string
	DetailsContains string
	StartAfter      *time.Time // start_time >= value
	EndBefore       *time.Time // end_time <= value
	CreatedAt       *time.Time
	ResourceID      string
	MemberID        string

	// Used by the overlap guard.
	EndsAtOrAfter    *time.Time // end_time >= value
	StartsAtOrBefore *time.Time // start_time <= value
	ExcludeID        string
}
