package model

import "time"

// BookingLock is an advisory lock held on one resource while a booking write
// is checked and applied. ID is the locked resource; Token identifies the
// holder so only the holder can release it.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	Token     string    `bson:"token" json:"token"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
