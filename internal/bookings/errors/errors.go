package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrOverlap = errors.New("booking overlaps with existing booking")

	ErrResourceBusy = errors.New("resource is being booked by another request")

	ErrLockNotHeld = errors.New("booking lock is not held by this holder")

	ErrUnknownResource = errors.New("resource does not exist")

	ErrInactiveResource = errors.New("resource is not available for booking")
)
