package errors

import "errors"

var (
	ErrNotFound = errors.New("log entry not found")

	ErrInvalidID = errors.New("invalid log entry ID format")
)
