package errors

import "errors"

var (
	ErrNotFound = errors.New("aircraft not found")

	ErrInvalidID = errors.New("invalid aircraft ID format")

	ErrDuplicateRegistration = errors.New("aircraft registration already exists")
)
