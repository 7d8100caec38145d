package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Invalid input errors: the upstream result object is malformed and no
	// summary may be produced from it.
	ErrInvalidInput   = errors.New("invalid input")
	ErrLengthMismatch = fmt.Errorf("%w: score arrays differ in length", ErrInvalidInput)
	ErrMissingPi0     = fmt.Errorf("%w: pi0 estimate is absent", ErrInvalidInput)
	ErrBadThreshold   = fmt.Errorf("%w: threshold is not a finite number", ErrInvalidInput)
	ErrBadDigits      = fmt.Errorf("%w: digits must be a positive integer", ErrInvalidInput)
	ErrPi0OutOfRange  = fmt.Errorf("%w: pi0 outside [0, 1]", ErrInvalidInput)

	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrResultNotFound = fmt.Errorf("%w: analysis result", ErrNotFound)
	ErrReportNotFound = fmt.Errorf("%w: summary report", ErrNotFound)
)

// Error constructors with context

func NewLengthMismatchError(field string, got, want int) error {
	return fmt.Errorf("%w: %s has %d entries, expected %d", ErrLengthMismatch, field, got, want)
}

func NewBadThresholdError(index int, value float64) error {
	return fmt.Errorf("%w: thresholds[%d] = %v", ErrBadThreshold, index, value)
}

func NewPi0RangeError(value float64) error {
	return fmt.Errorf("%w: got %v", ErrPi0OutOfRange, value)
}

func NewBadDigitsError(digits int) error {
	return fmt.Errorf("%w: got %d", ErrBadDigits, digits)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers

func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
