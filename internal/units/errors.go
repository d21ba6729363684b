package units

import (
	"errors"
	"fmt"
)

var (
	// ErrRangeViolation marks a quantity construction that received a value
	// outside the type's legal range (including NaN and infinities).
	ErrRangeViolation = errors.New("value out of range")

	// ErrInvalidLatitude marks a latitude outside [-90, 90).
	ErrInvalidLatitude = errors.New("invalid latitude")

	// ErrInvalidLongitude marks a longitude outside [-180, 180).
	ErrInvalidLongitude = errors.New("invalid longitude")
)

// RangeError reports the offending value and the quantity that rejected it.
// It unwraps to one of the sentinel errors above so callers can match the
// kind with errors.Is.
type RangeError struct {
	Quantity string
	Value    float64
	kind     error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v is not a valid %s", e.Value, e.Quantity)
}

func (e *RangeError) Unwrap() error { return e.kind }

func newRangeError(quantity string, value float64) *RangeError {
	return &RangeError{Quantity: quantity, Value: value, kind: ErrRangeViolation}
}
