package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned when the record's data container is not
	// a list of [key, value] pairs with string keys.
	ErrMalformedRecord = errors.New("transform: malformed record")

	// ErrMissingField is returned when a mandatory section or field is
	// absent from the assembled document, or is not a mapping where one is
	// required.
	ErrMissingField = errors.New("transform: missing mandatory field")

	// ErrInvalidDate is returned when the site inspection date does not
	// match the month/day/two-digit-year input format.
	ErrInvalidDate = errors.New("transform: invalid date")
)

// FieldError reports which dotted document path failed a mandatory
// coercion. It unwraps to ErrMissingField or ErrInvalidDate.
type FieldError struct {
	Path  string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%v: %s (value %v)", e.Err, e.Path, e.Value)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Path)
}

func (e *FieldError) Unwrap() error { return e.Err }
