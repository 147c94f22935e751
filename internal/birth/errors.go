package birth

import (
	"errors"
	"fmt"
)

// Kind classifies why a birth payload was rejected.
type Kind string

const (
	KindMissingField           Kind = "missing_field"
	KindMalformedDate          Kind = "malformed_date"
	KindMalformedTime          Kind = "malformed_time"
	KindMalformedLocation      Kind = "malformed_location"
	KindInternalComputationErr Kind = "internal_computation_fault"
)

// Validation errors. A *ValidationError unwraps to the sentinel matching its Kind.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrMalformedDate     = errors.New("malformed birth date")
	ErrMalformedTime     = errors.New("malformed birth time")
	ErrMalformedLocation = errors.New("malformed birth location")

	// ErrInternalComputation is returned by engines handed a Profile that did not
	// come from Validate. It is not reachable through the HTTP API.
	ErrInternalComputation = errors.New("internal computation fault")
)

// Field names as they appear on the wire.
const (
	FieldBirthDate     = "birth_date"
	FieldBirthTime     = "birth_time"
	FieldBirthLocation = "birth_location"
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field  string
	Kind   Kind
	Reason string
	Value  string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "birth validation error"
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap enables errors.Is against the sentinel for the error kind.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case KindMissingField:
		return ErrMissingField
	case KindMalformedDate:
		return ErrMalformedDate
	case KindMalformedTime:
		return ErrMalformedTime
	case KindMalformedLocation:
		return ErrMalformedLocation
	case KindInternalComputationErr:
		return ErrInternalComputation
	default:
		return nil
	}
}

func newValidationError(field string, kind Kind, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Reason: reason, Value: value}
}
