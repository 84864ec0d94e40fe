package booking

import "fmt"

// ValidationError covers malformed dates, times and timezone names. It is
// raised before any gateway call and is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means the requested slot overlaps a busy interval at booking
// time. The caller must offer fresh availability, never substitute a slot.
type ConflictError struct {
	Date string
	Time string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot %s %s is already booked", e.Date, e.Time)
}

// NotFoundError means the gateway does not recognize the target of a delete
// or lookup.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// GatewayError wraps a calendar-provider failure that survived any retry
// policy the gateway applies.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("calendar gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
