package calendar

import (
	"context"
	"errors"
	"time"

	"slotify/models"
)

// ErrEventNotFound is returned when the provider does not recognize the
// event identifier.
var ErrEventNotFound = errors.New("calendar: event not found")

// ErrConflict is returned when the provider rejects a write because the
// target period is already taken.
var ErrConflict = errors.New("calendar: event conflict")

// Gateway is the calendar provider seen by the booking service. The provider
// is the system of record: busy intervals are fetched fresh per call and a
// successful CreateEvent is the only authoritative booking confirmation.
type Gateway interface {
	// ListBusyIntervals returns all occupied periods overlapping [from, to),
	// ordered by start time.
	ListBusyIntervals(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error)

	// ListEvents returns the timed events overlapping [from, to).
	ListEvents(ctx context.Context, from, to time.Time) ([]models.Event, error)

	// CreateEvent inserts a new event and returns its id. It never partially
	// applies: on error the calendar is unchanged or the error is surfaced.
	CreateEvent(ctx context.Context, input models.EventInput) (string, error)

	// DeleteEvent removes an event. Returns ErrEventNotFound for unknown ids.
	DeleteEvent(ctx context.Context, eventID string) error

	// Ping verifies the provider is reachable with the configured identity.
	Ping(ctx context.Context) error
}
