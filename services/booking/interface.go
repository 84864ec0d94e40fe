package booking

import (
	"context"

	"slotify/models"
)

// Service is the booking facade consumed by the HTTP layer.
type Service interface {
	// FreeSlots returns the free slots of one date, ascending. Closed or
	// fully booked days return an empty list.
	FreeSlots(ctx context.Context, req models.FreeSlotsRequest) ([]models.SlotView, error)

	// NextFree returns up to count upcoming free slots grouped per day,
	// scanning at most the configured number of lookahead days.
	NextFree(ctx context.Context, req models.NextFreeRequest) ([]models.DaySlots, error)

	// CheckSlot reports whether one specific slot is currently free. The
	// answer is advisory; only Book confirms a reservation.
	CheckSlot(ctx context.Context, req models.AvailabilityRequest) (bool, error)

	// Book re-checks the slot against a fresh busy snapshot and creates the
	// event. A ConflictError means the slot was taken in the meantime.
	Book(ctx context.Context, req models.BookingRequest, idempotencyKey string) (models.BookingConfirmation, error)

	// Delete cancels a booking by event id, or by date and time with an
	// optional attendee-name match.
	Delete(ctx context.Context, req models.DeleteRequest) error
}
