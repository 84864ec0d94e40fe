package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slotify/calendar"
	"slotify/models"
	"slotify/services/availability"
	"slotify/utils"
)

const dateLayout = "2006-01-02"

// DefaultBookingService composes the slot engine with the calendar gateway.
// It keeps no state across requests; the gateway is the system of record.
type DefaultBookingService struct {
	Gateway       calendar.Gateway
	Hours         models.OpeningHours
	Spec          models.SlotSpec
	DefaultTZ     string
	LookaheadDays int
	DefaultCount  int
	Idempotency   IdempotencyStore
	Now           func() time.Time
}

func (s *DefaultBookingService) FreeSlots(ctx context.Context, req models.FreeSlotsRequest) ([]models.SlotView, error) {
	loc, err := s.location(req.Timezone)
	if err != nil {
		return nil, err
	}
	day, err := parseDate(req.Date, loc)
	if err != nil {
		return nil, err
	}

	window, open := s.Hours.Window(day.Weekday())
	if !open {
		return []models.SlotView{}, nil
	}

	busy, gerr := s.Gateway.ListBusyIntervals(ctx, window.Open.On(day), window.Close.On(day))
	if gerr != nil {
		return nil, &GatewayError{Op: "list busy intervals", Err: gerr}
	}

	slots := availability.FreeSlotsForDay(day, s.Hours, s.Spec, busy)
	return toViews(slots), nil
}

func (s *DefaultBookingService) NextFree(ctx context.Context, req models.NextFreeRequest) ([]models.DaySlots, error) {
	loc, err := s.location(req.Timezone)
	if err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = s.DefaultCount
	}

	fetch := func(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error) {
		busy, gerr := s.Gateway.ListBusyIntervals(ctx, from, to)
		if gerr != nil {
			return nil, &GatewayError{Op: "list busy intervals", Err: gerr}
		}
		return busy, nil
	}

	start := s.Now().In(loc)
	slots, err := availability.NextFreeSlots(ctx, start, count, s.Hours, s.Spec, fetch, s.LookaheadDays)
	if err != nil {
		return nil, err
	}
	return groupByDay(slots), nil
}

func (s *DefaultBookingService) CheckSlot(ctx context.Context, req models.AvailabilityRequest) (bool, error) {
	loc, err := s.location(req.Timezone)
	if err != nil {
		return false, err
	}
	slot, bookable, err := s.slotAt(req.Date, req.Time, loc)
	if err != nil {
		return false, err
	}
	if !bookable {
		return false, nil
	}

	busy, gerr := s.Gateway.ListBusyIntervals(ctx, slot.Window.Start, slot.Window.End)
	if gerr != nil {
		return false, &GatewayError{Op: "list busy intervals", Err: gerr}
	}
	return availability.IsFree(slot, busy), nil
}

func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest, idempotencyKey string) (models.BookingConfirmation, error) {
	loc, err := s.location(req.Timezone)
	if err != nil {
		return models.BookingConfirmation{}, err
	}
	slot, bookable, err := s.slotAt(req.Date, req.Time, loc)
	if err != nil {
		return models.BookingConfirmation{}, err
	}
	if !bookable {
		return models.BookingConfirmation{}, newValidationError("%s %s is not a bookable slot", req.Date, req.Time)
	}

	if idempotencyKey != "" && s.Idempotency != nil {
		eventID, found, ierr := s.Idempotency.Get(ctx, idempotencyKey)
		if ierr != nil {
			return models.BookingConfirmation{}, &GatewayError{Op: "idempotency lookup", Err: ierr}
		}
		if found {
			return models.BookingConfirmation{Status: "booked", EventID: eventID}, nil
		}
	}

	// Availability answers are advisory; re-check against a fresh snapshot
	// immediately before the write.
	busy, gerr := s.Gateway.ListBusyIntervals(ctx, slot.Window.Start, slot.Window.End)
	if gerr != nil {
		return models.BookingConfirmation{}, &GatewayError{Op: "list busy intervals", Err: gerr}
	}
	if !availability.IsFree(slot, busy) {
		return models.BookingConfirmation{}, &ConflictError{Date: req.Date, Time: req.Time}
	}

	description := fmt.Sprintf("Appointment for %s", req.Name)
	if req.Email != "" {
		description += fmt.Sprintf(" <%s>", req.Email)
	}

	eventID, gerr := s.Gateway.CreateEvent(ctx, models.EventInput{
		Window:      slot.Window,
		Summary:     req.Name,
		Description: description,
		Timezone:    loc.String(),
		BookingRef:  uuid.New().String(),
	})
	if gerr != nil {
		// A late conflict from the provider overrides the optimistic check.
		if errors.Is(gerr, calendar.ErrConflict) {
			return models.BookingConfirmation{}, &ConflictError{Date: req.Date, Time: req.Time}
		}
		return models.BookingConfirmation{}, &GatewayError{Op: "create event", Err: gerr}
	}

	if idempotencyKey != "" && s.Idempotency != nil {
		// The event exists either way; a failed record only costs replay
		// protection for this key.
		if ierr := s.Idempotency.Set(ctx, idempotencyKey, eventID); ierr != nil {
			utils.GetLogger().Warn("failed to record idempotency key",
				zap.String("eventID", eventID), zap.Error(ierr))
		}
	}

	return models.BookingConfirmation{Status: "booked", EventID: eventID}, nil
}

func (s *DefaultBookingService) Delete(ctx context.Context, req models.DeleteRequest) error {
	if req.EventID != "" {
		return s.deleteByID(ctx, req.EventID)
	}

	if req.Date == "" || req.Time == "" {
		return newValidationError("either event_id or date and time are required")
	}
	loc, err := s.location(req.Timezone)
	if err != nil {
		return err
	}
	slot, bookable, err := s.slotAt(req.Date, req.Time, loc)
	if err != nil {
		return err
	}
	if !bookable {
		return &NotFoundError{Message: fmt.Sprintf("no appointment at %s %s", req.Date, req.Time)}
	}

	events, gerr := s.Gateway.ListEvents(ctx, slot.Window.Start, slot.Window.End)
	if gerr != nil {
		return &GatewayError{Op: "list events", Err: gerr}
	}
	for _, event := range events {
		if !event.Window.Start.Equal(slot.Window.Start) {
			continue
		}
		if req.Name != "" && event.Summary != req.Name {
			continue
		}
		return s.deleteByID(ctx, event.ID)
	}
	return &NotFoundError{Message: fmt.Sprintf("no appointment at %s %s", req.Date, req.Time)}
}

func (s *DefaultBookingService) deleteByID(ctx context.Context, eventID string) error {
	if err := s.Gateway.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, calendar.ErrEventNotFound) {
			return &NotFoundError{Message: fmt.Sprintf("no appointment with event id %s", eventID)}
		}
		return &GatewayError{Op: "delete event", Err: err}
	}
	return nil
}

// location resolves the request timezone, falling back to the configured
// default. Unknown IANA names are a validation error.
func (s *DefaultBookingService) location(tz string) (*time.Location, error) {
	name := tz
	if name == "" {
		name = s.DefaultTZ
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, newValidationError("unknown timezone %q", name)
	}
	return loc, nil
}

// slotAt maps a date and time to the candidate slot starting there. The
// second return is false when the requested time is outside opening hours or
// off the slot grid.
func (s *DefaultBookingService) slotAt(date, tm string, loc *time.Location) (models.Slot, bool, error) {
	day, err := parseDate(date, loc)
	if err != nil {
		return models.Slot{}, false, err
	}
	tod, err := models.ParseTimeOfDay(tm)
	if err != nil {
		return models.Slot{}, false, newValidationError("invalid time %q, expected HH:MM", tm)
	}

	window, open := s.Hours.Window(day.Weekday())
	if !open {
		return models.Slot{}, false, nil
	}

	start := tod.On(day)
	end := start.Add(s.Spec.Duration)
	offset := start.Sub(window.Open.On(day))
	if offset < 0 || end.After(window.Close.On(day)) || offset%s.Spec.Duration != 0 {
		return models.Slot{}, false, nil
	}

	return models.Slot{
		Date:   day.Format(dateLayout),
		Window: models.TimeWindow{Start: start, End: end},
	}, true, nil
}

func parseDate(date string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, newValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	return day, nil
}

func toViews(slots []models.Slot) []models.SlotView {
	views := make([]models.SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, slot.View())
	}
	return views
}

func groupByDay(slots []models.Slot) []models.DaySlots {
	days := []models.DaySlots{}
	for _, slot := range slots {
		if len(days) == 0 || days[len(days)-1].Date != slot.Date {
			days = append(days, models.DaySlots{Date: slot.Date})
		}
		days[len(days)-1].Slots = append(days[len(days)-1].Slots, slot.View())
	}
	return days
}
