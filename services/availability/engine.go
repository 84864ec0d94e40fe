// Package availability computes free appointment slots. Every function here
// is a pure computation over its inputs: candidate slots come from the
// opening-hours table, busy intervals come from the caller, and nothing is
// cached between calls.
package availability

import (
	"context"
	"time"

	"slotify/models"
)

const dateLayout = "2006-01-02"

// BusyFetchFunc fetches the busy intervals overlapping [from, to) for one
// day. NextFreeSlots calls it once per open day examined.
type BusyFetchFunc func(ctx context.Context, from, to time.Time) ([]models.BusyInterval, error)

// CandidateSlots enumerates the slots of a calendar day: starting at open,
// back-to-back [t, t+duration) windows until the next slot would cross the
// closing time. A trailing remainder shorter than the duration is dropped.
// Closed days yield no slots.
func CandidateSlots(date time.Time, hours models.OpeningHours, spec models.SlotSpec) []models.Slot {
	window, ok := hours.Window(date.Weekday())
	if !ok || spec.Duration <= 0 {
		return nil
	}

	open := window.Open.On(date)
	close := window.Close.On(date)
	day := date.Format(dateLayout)

	var slots []models.Slot
	for t := open; !t.Add(spec.Duration).After(close); t = t.Add(spec.Duration) {
		slots = append(slots, models.Slot{
			Date:   day,
			Window: models.TimeWindow{Start: t, End: t.Add(spec.Duration)},
		})
	}
	return slots
}

// IsFree reports whether the slot shares no interior points with any busy
// interval. A busy interval that merely touches the slot boundary does not
// occupy it.
func IsFree(slot models.Slot, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if slot.Window.Overlaps(b) {
			return false
		}
	}
	return true
}

// FreeSlotsForDay returns the day's candidate slots that are free, in
// ascending start-time order. A closed or fully booked day yields an empty
// result, not an error.
func FreeSlotsForDay(date time.Time, hours models.OpeningHours, spec models.SlotSpec, busy []models.BusyInterval) []models.Slot {
	candidates := CandidateSlots(date, hours, spec)
	free := make([]models.Slot, 0, len(candidates))
	for _, slot := range candidates {
		if IsFree(slot, busy) {
			free = append(free, slot)
		}
	}
	return free
}

// NextFreeSlots walks forward one calendar day at a time from start,
// fetching each open day's busy intervals and accumulating free slots until
// count is reached or dayLimit days have been examined. Closed days cost no
// fetch. A short result means the day limit ran out first; callers must
// handle fewer than count slots.
func NextFreeSlots(ctx context.Context, start time.Time, count int, hours models.OpeningHours, spec models.SlotSpec, fetch BusyFetchFunc, dayLimit int) ([]models.Slot, error) {
	if count <= 0 {
		return nil, nil
	}

	var found []models.Slot
	day := start
	for examined := 0; examined < dayLimit && len(found) < count; examined++ {
		if window, open := hours.Window(day.Weekday()); open {
			busy, err := fetch(ctx, window.Open.On(day), window.Close.On(day))
			if err != nil {
				return nil, err
			}
			for _, slot := range FreeSlotsForDay(day, hours, spec, busy) {
				found = append(found, slot)
				if len(found) == count {
					break
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return found, nil
}
