package models

import "time"

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the two windows share interior points. Windows
// that merely touch at a boundary do not overlap.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// BusyInterval is an occupied period reported by the calendar gateway.
// Fetched fresh per query, never cached across requests.
type BusyInterval = TimeWindow

// Slot is a fixed-duration candidate appointment window within opening
// hours, tagged with its source date.
type Slot struct {
	Date   string     `json:"date"`
	Window TimeWindow `json:"window"`
}

// SlotView is the wire representation of a slot.
type SlotView struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// View renders the slot with HH:MM times in the slot's own location.
func (s Slot) View() SlotView {
	return SlotView{
		Date:  s.Date,
		Start: s.Window.Start.Format("15:04"),
		End:   s.Window.End.Format("15:04"),
	}
}

// DaySlots groups the free slots of one calendar day.
type DaySlots struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

// Event is a calendar event as seen through the gateway, decoupled from the
// provider's own types.
type Event struct {
	ID      string     `json:"id"`
	Window  TimeWindow `json:"window"`
	Summary string     `json:"summary"`
}

// EventInput carries everything needed to create a gateway event.
type EventInput struct {
	Window      TimeWindow
	Summary     string
	Description string
	Timezone    string
	BookingRef  string
}
