package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes from midnight.
type TimeOfDay int

// ParseTimeOfDay parses a zero-padded "HH:MM" string. time.Parse alone
// tolerates unpadded hours, so the input must round-trip exactly.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || t.Format("15:04") != s {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On anchors the time of day to the calendar date of ref, in ref's location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), int(t)/60, int(t)%60, 0, 0, ref.Location())
}

// DayWindow is the open/close pair for a single weekday.
type DayWindow struct {
	Open  TimeOfDay `json:"open"`
	Close TimeOfDay `json:"close"`
}

// OpeningHours maps weekdays to their opening window. A missing entry means
// the business is closed that day.
type OpeningHours map[time.Weekday]DayWindow

// Window returns the opening window for the given weekday, if any.
func (h OpeningHours) Window(d time.Weekday) (DayWindow, bool) {
	w, ok := h[d]
	return w, ok
}

// SlotSpec fixes the length of every generated slot.
type SlotSpec struct {
	Duration time.Duration `json:"duration"`
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// weekday order used for "mon-fri" style ranges.
var weekdayOrder = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// ParseOpeningHours parses a schedule string of the form
// "mon-fri=08:00-18:00,sat=09:00-13:00". Day keys are the three-letter
// English abbreviations; a key may be a single day or an inclusive range.
func ParseOpeningHours(spec string) (OpeningHours, error) {
	hours := OpeningHours{}
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid opening-hours entry %q", entry)
		}
		days, err := parseDayKey(strings.ToLower(strings.TrimSpace(parts[0])))
		if err != nil {
			return nil, err
		}
		window, err := parseDayWindow(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid opening-hours entry %q: %w", entry, err)
		}
		for _, d := range days {
			hours[d] = window
		}
	}
	if len(hours) == 0 {
		return nil, fmt.Errorf("opening hours %q define no open days", spec)
	}
	return hours, nil
}

func parseDayKey(key string) ([]time.Weekday, error) {
	if d, ok := weekdayNames[key]; ok {
		return []time.Weekday{d}, nil
	}
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unknown weekday %q", key)
	}
	from := indexOfDay(parts[0])
	to := indexOfDay(parts[1])
	if from < 0 || to < 0 || from > to {
		return nil, fmt.Errorf("invalid weekday range %q", key)
	}
	var days []time.Weekday
	for i := from; i <= to; i++ {
		days = append(days, weekdayNames[weekdayOrder[i]])
	}
	return days, nil
}

func indexOfDay(name string) int {
	for i, n := range weekdayOrder {
		if n == name {
			return i
		}
	}
	return -1
}

func parseDayWindow(s string) (DayWindow, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return DayWindow{}, fmt.Errorf("expected HH:MM-HH:MM, got %q", s)
	}
	open, err := ParseTimeOfDay(strings.TrimSpace(parts[0]))
	if err != nil {
		return DayWindow{}, err
	}
	close, err := ParseTimeOfDay(strings.TrimSpace(parts[1]))
	if err != nil {
		return DayWindow{}, err
	}
	if open >= close {
		return DayWindow{}, fmt.Errorf("open %s must be before close %s", open, close)
	}
	return DayWindow{Open: open, Close: close}, nil
}
