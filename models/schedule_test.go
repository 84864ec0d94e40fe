package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:00", want: 8 * 60},
		{in: "00:00", want: 0},
		{in: "23:59", want: 23*60 + 59},
		{in: "8:00", wantErr: true},
		{in: "08:5", wantErr: true},
		{in: "8:5", wantErr: true},
		{in: " 08:00", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "08:60", wantErr: true},
		{in: "morning", wantErr: true},
	}

	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if c.wantErr {
			assert.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", tod.String())
}

func TestTimeOfDayOnKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	ref := time.Date(2026, time.September, 2, 0, 0, 0, 0, loc)
	tod, err := ParseTimeOfDay("14:30")
	require.NoError(t, err)

	anchored := tod.On(ref)
	assert.Equal(t, loc, anchored.Location())
	assert.Equal(t, 14, anchored.Hour())
	assert.Equal(t, 30, anchored.Minute())
	assert.Equal(t, ref.Day(), anchored.Day())
}

func TestParseOpeningHours(t *testing.T) {
	hours, err := ParseOpeningHours("mon-fri=08:00-18:00,sat=09:00-13:00")
	require.NoError(t, err)
	require.Len(t, hours, 6)

	for d := time.Monday; d <= time.Friday; d++ {
		window, ok := hours.Window(d)
		require.True(t, ok, d.String())
		assert.Equal(t, "08:00", window.Open.String())
		assert.Equal(t, "18:00", window.Close.String())
	}

	sat, ok := hours.Window(time.Saturday)
	require.True(t, ok)
	assert.Equal(t, "09:00", sat.Open.String())
	assert.Equal(t, "13:00", sat.Close.String())

	_, ok = hours.Window(time.Sunday)
	assert.False(t, ok)
}

func TestParseOpeningHoursSingleDay(t *testing.T) {
	hours, err := ParseOpeningHours("sun=10:00-12:00")
	require.NoError(t, err)
	require.Len(t, hours, 1)
	_, ok := hours.Window(time.Sunday)
	assert.True(t, ok)
}

func TestParseOpeningHoursRejectsBadInput(t *testing.T) {
	cases := []string{
		"",
		"mon",
		"funday=08:00-18:00",
		"fri-mon=08:00-18:00",
		"mon=18:00-08:00",
		"mon=08:00-08:00",
		"mon=08:00",
	}

	for _, c := range cases {
		_, err := ParseOpeningHours(c)
		assert.Error(t, err, c)
	}
}

func TestTimeWindowOverlaps(t *testing.T) {
	base := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	win := func(startMin, endMin int) TimeWindow {
		return TimeWindow{
			Start: base.Add(time.Duration(startMin) * time.Minute),
			End:   base.Add(time.Duration(endMin) * time.Minute),
		}
	}

	cases := []struct {
		name string
		a, b TimeWindow
		want bool
	}{
		{name: "identical", a: win(0, 30), b: win(0, 30), want: true},
		{name: "partial", a: win(0, 30), b: win(15, 45), want: true},
		{name: "contained", a: win(0, 60), b: win(15, 30), want: true},
		{name: "touching end", a: win(0, 30), b: win(30, 60), want: false},
		{name: "touching start", a: win(30, 60), b: win(0, 30), want: false},
		{name: "disjoint", a: win(0, 30), b: win(60, 90), want: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Overlaps(c.b))
			assert.Equal(t, c.want, c.b.Overlaps(c.a))
		})
	}
}
