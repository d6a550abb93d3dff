// Package timeslot holds the time arithmetic every other component delegates
// to. Slot boundaries are half-open: a slot ending at 10:00 and a slot
// starting at 10:00 do not collide. That policy is defined once, in
// Interval.Overlaps, and nowhere else.
package timeslot

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"

	minutesPerHour = 60
	minutesPerDay  = 24 * 60
)

// Clock is a time of day expressed as minutes since midnight.
type Clock int

// ParseClock parses an "HH:MM" string into a Clock.
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return Clock(h*minutesPerHour + m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/minutesPerHour, int(c)%minutesPerHour)
}

// Add returns the clock shifted forward by the given number of minutes.
// The result may run past midnight; Interval construction rejects that.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Valid reports whether the clock falls within a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c < Clock(minutesPerDay)
}

// Interval is a half-open time-of-day range [Start, End).
type Interval struct {
	Start Clock
	End   Clock
}

// NewInterval builds an interval from "HH:MM" bounds, requiring start < end.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if s >= e {
		return Interval{}, fmt.Errorf("interval start %s must be before end %s", s, e)
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints (one interval ending exactly where the other starts) do not
// count as overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Within reports whether the interval nests entirely inside outer.
func (i Interval) Within(outer Interval) bool {
	return i.Start >= outer.Start && i.End <= outer.End
}

// Minutes returns the interval duration in minutes.
func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}

// BillableHours rounds the interval duration up to whole hours. A 61 minute
// interval bills as 2 hours.
func (i Interval) BillableHours() int {
	return (i.Minutes() + minutesPerHour - 1) / minutesPerHour
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start, i.End)
}

// ParseDate parses a calendar date in DateLayout, in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// Today returns the current UTC calendar date in DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
