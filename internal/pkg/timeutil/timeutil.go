// Package timeutil converts between the wall-clock strings used across the
// schedule API ("오전/오후 hh:mm" or bare "HH:mm") and absolute timestamps.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	amMarker = "오전"
	pmMarker = "오후"

	tmapAPILayout = "2006-01-02T15:04:05-0700"
)

// TimeFormatError is returned when a wall-clock string matches neither the
// AM/PM-marked 12-hour format nor the bare 24-hour format.
type TimeFormatError struct {
	Input string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("unparseable wall-clock time: %q", e.Input)
}

// ParseClock resolves a wall-clock string on base's calendar date. The
// AM/PM-marked 12-hour form is tried first, then bare "HH:mm". Date rollover
// is the caller's concern: the result may precede any reference instant.
func ParseClock(s string, base time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(s)

	if rest, ok := strings.CutPrefix(trimmed, amMarker); ok {
		return parseHalfDay(s, rest, false, base)
	}
	if rest, ok := strings.CutPrefix(trimmed, pmMarker); ok {
		return parseHalfDay(s, rest, true, base)
	}

	t, err := time.Parse("15:04", trimmed)
	if err != nil {
		return time.Time{}, &TimeFormatError{Input: s}
	}
	return atClock(base, t.Hour(), t.Minute()), nil
}

func parseHalfDay(orig, rest string, pm bool, base time.Time) (time.Time, error) {
	t, err := time.Parse("03:04", strings.TrimSpace(rest))
	if err != nil {
		return time.Time{}, &TimeFormatError{Input: orig}
	}
	hour := t.Hour() % 12
	if pm {
		hour += 12
	}
	return atClock(base, hour, t.Minute()), nil
}

func atClock(base time.Time, hour, minute int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, base.Location())
}

// FormatClock renders a timestamp in the AM/PM-marked 12-hour form, the
// output convention for every wall-clock string the service emits.
func FormatClock(t time.Time) string {
	marker := amMarker
	hour := t.Hour()
	if hour >= 12 {
		marker = pmMarker
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%s %02d:%02d", marker, hour12, t.Minute())
}

// FormatTmapAPI renders a timestamp the way the route provider expects
// departure prediction times.
func FormatTmapAPI(t time.Time) string {
	return t.Format(tmapAPILayout)
}
