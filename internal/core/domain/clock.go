package domain

import (
	"fmt"
	"strconv"
)

const MinutesPerDay = 24 * 60

// Clock is a wall-clock time expressed as minutes since midnight.
// Values at or beyond MinutesPerDay are representable so cascades can be
// checked for overflow before they are persisted.
type Clock int

func ParseClock(value string) (Clock, error) {
	if len(value) != 5 || value[2] != ':' || !isDigits(value[:2]) || !isDigits(value[3:]) {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", value)
	}
	hours, err := strconv.Atoi(value[:2])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q: hour out of range", value)
	}
	minutes, err := strconv.Atoi(value[3:])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", value)
	}
	return Clock(hours*60 + minutes), nil
}

func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// MinutesBetween returns to - from in minutes.
func MinutesBetween(from, to Clock) int {
	return int(to - from)
}

func (c Clock) Valid() bool {
	return c >= 0 && c < MinutesPerDay
}

// String renders the clock as HH:MM. Out-of-day values keep counting hours
// (24:30, 25:00) so they stay readable in logs and error messages.
func (c Clock) String() string {
	if c < 0 {
		return fmt.Sprintf("-%02d:%02d", int(-c)/60, int(-c)%60)
	}
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
