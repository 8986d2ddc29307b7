package food

import (
	"errors"
	"math"
	"strings"
	"time"

	"sustainbite/domain"
)

var errInvalidBestBefore = errors.New("must be a date in YYYY-MM-DD format")

// CalendarDate truncates t to 00:00 UTC of the calendar day t falls on in its
// own location. Best-before dates are stored in this form.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseBestBefore accepts a bare calendar date or an RFC 3339 timestamp, in
// which case the calendar day written in the timestamp is used.
func ParseBestBefore(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(domain.BestBeforeLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return CalendarDate(t), nil
	}
	return time.Time{}, errInvalidBestBefore
}

// DaysUntil is the number of calendar days from now's date (in now's location)
// to the best-before date. Negative once the date has passed.
func DaysUntil(bestBefore, now time.Time) int {
	today := CalendarDate(now)
	due := CalendarDate(bestBefore.UTC())
	return int(math.Round(due.Sub(today).Hours() / 24))
}

func UrgencyForDays(d int) string {
	switch {
	case d < 0:
		return domain.UrgencyExpired
	case d == 0:
		return domain.UrgencyToday
	case d <= 2:
		return domain.UrgencyUrgent
	case d <= 5:
		return domain.UrgencySoon
	default:
		return domain.UrgencyFresh
	}
}

func ClassifyUrgency(bestBefore, now time.Time) string {
	return UrgencyForDays(DaysUntil(bestBefore, now))
}
