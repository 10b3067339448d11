// Package deadline classifies tasks by how close their deadline is.
//
// Nothing in this package reads the clock or touches the disk: every entry
// point takes the current moment as an argument, so one call sees one "now".
package deadline

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Layout is the only accepted deadline format (DD-MM-YYYY).
const Layout = "02-01-2006"

// ErrInvalidDeadline is returned (wrapped) for any deadline that is not a
// real calendar date in Layout.
var ErrInvalidDeadline = errors.New("invalid deadline")

var deadlinePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// ParseDeadline parses s as a calendar date in loc.
func ParseDeadline(s string, loc *time.Location) (time.Time, error) {
	if !deadlinePattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q, expected DD-MM-YYYY", ErrInvalidDeadline, s)
	}
	t, err := time.ParseInLocation(Layout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDeadline, s, err)
	}
	return t, nil
}

// FormatDeadline renders t in Layout.
func FormatDeadline(t time.Time) string {
	return t.Format(Layout)
}

// ComputeDayDelta returns the number of whole calendar days from the date of
// now to the deadline. The time of day in now is ignored.
func ComputeDayDelta(s string, now time.Time) (int, error) {
	due, err := ParseDeadline(s, now.Location())
	if err != nil {
		return 0, err
	}
	return daysBetween(now, due), nil
}

// daysBetween counts calendar days from a to b. Both dates are moved to UTC
// midnight first so a DST shift in the local zone cannot add or drop an hour.
// The difference is taken in Unix seconds: a time.Duration saturates at about
// 292 years, and any four-digit year is a valid deadline.
func daysBetween(a, b time.Time) int {
	from := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60
