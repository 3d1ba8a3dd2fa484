// Package dateutil implements calendar-date parsing and the past-date check
// used for task deadlines. Dates carry no time component: comparisons happen
// at midnight in the server's local time zone, so a deadline set to today is
// accepted at any time of day.
package dateutil

import "time"

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// ParseDate parses s as a calendar date in the server's local time zone,
// truncated to midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(Layout, s, time.Local)
}

// IsPastDate reports whether s names a calendar date strictly before today.
// An unparsable string is treated as past, so malformed input is rejected
// rather than silently stored.
func IsPastDate(s string) bool {
	d, err := ParseDate(s)
	if err != nil {
		return true
	}
	return d.Before(Today())
}

// Today returns the current date at local midnight.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
