// Package calendar provides holiday tables keyed by country/subdivision and the
// business-day arithmetic built on them.
//
// Dates are time.Time values at midnight UTC. All arithmetic is proleptic
// Gregorian and never consults the wall clock.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ISODate is the canonical input/output date layout
const ISODate = "2006-01-02"

// ErrInvalidDate is returned when a date string cannot be parsed
var ErrInvalidDate = errors.New("invalid date")

// layouts accepted by ParseDate in priority order
var layouts = []string{
	ISODate,
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day, keeping the calendar date as written
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDate parses an ISO-8601 date (or one of a few unambiguous long forms)
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Truncate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
}

// FormatDate renders a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISODate)
}

// DaysBetween returns b - a in whole calendar days (negative when b is earlier)
func DaysBetween(a, b time.Time) int {
	return dayNumber(b) - dayNumber(a)
}

// IsLeapYear reports whether year is a Gregorian leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// IsWeekend reports whether t is a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddCalendarDays adds n calendar days (n may be negative)
func AddCalendarDays(start time.Time, n int) time.Time {
	return Truncate(start).AddDate(0, 0, n)
}

// AddMonths adds n months, clamping the day to the target month's last day
// (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year)
func AddMonths(start time.Time, n int) time.Time {
	y, m, d := start.Date()

	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)

	if last := DaysIn(year, month); d > last {
		d = last
	}
	return Date(year, month, d)
}

// AddYears adds n years with the same clamping as AddMonths (Feb 29 + 1 year = Feb 28)
func AddYears(start time.Time, n int) time.Time {
	return AddMonths(start, n*12)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
