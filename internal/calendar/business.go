package calendar

import "time"

// AddBusinessDays moves n business days from start, counting only days that are
// neither weekends nor holidays of cal. Negative n moves backward; n == 0
// returns start unchanged.
//
// Whole weeks are skipped arithmetically and only each spanned year's holiday
// list is scanned, so the cost grows with the number of years, not days.
func AddBusinessDays(start time.Time, n int, cal *Calendar) time.Time {
	d := Truncate(start)
	for n > 0 {
		next := nthWeekdayAfter(d, n)
		n -= cal.businessDaysIn(d, next)
		d = next
	}
	for n < 0 {
		next := nthWeekdayBefore(d, -n)
		n += cal.businessDaysIn(next.AddDate(0, 0, -1), d.AddDate(0, 0, -1))
		d = next
	}
	return d
}

// BusinessDaysBetween counts business days in (a, b]. The count is negative
// when b is before a.
func BusinessDaysBetween(a, b time.Time, cal *Calendar) int {
	a, b = Truncate(a), Truncate(b)
	if b.Before(a) {
		return -cal.businessDaysIn(b, a)
	}
	return cal.businessDaysIn(a, b)
}

// businessDaysIn counts business days in (lo, hi], lo <= hi
func (c *Calendar) businessDaysIn(lo, hi time.Time) int {
	count := weekdaysThrough(hi) - weekdaysThrough(lo)
	if c == nil || len(c.rules) == 0 {
		return count
	}
	for y := lo.Year(); y <= hi.Year(); y++ {
		for _, e := range c.year(y).entries {
			if e.Date.After(lo) && !e.Date.After(hi) && !IsWeekend(e.Date) {
				count--
			}
		}
	}
	return count
}

// dayNumber is the day index of t counted from Monday 1970-01-05
func dayNumber(t time.Time) int {
	return floorDiv(int(Truncate(t).Unix()), 86400) - 4
}

// weekdaysThrough counts Monday-Friday days from the epoch Monday up to and
// including t; the count is zero or negative before the epoch
func weekdaysThrough(t time.Time) int {
	k := dayNumber(t)
	r := floorMod(k, 7)
	if r > 4 {
		r = 4
	}
	return 5*floorDiv(k, 7) + r + 1
}

// weekdayNumbered is the inverse of weekdaysThrough for weekdays
func weekdayNumbered(count int) time.Time {
	k := 7*floorDiv(count-1, 5) + floorMod(count-1, 5)
	return time.Unix(int64(k+4)*86400, 0).UTC()
}

// nthWeekdayAfter returns the n-th Monday-Friday day after d, n > 0
func nthWeekdayAfter(d time.Time, n int) time.Time {
	return weekdayNumbered(weekdaysThrough(d) + n)
}

// nthWeekdayBefore returns the n-th Monday-Friday day before d, n > 0
func nthWeekdayBefore(d time.Time, n int) time.Time {
	return weekdayNumbered(weekdaysThrough(d.AddDate(0, 0, -1)) - n + 1)
}
