package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Observance controls how holidays falling on a weekend are substituted
type Observance string

const (
	ObserveNone    Observance = "none"            // weekend holidays are simply lost
	ObserveNearest Observance = "nearest_weekday" // Saturday -> Friday, Sunday -> Monday
	ObserveNext    Observance = "next_weekday"    // next free weekday, collisions pushed forward
)

// Entry is a single holiday occurrence
type Entry struct {
	Country     string    `json:"country" yaml:"country"`
	Subdivision string    `json:"subdivision,omitempty" yaml:"subdivision,omitempty"`
	Date        time.Time `json:"date" yaml:"date"`
	Name        string    `json:"name" yaml:"name"`
	Observed    bool      `json:"observed,omitempty" yaml:"observed,omitempty"`
}

// Rule describes how a holiday's date is derived for a given year.
// Exactly one shape is valid:
//
//	fixed:          month + day
//	nth weekday:    month + weekday + nth (negative counts from the end)
//	weekday after:  month + day + weekday (first such weekday on or after month/day)
//	easter offset:  easter (days relative to Western Easter Sunday)
//	one-off:        date (YYYY-MM-DD)
type Rule struct {
	Name    string `yaml:"name"`
	Month   int    `yaml:"month,omitempty"`
	Day     int    `yaml:"day,omitempty"`
	Weekday string `yaml:"weekday,omitempty"`
	Nth     int    `yaml:"nth,omitempty"`
	Offset  int    `yaml:"offset,omitempty"`
	Easter  *int   `yaml:"easter,omitempty"`
	Date    string `yaml:"date,omitempty"`
	Since   int    `yaml:"since,omitempty"`
	Until   int    `yaml:"until,omitempty"`
	Except  []int  `yaml:"except,omitempty"`

	// NoSubstitute disables observance for this rule only
	NoSubstitute bool `yaml:"no_substitute,omitempty"`

	weekday time.Weekday
	oneOff  time.Time
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// compile validates the rule's shape and resolves its weekday/date fields
func (r *Rule) compile() error {
	if r.Name == "" {
		return fmt.Errorf("rule without name")
	}

	shapes := 0
	if r.Easter != nil {
		shapes++
	}
	if r.Date != "" {
		shapes++
		d, err := ParseDate(r.Date)
		if err != nil {
			return fmt.Errorf("rule %q: %w", r.Name, err)
		}
		r.oneOff = d
	}
	if r.Month != 0 {
		shapes++
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("rule %q: month %d out of range", r.Name, r.Month)
		}
	}
	if shapes != 1 {
		return fmt.Errorf("rule %q: exactly one of month, easter or date is required", r.Name)
	}

	if r.Weekday != "" {
		wd, ok := weekdays[strings.ToLower(r.Weekday)]
		if !ok {
			return fmt.Errorf("rule %q: unknown weekday %q", r.Name, r.Weekday)
		}
		r.weekday = wd
	}

	if r.Month != 0 {
		switch {
		case r.Weekday == "" && (r.Day < 1 || r.Day > 31):
			return fmt.Errorf("rule %q: fixed rule needs a day", r.Name)
		case r.Weekday != "" && r.Nth == 0 && r.Day == 0:
			return fmt.Errorf("rule %q: weekday rule needs nth or day", r.Name)
		case r.Nth < -5 || r.Nth > 5:
			return fmt.Errorf("rule %q: nth %d out of range", r.Name, r.Nth)
		}
	}
	return nil
}

// activeIn reports whether the rule applies in year
func (r *Rule) activeIn(year int) bool {
	if r.Since != 0 && year < r.Since {
		return false
	}
	if r.Until != 0 && year > r.Until {
		return false
	}
	for _, y := range r.Except {
		if y == year {
			return false
		}
	}
	return true
}

// dateIn returns the rule's actual date in year
func (r *Rule) dateIn(year int) (time.Time, bool) {
	if !r.activeIn(year) {
		return time.Time{}, false
	}

	switch {
	case !r.oneOff.IsZero():
		if r.oneOff.Year() != year {
			return time.Time{}, false
		}
		return r.oneOff, true
	case r.Easter != nil:
		return EasterSunday(year).AddDate(0, 0, *r.Easter), true
	case r.Weekday == "":
		month := time.Month(r.Month)
		if r.Day > DaysIn(year, month) {
			return time.Time{}, false
		}
		return Date(year, month, r.Day), true
	case r.Nth != 0:
		return NthWeekday(year, time.Month(r.Month), r.weekday, r.Nth).AddDate(0, 0, r.Offset), true
	default:
		return WeekdayOnOrAfter(Date(year, time.Month(r.Month), r.Day), r.weekday).AddDate(0, 0, r.Offset), true
	}
}

// NthWeekday returns the nth weekday of a month; n < 0 counts from the month's end
func NthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	if n < 0 {
		last := Date(year, month, DaysIn(year, month))
		back := (int(last.Weekday()) - int(wd) + 7) % 7
		return last.AddDate(0, 0, -back+(n+1)*7)
	}
	first := Date(year, month, 1)
	ahead := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, ahead+(n-1)*7)
}

// WeekdayOnOrAfter returns the first wd on or after d
func WeekdayOnOrAfter(d time.Time, wd time.Weekday) time.Time {
	ahead := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, ahead)
}

// materialize evaluates rules for ruleYear and applies observance.
// The returned entries may fall outside ruleYear (substitutes crossing New Year).
func materialize(rules []Rule, ruleYear int, obs Observance) []Entry {
	type actual struct {
		date time.Time
		rule *Rule
	}

	var actuals []actual
	for i := range rules {
		if d, ok := rules[i].dateIn(ruleYear); ok {
			actuals = append(actuals, actual{date: d, rule: &rules[i]})
		}
	}
	sort.SliceStable(actuals, func(i, j int) bool { return actuals[i].date.Before(actuals[j].date) })

	entries := make([]Entry, 0, len(actuals))
	taken := make(map[time.Time]bool, len(actuals))
	for _, a := range actuals {
		entries = append(entries, Entry{Date: a.date, Name: a.rule.Name})
		if !IsWeekend(a.date) {
			taken[a.date] = true
		}
	}

	if obs == ObserveNone || obs == "" {
		return entries
	}

	for _, a := range actuals {
		if !IsWeekend(a.date) || a.rule.NoSubstitute {
			continue
		}

		var sub time.Time
		switch obs {
		case ObserveNearest:
			if a.date.Weekday() == time.Saturday {
				sub = a.date.AddDate(0, 0, -1)
			} else {
				sub = a.date.AddDate(0, 0, 1)
			}
		case ObserveNext:
			sub = a.date.AddDate(0, 0, 1)
			for IsWeekend(sub) || taken[sub] {
				sub = sub.AddDate(0, 0, 1)
			}
		}
		taken[sub] = true
		entries = append(entries, Entry{Date: sub, Name: a.rule.Name + " (observed)", Observed: true})
	}
	return entries
}
