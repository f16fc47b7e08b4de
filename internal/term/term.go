// Package term parses contract term expressions such as "30 business days" or
// "net 45 days" into a DateOffset.
package term

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Unit is the arithmetic a DateOffset's magnitude is applied with
type Unit string

const (
	CalendarDay Unit = "calendar_day"
	BusinessDay Unit = "business_day"
	Month       Unit = "month"
	Year        Unit = "year"
)

// DateOffset is a parsed term: a non-negative magnitude in one unit
type DateOffset struct {
	Magnitude int  `json:"magnitude" yaml:"magnitude"`
	Unit      Unit `json:"unit" yaml:"unit"`
}

// String renders the offset in a canonical form ("30 business days")
func (o DateOffset) String() string {
	noun := strings.ReplaceAll(string(o.Unit), "_", " ")
	if o.Magnitude != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", o.Magnitude, noun)
}

var (
	ErrUnknownUnit       = errors.New("unknown unit")
	ErrMissingMagnitude  = errors.New("missing magnitude")
	ErrNegativeMagnitude = errors.New("negative magnitude")
	ErrMagnitudeTooLarge = errors.New("magnitude too large")
)

// MaxMagnitude bounds each unit at roughly a thousand years. No contract term
// is longer, and the bound keeps every date computation small.
var MaxMagnitude = map[Unit]int{
	CalendarDay: 366_000,
	BusinessDay: 261_000,
	Month:       12_000,
	Year:        1_000,
}

// ParseError describes why a term could not be parsed
type ParseError struct {
	Term string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse term %q: %v", e.Term, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type unitSpec struct {
	unit   Unit
	factor int
}

// units maps a normalised unit phrase to its arithmetic.
// Weeks are expressed in their underlying day unit.
var units = map[string]unitSpec{
	"day":             {CalendarDay, 1},
	"days":            {CalendarDay, 1},
	"calendar day":    {CalendarDay, 1},
	"calendar days":   {CalendarDay, 1},
	"business day":    {BusinessDay, 1},
	"business days":   {BusinessDay, 1},
	"working day":     {BusinessDay, 1},
	"working days":    {BusinessDay, 1},
	"week":            {CalendarDay, 7},
	"weeks":           {CalendarDay, 7},
	"calendar week":   {CalendarDay, 7},
	"business week":   {BusinessDay, 5},
	"business weeks":  {BusinessDay, 5},
	"working week":    {BusinessDay, 5},
	"working weeks":   {BusinessDay, 5},
	"month":           {Month, 1},
	"months":          {Month, 1},
	"calendar month":  {Month, 1},
	"calendar months": {Month, 1},
	"year":            {Year, 1},
	"years":           {Year, 1},
}

var (
	// "30-day" and "30-business-day" become "30 day" and "30 business day"
	hyphenForm = regexp.MustCompile(`(\d)-([a-z])`)
	spaces     = regexp.MustCompile(`\s+`)
)

// Parse parses "<integer> <unit>", case-insensitively, with an optional leading
// "net" or "within" and an optional trailing "period". It never guesses: anything
// else is a *ParseError.
func Parse(s string) (DateOffset, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = hyphenForm.ReplaceAllString(norm, "$1 $2")
	norm = strings.ReplaceAll(norm, "-", " -")
	norm = strings.ReplaceAll(norm, "(", " ")
	norm = strings.ReplaceAll(norm, ")", " ")
	norm = strings.TrimSpace(spaces.ReplaceAllString(norm, " "))

	for _, prefix := range []string{"within ", "net "} {
		norm = strings.TrimPrefix(norm, prefix)
	}
	norm = strings.TrimSuffix(norm, " period")

	fields := strings.SplitN(norm, " ", 2)
	if len(fields) == 0 || fields[0] == "" {
		return DateOffset{}, &ParseError{Term: s, Err: ErrMissingMagnitude}
	}

	n, err := strconv.Atoi(fields[0])
	if errors.Is(err, strconv.ErrRange) {
		return DateOffset{}, &ParseError{Term: s, Err: ErrMagnitudeTooLarge}
	}
	if err != nil {
		return DateOffset{}, &ParseError{Term: s, Err: ErrMissingMagnitude}
	}
	if n < 0 {
		return DateOffset{}, &ParseError{Term: s, Err: ErrNegativeMagnitude}
	}
	if len(fields) < 2 {
		return DateOffset{}, &ParseError{Term: s, Err: fmt.Errorf("%w: none given", ErrUnknownUnit)}
	}

	spec, ok := units[fields[1]]
	if !ok {
		return DateOffset{}, &ParseError{Term: s, Err: fmt.Errorf("%w: %q", ErrUnknownUnit, fields[1])}
	}

	if limit := MaxMagnitude[spec.unit]; n > limit/spec.factor {
		return DateOffset{}, &ParseError{Term: s, Err: fmt.Errorf("%w: at most %d %s", ErrMagnitudeTooLarge, limit/spec.factor, fields[1])}
	}

	return DateOffset{Magnitude: n * spec.factor, Unit: spec.unit}, nil
}
