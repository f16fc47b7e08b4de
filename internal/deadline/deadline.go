// Package deadline verifies claimed contractual deadlines against business-day
// arithmetic over regional holiday calendars.
package deadline

import (
	"fmt"
	"time"

	"github.com/ppiankov/legalguard/internal/calendar"
	"github.com/ppiankov/legalguard/internal/model"
	"github.com/ppiankov/legalguard/internal/term"
)

// Guard verifies deadline claims
type Guard struct {
	registry           *calendar.Registry
	defaultCountry     string
	defaultSubdivision string
}

// Option configures a Guard
type Option func(*Guard)

// WithRegistry sets the holiday registry (default: calendar.Default())
func WithRegistry(r *calendar.Registry) Option {
	return func(g *Guard) {
		g.registry = r
	}
}

// WithDefaultCalendar sets the calendar used when an input names no country
func WithDefaultCalendar(country, subdivision string) Option {
	return func(g *Guard) {
		g.defaultCountry = country
		g.defaultSubdivision = subdivision
	}
}

// New creates a deadline guard
func New(opts ...Option) *Guard {
	g := &Guard{defaultCountry: "US"}
	for _, opt := range opts {
		opt(g)
	}
	if g.registry == nil {
		g.registry = calendar.Default()
	}
	return g
}

// calendarFor resolves the input's country/subdivision, applying the defaults
func (g *Guard) calendarFor(country, subdivision string) (*calendar.Calendar, string, string, []string) {
	if country == "" {
		country = g.defaultCountry
		if subdivision == "" {
			subdivision = g.defaultSubdivision
		}
	}
	cal, warnings := g.registry.Calendar(country, subdivision)
	return cal, country, subdivision, warnings
}

// Compute applies offset to start over cal
func Compute(start time.Time, offset term.DateOffset, cal *calendar.Calendar) time.Time {
	switch offset.Unit {
	case term.BusinessDay:
		return calendar.AddBusinessDays(start, offset.Magnitude, cal)
	case term.Month:
		return calendar.AddMonths(start, offset.Magnitude)
	case term.Year:
		return calendar.AddYears(start, offset.Magnitude)
	default:
		return calendar.AddCalendarDays(start, offset.Magnitude)
	}
}

// Verify checks that ClaimedDeadline is Term after SigningDate. Malformed input
// produces an unverified result naming the failing field.
func (g *Guard) Verify(in model.DeadlineInput) model.DeadlineResult {
	cal, country, subdivision, warnings := g.calendarFor(in.Country, in.Subdivision)

	result := model.DeadlineResult{
		SigningDate:     in.SigningDate,
		Term:            in.Term,
		ClaimedDeadline: in.ClaimedDeadline,
		Country:         country,
		Subdivision:     subdivision,
		Calendar:        cal.ID,
		Warnings:        warnings,
	}

	signing, err := calendar.ParseDate(in.SigningDate)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: signing_date: %v", err)
		return result
	}
	result.SigningDate = calendar.FormatDate(signing)

	offset, err := term.Parse(in.Term)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: term: %v", err)
		return result
	}
	result.TermParsed = offset.String()

	claimed, err := calendar.ParseDate(in.ClaimedDeadline)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: claimed_deadline: %v", err)
		return result
	}
	result.ClaimedDeadline = calendar.FormatDate(claimed)

	computed := Compute(signing, offset, cal)
	result.ComputedDeadline = calendar.FormatDate(computed)
	result.DifferenceDays = calendar.DaysBetween(computed, claimed)
	result.Verified = result.DifferenceDays == 0

	if result.Verified {
		result.Message = fmt.Sprintf("Deadline verified: %s after %s is %s (%s calendar)",
			offset, result.SigningDate, result.ComputedDeadline, cal.ID)
	} else {
		result.Message = fmt.Sprintf("Deadline mismatch: %s after %s is %s (%s calendar), claimed %s, difference %+d days",
			offset, result.SigningDate, result.ComputedDeadline, cal.ID, result.ClaimedDeadline, result.DifferenceDays)
	}
	return result
}

// BusinessDaysBetween counts business days in (From, To]. When Claimed is set
// the count is verified against it.
func (g *Guard) BusinessDaysBetween(in model.BusinessDaysInput) model.BusinessDaysResult {
	cal, country, subdivision, warnings := g.calendarFor(in.Country, in.Subdivision)

	result := model.BusinessDaysResult{
		From:        in.From,
		To:          in.To,
		Country:     country,
		Subdivision: subdivision,
		Calendar:    cal.ID,
		Claimed:     in.Claimed,
		Warnings:    warnings,
	}

	from, err := calendar.ParseDate(in.From)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot count: from: %v", err)
		return result
	}
	to, err := calendar.ParseDate(in.To)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot count: to: %v", err)
		return result
	}
	result.From = calendar.FormatDate(from)
	result.To = calendar.FormatDate(to)

	result.BusinessDays = calendar.BusinessDaysBetween(from, to, cal)
	result.CalendarDays = calendar.DaysBetween(from, to)

	switch {
	case in.Claimed == nil:
		result.Verified = true
		result.Message = fmt.Sprintf("%d business days from %s to %s (%s calendar)", result.BusinessDays, result.From, result.To, cal.ID)
	case *in.Claimed == result.BusinessDays:
		result.Verified = true
		result.Message = fmt.Sprintf("Business day count verified: %d from %s to %s (%s calendar)", result.BusinessDays, result.From, result.To, cal.ID)
	default:
		result.Message = fmt.Sprintf("Business day count mismatch: %d from %s to %s (%s calendar), claimed %d",
			result.BusinessDays, result.From, result.To, cal.ID, *in.Claimed)
	}
	return result
}
