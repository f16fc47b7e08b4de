package limitation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/legalguard/internal/calendar"
	"github.com/ppiankov/legalguard/internal/model"
)

// Guard verifies statute-of-limitations claims
type Guard struct {
	table *Table
}

// Option configures a Guard
type Option func(*Guard)

// WithTable sets the limitation table (default: DefaultTable())
func WithTable(t *Table) Option {
	return func(g *Guard) {
		g.table = t
	}
}

// New creates a limitation guard
func New(opts ...Option) *Guard {
	g := &Guard{}
	for _, opt := range opts {
		opt(g)
	}
	if g.table == nil {
		g.table = DefaultTable()
	}
	return g
}

// Expiration is the last day a claim may be filed: incident plus the period
// in whole months, day clamped to the target month
func Expiration(incident time.Time, p Period) time.Time {
	return calendar.AddMonths(incident, p.Months())
}

// GetLimitationPeriod is the table lookup without date arithmetic
func (g *Guard) GetLimitationPeriod(claimType, jurisdiction string) (Period, error) {
	return g.table.Lookup(claimType, jurisdiction)
}

// Verify checks that FilingDate is on or before the period's expiration
func (g *Guard) Verify(in model.LimitationInput) model.LimitationResult {
	result := model.LimitationResult{
		ClaimType:    in.ClaimType,
		Jurisdiction: in.Jurisdiction,
		IncidentDate: in.IncidentDate,
		FilingDate:   in.FilingDate,
	}

	incident, err := calendar.ParseDate(in.IncidentDate)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: incident_date: %v", err)
		return result
	}
	filing, err := calendar.ParseDate(in.FilingDate)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: filing_date: %v", err)
		return result
	}
	result.IncidentDate = calendar.FormatDate(incident)
	result.FilingDate = calendar.FormatDate(filing)

	period, err := g.table.Lookup(in.ClaimType, in.Jurisdiction)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: %v", err)
		return result
	}
	result.CanonicalClaimType = period.ClaimType
	result.CanonicalJurisdiction = period.Jurisdiction
	result.LimitationYears = period.Years

	expiration := Expiration(incident, period)
	result.ExpirationDate = calendar.FormatDate(expiration)
	result.DaysRemaining = calendar.DaysBetween(filing, expiration)
	result.Verified = !filing.After(expiration)

	span := fmt.Sprintf("%s %s period (%s) from %s", period.Jurisdiction, period.ClaimType,
		model.FormatYears(period.Years), result.IncidentDate)
	if result.Verified {
		result.Message = fmt.Sprintf("Within limitation period: %s expires %s; %d days remaining at filing",
			span, result.ExpirationDate, result.DaysRemaining)
	} else {
		result.Message = fmt.Sprintf("Limitation period expired: %s expired %s; filing on %s is %d days late",
			span, result.ExpirationDate, result.FilingDate, -result.DaysRemaining)
	}
	return result
}

// CompareJurisdictions lists the claim type's period in each jurisdiction,
// shortest first. Jurisdictions without a period are listed as unknown.
func (g *Guard) CompareJurisdictions(in model.LimitationCompareInput) model.LimitationComparison {
	result := model.LimitationComparison{ClaimType: in.ClaimType}

	if claim, ok := g.table.ClaimType(in.ClaimType); ok {
		result.ClaimType = claim
	}

	var periods []Period
	for _, j := range in.Jurisdictions {
		p, err := g.table.Lookup(in.ClaimType, j)
		if err != nil {
			result.Unknown = append(result.Unknown, j)
			continue
		}
		periods = append(periods, p)
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Years < periods[j].Years
	})
	for _, p := range periods {
		result.Periods = append(result.Periods, fmt.Sprintf("%s: %s", p.Jurisdiction, model.FormatYears(p.Years)))
	}

	result.Verified = len(periods) > 0 && len(result.Unknown) == 0
	if len(periods) > 0 {
		shortest, longest := periods[0], periods[len(periods)-1]
		result.Shortest = shortest.Jurisdiction
		result.Longest = longest.Jurisdiction
		result.Message = fmt.Sprintf("%s: shortest %s (%s), longest %s (%s)", result.ClaimType,
			shortest.Jurisdiction, model.FormatYears(shortest.Years),
			longest.Jurisdiction, model.FormatYears(longest.Years))
	} else {
		result.Message = fmt.Sprintf("%s: no known limitation periods", result.ClaimType)
	}
	if len(result.Unknown) > 0 {
		result.Message += fmt.Sprintf("; unknown: %s", strings.Join(result.Unknown, ", "))
	}
	return result
}
