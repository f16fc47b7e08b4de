package citation

import (
	"fmt"
	"strings"

	"github.com/ppiankov/legalguard/internal/model"
)

// Guard validates citations against a reporter table
type Guard struct {
	table       *Table
	requireYear bool
}

// Option configures a Guard
type Option func(*Guard)

// WithTable sets the reporter table (default: DefaultTable())
func WithTable(t *Table) Option {
	return func(g *Guard) {
		g.table = t
	}
}

// WithRequireYear controls whether a citation without a year is an issue
func WithRequireYear(require bool) Option {
	return func(g *Guard) {
		g.requireYear = require
	}
}

// New creates a citation guard
func New(opts ...Option) *Guard {
	g := &Guard{requireYear: true}
	for _, opt := range opts {
		opt(g)
	}
	if g.table == nil {
		g.table = DefaultTable()
	}
	return g
}

// Verify parses a case citation and appends one issue per failed check
func (g *Guard) Verify(citation string) model.CitationResult {
	c := Parse(citation)
	result := model.CitationResult{
		Citation:  citation,
		Plaintiff: c.Plaintiff,
		Defendant: c.Defendant,
		Volume:    c.Volume,
		Reporter:  c.Reporter,
		Page:      c.Page,
		Pinpoint:  c.Pinpoint,
		Court:     c.Court,
		Year:      c.Year,
	}

	var issues []string
	if !c.HasCaseName {
		issues = append(issues, "missing case name (expected 'Plaintiff v. Defendant')")
	}

	if !c.HasLocator {
		issues = append(issues, "missing volume, reporter or page (expected 'Volume Reporter Page')")
	} else {
		if c.Volume <= 0 {
			issues = append(issues, "volume must be a positive number")
		}
		if c.Page <= 0 {
			issues = append(issues, "page must be a positive number")
		}
	}

	if c.Year == 0 && g.requireYear {
		issues = append(issues, "missing year (expected '(Court Year)')")
	}

	if c.HasLocator {
		reporter, known := g.table.Reporter(c.Reporter)
		switch {
		case !known:
			if hint, ok := g.table.Suggest(c.Reporter); ok {
				issues = append(issues, fmt.Sprintf("unknown reporter %q; did you mean %q?", c.Reporter, hint))
			} else {
				issues = append(issues, fmt.Sprintf("unknown reporter %q", c.Reporter))
			}
		default:
			result.Reporter = reporter.Abbreviation
			issues = append(issues, checkSeries(reporter, c)...)
		}
	}

	result.Issues = issues
	result.Valid = len(issues) == 0
	if result.Valid {
		result.Message = fmt.Sprintf("Valid citation: %s v. %s, %d %s %d (%d)",
			c.Plaintiff, c.Defendant, c.Volume, result.Reporter, c.Page, c.Year)
		if c.Year == 0 {
			result.Message = fmt.Sprintf("Valid citation: %s v. %s, %d %s %d",
				c.Plaintiff, c.Defendant, c.Volume, result.Reporter, c.Page)
		}
	} else {
		result.Message = "Invalid citation: " + strings.Join(issues, "; ")
	}
	return result
}

// checkSeries validates the year and volume against the reporter's publication range
func checkSeries(r Reporter, c Components) []string {
	var issues []string
	if c.Year != 0 && c.Year < r.Start {
		issues = append(issues, fmt.Sprintf("year %d is before %s began publication (%d)", c.Year, r.Abbreviation, r.Start))
	}
	if c.Year != 0 && r.Closed() && c.Year > r.End {
		issues = append(issues, fmt.Sprintf("year %d is after %s ceased publication (%d)", c.Year, r.Abbreviation, r.End))
	}
	if r.MaxVolume > 0 && c.Volume > r.MaxVolume {
		issues = append(issues, fmt.Sprintf("volume %d exceeds the last %s volume (%d)", c.Volume, r.Abbreviation, r.MaxVolume))
	}
	return issues
}

// VerifyBatch verifies each citation and totals the outcome
func (g *Guard) VerifyBatch(citations []string) model.CitationBatchResult {
	result := model.CitationBatchResult{Total: len(citations)}

	for _, c := range citations {
		r := g.Verify(c)
		if r.Valid {
			result.ValidCount++
			continue
		}
		result.InvalidCount++
		result.Failures = append(result.Failures, fmt.Sprintf("%s: %s", c, strings.Join(r.Issues, "; ")))
	}

	result.Valid = result.InvalidCount == 0
	if result.Valid {
		result.Message = fmt.Sprintf("All %d citations are valid", result.Total)
	} else {
		result.Message = fmt.Sprintf("%d of %d citations have issues", result.InvalidCount, result.Total)
	}
	return result
}
