// Package constraint translates contract clauses into numeric bound atoms and
// decides their joint satisfiability by per-axis interval intersection. A second
// pass reads permissions, prohibitions and exclusive grants from clause text.
package constraint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/legalguard/internal/model"
	"github.com/ppiankov/legalguard/internal/refdata"
)

// Op is a comparison operator bounding an axis
type Op string

const (
	LE Op = "<="
	LT Op = "<"
	EQ Op = "="
	GE Op = ">="
	GT Op = ">"
)

// Atom is one clause's bound on one axis: axis Op value
type Atom struct {
	ClauseID string
	Axis     string
	Op       Op
	Value    decimal.Decimal
	Cue      string // lexical cue or "relation" when explicit
}

func (a Atom) String() string {
	return fmt.Sprintf("%s: %s %s %s", a.ClauseID, a.Axis, a.Op, a.Value)
}

// ParseRelation parses an explicit relation operator ("<=", "≤", ">", ...)
func ParseRelation(s string) (Op, bool) {
	switch strings.TrimSpace(s) {
	case "<=", "≤", "=<":
		return LE, true
	case "<":
		return LT, true
	case "=", "==":
		return EQ, true
	case ">=", "≥", "=>":
		return GE, true
	case ">":
		return GT, true
	}
	return "", false
}

// cueGroup is a set of phrases that all imply the same operator.
// bound is false for phrases that state no numeric bound at all.
type cueGroup struct {
	op    Op
	bound bool
	cues  []string
}

// cueGroups in priority order
var cueGroups = []cueGroup{
	{bound: false, cues: []string{"immediately", "at any time", "at will"}},
	{op: EQ, bound: true, cues: []string{"exactly", "fixed at", "equal to"}},
	{op: LE, bound: true, cues: []string{"not exceed", "not exceeding", "no more than", "not more than", "at most", "up to", "capped at", "cap of", "maximum", "ceiling", "within"}},
	{op: LT, bound: true, cues: []string{"less than", "fewer than", "before", "prior to"}},
	{op: GE, bound: true, cues: []string{"not less than", "no less than", "at least", "minimum", "floor", "penalty", "notice of", "days notice", "days' notice", "notice"}},
	{op: GT, bound: true, cues: []string{"more than", "greater than", "after", "exceeding"}},
}

// leadingCues only bound a value when they introduce the number
// ("before 30 days"). "60 days prior to the renewal date" anchors a date.
var leadingCues = map[string]bool{
	"before":   true,
	"prior to": true,
	"after":    true,
}

type cuePattern struct {
	group int
	cue   string
	re    *regexp.Regexp
}

var cuePatterns = compileCues()

func compileCues() []cuePattern {
	var out []cuePattern
	for i, g := range cueGroups {
		for _, cue := range g.cues {
			expr := `\b` + regexp.QuoteMeta(cue) + `\b`
			if leadingCues[cue] {
				expr = `\b` + regexp.QuoteMeta(cue) + `\s+(?:us\$|\$|€|£)?\d`
			}
			out = append(out, cuePattern{
				group: i,
				cue:   cue,
				re:    regexp.MustCompile(expr),
			})
		}
	}
	return out
}

type cueMatch struct {
	group      int
	cue        string
	start, end int
}

// matchCue finds the governing cue in text. Matches nested inside a longer
// match are discarded ("less than" inside "not less than"); of the rest the
// highest-priority group wins, then the earliest position.
func matchCue(text string) (cueMatch, bool) {
	lower := strings.ToLower(text)

	var matches []cueMatch
	for _, p := range cuePatterns {
		for _, loc := range p.re.FindAllStringIndex(lower, -1) {
			matches = append(matches, cueMatch{group: p.group, cue: p.cue, start: loc[0], end: loc[1]})
		}
	}

	best, found := cueMatch{}, false
	for i, m := range matches {
		nested := false
		for j, o := range matches {
			if i != j && o.start <= m.start && m.end <= o.end && (o.end-o.start) > (m.end-m.start) {
				nested = true
				break
			}
		}
		if nested {
			continue
		}
		if !found || m.group < best.group || (m.group == best.group && m.start < best.start) {
			best, found = m, true
		}
	}
	return best, found
}

// units maps folded unit spellings to an axis unit. Units that are not
// interconvertible stay separate axes.
var units = map[string]string{
	"DAY":           "DAYS",
	"DAYS":          "DAYS",
	"CALENDAR DAY":  "DAYS",
	"CALENDAR DAYS": "DAYS",
	"BUSINESS DAY":  "BUSINESS_DAYS",
	"BUSINESS DAYS": "BUSINESS_DAYS",
	"WORKING DAY":   "BUSINESS_DAYS",
	"WORKING DAYS":  "BUSINESS_DAYS",
	"WEEK":          "WEEKS",
	"WEEKS":         "WEEKS",
	"MONTH":         "MONTHS",
	"MONTHS":        "MONTHS",
	"YEAR":          "YEARS",
	"YEARS":         "YEARS",
	"USD":           "USD",
	"US":            "USD",
	"DOLLAR":        "USD",
	"DOLLARS":       "USD",
	"EUR":           "EUR",
	"EURO":          "EUR",
	"EUROS":         "EUR",
	"GBP":           "GBP",
	"POUND":         "GBP",
	"POUNDS":        "GBP",
	"PERCENT":       "PERCENT",
	"PERCENTAGE":    "PERCENT",
}

// symbols are unit spellings Fold would erase
var symbols = map[string]string{
	"$":   "USD",
	"US$": "USD",
	"€":   "EUR",
	"£":   "GBP",
	"%":   "PERCENT",
}

// NormalizeUnit maps a unit spelling to its axis unit ("days" -> DAYS, "$" -> USD)
func NormalizeUnit(unit string) string {
	unit = strings.TrimSpace(unit)
	if u, ok := symbols[unit]; ok {
		return u
	}
	folded := refdata.Fold(unit)
	if u, ok := units[folded]; ok {
		return u
	}
	return strings.ReplaceAll(folded, " ", "_")
}

// NormalizeCategory upper-cases a category; empty means OTHER
func NormalizeCategory(category string) string {
	folded := strings.ReplaceAll(refdata.Fold(category), " ", "_")
	if folded == "" {
		return "OTHER"
	}
	return folded
}

// AxisOf is the comparison axis of a clause: category plus normalised unit
func AxisOf(category, unit string) string {
	u := NormalizeUnit(unit)
	if u == "" {
		return NormalizeCategory(category)
	}
	return NormalizeCategory(category) + "/" + u
}

var plainDecimal = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)$`)

// parseValue parses a clause's numeric value ("10,000", "$10000.50")
func parseValue(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "_", "", "$", "", " ", "").Replace(strings.TrimSpace(s))
	if !plainDecimal.MatchString(clean) {
		return decimal.Zero, fmt.Errorf("not a plain decimal: %q", s)
	}
	return decimal.NewFromString(clean)
}

// Translate maps a clause to an atom. ok is false when the clause states no
// bound (no value, a no-bound cue, or no cue at all). err reports a malformed
// value or relation.
func Translate(c model.Clause) (atom Atom, ok bool, err error) {
	if strings.TrimSpace(c.Value) == "" {
		return Atom{}, false, nil
	}

	value, err := parseValue(c.Value)
	if err != nil {
		return Atom{}, false, fmt.Errorf("clause %s: numeric_value %q is not a decimal number", c.ID, c.Value)
	}

	atom = Atom{
		ClauseID: c.ID,
		Axis:     AxisOf(c.Category, c.Unit),
		Value:    value,
	}

	if c.Relation != "" {
		op, valid := ParseRelation(c.Relation)
		if !valid {
			return Atom{}, false, fmt.Errorf("clause %s: relation %q is not one of <, <=, =, >=, >", c.ID, c.Relation)
		}
		atom.Op = op
		atom.Cue = "relation"
		return atom, true, nil
	}

	m, found := matchCue(c.Text)
	if !found || !cueGroups[m.group].bound {
		return Atom{}, false, nil
	}
	atom.Op = cueGroups[m.group].op
	atom.Cue = m.cue
	return atom, true, nil
}

// Model is the set of atoms and statements derived from a clause list
type Model struct {
	Clauses    int
	Atoms      []Atom
	Statements []Statement
	Ignored    []string // clause ids that produced neither an atom nor a statement
	Issues     []string // malformed input; any issue makes the model unusable
}

// Build translates every clause, recording duplicate ids and malformed values as issues
func Build(clauses []model.Clause) Model {
	m := Model{Clauses: len(clauses)}
	seen := make(map[string]bool, len(clauses))

	for i, c := range clauses {
		if c.ID == "" {
			m.Issues = append(m.Issues, fmt.Sprintf("clause #%d has no id", i+1))
			continue
		}
		if seen[c.ID] {
			m.Issues = append(m.Issues, fmt.Sprintf("duplicate clause id %q", c.ID))
			continue
		}
		seen[c.ID] = true

		statements := Statements(c.ID, c.Text)
		m.Statements = append(m.Statements, statements...)

		atom, ok, err := Translate(c)
		switch {
		case err != nil:
			m.Issues = append(m.Issues, err.Error())
		case ok:
			m.Atoms = append(m.Atoms, atom)
		case len(statements) == 0:
			m.Ignored = append(m.Ignored, c.ID)
		}
	}
	return m
}
