// Package limitation looks up statutes of limitations and checks whether a
// claim was filed before the period expired.
package limitation

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/ppiankov/legalguard/internal/jurisdiction"
	"github.com/ppiankov/legalguard/internal/refdata"
)

//go:embed data/limitations.yaml
var limitationsYAML []byte

// ErrUnknownJurisdictionOrClaim is returned when the table has no period for
// the pair. There is no default period.
var ErrUnknownJurisdictionOrClaim = errors.New("unknown jurisdiction or claim type")

// Period is a limitation period for one claim type in one jurisdiction
type Period struct {
	Jurisdiction string  `json:"jurisdiction" yaml:"jurisdiction"`
	ClaimType    string  `json:"claim_type" yaml:"claim_type"`
	Years        float64 `json:"years" yaml:"years"`
}

// Months returns the period in whole months
func (p Period) Months() int {
	return int(math.Round(p.Years * 12))
}

// Resolver maps a jurisdiction name to its canonical jurisdiction
type Resolver interface {
	Resolve(name string) (jurisdiction.Jurisdiction, bool)
}

type claimTypeDef struct {
	Name     string   `yaml:"name"`
	Synonyms []string `yaml:"synonyms"`
}

type rowDef struct {
	Name    string             `yaml:"name"`
	Code    string             `yaml:"code"`
	Aliases []string           `yaml:"aliases"`
	Periods map[string]float64 `yaml:"periods"`
}

type tableDoc struct {
	refdata.Header `yaml:",inline"`
	ClaimTypes     []claimTypeDef `yaml:"claim_types"`
	Jurisdictions  []rowDef       `yaml:"jurisdictions"`
}

// Table is the immutable limitation table
type Table struct {
	version    string
	rows       map[string]rowDef
	rowIndex   *refdata.AliasIndex
	claimIndex *refdata.AliasIndex
	resolver   Resolver
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the embedded table, resolving names through the
// embedded jurisdiction table
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(limitationsYAML, jurisdiction.DefaultTable())
		if err != nil {
			panic(fmt.Sprintf("limitation: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// NewTable builds a table from YAML. resolver may be nil, in which case only
// row names and aliases are recognised.
func NewTable(data []byte, resolver Resolver) (*Table, error) {
	var doc tableDoc
	if err := refdata.Decode("limitations", data, &doc); err != nil {
		return nil, err
	}

	t := &Table{
		version:    doc.Version,
		rows:       make(map[string]rowDef),
		rowIndex:   refdata.NewAliasIndex(),
		claimIndex: refdata.NewAliasIndex(),
		resolver:   resolver,
	}

	claimTypes := make(map[string]bool)
	for _, ct := range doc.ClaimTypes {
		claimTypes[ct.Name] = true
		if err := t.claimIndex.Add(ct.Name, ct.Synonyms...); err != nil {
			return nil, fmt.Errorf("claim type %s: %w", ct.Name, err)
		}
	}

	for _, row := range doc.Jurisdictions {
		if row.Name == "" {
			return nil, fmt.Errorf("jurisdiction row without name")
		}
		for claim, years := range row.Periods {
			if !claimTypes[claim] {
				return nil, fmt.Errorf("%s: unknown claim type %q", row.Name, claim)
			}
			months := years * 12
			if years <= 0 || math.Abs(months-math.Round(months)) > 1e-9 {
				return nil, fmt.Errorf("%s %s: period %v is not a positive whole number of months", row.Name, claim, years)
			}
		}
		t.rows[row.Name] = row

		aliases := row.Aliases
		if row.Code != "" {
			aliases = append([]string{row.Code}, aliases...)
		}
		if err := t.rowIndex.Add(row.Name, aliases...); err != nil {
			return nil, fmt.Errorf("jurisdiction %s: %w", row.Name, err)
		}
	}
	return t, nil
}

// Version returns the table version
func (t *Table) Version() string {
	return t.version
}

// ClaimType returns the canonical claim type for a name or synonym
func (t *Table) ClaimType(name string) (string, bool) {
	return t.claimIndex.Lookup(name)
}

// Jurisdiction returns the canonical row name for a jurisdiction name
func (t *Table) Jurisdiction(name string) (string, bool) {
	if row, ok := t.rowIndex.Lookup(name); ok {
		return row, true
	}
	if t.resolver == nil {
		return "", false
	}
	j, ok := t.resolver.Resolve(name)
	if !ok {
		return "", false
	}
	return t.rowIndex.Lookup(j.Code)
}

// Lookup returns the period for a claim type in a jurisdiction
func (t *Table) Lookup(claimType, jurisdictionName string) (Period, error) {
	claim, ok := t.ClaimType(claimType)
	if !ok {
		return Period{}, fmt.Errorf("%w: claim type %q", ErrUnknownJurisdictionOrClaim, claimType)
	}
	name, ok := t.Jurisdiction(jurisdictionName)
	if !ok {
		return Period{}, fmt.Errorf("%w: jurisdiction %q", ErrUnknownJurisdictionOrClaim, jurisdictionName)
	}
	years, ok := t.rows[name].Periods[claim]
	if !ok {
		return Period{}, fmt.Errorf("%w: no %s period for %s", ErrUnknownJurisdictionOrClaim, claim, name)
	}
	return Period{Jurisdiction: name, ClaimType: claim, Years: years}, nil
}
