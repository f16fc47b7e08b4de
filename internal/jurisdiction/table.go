// Package jurisdiction checks choice-of-law, forum selection and convention
// clauses against a jurisdiction table and a set of CEL rules.
package jurisdiction

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/ppiankov/legalguard/internal/refdata"
)

//go:embed data/jurisdictions.yaml
var jurisdictionsYAML []byte

// Legal systems
const (
	CommonLaw = "common_law"
	CivilLaw  = "civil_law"
	Mixed     = "mixed"
	Religious = "religious"
)

// Jurisdiction is a country or a sub-national legal system
type Jurisdiction struct {
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Country     string   `yaml:"country"`
	Kind        string   `yaml:"kind"`
	LegalSystem string   `yaml:"legal_system"`
	Aliases     []string `yaml:"aliases"`
}

// Convention is an international convention and its contracting states
type Convention struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	Members []string `yaml:"members"` // country codes or group names
}

type tableDoc struct {
	refdata.Header `yaml:",inline"`
	Jurisdictions  []Jurisdiction      `yaml:"jurisdictions"`
	Rules          []RuleDef           `yaml:"rules"`
	Groups         map[string][]string `yaml:"groups"`
	Conventions    []Convention        `yaml:"conventions"`
}

// Table is the immutable jurisdiction, rule and convention table
type Table struct {
	version       string
	jurisdictions map[string]Jurisdiction
	index         *refdata.AliasIndex
	conventions   map[string]Convention
	convIndex     *refdata.AliasIndex
	members       map[string]map[string]bool // convention code -> expanded members
	rules         *RuleSet
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the embedded table, loaded once
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(jurisdictionsYAML)
		if err != nil {
			panic(fmt.Sprintf("jurisdiction: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// NewTable builds a table from YAML, compiling every rule
func NewTable(data []byte) (*Table, error) {
	var doc tableDoc
	if err := refdata.Decode("jurisdictions", data, &doc); err != nil {
		return nil, err
	}

	t := &Table{
		version:       doc.Version,
		jurisdictions: make(map[string]Jurisdiction),
		index:         refdata.NewAliasIndex(),
		conventions:   make(map[string]Convention),
		convIndex:     refdata.NewAliasIndex(),
		members:       make(map[string]map[string]bool),
	}

	for _, j := range doc.Jurisdictions {
		if j.Code == "" || j.Country == "" || j.LegalSystem == "" {
			return nil, fmt.Errorf("jurisdiction %q: code, country and legal_system are required", j.Name)
		}
		if _, dup := t.jurisdictions[j.Code]; dup {
			return nil, fmt.Errorf("jurisdiction %s: duplicate code", j.Code)
		}
		t.jurisdictions[j.Code] = j
		if err := t.index.Add(j.Code, append([]string{j.Name}, j.Aliases...)...); err != nil {
			return nil, fmt.Errorf("jurisdiction %s: %w", j.Code, err)
		}
	}

	for _, c := range doc.Conventions {
		if c.Code == "" || len(c.Members) == 0 {
			return nil, fmt.Errorf("convention %q: code and members are required", c.Name)
		}
		t.conventions[c.Code] = c
		if err := t.convIndex.Add(c.Code, append([]string{c.Name}, c.Aliases...)...); err != nil {
			return nil, fmt.Errorf("convention %s: %w", c.Code, err)
		}

		set := make(map[string]bool)
		for _, m := range c.Members {
			set[m] = true
			for _, country := range doc.Groups[m] {
				set[country] = true
			}
		}
		t.members[c.Code] = set
	}

	rules, err := CompileRules(doc.Rules)
	if err != nil {
		return nil, err
	}
	t.rules = rules
	return t, nil
}

// Version returns the table version
func (t *Table) Version() string {
	return t.version
}

// Resolve looks up a jurisdiction by code, name or alias
func (t *Table) Resolve(name string) (Jurisdiction, bool) {
	code, ok := t.index.Lookup(name)
	if !ok {
		return Jurisdiction{}, false
	}
	return t.jurisdictions[code], true
}

// Convention looks up a convention by code, name or alias
func (t *Table) Convention(name string) (Convention, bool) {
	code, ok := t.convIndex.Lookup(name)
	if !ok {
		return Convention{}, false
	}
	return t.conventions[code], true
}

// IsMember reports whether country (or group code) is a contracting party
func (t *Table) IsMember(convention, country string) bool {
	return t.members[convention][country]
}

// Conventions returns the convention codes in sorted order
func (t *Table) Conventions() []string {
	codes := make([]string, 0, len(t.conventions))
	for code := range t.conventions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Rules returns the compiled rule set
func (t *Table) Rules() *RuleSet {
	return t.rules
}
