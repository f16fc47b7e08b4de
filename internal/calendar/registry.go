package calendar

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ppiankov/legalguard/internal/cache"
	"github.com/ppiankov/legalguard/internal/refdata"
)

//go:embed data/holidays.yaml
var holidaysYAML []byte

// BaseID identifies the weekends-only calendar used when no table matches
const BaseID = "WEEKENDS"

type holidayTable struct {
	refdata.Header `yaml:",inline"`
	Countries      []countryDef `yaml:"countries"`
}

type countryDef struct {
	Code               string           `yaml:"code"`
	Name               string           `yaml:"name"`
	Aliases            []string         `yaml:"aliases"`
	Observance         Observance       `yaml:"observance"`
	DefaultSubdivision string           `yaml:"default_subdivision"`
	Holidays           []Rule           `yaml:"holidays"`
	Subdivisions       []subdivisionDef `yaml:"subdivisions"`
}

type subdivisionDef struct {
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Aliases  []string `yaml:"aliases"`
	SameAs   string   `yaml:"same_as"`
	Holidays []Rule   `yaml:"holidays"`
}

type countryEntry struct {
	def          countryDef
	calendar     *Calendar
	subdivisions map[string]*Calendar
	subIndex     *refdata.AliasIndex
}

// Registry resolves (country, subdivision) names to holiday calendars
type Registry struct {
	version   string
	countries map[string]*countryEntry
	index     *refdata.AliasIndex
	// subdivision names across all countries, for "California" or "Scotland" given as a country
	regionIndex *refdata.AliasIndex
	base        *Calendar
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded holiday table.
// It is built once and shared; a corrupt table panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(holidaysYAML, cache.NewMemoryCache())
		if err != nil {
			panic(fmt.Sprintf("calendar: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// NewRegistry builds a registry from a YAML holiday table. Materialised years
// are memoised in memo.
func NewRegistry(data []byte, memo cache.Cache) (*Registry, error) {
	if memo == nil {
		return nil, fmt.Errorf("nil cache")
	}

	var table holidayTable
	if err := refdata.Decode("holidays", data, &table); err != nil {
		return nil, err
	}

	r := &Registry{
		version:     table.Version,
		countries:   make(map[string]*countryEntry, len(table.Countries)),
		index:       refdata.NewAliasIndex(),
		regionIndex: refdata.NewAliasIndex(),
		base:        &Calendar{ID: BaseID, Name: "Weekends only", memo: memo},
	}

	for _, def := range table.Countries {
		if err := r.addCountry(def, memo); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) addCountry(def countryDef, memo cache.Cache) error {
	if def.Code == "" {
		return fmt.Errorf("country without code")
	}
	if _, dup := r.countries[def.Code]; dup {
		return fmt.Errorf("duplicate country %s", def.Code)
	}
	if err := compileRules(def.Holidays); err != nil {
		return fmt.Errorf("country %s: %w", def.Code, err)
	}
	if err := r.index.Add(def.Code, append([]string{def.Name}, def.Aliases...)...); err != nil {
		return err
	}

	entry := &countryEntry{
		def: def,
		calendar: &Calendar{
			ID:         def.Code,
			Country:    def.Code,
			Name:       def.Name,
			observance: def.Observance,
			rules:      def.Holidays,
			memo:       memo,
		},
		subdivisions: make(map[string]*Calendar, len(def.Subdivisions)),
		subIndex:     refdata.NewAliasIndex(),
	}

	byCode := make(map[string]subdivisionDef, len(def.Subdivisions))
	for _, sub := range def.Subdivisions {
		byCode[sub.Code] = sub
	}

	for _, sub := range def.Subdivisions {
		rules := sub.Holidays
		if sub.SameAs != "" {
			src, ok := byCode[sub.SameAs]
			if !ok {
				return fmt.Errorf("subdivision %s-%s: same_as unknown %q", def.Code, sub.Code, sub.SameAs)
			}
			rules = append(append([]Rule{}, src.Holidays...), sub.Holidays...)
		}
		if err := compileRules(rules); err != nil {
			return fmt.Errorf("subdivision %s-%s: %w", def.Code, sub.Code, err)
		}

		merged := make([]Rule, 0, len(def.Holidays)+len(rules))
		merged = append(merged, entry.calendar.rules...)
		merged = append(merged, rules...)

		id := def.Code + "-" + sub.Code
		entry.subdivisions[sub.Code] = &Calendar{
			ID:          id,
			Country:     def.Code,
			Subdivision: sub.Code,
			Name:        sub.Name,
			observance:  def.Observance,
			rules:       merged,
			memo:        memo,
		}
		if err := entry.subIndex.Add(sub.Code, append([]string{sub.Name}, sub.Aliases...)...); err != nil {
			return fmt.Errorf("country %s: %w", def.Code, err)
		}
		if err := r.regionIndex.Add(id, append([]string{sub.Name}, sub.Aliases...)...); err != nil {
			return err
		}
	}

	if d := def.DefaultSubdivision; d != "" {
		if _, ok := entry.subdivisions[d]; !ok {
			return fmt.Errorf("country %s: default subdivision %q not defined", def.Code, d)
		}
	}

	r.countries[def.Code] = entry
	return nil
}

func compileRules(rules []Rule) error {
	for i := range rules {
		if err := rules[i].compile(); err != nil {
			return err
		}
	}
	return nil
}

// Version returns the holiday table version
func (r *Registry) Version() string {
	return r.version
}

// Countries returns the supported country codes, sorted
func (r *Registry) Countries() []string {
	codes := make([]string, 0, len(r.countries))
	for code := range r.countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Base returns the weekends-only calendar
func (r *Registry) Base() *Calendar {
	return r.base
}

// Calendar resolves a country and optional subdivision to a calendar.
// It never fails: unknown names fall back to a coarser calendar and the
// fallback is described in the returned warnings.
func (r *Registry) Calendar(country, subdivision string) (*Calendar, []string) {
	var warnings []string

	code, ok := r.index.Lookup(country)
	if !ok {
		// "England", "California": a region name given as the country
		id, found := r.regionIndex.Lookup(country)
		if !found {
			if country == "" {
				warnings = append(warnings, "no country given; using weekends-only calendar")
			} else {
				warnings = append(warnings, fmt.Sprintf("no holiday table for country %q; using weekends-only calendar", country))
			}
			return r.base, warnings
		}
		cc, sub := splitID(id)
		if subdivision == "" {
			subdivision = sub
		}
		code = cc
	}

	entry := r.countries[code]
	if subdivision == "" {
		if d := entry.def.DefaultSubdivision; d != "" {
			return entry.subdivisions[d], warnings
		}
		return entry.calendar, warnings
	}

	subCode, ok := entry.subIndex.Lookup(subdivision)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("no holiday table for subdivision %q of %s; using %s national calendar", subdivision, code, code))
		return entry.calendar, warnings
	}
	return entry.subdivisions[subCode], warnings
}

func splitID(id string) (string, string) {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			return id[:i], id[i+1:]
		}
	}
	return id, ""
}

// Calendar is an immutable holiday calendar for one country or subdivision.
// A nil *Calendar behaves as the weekends-only calendar.
type Calendar struct {
	ID          string
	Country     string
	Subdivision string
	Name        string
	observance  Observance
	rules       []Rule
	memo        cache.Cache
}

type yearSet struct {
	entries []Entry
	byDate  map[time.Time]Entry
}

// Holidays returns the year's holidays (actual dates and observed substitutes) in date order
func (c *Calendar) Holidays(year int) []Entry {
	if c == nil || len(c.rules) == 0 {
		return nil
	}
	set := c.year(year)
	out := make([]Entry, len(set.entries))
	copy(out, set.entries)
	return out
}

// IsHoliday reports whether d is a holiday (actual or observed) and returns its entry
func (c *Calendar) IsHoliday(d time.Time) (Entry, bool) {
	if c == nil || len(c.rules) == 0 {
		return Entry{}, false
	}
	d = Truncate(d)
	e, ok := c.year(d.Year()).byDate[d]
	return e, ok
}

// IsBusinessDay reports whether d is neither a weekend day nor a holiday
func (c *Calendar) IsBusinessDay(d time.Time) bool {
	if IsWeekend(d) {
		return false
	}
	_, holiday := c.IsHoliday(d)
	return !holiday
}

func (c *Calendar) year(year int) *yearSet {
	key := cache.Key("holidays", c.ID, strconv.Itoa(year))
	return cache.GetOrCompute(c.memo, key, func() interface{} {
		return c.compute(year)
	}).(*yearSet)
}

// compute materialises the adjacent years too so substitutes crossing
// New Year land in the right set
func (c *Calendar) compute(year int) *yearSet {
	set := &yearSet{byDate: make(map[time.Time]Entry)}

	for y := year - 1; y <= year+1; y++ {
		for _, e := range materialize(c.rules, y, c.observance) {
			if e.Date.Year() != year {
				continue
			}
			if _, dup := set.byDate[e.Date]; dup {
				continue
			}
			e.Country = c.Country
			e.Subdivision = c.Subdivision
			set.byDate[e.Date] = e
			set.entries = append(set.entries, e)
		}
	}

	sort.SliceStable(set.entries, func(i, j int) bool {
		return set.entries[i].Date.Before(set.entries[j].Date)
	})
	return set
}
