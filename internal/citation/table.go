package citation

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/ppiankov/legalguard/internal/refdata"
)

//go:embed data/reporters.yaml
var reportersYAML []byte

// Reporter is a case reporter series
type Reporter struct {
	Abbreviation string   `yaml:"abbreviation"`
	Name         string   `yaml:"name"`
	Court        string   `yaml:"court"`
	Start        int      `yaml:"start"`
	End          int      `yaml:"end"`        // 0 while still published
	MaxVolume    int      `yaml:"max_volume"` // 0 while still published
	Aliases      []string `yaml:"aliases"`
}

// Closed reports whether the series has ended
func (r Reporter) Closed() bool {
	return r.End != 0
}

// Code is a statutory or regulatory code
type Code struct {
	Abbreviation string   `yaml:"abbreviation"`
	Name         string   `yaml:"name"`
	Titled       bool     `yaml:"titled"`
	MaxTitle     int      `yaml:"max_title"`
	Reserved     []int    `yaml:"reserved"`
	Aliases      []string `yaml:"aliases"`
}

type tableDoc struct {
	refdata.Header `yaml:",inline"`
	Reporters      []Reporter `yaml:"reporters"`
	Codes          []Code     `yaml:"codes"`
}

// Table is the immutable reporter and code table
type Table struct {
	version   string
	reporters []Reporter
	byKey     map[string]int
	codes     []Code
	codeByKey map[string]int
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the embedded table, loaded once
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(reportersYAML)
		if err != nil {
			panic(fmt.Sprintf("citation: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// NewTable builds a table from YAML
func NewTable(data []byte) (*Table, error) {
	var doc tableDoc
	if err := refdata.Decode("reporters", data, &doc); err != nil {
		return nil, err
	}

	t := &Table{
		version:   doc.Version,
		reporters: doc.Reporters,
		byKey:     make(map[string]int),
		codes:     doc.Codes,
		codeByKey: make(map[string]int),
	}

	for i, r := range doc.Reporters {
		if r.Abbreviation == "" || r.Start == 0 {
			return nil, fmt.Errorf("reporter #%d: abbreviation and start are required", i+1)
		}
		if r.Closed() && r.End < r.Start {
			return nil, fmt.Errorf("reporter %s: ends before it starts", r.Abbreviation)
		}
		for _, name := range append([]string{r.Abbreviation}, r.Aliases...) {
			key := Key(name)
			if prev, dup := t.byKey[key]; dup && prev != i {
				return nil, fmt.Errorf("reporter %s: key %q already used by %s", r.Abbreviation, key, doc.Reporters[prev].Abbreviation)
			}
			t.byKey[key] = i
		}
	}

	for i, c := range doc.Codes {
		for _, name := range append([]string{c.Abbreviation}, c.Aliases...) {
			key := Key(name)
			if prev, dup := t.codeByKey[key]; dup && prev != i {
				return nil, fmt.Errorf("code %s: key %q already used by %s", c.Abbreviation, key, doc.Codes[prev].Abbreviation)
			}
			t.codeByKey[key] = i
		}
	}
	return t, nil
}

// Key is the punctuation- and space-insensitive lookup form of an abbreviation
func Key(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch r {
		case ' ', '\t', '.', '\'', '’':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Version returns the table version
func (t *Table) Version() string {
	return t.version
}

// Reporters returns the reporter series in table order
func (t *Table) Reporters() []Reporter {
	out := make([]Reporter, len(t.reporters))
	copy(out, t.reporters)
	return out
}

// Reporter looks up a reporter by any spelling of its abbreviation
func (t *Table) Reporter(raw string) (Reporter, bool) {
	i, ok := t.byKey[Key(raw)]
	if !ok {
		return Reporter{}, false
	}
	return t.reporters[i], true
}

// Code looks up a statutory code by any spelling of its abbreviation
func (t *Table) Code(raw string) (Code, bool) {
	i, ok := t.codeByKey[Key(raw)]
	if !ok {
		return Code{}, false
	}
	return t.codes[i], true
}

// Suggest returns the closest known reporter for an unknown abbreviation:
// a one-edit neighbour first, then a prefix match, then a two-edit neighbour
func (t *Table) Suggest(raw string) (string, bool) {
	key := Key(raw)
	if key == "" {
		return "", false
	}

	if r, ok := t.nearest(key, 1); ok {
		return r, true
	}

	best, bestGap := "", -1
	for _, r := range t.reporters {
		k := Key(r.Abbreviation)
		if strings.HasPrefix(k, key) || strings.HasPrefix(key, k) {
			gap := abs(len(k) - len(key))
			if bestGap < 0 || gap < bestGap {
				best, bestGap = r.Abbreviation, gap
			}
		}
	}
	if bestGap >= 0 {
		return best, true
	}

	return t.nearest(key, 2)
}

func (t *Table) nearest(key string, maxDist int) (string, bool) {
	best, bestDist := "", maxDist+1
	for _, r := range t.reporters {
		if d := editDistance(key, Key(r.Abbreviation)); d < bestDist {
			best, bestDist = r.Abbreviation, d
		}
	}
	return best, bestDist <= maxDist
}

// editDistance is the Levenshtein distance between two short keys
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
