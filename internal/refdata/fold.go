package refdata

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes a name for alias lookup: diacritics stripped, upper case,
// "&" spelled "AND", periods and apostrophes dropped, other punctuation treated
// as spaces and whitespace collapsed. "Québec" and "QUEBEC", "England & Wales" and
// "england and wales", "U.K." and "UK", "breach_of_contract" and "Breach of Contract" all fold equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range strings.ToUpper(stripped) {
		switch {
		case r == '&':
			b.WriteString(" AND ")
		case r == '.' || r == '\'' || r == '’':
			// dropped
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// AliasIndex maps folded aliases to a canonical key
type AliasIndex struct {
	entries map[string]string
}

// NewAliasIndex creates an empty index
func NewAliasIndex() *AliasIndex {
	return &AliasIndex{entries: make(map[string]string)}
}

// Add registers aliases for key. The key itself is always an alias.
// Two keys claiming the same alias is a table defect.
func (a *AliasIndex) Add(key string, aliases ...string) error {
	for _, alias := range append([]string{key}, aliases...) {
		folded := Fold(alias)
		if folded == "" {
			continue
		}
		if existing, ok := a.entries[folded]; ok && existing != key {
			return fmt.Errorf("alias %q claimed by both %q and %q", alias, existing, key)
		}
		a.entries[folded] = key
	}
	return nil
}

// Lookup returns the canonical key for name
func (a *AliasIndex) Lookup(name string) (string, bool) {
	key, ok := a.entries[Fold(name)]
	return key, ok
}

// Len returns the number of aliases
func (a *AliasIndex) Len() int {
	return len(a.entries)
}
