// Package irac checks that a piece of legal reasoning is laid out as Issue,
// Rule, Application and Conclusion, and that the application actually works
// with the rule it states.
package irac

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ppiankov/legalguard/internal/model"
)

// Section is one part of an IRAC analysis
type Section string

const (
	Issue       Section = "issue"
	Rule        Section = "rule"
	Application Section = "application"
	Conclusion  Section = "conclusion"
)

// Sections in reasoning order
var Sections = []Section{Issue, Rule, Application, Conclusion}

// headings are the labels that open each section
var headings = map[Section][]string{
	Issue:       {"issue", "issues", "question presented", "questions presented", "legal problem"},
	Rule:        {"rule", "rules", "law", "applicable law", "governing law", "statute", "legal principle"},
	Application: {"application", "analysis", "reasoning", "applying the law", "discussion"},
	Conclusion:  {"conclusion", "holding", "verdict"},
}

// stopwords are long function words that say nothing about a rule
var stopwords = map[string]bool{
	"about": true, "after": true, "being": true, "could": true, "other": true,
	"shall": true, "should": true, "their": true, "there": true, "these": true,
	"those": true, "under": true, "where": true, "whether": true, "which": true,
	"while": true, "would": true,
}

// Guard checks IRAC structure
type Guard struct {
	patterns      map[Section]*regexp.Regexp
	minTermLength int
	minRuleWords  int
}

// New creates an IRAC guard
func New() *Guard {
	g := &Guard{
		patterns:      make(map[Section]*regexp.Regexp, len(headings)),
		minTermLength: 5,
		minRuleWords:  4,
	}
	for section, labels := range headings {
		quoted := make([]string, len(labels))
		for i, l := range labels {
			quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(l), " ", `\s+`)
		}
		// a heading starts the line, optionally numbered or emphasised, and is
		// followed by a colon or nothing at all
		g.patterns[section] = regexp.MustCompile(`(?i)^\s*(?:#{1,6}\s*)?(?:(?:\d+|[ivx]+|[a-d])[.)]\s*)?(?:\*\*|__)?(?:` +
			strings.Join(quoted, "|") + `)(?:\*\*|__)?\s*(?::(?:\*\*|__)?\s*(.*)|$)`)
	}
	return g
}

// heading reports the section a line opens and any text after its label
func (g *Guard) heading(line string) (Section, string, bool) {
	for _, s := range Sections {
		if m := g.patterns[s].FindStringSubmatch(line); m != nil {
			return s, strings.TrimSpace(m[1]), true
		}
	}
	return "", "", false
}

// Split divides text into sections. Text before the first heading is dropped;
// a repeated heading continues its section.
func (g *Guard) Split(text string) map[Section]string {
	parts := make(map[Section][]string)
	var current Section

	for _, line := range strings.Split(text, "\n") {
		if s, rest, ok := g.heading(line); ok {
			current = s
			if _, seen := parts[s]; !seen {
				parts[s] = nil
			}
			if rest != "" {
				parts[s] = append(parts[s], rest)
			}
			continue
		}
		if current == "" {
			continue
		}
		if l := strings.TrimSpace(line); l != "" {
			parts[current] = append(parts[current], l)
		}
	}

	out := make(map[Section]string, len(parts))
	for s, lines := range parts {
		out[s] = strings.Join(lines, " ")
	}
	return out
}

// terms returns the distinct content words of text, lower-cased
func (g *Guard) terms(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(w)) < g.minTermLength || stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// VerifyStructure checks that all four sections are present and non-empty and
// that the application shares at least one content term with the rule. Rules
// of fewer than four words are too short for the overlap check.
func (g *Guard) VerifyStructure(text string) model.IRACResult {
	parts := g.Split(text)

	result := model.IRACResult{Components: make(map[string]string, len(parts))}
	for _, s := range Sections {
		body, ok := parts[s]
		if !ok || body == "" {
			result.Missing = append(result.Missing, string(s))
			continue
		}
		result.Components[string(s)] = body
	}

	if len(result.Missing) > 0 {
		result.Message = fmt.Sprintf("Incomplete reasoning: missing %s (expected Issue, Rule, Application, Conclusion)",
			strings.Join(result.Missing, ", "))
		return result
	}

	rule := parts[Rule]
	application := strings.ToLower(parts[Application])
	for _, term := range g.terms(rule) {
		if strings.Contains(application, term) {
			result.SharedTerms = append(result.SharedTerms, term)
		}
	}

	if len(strings.Fields(rule)) >= g.minRuleWords && len(result.SharedTerms) == 0 {
		result.Message = "Disconnected reasoning: the application shares no terms with the stated rule"
		return result
	}

	result.Verified = true
	if len(result.SharedTerms) == 0 {
		result.Message = "IRAC structure complete"
	} else {
		result.Message = fmt.Sprintf("IRAC structure complete: the application uses %d term(s) of the rule (%s)",
			len(result.SharedTerms), strings.Join(result.SharedTerms, ", "))
	}
	return result
}
