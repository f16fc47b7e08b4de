package constraint

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/legalguard/internal/refdata"
)

// Modality is what a clause says about an action
type Modality string

const (
	Permits   Modality = "permits"
	Prohibits Modality = "prohibits"
	Grants    Modality = "grants exclusive"
)

// AnyParty stands for "either party", "neither party" or an unnamed subject
const AnyParty = "*"

// Statement is a non-numeric claim a clause makes: a party may or may not take
// an action, or a party holds an exclusive right
type Statement struct {
	ClauseID  string
	Modality  Modality
	Action    string   // action stem, or the exclusive right ("license")
	Parties   []string // subject parties, or the grantee
	Qualified bool     // a prohibition limited by time or condition, or a permission carved out as an exception
	Scope     string   // territory or field of an exclusive grant, folded
}

// actions maps an action to the stems that name it
var actions = []struct {
	action string
	stems  []string
}{
	{"terminate", []string{"terminat", "cancel"}},
	{"assign", []string{"assign"}},
	{"sublicense", []string{"sublicens"}},
	{"subcontract", []string{"subcontract"}},
	{"disclose", []string{"disclos"}},
}

// parties are the role nouns recognised as clause subjects and grantees
var parties = []string{
	"agent", "buyer", "client", "company", "consultant", "contractor", "customer",
	"distributor", "employee", "employer", "landlord", "lessee", "lessor",
	"licensee", "licensor", "provider", "purchaser", "reseller", "seller",
	"subcontractor", "supplier", "tenant", "vendor",
}

var partySet = func() map[string]bool {
	m := make(map[string]bool, len(parties))
	for _, p := range parties {
		m[p] = true
	}
	return m
}()

var (
	anyPartyCue = regexp.MustCompile(`\b(?:either|each|any|every|neither|no)\s+party\b|\bthe\s+parties\b`)
	partyWord   = regexp.MustCompile(`\b(` + strings.Join(parties, "|") + `)\b`)

	// a prohibition limited to a period or a condition is not a flat ban
	qualifier = regexp.MustCompile(`\b(?:before|prior to|until|unless|except|without|during|within|after|if|for|other than|save|upon|in the event)\b`)
	// a permission stated as an exception narrows a prohibition
	exception = regexp.MustCompile(`\b(?:notwithstanding|except|subject to)\b`)

	exclusiveCue = regexp.MustCompile(`\b(?:sole\s+and\s+)?exclusive\s+([a-z]+)`)
	scopeCue     = regexp.MustCompile(`\b(?:in|within|throughout|for)\s+(?:the\s+)?([^,.;]+)`)
	granteeCues  = []*regexp.Regexp{
		regexp.MustCompile(`\bgrants?\s+(?:to\s+)?(?:the\s+)?([a-z]+)`),
		regexp.MustCompile(`\bappoints?\s+(?:the\s+)?([a-z]+)`),
		regexp.MustCompile(`\b([a-z]+)\s+(?:shall\s+be|is|will\s+be)\s+(?:the\s+)?(?:sole\s+and\s+)?exclusive\b`),
	}
	granteeAfter = regexp.MustCompile(`\bto\s+(?:the\s+)?([a-z]+)`)
)

type modalPattern struct {
	action     string
	prohibit   []*regexp.Regexp
	permission *regexp.Regexp
}

var modalPatterns = compileModals()

func compileModals() []modalPattern {
	out := make([]modalPattern, 0, len(actions))
	for _, a := range actions {
		verb := `(?:\w+\s+){0,2}?(?:` + strings.Join(a.stems, "|") + `)\w*`
		out = append(out, modalPattern{
			action: a.action,
			prohibit: []*regexp.Regexp{
				regexp.MustCompile(`\b(?:(?:may|shall|can|will|must)\s+not|cannot|(?:is|are)\s+not\s+(?:permitted|entitled|allowed)\s+to|(?:is|are)\s+prohibited\s+from)\s+` + verb),
				regexp.MustCompile(`\b(?:neither|no)\s+(?:party|` + strings.Join(parties, "|") + `)\b[^.;]*?\b(?:may|shall|can|will)\s+` + verb),
			},
			permission: regexp.MustCompile(`\b(?:may|can|(?:is|are)\s+(?:permitted|entitled|allowed)\s+to|(?:has|have|shall\s+have)\s+the\s+right\s+to)\s+` + verb),
		})
	}
	return out
}

// subjects returns the parties named before position end; an unnamed or
// collective subject is AnyParty
func subjects(lower string, end int) []string {
	head := lower[:end]
	if anyPartyCue.MatchString(head) {
		return []string{AnyParty}
	}
	seen := map[string]bool{}
	var out []string
	for _, m := range partyWord.FindAllStringSubmatch(head, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			out = append(out, m[1])
		}
	}
	if len(out) == 0 {
		return []string{AnyParty}
	}
	sort.Strings(out)
	return out
}

// Statements finds the permissions, prohibitions and exclusive grants in a
// clause's text. A clause both permitting and prohibiting one action yields
// only the prohibition.
func Statements(clauseID, text string) []Statement {
	lower := strings.ToLower(text)
	var out []Statement

	for _, p := range modalPatterns {
		var loc []int
		for _, re := range p.prohibit {
			if l := re.FindStringIndex(lower); l != nil && (loc == nil || l[0] < loc[0]) {
				loc = l
			}
		}
		if loc != nil {
			out = append(out, Statement{
				ClauseID:  clauseID,
				Modality:  Prohibits,
				Action:    p.action,
				Parties:   subjects(lower, loc[0]),
				Qualified: qualifier.MatchString(lower),
			})
			continue
		}
		if loc = p.permission.FindStringIndex(lower); loc != nil {
			out = append(out, Statement{
				ClauseID:  clauseID,
				Modality:  Permits,
				Action:    p.action,
				Parties:   subjects(lower, loc[0]),
				Qualified: exception.MatchString(lower),
			})
		}
	}

	if s, ok := exclusiveGrant(clauseID, lower); ok {
		out = append(out, s)
	}
	return out
}

func exclusiveGrant(clauseID, lower string) (Statement, bool) {
	for _, loc := range exclusiveCue.FindAllStringSubmatchIndex(lower, -1) {
		if before := lower[:loc[0]]; strings.HasSuffix(before, "non-") || strings.HasSuffix(before, "non ") {
			continue
		}

		grantee := ""
		for _, re := range granteeCues {
			if m := re.FindStringSubmatch(lower); m != nil && partySet[m[1]] {
				grantee = m[1]
				break
			}
		}
		if grantee == "" {
			if m := granteeAfter.FindStringSubmatch(lower[loc[1]:]); m != nil && partySet[m[1]] {
				grantee = m[1]
			}
		}
		if grantee == "" {
			return Statement{}, false
		}

		scope := ""
		if m := scopeCue.FindStringSubmatch(lower[loc[1]:]); m != nil {
			scope = refdata.Fold(m[1])
		}
		return Statement{
			ClauseID: clauseID,
			Modality: Grants,
			Action:   strings.TrimSuffix(lower[loc[2]:loc[3]], "s"),
			Parties:  []string{grantee},
			Scope:    scope,
		}, true
	}
	return Statement{}, false
}

// ModalConflict is a pair of statements that cannot both hold
type ModalConflict struct {
	First, Second Statement
}

func (c ModalConflict) String() string {
	if c.First.Modality == Grants {
		return fmt.Sprintf("exclusive %s: clause %s grants it to %s but clause %s grants it to %s",
			c.First.Action, c.First.ClauseID, c.First.Parties[0], c.Second.ClauseID, c.Second.Parties[0])
	}
	return fmt.Sprintf("%s: clause %s permits %s but clause %s prohibits it",
		c.First.Action, c.First.ClauseID, describeParties(c.First.Parties), c.Second.ClauseID)
}

func describeParties(ps []string) string {
	if len(ps) == 1 && ps[0] == AnyParty {
		return "either party"
	}
	return strings.Join(ps, " and ")
}

func overlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == AnyParty || y == AnyParty || x == y {
				return true
			}
		}
	}
	return false
}

// SolveModal pairs statements that contradict: an unqualified permission against
// an unqualified prohibition of the same action by an overlapping party, and one
// exclusive right over the same scope granted to two different parties.
// Statements are compared in clause order, so the output is deterministic.
func SolveModal(statements []Statement) []ModalConflict {
	var out []ModalConflict
	for i, a := range statements {
		for _, b := range statements[i+1:] {
			if a.ClauseID == b.ClauseID || a.Action != b.Action {
				continue
			}
			switch {
			case a.Modality == Permits && b.Modality == Prohibits && !a.Qualified && !b.Qualified && overlap(a.Parties, b.Parties):
				out = append(out, ModalConflict{First: a, Second: b})
			case a.Modality == Prohibits && b.Modality == Permits && !a.Qualified && !b.Qualified && overlap(a.Parties, b.Parties):
				out = append(out, ModalConflict{First: b, Second: a})
			case a.Modality == Grants && b.Modality == Grants && a.Scope == b.Scope && a.Parties[0] != b.Parties[0]:
				out = append(out, ModalConflict{First: a, Second: b})
			}
		}
	}
	return out
}
