package jurisdiction

import (
	"fmt"
	"strings"

	"github.com/ppiankov/legalguard/internal/liability"
	"github.com/ppiankov/legalguard/internal/model"
)

// Guard verifies jurisdiction clauses
type Guard struct {
	table *Table
}

// Option configures a Guard
type Option func(*Guard)

// WithTable sets the jurisdiction table (default: DefaultTable())
func WithTable(t *Table) Option {
	return func(g *Guard) {
		g.table = t
	}
}

// New creates a jurisdiction guard
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

// facts describes one named jurisdiction for the rule engine
func (g *Guard) facts(input string) (map[string]any, Jurisdiction, bool) {
	input = strings.TrimSpace(input)
	j, known := g.table.Resolve(input)
	return map[string]any{
		"input":        input,
		"present":      input != "",
		"known":        known,
		"code":         j.Code,
		"name":         j.Name,
		"country":      j.Country,
		"kind":         j.Kind,
		"legal_system": j.LegalSystem,
	}, j, known
}

func (g *Guard) partyFacts(parties []string) []map[string]any {
	out := make([]map[string]any, 0, len(parties))
	for _, p := range parties {
		f, _, _ := g.facts(p)
		out = append(out, f)
	}
	return out
}

func split(findings []Finding) (conflicts, warnings []string) {
	for _, f := range findings {
		if f.Severity == SeverityConflict {
			conflicts = append(conflicts, f.Message)
		} else {
			warnings = append(warnings, f.Message)
		}
	}
	return conflicts, warnings
}

// VerifyChoiceOfLaw checks the governing law and optional forum against the
// parties' home jurisdictions. Warnings never affect Verified.
func (g *Guard) VerifyChoiceOfLaw(in model.ChoiceOfLawInput) model.ChoiceOfLawResult {
	result := model.ChoiceOfLawResult{
		Parties:      in.Parties,
		GoverningLaw: in.GoverningLaw,
		Forum:        in.Forum,
	}

	if strings.TrimSpace(in.GoverningLaw) == "" {
		result.Conflicts = []string{"governing_law is required"}
		result.Message = "Cannot verify: governing_law is required"
		return result
	}

	law, lawJ, _ := g.facts(in.GoverningLaw)
	forum, forumJ, _ := g.facts(in.Forum)
	result.LawCode = lawJ.Code
	result.ForumCode = forumJ.Code

	findings, err := g.table.Rules().Evaluate(CheckChoiceOfLaw, Facts{
		Law:     law,
		Forum:   forum,
		Parties: g.partyFacts(in.Parties),
	})
	if err != nil {
		result.Conflicts = []string{err.Error()}
		result.Message = "Cannot verify: " + err.Error()
		return result
	}

	result.Conflicts, result.Warnings = split(findings)
	result.Verified = len(result.Conflicts) == 0
	result.Message = verdict("Jurisdiction clause", result.Conflicts, result.Warnings)
	return result
}

// VerifyForumSelection checks that the forum is known and, for US forums,
// whether the contract value clears the diversity jurisdiction threshold
func (g *Guard) VerifyForumSelection(in model.ForumInput) model.ForumResult {
	result := model.ForumResult{
		Forum:         in.Forum,
		ContractValue: in.ContractValue,
		Parties:       in.Parties,
	}

	forum, forumJ, _ := g.facts(in.Forum)
	result.ForumCode = forumJ.Code

	value := map[string]any{"present": false, "amount": 0.0, "text": ""}
	if strings.TrimSpace(in.ContractValue) != "" {
		amount, err := liability.ParseAmount(in.ContractValue)
		if err != nil {
			result.Conflicts = []string{fmt.Sprintf("contract_value: %v", err)}
			result.Message = "Cannot verify: " + result.Conflicts[0]
			return result
		}
		f, _ := amount.Float64()
		value = map[string]any{"present": true, "amount": f, "text": liability.FormatMoney(amount)}
	}

	findings, err := g.table.Rules().Evaluate(CheckForumSelection, Facts{
		Forum:   forum,
		Parties: g.partyFacts(in.Parties),
		Value:   value,
	})
	if err != nil {
		result.Conflicts = []string{err.Error()}
		result.Message = "Cannot verify: " + err.Error()
		return result
	}

	result.Conflicts, result.Warnings = split(findings)
	result.Verified = len(result.Conflicts) == 0
	result.Message = verdict("Forum selection", result.Conflicts, result.Warnings)
	return result
}

// CheckConventionApplicability reports every party whose country is not a
// contracting state of the convention. An unknown convention is never verified.
func (g *Guard) CheckConventionApplicability(in model.ConventionInput) model.ConventionResult {
	result := model.ConventionResult{
		Parties:    in.Parties,
		Convention: in.Convention,
	}

	conv, ok := g.table.Convention(in.Convention)
	if !ok {
		result.Conflicts = []string{fmt.Sprintf("Unknown convention: '%s'", in.Convention)}
		result.Message = fmt.Sprintf("Cannot verify: unknown convention '%s' (known: %s)",
			in.Convention, strings.Join(g.table.Conventions(), ", "))
		return result
	}
	result.Convention = conv.Code
	result.ConventionName = conv.Name

	if len(in.Parties) == 0 {
		result.Conflicts = []string{"no parties given"}
		result.Message = "Cannot verify: no parties given"
		return result
	}

	for _, p := range in.Parties {
		j, known := g.table.Resolve(p)
		switch {
		case !known:
			result.NonSignatories = append(result.NonSignatories, p)
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("'%s' is not a recognised jurisdiction, so %s membership cannot be established", p, conv.Code))
		case !g.table.IsMember(conv.Code, j.Country):
			result.NonSignatories = append(result.NonSignatories, p)
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("%s (%s) is not a contracting state of the %s", j.Name, j.Country, conv.Code))
		}
	}

	result.Verified = len(result.Conflicts) == 0
	if result.Verified {
		result.Message = fmt.Sprintf("%s applies: all %d parties are contracting states", conv.Code, len(in.Parties))
	} else {
		result.Message = fmt.Sprintf("%s does not bind every party: %s", conv.Code, strings.Join(result.NonSignatories, ", "))
	}
	return result
}

func verdict(subject string, conflicts, warnings []string) string {
	if len(conflicts) > 0 {
		return fmt.Sprintf("%s conflict: %s", subject, strings.Join(conflicts, "; "))
	}
	if len(warnings) > 0 {
		return fmt.Sprintf("%s verified with %d warning(s)", subject, len(warnings))
	}
	return subject + " verified"
}
