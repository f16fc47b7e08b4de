package jurisdiction

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Rule checks
const (
	CheckChoiceOfLaw    = "choice_of_law"
	CheckForumSelection = "forum_selection"
)

// Severities
const (
	SeverityConflict = "conflict"
	SeverityWarning  = "warning"
)

// RuleDef is a rule as written in the table
type RuleDef struct {
	ID        string `yaml:"id"`
	Check     string `yaml:"check"`
	Severity  string `yaml:"severity"`
	EachParty bool   `yaml:"each_party"`
	When      string `yaml:"when"`
	Message   string `yaml:"message"`
}

type rule struct {
	RuleDef
	when    cel.Program
	message cel.Program
}

// RuleSet is a compiled set of rules
type RuleSet struct {
	rules []rule
}

// Finding is one fired rule
type Finding struct {
	RuleID   string
	Severity string
	Message  string
}

// Facts are the values a rule is evaluated against
type Facts struct {
	Law     map[string]any
	Forum   map[string]any
	Parties []map[string]any
	Value   map[string]any
}

func newEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("law", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("forum", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("parties", cel.ListType(cel.MapType(cel.StringType, cel.DynType))),
		cel.Variable("party", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("value", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}
	return env, nil
}

// CompileRules compiles every predicate and message expression
func CompileRules(defs []RuleDef) (*RuleSet, error) {
	env, err := newEnv()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	rs := &RuleSet{}
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("rule without id")
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("rule %s: duplicate id", def.ID)
		}
		seen[def.ID] = true

		switch def.Severity {
		case SeverityConflict, SeverityWarning:
		default:
			return nil, fmt.Errorf("rule %s: unknown severity %q", def.ID, def.Severity)
		}
		switch def.Check {
		case CheckChoiceOfLaw, CheckForumSelection:
		default:
			return nil, fmt.Errorf("rule %s: unknown check %q", def.ID, def.Check)
		}

		when, err := compile(env, def.When)
		if err != nil {
			return nil, fmt.Errorf("rule %s when: %w", def.ID, err)
		}
		message, err := compile(env, def.Message)
		if err != nil {
			return nil, fmt.Errorf("rule %s message: %w", def.ID, err)
		}
		rs.rules = append(rs.rules, rule{RuleDef: def, when: when, message: message})
	}
	return rs, nil
}

func compile(env *cel.Env, expr string) (cel.Program, error) {
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("CEL program error: %w", err)
	}
	return prg, nil
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Evaluate runs the rules of one check in table order. Per-party rules fire
// once for every matching party.
func (rs *RuleSet) Evaluate(check string, f Facts) ([]Finding, error) {
	parties := make([]any, len(f.Parties))
	for i, p := range f.Parties {
		parties[i] = p
	}
	activation := map[string]any{
		"law":     orEmpty(f.Law),
		"forum":   orEmpty(f.Forum),
		"parties": parties,
		"party":   map[string]any{},
		"value":   orEmpty(f.Value),
	}

	var findings []Finding
	for _, r := range rs.rules {
		if r.Check != check {
			continue
		}

		subjects := []map[string]any{nil}
		if r.EachParty {
			subjects = f.Parties
		}
		for _, p := range subjects {
			if p != nil {
				activation["party"] = p
			}
			finding, fired, err := r.eval(activation)
			if err != nil {
				return nil, err
			}
			if fired {
				findings = append(findings, finding)
			}
		}
	}
	return findings, nil
}

func (r rule) eval(activation map[string]any) (Finding, bool, error) {
	out, _, err := r.when.Eval(activation)
	if err != nil {
		return Finding{}, false, fmt.Errorf("rule %s: CEL eval error: %w", r.ID, err)
	}
	fired, ok := out.Value().(bool)
	if !ok {
		return Finding{}, false, fmt.Errorf("rule %s: predicate is not boolean", r.ID)
	}
	if !fired {
		return Finding{}, false, nil
	}

	out, _, err = r.message.Eval(activation)
	if err != nil {
		return Finding{}, false, fmt.Errorf("rule %s: CEL eval error: %w", r.ID, err)
	}
	msg, ok := out.Value().(string)
	if !ok {
		return Finding{}, false, fmt.Errorf("rule %s: message is not a string", r.ID)
	}
	return Finding{RuleID: r.ID, Severity: r.Severity, Message: msg}, true, nil
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
