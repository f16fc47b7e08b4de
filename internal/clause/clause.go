// Package clause checks a contract's clauses for contradictions: numeric bounds
// that cannot all hold, a permission against a flat prohibition, and one
// exclusive right granted twice.
package clause

import (
	"fmt"
	"strings"

	"github.com/ppiankov/legalguard/internal/constraint"
	"github.com/ppiankov/legalguard/internal/model"
)

// Guard checks clause consistency
type Guard struct{}

// New creates a clause guard
func New() *Guard {
	return &Guard{}
}

// CheckConsistency reports whether every numeric bound stated by the clauses
// can hold at once and no clause permits what another flatly prohibits.
// Clauses whose text states nothing recognisable are listed as ignored and
// never cause a contradiction.
func (g *Guard) CheckConsistency(clauses []model.Clause) model.ClauseResult {
	m := constraint.Build(clauses)
	sol := constraint.Solve(m.Atoms)
	modal := constraint.SolveModal(m.Statements)

	result := model.ClauseResult{
		Clauses:   len(clauses),
		ClauseIDs: make([]string, 0, len(clauses)),
		Issues:    m.Issues,
		Ignored:   m.Ignored,
	}
	for _, c := range clauses {
		result.ClauseIDs = append(result.ClauseIDs, c.ID)
	}
	for _, iv := range sol.Intervals {
		result.Intervals = append(result.Intervals, iv.String())
	}
	for _, c := range sol.Conflicts {
		result.Conflicts = append(result.Conflicts, c.String())
	}
	for _, c := range modal {
		result.Conflicts = append(result.Conflicts, c.String())
	}

	result.Consistent = len(m.Issues) == 0 && len(result.Conflicts) == 0
	result.Verified = result.Consistent

	switch {
	case len(m.Issues) > 0:
		result.Message = fmt.Sprintf("Cannot verify: %s", strings.Join(m.Issues, "; "))
	case !sol.Consistent():
		result.Message = fmt.Sprintf("Contradiction: %d of %d axes have no feasible value (%s)",
			len(sol.Conflicts), len(sol.Intervals), strings.Join(result.Conflicts, "; "))
	case len(modal) > 0:
		result.Message = fmt.Sprintf("Contradiction: %s", strings.Join(result.Conflicts, "; "))
	case len(m.Atoms) < 2:
		result.Message = fmt.Sprintf("Consistent: %d of %d clauses state a numeric bound", len(m.Atoms), len(clauses))
	default:
		result.Message = fmt.Sprintf("Consistent: %d bounds across %d axes are jointly satisfiable", len(m.Atoms), len(sol.Intervals))
	}
	return result
}
