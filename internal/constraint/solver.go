package constraint

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Bound is one side of an interval. A zero Bound (Set false) is unbounded.
type Bound struct {
	Set       bool
	Value     decimal.Decimal
	Exclusive bool
	ClauseID  string
}

// tighterLower reports whether a lower bound (v, excl) is stricter than b
func (b Bound) tighterLower(v decimal.Decimal, excl bool) bool {
	if !b.Set {
		return true
	}
	c := v.Cmp(b.Value)
	return c > 0 || (c == 0 && excl && !b.Exclusive)
}

// tighterUpper reports whether an upper bound (v, excl) is stricter than b
func (b Bound) tighterUpper(v decimal.Decimal, excl bool) bool {
	if !b.Set {
		return true
	}
	c := v.Cmp(b.Value)
	return c < 0 || (c == 0 && excl && !b.Exclusive)
}

func (b Bound) describe(lower bool) string {
	op := map[[2]bool]string{
		{true, false}:  ">=",
		{true, true}:   ">",
		{false, false}: "<=",
		{false, true}:  "<",
	}[[2]bool{lower, b.Exclusive}]
	return fmt.Sprintf("clause %s requires %s %s", b.ClauseID, op, b.Value)
}

// Interval is the feasible region of one axis
type Interval struct {
	Axis  string
	Lower Bound
	Upper Bound
}

// Empty reports whether no value satisfies both bounds
func (iv Interval) Empty() bool {
	if !iv.Lower.Set || !iv.Upper.Set {
		return false
	}
	c := iv.Lower.Value.Cmp(iv.Upper.Value)
	return c > 0 || (c == 0 && (iv.Lower.Exclusive || iv.Upper.Exclusive))
}

// String renders the interval in bracket notation ("LIABILITY/USD in [50000, 10000]")
func (iv Interval) String() string {
	lo, hi := "(-inf", "+inf)"
	if iv.Lower.Set {
		open := "["
		if iv.Lower.Exclusive {
			open = "("
		}
		lo = open + iv.Lower.Value.String()
	}
	if iv.Upper.Set {
		closing := "]"
		if iv.Upper.Exclusive {
			closing = ")"
		}
		hi = iv.Upper.Value.String() + closing
	}
	return fmt.Sprintf("%s in %s, %s", iv.Axis, lo, hi)
}

// Conflict explains an empty interval by the two clauses that bind it
type Conflict struct {
	Interval Interval
}

// ClauseIDs returns the clauses defining the binding bounds
func (c Conflict) ClauseIDs() []string {
	if c.Interval.Lower.ClauseID == c.Interval.Upper.ClauseID {
		return []string{c.Interval.Lower.ClauseID}
	}
	return []string{c.Interval.Lower.ClauseID, c.Interval.Upper.ClauseID}
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s but %s (empty interval %s)",
		c.Interval.Axis, c.Interval.Lower.describe(true), c.Interval.Upper.describe(false), c.Interval.String())
}

// Solution is the outcome of bound intersection over all axes
type Solution struct {
	Intervals []Interval // one per axis, in order of first appearance
	Conflicts []Conflict
}

// Consistent reports whether every axis has a non-empty interval
func (s Solution) Consistent() bool {
	return len(s.Conflicts) == 0
}

// Solve intersects the atoms' bounds per axis. Each atom is visited once;
// "=" contributes both a lower and an upper bound.
func Solve(atoms []Atom) Solution {
	index := make(map[string]int)
	var intervals []Interval

	for _, a := range atoms {
		i, ok := index[a.Axis]
		if !ok {
			i = len(intervals)
			index[a.Axis] = i
			intervals = append(intervals, Interval{Axis: a.Axis})
		}
		iv := &intervals[i]

		if a.Op == GE || a.Op == GT || a.Op == EQ {
			excl := a.Op == GT
			if iv.Lower.tighterLower(a.Value, excl) {
				iv.Lower = Bound{Set: true, Value: a.Value, Exclusive: excl, ClauseID: a.ClauseID}
			}
		}
		if a.Op == LE || a.Op == LT || a.Op == EQ {
			excl := a.Op == LT
			if iv.Upper.tighterUpper(a.Value, excl) {
				iv.Upper = Bound{Set: true, Value: a.Value, Exclusive: excl, ClauseID: a.ClauseID}
			}
		}
	}

	sol := Solution{Intervals: intervals}
	for _, iv := range intervals {
		if iv.Empty() {
			sol.Conflicts = append(sol.Conflicts, Conflict{Interval: iv})
		}
	}
	return sol
}
