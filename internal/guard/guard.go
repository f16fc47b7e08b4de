// Package guard composes the individual guards behind one façade and dispatches
// batch claims to them by kind.
package guard

import (
	"fmt"

	"github.com/ppiankov/legalguard/internal/calendar"
	"github.com/ppiankov/legalguard/internal/citation"
	"github.com/ppiankov/legalguard/internal/clause"
	"github.com/ppiankov/legalguard/internal/deadline"
	"github.com/ppiankov/legalguard/internal/irac"
	"github.com/ppiankov/legalguard/internal/jurisdiction"
	"github.com/ppiankov/legalguard/internal/liability"
	"github.com/ppiankov/legalguard/internal/limitation"
	"github.com/ppiankov/legalguard/internal/model"
	"github.com/shopspring/decimal"
)

// Verifier is the capability every guard operation shares: structured input in,
// a result with a verdict out
type Verifier[I any, R model.Result] interface {
	Verify(in I) R
}

// VerifierFunc adapts a guard method to Verifier
type VerifierFunc[I any, R model.Result] func(in I) R

// Verify calls f(in)
func (f VerifierFunc[I, R]) Verify(in I) R {
	return f(in)
}

var (
	_ Verifier[model.DeadlineInput, model.DeadlineResult]     = (*deadline.Guard)(nil)
	_ Verifier[model.LimitationInput, model.LimitationResult] = (*limitation.Guard)(nil)
)

// LegalGuard is the façade over all guards. It holds no mutable state and may
// be shared across goroutines.
type LegalGuard struct {
	Deadline     *deadline.Guard
	Liability    *liability.Guard
	Clauses      *clause.Guard
	Citations    *citation.Guard
	Jurisdiction *jurisdiction.Guard
	Limitations  *limitation.Guard
	IRAC         *irac.Guard
}

type options struct {
	registry           *calendar.Registry
	defaultCountry     string
	defaultSubdivision string
	requireYear        bool
	liabilityOpts      []liability.Option
}

// Option configures a LegalGuard
type Option func(*options)

// WithRegistry sets the holiday registry
func WithRegistry(r *calendar.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithDefaultCalendar sets the calendar used when a deadline names no country
func WithDefaultCalendar(country, subdivision string) Option {
	return func(o *options) {
		o.defaultCountry = country
		o.defaultSubdivision = subdivision
	}
}

// WithRequireYear controls whether citations must carry a year
func WithRequireYear(require bool) Option {
	return func(o *options) {
		o.requireYear = require
	}
}

// WithLiabilityOptions passes options through to the liability guard
func WithLiabilityOptions(opts ...liability.Option) Option {
	return func(o *options) {
		o.liabilityOpts = append(o.liabilityOpts, opts...)
	}
}

// New builds every guard once
func New(opts ...Option) *LegalGuard {
	o := &options{defaultCountry: "US", requireYear: true}
	for _, opt := range opts {
		opt(o)
	}

	deadlineOpts := []deadline.Option{deadline.WithDefaultCalendar(o.defaultCountry, o.defaultSubdivision)}
	if o.registry != nil {
		deadlineOpts = append(deadlineOpts, deadline.WithRegistry(o.registry))
	}

	return &LegalGuard{
		Deadline:     deadline.New(deadlineOpts...),
		Liability:    liability.New(o.liabilityOpts...),
		Clauses:      clause.New(),
		Citations:    citation.New(citation.WithRequireYear(o.requireYear)),
		Jurisdiction: jurisdiction.New(),
		Limitations:  limitation.New(),
		IRAC:         irac.New(),
	}
}

// FromConfig builds a LegalGuard from configuration
func FromConfig(cfg model.Config) *LegalGuard {
	opts := []Option{
		WithDefaultCalendar(cfg.Calendar.DefaultCountry, cfg.Calendar.DefaultSubdivision),
		WithRequireYear(cfg.Citation.RequireYear),
	}
	if cfg.Liability.TolerancePercent > 0 {
		opts = append(opts, WithLiabilityOptions(liability.WithTolerance(decimal.NewFromFloat(cfg.Liability.TolerancePercent))))
	}
	return New(opts...)
}

// VerifyDeadline checks a claimed deadline
func (g *LegalGuard) VerifyDeadline(in model.DeadlineInput) model.DeadlineResult {
	return g.Deadline.Verify(in)
}

// BusinessDaysBetween counts business days between two dates
func (g *LegalGuard) BusinessDaysBetween(in model.BusinessDaysInput) model.BusinessDaysResult {
	return g.Deadline.BusinessDaysBetween(in)
}

// VerifyLiabilityCap checks a percentage liability cap
func (g *LegalGuard) VerifyLiabilityCap(in model.CapInput) model.LiabilityResult {
	return g.Liability.VerifyCap(in)
}

// VerifyTieredLiability checks a tiered liability total
func (g *LegalGuard) VerifyTieredLiability(in model.TieredInput) model.TieredLiabilityResult {
	return g.Liability.VerifyTiered(in)
}

// VerifyIndemnity checks an indemnity limit
func (g *LegalGuard) VerifyIndemnity(in model.IndemnityInput) model.IndemnityResult {
	return g.Liability.VerifyIndemnity(in)
}

// CheckClauseConsistency checks clauses for contradictions
func (g *LegalGuard) CheckClauseConsistency(in model.ClausesInput) model.ClauseResult {
	return g.Clauses.CheckConsistency(in.Clauses)
}

// VerifyCitation checks a case citation
func (g *LegalGuard) VerifyCitation(in model.CitationInput) model.CitationResult {
	return g.Citations.Verify(in.Citation)
}

// VerifyCitations checks a list of case citations
func (g *LegalGuard) VerifyCitations(in model.CitationBatchInput) model.CitationBatchResult {
	return g.Citations.VerifyBatch(in.Citations)
}

// VerifyStatuteCitation checks a statutory citation
func (g *LegalGuard) VerifyStatuteCitation(in model.CitationInput) model.StatuteCitationResult {
	return g.Citations.VerifyStatute(in.Citation)
}

// VerifyChoiceOfLaw checks governing law and forum
func (g *LegalGuard) VerifyChoiceOfLaw(in model.ChoiceOfLawInput) model.ChoiceOfLawResult {
	return g.Jurisdiction.VerifyChoiceOfLaw(in)
}

// CheckConvention checks convention membership
func (g *LegalGuard) CheckConvention(in model.ConventionInput) model.ConventionResult {
	return g.Jurisdiction.CheckConventionApplicability(in)
}

// VerifyForumSelection checks a forum selection clause
func (g *LegalGuard) VerifyForumSelection(in model.ForumInput) model.ForumResult {
	return g.Jurisdiction.VerifyForumSelection(in)
}

// VerifyLimitation checks a filing against the statute of limitations
func (g *LegalGuard) VerifyLimitation(in model.LimitationInput) model.LimitationResult {
	return g.Limitations.Verify(in)
}

// CompareLimitations compares a claim type's period across jurisdictions
func (g *LegalGuard) CompareLimitations(in model.LimitationCompareInput) model.LimitationComparison {
	return g.Limitations.CompareJurisdictions(in)
}

// VerifyIRAC checks that legal reasoning states Issue, Rule, Application and Conclusion
func (g *LegalGuard) VerifyIRAC(in model.IRACInput) model.IRACResult {
	return g.IRAC.VerifyStructure(in.Text)
}

// Check decodes a claim's input for its kind and runs the matching guard.
// A payload that does not decode is a failed outcome, not an error.
func (g *LegalGuard) Check(c model.Claim) model.Outcome {
	switch c.Kind {
	case model.KindDeadline:
		return run(c, VerifierFunc[model.DeadlineInput, model.DeadlineResult](g.VerifyDeadline))
	case model.KindBusinessDays:
		return run(c, VerifierFunc[model.BusinessDaysInput, model.BusinessDaysResult](g.BusinessDaysBetween))
	case model.KindLiabilityCap:
		return run(c, VerifierFunc[model.CapInput, model.LiabilityResult](g.VerifyLiabilityCap))
	case model.KindLiabilityTiered:
		return run(c, VerifierFunc[model.TieredInput, model.TieredLiabilityResult](g.VerifyTieredLiability))
	case model.KindIndemnity:
		return run(c, VerifierFunc[model.IndemnityInput, model.IndemnityResult](g.VerifyIndemnity))
	case model.KindClauses:
		return run(c, VerifierFunc[model.ClausesInput, model.ClauseResult](g.CheckClauseConsistency))
	case model.KindCitation:
		return run(c, VerifierFunc[model.CitationInput, model.CitationResult](g.VerifyCitation))
	case model.KindCitationBatch:
		return run(c, VerifierFunc[model.CitationBatchInput, model.CitationBatchResult](g.VerifyCitations))
	case model.KindStatuteCitation:
		return run(c, VerifierFunc[model.CitationInput, model.StatuteCitationResult](g.VerifyStatuteCitation))
	case model.KindChoiceOfLaw:
		return run(c, VerifierFunc[model.ChoiceOfLawInput, model.ChoiceOfLawResult](g.VerifyChoiceOfLaw))
	case model.KindConvention:
		return run(c, VerifierFunc[model.ConventionInput, model.ConventionResult](g.CheckConvention))
	case model.KindForumSelection:
		return run(c, VerifierFunc[model.ForumInput, model.ForumResult](g.VerifyForumSelection))
	case model.KindLimitation:
		return run(c, VerifierFunc[model.LimitationInput, model.LimitationResult](g.VerifyLimitation))
	case model.KindLimitationCompare:
		return run(c, VerifierFunc[model.LimitationCompareInput, model.LimitationComparison](g.CompareLimitations))
	case model.KindIRAC:
		return run(c, VerifierFunc[model.IRACInput, model.IRACResult](g.VerifyIRAC))
	default:
		msg := fmt.Sprintf("unknown claim kind %q", c.Kind)
		return model.Outcome{ID: c.ID, Kind: c.Kind, Summary: "Cannot verify: " + msg, Error: msg}
	}
}

func run[I any, R model.Result](c model.Claim, v VerifierFunc[I, R]) model.Outcome {
	var in I
	if err := c.DecodeInput(&in); err != nil {
		return model.Outcome{ID: c.ID, Kind: c.Kind, Summary: "Cannot verify: " + err.Error(), Error: err.Error()}
	}

	r := v.Verify(in)
	return model.Outcome{
		ID:      c.ID,
		Kind:    c.Kind,
		Passed:  r.Passed(),
		Summary: r.Summary(),
		Result:  r,
	}
}
