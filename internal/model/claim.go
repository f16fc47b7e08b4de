package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind names a verification and selects the guard a claim is dispatched to
type Kind string

const (
	KindDeadline          Kind = "deadline"
	KindBusinessDays      Kind = "business_days"
	KindLiabilityCap      Kind = "liability_cap"
	KindLiabilityTiered   Kind = "liability_tiered"
	KindIndemnity         Kind = "indemnity"
	KindClauses           Kind = "clauses"
	KindCitation          Kind = "citation"
	KindCitationBatch     Kind = "citation_batch"
	KindStatuteCitation   Kind = "statute_citation"
	KindChoiceOfLaw       Kind = "choice_of_law"
	KindConvention        Kind = "convention"
	KindForumSelection    Kind = "forum_selection"
	KindLimitation        Kind = "limitation"
	KindLimitationCompare Kind = "limitation_compare"
	KindIRAC              Kind = "irac"
)

// Kinds lists every claim kind in a stable order
var Kinds = []Kind{
	KindDeadline,
	KindBusinessDays,
	KindLiabilityCap,
	KindLiabilityTiered,
	KindIndemnity,
	KindClauses,
	KindCitation,
	KindCitationBatch,
	KindStatuteCitation,
	KindChoiceOfLaw,
	KindConvention,
	KindForumSelection,
	KindLimitation,
	KindLimitationCompare,
	KindIRAC,
}

// Claim is one entry of a batch claims file: an assertion made about a contract,
// to be checked by the guard its Kind names
type Claim struct {
	ID    string    `yaml:"id" json:"id"`
	Kind  Kind      `yaml:"kind" json:"kind"`
	Input yaml.Node `yaml:"input" json:"-"`
}

// DecodeInput decodes the claim's input payload into out
func (c Claim) DecodeInput(out interface{}) error {
	if c.Input.Kind == 0 {
		return fmt.Errorf("claim %s: missing input", c.ID)
	}
	if err := c.Input.Decode(out); err != nil {
		return fmt.Errorf("claim %s: decode %s input: %w", c.ID, c.Kind, err)
	}
	return nil
}

// Outcome is the verdict for one batch claim
type Outcome struct {
	ID      string `json:"id" yaml:"id"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	Passed  bool   `json:"passed" yaml:"passed"`
	Summary string `json:"summary" yaml:"summary"`
	Result  Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}
