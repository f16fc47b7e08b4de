package model

// Inputs are the structured arguments of each guard, as they appear in claims
// files. Dates are ISO-8601 strings and money is a base-10 decimal string, so
// malformed values reach the guard and become failed results.

// DeadlineInput asks whether claimed_deadline is term after signing_date
type DeadlineInput struct {
	SigningDate     string `yaml:"signing_date" json:"signing_date"`
	Term            string `yaml:"term" json:"term"`
	ClaimedDeadline string `yaml:"claimed_deadline" json:"claimed_deadline"`
	Country         string `yaml:"country,omitempty" json:"country,omitempty"`
	Subdivision     string `yaml:"subdivision,omitempty" json:"subdivision,omitempty"`
}

// BusinessDaysInput counts business days in (from, to]
type BusinessDaysInput struct {
	From        string `yaml:"from" json:"from"`
	To          string `yaml:"to" json:"to"`
	Country     string `yaml:"country,omitempty" json:"country,omitempty"`
	Subdivision string `yaml:"subdivision,omitempty" json:"subdivision,omitempty"`
	Claimed     *int   `yaml:"claimed,omitempty" json:"claimed,omitempty"`
}

// CapInput asks whether claimed_cap is cap_percentage of contract_value
type CapInput struct {
	ContractValue string `yaml:"contract_value" json:"contract_value"`
	CapPercentage string `yaml:"cap_percentage" json:"cap_percentage"`
	ClaimedCap    string `yaml:"claimed_cap" json:"claimed_cap"`
}

// Tier is one band of a tiered liability schedule
type Tier struct {
	Base       string `yaml:"base" json:"base"`
	Percentage string `yaml:"percentage" json:"percentage"`
}

// TieredInput asks whether claimed_total is the sum of the tier caps
type TieredInput struct {
	Tiers        []Tier `yaml:"tiers" json:"tiers"`
	ClaimedTotal string `yaml:"claimed_total" json:"claimed_total"`
}

// IndemnityInput asks whether claimed_limit is annual_fee times multiplier
type IndemnityInput struct {
	AnnualFee    string `yaml:"annual_fee" json:"annual_fee"`
	Multiplier   string `yaml:"multiplier" json:"multiplier"`
	ClaimedLimit string `yaml:"claimed_limit" json:"claimed_limit"`
}

// Clause is one contract clause. Value, Unit and Relation are optional; a clause
// without a value constrains nothing.
type Clause struct {
	ID       string `yaml:"id" json:"id"`
	Text     string `yaml:"text" json:"text"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	Value    string `yaml:"numeric_value,omitempty" json:"numeric_value,omitempty"`
	Unit     string `yaml:"numeric_unit,omitempty" json:"numeric_unit,omitempty"`
	Relation string `yaml:"relation,omitempty" json:"relation,omitempty"`
}

// ClausesInput asks whether a set of clauses is mutually satisfiable
type ClausesInput struct {
	Clauses []Clause `yaml:"clauses" json:"clauses"`
}

// CitationInput is a single case citation
type CitationInput struct {
	Citation string `yaml:"citation" json:"citation"`
}

// CitationBatchInput is a list of case citations
type CitationBatchInput struct {
	Citations []string `yaml:"citations" json:"citations"`
}

// ChoiceOfLawInput asks whether governing law and forum are compatible with the parties
type ChoiceOfLawInput struct {
	Parties      []string `yaml:"parties" json:"parties"`
	GoverningLaw string   `yaml:"governing_law" json:"governing_law"`
	Forum        string   `yaml:"forum,omitempty" json:"forum,omitempty"`
}

// ConventionInput asks whether every party is a signatory of a convention
type ConventionInput struct {
	Parties    []string `yaml:"parties" json:"parties"`
	Convention string   `yaml:"convention" json:"convention"`
}

// ForumInput checks a forum selection clause
type ForumInput struct {
	Forum         string   `yaml:"forum" json:"forum"`
	ContractValue string   `yaml:"contract_value,omitempty" json:"contract_value,omitempty"`
	Parties       []string `yaml:"parties,omitempty" json:"parties,omitempty"`
}

// LimitationInput asks whether filing_date is within the limitation period
type LimitationInput struct {
	ClaimType    string `yaml:"claim_type" json:"claim_type"`
	Jurisdiction string `yaml:"jurisdiction" json:"jurisdiction"`
	IncidentDate string `yaml:"incident_date" json:"incident_date"`
	FilingDate   string `yaml:"filing_date" json:"filing_date"`
}

// LimitationCompareInput compares one claim type across jurisdictions
type LimitationCompareInput struct {
	ClaimType     string   `yaml:"claim_type" json:"claim_type"`
	Jurisdictions []string `yaml:"jurisdictions" json:"jurisdictions"`
}

// IRACInput is a piece of legal reasoning to check for IRAC structure
type IRACInput struct {
	Text string `yaml:"text" json:"text"`
}
