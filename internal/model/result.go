package model

import "fmt"

// Result is the common surface of every guard's verdict
type Result interface {
	Passed() bool
	Summary() string
	Kind() Kind
}

// DeadlineResult is the verdict on a claimed contractual deadline
type DeadlineResult struct {
	Verified         bool     `json:"verified" yaml:"verified"`
	SigningDate      string   `json:"signing_date" yaml:"signing_date"`
	Term             string   `json:"term" yaml:"term"`
	ClaimedDeadline  string   `json:"claimed_deadline" yaml:"claimed_deadline"`
	Country          string   `json:"country,omitempty" yaml:"country,omitempty"`
	Subdivision      string   `json:"subdivision,omitempty" yaml:"subdivision,omitempty"`
	TermParsed       string   `json:"term_parsed,omitempty" yaml:"term_parsed,omitempty"`
	Calendar         string   `json:"calendar,omitempty" yaml:"calendar,omitempty"`
	ComputedDeadline string   `json:"computed_deadline,omitempty" yaml:"computed_deadline,omitempty"`
	DifferenceDays   int      `json:"difference_days" yaml:"difference_days"` // claimed - computed
	Warnings         []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Message          string   `json:"message" yaml:"message"`
}

func (r DeadlineResult) Passed() bool    { return r.Verified }
func (r DeadlineResult) Summary() string { return r.Message }
func (r DeadlineResult) Kind() Kind      { return KindDeadline }

// BusinessDaysResult counts business days between two dates
type BusinessDaysResult struct {
	Verified     bool     `json:"verified" yaml:"verified"`
	From         string   `json:"from" yaml:"from"`
	To           string   `json:"to" yaml:"to"`
	Country      string   `json:"country,omitempty" yaml:"country,omitempty"`
	Subdivision  string   `json:"subdivision,omitempty" yaml:"subdivision,omitempty"`
	Calendar     string   `json:"calendar,omitempty" yaml:"calendar,omitempty"`
	BusinessDays int      `json:"business_days" yaml:"business_days"`
	CalendarDays int      `json:"calendar_days" yaml:"calendar_days"`
	Claimed      *int     `json:"claimed,omitempty" yaml:"claimed,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Message      string   `json:"message" yaml:"message"`
}

func (r BusinessDaysResult) Passed() bool    { return r.Verified }
func (r BusinessDaysResult) Summary() string { return r.Message }
func (r BusinessDaysResult) Kind() Kind      { return KindBusinessDays }

// LiabilityResult is the verdict on a percentage liability cap. Amounts are
// decimal strings rounded to cents.
type LiabilityResult struct {
	Verified      bool   `json:"verified" yaml:"verified"`
	ContractValue string `json:"contract_value" yaml:"contract_value"`
	CapPercentage string `json:"cap_percentage" yaml:"cap_percentage"`
	ClaimedCap    string `json:"claimed_cap" yaml:"claimed_cap"`
	ComputedCap   string `json:"computed_cap,omitempty" yaml:"computed_cap,omitempty"`
	Difference    string `json:"difference,omitempty" yaml:"difference,omitempty"` // claimed - computed
	Message       string `json:"message" yaml:"message"`
}

func (r LiabilityResult) Passed() bool    { return r.Verified }
func (r LiabilityResult) Summary() string { return r.Message }
func (r LiabilityResult) Kind() Kind      { return KindLiabilityCap }

// TieredLiabilityResult is the verdict on a tiered liability total
type TieredLiabilityResult struct {
	Verified      bool     `json:"verified" yaml:"verified"`
	Tiers         []string `json:"tiers" yaml:"tiers"` // "base x pct% = amount"
	ClaimedTotal  string   `json:"claimed_total" yaml:"claimed_total"`
	ComputedTotal string   `json:"computed_total,omitempty" yaml:"computed_total,omitempty"`
	Difference    string   `json:"difference,omitempty" yaml:"difference,omitempty"`
	Message       string   `json:"message" yaml:"message"`
}

func (r TieredLiabilityResult) Passed() bool    { return r.Verified }
func (r TieredLiabilityResult) Summary() string { return r.Message }
func (r TieredLiabilityResult) Kind() Kind      { return KindLiabilityTiered }

// IndemnityResult is the verdict on an indemnity limit expressed as a fee multiple
type IndemnityResult struct {
	Verified      bool   `json:"verified" yaml:"verified"`
	AnnualFee     string `json:"annual_fee" yaml:"annual_fee"`
	Multiplier    string `json:"multiplier" yaml:"multiplier"`
	ClaimedLimit  string `json:"claimed_limit" yaml:"claimed_limit"`
	ComputedLimit string `json:"computed_limit,omitempty" yaml:"computed_limit,omitempty"`
	Difference    string `json:"difference,omitempty" yaml:"difference,omitempty"`
	Message       string `json:"message" yaml:"message"`
}

func (r IndemnityResult) Passed() bool    { return r.Verified }
func (r IndemnityResult) Summary() string { return r.Message }
func (r IndemnityResult) Kind() Kind      { return KindIndemnity }

// ClauseResult is the verdict on a set of clauses' mutual consistency
type ClauseResult struct {
	Consistent bool     `json:"consistent" yaml:"consistent"`
	Verified   bool     `json:"verified" yaml:"verified"`
	Clauses    int      `json:"clauses" yaml:"clauses"`
	ClauseIDs  []string `json:"clause_ids" yaml:"clause_ids"`
	Conflicts  []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Issues     []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Intervals  []string `json:"intervals,omitempty" yaml:"intervals,omitempty"` // feasible range per axis
	Ignored    []string `json:"ignored,omitempty" yaml:"ignored,omitempty"`     // clause ids that constrain nothing
	Message    string   `json:"message" yaml:"message"`
}

func (r ClauseResult) Passed() bool    { return r.Consistent }
func (r ClauseResult) Summary() string { return r.Message }
func (r ClauseResult) Kind() Kind      { return KindClauses }

// CitationResult is the verdict on one case citation, with its parsed parts
type CitationResult struct {
	Valid     bool     `json:"valid" yaml:"valid"`
	Citation  string   `json:"citation" yaml:"citation"`
	Plaintiff string   `json:"plaintiff,omitempty" yaml:"plaintiff,omitempty"`
	Defendant string   `json:"defendant,omitempty" yaml:"defendant,omitempty"`
	Volume    int      `json:"volume,omitempty" yaml:"volume,omitempty"`
	Reporter  string   `json:"reporter,omitempty" yaml:"reporter,omitempty"`
	Page      int      `json:"page,omitempty" yaml:"page,omitempty"`
	Pinpoint  string   `json:"pinpoint,omitempty" yaml:"pinpoint,omitempty"`
	Court     string   `json:"court,omitempty" yaml:"court,omitempty"`
	Year      int      `json:"year,omitempty" yaml:"year,omitempty"`
	Issues    []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Message   string   `json:"message" yaml:"message"`
}

func (r CitationResult) Passed() bool    { return r.Valid }
func (r CitationResult) Summary() string { return r.Message }
func (r CitationResult) Kind() Kind      { return KindCitation }

// CitationBatchResult totals a batch of citations
type CitationBatchResult struct {
	Valid        bool     `json:"valid" yaml:"valid"`
	Total        int      `json:"total" yaml:"total"`
	ValidCount   int      `json:"valid_count" yaml:"valid_count"`
	InvalidCount int      `json:"invalid_count" yaml:"invalid_count"`
	Failures     []string `json:"failures,omitempty" yaml:"failures,omitempty"` // "citation: issue; issue"
	Message      string   `json:"message" yaml:"message"`
}

func (r CitationBatchResult) Passed() bool    { return r.Valid }
func (r CitationBatchResult) Summary() string { return r.Message }
func (r CitationBatchResult) Kind() Kind      { return KindCitationBatch }

// StatuteCitationResult is the verdict on a statutory citation ("42 U.S.C. § 1983")
type StatuteCitationResult struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Citation string   `json:"citation" yaml:"citation"`
	Title    int      `json:"title,omitempty" yaml:"title,omitempty"`
	Code     string   `json:"code,omitempty" yaml:"code,omitempty"`
	Section  string   `json:"section,omitempty" yaml:"section,omitempty"`
	Issues   []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

func (r StatuteCitationResult) Passed() bool    { return r.Valid }
func (r StatuteCitationResult) Summary() string { return r.Message }
func (r StatuteCitationResult) Kind() Kind      { return KindStatuteCitation }

// ChoiceOfLawResult is the verdict on a governing-law/forum combination
type ChoiceOfLawResult struct {
	Verified     bool     `json:"verified" yaml:"verified"`
	Parties      []string `json:"parties" yaml:"parties"`
	GoverningLaw string   `json:"governing_law" yaml:"governing_law"`
	Forum        string   `json:"forum,omitempty" yaml:"forum,omitempty"`
	LawCode      string   `json:"law_code,omitempty" yaml:"law_code,omitempty"`
	ForumCode    string   `json:"forum_code,omitempty" yaml:"forum_code,omitempty"`
	Conflicts    []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Message      string   `json:"message" yaml:"message"`
}

func (r ChoiceOfLawResult) Passed() bool    { return r.Verified }
func (r ChoiceOfLawResult) Summary() string { return r.Message }
func (r ChoiceOfLawResult) Kind() Kind      { return KindChoiceOfLaw }

// ConventionResult is the verdict on whether every party is bound by a convention
type ConventionResult struct {
	Verified       bool     `json:"verified" yaml:"verified"`
	Parties        []string `json:"parties" yaml:"parties"`
	Convention     string   `json:"convention" yaml:"convention"`
	ConventionName string   `json:"convention_name,omitempty" yaml:"convention_name,omitempty"`
	NonSignatories []string `json:"non_signatories,omitempty" yaml:"non_signatories,omitempty"`
	Conflicts      []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Message        string   `json:"message" yaml:"message"`
}

func (r ConventionResult) Passed() bool    { return r.Verified }
func (r ConventionResult) Summary() string { return r.Message }
func (r ConventionResult) Kind() Kind      { return KindConvention }

// ForumResult is the verdict on a forum selection clause
type ForumResult struct {
	Verified      bool     `json:"verified" yaml:"verified"`
	Forum         string   `json:"forum" yaml:"forum"`
	ForumCode     string   `json:"forum_code,omitempty" yaml:"forum_code,omitempty"`
	ContractValue string   `json:"contract_value,omitempty" yaml:"contract_value,omitempty"`
	Parties       []string `json:"parties,omitempty" yaml:"parties,omitempty"`
	Conflicts     []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Warnings      []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Message       string   `json:"message" yaml:"message"`
}

func (r ForumResult) Passed() bool    { return r.Verified }
func (r ForumResult) Summary() string { return r.Message }
func (r ForumResult) Kind() Kind      { return KindForumSelection }

// LimitationResult is the verdict on whether a claim was filed in time
type LimitationResult struct {
	Verified              bool    `json:"verified" yaml:"verified"`
	ClaimType             string  `json:"claim_type" yaml:"claim_type"`
	Jurisdiction          string  `json:"jurisdiction" yaml:"jurisdiction"`
	CanonicalClaimType    string  `json:"canonical_claim_type,omitempty" yaml:"canonical_claim_type,omitempty"`
	CanonicalJurisdiction string  `json:"canonical_jurisdiction,omitempty" yaml:"canonical_jurisdiction,omitempty"`
	LimitationYears       float64 `json:"limitation_years,omitempty" yaml:"limitation_years,omitempty"`
	IncidentDate          string  `json:"incident_date" yaml:"incident_date"`
	FilingDate            string  `json:"filing_date" yaml:"filing_date"`
	ExpirationDate        string  `json:"expiration_date,omitempty" yaml:"expiration_date,omitempty"`
	DaysRemaining         int     `json:"days_remaining" yaml:"days_remaining"` // negative once expired
	Message               string  `json:"message" yaml:"message"`
}

func (r LimitationResult) Passed() bool    { return r.Verified }
func (r LimitationResult) Summary() string { return r.Message }
func (r LimitationResult) Kind() Kind      { return KindLimitation }

// LimitationComparison lists one claim type's period across jurisdictions
type LimitationComparison struct {
	Verified  bool     `json:"verified" yaml:"verified"` // every jurisdiction was known
	ClaimType string   `json:"claim_type" yaml:"claim_type"`
	Periods   []string `json:"periods" yaml:"periods"` // "California: 4 years", shortest first
	Unknown   []string `json:"unknown,omitempty" yaml:"unknown,omitempty"`
	Shortest  string   `json:"shortest,omitempty" yaml:"shortest,omitempty"`
	Longest   string   `json:"longest,omitempty" yaml:"longest,omitempty"`
	Message   string   `json:"message" yaml:"message"`
}

func (r LimitationComparison) Passed() bool    { return r.Verified }
func (r LimitationComparison) Summary() string { return r.Message }
func (r LimitationComparison) Kind() Kind      { return KindLimitationCompare }

// FormatYears renders a period in years without trailing zeros ("4 years", "1.5 years", "1 year")
func FormatYears(years float64) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%s years", trimFloat(years))
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// IRACResult is the verdict on the structure of a legal analysis. Components
// holds the text found under each section heading.
type IRACResult struct {
	Verified    bool              `json:"verified" yaml:"verified"`
	Components  map[string]string `json:"components,omitempty" yaml:"components,omitempty"`
	Missing     []string          `json:"missing,omitempty" yaml:"missing,omitempty"`
	SharedTerms []string          `json:"shared_terms,omitempty" yaml:"shared_terms,omitempty"`
	Message     string            `json:"message" yaml:"message"`
}

func (r IRACResult) Passed() bool    { return r.Verified }
func (r IRACResult) Summary() string { return r.Message }
func (r IRACResult) Kind() Kind      { return KindIRAC }
