package model

import "testing"

func TestResultsImplementResult(t *testing.T) {
	results := []Result{
		DeadlineResult{},
		BusinessDaysResult{},
		LiabilityResult{},
		TieredLiabilityResult{},
		IndemnityResult{},
		ClauseResult{},
		CitationResult{},
		CitationBatchResult{},
		StatuteCitationResult{},
		ChoiceOfLawResult{},
		ConventionResult{},
		ForumResult{},
		LimitationResult{},
		LimitationComparison{},
		IRACResult{},
	}

	if len(results) != len(Kinds) {
		t.Fatalf("Expected one result type per kind, got %d results for %d kinds", len(results), len(Kinds))
	}

	for i, r := range results {
		if r.Kind() != Kinds[i] {
			t.Errorf("results[%d].Kind() = %s, want %s", i, r.Kind(), Kinds[i])
		}
		if r.Passed() {
			t.Errorf("zero %T must not pass", r)
		}
	}
}

func TestFormatYears(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1 year"},
		{4, "4 years"},
		{1.5, "1.5 years"},
		{0.25, "0.25 years"},
		{10, "10 years"},
	}

	for _, tt := range tests {
		if got := FormatYears(tt.in); got != tt.want {
			t.Errorf("FormatYears(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Calendar.DefaultCountry != "US" {
		t.Errorf("Expected default country US, got %q", cfg.Calendar.DefaultCountry)
	}
	if !cfg.Output.FailOnUnverified {
		t.Error("Expected fail_on_unverified to default to true")
	}
	if !cfg.Citation.RequireYear {
		t.Error("Expected citations to require a year by default")
	}
	if cfg.Concurrency.Workers <= 0 {
		t.Errorf("Expected positive worker count, got %d", cfg.Concurrency.Workers)
	}
}
