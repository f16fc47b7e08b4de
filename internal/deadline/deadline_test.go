package deadline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ppiankov/legalguard/internal/model"
)

func TestVerifyUSFederalBusinessDays(t *testing.T) {
	g := New()

	// MLK Day and Washington's Birthday both fall inside the window
	result := g.Verify(model.DeadlineInput{
		SigningDate:     "2026-01-15",
		Term:            "30 business days",
		ClaimedDeadline: "2026-02-14",
		Country:         "US",
	})

	if result.Verified {
		t.Error("Expected claim 2026-02-14 to be rejected")
	}
	if result.ComputedDeadline != "2026-03-02" {
		t.Errorf("ComputedDeadline = %s, want 2026-03-02", result.ComputedDeadline)
	}
	if result.DifferenceDays != -16 {
		t.Errorf("DifferenceDays = %d, want -16", result.DifferenceDays)
	}
	if result.TermParsed != "30 business days" {
		t.Errorf("TermParsed = %q", result.TermParsed)
	}
}

func TestVerifyCorrectClaim(t *testing.T) {
	g := New()

	tests := []struct {
		name string
		in   model.DeadlineInput
	}{
		{"business days", model.DeadlineInput{SigningDate: "2026-01-15", Term: "30 business days", ClaimedDeadline: "2026-03-02"}},
		{"calendar days", model.DeadlineInput{SigningDate: "2026-01-15", Term: "net 45 days", ClaimedDeadline: "2026-03-01"}},
		{"weeks", model.DeadlineInput{SigningDate: "2026-01-15", Term: "2 weeks", ClaimedDeadline: "2026-01-29"}},
		{"months clamp", model.DeadlineInput{SigningDate: "2024-01-31", Term: "1 month", ClaimedDeadline: "2024-02-29"}},
		{"years", model.DeadlineInput{SigningDate: "2024-02-29", Term: "1 year", ClaimedDeadline: "2025-02-28"}},
		{"GB bank holidays", model.DeadlineInput{SigningDate: "2021-12-23", Term: "2 business days", ClaimedDeadline: "2021-12-29", Country: "UK"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := g.Verify(tt.in)
			if !result.Verified {
				t.Errorf("Expected verified, got %s", result.Message)
			}
			if result.DifferenceDays != 0 {
				t.Errorf("DifferenceDays = %d, want 0", result.DifferenceDays)
			}
		})
	}
}

func TestVerifyMalformedInput(t *testing.T) {
	g := New()

	tests := []struct {
		in    model.DeadlineInput
		field string
	}{
		{model.DeadlineInput{SigningDate: "15/01/2026", Term: "30 days", ClaimedDeadline: "2026-02-14"}, "signing_date"},
		{model.DeadlineInput{SigningDate: "2026-01-15", Term: "a while", ClaimedDeadline: "2026-02-14"}, "term"},
		{model.DeadlineInput{SigningDate: "2026-01-15", Term: "30 days", ClaimedDeadline: "soon"}, "claimed_deadline"},
		{model.DeadlineInput{SigningDate: "2026-01-15", Term: "2635249153387078803 weeks", ClaimedDeadline: "2026-01-20"}, "term"},
	}

	for _, tt := range tests {
		result := g.Verify(tt.in)
		if result.Verified {
			t.Errorf("%s: expected unverified", tt.field)
		}
		if !strings.Contains(result.Message, tt.field) {
			t.Errorf("%s: message %q does not name the field", tt.field, result.Message)
		}
	}
}

func TestVerifyCalendarFallbackWarns(t *testing.T) {
	g := New()

	result := g.Verify(model.DeadlineInput{
		SigningDate:     "2026-01-15",
		Term:            "30 business days",
		ClaimedDeadline: "2026-02-26",
		Country:         "Atlantis",
	})

	if !result.Verified {
		t.Errorf("Expected weekends-only result to verify, got %s", result.Message)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Expected 1 fallback warning, got %v", result.Warnings)
	}
}

func TestDefaultCalendar(t *testing.T) {
	g := New(WithDefaultCalendar("US", "CA"))

	// Day after Thanksgiving is a California holiday
	result := g.Verify(model.DeadlineInput{SigningDate: "2026-11-25", Term: "1 business day", ClaimedDeadline: "2026-11-30"})
	if !result.Verified {
		t.Errorf("Expected verified under US-CA, got %s", result.Message)
	}
	if result.Calendar != "US-CA" {
		t.Errorf("Calendar = %s, want US-CA", result.Calendar)
	}
}

func TestVerifyIsIdempotent(t *testing.T) {
	g := New()
	in := model.DeadlineInput{SigningDate: "2026-01-15", Term: "30 business days", ClaimedDeadline: "2026-02-14"}

	first, _ := json.Marshal(g.Verify(in))
	second, _ := json.Marshal(g.Verify(in))
	if string(first) != string(second) {
		t.Errorf("Results differ:\n%s\n%s", first, second)
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	g := New()
	claimed := 30

	result := g.BusinessDaysBetween(model.BusinessDaysInput{From: "2026-01-15", To: "2026-03-02", Claimed: &claimed})
	if !result.Verified {
		t.Errorf("Expected verified, got %s", result.Message)
	}
	if result.CalendarDays != 46 {
		t.Errorf("CalendarDays = %d, want 46", result.CalendarDays)
	}

	wrong := 32
	result = g.BusinessDaysBetween(model.BusinessDaysInput{From: "2026-01-15", To: "2026-03-02", Claimed: &wrong})
	if result.Verified {
		t.Error("Expected mismatch for claimed 32")
	}

	result = g.BusinessDaysBetween(model.BusinessDaysInput{From: "yesterday", To: "2026-03-02"})
	if result.Verified || !strings.Contains(result.Message, "from") {
		t.Errorf("Expected malformed from to fail, got %+v", result)
	}
}
