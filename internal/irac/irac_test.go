package irac

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const memo = `Memorandum for the file.

## Issue
Whether the buyer's claim for breach of warranty is time-barred.

## Rule
A claim for breach of warranty under UCC 2-725 must be commenced within four years after tender of delivery.

## Analysis
Tender of delivery occurred on 2019-03-01. The buyer commenced the warranty action on 2024-05-10,
more than four years after tender.

## Conclusion
The claim is time-barred.
`

func TestVerifyStructure(t *testing.T) {
	g := New()

	result := g.VerifyStructure(memo)
	if !result.Verified {
		t.Fatalf("Expected complete IRAC memo to verify: %s", result.Message)
	}
	if len(result.Components) != 4 {
		t.Errorf("Expected 4 components, got %v", result.Components)
	}
	if !strings.HasPrefix(result.Components["application"], "Tender of delivery") {
		t.Errorf("application = %q", result.Components["application"])
	}
	if diff := cmp.Diff([]string{"commenced", "delivery", "tender", "warranty", "years"}, result.SharedTerms); diff != "" {
		t.Errorf("SharedTerms mismatch (-want +got):\n%s", diff)
	}
}

func TestVerifyStructureMissingSections(t *testing.T) {
	g := New()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{"issue", "rule", "application", "conclusion"}},
		{"no headings", "The buyer waited too long, so the claim fails.", []string{"issue", "rule", "application", "conclusion"}},
		{"no application", "Issue: timeliness\nRule: four years\nConclusion: barred", []string{"application"}},
		{"empty section", "Issue: timeliness\nRule: four years\nAnalysis:\nHolding: barred", []string{"application"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := g.VerifyStructure(tt.text)
			if result.Verified {
				t.Fatal("Expected incomplete reasoning to fail")
			}
			if diff := cmp.Diff(tt.want, result.Missing); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(result.Message, "missing") {
				t.Errorf("Message = %q", result.Message)
			}
		})
	}
}

func TestVerifyStructureDisconnectedApplication(t *testing.T) {
	g := New()

	text := `Issue: Is the contract enforceable?
Rule: A contract requires offer, acceptance and consideration.
Application: The weather was pleasant and everyone went home.
Conclusion: Enforceable.`

	result := g.VerifyStructure(text)
	if result.Verified {
		t.Fatal("Expected an application that ignores the rule to fail")
	}
	if !strings.HasPrefix(result.Message, "Disconnected reasoning") {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestVerifyStructureShortRule(t *testing.T) {
	g := New()

	result := g.VerifyStructure("Issue: timeliness\nRule: four years\nApplication: filed late\nConclusion: barred")
	if !result.Verified {
		t.Errorf("Expected a short rule to skip the overlap check: %s", result.Message)
	}
}

func TestHeadings(t *testing.T) {
	g := New()

	tests := []struct {
		line string
		want Section
		rest string
		ok   bool
	}{
		{"Issue: whether notice was given", Issue, "whether notice was given", true},
		{"**Question Presented:** whether notice was given", Issue, "whether notice was given", true},
		{"## Rule", Rule, "", true},
		{"2. Applicable law: Delaware", Rule, "Delaware", true},
		{"III. Analysis", Application, "", true},
		{"HOLDING: affirmed", Conclusion, "affirmed", true},
		{"Rule 12(b)(6) permits dismissal", "", "", false},
		{"The issue here is notice.", "", "", false},
	}

	for _, tt := range tests {
		s, rest, ok := g.heading(tt.line)
		if ok != tt.ok || s != tt.want || rest != tt.rest {
			t.Errorf("heading(%q) = %q, %q, %v; want %q, %q, %v", tt.line, s, rest, ok, tt.want, tt.rest, tt.ok)
		}
	}
}

func TestSplitRepeatedHeading(t *testing.T) {
	g := New()

	parts := g.Split("Preamble.\nIssue: first\nRule: r\nIssue: second")
	if parts[Issue] != "first second" {
		t.Errorf("issue = %q, want %q", parts[Issue], "first second")
	}
	if _, ok := parts[Application]; ok {
		t.Error("Expected no application section")
	}
}
