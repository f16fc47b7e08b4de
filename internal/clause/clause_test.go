package clause

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/legalguard/internal/model"
)

func TestCheckConsistencyLiability(t *testing.T) {
	g := New()

	result := g.CheckConsistency([]model.Clause{
		{ID: "c1", Text: "Liability capped at $10k", Category: "LIABILITY", Value: "10000", Unit: "$"},
		{ID: "c2", Text: "Minimum penalty is $50k", Category: "LIABILITY", Value: "50000", Unit: "USD"},
	})

	if result.Consistent || result.Verified {
		t.Fatal("Expected contradiction")
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("Expected 1 conflict, got %v", result.Conflicts)
	}
	for _, id := range []string{"c1", "c2"} {
		if !strings.Contains(result.Conflicts[0], id) {
			t.Errorf("conflict %q does not name %s", result.Conflicts[0], id)
		}
	}
	if diff := cmp.Diff([]string{"LIABILITY/USD in [50000, 10000]"}, result.Intervals); diff != "" {
		t.Errorf("Intervals mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckConsistencyTermination(t *testing.T) {
	g := New()

	consistent := g.CheckConsistency([]model.Clause{
		{ID: "t1", Text: "Terminate with at least 30 days notice", Category: "termination", Value: "30", Unit: "days"},
		{ID: "t2", Text: "Terminate with at least 90 days notice", Category: "termination", Value: "90", Unit: "days"},
	})
	if !consistent.Consistent {
		t.Errorf("Expected >=30 and >=90 to be consistent: %s", consistent.Message)
	}

	contradictory := g.CheckConsistency([]model.Clause{
		{ID: "t1", Text: "Terminate with at least 90 days notice", Category: "termination", Value: "90", Unit: "days"},
		{ID: "t2", Text: "Termination takes effect in less than 30 days", Category: "termination", Value: "30", Unit: "days"},
	})
	if contradictory.Consistent {
		t.Error("Expected >=90 and <30 to contradict")
	}
}

func TestCheckConsistencyDegenerate(t *testing.T) {
	g := New()

	if r := g.CheckConsistency(nil); !r.Consistent {
		t.Errorf("Expected empty clause list to be consistent: %s", r.Message)
	}

	r := g.CheckConsistency([]model.Clause{
		{ID: "c1", Text: "Governed by the laws of Delaware"},
		{ID: "c2", Text: "Invoices may be paid at any time", Value: "0", Unit: "days"},
	})
	if !r.Consistent {
		t.Errorf("Expected unmappable clauses to be consistent: %s", r.Message)
	}
	if diff := cmp.Diff([]string{"c1", "c2"}, r.Ignored); diff != "" {
		t.Errorf("Ignored mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckConsistencyDuplicateIDs(t *testing.T) {
	g := New()

	r := g.CheckConsistency([]model.Clause{
		{ID: "c1", Text: "at least 30 days", Value: "30", Unit: "days"},
		{ID: "c1", Text: "at least 60 days", Value: "60", Unit: "days"},
	})
	if r.Consistent {
		t.Error("Expected duplicate ids to be malformed")
	}
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "duplicate") {
		t.Errorf("Expected duplicate id issue, got %v", r.Issues)
	}
}

func TestCheckConsistencyPermissionAndProhibition(t *testing.T) {
	g := New()

	r := g.CheckConsistency([]model.Clause{
		{ID: "s1", Text: "Seller may terminate this Agreement upon 30 days notice", Category: "termination", Value: "30", Unit: "days"},
		{ID: "s2", Text: "Seller shall not terminate this Agreement"},
	})
	if r.Consistent || r.Verified {
		t.Fatalf("Expected permission and prohibition to contradict: %s", r.Message)
	}
	if diff := cmp.Diff([]string{"terminate: clause s1 permits seller but clause s2 prohibits it"}, r.Conflicts); diff != "" {
		t.Errorf("Conflicts mismatch (-want +got):\n%s", diff)
	}
	if len(r.Ignored) != 0 {
		t.Errorf("Expected no ignored clauses, got %v", r.Ignored)
	}
	if !strings.HasPrefix(r.Message, "Contradiction:") {
		t.Errorf("Message = %q", r.Message)
	}
}

func TestCheckConsistencyExclusiveGrants(t *testing.T) {
	g := New()

	r := g.CheckConsistency([]model.Clause{
		{ID: "g1", Text: "Licensor grants Licensee an exclusive license in Europe"},
		{ID: "g2", Text: "Licensor grants Distributor an exclusive license in Europe"},
		{ID: "g3", Text: "Licensor grants Reseller an exclusive license in Asia"},
	})
	if r.Consistent {
		t.Fatal("Expected one exclusive right granted twice to contradict")
	}
	if len(r.Conflicts) != 1 || !strings.Contains(r.Conflicts[0], "g1") || !strings.Contains(r.Conflicts[0], "g2") {
		t.Errorf("Conflicts = %v", r.Conflicts)
	}
}

func TestCheckConsistencyEchoesClauseIDs(t *testing.T) {
	g := New()

	r := g.CheckConsistency([]model.Clause{
		{ID: "a", Text: "Either party may terminate on notice of 60 days prior to the renewal date", Category: "TERMINATION", Value: "60", Unit: "days"},
		{ID: "b", Text: "Termination requires at least 90 days notice", Category: "TERMINATION", Value: "90", Unit: "days"},
	})
	if !r.Consistent {
		t.Errorf("Expected notice bounds to be consistent: %s", r.Message)
	}
	if diff := cmp.Diff([]string{"a", "b"}, r.ClauseIDs); diff != "" {
		t.Errorf("ClauseIDs mismatch (-want +got):\n%s", diff)
	}
}
