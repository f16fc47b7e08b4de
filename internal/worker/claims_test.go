package worker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ppiankov/legalguard/internal/model"
)

func TestReadClaimsList(t *testing.T) {
	data := []byte(`
- id: d1
  kind: deadline
  input:
    signing_date: "2026-01-15"
    term: 30 business days
    claimed_deadline: "2026-02-14"
- kind: liability_cap
  input:
    contract_value: "5000000"
    cap_percentage: "200"
    claimed_cap: "15000000"
`)

	claims, err := ReadClaims(data)
	if err != nil {
		t.Fatalf("ReadClaims: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].ID != "d1" || claims[0].Kind != model.KindDeadline {
		t.Errorf("unexpected first claim: %s/%s", claims[0].ID, claims[0].Kind)
	}
	if claims[1].ID != "claim-2" {
		t.Errorf("expected generated id claim-2, got %q", claims[1].ID)
	}

	var in model.CapInput
	if err := claims[1].DecodeInput(&in); err != nil {
		t.Fatalf("DecodeInput: %v", err)
	}
	if in.ContractValue != "5000000" || in.CapPercentage != "200" {
		t.Errorf("unexpected input: %+v", in)
	}
}

func TestReadClaimsMappingAndJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"mapping", "claims:\n  - id: s1\n    kind: citation\n    input: {citation: \"347 U.S. 483\"}\n"},
		{"json", `{"claims": [{"id": "s1", "kind": "citation", "input": {"citation": "347 U.S. 483"}}]}`},
		{"json list", `[{"id": "s1", "kind": "citation", "input": {"citation": "347 U.S. 483"}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ReadClaims([]byte(tt.data))
			if err != nil {
				t.Fatalf("ReadClaims: %v", err)
			}
			if len(claims) != 1 || claims[0].ID != "s1" || claims[0].Kind != model.KindCitation {
				t.Errorf("unexpected claims: %+v", claims)
			}
		})
	}
}

func TestReadClaimsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown kind", "- kind: horoscope\n  input: {}\n"},
		{"missing kind", "- id: a\n  input: {}\n"},
		{"missing input", "- kind: citation\n"},
		{"input is a list", "- kind: citation\n  input: [a, b]\n"},
		{"extra field", "- kind: citation\n  input: {}\n  note: hi\n"},
		{"scalar document", "just text\n"},
		{"empty document", ""},
		{"wrong top-level key", "items: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadClaims([]byte(tt.data))
			if !errors.Is(err, ErrInvalidClaimsFile) {
				t.Errorf("expected ErrInvalidClaimsFile, got %v", err)
			}
		})
	}
}

func TestReadClaimsSyntaxError(t *testing.T) {
	_, err := ReadClaims([]byte("- kind: [unclosed\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, ErrInvalidClaimsFile) {
		t.Error("syntax errors should not be reported as schema violations")
	}
}

func TestSchemaAcceptsEveryKind(t *testing.T) {
	for _, kind := range model.Kinds {
		data := fmt.Sprintf("- kind: %s\n  input: {}\n", kind)
		if _, err := ReadClaims([]byte(data)); err != nil {
			t.Errorf("kind %s rejected: %v", kind, err)
		}
	}
}

func TestReadClaimsFileMissing(t *testing.T) {
	if _, err := ReadClaimsFile("/nonexistent/claims.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
