package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/legalguard/internal/model"
	"gopkg.in/yaml.v3"
)

func sampleOutcomes() []model.Outcome {
	return []model.Outcome{
		{
			ID:      "d1",
			Kind:    model.KindDeadline,
			Passed:  true,
			Summary: "Deadline verified: 2026-03-02",
			Result: model.DeadlineResult{
				Verified:         true,
				ComputedDeadline: "2026-03-02",
				Message:          "Deadline verified: 2026-03-02",
			},
		},
		{
			ID:      "l1",
			Kind:    model.KindLiabilityCap,
			Passed:  false,
			Summary: "Liability cap mismatch | claimed 15,000,000.00",
		},
	}
}

func TestNew(t *testing.T) {
	rep := New(sampleOutcomes())
	if rep.Verified {
		t.Error("expected report with a failure to be unverified")
	}
	if rep.Total != 2 || rep.Passed != 1 || rep.Failed != 1 {
		t.Errorf("unexpected tally: %+v", rep)
	}

	empty := New(nil)
	if !empty.Verified || empty.Outcomes == nil {
		t.Errorf("expected empty report to be verified with non-nil outcomes: %+v", empty)
	}
	if empty.Message() != "No verification performed" {
		t.Errorf("unexpected empty message %q", empty.Message())
	}
}

func TestSingle(t *testing.T) {
	res := model.DeadlineResult{Verified: false, Message: "Deadline mismatch"}
	rep := Single("deadline", res)

	if rep.Verified || rep.Total != 1 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if rep.Outcomes[0].Kind != model.KindDeadline || rep.Outcomes[0].Summary != "Deadline mismatch" {
		t.Errorf("unexpected outcome: %+v", rep.Outcomes[0])
	}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range []string{"json", "YAML", "yml", "md", "markdown", "text", ""} {
		if _, err := NewRenderer(format, false); err != nil {
			t.Errorf("NewRenderer(%q): %v", format, err)
		}
	}
	if _, err := NewRenderer("pdf", false); err == nil {
		t.Error("expected unknown format to be rejected")
	}
}

func TestRenderJSON(t *testing.T) {
	r, _ := NewRenderer(FormatJSON, false)
	var buf bytes.Buffer
	if err := r.Render(&buf, New(sampleOutcomes())); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded struct {
		Verified bool `json:"verified"`
		Outcomes []struct {
			ID     string                 `json:"id"`
			Result map[string]interface{} `json:"result"`
		} `json:"outcomes"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.Verified || len(decoded.Outcomes) != 2 {
		t.Errorf("unexpected decoded report: %+v", decoded)
	}
	if decoded.Outcomes[0].Result["computed_deadline"] != "2026-03-02" {
		t.Errorf("nested result not rendered: %v", decoded.Outcomes[0].Result)
	}
}

func TestRenderJSONIsDeterministic(t *testing.T) {
	r, _ := NewRenderer(FormatJSON, false)
	var a, b bytes.Buffer
	_ = r.Render(&a, New(sampleOutcomes()))
	_ = r.Render(&b, New(sampleOutcomes()))
	if diff := cmp.Diff(a.String(), b.String()); diff != "" {
		t.Errorf("renders differ (-first +second):\n%s", diff)
	}
}

func TestRenderYAML(t *testing.T) {
	r, _ := NewRenderer(FormatYAML, false)
	var buf bytes.Buffer
	if err := r.Render(&buf, New(sampleOutcomes())); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if decoded["verified"] != false || decoded["total"] != 2 {
		t.Errorf("unexpected header: %v", decoded)
	}
	if !strings.Contains(buf.String(), "computed_deadline:") {
		t.Errorf("expected nested result in YAML:\n%s", buf.String())
	}
}

func TestRenderMarkdown(t *testing.T) {
	r, _ := NewRenderer(FormatMarkdown, true)
	var buf bytes.Buffer
	if err := r.Render(&buf, New(sampleOutcomes())); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Contract Verification Report",
		"1 of 2 claims failed verification",
		"| d1 | Deadline | ✓ |",
		"| l1 | Liability Cap | ✗ | Liability cap mismatch \\| claimed 15,000,000.00 |",
		"### l1 (Liability Cap)",
		"not legal advice",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}

	noFooter, _ := NewRenderer(FormatMarkdown, false)
	buf.Reset()
	_ = noFooter.Render(&buf, New(sampleOutcomes()))
	if strings.Contains(buf.String(), "not legal advice") {
		t.Error("footer rendered when disabled")
	}
}

func TestRenderText(t *testing.T) {
	r, _ := NewRenderer(FormatText, false)
	var buf bytes.Buffer
	if err := r.Render(&buf, New(sampleOutcomes())); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "✓ [d1] deadline: Deadline verified: 2026-03-02\n" +
		"✗ [l1] liability_cap: Liability cap mismatch | claimed 15,000,000.00\n" +
		"\n1 of 2 claims verified\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFile(t *testing.T) {
	r, _ := NewRenderer(FormatJSON, false)
	path := filepath.Join(t.TempDir(), "report.json")
	if err := r.RenderFile(path, New(sampleOutcomes())); err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !json.Valid(data) {
		t.Error("file does not contain valid JSON")
	}
}

func TestKindTitle(t *testing.T) {
	tests := map[model.Kind]string{
		model.KindLiabilityCap:      "Liability Cap",
		model.KindChoiceOfLaw:       "Choice Of Law",
		model.KindLimitationCompare: "Limitation Compare",
		model.KindIRAC:              "IRAC",
	}
	for kind, want := range tests {
		if got := KindTitle(kind); got != want {
			t.Errorf("KindTitle(%s) = %q, want %q", kind, got, want)
		}
	}
}

func TestWriteGitHubOutputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_output")
	if err := os.WriteFile(path, []byte("existing=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := WriteGitHubOutputs(path, New(sampleOutcomes())); err != nil {
		t.Fatalf("WriteGitHubOutputs: %v", err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), data)
	}
	if lines[0] != "existing=1" {
		t.Error("existing outputs were overwritten")
	}
	if lines[1] != "verified=false" {
		t.Errorf("unexpected verified line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "results=[") {
		t.Errorf("unexpected results line %q", lines[2])
	}
	want := "message=Deadline verified: 2026-03-02 | Liability cap mismatch | claimed 15,000,000.00"
	if lines[3] != want {
		t.Errorf("message line = %q, want %q", lines[3], want)
	}
}

func TestWriteGitHubOutputsNoPath(t *testing.T) {
	if err := WriteGitHubOutputs("", New(nil)); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}
