// Package report renders verification outcomes as JSON, YAML, Markdown or
// plain text, and publishes them as GitHub Actions step outputs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/legalguard/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Formats lists the supported output formats
var Formats = []string{FormatJSON, FormatYAML, FormatMarkdown, FormatText}

// Report is the rendered unit: one or more claim outcomes and their tally
type Report struct {
	Verified bool            `json:"verified" yaml:"verified"`
	Total    int             `json:"total" yaml:"total"`
	Passed   int             `json:"passed" yaml:"passed"`
	Failed   int             `json:"failed" yaml:"failed"`
	Outcomes []model.Outcome `json:"outcomes" yaml:"outcomes"`
}

// New tallies outcomes into a report. An empty report is verified.
func New(outcomes []model.Outcome) Report {
	if outcomes == nil {
		outcomes = []model.Outcome{}
	}
	r := Report{Total: len(outcomes), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Passed {
			r.Passed++
		} else {
			r.Failed++
		}
	}
	r.Verified = r.Failed == 0
	return r
}

// Single wraps one guard result as a report
func Single(id string, res model.Result) Report {
	return New([]model.Outcome{{
		ID:      id,
		Kind:    res.Kind(),
		Passed:  res.Passed(),
		Summary: res.Summary(),
		Result:  res,
	}})
}

// Message joins the outcome summaries the way step outputs carry them
func (r Report) Message() string {
	if len(r.Outcomes) == 0 {
		return "No verification performed"
	}
	parts := make([]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		parts[i] = o.Summary
	}
	return strings.Join(parts, " | ")
}

// Renderer writes reports in one format
type Renderer struct {
	format        string
	includeFooter bool
}

// NewRenderer creates a renderer for format
func NewRenderer(format string, includeFooter bool) (*Renderer, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "md":
		f = FormatMarkdown
	case "yml":
		f = FormatYAML
	case "":
		f = FormatText
	}
	for _, known := range Formats {
		if f == known {
			return &Renderer{format: f, includeFooter: includeFooter}, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// Format returns the renderer's output format
func (r *Renderer) Format() string {
	return r.format
}

// Render writes rep to w
func (r *Renderer) Render(w io.Writer, rep Report) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, r.markdown(rep))
		return err
	default:
		_, err := io.WriteString(w, text(rep))
		return err
	}
}

// RenderFile writes rep to path, creating or truncating it
func (r *Renderer) RenderFile(path string, rep Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return r.Render(f, rep)
}

var titler = cases.Title(language.English)

// acronyms keep their capitals in headings
var acronyms = map[model.Kind]string{
	model.KindIRAC: "IRAC",
}

// KindTitle turns a claim kind into a heading: "liability_cap" -> "Liability Cap"
func KindTitle(k model.Kind) string {
	if a, ok := acronyms[k]; ok {
		return a
	}
	return titler.String(strings.ReplaceAll(string(k), "_", " "))
}

func verdict(passed bool) string {
	if passed {
		return "✓"
	}
	return "✗"
}

func text(rep Report) string {
	var b strings.Builder
	for _, o := range rep.Outcomes {
		if o.ID != "" {
			fmt.Fprintf(&b, "%s [%s] %s: %s\n", verdict(o.Passed), o.ID, o.Kind, o.Summary)
		} else {
			fmt.Fprintf(&b, "%s %s\n", verdict(o.Passed), o.Summary)
		}
	}
	if rep.Total > 1 {
		fmt.Fprintf(&b, "\n%d of %d claims verified\n", rep.Passed, rep.Total)
	}
	return b.String()
}

func (r *Renderer) markdown(rep Report) string {
	var b strings.Builder

	b.WriteString("# Contract Verification Report\n\n")
	status := "All claims verified"
	if !rep.Verified {
		status = fmt.Sprintf("%d of %d claims failed verification", rep.Failed, rep.Total)
	}
	fmt.Fprintf(&b, "**Status:** %s %s\n\n", verdict(rep.Verified), status)

	b.WriteString("| ID | Check | Verdict | Summary |\n")
	b.WriteString("|----|-------|---------|---------|\n")
	for _, o := range rep.Outcomes {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(o.ID), KindTitle(o.Kind), verdict(o.Passed), escapeCell(o.Summary))
	}

	var failed []model.Outcome
	for _, o := range rep.Outcomes {
		if !o.Passed {
			failed = append(failed, o)
		}
	}
	if len(failed) > 0 {
		b.WriteString("\n## Failures\n")
		for _, o := range failed {
			fmt.Fprintf(&b, "\n### %s (%s)\n\n%s\n", o.ID, KindTitle(o.Kind), o.Summary)
			if o.Result != nil {
				if data, err := yaml.Marshal(o.Result); err == nil {
					fmt.Fprintf(&b, "\n```yaml\n%s```\n", data)
				}
			}
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n\n_Generated by legalguard. Deterministic arithmetic, calendar and table checks; not legal advice._\n")
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
