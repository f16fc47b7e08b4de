package citation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	got := Parse("Smith  v. Jones, 123 F. 3d 456, 460-62 (9th Cir. 1999)")
	want := Components{
		Plaintiff:   "Smith",
		Defendant:   "Jones",
		Volume:      123,
		Reporter:    "F. 3d",
		Page:        456,
		Pinpoint:    "460-62",
		Court:       "9th Cir.",
		Year:        1999,
		HasCaseName: true,
		HasLocator:  true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFallback(t *testing.T) {
	c := Parse("347 U.S. 483 (1954)")
	if c.HasCaseName {
		t.Error("Expected no case name")
	}
	if !c.HasLocator || c.Volume != 347 || c.Page != 483 || c.Year != 1954 {
		t.Errorf("Unexpected components: %+v", c)
	}

	c = Parse("Brown v. Board of Education (1954)")
	if !c.HasCaseName || c.HasLocator {
		t.Errorf("Expected case name without locator, got %+v", c)
	}
}

func TestVerify(t *testing.T) {
	g := New()

	tests := []struct {
		name     string
		citation string
		valid    bool
		reporter string
		issues   []string // substrings, one per expected issue
	}{
		{
			name:     "landmark",
			citation: "Brown v. Board of Education, 347 U.S. 483 (1954)",
			valid:    true,
			reporter: "U.S.",
		},
		{
			name:     "vs and unpunctuated reporter",
			citation: "Roe vs. Wade, 410 US 113 (1973)",
			valid:    true,
			reporter: "U.S.",
		},
		{
			name:     "spaced series reporter with pinpoint",
			citation: "Smith v. Jones, 123 F. 3d 456, 460 (9th Cir. 1999)",
			valid:    true,
			reporter: "F.3d",
		},
		{
			name:     "missing year",
			citation: "Smith v. Jones, 123 F.3d 456",
			issues:   []string{"missing year"},
		},
		{
			name:     "year after series closed",
			citation: "Smith v. Jones, 123 F.3d 456 (9th Cir. 2023)",
			issues:   []string{"after F.3d ceased publication"},
		},
		{
			name:     "year before series began",
			citation: "Smith v. Jones, 12 F.4th 456 (2d Cir. 2019)",
			issues:   []string{"before F.4th began publication"},
		},
		{
			name:     "volume beyond series",
			citation: "Smith v. Jones, 1200 F.2d 456 (1990)",
			issues:   []string{"volume 1200 exceeds"},
		},
		{
			name:     "unknown reporter with hint",
			citation: "Smith v. Jones, 12 F.5th 456 (2023)",
			issues:   []string{`did you mean "F.4th"`},
		},
		{
			name:     "missing case name",
			citation: "347 U.S. 483 (1954)",
			issues:   []string{"missing case name"},
		},
		{
			name:     "missing locator",
			citation: "Brown v. Board of Education (1954)",
			issues:   []string{"missing volume, reporter or page"},
		},
		{
			name:     "zero volume and page",
			citation: "Smith v. Jones, 0 F.3d 0 (1999)",
			issues:   []string{"volume must be a positive number", "page must be a positive number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := g.Verify(tt.citation)
			if r.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (issues %v)", r.Valid, tt.valid, r.Issues)
			}
			if tt.valid {
				if r.Reporter != tt.reporter {
					t.Errorf("Reporter = %q, want %q", r.Reporter, tt.reporter)
				}
				if !strings.HasPrefix(r.Message, "Valid citation: ") {
					t.Errorf("Unexpected message %q", r.Message)
				}
				return
			}

			if len(r.Issues) != len(tt.issues) {
				t.Fatalf("Expected %d issues, got %v", len(tt.issues), r.Issues)
			}
			for i, want := range tt.issues {
				if !strings.Contains(r.Issues[i], want) {
					t.Errorf("Issue %d = %q, want it to contain %q", i, r.Issues[i], want)
				}
			}
			if !strings.HasPrefix(r.Message, "Invalid citation: ") {
				t.Errorf("Unexpected message %q", r.Message)
			}
		})
	}
}

func TestVerifyYearOptional(t *testing.T) {
	r := New(WithRequireYear(false)).Verify("Smith v. Jones, 123 F.3d 456")
	if !r.Valid {
		t.Errorf("Expected valid without year, got issues %v", r.Issues)
	}
}

func TestVerifyBatch(t *testing.T) {
	r := New().VerifyBatch([]string{
		"Brown v. Board of Education, 347 U.S. 483 (1954)",
		"Roe v. Wade, 410 U.S. 113 (1973)",
		"Smith v. Jones, 123 F.3d 456",
	})

	if r.Valid || r.Total != 3 || r.ValidCount != 2 || r.InvalidCount != 1 {
		t.Errorf("Unexpected totals: %+v", r)
	}
	if len(r.Failures) != 1 || !strings.HasPrefix(r.Failures[0], "Smith v. Jones") {
		t.Errorf("Unexpected failures: %v", r.Failures)
	}
	if r.Message != "1 of 3 citations have issues" {
		t.Errorf("Unexpected message %q", r.Message)
	}
}

func TestVerifyStatute(t *testing.T) {
	g := New()

	tests := []struct {
		citation string
		valid    bool
		code     string
		title    int
		section  string
		issue    string
	}{
		{"42 U.S.C. § 1983", true, "U.S.C.", 42, "1983", ""},
		{"42 USC § 2000e-2(a)", true, "U.S.C.", 42, "2000e-2(a)", ""},
		{"Cal. Civ. Code § 1671", true, "Cal. Civ. Code", 0, "1671", ""},
		{"U.C.C. § 2-207", true, "U.C.C.", 0, "2-207", ""},
		{"Del. Code Ann. tit. 6, § 2708", true, "Del. Code Ann.", 6, "2708", ""},
		{"U.S.C. § 1983", false, "U.S.C.", 0, "1983", "missing title"},
		{"60 U.S.C. § 1", false, "U.S.C.", 60, "1", "exceeds the last U.S.C. title"},
		{"53 U.S.C. § 101", false, "U.S.C.", 53, "101", "reserved"},
		{"Foo Code § 12", false, "", 0, "12", "unknown code"},
		{"42 U.S.C. 1983", false, "", 0, "", "missing section"},
	}

	for _, tt := range tests {
		r := g.VerifyStatute(tt.citation)
		if r.Valid != tt.valid {
			t.Errorf("VerifyStatute(%q).Valid = %v, want %v (issues %v)", tt.citation, r.Valid, tt.valid, r.Issues)
			continue
		}
		if r.Code != tt.code || r.Title != tt.title || r.Section != tt.section {
			t.Errorf("VerifyStatute(%q) = %s/%d/%s, want %s/%d/%s", tt.citation, r.Code, r.Title, r.Section, tt.code, tt.title, tt.section)
		}
		if tt.issue != "" && !strings.Contains(strings.Join(r.Issues, "; "), tt.issue) {
			t.Errorf("VerifyStatute(%q) issues %v, want %q", tt.citation, r.Issues, tt.issue)
		}
	}
}

func TestExtract(t *testing.T) {
	text := `As held in Brown v. Board of Education, 347 U.S. 483 (1954), separate is not equal.
See also Roe v. Wade, 410 U.S. 113, 120 (1973). In Smith v. Jones, 123 F.3d 456 (9th Cir. 1999),
the court agreed. Brown v. Board of Education, 347 U.S. 483 (1954) is cited again.`

	want := []string{
		"Brown v. Board of Education, 347 U.S. 483 (1954)",
		"Roe v. Wade, 410 U.S. 113, 120 (1973)",
		"Smith v. Jones, 123 F.3d 456 (9th Cir. 1999)",
	}
	if diff := cmp.Diff(want, Extract(text)); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}

	if got := Extract("No citations here."); len(got) != 0 {
		t.Errorf("Expected no citations, got %v", got)
	}
}

func TestExtractHTML(t *testing.T) {
	brief := `<html><head><title>Brief</title>
<script>var example = "Fake v. Case, 1 U.S. 1 (1800)";</script></head>
<body><p>In <em>Brown v. Board of Education</em>, 347 U.S. 483 (1954), the Court held.</p></body></html>`

	got, err := ExtractHTML(strings.NewReader(brief))
	if err != nil {
		t.Fatalf("ExtractHTML: %v", err)
	}

	want := []string{"Brown v. Board of Education, 347 U.S. 483 (1954)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractHTML mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractHTMLMainContent(t *testing.T) {
	page := `<html><body>
<nav><a href="/x">Roe v. Wade, 410 U.S. 113 (1973)</a></nav>
<aside>Related: Miranda v. Arizona, 384 U.S. 436 (1966)</aside>
<article role="main"><h1>Opinion</h1>
<p>We follow Marbury v. Madison, 5 U.S. 137 (1803).</p>
<p>See Gideon v. Wainwright, 372 U.S. 335, 344 (1963).</p></article>
</body></html>`

	got, err := ExtractHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ExtractHTML: %v", err)
	}

	want := []string{
		"Marbury v. Madison, 5 U.S. 137 (1803)",
		"Gideon v. Wainwright, 372 U.S. 335, 344 (1963)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractHTML mismatch (-want +got):\n%s", diff)
	}
}

func TestTable(t *testing.T) {
	tbl := DefaultTable()

	for raw, want := range map[string]string{
		"US":       "U.S.",
		"f. 3D":    "F.3d",
		"F. App'x": "Fed. Appx.",
		"L.Ed.2d":  "L. Ed. 2d",
	} {
		r, ok := tbl.Reporter(raw)
		if !ok || r.Abbreviation != want {
			t.Errorf("Reporter(%q) = %q, %v; want %q", raw, r.Abbreviation, ok, want)
		}
	}

	if hint, ok := tbl.Suggest("F.5th"); !ok || hint != "F.4th" {
		t.Errorf("Suggest(F.5th) = %q, %v", hint, ok)
	}
	if _, ok := tbl.Suggest("Xyzzy"); ok {
		t.Error("Expected no suggestion for Xyzzy")
	}
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	data := []byte(`version: 1.0.0
reporters:
  - {abbreviation: "F.3d", start: 1993}
  - {abbreviation: "F. 3d", start: 1993}
`)
	if _, err := NewTable(data); err == nil {
		t.Error("Expected duplicate reporter keys to be rejected")
	}
}
