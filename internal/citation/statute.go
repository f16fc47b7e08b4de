package citation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/legalguard/internal/model"
)

const sectionMark = `(?:§{1,2}|[Ss]ec(?:tion|s)?\.?)`

var (
	// 42 U.S.C. § 1983
	titlePrefixed = regexp.MustCompile(`^(\d+)\s+(.+?)\s*` + sectionMark + `\s*(\S.*?)\.?$`)
	// Del. Code Ann. tit. 6, § 2708
	titleInline = regexp.MustCompile(`^(.+?)\s+tit\.\s*(\d+)\s*,?\s*` + sectionMark + `\s*(\S.*?)\.?$`)
	// Cal. Civ. Code § 1671
	untitled = regexp.MustCompile(`^(.+?)\s*` + sectionMark + `\s*(\S.*?)\.?$`)

	sectionForm = regexp.MustCompile(`^[0-9A-Za-z]+(?:[-.:–][0-9A-Za-z]+)*(?:\([0-9A-Za-z]+\))*(?:\s*(?:et seq\.?|[-–]\s*[0-9A-Za-z.:-]+))?$`)
)

// VerifyStatute validates a statutory citation against the code table:
// the code must be known, titled codes need a title within range and the
// section must be well formed
func (g *Guard) VerifyStatute(citation string) model.StatuteCitationResult {
	s := strings.Join(strings.Fields(citation), " ")
	result := model.StatuteCitationResult{Citation: citation}

	var rawCode, rawTitle, section string
	if m := titlePrefixed.FindStringSubmatch(s); m != nil {
		rawTitle, rawCode, section = m[1], m[2], m[3]
	} else if m := titleInline.FindStringSubmatch(s); m != nil {
		rawCode, rawTitle, section = m[1], m[2], m[3]
	} else if m := untitled.FindStringSubmatch(s); m != nil {
		rawCode, section = m[1], m[2]
	} else {
		result.Issues = []string{"missing section (expected '[Title] Code § Section')"}
		result.Message = "Invalid statute citation: " + result.Issues[0]
		return result
	}

	result.Section = strings.TrimSpace(section)
	if rawTitle != "" {
		result.Title, _ = strconv.Atoi(rawTitle)
	}

	var issues []string
	code, known := g.table.Code(strings.TrimRight(strings.TrimSpace(rawCode), ","))
	if !known {
		issues = append(issues, fmt.Sprintf("unknown code %q", strings.TrimSpace(rawCode)))
	} else {
		result.Code = code.Abbreviation
		issues = append(issues, checkTitle(code, rawTitle, result.Title)...)
	}

	if !sectionForm.MatchString(result.Section) {
		issues = append(issues, fmt.Sprintf("malformed section %q", result.Section))
	}

	result.Issues = issues
	result.Valid = len(issues) == 0
	if result.Valid {
		result.Message = "Valid statute citation: " + formatStatute(result)
	} else {
		result.Message = "Invalid statute citation: " + strings.Join(issues, "; ")
	}
	return result
}

func checkTitle(code Code, rawTitle string, title int) []string {
	if !code.Titled {
		if rawTitle != "" {
			return []string{fmt.Sprintf("%s is not divided into titles", code.Abbreviation)}
		}
		return nil
	}

	switch {
	case rawTitle == "":
		return []string{fmt.Sprintf("missing title for %s", code.Abbreviation)}
	case title <= 0:
		return []string{"title must be a positive number"}
	case code.MaxTitle > 0 && title > code.MaxTitle:
		return []string{fmt.Sprintf("title %d exceeds the last %s title (%d)", title, code.Abbreviation, code.MaxTitle)}
	}
	for _, r := range code.Reserved {
		if r == title {
			return []string{fmt.Sprintf("title %d of %s is reserved", title, code.Abbreviation)}
		}
	}
	return nil
}

func formatStatute(r model.StatuteCitationResult) string {
	if r.Title > 0 {
		return fmt.Sprintf("%d %s § %s", r.Title, r.Code, r.Section)
	}
	return fmt.Sprintf("%s § %s", r.Code, r.Section)
}
