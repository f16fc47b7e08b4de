// Package citation parses and validates case and statute citations against a
// reporter table, and extracts citation strings from briefs.
package citation

import (
	"regexp"
	"strconv"
	"strings"
)

// Components are the parts of a case citation
// ("Brown v. Board of Education, 347 U.S. 483, 495 (1954)")
type Components struct {
	Plaintiff string
	Defendant string
	Volume    int
	Reporter  string // as written
	Page      int
	Pinpoint  string
	Court     string
	Year      int

	HasCaseName bool
	HasLocator  bool // volume, reporter and page were all found
}

var (
	fullCitation = regexp.MustCompile(`^(.+?)\s+(?:v|vs)\.?\s+(.+?),\s*(\d+)\s+([A-Za-z][A-Za-z0-9.'’&\s]*?)\s+(\d+)(?:\s*,\s*(\d+(?:\s*[-–]\s*\d+)?))?(?:\s*\(([^)]*)\))?\s*[.;]?$`)

	caseName = regexp.MustCompile(`^\s*([^,]+?)\s+(?:v|vs)\.?\s+([^,]+)`)
	locator  = regexp.MustCompile(`(?:^|[\s,])(\d+)\s+([A-Za-z][A-Za-z0-9.'’&\s]*?)\s+(\d+)\b`)
	paren    = regexp.MustCompile(`\(([^)]*)\)`)
	courtYr  = regexp.MustCompile(`^(.*?)\s*(\d{4})$`)
)

// Parse splits a case citation into its components. When the full grammar does
// not match, the case name, locator and year are searched for separately so
// that every missing part can be reported.
func Parse(s string) Components {
	s = strings.Join(strings.Fields(s), " ")

	if m := fullCitation.FindStringSubmatch(s); m != nil {
		c := Components{
			Plaintiff:   trimParty(m[1]),
			Defendant:   trimParty(m[2]),
			Volume:      atoi(m[3]),
			Reporter:    strings.TrimSpace(m[4]),
			Page:        atoi(m[5]),
			Pinpoint:    strings.ReplaceAll(m[6], " ", ""),
			HasCaseName: true,
			HasLocator:  true,
		}
		c.Court, c.Year = splitCourtYear(m[7])
		return c
	}

	var c Components
	if m := caseName.FindStringSubmatch(s); m != nil {
		c.Plaintiff = trimParty(m[1])
		c.Defendant = trimParty(m[2])
		c.HasCaseName = c.Plaintiff != "" && c.Defendant != ""
	}
	if m := locator.FindStringSubmatch(s); m != nil {
		c.Volume = atoi(m[1])
		c.Reporter = strings.TrimSpace(m[2])
		c.Page = atoi(m[3])
		c.HasLocator = true
	}
	for _, m := range paren.FindAllStringSubmatch(s, -1) {
		if court, year := splitCourtYear(m[1]); year != 0 {
			c.Court, c.Year = court, year
			break
		}
	}
	return c
}

// splitCourtYear splits a parenthetical such as "9th Cir. 2019" into court and year
func splitCourtYear(p string) (string, int) {
	m := courtYr.FindStringSubmatch(strings.TrimSpace(p))
	if m == nil {
		return "", 0
	}
	return strings.TrimSpace(m[1]), atoi(m[2])
}

func trimParty(s string) string {
	return strings.Trim(strings.TrimSpace(s), ",;")
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
