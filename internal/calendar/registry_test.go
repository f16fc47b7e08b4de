package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ppiankov/legalguard/internal/cache"
)

func holidayDates(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, FormatDate(e.Date))
	}
	return out
}

func TestUSFederal2026(t *testing.T) {
	cal, warnings := Default().Calendar("US", "")
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	want := []string{
		"2026-01-01", "2026-01-19", "2026-02-16", "2026-05-25", "2026-06-19",
		"2026-07-03", "2026-07-04", "2026-09-07", "2026-10-12", "2026-11-11",
		"2026-11-26", "2026-12-25",
	}
	if diff := cmp.Diff(want, holidayDates(cal.Holidays(2026))); diff != "" {
		t.Errorf("US 2026 holidays mismatch (-want +got):\n%s", diff)
	}
}

func TestObservedSubstituteCrossesYear(t *testing.T) {
	cal, _ := Default().Calendar("US", "")

	e, ok := cal.IsHoliday(Date(2021, time.December, 31))
	if !ok {
		t.Fatal("Expected 2021-12-31 to be the observed New Year's Day 2022")
	}
	if !e.Observed || e.Name != "New Year's Day (observed)" {
		t.Errorf("Unexpected entry: %+v", e)
	}
}

func TestGBChristmasSubstitutes(t *testing.T) {
	cal, _ := Default().Calendar("UK", "")

	tests := []struct {
		date time.Time
		want string
	}{
		{Date(2021, time.December, 27), "Christmas Day (observed)"},
		{Date(2021, time.December, 28), "Boxing Day (observed)"},
		{Date(2022, time.December, 26), "Boxing Day"},
		{Date(2022, time.December, 27), "Christmas Day (observed)"},
	}

	for _, tt := range tests {
		e, ok := cal.IsHoliday(tt.date)
		if !ok {
			t.Errorf("%s: expected holiday", FormatDate(tt.date))
			continue
		}
		if e.Name != tt.want {
			t.Errorf("%s: name = %q, want %q", FormatDate(tt.date), e.Name, tt.want)
		}
	}
}

func TestGBOneOffs(t *testing.T) {
	cal, _ := Default().Calendar("GB", "ENG")

	if _, ok := cal.IsHoliday(Date(2022, time.May, 30)); ok {
		t.Error("Spring bank holiday 2022 moved to June 2; May 30 should be a working day")
	}
	for _, d := range []time.Time{Date(2022, time.June, 2), Date(2022, time.June, 3), Date(2023, time.May, 8)} {
		if _, ok := cal.IsHoliday(d); !ok {
			t.Errorf("%s: expected bank holiday", FormatDate(d))
		}
	}
}

func TestCalendarResolution(t *testing.T) {
	reg := Default()

	tests := []struct {
		country, subdivision string
		wantID               string
		wantWarnings         int
	}{
		{"US", "", "US", 0},
		{"United States", "California", "US-CA", 0},
		{"usa", "ca", "US-CA", 0},
		{"UK", "", "GB-ENG", 0},
		{"England", "", "GB-ENG", 0},
		{"England and Wales", "", "GB-ENG", 0},
		{"GB", "Scotland", "GB-SCT", 0},
		{"Scotland", "", "GB-SCT", 0},
		{"California", "", "US-CA", 0},
		{"Germany", "Bayern", "DE-BY", 0},
		{"CA", "Québec", "CA-QC", 0},
		{"US", "Narnia", "US", 1},
		{"ZZ", "", BaseID, 1},
		{"", "", BaseID, 1},
	}

	for _, tt := range tests {
		cal, warnings := reg.Calendar(tt.country, tt.subdivision)
		if cal.ID != tt.wantID {
			t.Errorf("Calendar(%q, %q) = %s, want %s", tt.country, tt.subdivision, cal.ID, tt.wantID)
		}
		if len(warnings) != tt.wantWarnings {
			t.Errorf("Calendar(%q, %q) warnings = %v, want %d", tt.country, tt.subdivision, warnings, tt.wantWarnings)
		}
	}
}

func TestSubdivisionAddsToNational(t *testing.T) {
	cal, _ := Default().Calendar("US", "CA")

	for _, d := range []time.Time{Date(2026, time.March, 31), Date(2026, time.November, 27), Date(2026, time.November, 26)} {
		if _, ok := cal.IsHoliday(d); !ok {
			t.Errorf("%s: expected California holiday", FormatDate(d))
		}
	}

	national, _ := Default().Calendar("US", "")
	if _, ok := national.IsHoliday(Date(2026, time.March, 31)); ok {
		t.Error("Cesar Chavez Day must not leak into the federal calendar")
	}
}

func TestYearSetMemoised(t *testing.T) {
	memo := cache.NewMemoryCache()
	reg, err := NewRegistry(holidaysYAML, memo)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	cal, _ := reg.Calendar("US", "")
	first := cal.Holidays(2026)
	second := cal.Holidays(2026)

	if memo.Len() != 1 {
		t.Errorf("Expected 1 memoised year, got %d", memo.Len())
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("memoised year differs (-first +second):\n%s", diff)
	}
}

func TestNewRegistryRejectsBadTables(t *testing.T) {
	tables := map[string]string{
		"version":     "version: 2.0.0\ncountries: []\n",
		"shape":       "version: 1.0.0\ncountries:\n  - code: XX\n    holidays:\n      - {name: Bad, month: 1}\n",
		"weekday":     "version: 1.0.0\ncountries:\n  - code: XX\n    holidays:\n      - {name: Bad, month: 1, weekday: funday, nth: 1}\n",
		"duplicate":   "version: 1.0.0\ncountries:\n  - code: XX\n  - code: XX\n",
		"default sub": "version: 1.0.0\ncountries:\n  - code: XX\n    default_subdivision: YY\n",
	}

	for name, data := range tables {
		if _, err := NewRegistry([]byte(data), cache.NewMemoryCache()); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
