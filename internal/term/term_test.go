package term

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want DateOffset
	}{
		{"30 business days", DateOffset{30, BusinessDay}},
		{"30 Business Days", DateOffset{30, BusinessDay}},
		{"10 working days", DateOffset{10, BusinessDay}},
		{"1 business day", DateOffset{1, BusinessDay}},
		{"45 days", DateOffset{45, CalendarDay}},
		{"net 45 days", DateOffset{45, CalendarDay}},
		{"within 14 calendar days", DateOffset{14, CalendarDay}},
		{"30-day", DateOffset{30, CalendarDay}},
		{"90-day period", DateOffset{90, CalendarDay}},
		{"2 weeks", DateOffset{14, CalendarDay}},
		{"2 business weeks", DateOffset{10, BusinessDay}},
		{"6 months", DateOffset{6, Month}},
		{"1 year", DateOffset{1, Year}},
		{"  3   years ", DateOffset{3, Year}},
		{"0 days", DateOffset{0, CalendarDay}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrMissingMagnitude},
		{"business days", ErrMissingMagnitude},
		{"thirty days", ErrMissingMagnitude},
		{"-5 days", ErrNegativeMagnitude},
		{"net 30", ErrUnknownUnit},
		{"30 fortnights", ErrUnknownUnit},
		{"30 business", ErrUnknownUnit},
		{"2635249153387078803 weeks", ErrMagnitudeTooLarge},
		{"99999999999999999999 days", ErrMagnitudeTooLarge},
		{"261001 business days", ErrMagnitudeTooLarge},
		{"52286 weeks", ErrMagnitudeTooLarge},
		{"1001 years", ErrMagnitudeTooLarge},
	}

	for _, tt := range tests {
		_, err := Parse(tt.in)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
		}

		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error is %T, want *ParseError", tt.in, err)
		} else if pe.Term != tt.in {
			t.Errorf("ParseError.Term = %q, want %q", pe.Term, tt.in)
		}
	}
}

func TestParseMagnitudeCeiling(t *testing.T) {
	tests := []struct {
		in   string
		want DateOffset
	}{
		{"261000 business days", DateOffset{261000, BusinessDay}},
		{"52285 weeks", DateOffset{365995, CalendarDay}},
		{"12000 months", DateOffset{12000, Month}},
		{"1000 years", DateOffset{1000, Year}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDateOffsetString(t *testing.T) {
	if got := (DateOffset{30, BusinessDay}).String(); got != "30 business days" {
		t.Errorf("String() = %q", got)
	}
	if got := (DateOffset{1, Month}).String(); got != "1 month" {
		t.Errorf("String() = %q", got)
	}
}
