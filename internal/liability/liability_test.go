package liability

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/legalguard/internal/model"
)

func TestVerifyCap(t *testing.T) {
	g := New()

	tests := []struct {
		name         string
		in           model.CapInput
		wantVerified bool
		wantComputed string
		wantDiff     string
	}{
		{"overstated cap", model.CapInput{ContractValue: "5000000", CapPercentage: "200", ClaimedCap: "15000000"}, false, "10000000.00", "5000000.00"},
		{"correct cap", model.CapInput{ContractValue: "5000000", CapPercentage: "200", ClaimedCap: "10000000"}, true, "10000000.00", "0.00"},
		{"formatted input", model.CapInput{ContractValue: "$1,250,000.00", CapPercentage: "12.5%", ClaimedCap: "$156,250"}, true, "156250.00", "0.00"},
		{"half-up rounding", model.CapInput{ContractValue: "0.10", CapPercentage: "5", ClaimedCap: "0.01"}, true, "0.01", "0.00"},
		{"understated", model.CapInput{ContractValue: "100", CapPercentage: "50", ClaimedCap: "49.99"}, false, "50.00", "-0.01"},
		{"claim rounded to cents", model.CapInput{ContractValue: "100", CapPercentage: "50", ClaimedCap: "50.004"}, true, "50.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := g.VerifyCap(tt.in)
			if result.Verified != tt.wantVerified {
				t.Errorf("Verified = %v, want %v (%s)", result.Verified, tt.wantVerified, result.Message)
			}
			if result.ComputedCap != tt.wantComputed {
				t.Errorf("ComputedCap = %s, want %s", result.ComputedCap, tt.wantComputed)
			}
			if result.Difference != tt.wantDiff {
				t.Errorf("Difference = %s, want %s", result.Difference, tt.wantDiff)
			}
		})
	}
}

func TestVerifyCapMalformed(t *testing.T) {
	g := New()

	tests := []struct {
		in    model.CapInput
		field string
	}{
		{model.CapInput{ContractValue: "-100", CapPercentage: "50", ClaimedCap: "50"}, "contract_value"},
		{model.CapInput{ContractValue: "100", CapPercentage: "half", ClaimedCap: "50"}, "cap_percentage"},
		{model.CapInput{ContractValue: "100", CapPercentage: "50", ClaimedCap: ""}, "claimed_cap"},
		{model.CapInput{ContractValue: "1e900000000", CapPercentage: "50", ClaimedCap: "50"}, "contract_value"},
		{model.CapInput{ContractValue: "100", CapPercentage: "5E1", ClaimedCap: "50"}, "cap_percentage"},
	}

	for _, tt := range tests {
		result := g.VerifyCap(tt.in)
		if result.Verified {
			t.Errorf("%s: expected unverified", tt.field)
		}
		if !strings.Contains(result.Message, tt.field) {
			t.Errorf("%s: message %q does not name the field", tt.field, result.Message)
		}
	}
}

func TestVerifyCapTolerance(t *testing.T) {
	g := New(WithTolerance(decimal.RequireFromString("1")))

	result := g.VerifyCap(model.CapInput{ContractValue: "1000", CapPercentage: "100", ClaimedCap: "1009.99"})
	if !result.Verified {
		t.Errorf("Expected claim within 1%% to verify: %s", result.Message)
	}

	result = g.VerifyCap(model.CapInput{ContractValue: "1000", CapPercentage: "100", ClaimedCap: "1010.01"})
	if result.Verified {
		t.Error("Expected claim beyond 1% to fail")
	}
}

func TestVerifyTiered(t *testing.T) {
	g := New()
	tiers := []model.Tier{
		{Base: "1000000", Percentage: "100"},
		{Base: "500000", Percentage: "50"},
		{Base: "333.33", Percentage: "33.333"},
	}

	// 1000000.00 + 250000.00 + 111.11 (111.1088... rounded per tier)
	result := g.VerifyTiered(model.TieredInput{Tiers: tiers, ClaimedTotal: "1250111.11"})
	if !result.Verified {
		t.Errorf("Expected verified: %s", result.Message)
	}
	if result.ComputedTotal != "1250111.11" {
		t.Errorf("ComputedTotal = %s", result.ComputedTotal)
	}
	if len(result.Tiers) != 3 {
		t.Errorf("Expected 3 tier lines, got %v", result.Tiers)
	}

	result = g.VerifyTiered(model.TieredInput{ClaimedTotal: "0"})
	if result.Verified {
		t.Error("Expected empty schedule to be unverifiable")
	}
}

func TestVerifyIndemnity(t *testing.T) {
	g := New()

	result := g.VerifyIndemnity(model.IndemnityInput{AnnualFee: "120000", Multiplier: "3x", ClaimedLimit: "360000"})
	if !result.Verified {
		t.Errorf("Expected verified: %s", result.Message)
	}

	result = g.VerifyIndemnity(model.IndemnityInput{AnnualFee: "120000", Multiplier: "3", ClaimedLimit: "300000"})
	if result.Verified {
		t.Error("Expected 300000 to be rejected")
	}
	if result.Difference != "-60000.00" {
		t.Errorf("Difference = %s, want -60000.00", result.Difference)
	}
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"$5,000,000.00": "5000000",
		"200%":          "200",
		"3x":            "3",
		".5":            "0.5",
		"USD 10":        "10",
	}
	for in, want := range valid {
		got, err := ParseAmount(in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", in, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}

	for _, in := range []string{"1e900000000", "1E3", "0x10", "1.2.3", "-5", ""} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%q) accepted", in)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"999.5", "$999.50"},
		{"1000", "$1,000.00"},
		{"10000000", "$10,000,000.00"},
		{"-5000000", "-$5,000,000.00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
