package liability

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// plainDecimal is base-10 positional notation; exponents are refused so an
// amount's rendering stays proportional to its input
var plainDecimal = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)$`)

// ParseAmount parses a base-10 decimal, tolerating currency symbols, thousands
// separators, a trailing "%" and a trailing "x" multiplier mark
// ("$5,000,000.00", "200%", "3x")
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "USD")
	clean = strings.TrimSuffix(clean, "%")
	clean = strings.TrimSuffix(clean, "x")
	clean = strings.NewReplacer("$", "", ",", "", "_", "", " ", "").Replace(clean)

	if clean == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	if !plainDecimal.MatchString(clean) {
		return decimal.Zero, fmt.Errorf("not a decimal number: %q", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a decimal number: %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount: %q", s)
	}
	return d, nil
}

// Round2 rounds to cents, half away from zero (half-up for the non-negative
// amounts the guard accepts)
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns pct% of base, rounded to cents
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round2(base.Mul(pct).Shift(-2))
}

// FormatMoney renders an amount with two decimals and thousands separators
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + frac
}

// formatSigned renders a difference with an explicit sign
func formatSigned(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}
