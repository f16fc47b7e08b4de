// Package liability verifies claimed liability caps, tiered liability totals
// and indemnity limits with exact decimal arithmetic.
package liability

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/legalguard/internal/model"
)

// Guard verifies liability arithmetic
type Guard struct {
	tolerance decimal.Decimal // fraction of the computed amount; zero means exact
}

// Option configures a Guard
type Option func(*Guard)

// WithTolerance accepts claims within percent% of the computed amount.
// The default is exact equality at cent precision.
func WithTolerance(percent decimal.Decimal) Option {
	return func(g *Guard) {
		g.tolerance = percent.Div(hundred)
	}
}

// New creates a liability guard
func New(opts ...Option) *Guard {
	g := &Guard{tolerance: decimal.Zero}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// matches compares a claim (rounded to cents) with a computed amount
func (g *Guard) matches(claimed, computed decimal.Decimal) bool {
	claimed = Round2(claimed)
	if g.tolerance.IsZero() {
		return claimed.Equal(computed)
	}
	return claimed.Sub(computed).Abs().LessThanOrEqual(computed.Mul(g.tolerance))
}

// VerifyCap checks claimed_cap == contract_value * cap_percentage / 100
func (g *Guard) VerifyCap(in model.CapInput) model.LiabilityResult {
	result := model.LiabilityResult{
		ContractValue: in.ContractValue,
		CapPercentage: in.CapPercentage,
		ClaimedCap:    in.ClaimedCap,
	}

	value, err := ParseAmount(in.ContractValue)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: contract_value: %v", err)
		return result
	}
	pct, err := ParseAmount(in.CapPercentage)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: cap_percentage: %v", err)
		return result
	}
	claimed, err := ParseAmount(in.ClaimedCap)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: claimed_cap: %v", err)
		return result
	}

	computed := Percent(value, pct)
	diff := claimed.Sub(computed)

	result.ContractValue = value.StringFixed(2)
	result.CapPercentage = pct.String()
	result.ClaimedCap = claimed.StringFixed(2)
	result.ComputedCap = computed.StringFixed(2)
	result.Difference = diff.StringFixed(2)
	result.Verified = g.matches(claimed, computed)

	if result.Verified {
		result.Message = fmt.Sprintf("Liability cap verified: %s%% of %s is %s",
			pct, FormatMoney(value), FormatMoney(computed))
	} else {
		result.Message = fmt.Sprintf("Liability cap mismatch: %s%% of %s is %s, claimed %s (difference %s)",
			pct, FormatMoney(value), FormatMoney(computed), FormatMoney(claimed), formatSigned(diff))
	}
	return result
}

// VerifyTiered checks claimed_total against the sum of each tier's cap, each
// tier rounded to cents before summing
func (g *Guard) VerifyTiered(in model.TieredInput) model.TieredLiabilityResult {
	result := model.TieredLiabilityResult{ClaimedTotal: in.ClaimedTotal}

	if len(in.Tiers) == 0 {
		result.Message = "Cannot verify: no tiers given"
		return result
	}

	total := decimal.Zero
	for i, tier := range in.Tiers {
		base, err := ParseAmount(tier.Base)
		if err != nil {
			result.Message = fmt.Sprintf("Cannot verify: tier %d base: %v", i+1, err)
			return result
		}
		pct, err := ParseAmount(tier.Percentage)
		if err != nil {
			result.Message = fmt.Sprintf("Cannot verify: tier %d percentage: %v", i+1, err)
			return result
		}

		amount := Percent(base, pct)
		total = total.Add(amount)
		result.Tiers = append(result.Tiers, fmt.Sprintf("%s x %s%% = %s", base.StringFixed(2), pct, amount.StringFixed(2)))
	}

	claimed, err := ParseAmount(in.ClaimedTotal)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: claimed_total: %v", err)
		return result
	}

	diff := claimed.Sub(total)
	result.ClaimedTotal = claimed.StringFixed(2)
	result.ComputedTotal = total.StringFixed(2)
	result.Difference = diff.StringFixed(2)
	result.Verified = g.matches(claimed, total)

	if result.Verified {
		result.Message = fmt.Sprintf("Tiered liability verified: %d tiers total %s", len(in.Tiers), FormatMoney(total))
	} else {
		result.Message = fmt.Sprintf("Tiered liability mismatch: %s total %s, claimed %s (difference %s)",
			strings.Join(result.Tiers, " + "), FormatMoney(total), FormatMoney(claimed), formatSigned(diff))
	}
	return result
}

// VerifyIndemnity checks claimed_limit == annual_fee * multiplier
func (g *Guard) VerifyIndemnity(in model.IndemnityInput) model.IndemnityResult {
	result := model.IndemnityResult{
		AnnualFee:    in.AnnualFee,
		Multiplier:   in.Multiplier,
		ClaimedLimit: in.ClaimedLimit,
	}

	fee, err := ParseAmount(in.AnnualFee)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: annual_fee: %v", err)
		return result
	}
	mult, err := ParseAmount(in.Multiplier)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: multiplier: %v", err)
		return result
	}
	claimed, err := ParseAmount(in.ClaimedLimit)
	if err != nil {
		result.Message = fmt.Sprintf("Cannot verify: claimed_limit: %v", err)
		return result
	}

	computed := Round2(fee.Mul(mult))
	diff := claimed.Sub(computed)

	result.AnnualFee = fee.StringFixed(2)
	result.Multiplier = mult.String()
	result.ClaimedLimit = claimed.StringFixed(2)
	result.ComputedLimit = computed.StringFixed(2)
	result.Difference = diff.StringFixed(2)
	result.Verified = g.matches(claimed, computed)

	if result.Verified {
		result.Message = fmt.Sprintf("Indemnity limit verified: %sx annual fee %s is %s", mult, FormatMoney(fee), FormatMoney(computed))
	} else {
		result.Message = fmt.Sprintf("Indemnity limit mismatch: %sx annual fee %s is %s, claimed %s (difference %s)",
			mult, FormatMoney(fee), FormatMoney(computed), FormatMoney(claimed), formatSigned(diff))
	}
	return result
}
