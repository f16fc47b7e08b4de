package cli

import (
	"fmt"
	"strings"

	"github.com/ppiankov/legalguard/internal/model"
	"github.com/spf13/cobra"
)

var (
	capValue   string
	capPercent string
	capClaimed string

	tierSpecs   []string
	tierClaimed string

	indFee        string
	indMultiplier string
	indClaimed    string
)

// liabilityCmd represents the liability command
var liabilityCmd = &cobra.Command{
	Use:   "liability",
	Short: "Verify liability caps and indemnity limits",
	Long: `Recompute liability figures with exact decimal arithmetic and compare
them with the claimed amounts. Amounts may carry currency symbols and
thousands separators ("$5,000,000").`,
}

var liabilityCapCmd = &cobra.Command{
	Use:   "cap",
	Short: "Verify a percentage-of-contract-value liability cap",
	Long: `Check that the claimed cap equals contract value × percentage.

Example:
  legalguard liability cap --value 5000000 --percent 200 --claimed 10000000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.VerifyLiabilityCap(model.CapInput{
			ContractValue: capValue,
			CapPercentage: capPercent,
			ClaimedCap:    capClaimed,
		}))
	},
}

var liabilityTieredCmd = &cobra.Command{
	Use:   "tiered",
	Short: "Verify the total of a tiered liability schedule",
	Long: `Check that the claimed total equals the sum of base × percentage for each
tier. Tiers are given as base:percentage and may be repeated.

Example:
  legalguard liability tiered --tier 1000000:100 --tier 4000000:50 --claimed 3000000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tiers, err := parseTiers(tierSpecs)
		if err != nil {
			return fmt.Errorf("tiered: %w", err)
		}

		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.VerifyTieredLiability(model.TieredInput{
			Tiers:        tiers,
			ClaimedTotal: tierClaimed,
		}))
	},
}

var liabilityIndemnityCmd = &cobra.Command{
	Use:   "indemnity",
	Short: "Verify an indemnity limit expressed as a multiple of annual fees",
	Long: `Check that the claimed indemnity limit equals annual fee × multiplier.

Example:
  legalguard liability indemnity --fee 250000 --multiplier 2 --claimed 500000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.VerifyIndemnity(model.IndemnityInput{
			AnnualFee:    indFee,
			Multiplier:   indMultiplier,
			ClaimedLimit: indClaimed,
		}))
	},
}

func init() {
	rootCmd.AddCommand(liabilityCmd)
	liabilityCmd.AddCommand(liabilityCapCmd)
	liabilityCmd.AddCommand(liabilityTieredCmd)
	liabilityCmd.AddCommand(liabilityIndemnityCmd)

	liabilityCapCmd.Flags().StringVar(&capValue, "value", "", "contract value")
	liabilityCapCmd.Flags().StringVar(&capPercent, "percent", "", "cap as a percentage of contract value")
	liabilityCapCmd.Flags().StringVar(&capClaimed, "claimed", "", "claimed cap amount")
	_ = liabilityCapCmd.MarkFlagRequired("value")
	_ = liabilityCapCmd.MarkFlagRequired("percent")
	_ = liabilityCapCmd.MarkFlagRequired("claimed")

	liabilityTieredCmd.Flags().StringArrayVar(&tierSpecs, "tier", nil, "tier as base:percentage (repeatable)")
	liabilityTieredCmd.Flags().StringVar(&tierClaimed, "claimed", "", "claimed total")
	_ = liabilityTieredCmd.MarkFlagRequired("tier")
	_ = liabilityTieredCmd.MarkFlagRequired("claimed")

	liabilityIndemnityCmd.Flags().StringVar(&indFee, "fee", "", "annual fee")
	liabilityIndemnityCmd.Flags().StringVar(&indMultiplier, "multiplier", "", "multiple of the annual fee")
	liabilityIndemnityCmd.Flags().StringVar(&indClaimed, "claimed", "", "claimed indemnity limit")
	_ = liabilityIndemnityCmd.MarkFlagRequired("fee")
	_ = liabilityIndemnityCmd.MarkFlagRequired("multiplier")
	_ = liabilityIndemnityCmd.MarkFlagRequired("claimed")
}

// parseTiers splits "base:percentage" specs. The last colon separates the
// two so bases like "$1,000,000" are accepted as written.
func parseTiers(specs []string) ([]model.Tier, error) {
	tiers := make([]model.Tier, 0, len(specs))
	for _, spec := range specs {
		i := strings.LastIndex(spec, ":")
		if i <= 0 || i == len(spec)-1 {
			return nil, fmt.Errorf("tier %q: expected base:percentage", spec)
		}
		tiers = append(tiers, model.Tier{
			Base:       strings.TrimSpace(spec[:i]),
			Percentage: strings.TrimSpace(spec[i+1:]),
		})
	}
	return tiers, nil
}
