package cli

import (
	"fmt"

	"github.com/ppiankov/legalguard/internal/model"
	"github.com/spf13/cobra"
)

var (
	solClaimType     string
	solJurisdiction  string
	solIncident      string
	solFiling        string
	solJurisdictions []string
)

// statuteCmd represents the statute command
var statuteCmd = &cobra.Command{
	Use:   "statute",
	Short: "Verify a filing against the statute of limitations",
	Long: `Look up the limitation period for a claim type in a jurisdiction and check
that the filing date falls on or before the expiration date.

Example:
  legalguard statute --claim-type breach_of_contract --jurisdiction California \
    --incident 2020-01-15 --filing 2026-06-01`,
	Args: cobra.NoArgs,
	RunE: runStatute,
}

var statutePeriodCmd = &cobra.Command{
	Use:   "period",
	Short: "Show the limitation period for a claim type",
	Long: `Print the limitation period for a claim type in one jurisdiction.

Example:
  legalguard statute period --claim-type personal_injury --jurisdiction "New York"`,
	Args: cobra.NoArgs,
	RunE: runStatutePeriod,
}

var statuteCompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare limitation periods across jurisdictions",
	Long: `List the limitation periods for a claim type in several jurisdictions,
shortest first.

Example:
  legalguard statute compare --claim-type breach_of_contract --jurisdictions California,"New York",Germany`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.CompareLimitations(model.LimitationCompareInput{
			ClaimType:     solClaimType,
			Jurisdictions: solJurisdictions,
		}))
	},
}

func init() {
	rootCmd.AddCommand(statuteCmd)
	statuteCmd.AddCommand(statutePeriodCmd)
	statuteCmd.AddCommand(statuteCompareCmd)

	statuteCmd.Flags().StringVar(&solJurisdiction, "jurisdiction", "", "jurisdiction name or code")
	statuteCmd.Flags().StringVar(&solIncident, "incident", "", "date the claim accrued (YYYY-MM-DD)")
	statuteCmd.Flags().StringVar(&solFiling, "filing", "", "filing date (YYYY-MM-DD)")
	_ = statuteCmd.MarkFlagRequired("jurisdiction")
	_ = statuteCmd.MarkFlagRequired("incident")
	_ = statuteCmd.MarkFlagRequired("filing")

	statutePeriodCmd.Flags().StringVar(&solJurisdiction, "jurisdiction", "", "jurisdiction name or code")
	_ = statutePeriodCmd.MarkFlagRequired("jurisdiction")

	statuteCompareCmd.Flags().StringSliceVar(&solJurisdictions, "jurisdictions", nil, "jurisdictions, comma separated")
	_ = statuteCompareCmd.MarkFlagRequired("jurisdictions")

	for _, c := range []*cobra.Command{statuteCmd, statutePeriodCmd, statuteCompareCmd} {
		c.Flags().StringVar(&solClaimType, "claim-type", "", "claim type, e.g. breach_of_contract")
		_ = c.MarkFlagRequired("claim-type")
	}
}

func runStatute(cmd *cobra.Command, args []string) error {
	g, cfg, err := newGuard()
	if err != nil {
		return err
	}
	return emitResult(cmd, cfg, g.VerifyLimitation(model.LimitationInput{
		ClaimType:    solClaimType,
		Jurisdiction: solJurisdiction,
		IncidentDate: solIncident,
		FilingDate:   solFiling,
	}))
}

func runStatutePeriod(cmd *cobra.Command, args []string) error {
	g, cfg, err := newGuard()
	if err != nil {
		return err
	}

	p, err := g.Limitations.GetLimitationPeriod(solClaimType, solJurisdiction)
	if err != nil {
		return fmt.Errorf("period: %w", err)
	}

	return printData(cmd.OutOrStdout(), cfg.Output.Format, p, func() []string {
		return []string{fmt.Sprintf("%s in %s: %s", p.ClaimType, p.Jurisdiction, model.FormatYears(p.Years))}
	})
}
