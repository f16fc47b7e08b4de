package cli

import (
	"github.com/ppiankov/legalguard/internal/model"
	"github.com/spf13/cobra"
)

var (
	jurParties    []string
	jurLaw        string
	jurForum      string
	jurConvention string
	jurValue      string
)

// jurisdictionCmd represents the jurisdiction command
var jurisdictionCmd = &cobra.Command{
	Use:   "jurisdiction",
	Short: "Check choice-of-law, forum and convention clauses",
	Long: `Resolve jurisdiction names (codes, names, cities and common aliases) and
check the combination of governing law, forum and party jurisdictions against
conflict-of-laws rules and treaty membership.`,
}

var jurisdictionLawCmd = &cobra.Command{
	Use:   "law",
	Short: "Verify a choice-of-law clause",
	Long: `Check a governing-law choice against the parties and the forum.

Example:
  legalguard jurisdiction law --parties US,GB --law Delaware
  legalguard jurisdiction law --parties DE,FR --law "New York" --forum London`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.VerifyChoiceOfLaw(model.ChoiceOfLawInput{
			Parties:      jurParties,
			GoverningLaw: jurLaw,
			Forum:        jurForum,
		}))
	},
}

var jurisdictionConventionCmd = &cobra.Command{
	Use:   "convention",
	Short: "Check whether a convention binds every party",
	Long: `Check that every party's jurisdiction is a contracting state of the named
convention (CISG, Hague Choice of Court, New York Convention).

Example:
  legalguard jurisdiction convention --parties US,DE --convention CISG`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.CheckConvention(model.ConventionInput{
			Parties:    jurParties,
			Convention: jurConvention,
		}))
	},
}

var jurisdictionForumCmd = &cobra.Command{
	Use:   "forum",
	Short: "Verify a forum-selection clause",
	Long: `Check that the chosen forum is recognised and, for US federal courts, that
the contract value can meet the diversity amount in controversy.

Example:
  legalguard jurisdiction forum --forum "New York" --value 50000 --parties US,GB`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.VerifyForumSelection(model.ForumInput{
			Forum:         jurForum,
			ContractValue: jurValue,
			Parties:       jurParties,
		}))
	},
}

func init() {
	rootCmd.AddCommand(jurisdictionCmd)
	jurisdictionCmd.AddCommand(jurisdictionLawCmd)
	jurisdictionCmd.AddCommand(jurisdictionConventionCmd)
	jurisdictionCmd.AddCommand(jurisdictionForumCmd)

	for _, c := range []*cobra.Command{jurisdictionLawCmd, jurisdictionConventionCmd, jurisdictionForumCmd} {
		c.Flags().StringSliceVar(&jurParties, "parties", nil, "party jurisdictions, comma separated")
	}
	_ = jurisdictionConventionCmd.MarkFlagRequired("parties")

	jurisdictionLawCmd.Flags().StringVar(&jurLaw, "law", "", "governing law jurisdiction")
	jurisdictionLawCmd.Flags().StringVar(&jurForum, "forum", "", "forum for disputes")
	_ = jurisdictionLawCmd.MarkFlagRequired("law")

	jurisdictionConventionCmd.Flags().StringVar(&jurConvention, "convention", "", "convention name, e.g. CISG")
	_ = jurisdictionConventionCmd.MarkFlagRequired("convention")

	jurisdictionForumCmd.Flags().StringVar(&jurForum, "forum", "", "forum for disputes")
	jurisdictionForumCmd.Flags().StringVar(&jurValue, "value", "", "contract value")
	_ = jurisdictionForumCmd.MarkFlagRequired("forum")
}
