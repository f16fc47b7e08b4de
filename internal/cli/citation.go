package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/legalguard/internal/citation"
	"github.com/ppiankov/legalguard/internal/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractHTML bool

// citationCmd represents the citation command
var citationCmd = &cobra.Command{
	Use:   "citation <citation>...",
	Short: "Validate case citation format",
	Long: `Check that case citations follow "Plaintiff v. Defendant, Volume Reporter
Page (Court Year)" and name a known reporter whose publication years and
volumes fit the citation. Several citations are checked as a batch.

Example:
  legalguard citation "Brown v. Board of Education, 347 U.S. 483 (1954)"
  legalguard citation "Roe v. Wade, 410 U.S. 113 (1973)" "Smith v. Jones, 123 F.4d 456 (2020)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCitation,
}

var citationStatuteCmd = &cobra.Command{
	Use:   "statute <citation>",
	Short: "Validate a statute citation",
	Long: `Check a statutory citation against the code table: the code must be known,
the title (where the code has titles) must exist, and a section must be given.

Example:
  legalguard citation statute "42 U.S.C. § 1983"
  legalguard citation statute "Cal. Civ. Code § 1542"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, cfg, err := newGuard()
		if err != nil {
			return err
		}
		return emitResult(cmd, cfg, g.VerifyStatuteCitation(model.CitationInput{Citation: args[0]}))
	},
}

var citationExtractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Find and validate the case citations in a brief",
	Long: `Extract case citations from a plain-text or HTML document and validate each.
HTML is detected from the file extension or forced with --html; only visible
text is searched.

Example:
  legalguard citation extract brief.txt
  legalguard citation extract opinion.html --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runCitationExtract,
}

func init() {
	rootCmd.AddCommand(citationCmd)
	citationCmd.AddCommand(citationStatuteCmd)
	citationCmd.AddCommand(citationExtractCmd)

	citationExtractCmd.Flags().BoolVar(&extractHTML, "html", false, "treat the input as HTML")
}

func runCitation(cmd *cobra.Command, args []string) error {
	g, cfg, err := newGuard()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return emitResult(cmd, cfg, g.VerifyCitation(model.CitationInput{Citation: args[0]}))
	}
	return emitResult(cmd, cfg, g.VerifyCitations(model.CitationBatchInput{Citations: args}))
}

func runCitationExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	defer func() { _ = f.Close() }()

	var found []string
	ext := strings.ToLower(filepath.Ext(path))
	if extractHTML || ext == ".html" || ext == ".htm" {
		found, err = citation.ExtractHTML(f)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
	} else {
		data, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("extract: read %s: %w", path, err)
		}
		found = citation.Extract(string(data))
	}

	logger.Debug("citations extracted",
		zap.String("file", path),
		zap.Int("count", len(found)))

	if len(found) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "No case citations found in %s\n", path)
	}

	g, cfg, err := newGuard()
	if err != nil {
		return err
	}
	return emitResult(cmd, cfg, g.VerifyCitations(model.CitationBatchInput{Citations: found}))
}
