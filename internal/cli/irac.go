package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/legalguard/internal/model"
	"github.com/spf13/cobra"
)

// iracCmd represents the irac command
var iracCmd = &cobra.Command{
	Use:   "irac <file|->",
	Short: "Check that legal reasoning follows Issue, Rule, Application, Conclusion",
	Long: `Read a legal analysis and check that it has Issue, Rule, Application and
Conclusion sections, each opened by a heading line ("Issue:", "## Rule",
"III. Analysis", "Holding: ..."), and that the application uses terms of the
stated rule.

Use "-" to read from standard input.

Example:
  legalguard irac memo.md
  cat memo.txt | legalguard irac - --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runIRAC,
}

func init() {
	rootCmd.AddCommand(iracCmd)
}

func runIRAC(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("irac: %w", err)
	}

	g, cfg, err := newGuard()
	if err != nil {
		return err
	}
	return emitResult(cmd, cfg, g.VerifyIRAC(model.IRACInput{Text: string(data)}))
}
