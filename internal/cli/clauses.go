package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/legalguard/internal/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// clausesCmd represents the clauses command
var clausesCmd = &cobra.Command{
	Use:   "clauses <file>",
	Short: "Check a set of clauses for logical contradictions",
	Long: `Read clauses from a YAML or JSON file and check that their numeric
constraints can all hold at once and that no clause permits what another
flatly prohibits or grants an exclusive right already granted to someone else.

The file is either a list of clauses or a mapping with a "clauses" list:

  - id: c1
    text: Liability capped at $10,000
    category: LIABILITY
    numeric_value: "10000"
    relation: "<="
  - id: c2
    text: Minimum penalty is $50,000
    category: LIABILITY
    numeric_value: "50000"
    relation: ">="

Example:
  legalguard clauses contract-clauses.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runClauses,
}

func init() {
	rootCmd.AddCommand(clausesCmd)
}

func runClauses(cmd *cobra.Command, args []string) error {
	clauses, err := readClauses(args[0])
	if err != nil {
		return fmt.Errorf("clauses: %w", err)
	}

	g, cfg, err := newGuard()
	if err != nil {
		return err
	}
	return emitResult(cmd, cfg, g.CheckClauseConsistency(model.ClausesInput{Clauses: clauses}))
}

// readClauses accepts a bare list or a {clauses: [...]} mapping
func readClauses(path string) ([]model.Clause, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s: no clauses", path)
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var clauses []model.Clause
		if err := root.Decode(&clauses); err != nil {
			return nil, fmt.Errorf("decode clauses: %w", err)
		}
		return clauses, nil
	case yaml.MappingNode:
		var in model.ClausesInput
		if err := root.Decode(&in); err != nil {
			return nil, fmt.Errorf("decode clauses: %w", err)
		}
		return in.Clauses, nil
	default:
		return nil, fmt.Errorf("%s: expected a list of clauses or a clauses mapping", path)
	}
}
