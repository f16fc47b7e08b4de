package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage legalguard configuration",
	Long: `Manage legalguard configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (LEGALGUARD_*, e.g. LEGALGUARD_CALENDAR_DEFAULT_COUNTRY)
3. Config file (~/.legalguard/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after applying defaults, config file, environment variables and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		_, err = cmd.OutOrStdout().Write(yamlData)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.legalguard/config.yaml with all available options documented.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath := filepath.Join(home, ".legalguard", "config.yaml")
		if err := writeDefaultConfig(configPath); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Created default configuration: %s\n", configPath)
		fmt.Fprintf(out, "\nTo view the configuration:\n")
		fmt.Fprintf(out, "  legalguard config show\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

// defaultConfigDoc is the commented default configuration
const defaultConfigDoc = `# legalguard configuration file
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (LEGALGUARD_*)
#   3. This config file
#   4. Built-in defaults

calendar:
  # Holiday calendar used when a deadline names no country (ISO code or name)
  default_country: US
  # State, province or region within default_country, e.g. CA or Scotland
  default_subdivision: ""

citation:
  # Report a missing "(Court Year)" parenthetical as an issue
  require_year: true

liability:
  # Accept claimed amounts within this percentage of the computed amount
  tolerance_percent: 0

output:
  # json, yaml, markdown or text
  format: text
  # Exit 1 when any claim fails verification
  fail_on_unverified: true
  verbose: false

concurrency:
  # Batch worker pool size
  workers: 4

rate_limiting:
  # Claims per second per claim kind in batch mode; 0 disables limiting
  claims_per_second: 0
  burst_size: 10
`

// writeDefaultConfig writes the commented default file, refusing to overwrite
func writeDefaultConfig(configPath string) (err error) {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'legalguard config show' to view it, or delete it first to recreate", configPath)
	}

	// The commented document must stay loadable
	var parsed map[string]interface{}
	if err := yaml.Unmarshal([]byte(defaultConfigDoc), &parsed); err != nil {
		return fmt.Errorf("default config is not valid YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	if _, err := f.WriteString(defaultConfigDoc); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
