package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/legalguard/internal/calendar"
	"github.com/ppiankov/legalguard/internal/citation"
	"github.com/ppiankov/legalguard/internal/guard"
	"github.com/ppiankov/legalguard/internal/jurisdiction"
	"github.com/ppiankov/legalguard/internal/limitation"
	"github.com/ppiankov/legalguard/internal/model"
	"github.com/ppiankov/legalguard/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Version is the release version, overridden at build time with -ldflags
var Version = "v0.3.0"

// ErrUnverified is returned when a command ran cleanly but a claim failed
// verification and fail_on_unverified is set
var ErrUnverified = errors.New("verification failed")

var (
	cfgFile      string
	verbose      bool
	outputFormat string
	logger       = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "legalguard",
	Short: "legalguard - deterministic verification of contract claims",
	Long: `legalguard checks claims made about legal contracts against arithmetic,
calendars and reference tables:

- contractual deadlines (calendar and business days, per-country holidays)
- liability caps, tiered caps and indemnity limits
- logical consistency between clauses
- case and statute citation format
- choice-of-law, forum and convention applicability
- statutes of limitation

It computes what a claim should be and reports the mismatch. It does not
draft contracts, interpret intent or give legal advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if viper.GetBool("output.verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute error to a process exit status: 1 for claims that
// failed verification, 2 for usage and input errors
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUnverified):
		return 1
	default:
		return 2
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and reference table versions.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "legalguard %s\n", Version)
		fmt.Fprintf(w, "  holidays:      %s\n", calendar.Default().Version())
		fmt.Fprintf(w, "  reporters:     %s\n", citation.DefaultTable().Version())
		fmt.Fprintf(w, "  jurisdictions: %s\n", jurisdiction.DefaultTable().Version())
		fmt.Fprintf(w, "  limitations:   %s\n", limitation.DefaultTable().Version())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.legalguard/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: "+strings.Join(report.Formats, ", "))

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.legalguard")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// LEGALGUARD_OUTPUT_FORMAT overrides output.format
	viper.SetEnvPrefix("LEGALGUARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("output.verbose") {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func setDefaults(cfg model.Config) {
	viper.SetDefault("calendar.default_country", cfg.Calendar.DefaultCountry)
	viper.SetDefault("calendar.default_subdivision", cfg.Calendar.DefaultSubdivision)
	viper.SetDefault("citation.require_year", cfg.Citation.RequireYear)
	viper.SetDefault("liability.tolerance_percent", cfg.Liability.TolerancePercent)
	viper.SetDefault("output.format", cfg.Output.Format)
	viper.SetDefault("output.fail_on_unverified", cfg.Output.FailOnUnverified)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("rate_limiting.claims_per_second", cfg.RateLimiting.ClaimsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)
}

// loadConfig resolves the effective configuration: flags, env, file, defaults
func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newGuard builds the guard façade from the effective configuration
func newGuard() (*guard.LegalGuard, model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	return guard.FromConfig(cfg), cfg, nil
}

// emit renders a report to stdout, publishes GitHub step outputs when running
// under Actions, and turns a failed verdict into ErrUnverified
func emit(cmd *cobra.Command, cfg model.Config, rep report.Report) error {
	r, err := report.NewRenderer(cfg.Output.Format, true)
	if err != nil {
		return err
	}
	if err := r.Render(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := report.WriteGitHubOutputs(os.Getenv(report.GitHubOutputEnv), rep); err != nil {
		logger.Warn("github outputs not written", zap.Error(err))
	}

	if !rep.Verified && cfg.Output.FailOnUnverified {
		return ErrUnverified
	}
	return nil
}

// emitResult renders a single guard result
func emitResult(cmd *cobra.Command, cfg model.Config, res model.Result) error {
	return emit(cmd, cfg, report.Single(string(res.Kind()), res))
}

// printData writes reference data (not a verdict): structured formats encode v,
// text and markdown use the lines from textFn
func printData(w io.Writer, format string, v interface{}, textFn func() []string) error {
	switch strings.ToLower(format) {
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case report.FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, line := range textFn() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
}
