package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/legalguard/internal/report"
	"github.com/ppiankov/legalguard/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	concurrency      int
	outPath          string
	batchTimeout     time.Duration
	failOnUnverified bool
	claimsPerSecond  float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <claims-file>",
	Short: "Verify every claim in a YAML or JSON claims file",
	Long: `Batch verifies many claims concurrently:
- Read claims from a YAML or JSON file (validated against the claims schema)
- Dispatch each claim to the guard its kind names
- Render all outcomes, in file order, as one report
- Exit 1 when any claim fails and fail-on-unverified is set

Each claim has a kind and an input matching that guard:

  - id: notice-period
    kind: deadline
    input: {signing_date: "2026-01-15", term: "30 business days", claimed_deadline: "2026-02-14"}
  - id: cap
    kind: liability_cap
    input: {contract_value: "5000000", cap_percentage: "200", claimed_cap: "10000000"}

Example:
  legalguard batch claims.yaml
  legalguard batch claims.yaml --concurrency 8 --format markdown --out report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outPath, "out", "", "write the report to a file instead of stdout")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 5*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&failOnUnverified, "fail-on-unverified", true, "exit 1 when any claim fails verification")
	batchCmd.Flags().Float64Var(&claimsPerSecond, "rate", 0, "claims per second per kind (0 disables limiting)")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("output.fail_on_unverified", batchCmd.Flags().Lookup("fail-on-unverified"))
	_ = viper.BindPFlag("rate_limiting.claims_per_second", batchCmd.Flags().Lookup("rate"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	g, cfg, err := newGuard()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  legalguard Batch Verification\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Claims file:  %s\n", file)
	fmt.Fprintf(stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	if cfg.RateLimiting.ClaimsPerSecond > 0 {
		fmt.Fprintf(stderr, "  Rate limit:   %.1f claims/s per kind\n", cfg.RateLimiting.ClaimsPerSecond)
	}
	fmt.Fprintf(stderr, "\n")

	processor := worker.NewBatchProcessor(g, cfg.Concurrency.Workers,
		cfg.RateLimiting.ClaimsPerSecond, cfg.RateLimiting.BurstSize, logger)

	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		if errors.Is(err, worker.ErrInvalidClaimsFile) {
			return fmt.Errorf("batch: %s: %w", file, err)
		}
		return fmt.Errorf("batch: %w", err)
	}

	rep := report.New(outcomes)

	if outPath != "" {
		r, err := report.NewRenderer(cfg.Output.Format, true)
		if err != nil {
			return err
		}
		if err := r.RenderFile(outPath, rep); err != nil {
			return fmt.Errorf("batch: %w", err)
		}
		if err := report.WriteGitHubOutputs(os.Getenv(report.GitHubOutputEnv), rep); err != nil {
			logger.Warn("github outputs not written", zap.Error(err))
		}
		fmt.Fprintf(stderr, "✓ Wrote %s report: %s\n", r.Format(), outPath)
	} else if err := emit(cmd, cfg, rep); err != nil && !errors.Is(err, ErrUnverified) {
		return err
	}

	// Summary
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d claims\n", rep.Total)
	fmt.Fprintf(stderr, "  Verified:  %d\n", rep.Passed)
	fmt.Fprintf(stderr, "  Failed:    %d\n", rep.Failed)
	fmt.Fprintf(stderr, "\n")

	if !rep.Verified && cfg.Output.FailOnUnverified {
		return ErrUnverified
	}
	return nil
}
