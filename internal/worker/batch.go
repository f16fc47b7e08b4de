package worker

import (
	"context"
	"fmt"

	"github.com/ppiankov/legalguard/internal/model"
	"go.uber.org/zap"
)

// Checker verifies a single batch claim
type Checker interface {
	Check(c model.Claim) model.Outcome
}

// ClaimJob represents one claim verification
type ClaimJob struct {
	Claim   model.Claim
	Checker Checker
	Limiter *Limiter
}

// Execute waits for rate-limit clearance, then checks the claim
func (j *ClaimJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, string(j.Claim.Kind)); err != nil {
			return &ClaimResult{
				Outcome: model.Outcome{
					ID:      j.Claim.ID,
					Kind:    j.Claim.Kind,
					Summary: "Cannot verify: " + err.Error(),
					Error:   err.Error(),
				},
				Error: err,
			}
		}
	}

	return &ClaimResult{Outcome: j.Checker.Check(j.Claim)}
}

// ClaimResult represents the result of a claim job
type ClaimResult struct {
	Outcome model.Outcome
	Error   error
}

// GetError returns the error that stopped the claim from being checked
func (r *ClaimResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many claims concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
	limiter     *Limiter
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor. claimsPerSecond <= 0
// disables rate limiting.
func NewBatchProcessor(checker Checker, concurrency int, claimsPerSecond float64, burst int, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
		limiter:     NewLimiter(claimsPerSecond, burst),
		logger:      logger,
	}
}

// Process checks claims concurrently and returns outcomes in input order
func (b *BatchProcessor) Process(ctx context.Context, claims []model.Claim) []model.Outcome {
	if len(claims) == 0 {
		return []model.Outcome{}
	}

	b.logger.Debug("batch started",
		zap.Int("claims", len(claims)),
		zap.Int("workers", b.concurrency))

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, c := range claims {
		pool.Submit(&ClaimJob{
			Claim:   c,
			Checker: b.checker,
			Limiter: b.limiter,
		})
	}

	results := pool.Wait()

	outcomes := make([]model.Outcome, len(claims))
	failed := 0
	for i, result := range results {
		cr, ok := result.(*ClaimResult)
		if !ok {
			// dropped by cancellation before it ran
			outcomes[i] = model.Outcome{
				ID:      claims[i].ID,
				Kind:    claims[i].Kind,
				Summary: "Cannot verify: batch cancelled",
				Error:   "batch cancelled",
			}
			failed++
			continue
		}
		outcomes[i] = cr.Outcome
		if cr.Error != nil {
			b.logger.Warn("claim not checked",
				zap.String("id", claims[i].ID),
				zap.Error(cr.Error))
		}
		if !cr.Outcome.Passed {
			failed++
		}
	}

	b.logger.Info("batch complete",
		zap.Int("claims", len(claims)),
		zap.Int("failed", failed))

	return outcomes
}

// ProcessFile reads a claims file and processes it concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]model.Outcome, error) {
	claims, err := ReadClaimsFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.Process(ctx, claims), nil
}
