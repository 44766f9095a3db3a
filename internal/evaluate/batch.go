package evaluate

import (
	"context"
	"fmt"
	"log"
	"sync"

	"forecast-lab/internal/domain"
	"forecast-lab/internal/metrics"
)

// Pair is one actual/predicted pair in a batch evaluation.
type Pair struct {
	Actual    *domain.Input
	Predicted *domain.Input

	// Insample overrides BatchOptions.Insample for this pair when set.
	Insample *domain.Input
}

// BatchOptions configures EvaluateBatch.
type BatchOptions struct {
	// Options are applied to every pair.
	Options

	// Parallelism bounds the number of pairs evaluated concurrently.
	// Values below 1 mean sequential evaluation.
	Parallelism int

	// InterReduction collapses the ordered per-pair results. Defaults to
	// metrics.Identity, which returns the pairwise values unchanged.
	InterReduction func([]float64) []float64

	// Verbose logs per-pair progress.
	Verbose bool
}

// EvaluateBatch evaluates metric over every pair independently. Pairs may
// run concurrently up to opts.Parallelism, but results always come back in
// input order regardless of completion order. The first failing pair is
// reported with its position once all work has finished.
func EvaluateBatch(ctx context.Context, metric metrics.Metric, pairs []Pair, opts BatchOptions) ([]float64, error) {
	if opts.InterReduction == nil {
		opts.InterReduction = metrics.Identity
	}

	results := make([]float64, len(pairs))
	errs := make([]error, len(pairs))

	workers := opts.Parallelism
	if workers < 1 {
		workers = 1
	}
	if workers > len(pairs) {
		workers = len(pairs)
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		select {
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, pair Pair) {
			defer wg.Done()
			defer func() { <-sem }()

			pairOpts := opts.Options
			if pair.Insample != nil {
				pairOpts.Insample = pair.Insample
			}
			results[i], errs[i] = Evaluate(metric, pair.Actual, pair.Predicted, pairOpts)
			if opts.Verbose {
				log.Printf("evaluate %s: pair %d/%d done", metric.Name, i+1, len(pairs))
			}
		}(i, pair)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
	}
	return opts.InterReduction(results), nil
}
