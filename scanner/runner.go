package scanner

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Outcome pairs a target with its scan result or error. Exactly one of
// Result and Err is set.
type Outcome struct {
	Target string
	Result *ScanResult
	Err    error
}

// ProgressFunc is invoked as each target finishes, from worker goroutines.
type ProgressFunc func(target string, res *ScanResult, err error, duration float64)

// Runner fans scans out across a worker pool with a global rate limit.
// Each worker runs the same linear pipeline a single scan does.
type Runner struct {
	Client      *Client
	Concurrency int // maximum in-flight scans
	RateLimit   int // requests per second, shared across workers
}

// ScanAll scans every target and returns outcomes in input order. One
// failing target never stops the others; its Outcome carries the error.
func (r *Runner) ScanAll(ctx context.Context, targets []string, progressFn ProgressFunc) []Outcome {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	rps := r.RateLimit
	if rps <= 0 {
		rps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	outcomes := make([]Outcome, len(targets))

	for i, target := range targets {
		wg.Add(1)
		go func(idx int, t string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			_ = limiter.Wait(ctx)

			start := time.Now()
			res, err := r.Client.Scan(ctx, t)
			duration := time.Since(start).Seconds()

			if progressFn != nil {
				progressFn(t, res, err, duration)
			}

			// Each goroutine owns its slot, so input order is preserved
			// without a reorder pass.
			outcomes[idx] = Outcome{Target: t, Result: res, Err: err}
		}(i, target)
	}

	wg.Wait()
	return outcomes
}
