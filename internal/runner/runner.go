package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Result captures execution summary.
type Result struct {
	Total    int64
	Errors   int64
	Duration time.Duration
}

// Runner coordinates concurrent execution with rate limiting.
type Runner struct {
	opt     Options
	limiter *rate.Limiter
}

func New(opt Options) *Runner {
	opt.normalize()
	var limiter *rate.Limiter
	if opt.RatePerSecond > 0 {
		limiter = opt.LimiterFactory(opt.RatePerSecond)
	}
	return &Runner{opt: opt, limiter: limiter}
}

// Run blocks until the run ends and all in-flight executions return.
func (r *Runner) Run(ctx context.Context) Result {
	start := time.Now()
	var issued, done, errs int64

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if r.opt.Duration > 0 {
		deadlineCtx, deadlineCancel := context.WithTimeout(ctx, r.opt.Duration)
		ctx = deadlineCtx
		defer deadlineCancel()
	}

	permits := make(chan struct{}, r.opt.Concurrency)

	// Scheduler: serializes rate limiting to avoid burst overshoot across workers.
	go func() {
		defer close(permits)
		for {
			if ctx.Err() != nil {
				return
			}
			if r.opt.Total > 0 && issued >= int64(r.opt.Total) {
				return
			}
			if r.limiter != nil {
				if err := r.limiter.Wait(ctx); err != nil {
					return
				}
			}
			select {
			case permits <- struct{}{}:
				issued++
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(r.opt.Concurrency)
	for i := 0; i < r.opt.Concurrency; i++ {
		go func() {
			defer wg.Done()
			for range permits {
				// Permits still buffered when the run ends are dropped.
				if ctx.Err() != nil {
					return
				}
				if r.opt.Task != nil {
					if err := r.opt.Task.Do(ctx); err != nil {
						atomic.AddInt64(&errs, 1)
					}
				}
				atomic.AddInt64(&done, 1)
			}
		}()
	}
	wg.Wait()

	return Result{
		Total:    atomic.LoadInt64(&done),
		Errors:   atomic.LoadInt64(&errs),
		Duration: time.Since(start),
	}
}
