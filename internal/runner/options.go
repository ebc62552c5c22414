package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Task abstracts a single unit of work executed by a worker.
// Implementations should return an error for failed executions.
type Task interface {
	Do(ctx context.Context) error
}

// TaskFunc adapts a plain function to Task.
type TaskFunc func(ctx context.Context) error

func (f TaskFunc) Do(ctx context.Context) error { return f(ctx) }

// Options configure the Runner.
type Options struct {
	Concurrency    int                         // number of worker goroutines
	Total          int                         // executions to run (0 means unlimited until duration/cancel)
	Duration       time.Duration               // overall time limit (0 means no duration cap)
	RatePerSecond  int                         // executions per second (0 means unlimited)
	Task           Task                        // work to execute (required)
	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.Total < 0 {
		o.Total = 0
	}
	if o.RatePerSecond < 0 {
		o.RatePerSecond = 0
	}
	if o.Duration < 0 {
		o.Duration = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing under concurrency.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}
