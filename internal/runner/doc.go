// Package runner drives a [Task] from a fixed number of goroutines until a
// total count, a duration, or the parent context ends the run.
//
//	r := runner.New(runner.Options{
//		Concurrency: 50,
//		Total:       50000,
//		Task:        drawTask,
//	})
//	result := r.Run(ctx)
//
// A single scheduler goroutine hands out one permit per execution, so Total is
// never overshot regardless of concurrency. RatePerSecond paces the scheduler
// through a token bucket from golang.org/x/time/rate.
//
// [WithLogging] reports failed executions to a [FailureLogger] without
// changing the returned error.
package runner
