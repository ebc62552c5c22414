package runner

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestOptionsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    Options
		validate func(*testing.T, Options)
	}{
		{
			name:  "defaults",
			input: Options{},
			validate: func(t *testing.T, o Options) {
				if o.Concurrency != 1 {
					t.Errorf("Concurrency = %d, want 1", o.Concurrency)
				}
				if o.LimiterFactory == nil {
					t.Error("LimiterFactory should not be nil")
				}
			},
		},
		{
			name: "negative values corrected",
			input: Options{
				Concurrency:   -5,
				Total:         -10,
				RatePerSecond: -1,
				Duration:      -time.Second,
			},
			validate: func(t *testing.T, o Options) {
				if o.Concurrency != 1 {
					t.Errorf("Concurrency = %d, want 1", o.Concurrency)
				}
				if o.Total != 0 {
					t.Errorf("Total = %d, want 0", o.Total)
				}
				if o.RatePerSecond != 0 {
					t.Errorf("RatePerSecond = %d, want 0", o.RatePerSecond)
				}
				if o.Duration != 0 {
					t.Errorf("Duration = %s, want 0", o.Duration)
				}
			},
		},
		{
			name: "preserve valid values",
			input: Options{
				Concurrency:   10,
				Total:         100,
				RatePerSecond: 50,
			},
			validate: func(t *testing.T, o Options) {
				if o.Concurrency != 10 {
					t.Errorf("Concurrency = %d, want 10", o.Concurrency)
				}
				if o.Total != 100 {
					t.Errorf("Total = %d, want 100", o.Total)
				}
				if o.RatePerSecond != 50 {
					t.Errorf("RatePerSecond = %d, want 50", o.RatePerSecond)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.input
			opts.normalize()
			tt.validate(t, opts)
		})
	}
}

func TestLimiterFactory(t *testing.T) {
	opts := Options{}
	opts.normalize()

	limiter := opts.LimiterFactory(0)
	if limiter.Limit() != rate.Inf {
		t.Errorf("Limit(0) = %v, want Inf", limiter.Limit())
	}

	rps := 100
	limiter = opts.LimiterFactory(rps)
	if limiter.Limit() != rate.Limit(rps) {
		t.Errorf("Limit(%d) = %v, want %v", rps, limiter.Limit(), rate.Limit(rps))
	}
	if limiter.Burst() != rps {
		t.Errorf("Burst(%d) = %d, want %d", rps, limiter.Burst(), rps)
	}
}

func TestNewSkipsLimiterWithoutRate(t *testing.T) {
	if r := New(Options{}); r.limiter != nil {
		t.Error("limiter should be nil when no rate is set")
	}
	if r := New(Options{RatePerSecond: 5}); r.limiter == nil {
		t.Error("limiter should be set when rate > 0")
	}
}
