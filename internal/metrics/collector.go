package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/samber/lo"
)

// Collector records dispensed identifiers and draw latency in a thread-safe manner.
type Collector struct {
	mu           sync.Mutex
	hist         *hdrhistogram.Histogram
	successes    int64
	failures     int64
	minLatency   time.Duration
	maxLatency   time.Duration
	sumLatency   time.Duration
	tally        map[string]int64
	errorsByType map[string]int64
	start        time.Time
}

// Stats represents aggregated metrics.
type Stats struct {
	Total       int64         `json:"total"`
	Successes   int64         `json:"successes"`
	Failures    int64         `json:"failures"`
	Distinct    int           `json:"distinct"`
	MinPerID    int64         `json:"min_per_id"`
	MaxPerID    int64         `json:"max_per_id"`
	Spread      int64         `json:"spread"`
	MinLatency  time.Duration `json:"-"`
	MaxLatency  time.Duration `json:"-"`
	MeanLatency time.Duration `json:"-"`
	P50Latency  time.Duration `json:"-"`
	P90Latency  time.Duration `json:"-"`
	P99Latency  time.Duration `json:"-"`
	Duration    time.Duration `json:"-"`
	DrawsPerSec float64       `json:"draws_per_sec"`

	// JSON-friendly microsecond fields.
	MinLatencyUs  float64          `json:"min_latency_us"`
	MaxLatencyUs  float64          `json:"max_latency_us"`
	MeanLatencyUs float64          `json:"mean_latency_us"`
	P50LatencyUs  float64          `json:"p50_latency_us"`
	P90LatencyUs  float64          `json:"p90_latency_us"`
	P99LatencyUs  float64          `json:"p99_latency_us"`
	DurationMs    float64          `json:"duration_ms"`
	Tally         map[string]int64 `json:"tally,omitempty"`
	Errors        map[string]int   `json:"errors,omitempty"`
}

// IDCount is one row of a sorted tally.
type IDCount struct {
	ID    string
	Count int64
}

func NewCollector() *Collector {
	// Draws are in-memory; track 1ns up to 10s with 3 significant figures.
	h := hdrhistogram.New(1, int64(10*time.Second), 3)
	return &Collector{
		hist:         h,
		tally:        make(map[string]int64),
		errorsByType: make(map[string]int64),
		start:        time.Now(),
	}
}

// Start resets the clock used by Elapsed.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = time.Now()
}

// Elapsed returns the time since NewCollector or the last Start.
func (c *Collector) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.start)
}

// RecordDraw records a single draw. id is ignored when err is non-nil.
func (c *Collector) RecordDraw(id string, latency time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ns := int64(latency)
	if ns < c.hist.LowestTrackableValue() {
		ns = c.hist.LowestTrackableValue()
	}
	if ns > c.hist.HighestTrackableValue() {
		ns = c.hist.HighestTrackableValue()
	}
	_ = c.hist.RecordValue(ns)
	c.sumLatency += latency

	if c.successes+c.failures == 0 || latency < c.minLatency {
		c.minLatency = latency
	}
	if latency > c.maxLatency {
		c.maxLatency = latency
	}

	if err != nil {
		c.failures++
		c.errorsByType[ErrorLabel(err)]++
		return
	}
	c.successes++
	c.tally[id]++
}

// Stats computes and returns current aggregated statistics.
func (c *Collector) Stats(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.successes + c.failures
	stats := Stats{
		Total:      total,
		Successes:  c.successes,
		Failures:   c.failures,
		Distinct:   len(c.tally),
		MinLatency: c.minLatency,
		MaxLatency: c.maxLatency,
	}

	if len(c.tally) > 0 {
		counts := lo.Values(c.tally)
		stats.MinPerID = lo.Min(counts)
		stats.MaxPerID = lo.Max(counts)
		stats.Spread = stats.MaxPerID - stats.MinPerID
		stats.Tally = lo.Assign(c.tally)
	}

	if total > 0 {
		stats.MeanLatency = time.Duration(int64(c.sumLatency) / total)
	}

	if c.hist.TotalCount() > 0 {
		stats.P50Latency = time.Duration(c.hist.ValueAtQuantile(50))
		stats.P90Latency = time.Duration(c.hist.ValueAtQuantile(90))
		stats.P99Latency = time.Duration(c.hist.ValueAtQuantile(99))
	}

	stats.MinLatencyUs = micros(stats.MinLatency)
	stats.MaxLatencyUs = micros(stats.MaxLatency)
	stats.MeanLatencyUs = micros(stats.MeanLatency)
	stats.P50LatencyUs = micros(stats.P50Latency)
	stats.P90LatencyUs = micros(stats.P90Latency)
	stats.P99LatencyUs = micros(stats.P99Latency)

	stats.Duration = elapsed
	stats.DurationMs = float64(elapsed) / float64(time.Millisecond)
	if elapsed > 0 && total > 0 {
		stats.DrawsPerSec = float64(total) / elapsed.Seconds()
	}

	if len(c.errorsByType) > 0 {
		stats.Errors = make(map[string]int, len(c.errorsByType))
		for k, v := range c.errorsByType {
			stats.Errors[k] = int(v)
		}
	}

	return stats
}

// SortedTally returns the tally ordered by count descending, then by ID.
func SortedTally(tally map[string]int64) []IDCount {
	rows := lo.MapToSlice(tally, func(id string, count int64) IDCount {
		return IDCount{ID: id, Count: count}
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}
