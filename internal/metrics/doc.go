// Package metrics tallies dispensed identifiers and draw latency.
//
// The central [Collector] is shared by all draw workers:
//
//	collector := metrics.NewCollector()
//	collector.Start()
//
//	start := time.Now()
//	id, err := supply.NextID()
//	collector.RecordDraw(id, time.Since(start), err)
//
//	stats := collector.Stats(collector.Elapsed())
//
// [Stats] carries the per-identifier tally along with its spread (the
// difference between the most and least dispensed identifier), which stays at
// most one for a cyclic supply drained by any number of goroutines. Latency
// percentiles come from an HDR histogram recorded in nanoseconds.
package metrics
