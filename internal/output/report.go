package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/torosent/fhirstress/internal/metrics"
)

// maxTallyRows caps the per-identifier lines in the text report.
const maxTallyRows = 20

// Report is the summary of one draw run.
type Report struct {
	RunID  string `json:"run_id"`
	Source string `json:"source"`
	Loaded int    `json:"loaded"`
	metrics.Stats
}

// PrintReport outputs a human-readable summary report.
func PrintReport(w io.Writer, r Report) {
	stats := r.Stats
	fmt.Fprintln(w, "\n--- Identifier Draw Results ---")
	fmt.Fprintf(w, "Run ID:            %s\n", r.RunID)
	fmt.Fprintf(w, "Source:            %s\n", r.Source)
	fmt.Fprintf(w, "Loaded:            %d\n", r.Loaded)
	fmt.Fprintf(w, "Total Draws:       %d\n", stats.Total)
	fmt.Fprintf(w, "Successful:        %d\n", stats.Successes)
	fmt.Fprintf(w, "Failed:            %d\n", stats.Failures)
	fmt.Fprintf(w, "Duration:          %s\n", stats.Duration)
	fmt.Fprintf(w, "Draws/sec:         %.2f\n", stats.DrawsPerSec)

	fmt.Fprintln(w, "\nDistribution:")
	fmt.Fprintf(w, "  Distinct IDs:    %d\n", stats.Distinct)
	fmt.Fprintf(w, "  Min per ID:      %d\n", stats.MinPerID)
	fmt.Fprintf(w, "  Max per ID:      %d\n", stats.MaxPerID)
	fmt.Fprintf(w, "  Spread:          %d\n", stats.Spread)

	fmt.Fprintln(w, "\nDraw Latency:")
	fmt.Fprintf(w, "  Min:             %s\n", stats.MinLatency)
	fmt.Fprintf(w, "  Max:             %s\n", stats.MaxLatency)
	fmt.Fprintf(w, "  Mean:            %s\n", stats.MeanLatency)
	fmt.Fprintf(w, "  P50:             %s\n", stats.P50Latency)
	fmt.Fprintf(w, "  P90:             %s\n", stats.P90Latency)
	fmt.Fprintf(w, "  P99:             %s\n", stats.P99Latency)

	if len(stats.Tally) > 0 {
		fmt.Fprintln(w, "\nTally:")
		rows := metrics.SortedTally(stats.Tally)
		shown := rows
		if len(shown) > maxTallyRows {
			shown = shown[:maxTallyRows]
		}
		for _, row := range shown {
			share := 0.0
			if stats.Successes > 0 {
				share = float64(row.Count) / float64(stats.Successes) * 100
			}
			fmt.Fprintf(w, "  - %s: %d (%.1f%%)\n", row.ID, row.Count, share)
		}
		if hidden := len(rows) - len(shown); hidden > 0 {
			fmt.Fprintf(w, "  ... %d more\n", hidden)
		}
	}

	if len(stats.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, row := range metrics.SortedTally(intsToInt64s(stats.Errors)) {
			fmt.Fprintf(w, "  - %s: %d\n", row.ID, row.Count)
		}
	}
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func intsToInt64s(m map[string]int) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = int64(v)
	}
	return out
}
