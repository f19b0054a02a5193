package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/torosent/wordloom/internal/metrics"
	"github.com/torosent/wordloom/internal/threshold"
)

// Report is everything printed after a run.
type Report struct {
	RunID      string             `json:"run_id"`
	Endpoint   string             `json:"endpoint"`
	Planned    int                `json:"planned"`
	Stats      metrics.Stats      `json:"stats"`
	Thresholds []threshold.Result `json:"thresholds,omitempty"`
}

// Interrupted reports whether fewer tasks ran than were planned.
func (r Report) Interrupted() bool {
	return r.Stats.Total < int64(r.Planned)
}

// PrintBanner announces the run before any task line.
func PrintBanner(w io.Writer, runID, endpoint string, total, concurrency int) {
	fmt.Fprintf(w, "Simulating %d words on %s with %d concurrent users (run %s)\n", total, endpoint, concurrency, runID)
}

// PrintReport outputs a human-readable summary report.
func PrintReport(w io.Writer, r Report) {
	stats := r.Stats
	fmt.Fprintln(w, "\n--- Simulation Results ---")
	fmt.Fprintf(w, "Run ID:            %s\n", r.RunID)
	fmt.Fprintf(w, "Endpoint:          %s\n", r.Endpoint)
	fmt.Fprintf(w, "Placed:            %d/%d (%.1f%%)\n", stats.Successes, stats.Total, stats.SuccessRate()*100)
	fmt.Fprintf(w, "Failed:            %d\n", stats.Failures)
	if stats.Crowded > 0 {
		fmt.Fprintf(w, "Crowded:           %d\n", stats.Crowded)
	}
	if r.Interrupted() {
		fmt.Fprintf(w, "Interrupted:       %d of %d tasks scheduled\n", stats.Total, r.Planned)
	}
	fmt.Fprintf(w, "Duration:          %s\n", stats.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Submissions/sec:   %.2f\n", stats.RequestsPerSec)

	if stats.Total > 0 {
		fmt.Fprintln(w, "\nLatency:")
		fmt.Fprintf(w, "  Min:             %s\n", roundLatency(stats.MinLatency))
		fmt.Fprintf(w, "  Max:             %s\n", roundLatency(stats.MaxLatency))
		fmt.Fprintf(w, "  Mean:            %s\n", roundLatency(stats.MeanLatency))
		fmt.Fprintf(w, "  P50:             %s\n", roundLatency(stats.P50Latency))
		fmt.Fprintf(w, "  P90:             %s\n", roundLatency(stats.P90Latency))
		fmt.Fprintf(w, "  P95:             %s\n", roundLatency(stats.P95Latency))
		fmt.Fprintf(w, "  P99:             %s\n", roundLatency(stats.P99Latency))
	}

	if rows := metrics.StatusRows(stats.StatusCodes); len(rows) > 0 {
		fmt.Fprintln(w, "\nStatus Codes:")
		for _, row := range rows {
			fmt.Fprintf(w, "  %s: %d\n", row.Code, row.Count)
		}
	}

	if len(stats.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		labels := make([]string, 0, len(stats.Errors))
		for label := range stats.Errors {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool {
			if stats.Errors[labels[i]] == stats.Errors[labels[j]] {
				return labels[i] < labels[j]
			}
			return stats.Errors[labels[i]] > stats.Errors[labels[j]]
		})
		for _, label := range labels {
			fmt.Fprintf(w, "  %s: %d\n", label, stats.Errors[label])
		}
	}

	if len(r.Thresholds) > 0 {
		fmt.Fprintln(w, "\nThresholds:")
		for _, res := range r.Thresholds {
			fmt.Fprintf(w, "  %s\n", res.Message)
		}
	}
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func roundLatency(d time.Duration) time.Duration {
	if d >= time.Second {
		return d.Round(time.Millisecond)
	}
	return d.Round(10 * time.Microsecond)
}
