package metrics_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/torosent/wordloom/internal/metrics"
	"github.com/torosent/wordloom/internal/runner"
)

func TestCollectorLatencyStats(t *testing.T) {
	c := metrics.NewCollector()

	// Record deterministic latencies.
	for _, ms := range []int{10, 20, 30, 40, 50} {
		c.RecordRequest(time.Duration(ms)*time.Millisecond, nil, &metrics.RequestMetadata{StatusCode: 201})
	}

	stats := c.Stats(0)

	if stats.Total != 5 {
		t.Errorf("expected total 5, got %d", stats.Total)
	}
	if stats.Successes != 5 {
		t.Errorf("expected successes 5, got %d", stats.Successes)
	}
	if stats.Failures != 0 {
		t.Errorf("expected failures 0, got %d", stats.Failures)
	}
	if stats.MinLatency != 10*time.Millisecond {
		t.Errorf("expected min 10ms, got %s", stats.MinLatency)
	}
	if stats.MaxLatency != 50*time.Millisecond {
		t.Errorf("expected max 50ms, got %s", stats.MaxLatency)
	}
	if stats.MeanLatency != 30*time.Millisecond {
		t.Errorf("expected mean 30ms, got %s", stats.MeanLatency)
	}
	if stats.StatusCodes["201"] != 5 {
		t.Errorf("expected 5 responses with 201, got %v", stats.StatusCodes)
	}
	if stats.SuccessRate() != 1 {
		t.Errorf("expected success rate 1, got %v", stats.SuccessRate())
	}
}

func TestPercentilesCalculations(t *testing.T) {
	c := metrics.NewCollector()

	// 100 samples: 1ms, 2ms, ..., 100ms.
	for i := 1; i <= 100; i++ {
		c.RecordRequest(time.Duration(i)*time.Millisecond, nil, nil)
	}

	stats := c.Stats(0)

	if stats.P50Latency < 49*time.Millisecond || stats.P50Latency > 51*time.Millisecond {
		t.Errorf("expected P50 ~50ms, got %s", stats.P50Latency)
	}
	if stats.P90Latency < 89*time.Millisecond || stats.P90Latency > 91*time.Millisecond {
		t.Errorf("expected P90 ~90ms, got %s", stats.P90Latency)
	}
	if stats.P95Latency < 94*time.Millisecond || stats.P95Latency > 96*time.Millisecond {
		t.Errorf("expected P95 ~95ms, got %s", stats.P95Latency)
	}
	if stats.P99Latency < 98*time.Millisecond || stats.P99Latency > 100*time.Millisecond {
		t.Errorf("expected P99 ~99ms, got %s", stats.P99Latency)
	}
}

func TestFailuresGroupedByFriendlyLabel(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordRequest(time.Millisecond, &runner.HTTPError{StatusCode: 500}, &metrics.RequestMetadata{StatusCode: 500})
	c.RecordRequest(time.Millisecond, fmt.Errorf("post word: %w", &runner.HTTPError{StatusCode: 400}), &metrics.RequestMetadata{StatusCode: 400})
	c.RecordRequest(time.Millisecond, errors.New("plain"), nil)
	c.RecordRequest(time.Millisecond, nil, &metrics.RequestMetadata{StatusCode: 201, Crowded: true})

	stats := c.Stats(time.Second)
	if stats.Failures != 3 || stats.Successes != 1 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if stats.Errors["HTTP error response"] != 2 {
		t.Errorf("expected wrapped HTTP errors grouped together, got %v", stats.Errors)
	}
	if stats.Errors["Error"] != 1 {
		t.Errorf("expected one plain error, got %v", stats.Errors)
	}
	if stats.Crowded != 1 {
		t.Errorf("expected 1 crowded placement, got %d", stats.Crowded)
	}
	if len(stats.StatusCodes) != 3 {
		t.Errorf("expected 3 status codes, got %v", stats.StatusCodes)
	}
	if got := stats.SuccessRate(); got != 0.25 {
		t.Errorf("success rate = %v, want 0.25", got)
	}
}

func TestJSONReportSchema(t *testing.T) {
	c := metrics.NewCollector()

	c.RecordRequest(15*time.Millisecond, nil, &metrics.RequestMetadata{StatusCode: 201})
	c.RecordRequest(25*time.Millisecond, &runner.HTTPError{StatusCode: 500}, &metrics.RequestMetadata{StatusCode: 500})

	stats := c.Stats(100 * time.Millisecond)

	data, err := json.Marshal(stats)
	if err != nil {
		t.Fatalf("failed to marshal stats: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	requiredFields := []string{"total", "successes", "failures", "crowded", "min_latency_ms", "max_latency_ms", "mean_latency_ms", "p50_latency_ms", "p90_latency_ms", "p95_latency_ms", "p99_latency_ms", "duration_ms", "requests_per_sec", "status_codes", "errors"}
	for _, field := range requiredFields {
		if _, ok := parsed[field]; !ok {
			t.Errorf("missing field %q in JSON output", field)
		}
	}
	if parsed["requests_per_sec"].(float64) != 20 {
		t.Errorf("requests_per_sec = %v, want 20", parsed["requests_per_sec"])
	}
}

func TestEmptyStats(t *testing.T) {
	stats := metrics.NewCollector().Stats(time.Second)
	if stats.Total != 0 || stats.RequestsPerSec != 0 || stats.SuccessRate() != 0 {
		t.Fatalf("unexpected empty stats %+v", stats)
	}
	if stats.StatusCodes != nil || stats.Errors != nil {
		t.Fatalf("expected nil maps for empty stats")
	}
}

func TestConcurrentRecording(t *testing.T) {
	c := metrics.NewCollector()

	var wg sync.WaitGroup
	workers := 10
	recordsPerWorker := 100

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < recordsPerWorker; j++ {
				c.RecordRequest(time.Millisecond, nil, nil)
			}
		}()
	}
	wg.Wait()

	stats := c.Stats(0)
	expected := workers * recordsPerWorker
	if stats.Total != int64(expected) {
		t.Errorf("expected total %d, got %d", expected, stats.Total)
	}
}

func TestElapsedAfterStart(t *testing.T) {
	c := metrics.NewCollector()
	time.Sleep(5 * time.Millisecond)
	c.Start()
	if c.Elapsed() >= 5*time.Millisecond {
		t.Fatalf("Start should reset the reference time, elapsed=%s", c.Elapsed())
	}
}
