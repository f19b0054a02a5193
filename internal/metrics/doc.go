// Package metrics aggregates per-submission measurements for a simulation run.
//
// The central [Collector] is shared by all workers:
//
//	collector := metrics.NewCollector()
//	collector.RecordRequest(latency, err, &metrics.RequestMetadata{StatusCode: 201})
//	stats := collector.Stats(elapsed)
//
// [Stats] carries success/failure counts, latency percentiles from an HDR
// histogram, status code counts and failures grouped by a friendly error
// label. Millisecond fields are provided for JSON output.
package metrics
