// Package runner provides the simulation engine for wordloom.
//
// A [Runner] executes exactly TotalRequests tasks on a fixed pool of
// Concurrency workers and waits for all of them before returning:
//
//	r := runner.New(runner.Options{
//		Concurrency:   5,
//		TotalRequests: 60,
//		Requester:     myRequester,
//	})
//	result := r.Run(ctx)
//
// # Requester Interface
//
// Each task calls [Requester.Do]. The 1-based task index is available through
// [TaskIndex]. A task reports failure by returning an error; the runner
// counts it and moves on, so one failed submission never aborts the batch.
//
// # Pacing
//
// RatePerSecond optionally caps how fast tasks are handed to workers, using a
// token bucket from golang.org/x/time/rate. Per-task think time belongs to the
// requester.
//
// # Middleware
//
//   - [WithLogging]: log task failures
//
// # Error Handling
//
// The [HTTPError] type carries the status code and a response snippet:
//
//	var httpErr *runner.HTTPError
//	if errors.As(err, &httpErr) {
//		fmt.Printf("Status: %d, Body: %s\n", httpErr.StatusCode, httpErr.Body)
//	}
package runner
