package runner

import (
	"context"

	"golang.org/x/time/rate"
)

// Requester abstracts executing a single submission task.
// Implementations should return an error for failed tasks.
type Requester interface {
	Do(ctx context.Context) error
}

// RequesterFunc adapts a function to the Requester interface.
type RequesterFunc func(ctx context.Context) error

func (f RequesterFunc) Do(ctx context.Context) error { return f(ctx) }

// Options configure the Runner.
type Options struct {
	Concurrency    int                         // number of worker goroutines
	TotalRequests  int                         // number of tasks to execute
	RatePerSecond  int                         // optional global pacing (0 means unlimited)
	Requester      Requester                   // task executor (required)
	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.TotalRequests < 0 {
		o.TotalRequests = 0
	}
	if o.RatePerSecond < 0 {
		o.RatePerSecond = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst of one keeps submissions evenly spaced.
			return rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}
