package runner

import (
	"context"

	"golang.org/x/time/rate"
)

// arrivalController gates when the scheduler may hand out the next task.
type arrivalController interface {
	Wait(ctx context.Context) error
}

func newArrivalController(opt Options) arrivalController {
	if opt.RatePerSecond <= 0 {
		return nil
	}
	return &uniformArrival{limiter: opt.LimiterFactory(opt.RatePerSecond)}
}

// uniformArrival delegates pacing to a rate.Limiter (uniform spacing).
type uniformArrival struct {
	limiter *rate.Limiter
}

func (u *uniformArrival) Wait(ctx context.Context) error {
	if u == nil || u.limiter == nil {
		return nil
	}
	return u.limiter.Wait(ctx)
}
