package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Result captures execution summary.
type Result struct {
	Total     int64
	Successes int64
	Errors    int64
	Duration  time.Duration
}

// Runner executes a fixed number of tasks on a bounded worker pool.
type Runner struct {
	opt     Options
	arrival arrivalController
}

func New(opt Options) *Runner {
	opt.normalize()
	return &Runner{opt: opt, arrival: newArrivalController(opt)}
}

// Run schedules task indices 1..TotalRequests and blocks until every
// scheduled task has returned. Task errors are counted, never propagated.
// Cancelling ctx stops scheduling; tasks already handed out still run.
func (r *Runner) Run(ctx context.Context) Result {
	start := time.Now()
	var total, errs int64

	tasks := make(chan int, r.opt.Concurrency)

	// Scheduler: serializes pacing so workers only execute allocated slots.
	go func() {
		defer close(tasks)
		for idx := 1; idx <= r.opt.TotalRequests; idx++ {
			if ctx.Err() != nil {
				return
			}
			if r.arrival != nil {
				if err := r.arrival.Wait(ctx); err != nil {
					return
				}
			}
			select {
			case tasks <- idx:
				atomic.AddInt64(&total, 1)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Tasks run on a context detached from cancellation so an interrupt
	// never turns in-flight submissions into failures.
	taskCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(r.opt.Concurrency)
	for i := 0; i < r.opt.Concurrency; i++ {
		go func() {
			defer wg.Done()
			for idx := range tasks {
				if err := r.do(WithTaskIndex(taskCtx, idx)); err != nil {
					atomic.AddInt64(&errs, 1)
				}
			}
		}()
	}
	wg.Wait()

	t := atomic.LoadInt64(&total)
	e := atomic.LoadInt64(&errs)
	return Result{
		Total:     t,
		Successes: t - e,
		Errors:    e,
		Duration:  time.Since(start),
	}
}

// do runs one task, converting a panic into a task failure so a single bad
// task cannot take the pool down.
func (r *Runner) do(ctx context.Context) (err error) {
	if r.opt.Requester == nil {
		return nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p}
		}
	}()
	return r.opt.Requester.Do(ctx)
}
