package runner_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/torosent/wordloom/internal/runner"
)

// fakeRequester simulates a task with fixed latency.
type fakeRequester struct {
	latency  time.Duration
	calls    int64
	inFlight int64
	peak     int64
	failEven bool

	mu      sync.Mutex
	indices []int
}

func (f *fakeRequester) Do(ctx context.Context) error {
	atomic.AddInt64(&f.calls, 1)
	cur := atomic.AddInt64(&f.inFlight, 1)
	defer atomic.AddInt64(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt64(&f.peak)
		if cur <= peak || atomic.CompareAndSwapInt64(&f.peak, peak, cur) {
			break
		}
	}

	idx := runner.TaskIndex(ctx)
	f.mu.Lock()
	f.indices = append(f.indices, idx)
	f.mu.Unlock()

	time.Sleep(f.latency)
	if f.failEven && idx%2 == 0 {
		return errors.New("even task failed")
	}
	return nil
}

// TestRunnerRespectsTotalRequests ensures every task runs exactly once.
func TestRunnerRespectsTotalRequests(t *testing.T) {
	req := &fakeRequester{latency: time.Millisecond}
	r := runner.New(runner.Options{
		Concurrency:   4,
		TotalRequests: 25,
		Requester:     req,
	})
	res := r.Run(context.Background())
	if res.Total != 25 {
		t.Fatalf("expected total 25, got %d", res.Total)
	}
	if req.calls != 25 {
		t.Fatalf("expected requester called 25 times, got %d", req.calls)
	}
	if res.Successes != 25 || res.Errors != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Duration <= 0 {
		t.Fatal("result duration not recorded")
	}

	seen := map[int]bool{}
	for _, idx := range req.indices {
		if idx < 1 || idx > 25 || seen[idx] {
			t.Fatalf("bad or duplicate task index %d in %v", idx, req.indices)
		}
		seen[idx] = true
	}
}

// TestRunnerBoundsConcurrency ensures no more than Concurrency tasks overlap.
func TestRunnerBoundsConcurrency(t *testing.T) {
	req := &fakeRequester{latency: 10 * time.Millisecond}
	r := runner.New(runner.Options{
		Concurrency:   3,
		TotalRequests: 15,
		Requester:     req,
	})
	r.Run(context.Background())
	if req.peak > 3 {
		t.Fatalf("peak concurrency %d exceeds 3", req.peak)
	}
	if req.peak < 2 {
		t.Fatalf("expected tasks to overlap, peak=%d", req.peak)
	}
}

// TestRunnerCountsFailuresWithoutAborting ensures failures never stop the batch.
func TestRunnerCountsFailuresWithoutAborting(t *testing.T) {
	req := &fakeRequester{failEven: true}
	r := runner.New(runner.Options{
		Concurrency:   5,
		TotalRequests: 10,
		Requester:     req,
	})
	res := r.Run(context.Background())
	if res.Total != 10 || res.Errors != 5 || res.Successes != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
	if req.calls != 10 {
		t.Fatalf("expected 10 calls, got %d", req.calls)
	}
}

// TestRunnerRecoversPanickingTask ensures a panic is recorded as a failure.
func TestRunnerRecoversPanickingTask(t *testing.T) {
	var calls int64
	req := runner.RequesterFunc(func(ctx context.Context) error {
		atomic.AddInt64(&calls, 1)
		if runner.TaskIndex(ctx) == 3 {
			panic("boom")
		}
		return nil
	})
	res := runner.New(runner.Options{Concurrency: 2, TotalRequests: 6, Requester: req}).Run(context.Background())
	if res.Total != 6 || res.Errors != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if calls != 6 {
		t.Fatalf("expected 6 calls, got %d", calls)
	}
}

// TestRunnerStopsSchedulingOnCancel ensures cancellation prevents new tasks
// while letting in-flight ones finish cleanly.
func TestRunnerStopsSchedulingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls int64
	req := runner.RequesterFunc(func(taskCtx context.Context) error {
		if atomic.AddInt64(&calls, 1) == 1 {
			cancel()
		}
		time.Sleep(5 * time.Millisecond)
		return taskCtx.Err()
	})
	res := runner.New(runner.Options{Concurrency: 1, TotalRequests: 100, Requester: req}).Run(ctx)
	if res.Total >= 100 {
		t.Fatalf("expected scheduling to stop early, total=%d", res.Total)
	}
	if res.Errors != 0 {
		t.Fatalf("in-flight tasks should not observe cancellation, errors=%d", res.Errors)
	}
	if res.Total != calls {
		t.Fatalf("total %d != calls %d", res.Total, calls)
	}
}

// TestRateLimiterCapsThroughput ensures the limiter spaces task hand-out.
func TestRateLimiterCapsThroughput(t *testing.T) {
	req := &fakeRequester{}
	r := runner.New(runner.Options{
		Concurrency:    10,
		TotalRequests:  6,
		RatePerSecond:  50,
		Requester:      req,
		LimiterFactory: func(rps int) *rate.Limiter { return rate.NewLimiter(rate.Limit(rps), 1) },
	})
	start := time.Now()
	res := r.Run(context.Background())
	elapsed := time.Since(start)
	// Five gaps of 20ms after the first token.
	if elapsed < 90*time.Millisecond {
		t.Fatalf("rate limiter not applied: %s", elapsed)
	}
	if res.Total != 6 {
		t.Fatalf("expected 6 tasks, got %d", res.Total)
	}
}

func TestRunnerZeroTasks(t *testing.T) {
	res := runner.New(runner.Options{Concurrency: 3, Requester: &fakeRequester{}}).Run(context.Background())
	if res.Total != 0 || res.Errors != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestTaskIndexOutsideRun(t *testing.T) {
	if got := runner.TaskIndex(context.Background()); got != 0 {
		t.Fatalf("TaskIndex() = %d, want 0", got)
	}
}
