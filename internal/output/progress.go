package output

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/torosent/wordloom/internal/metrics"
)

// ProgressReporter rewrites a single status line at a fixed interval. It
// stands in for per-task lines in quiet mode.
type ProgressReporter struct {
	collector *metrics.Collector
	planned   int
	interval  time.Duration
	done      chan struct{}
	finished  chan struct{}
	writer    io.Writer
	active    int32
}

// NewProgressReporter creates a progress reporter that updates at the given interval.
func NewProgressReporter(collector *metrics.Collector, planned int, interval time.Duration, writer io.Writer) *ProgressReporter {
	if writer == nil {
		writer = io.Discard
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &ProgressReporter{
		collector: collector,
		planned:   planned,
		interval:  interval,
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
		writer:    writer,
	}
}

// Start begins displaying progress updates in a background goroutine.
func (p *ProgressReporter) Start() {
	if !atomic.CompareAndSwapInt32(&p.active, 0, 1) {
		return
	}
	go p.run()
}

// Stop halts updates and prints a final line reflecting the finished counts.
func (p *ProgressReporter) Stop() {
	if atomic.CompareAndSwapInt32(&p.active, 1, 2) {
		close(p.done)
		<-p.finished
		fmt.Fprintf(p.writer, "%s\n", p.line())
	}
}

func (p *ProgressReporter) run() {
	defer close(p.finished)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fmt.Fprint(p.writer, p.line())
		case <-p.done:
			return
		}
	}
}

func (p *ProgressReporter) line() string {
	stats := p.collector.Stats(p.collector.Elapsed())
	return fmt.Sprintf("\rSubmitted: %d/%d | Placed: %d | Failed: %d | Rate: %.1f/s",
		stats.Total, p.planned, stats.Successes, stats.Failures, stats.RequestsPerSec)
}
