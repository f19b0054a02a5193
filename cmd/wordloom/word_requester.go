package main

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/torosent/wordloom/internal/httpclient"
	"github.com/torosent/wordloom/internal/metrics"
	"github.com/torosent/wordloom/internal/output"
	"github.com/torosent/wordloom/internal/runner"
	"github.com/torosent/wordloom/internal/tracing"
	"github.com/torosent/wordloom/internal/word"
)

// wordRequester implements runner.Requester: one simulated user placing one word.
type wordRequester struct {
	generator *word.Generator
	submitter *httpclient.Submitter
	collector *metrics.Collector
	printer   *output.TaskPrinter
	tracer    trace.Tracer
	log       *zap.Logger
	delayMin  time.Duration
	delayMax  time.Duration
}

// Do picks a word, position and color, waits a think time, submits, records
// and prints the outcome. The returned error is the task's failure value.
func (r *wordRequester) Do(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	idx := runner.TaskIndex(ctx)
	g := r.generator.Next()

	if err := sleepContext(ctx, r.generator.Delay(r.delayMin, r.delayMax)); err != nil {
		r.collector.RecordRequest(0, err, nil)
		r.printer.Failure(idx, g.Text, err)
		return err
	}

	ctx, span := tracing.StartSubmitSpan(ctx, r.tracer, tracing.SpanInfo{
		Task:  idx,
		Word:  g.Text,
		X:     g.X,
		Y:     g.Y,
		Color: g.Color,
	})
	out, err := r.submitter.Submit(ctx, g.Submission)
	tracing.EndSpan(span, out.StatusCode, err)

	r.collector.RecordRequest(out.Latency, err, &metrics.RequestMetadata{
		StatusCode: out.StatusCode,
		Crowded:    g.Crowded,
	})

	if err != nil {
		r.printer.Failure(idx, g.Text, err)
		return err
	}
	r.printer.Success(idx, g)
	r.log.Debug("word placed",
		zap.Int("task", idx),
		zap.String("word", g.Text),
		zap.Duration("latency", out.Latency),
		zap.Bool("crowded", g.Crowded),
	)
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
