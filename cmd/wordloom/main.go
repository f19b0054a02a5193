package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/torosent/wordloom/internal/config"
	"github.com/torosent/wordloom/internal/httpclient"
	"github.com/torosent/wordloom/internal/logging"
	"github.com/torosent/wordloom/internal/metrics"
	"github.com/torosent/wordloom/internal/output"
	"github.com/torosent/wordloom/internal/palette"
	"github.com/torosent/wordloom/internal/placement"
	"github.com/torosent/wordloom/internal/runner"
	"github.com/torosent/wordloom/internal/threshold"
	"github.com/torosent/wordloom/internal/tracing"
	"github.com/torosent/wordloom/internal/vocabulary"
	"github.com/torosent/wordloom/internal/word"
)

const (
	progressInterval = time.Second
	shutdownTimeout  = 5 * time.Second
)

// errThresholdsFailed marks a completed run whose assertions did not hold.
var errThresholdsFailed = errors.New("one or more thresholds failed")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one simulation. Failed submissions do not make it return an
// error; only bad configuration, startup failures and failed thresholds do.
func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.NewLoader().Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.NewWithWriter(stderr, cfg.Verbose)
	defer func() { _ = log.Sync() }()

	thresholds, err := threshold.ParseMultiple(cfg.Thresholds)
	if err != nil {
		return err
	}

	vocab, err := loadVocabulary(cfg)
	if err != nil {
		return err
	}
	colors, err := palette.New(cfg.Palette)
	if err != nil {
		return err
	}
	placer, err := placement.New(cfg.Placement, placement.NewMemory(), cfg.MinDistance, cfg.PlacementAttempts)
	if err != nil {
		return err
	}
	generator, err := word.NewGenerator(cfg.Seed, vocab, placer, colors)
	if err != nil {
		return err
	}

	runID := ulid.Make().String()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp, err := tracing.Init(ctx, cfg.Tracing, runID)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	endpoint := cfg.Endpoint()
	builder, err := httpclient.NewRequestBuilder(endpoint)
	if err != nil {
		return err
	}
	builder.WithPropagation(tp.ShouldPropagate())
	client := httpclient.NewClient(cfg.Timeout)
	defer client.CloseIdleConnections()
	submitter, err := httpclient.NewSubmitter(client, builder)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	showTasks := !cfg.Quiet && !cfg.JSONOutput
	var taskOut io.Writer
	if showTasks {
		taskOut = stdout
	}

	var requester runner.Requester = &wordRequester{
		generator: generator,
		submitter: submitter,
		collector: collector,
		printer:   output.NewTaskPrinter(taskOut),
		tracer:    tp.Tracer(),
		log:       log,
		delayMin:  cfg.DelayMin,
		delayMax:  cfg.DelayMax,
	}
	if cfg.LogErrors {
		requester = runner.WithLogging(requester, logging.NewFailureLogger(log))
	}

	r := runner.New(runner.Options{
		Concurrency:   cfg.Concurrency,
		TotalRequests: cfg.Total,
		RatePerSecond: cfg.Rate,
		Requester:     requester,
	})

	log.Debug("run configured",
		zap.String("run_id", runID),
		zap.String("endpoint", endpoint),
		zap.Int("total", cfg.Total),
		zap.Int("concurrency", cfg.Concurrency),
		zap.String("palette", string(cfg.Palette)),
		zap.String("placement", string(cfg.Placement)),
		zap.Int("vocabulary", vocab.Len()),
		zap.Bool("tracing", tp.Enabled()),
	)

	if !cfg.JSONOutput {
		output.PrintBanner(stdout, runID, endpoint, cfg.Total, cfg.Concurrency)
	}

	var progress *output.ProgressReporter
	if cfg.Quiet && !cfg.JSONOutput {
		progress = output.NewProgressReporter(collector, cfg.Total, progressInterval, stdout)
		progress.Start()
	}

	collector.Start()
	result := r.Run(ctx)
	if progress != nil {
		progress.Stop()
	}
	if ctx.Err() != nil {
		log.Warn("interrupted, report covers scheduled tasks only",
			zap.Int64("scheduled", result.Total),
			zap.Int("planned", cfg.Total),
		)
	}

	stats := collector.Stats(result.Duration)
	report := output.Report{
		RunID:      runID,
		Endpoint:   endpoint,
		Planned:    cfg.Total,
		Stats:      stats,
		Thresholds: threshold.NewEvaluator(thresholds).Evaluate(stats),
	}

	if cfg.JSONOutput {
		if err := output.PrintJSONReport(stdout, report); err != nil {
			return err
		}
	} else {
		output.PrintReport(stdout, report)
	}

	if !threshold.AllPassed(report.Thresholds) {
		return errThresholdsFailed
	}
	return nil
}

func loadVocabulary(cfg *config.Config) (*vocabulary.Vocabulary, error) {
	switch {
	case cfg.VocabularyFile != "":
		return vocabulary.Load(cfg.VocabularyFile)
	case len(cfg.Vocabulary) > 0:
		return vocabulary.New(cfg.Vocabulary)
	default:
		return vocabulary.MustDefault(), nil
	}
}
