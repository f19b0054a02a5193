// Package logging builds the diagnostic logger. Diagnostics go to stderr so
// they never interleave with the task lines and report on stdout.
package logging

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/torosent/wordloom/internal/runner"
)

// New returns a console logger writing to stderr at info level, or debug
// level when verbose is set.
func New(verbose bool) *zap.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named("wordloom")
}

// FailureLogger reports failed tasks through a zap logger.
type FailureLogger struct {
	log *zap.Logger
}

var _ runner.FailureLogger = (*FailureLogger)(nil)

func NewFailureLogger(log *zap.Logger) *FailureLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &FailureLogger{log: log}
}

// LogFailure logs err with the task index and, for HTTP failures, the status.
func (l *FailureLogger) LogFailure(ctx context.Context, err error) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("task", runner.TaskIndex(ctx)),
		zap.Error(err),
	}
	var httpErr *runner.HTTPError
	if errors.As(err, &httpErr) {
		fields = append(fields, zap.Int("status", httpErr.StatusCode))
	}
	l.log.Warn("submission failed", fields...)
}
