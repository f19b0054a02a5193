package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/torosent/wordloom/internal/runner"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false)
	log.Debug("hidden")
	log.Info("shown")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "wordloom") {
		t.Errorf("expected named info line, got %q", out)
	}

	buf.Reset()
	verbose := NewWithWriter(&buf, true)
	verbose.Debug("details")
	_ = verbose.Sync()
	if !strings.Contains(buf.String(), "details") {
		t.Errorf("verbose logger dropped debug line: %q", buf.String())
	}
}

func TestFailureLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fl := NewFailureLogger(zap.New(core))

	ctx := runner.WithTaskIndex(context.Background(), 12)
	fl.LogFailure(ctx, &runner.HTTPError{StatusCode: 400, Body: "Mot inapproprié."})
	fl.LogFailure(ctx, nil)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel || e.Message != "submission failed" {
		t.Errorf("unexpected entry %v %q", e.Level, e.Message)
	}
	fields := e.ContextMap()
	if fields["task"] != int64(12) {
		t.Errorf("task = %v, want 12", fields["task"])
	}
	if fields["status"] != int64(400) {
		t.Errorf("status = %v, want 400", fields["status"])
	}
}

func TestFailureLoggerTransportError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fl := NewFailureLogger(zap.New(core))
	fl.LogFailure(context.Background(), errors.New("dial tcp: connection refused"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if _, ok := entries[0].ContextMap()["status"]; ok {
		t.Error("status field should be absent for transport errors")
	}
}

func TestNewFailureLoggerNil(t *testing.T) {
	NewFailureLogger(nil).LogFailure(context.Background(), errors.New("boom"))
}
