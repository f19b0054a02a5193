package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/torosent/wordloom/internal/runner"
	"github.com/torosent/wordloom/internal/word"
)

const (
	maxLoggedBodyBytes = 1024
	maxDrainBytes      = 64 * 1024
)

// Outcome describes a completed exchange, successful or not.
type Outcome struct {
	StatusCode int // 0 when no response arrived
	Latency    time.Duration
}

// Submitter posts submissions and classifies the responses.
type Submitter struct {
	client  *http.Client
	builder *RequestBuilder
}

func NewSubmitter(client *http.Client, builder *RequestBuilder) (*Submitter, error) {
	if client == nil {
		return nil, errors.New("http client is required")
	}
	if builder == nil {
		return nil, errors.New("request builder is required")
	}
	return &Submitter{client: client, builder: builder}, nil
}

// Submit sends one submission. Only 201 Created counts as success; any other
// status yields a *runner.HTTPError carrying the service's error message.
func (s *Submitter) Submit(ctx context.Context, sub word.Submission) (Outcome, error) {
	start := time.Now()
	req, err := s.builder.Build(ctx, sub)
	if err != nil {
		return Outcome{Latency: time.Since(start)}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Outcome{Latency: time.Since(start)}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBodyBytes))
	// Drain a bounded remainder so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	out := Outcome{StatusCode: resp.StatusCode, Latency: time.Since(start)}
	if resp.StatusCode == http.StatusCreated {
		return out, nil
	}
	return out, &runner.HTTPError{
		StatusCode: resp.StatusCode,
		Body:       errorDetail(body),
	}
}

// errorDetail prefers the "error" member of a JSON body and falls back to the
// trimmed raw text.
func errorDetail(body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error"); msg.Exists() && msg.Type == gjson.String {
			return strings.TrimSpace(msg.String())
		}
	}
	return strings.TrimSpace(string(body))
}
