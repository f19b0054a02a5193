package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/torosent/wordloom/internal/tracing"
	"github.com/torosent/wordloom/internal/word"
)

const userAgent = "wordloom/1.0"

// RequestBuilder turns submissions into POST requests against one endpoint.
type RequestBuilder struct {
	target    string
	headers   http.Header
	propagate bool
}

// NewRequestBuilder validates the endpoint and prepares the fixed headers.
func NewRequestBuilder(endpoint string) (*RequestBuilder, error) {
	target := strings.TrimSpace(endpoint)
	if target == "" {
		return nil, errors.New("endpoint is required")
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("endpoint %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q must use http or https", target)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	headers.Set("User-Agent", userAgent)

	return &RequestBuilder{
		target:  target,
		headers: headers,
	}, nil
}

// WithPropagation makes Build inject W3C trace headers from the request context.
func (b *RequestBuilder) WithPropagation(enabled bool) *RequestBuilder {
	b.propagate = enabled
	return b
}

// Target returns the endpoint requests are sent to.
func (b *RequestBuilder) Target() string {
	return b.target
}

func (b *RequestBuilder) Build(ctx context.Context, sub word.Submission) (*http.Request, error) {
	if b == nil {
		return nil, errors.New("builder cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.target, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header = b.headers.Clone()

	if b.propagate {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	return req, nil
}

// NewClient returns an http.Client tuned for many short-lived concurrent
// submissions. timeout bounds each request end to end.
func NewClient(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
