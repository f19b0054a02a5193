package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/torosent/wordloom/internal/palette"
	"github.com/torosent/wordloom/internal/placement"
)

// Defaults for a simulation run.
const (
	DefaultBaseURL     = "http://localhost:3000"
	DefaultPath        = "/api/words"
	DefaultTotal       = 60
	DefaultConcurrency = 5
	DefaultTimeout     = 5 * time.Second
	DefaultDelayMin    = 50 * time.Millisecond
	DefaultDelayMax    = 300 * time.Millisecond
)

// Config holds the settings for one simulation run.
type Config struct {
	BaseURL           string         `mapstructure:"base_url"`
	Path              string         `mapstructure:"path"`
	Total             int            `mapstructure:"total"`
	Concurrency       int            `mapstructure:"concurrency"`
	Timeout           time.Duration  `mapstructure:"timeout"`
	Rate              int            `mapstructure:"rate"`
	DelayMin          time.Duration  `mapstructure:"delay_min"`
	DelayMax          time.Duration  `mapstructure:"delay_max"`
	Palette           palette.Kind   `mapstructure:"palette"`
	Placement         placement.Kind `mapstructure:"placement"`
	MinDistance       float64        `mapstructure:"min_distance"`
	PlacementAttempts int            `mapstructure:"placement_attempts"`
	Vocabulary        []string       `mapstructure:"vocabulary"`
	VocabularyFile    string         `mapstructure:"vocabulary_file"`
	Seed              int64          `mapstructure:"seed"`
	JSONOutput        bool           `mapstructure:"json_output"`
	Quiet             bool           `mapstructure:"quiet"`
	LogErrors         bool           `mapstructure:"log_errors"`
	Verbose           bool           `mapstructure:"verbose"`
	Thresholds        []string       `mapstructure:"thresholds"`
	Tracing           TracingConfig  `mapstructure:"tracing"`
	ConfigFile        string         `mapstructure:"-"`
}

// TracingConfig controls OTLP span export.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"` // "grpc" or "http"
	ServiceName string  `mapstructure:"service_name"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Propagate   bool    `mapstructure:"propagate"`
}

// Enabled reports whether spans should be exported.
func (t TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

// ShouldPropagate reports whether W3C trace headers are injected.
func (t TracingConfig) ShouldPropagate() bool {
	return t.Enabled() && t.Propagate
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		BaseURL:           DefaultBaseURL,
		Path:              DefaultPath,
		Total:             DefaultTotal,
		Concurrency:       DefaultConcurrency,
		Timeout:           DefaultTimeout,
		DelayMin:          DefaultDelayMin,
		DelayMax:          DefaultDelayMax,
		Palette:           palette.KindZones,
		Placement:         placement.KindSpread,
		MinDistance:       placement.DefaultMinDistance,
		PlacementAttempts: placement.DefaultAttempts,
		Tracing: TracingConfig{
			Protocol:   "grpc",
			SampleRate: 1,
			Propagate:  true,
		},
	}
}

// Endpoint joins BaseURL and Path.
func (c Config) Endpoint() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	path := strings.TrimSpace(c.Path)
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

func (c Config) Validate() error {
	var issues []string

	issues = append(issues, validateBaseURL(c.BaseURL)...)

	if c.Total < 1 {
		issues = append(issues, "total must be >= 1")
	}
	if c.Concurrency < 1 {
		issues = append(issues, "concurrency must be >= 1")
	}
	if c.Timeout <= 0 {
		issues = append(issues, "timeout must be > 0")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate must be >= 0")
	}
	if c.DelayMin < 0 {
		issues = append(issues, "delay-min must be >= 0")
	}
	if c.DelayMax < c.DelayMin {
		issues = append(issues, "delay-max must be >= delay-min")
	}

	switch c.Palette {
	case palette.KindSimple, palette.KindZones:
	default:
		issues = append(issues, fmt.Sprintf("palette %q is not supported (use simple or zones)", c.Palette))
	}
	switch c.Placement {
	case placement.KindRandom, placement.KindSpread:
	default:
		issues = append(issues, fmt.Sprintf("placement %q is not supported (use random or spread)", c.Placement))
	}
	if c.MinDistance <= 0 || c.MinDistance >= 1 {
		issues = append(issues, "min-distance must be between 0 and 1")
	}
	if c.PlacementAttempts < 1 {
		issues = append(issues, "placement-attempts must be >= 1")
	}

	if len(c.Vocabulary) > 0 && strings.TrimSpace(c.VocabularyFile) != "" {
		issues = append(issues, "vocabulary and vocabulary-file are mutually exclusive")
	}
	for i, w := range c.Vocabulary {
		if strings.TrimSpace(w) == "" {
			issues = append(issues, fmt.Sprintf("vocabulary[%d]: word is blank", i))
		}
	}

	issues = append(issues, validateTracing(c.Tracing)...)

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

func validateBaseURL(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"base-url is required"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return []string{fmt.Sprintf("base-url %q is invalid: %v", raw, err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []string{fmt.Sprintf("base-url %q must use http or https", raw)}
	}
	if u.Host == "" {
		return []string{fmt.Sprintf("base-url %q has no host", raw)}
	}
	return nil
}

func validateTracing(t TracingConfig) []string {
	if !t.Enabled() {
		return nil
	}
	var issues []string
	switch strings.ToLower(t.Protocol) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing: protocol must be 'grpc' or 'http', got %q", t.Protocol))
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		issues = append(issues, fmt.Sprintf("tracing: sample_rate must be between 0.0 and 1.0, got %g", t.SampleRate))
	}
	return issues
}
