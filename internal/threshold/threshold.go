// Package threshold evaluates pass/fail assertions against a finished run.
package threshold

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/torosent/wordloom/internal/metrics"
)

// Threshold represents a run assertion that can pass or fail.
type Threshold struct {
	Metric    string  // e.g., "submit_duration", "submit_failed"
	Aggregate string  // e.g., "p95", "avg", "rate", "count"
	Operator  string  // one of <, <=, >, >=, ==
	Value     float64 // the bound compared against
	Raw       string  // original text for display
}

// Result represents the outcome of evaluating a threshold.
type Result struct {
	Threshold Threshold `json:"-"`
	Expr      string    `json:"threshold"`
	Actual    float64   `json:"actual"`
	Pass      bool      `json:"pass"`
	Message   string    `json:"message"`
}

type extractor func(metrics.Stats) float64

func ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// catalog maps metric -> aggregate -> value. Durations are in milliseconds.
var catalog = map[string]map[string]extractor{
	"submit_duration": {
		"p50": func(s metrics.Stats) float64 { return s.P50LatencyMs },
		"p90": func(s metrics.Stats) float64 { return s.P90LatencyMs },
		"p95": func(s metrics.Stats) float64 { return s.P95LatencyMs },
		"p99": func(s metrics.Stats) float64 { return s.P99LatencyMs },
		"avg": func(s metrics.Stats) float64 { return s.MeanLatencyMs },
		"min": func(s metrics.Stats) float64 { return s.MinLatencyMs },
		"max": func(s metrics.Stats) float64 { return s.MaxLatencyMs },
	},
	"submit_failed": {
		"rate":  func(s metrics.Stats) float64 { return ratio(s.Failures, s.Total) },
		"count": func(s metrics.Stats) float64 { return float64(s.Failures) },
	},
	"submit_success": {
		"rate":  func(s metrics.Stats) float64 { return ratio(s.Successes, s.Total) },
		"count": func(s metrics.Stats) float64 { return float64(s.Successes) },
	},
	"submit_crowded": {
		"rate":  func(s metrics.Stats) float64 { return ratio(s.Crowded, s.Total) },
		"count": func(s metrics.Stats) float64 { return float64(s.Crowded) },
	},
	"submits": {
		"rate":  func(s metrics.Stats) float64 { return s.RequestsPerSec },
		"count": func(s metrics.Stats) float64 { return float64(s.Total) },
	},
}

var operators = []string{"<", "<=", ">", ">=", "=="}

var pattern = regexp.MustCompile(`^([a-z_]+):([a-z0-9]+)\s*([<>=!]+)\s*([0-9.]+)$`)

// Evaluator evaluates thresholds against collected metrics.
type Evaluator struct {
	thresholds []Threshold
}

func NewEvaluator(thresholds []Threshold) *Evaluator {
	return &Evaluator{thresholds: thresholds}
}

// Evaluate checks all thresholds against stats, in declaration order.
func (e *Evaluator) Evaluate(stats metrics.Stats) []Result {
	if len(e.thresholds) == 0 {
		return nil
	}
	results := make([]Result, 0, len(e.thresholds))
	for _, t := range e.thresholds {
		results = append(results, evaluateOne(t, stats))
	}
	return results
}

func evaluateOne(t Threshold, stats metrics.Stats) Result {
	actual, err := extractMetricValue(t, stats)
	if err != nil {
		return Result{
			Threshold: t,
			Expr:      t.Raw,
			Message:   fmt.Sprintf("error: %v", err),
		}
	}

	pass := compareValues(actual, t.Operator, t.Value)
	status := "✓"
	if !pass {
		status = "✗"
	}
	return Result{
		Threshold: t,
		Expr:      t.Raw,
		Actual:    actual,
		Pass:      pass,
		Message:   fmt.Sprintf("%s %s: %.2f %s %.2f", status, t.Raw, actual, t.Operator, t.Value),
	}
}

// AllPassed reports whether every result passed. An empty set passes.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return true
}

// Parse parses a threshold string such as:
//
//	submit_duration:p95 < 800      latency percentile in ms
//	submit_failed:rate < 0.05      failure ratio
//	submit_success:count >= 60     successful submissions
//	submit_crowded:rate < 0.2      spread placements that ran out of room
//	submits:rate > 10              submissions per second
func Parse(s string) (Threshold, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Threshold{}, fmt.Errorf("empty threshold string")
	}

	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		return Threshold{}, fmt.Errorf("invalid threshold format: %q (expected metric:aggregate operator value, e.g. 'submit_duration:p95 < 800')", s)
	}
	metric, aggregate, operator, raw := matches[1], matches[2], matches[3], matches[4]

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Threshold{}, fmt.Errorf("invalid threshold value %q: %v", raw, err)
	}

	aggregates, ok := catalog[metric]
	if !ok {
		return Threshold{}, fmt.Errorf("unsupported metric: %q (supported: %s)", metric, strings.Join(metricNames(), ", "))
	}
	if _, ok := aggregates[aggregate]; !ok {
		return Threshold{}, fmt.Errorf("unsupported aggregate %q for %s (supported: %s)", aggregate, metric, strings.Join(aggregateNames(metric), ", "))
	}
	if !isValidOperator(operator) {
		return Threshold{}, fmt.Errorf("unsupported operator: %q (supported: %s)", operator, strings.Join(operators, ", "))
	}

	return Threshold{
		Metric:    metric,
		Aggregate: aggregate,
		Operator:  operator,
		Value:     value,
		Raw:       s,
	}, nil
}

// ParseMultiple parses every string and reports all failures together.
func ParseMultiple(thresholds []string) ([]Threshold, error) {
	if len(thresholds) == 0 {
		return nil, nil
	}

	result := make([]Threshold, 0, len(thresholds))
	var problems []string
	for i, s := range thresholds {
		t, err := Parse(s)
		if err != nil {
			problems = append(problems, fmt.Sprintf("threshold[%d]: %v", i, err))
			continue
		}
		result = append(result, t)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("threshold parsing errors: %s", strings.Join(problems, "; "))
	}
	return result, nil
}

func metricNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func aggregateNames(metric string) []string {
	names := make([]string, 0, len(catalog[metric]))
	for name := range catalog[metric] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isValidOperator(operator string) bool {
	for _, v := range operators {
		if operator == v {
			return true
		}
	}
	return false
}

func extractMetricValue(t Threshold, stats metrics.Stats) (float64, error) {
	aggregates, ok := catalog[t.Metric]
	if !ok {
		return 0, fmt.Errorf("unknown metric: %s", t.Metric)
	}
	fn, ok := aggregates[t.Aggregate]
	if !ok {
		return 0, fmt.Errorf("unsupported aggregate %q for %s", t.Aggregate, t.Metric)
	}
	return fn(stats), nil
}

func compareValues(actual float64, operator string, expected float64) bool {
	const epsilon = 1e-9

	switch operator {
	case "<":
		return actual < expected
	case "<=":
		return actual <= expected || math.Abs(actual-expected) < epsilon
	case ">":
		return actual > expected
	case ">=":
		return actual >= expected || math.Abs(actual-expected) < epsilon
	case "==":
		return math.Abs(actual-expected) < epsilon
	default:
		return false
	}
}
