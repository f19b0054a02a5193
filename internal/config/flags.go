package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/torosent/wordloom/internal/palette"
	"github.com/torosent/wordloom/internal/placement"
)

// RegisterFlags registers all CLI flags to a cobra command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.Flags())
}

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wordloom",
		Short:         "Simulate users posting words to a word wall",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Target
	flags.String("base-url", DefaultBaseURL, "Base URL of the word wall service")
	flags.String("path", DefaultPath, "Path of the words endpoint")

	// Load control
	flags.IntP("total", "t", DefaultTotal, "Number of words to submit")
	flags.IntP("concurrency", "c", DefaultConcurrency, "Number of simulated users submitting concurrently")
	flags.Duration("timeout", DefaultTimeout, "Per-request timeout")
	flags.IntP("rate", "r", 0, "Global submissions per second cap (0 means unlimited)")
	flags.Duration("delay-min", DefaultDelayMin, "Minimum think time before each submission")
	flags.Duration("delay-max", DefaultDelayMax, "Maximum think time before each submission")

	// Word generation
	flags.String("palette", string(palette.KindZones), "Color palette: 'simple' or 'zones'")
	flags.String("placement", string(placement.KindSpread), "Word placement: 'random' or 'spread'")
	flags.Float64("min-distance", placement.DefaultMinDistance, "Minimum distance between spread words")
	flags.Int("placement-attempts", placement.DefaultAttempts, "Draws tried before a spread word is placed anyway")
	flags.String("vocabulary-file", "", "Path to a YAML, JSON or CSV word list")
	flags.Int64("seed", 0, "Random seed (0 means time based)")

	// Output
	flags.Bool("json-output", false, "Emit the final report as JSON and suppress per-word lines")
	flags.BoolP("quiet", "q", false, "Suppress per-word lines and show a progress line instead")
	flags.Bool("log-errors", false, "Log each failed submission to stderr")
	flags.BoolP("verbose", "v", false, "Enable debug logging on stderr")
	flags.String("config", "", "Path to configuration file (YAML, JSON or TOML)")
	flags.StringSlice("threshold", nil, "Pass/fail assertion (repeatable, e.g. 'submit_success:rate >= 0.95')")

	// Tracing
	flags.String("tracing-endpoint", "", "OTLP collector endpoint (enables tracing)")
	flags.String("tracing-protocol", "grpc", "OTLP protocol: 'grpc' or 'http'")
	flags.String("tracing-service-name", "", "Service name reported on spans")
	flags.Bool("tracing-insecure", false, "Disable TLS for the OTLP exporter")
	flags.Float64("tracing-sample-rate", 1, "Fraction of submissions traced (0.0-1.0)")
	flags.Bool("tracing-propagate", true, "Inject W3C trace headers into submissions")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\nUsage: %s\n\nFlags:\n", cmd.Short, cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val string
		if val, err = fs.GetString(name); err == nil {
			*dst = strings.TrimSpace(val)
		}
	}
	num := func(name string, dst *int) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val int
		if val, err = fs.GetInt(name); err == nil {
			*dst = val
		}
	}
	boolean := func(name string, dst *bool) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val bool
		if val, err = fs.GetBool(name); err == nil {
			*dst = val
		}
	}
	float := func(name string, dst *float64) {
		if err != nil || !fs.Changed(name) {
			return
		}
		var val float64
		if val, err = fs.GetFloat64(name); err == nil {
			*dst = val
		}
	}

	str("base-url", &cfg.BaseURL)
	str("path", &cfg.Path)
	num("total", &cfg.Total)
	num("concurrency", &cfg.Concurrency)
	num("rate", &cfg.Rate)
	float("min-distance", &cfg.MinDistance)
	num("placement-attempts", &cfg.PlacementAttempts)
	str("vocabulary-file", &cfg.VocabularyFile)
	boolean("json-output", &cfg.JSONOutput)
	boolean("quiet", &cfg.Quiet)
	boolean("log-errors", &cfg.LogErrors)
	boolean("verbose", &cfg.Verbose)
	str("tracing-endpoint", &cfg.Tracing.Endpoint)
	str("tracing-protocol", &cfg.Tracing.Protocol)
	str("tracing-service-name", &cfg.Tracing.ServiceName)
	boolean("tracing-insecure", &cfg.Tracing.Insecure)
	float("tracing-sample-rate", &cfg.Tracing.SampleRate)
	boolean("tracing-propagate", &cfg.Tracing.Propagate)
	if err != nil {
		return err
	}

	if fs.Changed("vocabulary-file") {
		cfg.Vocabulary = nil
	}

	if fs.Changed("timeout") {
		val, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = val
	}
	if fs.Changed("delay-min") {
		val, err := fs.GetDuration("delay-min")
		if err != nil {
			return err
		}
		cfg.DelayMin = val
	}
	if fs.Changed("delay-max") {
		val, err := fs.GetDuration("delay-max")
		if err != nil {
			return err
		}
		cfg.DelayMax = val
	}
	if fs.Changed("palette") {
		val, err := fs.GetString("palette")
		if err != nil {
			return err
		}
		cfg.Palette = palette.Kind(strings.ToLower(strings.TrimSpace(val)))
	}
	if fs.Changed("placement") {
		val, err := fs.GetString("placement")
		if err != nil {
			return err
		}
		cfg.Placement = placement.Kind(strings.ToLower(strings.TrimSpace(val)))
	}
	if fs.Changed("seed") {
		val, err := fs.GetInt64("seed")
		if err != nil {
			return err
		}
		cfg.Seed = val
	}
	if fs.Changed("threshold") {
		val, err := fs.GetStringSlice("threshold")
		if err != nil {
			return err
		}
		cfg.Thresholds = val
	}

	return nil
}
