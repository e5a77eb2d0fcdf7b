package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/AntonStoeckl/library-circulation-go/report"
)

// Config holds the demo configuration parameters.
type Config struct {
	PolicyPath           string
	ScenarioPath         string
	Format               report.Format
	LogLevel             slog.Level
	ObservabilityEnabled bool
}

// parseFlags parses the command line into a Config.
func parseFlags(args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("circulation-demo", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		policyPath    = fs.String("policy", "", "YAML policy file (default: the reference policy)")
		scenarioPath  = fs.String("scenario", "", "YAML scenario file (default: the demo script)")
		format        = fs.String("format", string(report.FormatText), "Report format: text or json")
		logLevel      = fs.String("log-level", "warn", "Log level: debug, info, warn or error")
		observability = fs.Bool("observability-enabled", false, "Enable OpenTelemetry observability")
	)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	reportFormat, err := report.ParseFormat(*format)
	if err != nil {
		return Config{}, err
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		return Config{}, err
	}

	return Config{
		PolicyPath:           *policyPath,
		ScenarioPath:         *scenarioPath,
		Format:               reportFormat,
		LogLevel:             level,
		ObservabilityEnabled: *observability,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return level, nil
}
