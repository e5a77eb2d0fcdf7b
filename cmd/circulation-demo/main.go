// Command circulation-demo runs a scenario against an event-sourced library desk and
// writes the reports to stdout. Structured logs go to stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/library-circulation-go/config"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/lending/desk"
	"github.com/AntonStoeckl/library-circulation-go/report"
	"github.com/AntonStoeckl/library-circulation-go/scenario"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "circulation-demo: %v\n", err)
		}

		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	policy, err := config.LoadPolicyFile(cfg.PolicyPath)
	if err != nil {
		return err
	}

	script := scenario.DemoScript()
	if cfg.ScenarioPath != "" {
		if script, err = scenario.LoadScriptFile(cfg.ScenarioPath); err != nil {
			return err
		}
	}

	observability, err := config.NewObservabilityConfig(cfg.ObservabilityEnabled, logger)
	if err != nil {
		return fmt.Errorf("failed to set up observability: %w", err)
	}
	defer func() {
		if shutdownErr := observability.Shutdown(); shutdownErr != nil {
			logger.Warn("observability shutdown failed", "error", shutdownErr.Error())
		}
	}()

	j, err := journal.NewJournal(observability.JournalOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}

	d, err := desk.NewDesk(j, policy, observability.DeskOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create desk: %w", err)
	}

	writer, err := report.NewWriter(stdout, policy, report.WithFormat(cfg.Format))
	if err != nil {
		return err
	}

	logger.Info("demo configured",
		"scenario", script.Name,
		"steps", len(script.Steps),
		"correlation_id", d.CorrelationID().String(),
		"observability_enabled", observability.Enabled(),
	)

	trace, err := scenario.NewRunner(d, scenario.WithReporter(writer), scenario.WithLogger(logger)).Run(ctx, script)
	if err != nil {
		return err
	}

	logger.Info("demo finished",
		"scenario", script.Name,
		"results", len(trace.Results),
		"day", trace.Final.Day(),
		"journal_events", j.Len(),
	)

	if observability.Enabled() {
		rm, collectErr := observability.CollectMetrics(ctx)
		if collectErr != nil {
			logger.Warn("metric collection failed", "error", collectErr.Error())
		} else {
			logger.Info("metrics collected", "instruments", config.MetricNames(rm))
		}
	}

	return nil
}
