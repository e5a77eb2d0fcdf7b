// Package helper provides test doubles shared by the journal, lending and cmd tests:
// a slog.Handler that captures records, spies for the metrics and tracing collectors, and a fixed clock.
package helper
