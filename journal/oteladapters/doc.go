// Package oteladapters implements the journal observability interfaces on top of OpenTelemetry.
//
//   - SlogBridgeLogger and OTelLogger implement journal.ContextualLogger
//   - MetricsCollector implements journal.ContextualMetricsCollector
//   - TracingCollector implements journal.TracingCollector
//
// The same adapters serve the lending shell, whose observable command wrapper takes the journal interfaces.
package oteladapters
