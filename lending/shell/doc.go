// Package shell is the imperative shell around the circulation engine: it maps domain events to
// journal events and back, carries event metadata and snapshot data, retries on concurrency
// conflicts and provides the observability helpers shared by all command handlers.
package shell
