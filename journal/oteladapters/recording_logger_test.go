package oteladapters_test

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
)

type recordedLog struct {
	ctx    context.Context
	record log.Record
}

// recordingLoggerProvider hands out one recordingLogger for every name.
type recordingLoggerProvider struct {
	embedded.LoggerProvider
	logger *recordingLogger
}

func newRecordingLoggerProvider() *recordingLoggerProvider {
	return &recordingLoggerProvider{logger: &recordingLogger{}}
}

func (p *recordingLoggerProvider) Logger(_ string, _ ...log.LoggerOption) log.Logger {
	return p.logger
}

type recordingLogger struct {
	embedded.Logger
	mu      sync.Mutex
	records []recordedLog
}

func (l *recordingLogger) Emit(ctx context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, recordedLog{ctx: ctx, record: record})
}

func (l *recordingLogger) Enabled(_ context.Context, _ log.EnabledParameters) bool {
	return true
}

func (l *recordingLogger) recorded() []recordedLog {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]recordedLog(nil), l.records...)
}

func attributeValue(record log.Record, key string) (string, bool) {
	var (
		value string
		found bool
	)

	record.WalkAttributes(func(kv log.KeyValue) bool {
		if kv.Key == key {
			value, found = kv.Value.String(), true
			return false
		}

		return true
	})

	return value, found
}
