package helper

import (
	"context"
	"log/slog"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
type LogHandlerSpy struct {
	records []slog.Record
	mu      sync.Mutex
}

func NewLogHandlerSpy() *LogHandlerSpy {
	return &LogHandlerSpy{records: make([]slog.Record, 0)}
}

// Handle implements slog.Handler.
func (s *LogHandlerSpy) Handle(_ context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record.Clone())

	return nil
}

// Enabled implements slog.Handler, every level is captured.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler.
func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

// WithGroup implements slog.Handler.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// Logger returns a *slog.Logger writing into the spy.
func (s *LogHandlerSpy) Logger() *slog.Logger {
	return slog.New(s)
}

func (s *LogHandlerSpy) GetRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// GetRecords returns a copy of all captured log records.
func (s *LogHandlerSpy) GetRecords() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]slog.Record, len(s.records))
	copy(records, s.records)

	return records
}

func (s *LogHandlerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

// SpyLogRecordMatcher provides a fluent interface for checking log record attributes.
type SpyLogRecordMatcher struct {
	record *slog.Record
	found  bool
}

// HasLog starts a fluent chain for the first record with the given level and message.
func (s *LogHandlerSpy) HasLog(level slog.Level, message string) *SpyLogRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].Level == level && s.records[i].Message == message {
			record := s.records[i]

			return &SpyLogRecordMatcher{record: &record, found: true}
		}
	}

	return &SpyLogRecordMatcher{}
}

func (s *LogHandlerSpy) HasDebugLog(message string) *SpyLogRecordMatcher {
	return s.HasLog(slog.LevelDebug, message)
}

func (s *LogHandlerSpy) HasInfoLog(message string) *SpyLogRecordMatcher {
	return s.HasLog(slog.LevelInfo, message)
}

func (s *LogHandlerSpy) HasWarnLog(message string) *SpyLogRecordMatcher {
	return s.HasLog(slog.LevelWarn, message)
}

func (s *LogHandlerSpy) HasErrorLog(message string) *SpyLogRecordMatcher {
	return s.HasLog(slog.LevelError, message)
}

// WithAttr checks that the record carries the attribute key.
func (m *SpyLogRecordMatcher) WithAttr(key string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	_, m.found = m.attr(key)

	return m
}

// WithAttrValue checks that the record carries the attribute with the given value in its string form.
func (m *SpyLogRecordMatcher) WithAttrValue(key, value string) *SpyLogRecordMatcher {
	if !m.found {
		return m
	}

	attr, ok := m.attr(key)
	m.found = ok && attr.Value.String() == value

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *SpyLogRecordMatcher) Assert() bool {
	return m.found
}

func (m *SpyLogRecordMatcher) attr(key string) (slog.Attr, bool) {
	var found slog.Attr
	ok := false

	m.record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			found, ok = attr, true
			return false
		}

		return true
	})

	return found, ok
}
