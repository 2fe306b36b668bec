package logging

import (
	"fmt"
	"sync"
)

// MockLogger captures log entries for verification in tests.
type MockLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// LogEntry is a single captured log entry.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger creates an empty mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, err error, fields []Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  fields,
		Error:   err,
	})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, nil, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, nil, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, nil, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, nil, fields) }

// Fatal records the entry without exiting, so tests can assert on it.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, nil, fields) }

func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record("FATAL", fmt.Sprintf(msg, args...), nil, nil)
}

func (m *MockLogger) WithError(err error) Logger {
	return &mockEntry{sink: m, err: err}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &mockEntry{sink: m, fields: []Field{{Key: key, Value: value}}}
}

// HasEntry checks whether an entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.Entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// mockEntry accumulates contextual fields; its log calls land in the parent
// MockLogger's entry list.
type mockEntry struct {
	sink   *MockLogger
	err    error
	fields []Field
}

func (e *mockEntry) log(level, msg string, fields []Field) {
	all := make([]Field, 0, len(e.fields)+len(fields))
	all = append(all, e.fields...)
	all = append(all, fields...)
	e.sink.record(level, msg, e.err, all)
}

func (e *mockEntry) Debug(msg string, fields ...Field) { e.log("DEBUG", msg, fields) }
func (e *mockEntry) Info(msg string, fields ...Field)  { e.log("INFO", msg, fields) }
func (e *mockEntry) Warn(msg string, fields ...Field)  { e.log("WARN", msg, fields) }
func (e *mockEntry) Error(msg string, fields ...Field) { e.log("ERROR", msg, fields) }
func (e *mockEntry) Fatal(msg string, fields ...Field) { e.log("FATAL", msg, fields) }

func (e *mockEntry) Fatalf(msg string, args ...interface{}) {
	e.log("FATAL", fmt.Sprintf(msg, args...), nil)
}

func (e *mockEntry) WithError(err error) Logger {
	return &mockEntry{sink: e.sink, err: err, fields: e.fields}
}

func (e *mockEntry) WithField(key string, value interface{}) Logger {
	fields := make([]Field, 0, len(e.fields)+1)
	fields = append(fields, e.fields...)
	fields = append(fields, Field{Key: key, Value: value})
	return &mockEntry{sink: e.sink, err: e.err, fields: fields}
}
