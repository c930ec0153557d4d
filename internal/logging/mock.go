package logging

import "fmt"

// MockLogger records entries in memory for assertions. Child loggers created
// through WithError/WithField(s) record into the same entry list.
type MockLogger struct {
	sink   *[]LogEntry
	err    error
	fields []Field
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &[]LogEntry{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	if m.sink == nil {
		m.sink = &[]LogEntry{}
	}
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	*m.sink = append(*m.sink, LogEntry{Level: level, Message: msg, Fields: all, Error: m.err})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal records a FATAL entry; the mock never exits.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

// Fatalf records a formatted FATAL entry; the mock never exits.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record("FATAL", fmt.Sprintf(msg, args...), nil)
}

func (m *MockLogger) WithError(err error) Logger {
	if m.sink == nil {
		m.sink = &[]LogEntry{}
	}
	return &MockLogger{sink: m.sink, err: err, fields: m.fields}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	if m.sink == nil {
		m.sink = &[]LogEntry{}
	}
	merged := make([]Field, 0, len(m.fields)+len(fields))
	merged = append(merged, m.fields...)
	merged = append(merged, fields...)
	return &MockLogger{sink: m.sink, err: m.err, fields: merged}
}

// Entries returns every captured entry, including those of child loggers.
func (m *MockLogger) Entries() []LogEntry {
	if m.sink == nil {
		return nil
	}
	return *m.sink
}

// EntriesByLevel filters captured entries by level ("DEBUG", "INFO", ...).
func (m *MockLogger) EntriesByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// HasEntry reports whether an entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, e := range m.Entries() {
		if e.Level == level && e.Message == message {
			return true
		}
	}
	return false
}

// Clear drops all captured entries.
func (m *MockLogger) Clear() {
	if m.sink != nil {
		*m.sink = (*m.sink)[:0]
	}
}

// FieldValue returns the value of key on entry e, if present.
func (e LogEntry) FieldValue(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}
