package logging

import "sync"

// Entry is one line captured by MockLogger.
type Entry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// MockLogger records log lines for assertions in tests. Children created with
// WithFields or WithError share the parent's record, so a test can hold the
// root logger and see everything. It is safe for concurrent use.
type MockLogger struct {
	sink   *mockSink
	fields []Field
	err    error
}

type mockSink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMockLogger returns an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{sink: &mockSink{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	m.sink.mu.Lock()
	m.sink.entries = append(m.sink.entries, Entry{Level: level, Message: msg, Fields: all, Error: m.err})
	m.sink.mu.Unlock()
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{sink: m.sink, fields: m.fields, err: err}
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	return &MockLogger{sink: m.sink, fields: all, err: m.err}
}

// Entries returns a copy of everything recorded so far.
func (m *MockLogger) Entries() []Entry {
	m.sink.mu.Lock()
	defer m.sink.mu.Unlock()
	out := make([]Entry, len(m.sink.entries))
	copy(out, m.sink.entries)
	return out
}

// HasEntry reports whether a line with this level and message was recorded.
func (m *MockLogger) HasEntry(level, msg string) bool {
	for _, e := range m.Entries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}

// Count returns how many lines were recorded at level.
func (m *MockLogger) Count(level string) int {
	n := 0
	for _, e := range m.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}
