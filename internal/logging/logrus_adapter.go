package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter implements Logger on top of a logrus entry.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// NewLogrusAdapter builds a logrus-backed Logger. level is any logrus level
// name; format is "json" or "text". An unknown level falls back to info.
func NewLogrusAdapter(level, format string, out io.Writer) Logger {
	l := logrus.New()
	if out != nil {
		l.SetOutput(out)
	}

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		l.Warnf("Invalid log level '%s', using 'info'", level)
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &LogrusAdapter{entry: logrus.NewEntry(l)}
}

func (a *LogrusAdapter) Debug(msg string, fields ...Field) {
	a.entry.WithFields(toLogrus(fields)).Debug(msg)
}

func (a *LogrusAdapter) Info(msg string, fields ...Field) {
	a.entry.WithFields(toLogrus(fields)).Info(msg)
}

func (a *LogrusAdapter) Warn(msg string, fields ...Field) {
	a.entry.WithFields(toLogrus(fields)).Warn(msg)
}

func (a *LogrusAdapter) Error(msg string, fields ...Field) {
	a.entry.WithFields(toLogrus(fields)).Error(msg)
}

func (a *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{entry: a.entry.WithError(err)}
}

func (a *LogrusAdapter) WithFields(fields ...Field) Logger {
	return &LogrusAdapter{entry: a.entry.WithFields(toLogrus(fields))}
}

func toLogrus(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
