// Package logging is the structured logging surface shared by the converters.
// Callers depend on the Logger interface; the binary wires it to logrus.
package logging

// Logger is a leveled, structured logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err.
	WithError(err error) Logger
	// WithFields returns a child logger carrying fields.
	WithFields(fields ...Field) Logger
}

// Field is a key/value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Field names used across the converters.
const (
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
	FieldInputDir     = "input_dir"
	FieldOutputDir    = "output_dir"
	FieldModel        = "model"
	FieldProject      = "project_id"
	FieldLocation     = "location"
	FieldBackend      = "backend"
	FieldPages        = "pages"
	FieldBytes        = "bytes"
	FieldElements     = "elements"
	FieldFinishReason = "finish_reason"
	FieldSafety       = "safety_ratings"
	FieldAttempt      = "attempt"
	FieldDelay        = "delay"
	FieldCount        = "count"
	FieldProcessed    = "processed"
	FieldSkipped      = "skipped"
	FieldFailed       = "failed"
	FieldDuration     = "duration_ms"
	FieldDetail       = "detail"
)
