package convert

import (
	"errors"
	"fmt"
	"time"

	"github.com/JoelWiebe/ai-pdf2docx/internal/ai"
	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

var (
	// ErrInputDir is returned when the input directory is missing or is not a directory.
	ErrInputDir = errors.New("input directory not found")
	// ErrInvalidDocument is returned for JSON that is not a structured document.
	ErrInvalidDocument = errors.New("invalid structured document")
)

// FileError is a failure converting one file. The batch records it and moves on.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// PDFToJSONConfig drives phase one.
type PDFToJSONConfig struct {
	InputDir  string
	OutputDir string
	Overwrite bool
	// Delay is waited between consecutive model calls.
	Delay  time.Duration
	DryRun bool

	Analyzer  ai.Analyzer
	Inspector Inspector // nil means PDFInspector{}
	Logger    logging.Logger
}

// JSONToDocxConfig drives phase two.
type JSONToDocxConfig struct {
	InputDir  string
	OutputDir string
	Overwrite bool
	Workers   int
	DryRun    bool

	Logger logging.Logger
}
