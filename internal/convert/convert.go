// Package convert runs the two conversion phases over directories: PDFs to
// structured JSON through an ai.Analyzer, and structured JSON to DOCX.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
	"github.com/JoelWiebe/ai-pdf2docx/internal/report"
)

type job struct {
	Input  string
	Output string
}

type batch struct {
	inputDir  string
	outputDir string
	inExt     string
	outExt    string
	overwrite bool
	dryRun    bool
}

// plan lists the inputs with extension inExt, in name order, and pairs each
// with its output path. Inputs whose output already exists are recorded as
// skipped unless overwrite is set.
func (b batch) plan(log logging.Logger, rec *report.Recorder) ([]job, error) {
	st, err := os.Stat(b.inputDir)
	if err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputDir, b.inputDir)
	}

	if !b.dryRun {
		if _, err := os.Stat(b.outputDir); os.IsNotExist(err) {
			if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
			log.Info("Created output directory", logging.F(logging.FieldOutputDir, b.outputDir))
		}
	}

	entries, err := os.ReadDir(b.inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var jobs []job
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), b.inExt) {
			continue
		}
		j := job{
			Input:  filepath.Join(b.inputDir, e.Name()),
			Output: filepath.Join(b.outputDir, stem(e.Name())+b.outExt),
		}
		if _, err := os.Stat(j.Output); err == nil && !b.overwrite {
			log.Info("Skipping, output already exists",
				logging.F(logging.FieldInputFile, j.Input),
				logging.F(logging.FieldOutputFile, j.Output))
			rec.Add(report.File{Input: j.Input, Output: j.Output, Status: report.StatusSkipped, Detail: "output exists"})
			continue
		}
		jobs = append(jobs, j)
	}
	log.Info("Planned conversion batch", logging.F(logging.FieldCount, len(jobs)))
	return jobs, nil
}

// sleep waits d or until ctx is done.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func summarize(log logging.Logger, rep report.Report) {
	log.Info("Processing complete",
		logging.F(logging.FieldProcessed, rep.Converted),
		logging.F(logging.FieldSkipped, rep.Skipped),
		logging.F(logging.FieldFailed, rep.Failed),
		logging.F(logging.FieldDuration, rep.Finished.Sub(rep.Started).Milliseconds()))
}
