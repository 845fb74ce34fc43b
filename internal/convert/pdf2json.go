package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JoelWiebe/ai-pdf2docx/internal/ai"
	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
	"github.com/JoelWiebe/ai-pdf2docx/internal/report"
)

// PDFToJSON sends every PDF in cfg.InputDir to the analyzer and writes the
// structured JSON into cfg.OutputDir. Files are handled one at a time, with
// cfg.Delay between model calls. A file that fails is recorded and the batch
// continues; only a bad input directory or a cancelled context stop it.
func PDFToJSON(ctx context.Context, cfg PDFToJSONConfig) (report.Report, error) {
	log := loggerOr(cfg.Logger)
	rec := report.NewRecorder("pdf2json", cfg.InputDir, cfg.OutputDir)
	if cfg.Analyzer == nil && !cfg.DryRun {
		return rec.Finish(), errors.New("pdf2json: no analyzer configured")
	}
	inspector := cfg.Inspector
	if inspector == nil {
		inspector = PDFInspector{}
	}

	b := batch{
		inputDir:  cfg.InputDir,
		outputDir: cfg.OutputDir,
		inExt:     ".pdf",
		outExt:    ".json",
		overwrite: cfg.Overwrite,
		dryRun:    cfg.DryRun,
	}
	jobs, err := b.plan(log, rec)
	if err != nil {
		return rec.Finish(), err
	}

	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			return rec.Finish(), err
		}
		flog := log.WithFields(logging.F(logging.FieldInputFile, j.Input), logging.F(logging.FieldOutputFile, j.Output))

		if cfg.DryRun {
			flog.Info("Would convert PDF")
			rec.Add(report.File{Input: j.Input, Output: j.Output, Status: report.StatusPlanned})
			continue
		}

		flog.Info("Processing PDF")
		called, detail, err := pdfToJSON(ctx, cfg.Analyzer, inspector, j, flog)
		if err != nil {
			if ctx.Err() != nil {
				return rec.Finish(), ctx.Err()
			}
			flog.WithError(err).Error("Failed to get structured data, no JSON written")
			rec.Add(report.File{Input: j.Input, Output: j.Output, Status: report.StatusFailed, Error: err.Error()})
		} else {
			flog.Info("Saved structured JSON", logging.F(logging.FieldDetail, detail))
			rec.Add(report.File{Input: j.Input, Output: j.Output, Status: report.StatusConverted, Detail: detail})
		}

		if called && cfg.Delay > 0 && i < len(jobs)-1 {
			flog.Debug("Waiting before next model call", logging.F(logging.FieldDelay, cfg.Delay.String()))
			if err := sleep(ctx, cfg.Delay); err != nil {
				return rec.Finish(), err
			}
		}
	}

	rep := rec.Finish()
	summarize(log, rep)
	return rep, nil
}

// pdfToJSON converts one file. called reports whether the model was reached,
// which is what the inter-call delay paces.
func pdfToJSON(ctx context.Context, analyzer ai.Analyzer, inspector Inspector, j job, log logging.Logger) (called bool, detail string, err error) {
	info, err := inspector.Inspect(j.Input)
	if err != nil {
		return false, "", &FileError{Path: j.Input, Op: "inspect", Err: err}
	}
	log.Debug("PDF passed preflight", logging.F(logging.FieldPages, info.Pages), logging.F(logging.FieldBytes, info.Size))

	data, err := os.ReadFile(j.Input)
	if err != nil {
		return false, "", &FileError{Path: j.Input, Op: "read", Err: err}
	}

	raw, err := analyzer.Analyze(ctx, ai.Source{Name: filepath.Base(j.Input), Data: data})
	if err != nil {
		return true, "", &FileError{Path: j.Input, Op: "analyze", Err: err}
	}

	doc, err := ParseDocument([]byte(raw))
	if err != nil {
		return true, "", &FileError{Path: j.Input, Op: "validate", Err: err}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, []byte(raw), "", "  "); err != nil {
		return true, "", &FileError{Path: j.Input, Op: "format", Err: err}
	}
	out.WriteByte('\n')
	if err := writeFileAtomic(j.Output, out.Bytes()); err != nil {
		return true, "", &FileError{Path: j.Output, Op: "write", Err: err}
	}
	detail = fmt.Sprintf("%d elements", len(doc.Elements))
	if info.Pages > 0 {
		detail += fmt.Sprintf(" from %d pages", info.Pages)
	}
	return true, detail, nil
}
