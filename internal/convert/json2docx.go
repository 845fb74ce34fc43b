package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JoelWiebe/ai-pdf2docx/internal/docx"
	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
	"github.com/JoelWiebe/ai-pdf2docx/internal/report"
)

// JSONToDocx renders every structured JSON file in cfg.InputDir into a DOCX
// in cfg.OutputDir, up to cfg.Workers files at a time.
func JSONToDocx(ctx context.Context, cfg JSONToDocxConfig) (report.Report, error) {
	log := loggerOr(cfg.Logger)
	rec := report.NewRecorder("json2docx", cfg.InputDir, cfg.OutputDir)

	b := batch{
		inputDir:  cfg.InputDir,
		outputDir: cfg.OutputDir,
		inExt:     ".json",
		outExt:    ".docx",
		overwrite: cfg.Overwrite,
		dryRun:    cfg.DryRun,
	}
	jobs, err := b.plan(log, rec)
	if err != nil {
		return rec.Finish(), err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			flog := log.WithFields(logging.F(logging.FieldInputFile, j.Input), logging.F(logging.FieldOutputFile, j.Output))
			if cfg.DryRun {
				flog.Info("Would render DOCX")
				rec.Add(report.File{Input: j.Input, Output: j.Output, Status: report.StatusPlanned})
				return nil
			}
			rec.Add(jsonToDocx(j, flog))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rec.Finish(), err
	}
	if err := ctx.Err(); err != nil {
		return rec.Finish(), err
	}

	rep := rec.Finish()
	summarize(log, rep)
	return rep, nil
}

func jsonToDocx(j job, log logging.Logger) report.File {
	res := report.File{Input: j.Input, Output: j.Output}
	fail := func(err error) report.File {
		log.WithError(err).Error("Failed to render DOCX")
		res.Status = report.StatusFailed
		res.Error = err.Error()
		return res
	}

	log.Info("Processing JSON")
	data, err := os.ReadFile(j.Input)
	if err != nil {
		return fail(&FileError{Path: j.Input, Op: "read", Err: err})
	}
	if strings.TrimSpace(string(data)) == "" {
		log.Info("Skipping empty JSON file")
		res.Status = report.StatusSkipped
		res.Detail = "empty input"
		return res
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return fail(&FileError{Path: j.Input, Op: "parse", Err: err})
	}

	d, err := Render(doc, log)
	if err != nil {
		return fail(&FileError{Path: j.Input, Op: "render", Err: err})
	}
	d.Title = stem(filepath.Base(j.Input))
	if err := d.Save(j.Output); err != nil {
		return fail(&FileError{Path: j.Output, Op: "save", Err: err})
	}

	log.Info("Created DOCX", logging.F(logging.FieldElements, len(doc.Elements)))
	res.Status = report.StatusConverted
	res.Detail = fmt.Sprintf("%d elements", len(doc.Elements))
	return res
}

// Render lays doc out as a Word document: headings use the Heading styles,
// paragraphs are joined onto one line, Markdown tables become grid tables
// with a bold header row, and unknown elements are kept as labelled text.
func Render(doc Document, log logging.Logger) (*docx.Document, error) {
	d, err := docx.New()
	if err != nil {
		return nil, err
	}
	for _, el := range doc.Elements {
		switch el.Type {
		case Heading1, Heading2, Heading3:
			if err := d.AddHeading(el.Content, headingLevel[el.Type]); err != nil {
				return nil, err
			}
		case Paragraph:
			if text := joinLines(el.Content); text != "" {
				d.AddParagraph(text, docx.StyleNormal)
			}
		case TableMarkdown:
			if strings.TrimSpace(el.Content) == "" {
				continue
			}
			rows := ParseMarkdownTable(el.Content)
			if len(rows) == 0 || len(rows[0]) == 0 {
				continue
			}
			if err := d.AddTable(rows, docx.TableGrid, true); err != nil {
				log.WithError(err).Warn("Table could not be rendered, keeping raw Markdown")
				d.AddParagraph("[Fallback: Error rendering table. Raw Markdown:]\n"+el.Content, docx.StyleNormal)
			}
		default:
			if el.Content != "" {
				d.AddParagraph(fmt.Sprintf("[Unknown type: %s] %s", el.Type, el.Content), docx.StyleNormal)
			}
		}
	}
	return d, nil
}

var headingLevel = map[ElementType]uint{Heading1: 1, Heading2: 2, Heading3: 3}

// joinLines turns visual line breaks into spaces.
func joinLines(s string) string {
	return strings.TrimSpace(strings.Join(splitLines(s), " "))
}

// splitLines splits on \n, \r\n and \r, dropping a trailing empty line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
