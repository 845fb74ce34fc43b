package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JoelWiebe/ai-pdf2docx/internal/ai"
	"github.com/JoelWiebe/ai-pdf2docx/internal/config"
	"github.com/JoelWiebe/ai-pdf2docx/internal/convert"
	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

func pdf2jsonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf2json <input_pdf_directory> <output_json_directory>",
		Short: "Convert PDFs to structured JSON using Gemini",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, log, err := setup(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var analyzer ai.Analyzer
			if !s.DryRun {
				a, closeFn, err := newAnalyzer(ctx, s, log)
				if err != nil {
					return err
				}
				defer closeFn()
				analyzer = a
			}

			rep, err := convert.PDFToJSON(ctx, convert.PDFToJSONConfig{
				InputDir:  args[0],
				OutputDir: args[1],
				Overwrite: s.Overwrite,
				Delay:     time.Duration(s.Delay) * time.Second,
				DryRun:    s.DryRun,
				Analyzer:  analyzer,
				Inspector: newInspector(s, log),
				Logger:    log,
			})
			return finish(s, rep, err, log)
		},
	}

	f := cmd.Flags()
	f.String("project_id", "", "Google Cloud project ID (required for the vertex backend)")
	f.String("location", config.DefaultLocation, "Google Cloud location")
	f.String("model", config.DefaultModel, "Gemini model name")
	f.Int("delay", 0, "seconds to wait after each API call")
	f.Bool("overwrite", false, "overwrite existing JSON files")
	f.String("backend", config.DefaultBackend, "AI backend: vertex|genai")
	f.String("api_key", "", "Gemini API key for the genai backend (default: $GOOGLE_API_KEY)")
	f.String("credentials", "", "service account JSON file for the vertex backend (default: application default credentials)")
	f.Int("retries", config.DefaultRetries, "retries on quota or unavailable errors")
	f.Bool("strict-pdf", false, "validate PDFs with pdfcpu's strict mode")
	f.Bool("skip-preflight", false, "send PDFs to the model without validating them first")
	f.Bool("dry-run", false, "list the files that would be converted without calling the model")
	f.String("report", "", "write a YAML run report to this file")
	return cmd
}

func newInspector(s *config.Settings, log logging.Logger) convert.Inspector {
	if s.SkipPreflight {
		log.Info("PDF preflight disabled")
		return convert.StatInspector{}
	}
	return convert.PDFInspector{Strict: s.StrictPDF}
}

// newAnalyzer builds the configured backend. The returned func releases it.
func newAnalyzer(ctx context.Context, s *config.Settings, log logging.Logger) (ai.Analyzer, func(), error) {
	switch s.Backend {
	case config.BackendGenAI:
		if s.APIKey == "" && s.ProjectID == "" {
			return nil, nil, errors.New("the genai backend needs --api_key or --project_id")
		}
		log.Info("Initializing Gen AI client",
			logging.F(logging.FieldBackend, s.Backend),
			logging.F(logging.FieldModel, s.Model))
		g, err := ai.NewGenAI(ctx, ai.GenAIConfig{
			APIKey:    s.APIKey,
			ProjectID: s.ProjectID,
			Location:  s.Location,
			Model:     s.Model,
			Retries:   s.Retries,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return g, func() {}, nil
	default:
		if s.ProjectID == "" {
			return nil, nil, errors.New("--project_id is required for the vertex backend")
		}
		log.Info("Initializing Vertex AI",
			logging.F(logging.FieldProject, s.ProjectID),
			logging.F(logging.FieldLocation, s.Location),
			logging.F(logging.FieldModel, s.Model))
		v, err := ai.NewVertex(ctx, ai.VertexConfig{
			ProjectID:       s.ProjectID,
			Location:        s.Location,
			Model:           s.Model,
			CredentialsFile: s.CredentialsFile,
			Retries:         s.Retries,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize Vertex AI: %w", err)
		}
		return v, func() {
			if err := v.Close(); err != nil {
				log.WithError(err).Warn("Failed to close Vertex AI client")
			}
		}, nil
	}
}
