package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JoelWiebe/ai-pdf2docx/internal/config"
	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
	"github.com/JoelWiebe/ai-pdf2docx/internal/report"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ai-pdf2docx",
		Short:         "AI PDF to DOCX conversion tool",
		Long:          "Convert PDFs to structured JSON with Gemini, then render the JSON as DOCX documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "config file (default: ./ai-pdf2docx.yaml or ~/.config/ai-pdf2docx/ai-pdf2docx.yaml)")
	root.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level: debug|info|warn|error")
	root.PersistentFlags().String("log-format", config.DefaultLogFormat, "log format: text|json")

	root.AddCommand(pdf2jsonCmd(), json2docxCmd())
	return root
}

// setup resolves the settings for cmd and builds its logger.
func setup(cmd *cobra.Command) (*config.Settings, logging.Logger, error) {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	s, err := config.Load(cmd.Flags(), file)
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewLogrusAdapter(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
	if s.ConfigFile != "" {
		log.Debug("Loaded config file", logging.F(logging.FieldDetail, s.ConfigFile))
	}
	return s, log, nil
}

// finish writes the optional report and turns per-file failures into the
// command's error.
func finish(s *config.Settings, rep report.Report, runErr error, log logging.Logger) error {
	if s.Report != "" {
		if err := rep.WriteFile(s.Report); err != nil {
			log.WithError(err).Error("Failed to write report")
			if runErr == nil {
				runErr = err
			}
		} else {
			log.Info("Report written", logging.F(logging.FieldOutputFile, s.Report))
		}
	}
	if runErr != nil {
		return runErr
	}
	return rep.Err()
}
