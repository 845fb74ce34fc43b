package main

import (
	"github.com/spf13/cobra"

	"github.com/JoelWiebe/ai-pdf2docx/internal/convert"
)

func json2docxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json2docx <input_json_directory> <output_docx_directory>",
		Short: "Convert structured JSON files to DOCX",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, log, err := setup(cmd)
			if err != nil {
				return err
			}
			rep, err := convert.JSONToDocx(cmd.Context(), convert.JSONToDocxConfig{
				InputDir:  args[0],
				OutputDir: args[1],
				Overwrite: s.Overwrite,
				Workers:   s.Workers,
				DryRun:    s.DryRun,
				Logger:    log,
			})
			return finish(s, rep, err, log)
		},
	}

	f := cmd.Flags()
	f.Bool("overwrite", false, "overwrite existing DOCX files")
	f.Int("workers", 0, "concurrent renderers (default: number of CPUs)")
	f.Bool("dry-run", false, "list the files that would be rendered without writing them")
	f.String("report", "", "write a YAML run report to this file")
	return cmd
}
