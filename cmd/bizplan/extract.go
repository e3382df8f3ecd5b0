package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/pkg/bizplan"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/output"
)

type extractCmd struct {
	flags      extractFlags
	outputPath string
	format     string
	pretty     bool
	sheetsDir  string
}

func newExtractCmd() *cobra.Command {
	c := &extractCmd{}
	cmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract a canonical table as JSON, CSV or HTML",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	c.flags.register(cmd)
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&c.format, "format", "json", "Output format: json, csv, html")
	cmd.Flags().BoolVar(&c.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&c.sheetsDir, "sheets-dir", "", "Extract every sheet into this directory, one file per sheet")
	return cmd
}

func (c *extractCmd) run(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(c.format)
	if err != nil {
		return err
	}
	opts := c.flags.options(cmd)

	if c.sheetsDir != "" {
		return c.writeSheetFiles(args[0], opts, format)
	}

	res, err := bizplan.Extract(args[0], opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	for _, w := range res.Warnings {
		log.Warn().Str("sheet", res.Table.Metadata.SheetName).Msg(w)
	}

	var w io.Writer = cmd.OutOrStdout()
	if c.outputPath != "" {
		f, err := os.Create(c.outputPath)
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return c.write(w, res, format)
}

func (c *extractCmd) write(w io.Writer, res *bizplan.Result, format output.Format) error {
	if format == output.FormatJSON {
		return output.WriteJSON(w, res, c.pretty)
	}
	return output.Write(w, res.Table, format, c.pretty)
}

func (c *extractCmd) writeSheetFiles(path string, opts bizplan.Options, format output.Format) error {
	wb, err := bizplan.Open(path)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if err := os.MkdirAll(c.sheetsDir, 0o755); err != nil {
		return err
	}

	failed := 0
	for _, sr := range bizplan.ExtractSheets(wb, opts) {
		if sr.Err != nil {
			failed++
			continue
		}
		name := filepath.Join(c.sheetsDir, sr.SheetName+"."+string(format))
		if err := c.writeFile(name, sr.Result, format); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
		log.Info().Str("sheet", sr.SheetName).Str("file", name).Msg("sheet extracted")
	}
	if failed > 0 {
		log.Warn().Int("failed", failed).Msg("some sheets could not be extracted")
	}
	return nil
}

func (c *extractCmd) writeFile(name string, res *bizplan.Result, format output.Format) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := c.write(f, res, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
