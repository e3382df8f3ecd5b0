package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/internal/config"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/imaging"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/output"
)

type imagesCmd struct {
	cfg    *config.Config
	opts   imaging.Options
	format string
	outDir string
	pretty bool
}

func newImagesCmd(cfg *config.Config) *cobra.Command {
	c := &imagesCmd{cfg: cfg, opts: imaging.DocumentOptions()}
	cmd := &cobra.Command{
		Use:   "images [image...]",
		Short: "Shrink and re-encode images for documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.run,
	}
	fs := cmd.Flags()
	fs.IntVar(&c.opts.MaxWidth, "max-width", imaging.DefaultMaxWidth, "Maximum width in pixels")
	fs.IntVar(&c.opts.MaxHeight, "max-height", imaging.DefaultMaxHeight, "Maximum height in pixels")
	fs.IntVar(&c.opts.Quality, "quality", imaging.DefaultQuality, "JPEG quality (1-100)")
	fs.Int64Var(&c.opts.MaxBytes, "max-bytes", imaging.DefaultMaxBytes, "Lower JPEG quality until the file fits (0 disables)")
	fs.StringVar(&c.format, "format", "", "Output format: jpeg or png (default: keep PNG, else JPEG)")
	fs.StringVar(&c.outDir, "out-dir", "", "Output directory (default: BIZPLAN_OUTPUT_DIR)")
	fs.BoolVar(&c.pretty, "pretty", false, "Pretty-print the JSON report")
	return cmd
}

func (c *imagesCmd) run(cmd *cobra.Command, args []string) error {
	c.opts.Format = imaging.Format(strings.ToLower(c.format))
	if c.opts.Format == "jpg" {
		c.opts.Format = imaging.JPEG
	}
	dir := c.outDir
	if dir == "" {
		dir = c.cfg.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	batch := imaging.OptimizeBatch(args, c.opts)
	for _, res := range batch.Processed {
		name := filepath.Join(dir, optimizedName(res))
		if err := os.WriteFile(name, res.Data, 0o644); err != nil {
			return err
		}
		res.Path = name
		log.Info().
			Str("file", name).
			Str("before", imaging.FormatFileSize(res.SizeBefore)).
			Str("after", imaging.FormatFileSize(res.SizeAfter)).
			Msg("image optimized")
	}
	for _, f := range batch.Failed {
		log.Warn().Str("path", f.Path).Msg(f.Error)
	}
	if err := output.WriteJSON(cmd.OutOrStdout(), batch, c.pretty); err != nil {
		return err
	}
	if len(batch.Processed) == 0 {
		return fmt.Errorf("no image could be optimized (%d failed)", len(batch.Failed))
	}
	return nil
}

func optimizedName(res *imaging.Result) string {
	ext := ".jpg"
	if res.Metadata.Format == imaging.PNG {
		ext = ".png"
	}
	stem := strings.TrimSuffix(filepath.Base(res.Path), filepath.Ext(res.Path))
	return stem + "_optimized" + ext
}
