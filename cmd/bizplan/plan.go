package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/internal/config"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/templates"
)

type planCmd struct {
	cfg       *config.Config
	doc       docFlags
	outline   string
	business  string
	keyPoints []string
}

func newPlanCmd(cfg *config.Config) *cobra.Command {
	c := &planCmd{cfg: cfg}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Write a business-plan DOCX from a template, or a markdown outline",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.doc.register(cmd)
	cmd.Flags().StringVar(&c.outline, "outline", "", "Print a markdown outline for an audience (government, vc, bank) instead")
	cmd.Flags().StringVar(&c.business, "business", "", "Business field used by --outline")
	cmd.Flags().StringSliceVar(&c.keyPoints, "point", nil, "Key point for --outline (repeatable)")
	return cmd
}

func (c *planCmd) run(cmd *cobra.Command, args []string) error {
	if c.outline != "" {
		if c.doc.company.Name == "" || c.business == "" {
			return errors.New("--outline needs --company and --business")
		}
		md := templates.Outline(templates.Audience(c.outline), c.doc.company.Name, c.business, c.keyPoints)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), md)
		return err
	}

	tpl, err := c.doc.template()
	if err != nil {
		return err
	}
	out := c.doc.output(c.cfg, tpl)
	gen, err := c.doc.generator(c.cfg, true).GenerateFile(out, tpl)
	if err != nil {
		return fmt.Errorf("document generation failed: %w", err)
	}
	log.Info().Str("file", gen.FilePath).Str("title", tpl.Title).Msg("plan generated")
	return nil
}
