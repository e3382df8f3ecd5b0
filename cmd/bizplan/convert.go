package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/internal/config"
	"github.com/ukaji3/bizplan-go/pkg/bizplan"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/docx"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/templates"
)

// docFlags are shared by the commands that write documents.
type docFlags struct {
	outputPath   string
	templateKind string
	templateFile string
	company      models.CompanyInfo
	toc          bool
	footer       string
}

func (f *docFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.outputPath, "output", "o", "", "Output DOCX path (default: 사업계획서_<company>.docx in BIZPLAN_OUTPUT_DIR)")
	fs.StringVar(&f.templateKind, "template", string(templates.Basic), "Built-in template: basic, government, vc")
	fs.StringVar(&f.templateFile, "template-file", "", "YAML template file (overrides --template)")
	fs.StringVar(&f.company.Name, "company", "", "Company name")
	fs.StringVar(&f.company.CEO, "ceo", "", "CEO name")
	fs.StringVar(&f.company.Address, "address", "", "Company address")
	fs.StringVar(&f.company.Phone, "phone", "", "Company phone")
	fs.StringVar(&f.company.Email, "email", "", "Company e-mail")
	fs.StringVar(&f.company.Website, "website", "", "Company website")
	fs.BoolVar(&f.toc, "toc", true, "Include a table of contents")
	fs.StringVar(&f.footer, "footer", "", "Footer text")
}

// template loads the YAML template when given, otherwise builds the
// built-in one. Company flags override the company of a YAML template.
func (f *docFlags) template() (*models.Template, error) {
	if f.templateFile != "" {
		tpl, err := templates.LoadFile(f.templateFile)
		if err != nil {
			return nil, err
		}
		if f.company.Name != "" {
			tpl.CompanyInfo = f.company
		}
		return tpl, nil
	}
	kind, err := templates.ParseKind(f.templateKind)
	if err != nil {
		return nil, err
	}
	if f.company.Name == "" {
		return nil, fmt.Errorf("--company is required for the %s template", kind)
	}
	return templates.New(kind, f.company)
}

func (f *docFlags) output(cfg *config.Config, tpl *models.Template) string {
	if f.outputPath != "" {
		return f.outputPath
	}
	return cfg.OutputPath(templates.FileName(tpl.CompanyInfo.Name))
}

func (f *docFlags) generator(cfg *config.Config, convertChars bool) *docx.Generator {
	toc := f.toc
	return docx.NewGenerator(nil, docx.Options{
		IncludeTOC:          &toc,
		ConvertSpecialChars: &convertChars,
		FooterText:          f.footer,
		Font:                cfg.Font,
	})
}

type convertCmd struct {
	cfg        *config.Config
	extract    extractFlags
	doc        docFlags
	tableTitle string
	tableOnly  bool
	noImages   bool
}

func newConvertCmd(cfg *config.Config) *cobra.Command {
	c := &convertCmd{cfg: cfg}
	cmd := &cobra.Command{
		Use:   "convert [input.xlsx]",
		Short: "Convert a workbook table into a business-plan DOCX",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	c.extract.register(cmd)
	c.doc.register(cmd)
	cmd.Flags().StringVar(&c.tableTitle, "table-title", "데이터 분석", "Title of the section holding the table")
	cmd.Flags().BoolVar(&c.tableOnly, "table-only", false, "Write a document with only the table")
	cmd.Flags().BoolVar(&c.noImages, "no-images", false, "Do not copy pictures embedded in the sheet")
	return cmd
}

func (c *convertCmd) run(cmd *cobra.Command, args []string) error {
	input := args[0]
	opts := c.extract.options(cmd)

	res, err := bizplan.Extract(input, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	log.Info().
		Str("sheet", res.Table.Metadata.SheetName).
		Str("range", res.Table.Metadata.OriginalRange).
		Int("rows", len(res.Table.Rows)).
		Msg("table extracted")

	var tpl *models.Template
	if c.tableOnly {
		tpl = templates.TableDocument(res.Table)
	} else {
		if tpl, err = c.doc.template(); err != nil {
			return err
		}
		templates.AppendTable(tpl, c.tableTitle, res.Table)
	}

	if !c.noImages {
		imgs, err := bizplan.SheetImages(input, res.Table.Metadata.SheetName)
		if err != nil {
			log.Warn().Err(err).Msg("pictures skipped")
		} else if len(imgs) > 0 {
			last := &tpl.Sections[len(tpl.Sections)-1]
			last.Images = append(last.Images, imgs...)
		}
	}

	out := c.doc.output(c.cfg, tpl)
	gen, err := c.doc.generator(c.cfg, opts.ShouldConvertSpecialChars()).GenerateFile(out, tpl)
	if err != nil {
		return fmt.Errorf("document generation failed: %w", err)
	}
	for _, w := range gen.Warnings {
		log.Warn().Msg(w)
	}
	log.Info().
		Str("file", gen.FilePath).
		Int("tables", gen.TableCount).
		Int("images", gen.ImageCount).
		Dur("elapsed", gen.ProcessingTime).
		Msg("document generated")
	return nil
}
