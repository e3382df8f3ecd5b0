// Package docx assembles business-plan documents in Office Open XML
// word-processing format.
package docx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/imaging"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/table"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/templates"
)

var (
	// ErrNoTemplate is returned when Generate is called without a template.
	ErrNoTemplate = errors.New("no template")
	// ErrEmptyTable is reported for a table with no columns to lay out.
	ErrEmptyTable = errors.New("table has no columns")
)

// Fallback text rendered in place of a table that could not be built.
const tableErrorText = "[테이블 생성 오류]"

// Options configures document generation.
type Options struct {
	// IncludeTOC adds a contents page after the title page. Default: false.
	IncludeTOC *bool
	// ConvertSpecialChars passes text through ToDOCXSafe. Default: true.
	ConvertSpecialChars *bool
	// OptimizeTables drops empty outer rows and unused columns before layout.
	OptimizeTables bool
	// FooterText is printed in the page footer when set.
	FooterText string
	// Font overrides the default font family unless the template sets one.
	Font string
	// Date is printed on the title page. Zero means today.
	Date time.Time
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeTOC returns whether a contents page is generated.
func (o Options) ShouldIncludeTOC() bool {
	return o.IncludeTOC != nil && *o.IncludeTOC
}

// ShouldConvertSpecialChars returns whether text is made DOCX-safe.
func (o Options) ShouldConvertSpecialChars() bool {
	return o.ConvertSpecialChars == nil || *o.ConvertSpecialChars
}

// GenerationResult describes a generated document.
type GenerationResult struct {
	FilePath       string        `json:"file_path,omitempty"`
	TableCount     int           `json:"table_count"`
	ImageCount     int           `json:"image_count"`
	ProcessingTime time.Duration `json:"processing_time"`
	Warnings       []string      `json:"warnings,omitempty"`
}

// Generator renders templates into documents.
type Generator struct {
	normalizer *normalize.Normalizer
	opts       Options
}

// NewGenerator returns a Generator. A nil normalizer selects
// normalize.Default.
func NewGenerator(n *normalize.Normalizer, opts Options) *Generator {
	if n == nil {
		n = normalize.Default
	}
	return &Generator{normalizer: n, opts: opts}
}

// Generate renders tpl and writes the document to w.
func (g *Generator) Generate(w io.Writer, tpl *models.Template) (*GenerationResult, error) {
	doc, res, err := g.build(tpl)
	if err != nil {
		return nil, err
	}
	if err := doc.Save(w); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return res, nil
}

// GenerateFile renders tpl into a file at path.
func (g *Generator) GenerateFile(path string, tpl *models.Template) (*GenerationResult, error) {
	doc, res, err := g.build(tpl)
	if err != nil {
		return nil, err
	}
	if err := doc.SaveToFile(path); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	res.FilePath = path
	return res, nil
}

// GenerateTable renders a single table as a standalone document.
func (g *Generator) GenerateTable(w io.Writer, t *models.Table) (*GenerationResult, error) {
	return g.Generate(w, templates.TableDocument(t))
}

// render carries per-document state while building.
type render struct {
	g      *Generator
	doc    *document.Document
	style  models.DocumentStyle
	tables models.TableStyle
	res    *GenerationResult
}

func (g *Generator) build(tpl *models.Template) (*document.Document, *GenerationResult, error) {
	if tpl == nil {
		return nil, nil, ErrNoTemplate
	}
	if err := templates.Validate(tpl); err != nil {
		return nil, nil, err
	}
	start := time.Now()

	r := &render{
		g:      g,
		doc:    document.New(),
		style:  resolveDocumentStyle(tpl.DocumentStyle, g.opts.Font),
		tables: resolveTableStyle(tpl.TableStyle),
		res:    &GenerationResult{TableCount: countTables(tpl.Sections)},
	}

	r.setupPage()
	r.doc.CoreProperties.SetTitle(tpl.Title)
	if tpl.CompanyInfo.Name != "" {
		r.doc.CoreProperties.SetAuthor(tpl.CompanyInfo.Name)
	}

	r.titlePage(tpl)
	if g.opts.ShouldIncludeTOC() {
		r.contents(tpl.Sections)
	}
	for _, s := range tpl.Sections {
		r.section(s)
	}
	if g.opts.FooterText != "" {
		r.footer(g.opts.FooterText)
	}

	r.res.ProcessingTime = time.Since(start)
	log.Debug().
		Str("title", tpl.Title).
		Int("tables", r.res.TableCount).
		Int("images", r.res.ImageCount).
		Dur("elapsed", r.res.ProcessingTime).
		Msg("document generated")
	return r.doc, r.res, nil
}

func (r *render) setupPage() {
	sec := r.doc.BodySection()
	m := measurement.Distance(r.style.MarginsIn) * measurement.Inch
	sec.SetPageMargins(m, m, m, m, m/2, m/2, 0)

	w := mmToTwips(r.style.PageWidth)
	h := mmToTwips(r.style.PageHeight)
	pg := wml.NewCT_PageSz()
	pg.WAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: &w}
	pg.HAttr = &sharedTypes.ST_TwipsMeasure{ST_UnsignedDecimalNumber: &h}
	sec.X().PgSz = pg
}

func mmToTwips(mm float64) uint64 {
	return uint64(mm/25.4*1440 + 0.5)
}

// contentWidth is the printable width in points.
func (r *render) contentWidth() measurement.Distance {
	page := measurement.Distance(r.style.PageWidth / 25.4 * 72)
	return page - 2*measurement.Distance(r.style.MarginsIn)*measurement.Inch
}

func (r *render) text(s string) string {
	if r.g.opts.ShouldConvertSpecialChars() {
		return r.g.normalizer.ToDOCXSafe(s)
	}
	return s
}

type runStyle struct {
	size   float64
	bold   bool
	italic bool
	color  string
}

func (r *render) addRun(p document.Paragraph, s string, rs runStyle) document.Run {
	run := p.AddRun()
	run.AddText(s)
	props := run.Properties()
	props.SetFontFamily(r.style.FontFamily)
	size := rs.size
	if size <= 0 {
		size = r.style.FontSize
	}
	props.SetSize(measurement.Distance(size) * measurement.Point)
	if rs.bold {
		props.SetBold(true)
	}
	if rs.italic {
		props.SetItalic(true)
	}
	if c, ok := hexColor(rs.color); ok {
		props.SetColor(c)
	}
	return run
}

func (r *render) paragraph(s string, rs runStyle, align wml.ST_Jc, before, after float64) document.Paragraph {
	p := r.doc.AddParagraph()
	if align != wml.ST_JcUnset {
		p.Properties().SetAlignment(align)
	}
	p.Properties().SetSpacing(measurement.Distance(before)*measurement.Point, measurement.Distance(after)*measurement.Point)
	r.addRun(p, s, rs)
	return p
}

func (r *render) pageBreak() {
	r.doc.AddParagraph().AddRun().AddPageBreak()
}

func koreanDate(t time.Time) string {
	return fmt.Sprintf("%d. %d. %d.", t.Year(), int(t.Month()), t.Day())
}

func (r *render) titlePage(tpl *models.Template) {
	r.paragraph(r.text(tpl.Title), runStyle{size: 24, bold: true}, wml.ST_JcCenter, 120, 20)
	if tpl.Subtitle != "" {
		r.paragraph(r.text(tpl.Subtitle), runStyle{size: 16}, wml.ST_JcCenter, 0, 30)
	}
	if tpl.CompanyInfo.Name != "" {
		r.paragraph(r.text(tpl.CompanyInfo.Name), runStyle{size: 14, bold: true}, wml.ST_JcCenter, 0, 10)
	}
	if tpl.CompanyInfo.CEO != "" {
		r.paragraph("대표이사: "+r.text(tpl.CompanyInfo.CEO), runStyle{size: 12}, wml.ST_JcCenter, 0, 5)
	}

	date := r.g.opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	r.paragraph(koreanDate(date), runStyle{size: 12}, wml.ST_JcCenter, 0, 40)
	r.pageBreak()
}

func (r *render) contents(sections []models.Section) {
	r.paragraph("목    차", runStyle{size: 16, bold: true}, wml.ST_JcCenter, 0, 20)
	for _, e := range tocEntries(sections) {
		r.paragraph(r.text(e.String()), runStyle{}, wml.ST_JcUnset, 0, 5)
	}
	r.pageBreak()
}

func (r *render) section(s models.Section) {
	r.paragraph(r.text(s.Title), runStyle{size: 14, bold: true}, wml.ST_JcUnset, 20, 10)
	if s.Content != "" {
		r.paragraph(r.text(s.Content), runStyle{}, wml.ST_JcUnset, 0, 10)
	}
	if s.Table != nil {
		if err := r.table(s.Table); err != nil {
			log.Warn().Err(err).Str("section", s.Title).Msg("table rendering failed")
			r.res.Warnings = append(r.res.Warnings, fmt.Sprintf("section %q: %v", s.Title, err))
			r.paragraph(tableErrorText, runStyle{italic: true, color: "FF0000"}, wml.ST_JcUnset, 0, 10)
		}
	}
	for _, img := range s.Images {
		if err := r.image(img); err != nil {
			log.Warn().Err(err).Str("section", s.Title).Msg("image skipped")
			r.res.Warnings = append(r.res.Warnings, fmt.Sprintf("section %q: image: %v", s.Title, err))
		}
	}
	for _, sub := range s.Subsections {
		r.section(sub)
	}
	if s.PageBreak {
		r.pageBreak()
	}
}

func (r *render) table(t *models.Table) error {
	if r.g.opts.OptimizeTables {
		opt, err := table.Optimize(t)
		if err != nil {
			return err
		}
		t = opt
	}
	g := layoutTable(t)
	if g.cols == 0 {
		return ErrEmptyTable
	}
	if g.clipped > 0 {
		r.res.Warnings = append(r.res.Warnings, fmt.Sprintf("%d cells outside the table grid were dropped", g.clipped))
	}

	tbl := r.doc.AddTable()
	tbl.Properties().SetWidthPercent(100)
	border, ok := hexColor(r.tables.BorderColor)
	if !ok {
		border = color.Black
	}
	tbl.Properties().Borders().SetAll(wml.ST_BorderSingle, border, measurement.Distance(r.tables.BorderSize)*measurement.Point)

	for _, gr := range g.rows {
		row := tbl.AddRow()
		if gr.row.Height != nil && *gr.row.Height > 0 {
			row.Properties().SetHeight(measurement.Distance(*gr.row.Height)*measurement.Point, wml.ST_HeightRuleExact)
		}
		for _, s := range gr.slots {
			r.tableCell(row.AddCell(), gr, s)
		}
	}
	// keep following content from merging into the table
	r.doc.AddParagraph()
	return nil
}

func (r *render) tableCell(cell document.Cell, gr gridRow, s slot) {
	props := cell.Properties()
	if s.span > 1 {
		props.SetColumnSpan(s.span)
	}
	switch s.merge {
	case vmergeRestart:
		props.SetVerticalMerge(wml.ST_MergeRestart)
	case vmergeContinue:
		props.SetVerticalMerge(wml.ST_MergeContinue)
	}
	props.SetVerticalAlignment(wml.ST_VerticalJcCenter)
	if fill, ok := hexColor(cellFill(gr, s, r.tables)); ok {
		props.SetShading(wml.ST_ShdClear, color.Auto, fill)
	}

	p := cell.AddParagraph()
	if s.cell == nil {
		return
	}
	rs := runStyle{bold: gr.header}
	st := s.cell.Style
	if st != nil {
		rs.bold = rs.bold || st.Bold
		rs.italic = st.Italic
		rs.size = st.FontSize
		rs.color = st.FontColor
		if a := alignment(st.Alignment); a != wml.ST_JcUnset {
			p.Properties().SetAlignment(a)
		}
	}
	run := r.addRun(p, r.text(s.cell.DisplayValue), rs)
	if st != nil && st.Underline {
		run.Properties().SetUnderline(wml.ST_UnderlineSingle, color.Auto)
	}
}

func alignment(a models.Alignment) wml.ST_Jc {
	switch a {
	case models.AlignLeft:
		return wml.ST_JcLeft
	case models.AlignCenter:
		return wml.ST_JcCenter
	case models.AlignRight:
		return wml.ST_JcRight
	case models.AlignJustify:
		return wml.ST_JcBoth
	}
	return wml.ST_JcUnset
}

func (r *render) image(img models.SectionImage) error {
	data := img.Data
	if len(data) == 0 {
		if img.Path == "" {
			return errors.New("image has neither data nor path")
		}
		var err error
		if data, err = os.ReadFile(img.Path); err != nil {
			return err
		}
	}

	opt, err := imaging.Optimize(data, imaging.DocumentOptions())
	if err != nil {
		return err
	}

	path, cleanup, err := tempImage(opt)
	if err != nil {
		return err
	}
	defer cleanup()

	ci, err := common.ImageFromFile(path)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}
	ref, err := r.doc.AddImage(ci)
	if err != nil {
		return fmt.Errorf("add image: %w", err)
	}

	p := r.doc.AddParagraph()
	p.Properties().SetAlignment(wml.ST_JcCenter)
	inl, err := p.AddRun().AddDrawingInline(ref)
	if err != nil {
		return fmt.Errorf("place image: %w", err)
	}
	// pixels at 96 dpi to points, then fit to the printable width
	wpt := int(float64(opt.Metadata.Width) * 0.75)
	hpt := int(float64(opt.Metadata.Height) * 0.75)
	wpt, hpt = imaging.FitSize(wpt, hpt, int(r.contentWidth()), 0)
	inl.SetSize(measurement.Distance(wpt)*measurement.Point, measurement.Distance(hpt)*measurement.Point)

	if img.Caption != "" {
		r.paragraph(r.text(img.Caption), runStyle{italic: true, size: r.style.FontSize - 1}, wml.ST_JcCenter, 0, 10)
	}
	r.res.ImageCount++
	return nil
}

// tempImage writes the encoded picture to a temporary file for the image
// loader, which reads from disk.
func tempImage(res *imaging.Result) (string, func(), error) {
	ext := ".jpg"
	if res.Metadata.Format == imaging.PNG {
		ext = ".png"
	}
	f, err := os.CreateTemp("", "bizplan-*"+ext)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(f.Name()) }
	if _, err := f.Write(res.Data); err != nil {
		f.Close()
		cleanup()
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return f.Name(), cleanup, nil
}

func (r *render) footer(text string) {
	ftr := r.doc.AddFooter()
	p := ftr.AddParagraph()
	p.Properties().SetAlignment(wml.ST_JcCenter)
	r.addRun(p, r.text(text), runStyle{size: r.style.FontSize - 2})
	r.doc.BodySection().SetFooter(ftr, wml.ST_HdrFtrDefault)
}
