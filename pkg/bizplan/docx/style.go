package docx

import (
	"strings"

	"github.com/unidoc/unioffice/color"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// Document defaults: A4 portrait with one-inch margins.
const (
	DefaultFont       = "맑은 고딕"
	DefaultFontSize   = 11.0
	DefaultMarginIn   = 1.0
	A4WidthMM         = 210.0
	A4HeightMM        = 297.0
	DefaultBorder     = "000000"
	DefaultBorderSize = 0.5
	DefaultHeaderFill = "E6E6FA"
)

func resolveDocumentStyle(s *models.DocumentStyle, font string) models.DocumentStyle {
	out := models.DocumentStyle{
		FontFamily: font,
		FontSize:   DefaultFontSize,
		MarginsIn:  DefaultMarginIn,
		PageWidth:  A4WidthMM,
		PageHeight: A4HeightMM,
	}
	if out.FontFamily == "" {
		out.FontFamily = DefaultFont
	}
	if s == nil {
		return out
	}
	if s.FontFamily != "" {
		out.FontFamily = s.FontFamily
	}
	if s.FontSize > 0 {
		out.FontSize = s.FontSize
	}
	if s.MarginsIn > 0 {
		out.MarginsIn = s.MarginsIn
	}
	if s.PageWidth > 0 {
		out.PageWidth = s.PageWidth
	}
	if s.PageHeight > 0 {
		out.PageHeight = s.PageHeight
	}
	return out
}

func resolveTableStyle(s *models.TableStyle) models.TableStyle {
	out := models.TableStyle{
		BorderColor:      DefaultBorder,
		BorderSize:       DefaultBorderSize,
		HeaderBackground: DefaultHeaderFill,
	}
	if s == nil {
		return out
	}
	if s.BorderColor != "" {
		out.BorderColor = s.BorderColor
	}
	if s.BorderSize > 0 {
		out.BorderSize = s.BorderSize
	}
	if s.HeaderBackground != "" {
		out.HeaderBackground = s.HeaderBackground
	}
	out.AlternateRowBackground = s.AlternateRowBackground
	return out
}

// hexColor parses "RRGGBB" or "#RRGGBB".
func hexColor(s string) (color.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.Auto, false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return color.Auto, false
		}
	}
	return color.FromHex("#" + strings.ToUpper(s)), true
}

// cellFill picks the background of a table cell: header fill, then the
// alternate-row fill, then the cell's own background.
func cellFill(gr gridRow, s slot, ts models.TableStyle) string {
	switch {
	case gr.header && ts.HeaderBackground != "":
		return ts.HeaderBackground
	case gr.alternate && ts.AlternateRowBackground != "":
		return ts.AlternateRowBackground
	case s.cell != nil && s.cell.Style != nil:
		return s.cell.Style.BackgroundColor
	}
	return ""
}
