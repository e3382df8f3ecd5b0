// Package parser loads xlsx workbooks into the loader-side models: cell
// values, styles, merges, used ranges, print areas and embedded pictures.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/xuri/excelize/v2"
)

// defaultRowHeight is used when a sheet does not declare its own default.
const defaultRowHeight = 15.0

// maxProbeCells bounds how far a declared dimension widens the cell scan.
const maxProbeCells = 1 << 20

// LoadWorkbook reads every sheet of f into a SourceWorkbook.
func LoadWorkbook(f *excelize.File, bookName string) (*models.SourceWorkbook, error) {
	wb := &models.SourceWorkbook{BookName: bookName}
	printAreas := ExtractPrintAreas(f)
	date1904 := uses1904(f)

	for _, name := range f.GetSheetList() {
		sheet, err := loadSheet(f, name, date1904)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		sheet.PrintAreas = printAreas[name]
		wb.Sheets = append(wb.Sheets, *sheet)
	}

	return wb, nil
}

// LoadSheet reads a single sheet of f.
func LoadSheet(f *excelize.File, sheetName string) (*models.SourceSheet, error) {
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q does not exist", sheetName)
	}
	sheet, err := loadSheet(f, sheetName, uses1904(f))
	if err != nil {
		return nil, err
	}
	sheet.PrintAreas = ExtractPrintAreas(f)[sheetName]
	return sheet, nil
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

func loadSheet(f *excelize.File, name string, date1904 bool) (*models.SourceSheet, error) {
	sheet := &models.SourceSheet{Name: name, Cells: make(map[models.Coord]models.RawCell)}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	styles := make(map[int]*excelize.Style)

	// GetRows trims trailing blanks, so formula cells without a cached value
	// are only found by probing the full grid.
	height, width := len(rows), 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if dim, err := f.GetSheetDimension(name); err == nil && dim != "" {
		if declared, err := ParseRange(dim); err == nil && declared.Rows()*declared.Cols() <= maxProbeCells {
			height = max(height, declared.EndRow+1)
			width = max(width, declared.EndCol+1)
		}
	}

	for rowIdx := 0; rowIdx < height; rowIdx++ {
		for colIdx := 0; colIdx < width; colIdx++ {
			var raw string
			if rowIdx < len(rows) && colIdx < len(rows[rowIdx]) {
				raw = rows[rowIdx][colIdx]
			}
			axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			formula, _ := f.GetCellFormula(name, axis)
			if raw == "" && formula == "" {
				continue
			}

			var style *excelize.Style
			if idx, err := f.GetCellStyle(name, axis); err == nil && idx > 0 {
				if style = styles[idx]; style == nil {
					if style, err = f.GetStyle(idx); err == nil {
						styles[idx] = style
					}
				}
			}

			cellType, _ := f.GetCellType(name, axis)
			formatted, _ := f.GetCellValue(name, axis)
			sheet.SetCell(rowIdx, colIdx, models.RawCell{
				Value:     nativeValue(cellType, raw, style, date1904),
				Formatted: formatted,
				Formula:   formula,
				Style:     cellStyle(style),
			})
		}
	}

	merges, err := f.GetMergeCells(name)
	if err != nil {
		return nil, err
	}
	for _, m := range merges {
		r, err := ParseRange(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err != nil {
			continue
		}
		sheet.Merges = append(sheet.Merges, r)
	}

	sheet.UsedRange = usedRange(f, sheet)
	sheet.RowHeights = rowHeights(f, name, sheet.UsedRange)

	return sheet, nil
}

// nativeValue types a raw cell string using the excelize cell type and the
// cell's number format.
func nativeValue(t excelize.CellType, raw string, style *excelize.Style, date1904 bool) models.Value {
	switch t {
	case excelize.CellTypeBool:
		return models.BoolValue(raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, raw); err == nil {
				return models.DateValue(ts)
			}
		}
		return models.TextValue(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return models.TextValue(raw)
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.TextValue(raw)
	}
	if isDateFormat(style) {
		if ts, err := excelize.ExcelDateToTime(n, date1904); err == nil {
			return models.DateValue(ts)
		}
	}
	return models.NumberValue(n)
}

// isDateFormat reports whether the style's number format renders a date.
func isDateFormat(style *excelize.Style) bool {
	if style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return hasDateTokens(*style.CustomNumFmt)
	}
	id := style.NumFmt
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) ||
		(id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// hasDateTokens scans a custom number format for date or time tokens
// (y, m, d, h, s). Quoted literals, backslash escapes, the _x and *x padding
// directives and bracketed color, locale and condition tags are skipped.
// Elapsed-time tags such as [h] or [mm] count as time.
func hasDateTokens(code string) bool {
	rs := []rune(strings.ToLower(code))
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '"':
			for i++; i < len(rs) && rs[i] != '"'; i++ {
			}
		case '\\', '_', '*':
			i++
		case '[':
			j := i + 1
			for j < len(rs) && rs[j] != ']' {
				j++
			}
			if tag := string(rs[i+1 : min(j, len(rs))]); tag != "" && strings.Trim(tag, "hms") == "" {
				return true
			}
			i = j
		case 'y', 'm', 'd', 'h', 's':
			return true
		}
	}
	return false
}

// cellStyle extracts presentational hints, or nil when the style carries none.
func cellStyle(s *excelize.Style) *models.CellStyle {
	if s == nil {
		return nil
	}
	cs := models.CellStyle{}
	if s.Font != nil {
		cs.Bold = s.Font.Bold
		cs.Italic = s.Font.Italic
		cs.Underline = s.Font.Underline != "" && s.Font.Underline != "none"
		cs.FontSize = s.Font.Size
		cs.FontColor = normalizeColor(s.Font.Color)
	}
	if s.Fill.Pattern == 1 && len(s.Fill.Color) > 0 {
		cs.BackgroundColor = normalizeColor(s.Fill.Color[0])
	}
	if s.Alignment != nil {
		switch s.Alignment.Horizontal {
		case "center", "centerContinuous":
			cs.Alignment = models.AlignCenter
		case "right":
			cs.Alignment = models.AlignRight
		case "justify", "distributed":
			cs.Alignment = models.AlignJustify
		case "left":
			cs.Alignment = models.AlignLeft
		}
	}
	if cs == (models.CellStyle{}) {
		return nil
	}
	return &cs
}

// normalizeColor turns "#ff0000" or ARGB "FFFF0000" into "FF0000".
func normalizeColor(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	if len(c) != 6 {
		return ""
	}
	return c
}

// usedRange prefers the declared sheet dimension, widened to cover the data.
// A single-cell declaration is what a fresh sheet carries and is ignored.
func usedRange(f *excelize.File, sheet *models.SourceSheet) *models.Region {
	bounds := DataBounds(sheet)

	dim, err := f.GetSheetDimension(sheet.Name)
	if err != nil || dim == "" {
		return bounds
	}
	declared, err := ParseRange(dim)
	if err != nil || (declared.Rows() == 1 && declared.Cols() == 1) {
		return bounds
	}
	if bounds == nil {
		return &declared
	}
	u := union(declared, *bounds)
	return &u
}

// rowHeights records rows whose height differs from the sheet default.
func rowHeights(f *excelize.File, name string, used *models.Region) map[int]float64 {
	if used == nil {
		return nil
	}
	def := defaultRowHeight
	if props, err := f.GetSheetProps(name); err == nil && props.DefaultRowHeight != nil && *props.DefaultRowHeight > 0 {
		def = *props.DefaultRowHeight
	}

	var heights map[int]float64
	for r := used.StartRow; r <= used.EndRow; r++ {
		h, err := f.GetRowHeight(name, r+1)
		if err != nil || h <= 0 || h == def {
			continue
		}
		if heights == nil {
			heights = make(map[int]float64)
		}
		heights[r] = h
	}
	return heights
}
