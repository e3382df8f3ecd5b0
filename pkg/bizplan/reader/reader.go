// Package reader turns a rectangular range of a loaded sheet into rows of
// typed cells. Merged regions collapse into their top-left origin cell, which
// carries the spans; the other addresses of the region produce no output.
package reader

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// ErrNotFound is returned when the requested sheet or range does not exist.
var ErrNotFound = errors.New("not found")

// Options controls classification and display formatting.
type Options struct {
	// PreserveFormulas types formula cells as formula and keeps their text.
	PreserveFormulas bool
	// DateFormat is a YYYY/MM/DD token pattern applied to date cells.
	DateFormat string
	// NumberPrecision rounds numeric cells to the given number of decimals.
	NumberPrecision *int
}

// Read emits one row per source row of region. Each row holds, left to
// right, a cell for every address except the non-origin addresses of merged
// regions; blank addresses yield explicit empty text cells. Rows may
// therefore be shorter than region.Cols().
func Read(sheet *models.SourceSheet, region models.Region, opts Options) ([]models.Row, error) {
	if sheet == nil {
		return nil, fmt.Errorf("%w: sheet", ErrNotFound)
	}
	if !region.Valid() {
		return nil, fmt.Errorf("%w: range %+v", ErrNotFound, region)
	}

	merges := mergesIn(sheet.Merges, region)
	rows := make([]models.Row, 0, region.Rows())

	for r := region.StartRow; r <= region.EndRow; r++ {
		row := models.Row{Index: r - region.StartRow, Cells: make([]models.Cell, 0, region.Cols())}
		if h, ok := sheet.RowHeights[r]; ok {
			row.Height = &h
		}

		for c := region.StartCol; c <= region.EndCol; c++ {
			m, merged := findMerge(merges, r, c)
			if merged && !m.IsOrigin(r, c) {
				continue
			}

			col := c - region.StartCol
			raw, ok := sheet.Cell(r, c)
			cell := models.EmptyCell(col)
			if ok {
				cell = buildCell(raw, col, opts)
			}
			if merged {
				colspan, rowspan := m.Cols(), m.Rows()
				cell.ColSpan, cell.RowSpan = &colspan, &rowspan
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// mergesIn returns the merge regions that intersect region.
func mergesIn(all []models.Region, region models.Region) []models.Region {
	var out []models.Region
	for _, m := range all {
		if m.EndRow < region.StartRow || m.StartRow > region.EndRow ||
			m.EndCol < region.StartCol || m.StartCol > region.EndCol {
			continue
		}
		out = append(out, m)
	}
	return out
}

func findMerge(merges []models.Region, row, col int) (models.Region, bool) {
	for _, m := range merges {
		if m.Contains(row, col) {
			return m, true
		}
	}
	return models.Region{}, false
}

func buildCell(raw models.RawCell, col int, opts Options) models.Cell {
	cellType, formula := Classify(raw, opts.PreserveFormulas)
	value, display := Format(raw, opts)
	return models.Cell{
		Value:        value,
		DisplayValue: display,
		Type:         cellType,
		Formula:      formula,
		Style:        raw.Style,
		Col:          col,
	}
}

// Classify returns the canonical type of a raw cell. A formula cell is typed
// formula only when it carries formula text and preserveFormulas is set; in
// every other case the type follows the native value. The formula text is
// returned only when it is preserved.
func Classify(raw models.RawCell, preserveFormulas bool) (models.CellType, *string) {
	if raw.Formula != "" && preserveFormulas {
		f := raw.Formula
		return models.CellTypeFormula, &f
	}
	switch raw.Value.Kind {
	case models.ValueNumber:
		return models.CellTypeNumber, nil
	case models.ValueBoolean:
		return models.CellTypeBoolean, nil
	case models.ValueDate:
		return models.CellTypeDate, nil
	default:
		return models.CellTypeText, nil
	}
}

// Format returns the (possibly rounded) value and its display string.
// Rounding discards source formatting; a date pattern applies to native
// dates only; otherwise the source's formatted string wins over the plain
// rendering.
func Format(raw models.RawCell, opts Options) (models.Value, string) {
	v := raw.Value

	if opts.NumberPrecision != nil && v.Kind == models.ValueNumber {
		v.Number = Round(v.Number, *opts.NumberPrecision)
		return v, strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	if opts.DateFormat != "" && v.Kind == models.ValueDate {
		return v, FormatDate(v.Time, opts.DateFormat)
	}
	if raw.Formatted != "" {
		return v, raw.Formatted
	}
	return v, v.String()
}

// MaxPrecision is the largest number of decimals Round honors.
const MaxPrecision = 15

// Round rounds x half away from zero to the given number of decimals,
// clamped to [0, MaxPrecision]. Values too large to scale come back as is.
func Round(x float64, precision int) float64 {
	p := math.Pow10(min(max(precision, 0), MaxPrecision))
	r := math.Round(x*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return x
	}
	return r
}

// FormatDate renders t with a pattern made of YYYY, MM and DD tokens.
func FormatDate(t time.Time, pattern string) string {
	return strings.NewReplacer(
		"YYYY", fmt.Sprintf("%04d", t.Year()),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"DD", fmt.Sprintf("%02d", t.Day()),
	).Replace(pattern)
}
