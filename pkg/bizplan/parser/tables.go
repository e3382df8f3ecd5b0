package parser

import "github.com/ukaji3/bizplan-go/pkg/bizplan/models"

// DataBounds returns the bounding box of non-blank cells and merged regions,
// or nil when the sheet holds nothing.
func DataBounds(sheet *models.SourceSheet) *models.Region {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	extend := func(row, col int) {
		if minRow < 0 || row < minRow {
			minRow = row
		}
		if maxRow < 0 || row > maxRow {
			maxRow = row
		}
		if minCol < 0 || col < minCol {
			minCol = col
		}
		if maxCol < 0 || col > maxCol {
			maxCol = col
		}
	}

	for addr, c := range sheet.Cells {
		if isBlank(c) {
			continue
		}
		extend(addr.Row, addr.Col)
	}
	for _, m := range sheet.Merges {
		extend(m.StartRow, m.StartCol)
		extend(m.EndRow, m.EndCol)
	}

	if minRow < 0 {
		return nil
	}
	return &models.Region{StartRow: minRow, StartCol: minCol, EndRow: maxRow, EndCol: maxCol}
}

func isBlank(c models.RawCell) bool {
	return c.Value.Kind == models.ValueText && c.Value.Text == "" && c.Formula == ""
}

// union returns the smallest region covering a and b.
func union(a, b models.Region) models.Region {
	return models.Region{
		StartRow: min(a.StartRow, b.StartRow),
		StartCol: min(a.StartCol, b.StartCol),
		EndRow:   max(a.EndRow, b.EndRow),
		EndCol:   max(a.EndCol, b.EndCol),
	}
}
