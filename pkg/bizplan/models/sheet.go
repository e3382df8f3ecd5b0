package models

// Coord is a zero-based cell address.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// RawCell is a cell as delivered by a spreadsheet loader, before
// classification.
type RawCell struct {
	// Value is the native value; its Kind is the source type tag.
	Value Value `json:"value"`
	// Formatted is the source's pre-formatted display string, if any.
	Formatted string `json:"formatted,omitempty"`
	// Formula is the source expression, if the cell holds one.
	Formula string `json:"formula,omitempty"`
	// Style holds presentational hints read from the source.
	Style *CellStyle `json:"style,omitempty"`
}

// SourceSheet is the loader-side view of one worksheet.
type SourceSheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Cells is a sparse address to cell map; absent addresses are blank.
	Cells map[Coord]RawCell `json:"-"`
	// Merges lists merged regions.
	Merges []Region `json:"merges,omitempty"`
	// UsedRange is the declared used range, if any.
	UsedRange *Region `json:"used_range,omitempty"`
	// PrintAreas lists user-defined print areas.
	PrintAreas []Region `json:"print_areas,omitempty"`
	// RowHeights maps zero-based row index to a customized height in points.
	RowHeights map[int]float64 `json:"row_heights,omitempty"`
}

// Cell returns the raw cell at the address.
func (s *SourceSheet) Cell(row, col int) (RawCell, bool) {
	c, ok := s.Cells[Coord{Row: row, Col: col}]
	return c, ok
}

// SetCell stores a raw cell, allocating the map on first use.
func (s *SourceSheet) SetCell(row, col int, c RawCell) {
	if s.Cells == nil {
		s.Cells = make(map[Coord]RawCell)
	}
	s.Cells[Coord{Row: row, Col: col}] = c
}
