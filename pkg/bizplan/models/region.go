package models

// Region is a rectangular block of cell addresses. Indices are zero-based and
// inclusive on both ends.
type Region struct {
	StartRow int `json:"start_row"`
	StartCol int `json:"start_col"`
	EndRow   int `json:"end_row"`
	EndCol   int `json:"end_col"`
}

// Rows returns the number of rows covered by the region.
func (r Region) Rows() int { return r.EndRow - r.StartRow + 1 }

// Cols returns the number of columns covered by the region.
func (r Region) Cols() int { return r.EndCol - r.StartCol + 1 }

// Contains reports whether the address lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// IsOrigin reports whether the address is the region's top-left corner.
func (r Region) IsOrigin(row, col int) bool {
	return row == r.StartRow && col == r.StartCol
}

// Valid reports whether the region is non-empty and non-negative.
func (r Region) Valid() bool {
	return r.StartRow >= 0 && r.StartCol >= 0 && r.EndRow >= r.StartRow && r.EndCol >= r.StartCol
}
