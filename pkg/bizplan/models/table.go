package models

import "time"

// RowStyle holds row-level presentational hints.
type RowStyle struct {
	BackgroundColor string `json:"background_color,omitempty"`
	BorderColor     string `json:"border_color,omitempty"`
}

// Row is an ordered sequence of cells. Rows may be jagged: merged regions
// contribute a single origin cell, so len(Cells) can be smaller than the
// table's column count.
type Row struct {
	// Index is the zero-based row offset inside the source range.
	Index int `json:"index"`
	// Cells are ordered left to right by source column.
	Cells []Cell `json:"cells"`
	// Height is the row height in points when the source customizes it.
	Height *float64 `json:"height,omitempty"`
	// Style holds optional row-level hints.
	Style *RowStyle `json:"style,omitempty"`
}

// DisplayValues returns the display strings of the row's cells.
func (r Row) DisplayValues() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.DisplayValue
	}
	return out
}

// TableMetadata describes where a table came from and how it was processed.
type TableMetadata struct {
	// SheetName is the source sheet.
	SheetName string `json:"sheet_name"`
	// OriginalRange is the source range address (e.g. "A1:E10").
	OriginalRange string `json:"original_range"`
	// Encoding is the encoding identifier used while processing.
	Encoding string `json:"encoding"`
	// SpecialCharsConverted counts special-character substitutions.
	SpecialCharsConverted int `json:"special_chars_converted"`
	// ProcessingTime is the extraction duration.
	ProcessingTime time.Duration `json:"processing_time"`
}

// Table is the canonical output of the extraction pipeline.
type Table struct {
	// Title is an optional caption used by the document assembler.
	Title string `json:"title,omitempty"`
	// Headers are the leading rows treated as header rows.
	Headers []Row `json:"headers"`
	// Rows are the data rows.
	Rows []Row `json:"rows"`
	// TotalRows is the row count of the source range.
	TotalRows int `json:"total_rows"`
	// TotalCols is the column count of the source range.
	TotalCols int `json:"total_cols"`
	// Metadata describes the source and processing.
	Metadata TableMetadata `json:"metadata"`
}

// AllRows returns headers followed by data rows.
func (t *Table) AllRows() []Row {
	out := make([]Row, 0, len(t.Headers)+len(t.Rows))
	out = append(out, t.Headers...)
	return append(out, t.Rows...)
}

// ValidationResult is the structured outcome of table validation.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}
