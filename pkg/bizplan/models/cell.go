// Package models defines data structures for spreadsheet-to-document conversion.
package models

import (
	"strconv"
	"time"
)

// CellType is the closed set of canonical cell types.
type CellType string

const (
	CellTypeText    CellType = "text"
	CellTypeNumber  CellType = "number"
	CellTypeDate    CellType = "date"
	CellTypeFormula CellType = "formula"
	CellTypeBoolean CellType = "boolean"
)

// ValueKind tags which payload field of a Value is set.
type ValueKind string

const (
	ValueText    ValueKind = "text"
	ValueNumber  ValueKind = "number"
	ValueBoolean ValueKind = "boolean"
	ValueDate    ValueKind = "date"
)

// Value is a typed cell value. Only the field matching Kind is meaningful.
type Value struct {
	Kind   ValueKind `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Number float64   `json:"number,omitempty"`
	Bool   bool      `json:"bool,omitempty"`
	Time   time.Time `json:"time,omitempty"`
}

// TextValue returns a text Value.
func TextValue(s string) Value { return Value{Kind: ValueText, Text: s} }

// NumberValue returns a numeric Value.
func NumberValue(f float64) Value { return Value{Kind: ValueNumber, Number: f} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

// DateValue returns a date Value.
func DateValue(t time.Time) Value { return Value{Kind: ValueDate, Time: t} }

// String renders the value without any source formatting.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueBoolean:
		return strconv.FormatBool(v.Bool)
	case ValueDate:
		return v.Time.Format("2006-01-02")
	default:
		return v.Text
	}
}

// Alignment is a horizontal text alignment hint.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// CellStyle carries presentational hints through the pipeline. Nothing in the
// core computes these; they are copied from the source and honored by the
// document assembler.
type CellStyle struct {
	Bold            bool      `json:"bold,omitempty"`
	Italic          bool      `json:"italic,omitempty"`
	Underline       bool      `json:"underline,omitempty"`
	FontSize        float64   `json:"font_size,omitempty"`
	FontColor       string    `json:"font_color,omitempty"`        // "RRGGBB"
	BackgroundColor string    `json:"background_color,omitempty"`  // "RRGGBB"
	Alignment       Alignment `json:"alignment,omitempty"`
}

// Cell is one logical unit of spreadsheet content.
type Cell struct {
	// Value is the raw typed value.
	Value Value `json:"value"`
	// DisplayValue is the human-readable rendering.
	DisplayValue string `json:"display_value"`
	// Type is the canonical type after classification.
	Type CellType `json:"type"`
	// ColSpan is set only on the origin cell of a merged region.
	ColSpan *int `json:"colspan,omitempty"`
	// RowSpan is set only on the origin cell of a merged region.
	RowSpan *int `json:"rowspan,omitempty"`
	// Formula is the source expression, kept only when formulas are preserved.
	Formula *string `json:"formula,omitempty"`
	// Style holds optional presentational hints.
	Style *CellStyle `json:"style,omitempty"`
	// Col is the zero-based column offset of the cell inside the source range.
	Col int `json:"col"`
}

// EmptyCell returns the explicit blank cell emitted for absent addresses.
func EmptyCell(col int) Cell {
	return Cell{Value: TextValue(""), DisplayValue: "", Type: CellTypeText, Col: col}
}

// Spans returns the column and row span of the cell, defaulting to 1.
func (c Cell) Spans() (cols, rows int) {
	cols, rows = 1, 1
	if c.ColSpan != nil && *c.ColSpan > 0 {
		cols = *c.ColSpan
	}
	if c.RowSpan != nil && *c.RowSpan > 0 {
		rows = *c.RowSpan
	}
	return cols, rows
}

// IsMergeOrigin reports whether the cell carries merge spans.
func (c Cell) IsMergeOrigin() bool {
	return c.ColSpan != nil || c.RowSpan != nil
}
