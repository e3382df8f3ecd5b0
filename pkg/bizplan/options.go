// Package bizplan extracts canonical tables from xlsx workbooks for Korean
// business-plan documents.
package bizplan

import "github.com/ukaji3/bizplan-go/pkg/bizplan/encoding"

// Options configures extraction behavior.
type Options struct {
	// SheetName selects the sheet. Empty selects the first sheet.
	SheetName string
	// Range is an A1-style range. Empty selects the used range.
	Range string
	// UsePrintArea reads the sheet's first print area when Range is empty.
	UsePrintArea bool
	// HasHeaders specifies whether leading rows are header rows.
	// If nil, defaults to true.
	HasHeaders *bool
	// HeaderRows is the number of header rows. If nil, defaults to 1.
	HeaderRows *int
	// ConvertSpecialChars substitutes Korean typographic symbols in display
	// values. If nil, defaults to true.
	ConvertSpecialChars *bool
	// PreserveFormulas types formula cells as formulas and keeps their text.
	// If nil, defaults to true.
	PreserveFormulas *bool
	// DateFormat is a YYYY/MM/DD token pattern for date cells.
	DateFormat string
	// NumberPrecision rounds numeric cells to this many decimals.
	NumberPrecision *int
	// Encoding is the encoding label recorded in the table metadata.
	// Empty means UTF-8.
	Encoding string
	// CharOverlay extends or overrides the special-character map.
	CharOverlay map[string]string
	// Optimize drops empty outer rows and empty columns after building.
	Optimize bool
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldUseHeaders returns whether leading rows are header rows.
func (o Options) ShouldUseHeaders() bool {
	if o.HasHeaders != nil {
		return *o.HasHeaders
	}
	return true
}

// HeaderRowCount returns the number of header rows.
func (o Options) HeaderRowCount() int {
	if o.HeaderRows != nil {
		return *o.HeaderRows
	}
	return 1
}

// ShouldConvertSpecialChars returns whether special characters are converted.
func (o Options) ShouldConvertSpecialChars() bool {
	if o.ConvertSpecialChars != nil {
		return *o.ConvertSpecialChars
	}
	return true
}

// ShouldPreserveFormulas returns whether formulas are preserved.
func (o Options) ShouldPreserveFormulas() bool {
	if o.PreserveFormulas != nil {
		return *o.PreserveFormulas
	}
	return true
}

// EncodingName returns the canonical encoding identifier, falling back to
// UTF-8 for unknown labels.
func (o Options) EncodingName() string {
	e, err := encoding.Lookup(o.Encoding)
	if err != nil {
		return string(encoding.UTF8)
	}
	return string(e)
}
