// Package table assembles reader rows into the canonical Table, splits
// header rows from data rows and offers structural optimization and
// validation.
package table

import (
	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/parser"
)

// Options controls header splitting and text normalization.
type Options struct {
	HasHeaders          bool
	HeaderRows          int
	ConvertSpecialChars bool
}

// DefaultOptions returns one header row and special-character conversion.
func DefaultOptions() Options {
	return Options{HasHeaders: true, HeaderRows: 1, ConvertSpecialChars: true}
}

// Builder builds Tables. It is safe for concurrent use.
type Builder struct {
	normalizer *normalize.Normalizer
	opts       Options
}

// NewBuilder returns a Builder. A nil normalizer selects normalize.Default.
func NewBuilder(n *normalize.Normalizer, opts Options) *Builder {
	if n == nil {
		n = normalize.Default
	}
	return &Builder{normalizer: n, opts: opts}
}

// Build assembles rows read from region into a Table. Rows left without any
// cell by merge elision are dropped; the header split is applied to the
// remaining rows. TotalRows and TotalCols describe region, not the rows
// that survived.
func (b *Builder) Build(rows []models.Row, region models.Region, meta models.TableMetadata) *models.Table {
	if meta.OriginalRange == "" {
		meta.OriginalRange = parser.FormatRange(region)
	}
	if meta.Encoding == "" {
		meta.Encoding = "utf8"
	}

	kept := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		if len(row.Cells) == 0 {
			continue
		}
		out := row
		out.Cells = make([]models.Cell, len(row.Cells))
		copy(out.Cells, row.Cells)
		if b.opts.ConvertSpecialChars {
			for i := range out.Cells {
				text, n := b.normalizer.ConvertSpecialChars(out.Cells[i].DisplayValue)
				out.Cells[i].DisplayValue = text
				meta.SpecialCharsConverted += n
			}
		}
		kept = append(kept, out)
	}

	headerCount := 0
	if b.opts.HasHeaders {
		headerCount = min(max(b.opts.HeaderRows, 0), len(kept))
	}

	return &models.Table{
		Headers:   kept[:headerCount:headerCount],
		Rows:      kept[headerCount:],
		TotalRows: region.Rows(),
		TotalCols: region.Cols(),
		Metadata:  meta,
	}
}
