package bizplan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/parser"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/reader"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/table"
)

// Result is the outcome of one extraction.
type Result struct {
	Table      *models.Table           `json:"table"`
	Validation models.ValidationResult `json:"validation"`
	// Warnings repeats the validation issues of a valid table.
	Warnings []string `json:"warnings,omitempty"`
}

// SheetResult is the outcome of extracting one sheet of a batch.
type SheetResult struct {
	SheetName string  `json:"sheet_name"`
	Result    *Result `json:"result,omitempty"`
	Err       error   `json:"-"`
}

// Open loads an xlsx file into a SourceWorkbook.
func Open(path string) (*models.SourceWorkbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()
	return load(f, filepath.Base(path))
}

// OpenReader loads an xlsx stream into a SourceWorkbook.
func OpenReader(r io.Reader, bookName string) (*models.SourceWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()
	return load(f, bookName)
}

func load(f *excelize.File, bookName string) (*models.SourceWorkbook, error) {
	wb, err := parser.LoadWorkbook(f, bookName)
	if err != nil {
		return nil, NewExtractionError("", "workbook", err)
	}
	return wb, nil
}

// Extract extracts a table from an Excel file.
func Extract(path string, opts Options) (*Result, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	return ExtractWorkbook(wb, opts)
}

// ExtractReader extracts a table from an xlsx stream.
func ExtractReader(r io.Reader, opts Options) (*Result, error) {
	wb, err := OpenReader(r, "")
	if err != nil {
		return nil, err
	}
	return ExtractWorkbook(wb, opts)
}

// ExtractWorkbook runs the read, build, optimize and validate steps on an
// already loaded workbook.
func ExtractWorkbook(wb *models.SourceWorkbook, opts Options) (*Result, error) {
	start := time.Now()

	sheet, region, err := reader.Resolve(wb, opts.SheetName, opts.Range, opts.UsePrintArea)
	if err != nil {
		return nil, NewExtractionError(opts.SheetName, "range", err)
	}

	n := normalize.Default
	if len(opts.CharOverlay) > 0 {
		if n, err = normalize.NewNormalizer(opts.CharOverlay); err != nil {
			return nil, NewExtractionError(sheet.Name, "normalize", err)
		}
	}

	rows, err := reader.Read(sheet, region, reader.Options{
		PreserveFormulas: opts.ShouldPreserveFormulas(),
		DateFormat:       opts.DateFormat,
		NumberPrecision:  opts.NumberPrecision,
	})
	if err != nil {
		return nil, NewExtractionError(sheet.Name, "reader", err)
	}

	builder := table.NewBuilder(n, table.Options{
		HasHeaders:          opts.ShouldUseHeaders(),
		HeaderRows:          opts.HeaderRowCount(),
		ConvertSpecialChars: opts.ShouldConvertSpecialChars(),
	})
	t := builder.Build(rows, region, models.TableMetadata{
		SheetName: sheet.Name,
		Encoding:  opts.EncodingName(),
	})

	if opts.Optimize {
		if t, err = table.Optimize(t); err != nil {
			return nil, NewExtractionError(sheet.Name, "table", err)
		}
	}
	t.Metadata.ProcessingTime = time.Since(start)

	res := &Result{Table: t, Validation: table.Validate(t)}
	if res.Validation.Valid && len(res.Validation.Issues) > 0 {
		res.Warnings = res.Validation.Issues
	}

	log.Debug().
		Str("sheet", sheet.Name).
		Str("range", t.Metadata.OriginalRange).
		Int("rows", len(t.Rows)).
		Int("cols", t.TotalCols).
		Int("special_chars", t.Metadata.SpecialCharsConverted).
		Dur("elapsed", t.Metadata.ProcessingTime).
		Msg("Extracted table")

	return res, nil
}

// ExtractSheets extracts every sheet of wb with opts. Range and SheetName in
// opts are ignored. A failing sheet is recorded in its SheetResult and does
// not stop the others.
func ExtractSheets(wb *models.SourceWorkbook, opts Options) []SheetResult {
	results := make([]SheetResult, 0, len(wb.Sheets))
	for _, name := range wb.SheetNames() {
		o := opts
		o.SheetName, o.Range = name, ""
		res, err := ExtractWorkbook(wb, o)
		if err != nil {
			log.Warn().Err(err).Str("sheet", name).Msg("Skipping sheet")
		}
		results = append(results, SheetResult{SheetName: name, Result: res, Err: err})
	}
	return results
}
