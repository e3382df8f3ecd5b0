package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/bizplan-go/pkg/bizplan"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/reader"
)

// extractFlags mirrors bizplan.Options on the command line.
type extractFlags struct {
	sheet      string
	rng        string
	printArea  bool
	headerRows int
	noHeaders  bool
	noSpecial  bool
	noFormulas bool
	dateFormat string
	precision  int
	encoding   string
	optimize   bool
}

func (f *extractFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.sheet, "sheet", "", "Sheet name (default: first sheet)")
	fs.StringVar(&f.rng, "range", "", "A1-style range (default: used range)")
	fs.BoolVar(&f.printArea, "print-area", false, "Use the sheet's first print area when no range is given")
	fs.IntVar(&f.headerRows, "header-rows", 1, "Number of header rows")
	fs.BoolVar(&f.noHeaders, "no-headers", false, "Treat every row as data")
	fs.BoolVar(&f.noSpecial, "no-special-chars", false, "Keep Korean special characters as-is")
	fs.BoolVar(&f.noFormulas, "no-formulas", false, "Type formula cells by their cached value")
	fs.StringVar(&f.dateFormat, "date-format", "", "Date pattern using YYYY, MM and DD")
	fs.IntVar(&f.precision, "precision", 0, "Round numbers to this many decimals (0-15)")
	fs.StringVar(&f.encoding, "encoding", "", "Encoding label recorded in the metadata")
	fs.BoolVar(&f.optimize, "optimize", false, "Drop empty outer rows and empty columns")
}

// options builds extraction options; pointer fields are set only for flags
// given explicitly so library defaults stay in charge otherwise.
func (f *extractFlags) options(cmd *cobra.Command) bizplan.Options {
	opts := bizplan.Options{
		SheetName:    f.sheet,
		Range:        f.rng,
		UsePrintArea: f.printArea,
		DateFormat:   f.dateFormat,
		Encoding:     f.encoding,
		Optimize:     f.optimize,
	}
	fs := cmd.Flags()
	if fs.Changed("no-headers") {
		v := !f.noHeaders
		opts.HasHeaders = &v
	}
	if fs.Changed("header-rows") {
		v := f.headerRows
		opts.HeaderRows = &v
	}
	if fs.Changed("no-special-chars") {
		v := !f.noSpecial
		opts.ConvertSpecialChars = &v
	}
	if fs.Changed("no-formulas") {
		v := !f.noFormulas
		opts.PreserveFormulas = &v
	}
	if fs.Changed("precision") {
		v := min(max(f.precision, 0), reader.MaxPrecision)
		opts.NumberPrecision = &v
	}
	return opts
}
