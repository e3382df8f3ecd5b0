package reader

import (
	"fmt"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/parser"
)

// Resolve picks the sheet and range to read. An empty sheet name selects the
// first sheet. The range is, in order of preference, the explicit ref, the
// sheet's first print area when usePrintArea is set, and the used range.
func Resolve(wb *models.SourceWorkbook, sheetName, ref string, usePrintArea bool) (*models.SourceSheet, models.Region, error) {
	if wb == nil {
		return nil, models.Region{}, fmt.Errorf("%w: workbook", ErrNotFound)
	}
	sheet, ok := wb.Sheet(sheetName)
	if !ok {
		if sheetName == "" {
			return nil, models.Region{}, fmt.Errorf("%w: workbook has no sheets", ErrNotFound)
		}
		return nil, models.Region{}, fmt.Errorf("%w: sheet %q", ErrNotFound, sheetName)
	}

	switch {
	case ref != "":
		region, err := parser.ParseRange(ref)
		if err != nil {
			return nil, models.Region{}, fmt.Errorf("%w: range %q in sheet %q", ErrNotFound, ref, sheet.Name)
		}
		return sheet, region, nil
	case usePrintArea && len(sheet.PrintAreas) > 0:
		return sheet, sheet.PrintAreas[0], nil
	case sheet.UsedRange != nil:
		return sheet, *sheet.UsedRange, nil
	}
	return nil, models.Region{}, fmt.Errorf("%w: sheet %q has no used range", ErrNotFound, sheet.Name)
}
