package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// ExtractPictures returns the pictures anchored in each sheet, keyed by sheet
// name. Sheets without pictures are omitted.
func ExtractPictures(f *excelize.File) (map[string][]models.Picture, error) {
	result := make(map[string][]models.Picture)
	for _, sheet := range f.GetSheetList() {
		pics, err := SheetPictures(f, sheet)
		if err != nil {
			return nil, err
		}
		if len(pics) > 0 {
			result[sheet] = pics
		}
	}
	return result, nil
}

// SheetPictures returns the pictures of one sheet in the order excelize
// reports their anchor cells.
func SheetPictures(f *excelize.File, sheet string) ([]models.Picture, error) {
	cells, err := f.GetPictureCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("list pictures of %q: %w", sheet, err)
	}

	var out []models.Picture
	for _, ref := range cells {
		col, row, err := excelize.CellNameToCoordinates(ref)
		if err != nil {
			return nil, err
		}
		pics, err := f.GetPictures(sheet, ref)
		if err != nil {
			return nil, fmt.Errorf("read pictures at %s!%s: %w", sheet, ref, err)
		}
		for i, p := range pics {
			out = append(out, models.Picture{
				Name: fmt.Sprintf("%s_%d%s", ref, i+1, p.Extension),
				Row:  row - 1,
				Col:  col - 1,
				Data: p.File,
			})
		}
	}
	return out, nil
}
