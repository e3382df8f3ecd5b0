package bizplan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/parser"
)

// SheetImages returns the pictures embedded in a sheet as document images,
// ordered top to bottom then left to right and captioned "그림 N".
// An empty sheet name selects the sheet whose name sorts first.
func SheetImages(path, sheet string) ([]models.SectionImage, error) {
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
	return workbookImages(f, sheet)
}

// SheetImagesFromBytes is SheetImages for an in-memory workbook.
func SheetImagesFromBytes(data []byte, sheet string) ([]models.SectionImage, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()
	return workbookImages(f, sheet)
}

func workbookImages(f *excelize.File, sheet string) ([]models.SectionImage, error) {
	pics, err := parser.ExtractPictures(f)
	if err != nil {
		return nil, NewExtractionError(sheet, "pictures", err)
	}
	return sectionImages(pics, sheet), nil
}

func sectionImages(bySheet map[string][]models.Picture, sheet string) []models.SectionImage {
	pics := bySheet[sheet]
	if sheet == "" {
		names := make([]string, 0, len(bySheet))
		for name := range bySheet {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > 0 {
			pics = bySheet[names[0]]
		}
	}

	sorted := append([]models.Picture(nil), pics...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Col < sorted[j].Col
	})

	out := make([]models.SectionImage, 0, len(sorted))
	for i, p := range sorted {
		out = append(out, models.SectionImage{
			Data:    p.Data,
			Caption: fmt.Sprintf("그림 %d", i+1),
		})
	}
	return out
}
