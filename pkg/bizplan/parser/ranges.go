package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidRange is returned for range references that cannot be parsed.
var ErrInvalidRange = errors.New("invalid range")

// ParseRange parses an A1-style reference such as "A1:E10", "$B$2:$D$4",
// "Sheet1!A1:C3" or a single cell "B2" into a zero-based Region. Reversed
// corners are normalized.
func ParseRange(ref string) (models.Region, error) {
	s := strings.TrimSpace(ref)
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.ReplaceAll(s, "$", "")
	if s == "" {
		return models.Region{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return models.Region{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Region{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, ref, err)
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return models.Region{}, fmt.Errorf("%w: %q: %v", ErrInvalidRange, ref, err)
		}
	}

	return models.Region{
		StartRow: min(startRow, endRow) - 1,
		StartCol: min(startCol, endCol) - 1,
		EndRow:   max(startRow, endRow) - 1,
		EndCol:   max(startCol, endCol) - 1,
	}, nil
}

// FormatRange renders a Region as an A1-style reference.
func FormatRange(r models.Region) string {
	start, err := excelize.CoordinatesToCellName(r.StartCol+1, r.StartRow+1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(r.EndCol+1, r.EndRow+1)
	if err != nil {
		return ""
	}
	return start + ":" + end
}
