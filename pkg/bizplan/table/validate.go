package table

import (
	"fmt"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// Validate checks the structure of t. The table is invalid only when it has
// no data rows or no columns; rows whose cell count differs from TotalCols
// are reported as issues but do not invalidate the table, since merged cells
// shorten rows.
func Validate(t *models.Table) models.ValidationResult {
	res := models.ValidationResult{Valid: true, Issues: []string{}}
	if t == nil {
		res.Valid = false
		res.Issues = append(res.Issues, "table is nil")
		return res
	}

	if len(t.Rows) == 0 {
		res.Valid = false
		res.Issues = append(res.Issues, "table has no data rows")
	}
	if t.TotalCols <= 0 {
		res.Valid = false
		res.Issues = append(res.Issues, "table has no columns")
	}

	for i, row := range t.Rows {
		if len(row.Cells) != t.TotalCols {
			res.Issues = append(res.Issues,
				fmt.Sprintf("row %d: expected %d cells, found %d", i+1, t.TotalCols, len(row.Cells)))
		}
	}
	return res
}
