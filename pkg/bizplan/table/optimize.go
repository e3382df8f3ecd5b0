package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tiendc/go-deepcopy"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// Optimize returns a copy of t without leading and trailing empty data rows
// and without columns that are empty in every data row. A cell is empty when
// its trimmed display value is "". The retained column set is computed from
// the data rows only and applied identically to header and data rows; merged
// cells survive when any column they cover is retained and their colspan
// shrinks to the retained columns. Header rows are never trimmed, and
// TotalRows becomes the header count plus the surviving data rows. t itself
// is never modified.
func Optimize(t *models.Table) (*models.Table, error) {
	var out models.Table
	if err := deepcopy.Copy(&out, *t); err != nil {
		return nil, fmt.Errorf("copy table: %w", err)
	}

	out.Rows = trimEmptyRows(out.Rows)

	retained := retainedColumns(out.Rows)
	rank := make(map[int]int, len(retained))
	for i, col := range retained {
		rank[col] = i
	}

	for i := range out.Headers {
		out.Headers[i].Cells = filterCells(out.Headers[i].Cells, rank)
	}
	for i := range out.Rows {
		out.Rows[i].Cells = filterCells(out.Rows[i].Cells, rank)
	}

	out.TotalRows = len(out.Headers) + len(out.Rows)
	out.TotalCols = len(retained)
	return &out, nil
}

func isEmptyCell(c models.Cell) bool {
	return strings.TrimSpace(c.DisplayValue) == ""
}

func isEmptyRow(r models.Row) bool {
	for _, c := range r.Cells {
		if !isEmptyCell(c) {
			return false
		}
	}
	return true
}

func trimEmptyRows(rows []models.Row) []models.Row {
	first, last := -1, -1
	for i, r := range rows {
		if isEmptyRow(r) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return []models.Row{}
	}
	return rows[first : last+1]
}

// retainedColumns returns, in ascending order, every column covered by a
// non-empty data cell.
func retainedColumns(rows []models.Row) []int {
	set := make(map[int]struct{})
	for _, r := range rows {
		for _, c := range r.Cells {
			if isEmptyCell(c) {
				continue
			}
			span, _ := c.Spans()
			for col := c.Col; col < c.Col+span; col++ {
				set[col] = struct{}{}
			}
		}
	}
	cols := make([]int, 0, len(set))
	for col := range set {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

// filterCells keeps the cells covering a retained column and renumbers them
// into the retained coordinate space.
func filterCells(cells []models.Cell, rank map[int]int) []models.Cell {
	out := make([]models.Cell, 0, len(cells))
	for _, c := range cells {
		span, _ := c.Spans()
		first, covered := -1, 0
		for col := c.Col; col < c.Col+span; col++ {
			r, ok := rank[col]
			if !ok {
				continue
			}
			if first < 0 {
				first = r
			}
			covered++
		}
		if covered == 0 {
			continue
		}
		c.Col = first
		if c.ColSpan != nil {
			c.ColSpan = &covered
		}
		out = append(out, c)
	}
	return out
}
