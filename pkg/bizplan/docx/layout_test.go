package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

func intp(i int) *int { return &i }

func textCell(col int, s string) models.Cell {
	return models.Cell{Value: models.TextValue(s), DisplayValue: s, Type: models.CellTypeText, Col: col}
}

func spanCell(col int, s string, cs, rs int) models.Cell {
	c := textCell(col, s)
	c.ColSpan, c.RowSpan = intp(cs), intp(rs)
	return c
}

func spans(gr gridRow) []int {
	out := make([]int, len(gr.slots))
	for i, s := range gr.slots {
		out[i] = s.span
	}
	return out
}

func TestLayoutPlainGrid(t *testing.T) {
	tbl := &models.Table{
		Headers: []models.Row{{Index: 0, Cells: []models.Cell{textCell(0, "항목"), textCell(1, "값")}}},
		Rows: []models.Row{
			{Index: 1, Cells: []models.Cell{textCell(0, "a"), textCell(1, "1")}},
			{Index: 2, Cells: []models.Cell{textCell(0, "b"), textCell(1, "2")}},
			{Index: 3, Cells: []models.Cell{textCell(0, "c"), textCell(1, "3")}},
		},
		TotalCols: 2,
	}
	g := layoutTable(tbl)
	require.Equal(t, 2, g.cols)
	require.Len(t, g.rows, 4)

	assert.True(t, g.rows[0].header)
	assert.False(t, g.rows[1].alternate)
	assert.True(t, g.rows[2].alternate)
	assert.False(t, g.rows[3].alternate)
	for _, gr := range g.rows {
		assert.Equal(t, []int{1, 1}, spans(gr))
	}
	assert.Equal(t, "값", g.rows[0].slots[1].cell.DisplayValue)
	assert.Zero(t, g.clipped)
}

func TestLayoutClampsColSpanToGrid(t *testing.T) {
	tbl := &models.Table{
		Headers: []models.Row{{Index: 0, Cells: []models.Cell{spanCell(0, "매출 현황", 3, 1)}}},
		Rows:    []models.Row{{Index: 1, Cells: []models.Cell{textCell(0, "1월"), textCell(1, "100")}}},
		TotalCols: 2,
	}
	g := layoutTable(tbl)
	assert.Equal(t, []int{2}, spans(g.rows[0]))
	assert.Equal(t, vmergeNone, g.rows[0].slots[0].merge)
	assert.Equal(t, []int{1, 1}, spans(g.rows[1]))
}

func TestLayoutVerticalMerge(t *testing.T) {
	tbl := &models.Table{
		Rows: []models.Row{
			{Index: 0, Cells: []models.Cell{spanCell(0, "구분", 1, 3), textCell(1, "x"), textCell(2, "y")}},
			{Index: 1, Cells: []models.Cell{textCell(1, "x2"), textCell(2, "y2")}},
			{Index: 2, Cells: []models.Cell{textCell(1, "x3")}},
			{Index: 3, Cells: []models.Cell{textCell(0, "끝")}},
		},
		TotalCols: 3,
	}
	g := layoutTable(tbl)
	require.Len(t, g.rows, 4)

	assert.Equal(t, vmergeRestart, g.rows[0].slots[0].merge)
	assert.Equal(t, vmergeContinue, g.rows[1].slots[0].merge)
	assert.Nil(t, g.rows[1].slots[0].cell)
	assert.Equal(t, "x2", g.rows[1].slots[1].cell.DisplayValue)

	// third row: continuation, x3, then a filler for the missing column
	require.Len(t, g.rows[2].slots, 3)
	assert.Equal(t, vmergeContinue, g.rows[2].slots[0].merge)
	assert.Nil(t, g.rows[2].slots[2].cell)
	assert.Equal(t, vmergeNone, g.rows[2].slots[2].merge)

	assert.Equal(t, vmergeNone, g.rows[3].slots[0].merge)
	assert.Equal(t, "끝", g.rows[3].slots[0].cell.DisplayValue)
}

func TestLayoutRowSpanClampedToPresentRows(t *testing.T) {
	// the row at index 1 was dropped, so the merge only reaches index 2
	tbl := &models.Table{
		Rows: []models.Row{
			{Index: 0, Cells: []models.Cell{spanCell(0, "합계", 2, 5), textCell(2, "1")}},
			{Index: 2, Cells: []models.Cell{textCell(2, "2")}},
		},
		TotalCols: 3,
	}
	g := layoutTable(tbl)
	require.Len(t, g.rows, 2)
	assert.Equal(t, vmergeRestart, g.rows[0].slots[0].merge)
	assert.Equal(t, []int{2, 1}, spans(g.rows[1]))
	assert.Equal(t, vmergeContinue, g.rows[1].slots[0].merge)

	single := &models.Table{
		Rows:      []models.Row{{Index: 0, Cells: []models.Cell{spanCell(0, "only", 1, 4)}}},
		TotalCols: 1,
	}
	g = layoutTable(single)
	assert.Equal(t, vmergeNone, g.rows[0].slots[0].merge)
}

func TestLayoutHandBuiltRows(t *testing.T) {
	// rows without source positions: indexes and columns are all zero
	tbl := &models.Table{
		Rows: []models.Row{
			{Cells: []models.Cell{textCell(0, "a"), textCell(0, "b"), textCell(0, "c")}},
			{Cells: []models.Cell{textCell(0, "d")}},
		},
	}
	g := layoutTable(tbl)
	require.Equal(t, 3, g.cols)
	assert.Equal(t, "b", g.rows[0].slots[1].cell.DisplayValue)
	assert.Equal(t, "c", g.rows[0].slots[2].cell.DisplayValue)
	assert.Len(t, g.rows[1].slots, 3)
}

func TestLayoutClipsCellsOutsideGrid(t *testing.T) {
	tbl := &models.Table{
		Rows:      []models.Row{{Index: 0, Cells: []models.Cell{textCell(0, "a"), textCell(5, "far")}}},
		TotalCols: 2,
	}
	g := layoutTable(tbl)
	assert.Equal(t, 1, g.clipped)
	assert.Equal(t, []int{1, 1}, spans(g.rows[0]))
}

func TestLayoutEmpty(t *testing.T) {
	g := layoutTable(&models.Table{})
	assert.Zero(t, g.cols)
	assert.Empty(t, g.rows)
}
