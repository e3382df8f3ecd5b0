package table

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/normalize"
	"github.com/ukaji3/bizplan-go/pkg/bizplan/reader"
)

// buildGrid reads a full text grid and builds it with opts.
func buildGrid(t *testing.T, grid [][]string, opts Options, merges ...models.Region) *models.Table {
	t.Helper()
	sheet := &models.SourceSheet{Name: "Sheet1", Merges: merges}
	cols := 0
	for r, row := range grid {
		cols = max(cols, len(row))
		for c, v := range row {
			if v != "" {
				sheet.SetCell(r, c, models.RawCell{Value: models.TextValue(v)})
			}
		}
	}
	region := models.Region{EndRow: len(grid) - 1, EndCol: cols - 1}
	rows, err := reader.Read(sheet, region, reader.Options{PreserveFormulas: true})
	require.NoError(t, err)
	return NewBuilder(normalize.Default, opts).Build(rows, region, models.TableMetadata{SheetName: sheet.Name})
}

func displays(rows []models.Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.DisplayValues()
	}
	return out
}

func TestBuildCompanyTable(t *testing.T) {
	table := buildGrid(t, [][]string{
		{"회사명", "대표자"},
		{"㈜테크스타트", "김철수"},
	}, DefaultOptions())

	assert.Equal(t, [][]string{{"회사명", "대표자"}}, displays(table.Headers))
	assert.Equal(t, [][]string{{"(주)테크스타트", "김철수"}}, displays(table.Rows))
	assert.Equal(t, 2, table.TotalRows)
	assert.Equal(t, 2, table.TotalCols)
	assert.Equal(t, 1, table.Metadata.SpecialCharsConverted)
	assert.Equal(t, "A1:B2", table.Metadata.OriginalRange)
	assert.Equal(t, "utf8", table.Metadata.Encoding)
	assert.Equal(t, "Sheet1", table.Metadata.SheetName)
}

func TestBuildHeaderOptions(t *testing.T) {
	grid := [][]string{{"h1", "h2"}, {"h3", "h4"}, {"d1", "d2"}}

	noHeaders := buildGrid(t, grid, Options{HasHeaders: false, HeaderRows: 2})
	assert.Empty(t, noHeaders.Headers)
	assert.Len(t, noHeaders.Rows, 3)

	twoHeaders := buildGrid(t, grid, Options{HasHeaders: true, HeaderRows: 2})
	assert.Len(t, twoHeaders.Headers, 2)
	assert.Equal(t, [][]string{{"d1", "d2"}}, displays(twoHeaders.Rows))

	tooMany := buildGrid(t, grid, Options{HasHeaders: true, HeaderRows: 10})
	assert.Len(t, tooMany.Headers, 3)
	assert.Empty(t, tooMany.Rows)
}

func TestBuildKeepsSpecialCharsWhenDisabled(t *testing.T) {
	table := buildGrid(t, [][]string{{"h"}, {"①"}}, Options{HasHeaders: true, HeaderRows: 1})
	assert.Equal(t, "①", table.Rows[0].Cells[0].DisplayValue)
	assert.Zero(t, table.Metadata.SpecialCharsConverted)
}

func TestBuildMergedTitle(t *testing.T) {
	// title merged across three columns above a 2x2 block
	sheet := &models.SourceSheet{
		Name:   "Sheet1",
		Merges: []models.Region{{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2}},
	}
	sheet.SetCell(0, 0, models.RawCell{Value: models.TextValue("매출 계획")})
	sheet.SetCell(1, 0, models.RawCell{Value: models.TextValue("2024")})
	sheet.SetCell(1, 1, models.RawCell{Value: models.NumberValue(100)})
	sheet.SetCell(2, 0, models.RawCell{Value: models.TextValue("2025")})
	sheet.SetCell(2, 1, models.RawCell{Value: models.NumberValue(250)})

	region := models.Region{EndRow: 2, EndCol: 1}
	rows, err := reader.Read(sheet, region, reader.Options{})
	require.NoError(t, err)
	table := NewBuilder(nil, Options{}).Build(rows, region, models.TableMetadata{})

	require.Len(t, table.Rows, 3)
	require.Len(t, table.Rows[0].Cells, 1)
	cols, _ := table.Rows[0].Cells[0].Spans()
	assert.Equal(t, 3, cols)
	assert.Len(t, table.Rows[1].Cells, 2)
	assert.Len(t, table.Rows[2].Cells, 2)
	assert.Equal(t, 2, table.TotalCols)
}

func TestBuildDropsRowsConsumedByMerges(t *testing.T) {
	// A1:A2 and B1:B2 merged, so row 2 has no surviving cells
	table := buildGrid(t, [][]string{
		{"구분", "내용"},
		{"", ""},
		{"a", "b"},
	}, DefaultOptions(),
		models.Region{StartRow: 0, StartCol: 0, EndRow: 1, EndCol: 0},
		models.Region{StartRow: 0, StartCol: 1, EndRow: 1, EndCol: 1},
	)

	require.Len(t, table.Headers, 1)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 2, table.Rows[0].Index)
	assert.Equal(t, 3, table.TotalRows)
}

func TestOptimizeDropsEmptyColumn(t *testing.T) {
	table := buildGrid(t, [][]string{
		{"항목", "", "금액"},
		{"매출", "", "100"},
		{"비용", " ", "40"},
	}, DefaultOptions())

	optimized, err := Optimize(table)
	require.NoError(t, err)

	assert.Equal(t, table.TotalCols-1, optimized.TotalCols)
	assert.Equal(t, [][]string{{"항목", "금액"}}, displays(optimized.Headers))
	assert.Equal(t, [][]string{{"매출", "100"}, {"비용", "40"}}, displays(optimized.Rows))
	for _, row := range optimized.AllRows() {
		for i, c := range row.Cells {
			assert.Equal(t, i, c.Col)
		}
	}
}

func TestOptimizeUsesDataRowsForColumns(t *testing.T) {
	// column 1 has a header but no data: it is dropped from the header too
	table := buildGrid(t, [][]string{
		{"항목", "비고", "금액"},
		{"매출", "", "100"},
	}, DefaultOptions())

	optimized, err := Optimize(table)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"항목", "금액"}}, displays(optimized.Headers))
	assert.Equal(t, 2, optimized.TotalCols)
}

func TestOptimizeTrimsOuterRowsOnly(t *testing.T) {
	table := buildGrid(t, [][]string{
		{"h"},
		{""},
		{"a"},
		{""},
		{"b"},
		{""},
	}, DefaultOptions())

	optimized, err := Optimize(table)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {""}, {"b"}}, displays(optimized.Rows))
	assert.Equal(t, 4, optimized.TotalRows)
}

func TestOptimizeShrinksMergedCells(t *testing.T) {
	// title spans all three columns; column 1 is empty in the data row
	table := buildGrid(t, [][]string{
		{"제목", "", ""},
		{"a", "", "b"},
	}, DefaultOptions(), models.Region{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2})

	optimized, err := Optimize(table)
	require.NoError(t, err)
	require.Len(t, optimized.Headers[0].Cells, 1)
	require.NotNil(t, optimized.Headers[0].Cells[0].ColSpan)
	assert.Equal(t, 2, *optimized.Headers[0].Cells[0].ColSpan)
	assert.Equal(t, [][]string{{"제목"}}, displays(optimized.Headers))
	assert.Equal(t, [][]string{{"a", "b"}}, displays(optimized.Rows))
	assert.Equal(t, 1, optimized.Rows[0].Cells[1].Col)

	// the input keeps its original spans
	assert.Equal(t, 3, *table.Headers[0].Cells[0].ColSpan)
}

func TestValidate(t *testing.T) {
	t.Run("no data rows", func(t *testing.T) {
		res := Validate(&models.Table{Headers: []models.Row{{}}, TotalCols: 2})
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Issues)
	})

	t.Run("no columns", func(t *testing.T) {
		res := Validate(&models.Table{Rows: []models.Row{{}}, TotalCols: 0})
		assert.False(t, res.Valid)
	})

	t.Run("nil", func(t *testing.T) {
		res := Validate(nil)
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Issues)
	})

	t.Run("merged rows are advisory", func(t *testing.T) {
		table := buildGrid(t, [][]string{
			{"h1", "h2"},
			{"merged", ""},
			{"a", "b"},
		}, DefaultOptions(), models.Region{StartRow: 1, StartCol: 0, EndRow: 1, EndCol: 1})

		res := Validate(table)
		assert.True(t, res.Valid)
		require.Len(t, res.Issues, 1)
		assert.Contains(t, res.Issues[0], "row 1")
	})

	t.Run("clean", func(t *testing.T) {
		res := Validate(buildGrid(t, [][]string{{"h"}, {"d"}}, DefaultOptions()))
		assert.True(t, res.Valid)
		assert.Empty(t, res.Issues)
	})
}

func TestOptimizeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	values := []string{"", "", " ", "x", "①", "매출"}
	cellGen := gen.IntRange(0, len(values)-1).Map(func(i int) string { return values[i] })
	rowGen := gen.SliceOfN(4, cellGen)
	gridGen := gen.SliceOfN(5, rowGen)

	properties.Property("optimize leaves its input untouched", prop.ForAll(
		func(grid [][]string) bool {
			original := buildGrid(t, grid, DefaultOptions())
			snapshot := buildGrid(t, grid, DefaultOptions())
			if _, err := Optimize(original); err != nil {
				return false
			}
			return assert.ObjectsAreEqual(snapshot, original)
		},
		gridGen,
	))

	properties.Property("headers and rows share the retained columns", prop.ForAll(
		func(grid [][]string) bool {
			optimized, err := Optimize(buildGrid(t, grid, DefaultOptions()))
			if err != nil {
				return false
			}
			for _, row := range optimized.AllRows() {
				// no merges, so every surviving row is complete
				if len(row.Cells) != optimized.TotalCols {
					return false
				}
				for i, c := range row.Cells {
					if c.Col != i {
						return false
					}
				}
			}
			return optimized.TotalRows == len(optimized.Headers)+len(optimized.Rows)
		},
		gridGen,
	))

	properties.TestingRun(t)
}
