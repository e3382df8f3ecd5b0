package reader

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

func textSheet(grid [][]string, merges ...models.Region) *models.SourceSheet {
	s := &models.SourceSheet{Name: "Sheet1", Merges: merges}
	for r, row := range grid {
		for c, v := range row {
			if v == "" {
				continue
			}
			s.SetCell(r, c, models.RawCell{Value: models.TextValue(v)})
		}
	}
	return s
}

func displays(rows []models.Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.DisplayValues()
	}
	return out
}

func TestReadMergedTitle(t *testing.T) {
	sheet := textSheet([][]string{
		{"사업계획 요약", "", ""},
		{"항목", "금액"},
		{"매출", "100"},
	}, models.Region{StartRow: 0, StartCol: 0, EndRow: 0, EndCol: 2})

	rows, err := Read(sheet, models.Region{EndRow: 2, EndCol: 1}, Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Len(t, rows[0].Cells, 1)
	title := rows[0].Cells[0]
	cols, spanRows := title.Spans()
	assert.Equal(t, "사업계획 요약", title.DisplayValue)
	// spans describe the whole merge even where it leaves the range
	assert.Equal(t, 3, cols)
	assert.Equal(t, 1, spanRows)

	assert.Equal(t, []string{"항목", "금액"}, rows[1].DisplayValues())
	assert.Equal(t, []string{"매출", "100"}, rows[2].DisplayValues())
}

func TestReadMergeElisionAndBlanks(t *testing.T) {
	// B2:C3 merged; A3 blank
	sheet := textSheet([][]string{
		{"a", "b", "c"},
		{"d", "merged", ""},
		{"", "", ""},
	}, models.Region{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: 2})

	rows, err := Read(sheet, models.Region{EndRow: 2, EndCol: 2}, Options{})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "merged"}, {""}}, displays(rows))

	origin := rows[1].Cells[1]
	require.NotNil(t, origin.ColSpan)
	require.NotNil(t, origin.RowSpan)
	assert.Equal(t, 2, *origin.ColSpan)
	assert.Equal(t, 2, *origin.RowSpan)
	assert.Equal(t, 1, origin.Col)

	blank := rows[2].Cells[0]
	assert.Equal(t, models.CellTypeText, blank.Type)
	assert.Equal(t, "", blank.DisplayValue)
	assert.False(t, blank.IsMergeOrigin())
	assert.Equal(t, 2, rows[2].Index)
}

func TestReadNotFound(t *testing.T) {
	_, err := Read(nil, models.Region{}, Options{})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = Read(&models.SourceSheet{}, models.Region{StartRow: 2, EndRow: 1}, Options{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestReadRowHeights(t *testing.T) {
	sheet := textSheet([][]string{{"x"}, {"y"}})
	sheet.RowHeights = map[int]float64{1: 30}

	rows, err := Read(sheet, models.Region{EndRow: 1}, Options{})
	require.NoError(t, err)
	assert.Nil(t, rows[0].Height)
	require.NotNil(t, rows[1].Height)
	assert.Equal(t, 30.0, *rows[1].Height)
}

func TestClassify(t *testing.T) {
	sum := models.RawCell{Value: models.NumberValue(300), Formula: "SUM(B2:B3)"}

	typ, formula := Classify(sum, true)
	assert.Equal(t, models.CellTypeFormula, typ)
	require.NotNil(t, formula)
	assert.Equal(t, "SUM(B2:B3)", *formula)

	typ, formula = Classify(sum, false)
	assert.Equal(t, models.CellTypeNumber, typ)
	assert.Nil(t, formula)

	tests := []struct {
		value    models.Value
		expected models.CellType
	}{
		{models.TextValue("x"), models.CellTypeText},
		{models.NumberValue(1), models.CellTypeNumber},
		{models.BoolValue(true), models.CellTypeBoolean},
		{models.DateValue(time.Now()), models.CellTypeDate},
	}
	for _, tt := range tests {
		typ, formula := Classify(models.RawCell{Value: tt.value}, true)
		assert.Equal(t, tt.expected, typ)
		assert.Nil(t, formula)
	}
}

func TestFormat(t *testing.T) {
	two := 2
	zero := 0
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      models.RawCell
		opts     Options
		expected string
	}{
		{"source formatting", models.RawCell{Value: models.NumberValue(1234.5), Formatted: "1,234.50"}, Options{}, "1,234.50"},
		{"precision discards formatting", models.RawCell{Value: models.NumberValue(3.14159), Formatted: "3.14159"}, Options{NumberPrecision: &two}, "3.14"},
		{"precision zero", models.RawCell{Value: models.NumberValue(2.5)}, Options{NumberPrecision: &zero}, "3"},
		{"trailing zeros dropped", models.RawCell{Value: models.NumberValue(1.499)}, Options{NumberPrecision: &two}, "1.5"},
		{"precision ignores text", models.RawCell{Value: models.TextValue("abc")}, Options{NumberPrecision: &two}, "abc"},
		{"date pattern", models.RawCell{Value: models.DateValue(date), Formatted: "3/5/24"}, Options{DateFormat: "YYYY.MM.DD"}, "2024.03.05"},
		{"korean date pattern", models.RawCell{Value: models.DateValue(date)}, Options{DateFormat: "YYYY년 MM월 DD일"}, "2024년 03월 05일"},
		{"date without pattern uses source", models.RawCell{Value: models.DateValue(date), Formatted: "3/5/24"}, Options{}, "3/5/24"},
		{"date default", models.RawCell{Value: models.DateValue(date)}, Options{}, "2024-03-05"},
		{"bool default", models.RawCell{Value: models.BoolValue(false)}, Options{}, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, display := Format(tt.raw, tt.opts)
			assert.Equal(t, tt.expected, display)
		})
	}

	v, _ := Format(models.RawCell{Value: models.NumberValue(3.14159)}, Options{NumberPrecision: &two})
	assert.Equal(t, 3.14, v.Number)
}

func TestResolve(t *testing.T) {
	used := models.Region{EndRow: 4, EndCol: 3}
	wb := &models.SourceWorkbook{Sheets: []models.SourceSheet{
		{Name: "요약", UsedRange: &used, PrintAreas: []models.Region{{EndRow: 1, EndCol: 1}}},
		{Name: "빈시트"},
	}}

	sheet, region, err := Resolve(wb, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "요약", sheet.Name)
	assert.Equal(t, used, region)

	_, region, err = Resolve(wb, "요약", "", true)
	require.NoError(t, err)
	assert.Equal(t, models.Region{EndRow: 1, EndCol: 1}, region)

	_, region, err = Resolve(wb, "요약", "B2:C3", true)
	require.NoError(t, err)
	assert.Equal(t, models.Region{StartRow: 1, StartCol: 1, EndRow: 2, EndCol: 2}, region)

	for _, tc := range []struct{ sheet, ref string }{
		{"없음", ""},
		{"요약", "not-a-range"},
		{"빈시트", ""},
	} {
		_, _, err := Resolve(wb, tc.sheet, tc.ref, false)
		assert.True(t, errors.Is(err, ErrNotFound), "%s %s", tc.sheet, tc.ref)
	}
}

func TestMergeElisionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	const size = 8
	grid := make([][]string, size)
	for r := range grid {
		grid[r] = make([]string, size)
		for c := range grid[r] {
			if (r+c)%3 != 0 {
				grid[r][c] = "v"
			}
		}
	}

	properties.Property("a merge yields exactly one cell with its spans", prop.ForAll(
		func(r0, c0, h, w int) bool {
			m := models.Region{StartRow: r0, StartCol: c0, EndRow: min(r0+h, size-1), EndCol: min(c0+w, size-1)}
			rows, err := Read(textSheet(grid, m), models.Region{EndRow: size - 1, EndCol: size - 1}, Options{})
			if err != nil {
				return false
			}

			inside, total := 0, 0
			for _, row := range rows {
				total += len(row.Cells)
				for _, cell := range row.Cells {
					if !m.Contains(row.Index, cell.Col) {
						continue
					}
					inside++
					cols, spanRows := cell.Spans()
					if !m.IsOrigin(row.Index, cell.Col) || cols != m.Cols() || spanRows != m.Rows() {
						return false
					}
				}
			}
			return inside == 1 && total == size*size-m.Rows()*m.Cols()+1
		},
		gen.IntRange(0, size-1),
		gen.IntRange(0, size-1),
		gen.IntRange(0, 3),
		gen.IntRange(0, 3),
	))

	properties.Property("blank addresses outside merges are explicit empty cells", prop.ForAll(
		func(r0, c0 int) bool {
			m := models.Region{StartRow: r0, StartCol: c0, EndRow: min(r0+1, size-1), EndCol: min(c0+1, size-1)}
			rows, err := Read(textSheet(grid, m), models.Region{EndRow: size - 1, EndCol: size - 1}, Options{})
			if err != nil {
				return false
			}
			seen := make(map[models.Coord]bool)
			for _, row := range rows {
				for _, cell := range row.Cells {
					seen[models.Coord{Row: row.Index, Col: cell.Col}] = true
				}
			}
			for r := 0; r < size; r++ {
				for c := 0; c < size; c++ {
					if m.Contains(r, c) {
						if !m.IsOrigin(r, c) && seen[models.Coord{Row: r, Col: c}] {
							return false
						}
						continue
					}
					if !seen[models.Coord{Row: r, Col: c}] {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, size-1),
		gen.IntRange(0, size-1),
	))

	properties.TestingRun(t)
}

func TestRound(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		precision int
		want      float64
	}{
		{"two decimals", 3.14159, 2, 3.14},
		{"half away from zero", -2.5, 0, -3},
		{"negative precision", 7.6, -1, 8},
		{"huge precision is capped", 1.5, 400, 1.5},
		{"scaling overflow keeps the value", 1e300, 20, 1e300},
		{"max float", math.MaxFloat64, 2, math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.x, tt.precision)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
			assert.Equal(t, tt.want, got)
		})
	}
}
