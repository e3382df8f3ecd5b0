package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

func TestTOCEntries(t *testing.T) {
	long := &models.Table{Rows: make([]models.Row, 30)}
	sections := []models.Section{
		{Title: "개요"},
		{Title: "재무", Table: long},
		{Title: "기술", Subsections: []models.Section{{Title: "a"}, {Title: "b"}}},
		{Title: "팀"},
	}
	entries := tocEntries(sections)
	pages := make([]int, len(entries))
	for i, e := range entries {
		pages[i] = e.Page
	}
	// 1 page, 1+2 pages for 30 rows, 1+2 pages for two subsections
	assert.Equal(t, []int{3, 4, 7, 10}, pages)
	assert.Equal(t, "2. 재무 ......................................... 4", entries[1].String())
}

func TestEstimatePagesShortTable(t *testing.T) {
	assert.Equal(t, 1, estimatePages(models.Section{Table: &models.Table{Rows: make([]models.Row, 20)}}))
	assert.Equal(t, 2, estimatePages(models.Section{Table: &models.Table{Rows: make([]models.Row, 21)}}))
}

func TestCountTables(t *testing.T) {
	sections := []models.Section{
		{Title: "a", Table: &models.Table{}},
		{Title: "b", Subsections: []models.Section{
			{Title: "b1", Table: &models.Table{}},
			{Title: "b2", Subsections: []models.Section{{Title: "b2x", Table: &models.Table{}}}},
		}},
	}
	assert.Equal(t, 3, countTables(sections))
	assert.Zero(t, countTables(nil))
}
