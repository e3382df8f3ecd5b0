package docx

import (
	"fmt"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// Title page and contents occupy the first two pages.
const firstSectionPage = 3

const tocLeader = " ........................................."

type tocEntry struct {
	Title string
	Page  int
}

// String renders the entry the way it appears in the contents list.
func (e tocEntry) String() string {
	return fmt.Sprintf("%s%s %d", e.Title, tocLeader, e.Page)
}

// tocEntries numbers the top-level sections and estimates their start pages.
func tocEntries(sections []models.Section) []tocEntry {
	out := make([]tocEntry, 0, len(sections))
	page := firstSectionPage
	for i, s := range sections {
		out = append(out, tocEntry{Title: fmt.Sprintf("%d. %s", i+1, s.Title), Page: page})
		page += estimatePages(s)
	}
	return out
}

// estimatePages is a rough page count: one page per section, more for long
// tables, plus one per direct subsection.
func estimatePages(s models.Section) int {
	pages := 1
	if s.Table != nil && len(s.Table.Rows) > 20 {
		pages += (len(s.Table.Rows) + 24) / 25
	}
	return pages + len(s.Subsections)
}

func countTables(sections []models.Section) int {
	n := 0
	for _, s := range sections {
		if s.Table != nil {
			n++
		}
		n += countTables(s.Subsections)
	}
	return n
}
