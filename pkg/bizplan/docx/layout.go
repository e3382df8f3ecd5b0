package docx

import "github.com/ukaji3/bizplan-go/pkg/bizplan/models"

type vmerge int

const (
	vmergeNone vmerge = iota
	vmergeRestart
	vmergeContinue
)

// slot is one emitted table cell occupying span grid columns.
type slot struct {
	cell  *models.Cell // nil for fillers and continuations
	span  int
	merge vmerge
}

type gridRow struct {
	row       *models.Row
	header    bool
	alternate bool
	slots     []slot
}

// grid is a table laid out on a fixed column grid. Every row covers all
// columns; merged regions become horizontal spans plus vertical-merge
// continuation slots in the rows below.
type grid struct {
	cols int
	rows []gridRow
	// clipped counts cells that fell outside the grid and were dropped.
	clipped int
}

type pendingMerge struct {
	col, span, left int
}

// layoutTable places header and data rows on a grid of t.TotalCols columns.
// Spans reaching past the grid or past the last present row are clamped.
// Rows whose Index values do not increase are placed positionally.
func layoutTable(t *models.Table) grid {
	rows := t.AllRows()
	g := grid{cols: gridWidth(t, rows)}
	if g.cols == 0 || len(rows) == 0 {
		return g
	}

	idx := rowIndexes(rows)
	var pending []pendingMerge

	for p := range rows {
		gr := gridRow{
			row:       &rows[p],
			header:    p < len(t.Headers),
			alternate: p >= len(t.Headers) && (p-len(t.Headers))%2 == 1,
		}

		occupied := make([]bool, g.cols)
		starts := make(map[int]slot)
		next := pending[:0]
		for _, m := range pending {
			starts[m.col] = slot{span: m.span, merge: vmergeContinue}
			for c := m.col; c < m.col+m.span; c++ {
				occupied[c] = true
			}
			if m.left--; m.left > 0 {
				next = append(next, m)
			}
		}
		pending = next

		cursor := 0
		for i := range rows[p].Cells {
			cell := &rows[p].Cells[i]
			c := max(cell.Col, cursor)
			for c < g.cols && occupied[c] {
				c++
			}
			if c >= g.cols {
				g.clipped++
				continue
			}
			cs, rs := cell.Spans()
			span := 1
			for span < cs && c+span < g.cols && !occupied[c+span] {
				span++
			}
			for k := c; k < c+span; k++ {
				occupied[k] = true
			}
			cursor = c + span

			s := slot{cell: cell, span: span}
			if below := rowsCovered(idx, p, rs); below > 0 {
				s.merge = vmergeRestart
				pending = append(pending, pendingMerge{col: c, span: span, left: below})
			}
			starts[c] = s
		}

		for c := 0; c < g.cols; {
			s, ok := starts[c]
			if !ok {
				s = slot{span: 1}
			}
			gr.slots = append(gr.slots, s)
			c += s.span
		}
		g.rows = append(g.rows, gr)
	}
	return g
}

// rowsCovered counts the present rows after p that a rowspan of rs reaches.
func rowsCovered(idx []int, p, rs int) int {
	if rs <= 1 {
		return 0
	}
	n := 0
	for q := p + 1; q < len(idx) && idx[q] < idx[p]+rs; q++ {
		n++
	}
	return n
}

func rowIndexes(rows []models.Row) []int {
	idx := make([]int, len(rows))
	increasing := true
	for i, r := range rows {
		idx[i] = r.Index
		if i > 0 && r.Index <= rows[i-1].Index {
			increasing = false
		}
	}
	if !increasing {
		for i := range idx {
			idx[i] = i
		}
	}
	return idx
}

func gridWidth(t *models.Table, rows []models.Row) int {
	if t.TotalCols > 0 {
		return t.TotalCols
	}
	width := 0
	for _, r := range rows {
		cursor := 0
		for _, c := range r.Cells {
			cs, _ := c.Spans()
			cursor = max(cursor, c.Col) + cs
		}
		width = max(width, cursor)
	}
	return width
}
