package layout

import (
	"fyne.io/fyne/v2"

	"github.com/gridhost/widget-dashboard/internal/model"
)

// Placement positions one object on the grid. Column and Row are 1-based;
// zero means auto-placement. Spans below 1 are treated as 1.
type Placement struct {
	Column  int
	Row     int
	ColSpan int
	RowSpan int
}

// cell is a fully resolved placement
type cell struct {
	col, row         int
	colSpan, rowSpan int
}

// Grid is a fyne.Layout implementing a column grid with gaps, spans and
// auto-placement. Objects with an explicit column and row are positioned
// first, then objects pinned on a single axis keep that axis and
// auto-resolve the other; the rest flow row-major into the remaining free
// cells, the way a CSS grid places auto items.
type Grid struct {
	Columns int
	Gap     float32

	placements map[fyne.CanvasObject]Placement
}

// NewGrid creates a grid layout; columns and gap fall back to the model
// defaults when non-positive.
func NewGrid(columns int, gap float32) *Grid {
	if columns <= 0 {
		columns = model.DefaultGridColumns
	}
	if gap < 0 {
		gap = model.DefaultGridGap
	}
	return &Grid{
		Columns:    columns,
		Gap:        gap,
		placements: make(map[fyne.CanvasObject]Placement),
	}
}

// Place records the placement for obj. Objects without a recorded
// placement are auto-placed.
func (g *Grid) Place(obj fyne.CanvasObject, p Placement) {
	g.placements[obj] = p
}

func clampSpan(span, max int) int {
	if span < 1 {
		return 1
	}
	if span > max {
		return max
	}
	return span
}

// resolve computes the final cell for every object, in input order
func (g *Grid) resolve(objects []fyne.CanvasObject) map[fyne.CanvasObject]cell {
	resolved := make(map[fyne.CanvasObject]cell, len(objects))
	occupied := make(map[[2]int]bool)

	mark := func(c cell) {
		for r := c.row; r < c.row+c.rowSpan; r++ {
			for col := c.col; col < c.col+c.colSpan; col++ {
				occupied[[2]int{r, col}] = true
			}
		}
	}
	free := func(row, col, colSpan, rowSpan int) bool {
		if col+colSpan-1 > g.Columns {
			return false
		}
		for r := row; r < row+rowSpan; r++ {
			for c := col; c < col+colSpan; c++ {
				if occupied[[2]int{r, c}] {
					return false
				}
			}
		}
		return true
	}

	// Explicitly positioned objects claim their cells first
	for _, obj := range objects {
		p := g.placements[obj]
		if p.Column <= 0 || p.Row <= 0 {
			continue
		}
		c := cell{
			col:     p.Column,
			row:     p.Row,
			colSpan: clampSpan(p.ColSpan, g.Columns),
			rowSpan: clampSpan(p.RowSpan, 1<<20),
		}
		if c.col+c.colSpan-1 > g.Columns {
			c.col = g.Columns - c.colSpan + 1
		}
		mark(c)
		resolved[obj] = c
	}

	// Objects pinned on one axis keep it; the free axis scans for the
	// first slot that does not collide
	for _, obj := range objects {
		if _, ok := resolved[obj]; ok {
			continue
		}
		p := g.placements[obj]
		if p.Column <= 0 && p.Row <= 0 {
			continue
		}
		colSpan := clampSpan(p.ColSpan, g.Columns)
		rowSpan := clampSpan(p.RowSpan, 1<<20)

		var c cell
		if p.Column > 0 {
			col := p.Column
			if col+colSpan-1 > g.Columns {
				col = g.Columns - colSpan + 1
			}
			row := 1
			for !free(row, col, colSpan, rowSpan) {
				row++
			}
			c = cell{col: col, row: row, colSpan: colSpan, rowSpan: rowSpan}
		} else {
			col := 1
			for col+colSpan-1 <= g.Columns && !free(p.Row, col, colSpan, rowSpan) {
				col++
			}
			if col+colSpan-1 > g.Columns {
				// The pinned row is full; overlap at its start
				col = 1
			}
			c = cell{col: col, row: p.Row, colSpan: colSpan, rowSpan: rowSpan}
		}
		mark(c)
		resolved[obj] = c
	}

	// Remaining objects flow into the first free slot, row-major
	row, col := 1, 1
	for _, obj := range objects {
		if _, ok := resolved[obj]; ok {
			continue
		}
		p := g.placements[obj]
		colSpan := clampSpan(p.ColSpan, g.Columns)
		rowSpan := clampSpan(p.RowSpan, 1<<20)

		for !free(row, col, colSpan, rowSpan) {
			col++
			if col > g.Columns {
				col = 1
				row++
			}
		}
		c := cell{col: col, row: row, colSpan: colSpan, rowSpan: rowSpan}
		mark(c)
		resolved[obj] = c
	}

	return resolved
}

// rowHeights derives per-row heights from the children's minimum sizes.
// A spanning object contributes an even share to each row it covers.
func (g *Grid) rowHeights(objects []fyne.CanvasObject, resolved map[fyne.CanvasObject]cell) []float32 {
	rows := 0
	for _, c := range resolved {
		if end := c.row + c.rowSpan - 1; end > rows {
			rows = end
		}
	}
	heights := make([]float32, rows)
	for _, obj := range objects {
		c := resolved[obj]
		share := obj.MinSize().Height / float32(c.rowSpan)
		for r := c.row - 1; r < c.row+c.rowSpan-1; r++ {
			if share > heights[r] {
				heights[r] = share
			}
		}
	}
	return heights
}

// Layout implements fyne.Layout
func (g *Grid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	resolved := g.resolve(objects)
	heights := g.rowHeights(objects, resolved)

	cellWidth := (size.Width - g.Gap*float32(g.Columns-1)) / float32(g.Columns)
	if cellWidth < 0 {
		cellWidth = 0
	}

	offsets := make([]float32, len(heights)+1)
	for i, h := range heights {
		offsets[i+1] = offsets[i] + h + g.Gap
	}

	for _, obj := range objects {
		c := resolved[obj]
		x := float32(c.col-1) * (cellWidth + g.Gap)
		y := offsets[c.row-1]
		width := cellWidth*float32(c.colSpan) + g.Gap*float32(c.colSpan-1)
		height := offsets[c.row+c.rowSpan-1] - offsets[c.row-1] - g.Gap

		obj.Move(fyne.NewPos(x, y))
		obj.Resize(fyne.NewSize(width, height))
	}
}

// MinSize implements fyne.Layout
func (g *Grid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	resolved := g.resolve(objects)
	heights := g.rowHeights(objects, resolved)

	var minCell float32
	for _, obj := range objects {
		c := resolved[obj]
		perColumn := (obj.MinSize().Width - g.Gap*float32(c.colSpan-1)) / float32(c.colSpan)
		if perColumn > minCell {
			minCell = perColumn
		}
	}

	width := minCell*float32(g.Columns) + g.Gap*float32(g.Columns-1)
	var height float32
	for _, h := range heights {
		height += h
	}
	height += g.Gap * float32(len(heights)-1)
	return fyne.NewSize(width, height)
}
