package vt

import "github.com/Gaurav-Gosain/tuimux/internal/geom"

// Line is one row of cells.
type Line []Cell

// Grid is a fixed-size rectangle of cells. All methods ignore coordinates
// outside the grid.
type Grid struct {
	size geom.Size
	rows []Line
}

// NewGrid returns a grid filled with blank cells.
func NewGrid(size geom.Size) *Grid {
	g := &Grid{size: size, rows: make([]Line, size.Rows)}
	for i := range g.rows {
		g.rows[i] = newLine(size.Cols, blankCell)
	}
	return g
}

func newLine(cols int, blank Cell) Line {
	l := make(Line, cols)
	for i := range l {
		l[i] = blank
	}
	return l
}

// Size returns the grid dimensions.
func (g *Grid) Size() geom.Size { return g.size }

// Row returns row i. The returned line is shared with the grid.
func (g *Grid) Row(i int) Line {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	return g.rows[i]
}

// Cell returns the cell at p, or a blank cell outside the grid.
func (g *Grid) Cell(p geom.Point) Cell {
	if !g.size.Contains(p) {
		return blankCell
	}
	return g.rows[p.Row][p.Col]
}

// Put writes c at p. Wide cells claim the next column too, and any wide
// rune that is partly overwritten is blanked.
func (g *Grid) Put(p geom.Point, c Cell, blank Cell) {
	if !g.size.Contains(p) {
		return
	}
	row := g.rows[p.Row]
	g.unsplit(row, p.Col, blank)
	if c.Width == 2 && p.Col+1 < len(row) {
		g.unsplit(row, p.Col+1, blank)
	}
	row[p.Col] = c
	if c.Width == 2 && p.Col+1 < len(row) {
		spill := c
		spill.Rune = 0
		spill.Width = 0
		row[p.Col+1] = spill
	}
}

// unsplit blanks the other half of a wide rune that occupies col.
func (g *Grid) unsplit(row Line, col int, blank Cell) {
	switch row[col].Width {
	case 0:
		if col > 0 {
			row[col-1] = blank
		}
	case 2:
		if col+1 < len(row) {
			row[col+1] = blank
		}
	}
}

// Fill sets every cell to blank.
func (g *Grid) Fill(blank Cell) {
	for i := range g.rows {
		g.clear(i, 0, g.size.Cols, blank, false)
	}
}

// Clear blanks the half-open column span [from, to) of row. When selective
// is set, protected cells are kept.
func (g *Grid) Clear(row, from, to int, blank Cell, selective bool) {
	if row < 0 || row >= g.size.Rows {
		return
	}
	g.clear(row, geom.Clamp(from, 0, g.size.Cols), geom.Clamp(to, 0, g.size.Cols), blank, selective)
}

func (g *Grid) clear(row, from, to int, blank Cell, selective bool) {
	line := g.rows[row]
	for x := from; x < to; x++ {
		if selective && line[x].Attrs&AttrProtected != 0 {
			continue
		}
		line[x] = blank
	}
}

// ScrollUp shifts rows [top, bottom] up by n. The n rows that leave the top
// of the span are returned, oldest first; blank rows enter at the bottom.
func (g *Grid) ScrollUp(top, bottom, n int, blank Cell) []Line {
	if !g.validSpan(top, bottom) || n <= 0 {
		return nil
	}
	n = min(n, bottom-top+1)
	evicted := make([]Line, n)
	copy(evicted, g.rows[top:top+n])
	copy(g.rows[top:], g.rows[top+n:bottom+1])
	for i := bottom - n + 1; i <= bottom; i++ {
		g.rows[i] = newLine(g.size.Cols, blank)
	}
	return evicted
}

// ScrollDown shifts rows [top, bottom] down by n, discarding the rows pushed
// past bottom; blank rows enter at the top.
func (g *Grid) ScrollDown(top, bottom, n int, blank Cell) {
	if !g.validSpan(top, bottom) || n <= 0 {
		return
	}
	n = min(n, bottom-top+1)
	copy(g.rows[top+n:bottom+1], g.rows[top:bottom+1-n])
	for i := top; i < top+n; i++ {
		g.rows[i] = newLine(g.size.Cols, blank)
	}
}

func (g *Grid) validSpan(top, bottom int) bool {
	return top >= 0 && bottom < g.size.Rows && top <= bottom
}

// InsertCells shifts the cells of row at and after col right by n. Cells
// pushed past the right edge are lost.
func (g *Grid) InsertCells(row, col, n int, blank Cell) {
	if !g.size.Contains(geom.Pt(row, col)) || n <= 0 {
		return
	}
	line := g.rows[row]
	n = min(n, len(line)-col)
	g.unsplit(line, col, blank)
	copy(line[col+n:], line[col:len(line)-n])
	for x := col; x < col+n; x++ {
		line[x] = blank
	}
	if last := len(line) - 1; line[last].Width == 2 {
		line[last] = blank
	}
}

// DeleteCells removes n cells at col, pulling the rest of row left.
func (g *Grid) DeleteCells(row, col, n int, blank Cell) {
	if !g.size.Contains(geom.Pt(row, col)) || n <= 0 {
		return
	}
	line := g.rows[row]
	n = min(n, len(line)-col)
	g.unsplit(line, col, blank)
	if col+n < len(line) {
		g.unsplit(line, col+n, blank)
	}
	copy(line[col:], line[col+n:])
	for x := len(line) - n; x < len(line); x++ {
		line[x] = blank
	}
}

// Resize clips or pads the grid to size. Content keeps its top-left anchor.
func (g *Grid) Resize(size geom.Size) {
	rows := make([]Line, size.Rows)
	for i := range rows {
		if i < len(g.rows) {
			old := g.rows[i]
			line := newLine(size.Cols, blankCell)
			copy(line, old)
			if size.Cols < len(old) && size.Cols > 0 && line[size.Cols-1].Width == 2 {
				line[size.Cols-1] = blankCell
			}
			rows[i] = line
			continue
		}
		rows[i] = newLine(size.Cols, blankCell)
	}
	g.rows = rows
	g.size = size
}

// Text returns row i as plain text with trailing blanks removed.
func (g *Grid) Text(i int) string {
	return lineText(g.Row(i))
}
