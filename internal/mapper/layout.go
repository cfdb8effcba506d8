package mapper

import (
	"github.com/mattn/go-runewidth"
)

// Measurer reports glyph metrics for the rendering surface.
type Measurer interface {
	Width(r rune) int
	LineHeight() int
}

// TerminalMeasurer measures runes in terminal cells.
type TerminalMeasurer struct {
	TabWidth int
}

// Width returns the number of terminal columns r occupies. Terminators and
// zero-width runes take one cell so the cursor always has somewhere to sit.
func (m TerminalMeasurer) Width(r rune) int {
	if r == '\t' {
		return max(m.TabWidth, 1)
	}
	if r == '\n' {
		return 1
	}
	return max(runewidth.RuneWidth(r), 1)
}

// LineHeight is always one row in a terminal.
func (TerminalMeasurer) LineHeight() int { return 1 }

// Cell is one laid-out rune of the visible window.
type Cell struct {
	Char   rune
	Offset int
	Col    int
	Row    int
	X      int
	Width  int
	Height int
}

// Layout returns cells for every rune of the visible lines, terminators
// included, in buffer order.
func (m *Mapper) Layout(vp Viewport, meas Measurer) []Cell {
	text := m.src.Runes()
	starts := m.index()
	h := meas.LineHeight()

	var cells []Cell
	for row := 0; row < vp.Height; row++ {
		line := vp.First + row
		if line < 0 || line >= len(starts)-1 {
			break
		}
		x := 0
		for off := starts[line]; off < starts[line+1]; off++ {
			w := meas.Width(text[off])
			cells = append(cells, Cell{
				Char:   text[off],
				Offset: off,
				Col:    off - starts[line],
				Row:    row,
				X:      x,
				Width:  w,
				Height: h,
			})
			x += w
		}
	}
	return cells
}

// HitTest maps a screen point (x cells from the left, row from the top of the
// viewport) to a position. Points past the end of a line land on its
// terminator; rows past the last line land on LastLine.
func (m *Mapper) HitTest(vp Viewport, meas Measurer, x, row int) Position {
	row = max(row, 0)
	line := min(vp.First+row, m.LastLine())
	row = line - vp.First

	text := m.src.Runes()
	start, _ := m.LineStart(line)
	n, _ := m.LineLen(line)

	cx := 0
	for col := 0; col < n; col++ {
		w := meas.Width(text[start+col])
		if x < cx+w {
			return Position{Col: col, Row: row}
		}
		cx += w
	}
	return Position{Col: n, Row: row}
}
