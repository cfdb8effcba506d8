// Package navigator moves the cursor and scrolls the viewport.
//
// Every motion is bounded: hitting an edge of the line or of the document is
// a no-op, never an error. The viewport height is set by the frontend.
package navigator

import (
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/mapper"
)

// State is the cursor together with the window it is relative to.
type State struct {
	Viewport mapper.Viewport
	Cursor   mapper.Position
}

// Line is the logical line under the cursor.
func (s State) Line() int { return s.Viewport.First + s.Cursor.Row }

// Navigator applies motions to a State using a document's line structure.
type Navigator struct {
	m *mapper.Mapper
}

// New returns a navigator over m.
func New(m *mapper.Mapper) *Navigator {
	return &Navigator{m: m}
}

func (n *Navigator) lineLen(line int) int {
	l, err := n.m.LineLen(line)
	if err != nil {
		return 0
	}
	return l
}

func (n *Navigator) lineRunes(line int) []rune {
	start, err := n.m.LineStart(line)
	if err != nil {
		return nil
	}
	return n.m.Text()[start : start+n.lineLen(line)]
}

// Offset returns the buffer offset under the cursor.
func (n *Navigator) Offset(s *State) (int, error) {
	return n.m.OffsetOf(s.Viewport, s.Cursor)
}

// SetHeight resizes the window, scrolling if needed to keep the cursor visible.
func (n *Navigator) SetHeight(s *State, height int) {
	s.Viewport.Height = max(height, 1)
	if s.Cursor.Row >= s.Viewport.Height {
		s.Viewport.First += s.Cursor.Row - s.Viewport.Height + 1
		s.Cursor.Row = s.Viewport.Height - 1
	}
}

// Left moves one column left, stopping at column 0.
func (n *Navigator) Left(s *State) {
	if s.Cursor.Col > 0 {
		s.Cursor.Col--
	}
}

// Right moves one column right, stopping on the line terminator.
func (n *Navigator) Right(s *State) {
	if s.Cursor.Col < n.lineLen(s.Line()) {
		s.Cursor.Col++
	}
}

// Up moves to the previous line. At the top row the window scrolls up one
// line and the cursor resets to the top-left.
func (n *Navigator) Up(s *State) {
	switch {
	case s.Cursor.Row > 0:
		s.Cursor.Row--
		s.Cursor.Col = min(s.Cursor.Col, n.lineLen(s.Line()))
	case s.Viewport.First > 0:
		s.Viewport.First--
		s.Cursor = mapper.Position{}
		log.Debug(log.CatNav, "Scrolled up", "first", s.Viewport.First)
	}
}

// Down moves to the next line, never past the line holding the final
// terminator. At the bottom row the window scrolls down one line and the
// cursor resets to the bottom-left.
func (n *Navigator) Down(s *State) {
	if s.Line() >= n.m.LastLine() {
		return
	}
	height := max(s.Viewport.Height, 1)
	if s.Cursor.Row < height-1 {
		s.Cursor.Row++
		s.Cursor.Col = min(s.Cursor.Col, n.lineLen(s.Line()))
		return
	}
	s.Viewport.First++
	s.Cursor = mapper.Position{Row: height - 1}
	log.Debug(log.CatNav, "Scrolled down", "first", s.Viewport.First)
}

// WordLeft moves onto the nearest space before the cursor on this line.
func (n *Navigator) WordLeft(s *State) {
	line := n.lineRunes(s.Line())
	for i := min(s.Cursor.Col, len(line)) - 1; i >= 0; i-- {
		if line[i] == ' ' {
			s.Cursor.Col = i
			return
		}
	}
}

// WordRight moves just past the nearest space at or after the cursor.
func (n *Navigator) WordRight(s *State) {
	line := n.lineRunes(s.Line())
	for i := s.Cursor.Col; i < len(line); i++ {
		if line[i] == ' ' {
			s.Cursor.Col = i + 1
			return
		}
	}
}

// Home moves to column 0.
func (n *Navigator) Home(s *State) { s.Cursor.Col = 0 }

// End moves onto the line terminator.
func (n *Navigator) End(s *State) { s.Cursor.Col = n.lineLen(s.Line()) }

// PageUp scrolls one window up.
func (n *Navigator) PageUp(s *State) {
	s.Viewport.First = max(s.Viewport.First-max(s.Viewport.Height, 1), 0)
	s.Cursor = mapper.Position{}
}

// PageDown scrolls one window down, never past the last line.
func (n *Navigator) PageDown(s *State) {
	s.Viewport.First = min(s.Viewport.First+max(s.Viewport.Height, 1), n.m.LastLine())
	s.Cursor = mapper.Position{}
}

// Top shows the first line with the cursor at its start.
func (n *Navigator) Top(s *State) {
	s.Viewport.First = 0
	s.Cursor = mapper.Position{}
}

// Bottom shows the last line with the cursor at its start.
func (n *Navigator) Bottom(s *State) {
	s.Viewport.First = n.m.LastLine()
	s.Cursor = mapper.Position{}
}

// GoToLine scrolls so 1-based line is first, clamped to the document.
func (n *Navigator) GoToLine(s *State, line int) {
	line = min(max(line, 1), n.m.LastLine()+1)
	s.Viewport.First = line - 1
	s.Cursor = mapper.Position{}
	log.Debug(log.CatNav, "Go to line", "line", line)
}

// Scroll moves the window by delta lines, clamped to [0, LastLine]. The cursor
// keeps its buffer line when that line stays visible and is otherwise pulled
// to the nearest visible line.
func (n *Navigator) Scroll(s *State, delta int) {
	last := n.m.LastLine()
	first := min(max(s.Viewport.First+delta, 0), last)
	if first == s.Viewport.First {
		return
	}
	bottom := min(first+max(s.Viewport.Height, 1)-1, last)
	line := min(max(s.Line(), first), bottom)

	s.Viewport.First = first
	s.Cursor.Row = line - first
	s.Cursor.Col = min(s.Cursor.Col, n.lineLen(line))
	log.Debug(log.CatNav, "Scrolled", "first", first, "delta", delta)
}

// Reveal puts the cursor on off, scrolling the minimum needed to show it.
// Offsets are clamped to the buffer.
func (n *Navigator) Reveal(s *State, off int) {
	off = min(max(off, 0), max(len(n.m.Text())-1, 0))
	line, err := n.m.LineOf(off)
	if err != nil {
		return
	}
	start, _ := n.m.LineStart(line)
	height := max(s.Viewport.Height, 1)

	switch {
	case line < s.Viewport.First:
		s.Viewport.First = line
	case line > s.Viewport.First+height-1:
		s.Viewport.First = line - height + 1
	}
	s.Cursor = mapper.Position{Col: off - start, Row: line - s.Viewport.First}
}

// Jump shows line at the top of the window with the cursor on col.
func (n *Navigator) Jump(s *State, line, col int) {
	line = min(max(line, 0), n.m.LastLine())
	s.Viewport.First = line
	s.Cursor = mapper.Position{Col: min(max(col, 0), n.lineLen(line))}
}
