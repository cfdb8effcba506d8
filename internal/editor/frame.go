package editor

import (
	"github.com/zjrosen/scribe/internal/mapper"
)

// Span is a half-open range of buffer offsets.
type Span struct {
	Lo, Hi int
}

// Contains reports whether off is inside the span.
func (s Span) Contains(off int) bool { return off >= s.Lo && off < s.Hi }

// Frame is everything a renderer needs for one draw.
type Frame struct {
	Cells    []mapper.Cell
	Viewport mapper.Viewport

	Cursor       mapper.Position
	CursorOffset int
	Line, Col    int // 1-based, for the status line
	LineCount    int

	Selection    Span
	HasSelection bool
	Matches      []Span // visible search matches
	CurrentMatch Span

	Modal Modal

	Path         string
	Modified     bool
	CursorLine   bool
	EOFIndicator bool
	EOFOffset    int // offset of the final terminator
}

// Frame lays out the visible window.
func (e *Editor) Frame() Frame {
	off := e.Offset()
	f := Frame{
		Cells:        e.m.Layout(e.state.Viewport, e.meas),
		Viewport:     e.state.Viewport,
		Cursor:       e.state.Cursor,
		CursorOffset: off,
		Line:         e.state.Line() + 1,
		Col:          e.state.Cursor.Col + 1,
		LineCount:    e.m.LastLine() + 1,
		Modal:        e.modal,
		Path:         e.buf.Path(),
		Modified:     e.buf.Modified(),
		CursorLine:   e.opts.CursorLine,
		EOFIndicator: e.opts.EOFIndicator,
		EOFOffset:    e.buf.Len() - 1,
	}

	if lo, hi, ok := e.sel.Span(e.buf.Len()); ok {
		f.Selection = Span{Lo: lo, Hi: hi}
		f.HasSelection = true
	}

	n := e.search.QueryLen()
	vp := e.state.Viewport
	for line := vp.First; line <= vp.Last(); line++ {
		for _, m := range e.search.Highlights(line) {
			f.Matches = append(f.Matches, Span{Lo: m.Offset, Hi: m.Offset + n})
		}
	}
	if m, ok := e.search.Current(); ok && n > 0 {
		f.CurrentMatch = Span{Lo: m.Offset, Hi: m.Offset + n}
	}
	return f
}
