// Package mapper translates between buffer offsets and viewport positions.
//
// Lines are delimited by '\n'. A buffer with k terminators has k+1 lines; the
// last one is empty and sits after the final terminator. Navigation never
// goes past LastLine, the line holding the final terminator.
package mapper

import (
	"fmt"
	"sort"

	"github.com/zjrosen/scribe/internal/document"
)

// ErrIndexOutOfRange is returned for offsets, lines or positions outside the
// buffer. It is the document package's sentinel, so one errors.Is check covers
// both layers.
var ErrIndexOutOfRange = document.ErrIndexOutOfRange

// Source is the read side of a document.
type Source interface {
	Runes() []rune
	Revision() uint64
}

// Viewport is the window of visible lines.
type Viewport struct {
	First  int // first visible logical line
	Height int // visible rows
}

// Last is the last visible line.
func (v Viewport) Last() int { return v.First + v.Height - 1 }

// Contains reports whether line is inside the window.
func (v Viewport) Contains(line int) bool { return line >= v.First && line <= v.Last() }

// Position is a cursor location relative to the viewport.
type Position struct {
	Col int // rune index within the line
	Row int // line index relative to Viewport.First
}

// Mapper answers offset/position queries against one document, keeping a
// line-start index that is rebuilt when the document revision changes.
type Mapper struct {
	src    Source
	starts []int
	rev    uint64
	built  bool
}

// New returns a mapper for src.
func New(src Source) *Mapper {
	return &Mapper{src: src}
}

// Text returns the runes of the mapped document.
func (m *Mapper) Text() []rune { return m.src.Runes() }

func (m *Mapper) index() []int {
	if m.built && m.rev == m.src.Revision() {
		return m.starts
	}
	text := m.src.Runes()
	starts := m.starts[:0]
	starts = append(starts, 0)
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	m.starts = starts
	m.rev = m.src.Revision()
	m.built = true
	return starts
}

// LineCount is 1 + the number of terminators.
func (m *Mapper) LineCount() int { return len(m.index()) }

// LastLine is the index of the line holding the final terminator.
func (m *Mapper) LastLine() int { return max(m.LineCount()-2, 0) }

// LineStart returns the offset of the first rune of line.
func (m *Mapper) LineStart(line int) (int, error) {
	starts := m.index()
	if line < 0 || line >= len(starts) {
		return 0, fmt.Errorf("%w: line %d of %d", ErrIndexOutOfRange, line, len(starts))
	}
	return starts[line], nil
}

// LineLen returns the number of runes on line, excluding its terminator.
func (m *Mapper) LineLen(line int) (int, error) {
	starts := m.index()
	if line < 0 || line >= len(starts) {
		return 0, fmt.Errorf("%w: line %d of %d", ErrIndexOutOfRange, line, len(starts))
	}
	if line == len(starts)-1 {
		return 0, nil
	}
	return starts[line+1] - starts[line] - 1, nil
}

// LineOf returns the line containing off, with off in [0, len].
func (m *Mapper) LineOf(off int) (int, error) {
	starts := m.index()
	if off < 0 || off > len(m.src.Runes()) {
		return 0, fmt.Errorf("%w: offset %d", ErrIndexOutOfRange, off)
	}
	// first start strictly greater than off, minus one
	return sort.SearchInts(starts, off+1) - 1, nil
}

// OffsetOf converts a viewport position to a buffer offset. The column may
// address the terminator cell (Col == LineLen).
func (m *Mapper) OffsetOf(vp Viewport, pos Position) (int, error) {
	if pos.Row < 0 || pos.Col < 0 || vp.First < 0 {
		return 0, fmt.Errorf("%w: position %+v", ErrIndexOutOfRange, pos)
	}
	line := vp.First + pos.Row
	start, err := m.LineStart(line)
	if err != nil {
		return 0, err
	}
	n, _ := m.LineLen(line)
	if pos.Col > n {
		return 0, fmt.Errorf("%w: column %d past line %d length %d", ErrIndexOutOfRange, pos.Col, line, n)
	}
	return start + pos.Col, nil
}

// PositionOf converts an offset to a viewport position. Row is negative or
// beyond the window when the offset is not visible.
func (m *Mapper) PositionOf(vp Viewport, off int) (Position, error) {
	line, err := m.LineOf(off)
	if err != nil {
		return Position{}, err
	}
	return Position{Col: off - m.starts[line], Row: line - vp.First}, nil
}
