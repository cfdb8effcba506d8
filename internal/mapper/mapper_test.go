package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/scribe/internal/document"
)

func TestLineCountAndLastLine(t *testing.T) {
	tests := []struct {
		text      string
		lineCount int
		lastLine  int
	}{
		{"\n", 2, 0},
		{"abc\n", 2, 0},
		{"a\nb\n", 3, 1},
		{"line1\nline2\nline3\n", 4, 2},
		{"\n\n\n", 4, 2},
	}
	for _, tt := range tests {
		d := document.FromString(tt.text)
		m := New(d)
		require.Equal(t, tt.lineCount, m.LineCount(), tt.text)
		require.Equal(t, tt.lastLine, m.LastLine(), tt.text)
		require.Equal(t, tt.lineCount, LineCount(d.Runes()))
		require.Equal(t, tt.lastLine, LastLine(d.Runes()))
	}
}

func TestOffsetOf(t *testing.T) {
	m := New(document.FromString("ab\ncde\n\nf\n"))

	off, err := m.OffsetOf(Viewport{First: 0, Height: 10}, Position{Col: 2, Row: 1})
	require.NoError(t, err)
	require.Equal(t, 5, off)

	off, err = m.OffsetOf(Viewport{First: 1, Height: 10}, Position{Col: 3, Row: 0})
	require.NoError(t, err)
	require.Equal(t, 6, off, "terminator cell is addressable")

	off, err = m.OffsetOf(Viewport{First: 2, Height: 10}, Position{Col: 0, Row: 1})
	require.NoError(t, err)
	require.Equal(t, 8, off)

	_, err = m.OffsetOf(Viewport{First: 0, Height: 10}, Position{Col: 3, Row: 0})
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = m.OffsetOf(Viewport{First: 0, Height: 10}, Position{Col: 0, Row: 9})
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPositionOf(t *testing.T) {
	d := document.FromString("ab\ncde\n")
	m := New(d)

	pos, err := m.PositionOf(Viewport{First: 1, Height: 5}, 4)
	require.NoError(t, err)
	require.Equal(t, Position{Col: 1, Row: 0}, pos)

	pos, err = m.PositionOf(Viewport{First: 0, Height: 5}, d.Len())
	require.NoError(t, err)
	require.Equal(t, Position{Col: 0, Row: 2}, pos, "end of buffer is column 0 of the line after the final terminator")

	_, err = m.PositionOf(Viewport{}, d.Len()+1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestOutOfRange_SharesDocumentSentinel(t *testing.T) {
	d := document.FromString("ab\ncde\n")
	m := New(d)
	vp := Viewport{First: 0, Height: 5}

	tests := []struct {
		name string
		call func() error
	}{
		{"offset of column past line", func() error {
			_, err := m.OffsetOf(vp, Position{Col: 9, Row: 0})
			return err
		}},
		{"position of offset past end", func() error {
			_, err := m.PositionOf(vp, d.Len()+1)
			return err
		}},
		{"scan offset of missing line", func() error {
			_, err := ScanOffsetOf(d.Runes(), vp, Position{Row: 9})
			return err
		}},
		{"scan position of negative offset", func() error {
			_, err := ScanPositionOf(d.Runes(), vp, -1)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.ErrorIs(t, err, ErrIndexOutOfRange)
			require.ErrorIs(t, err, document.ErrIndexOutOfRange)
		})
	}
}

func TestMapper_ReindexesOnRevision(t *testing.T) {
	d := document.FromString("ab\n")
	m := New(d)
	require.Equal(t, 2, m.LineCount())

	require.NoError(t, d.Insert(1, []rune("\n\n")))
	require.Equal(t, 4, m.LineCount())

	n, err := m.LineLen(2)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestLineOf(t *testing.T) {
	m := New(document.FromString("ab\n\ncd\n"))
	for off, want := range []int{0, 0, 0, 1, 2, 2, 2, 3} {
		got, err := m.LineOf(off)
		require.NoError(t, err)
		require.Equal(t, want, got, "offset %d", off)
	}
}

func textGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[ab \n\t]{0,60}`)
}

func TestProperty_OffsetRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := document.FromString(textGen().Draw(rt, "text"))
		m := New(d)

		off := rapid.IntRange(0, d.Len()).Draw(rt, "offset")
		line, err := m.LineOf(off)
		require.NoError(rt, err)
		vp := Viewport{First: rapid.IntRange(0, line).Draw(rt, "first"), Height: 50}

		pos, err := m.PositionOf(vp, off)
		require.NoError(rt, err)
		back, err := m.OffsetOf(vp, pos)
		require.NoError(rt, err)
		require.Equal(rt, off, back)
	})
}

func TestProperty_IndexMatchesScan(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := document.FromString(textGen().Draw(rt, "text"))
		m := New(d)
		text := d.Runes()

		off := rapid.IntRange(0, d.Len()).Draw(rt, "offset")
		vp := Viewport{First: rapid.IntRange(0, m.LineCount()-1).Draw(rt, "first"), Height: 10}

		got, err := m.PositionOf(vp, off)
		require.NoError(rt, err)
		want, err := ScanPositionOf(text, vp, off)
		require.NoError(rt, err)
		require.Equal(rt, want, got)

		pos := Position{
			Col: rapid.IntRange(0, 20).Draw(rt, "col"),
			Row: rapid.IntRange(0, 20).Draw(rt, "row"),
		}
		gotOff, gotErr := m.OffsetOf(vp, pos)
		wantOff, wantErr := ScanOffsetOf(text, vp, pos)
		require.Equal(rt, wantErr == nil, gotErr == nil, "pos %+v", pos)
		if wantErr == nil {
			require.Equal(rt, wantOff, gotOff)
		}
		require.Equal(rt, LineCount(text), m.LineCount())
	})
}

func TestLayout(t *testing.T) {
	m := New(document.FromString("a\tb\n世\nxyz\n"))
	cells := m.Layout(Viewport{First: 0, Height: 2}, TerminalMeasurer{TabWidth: 4})

	require.Len(t, cells, 6)
	require.Equal(t, Cell{Char: '\t', Offset: 1, Col: 1, Row: 0, X: 1, Width: 4, Height: 1}, cells[1])
	require.Equal(t, Cell{Char: 'b', Offset: 2, Col: 2, Row: 0, X: 5, Width: 1, Height: 1}, cells[2])
	require.Equal(t, Cell{Char: '世', Offset: 4, Col: 0, Row: 1, X: 0, Width: 2, Height: 1}, cells[4])
	require.Equal(t, Cell{Char: '\n', Offset: 5, Col: 1, Row: 1, X: 2, Width: 1, Height: 1}, cells[5])
}

func TestLayout_StopsAtLastLine(t *testing.T) {
	m := New(document.FromString("a\n"))
	cells := m.Layout(Viewport{First: 0, Height: 10}, TerminalMeasurer{TabWidth: 4})
	require.Len(t, cells, 2)
}

func TestHitTest(t *testing.T) {
	m := New(document.FromString("a世b\nxy\n"))
	meas := TerminalMeasurer{TabWidth: 4}
	vp := Viewport{First: 0, Height: 5}

	require.Equal(t, Position{Col: 0, Row: 0}, m.HitTest(vp, meas, 0, 0))
	require.Equal(t, Position{Col: 1, Row: 0}, m.HitTest(vp, meas, 2, 0), "second cell of a wide rune")
	require.Equal(t, Position{Col: 2, Row: 0}, m.HitTest(vp, meas, 3, 0))
	require.Equal(t, Position{Col: 3, Row: 0}, m.HitTest(vp, meas, 40, 0), "past end lands on terminator")
	require.Equal(t, Position{Col: 2, Row: 1}, m.HitTest(vp, meas, 9, 7), "below the text lands on the last line")
}
