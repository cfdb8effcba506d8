package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/scribe/internal/editor"
	"github.com/zjrosen/scribe/internal/mapper"
)

const (
	eofGlyph   = "∎"
	emptyRow   = "~"
	unnamedBuf = "[No Name]"
)

// View implements tea.Model.
func (m Model) View() string {
	f := m.ed.Frame()
	width := m.viewWidth()

	var rows []string
	if f.Modal.Kind == editor.ModalHelp {
		rows = m.helpRows()
	} else {
		rows = m.textRows(f, width)
	}

	if m.cfg.UI.ShowStatusBar {
		rows = append(rows, m.statusLine(f, width))
	} else if f.Modal.Kind != editor.ModalNone && len(rows) > 0 {
		// prompts take over the last text row
		rows[len(rows)-1] = m.statusLine(f, width)
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) helpRows() []string {
	lines := strings.Split(strings.TrimRight(m.helpView, "\n"), "\n")
	h := m.textHeight()
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return lines
}

// textRows renders each visible row, merging adjacent cells that share a
// highlight into one styled run.
func (m Model) textRows(f editor.Frame, width int) []string {
	h := m.textHeight()
	byRow := make([][]mapper.Cell, h)
	for _, c := range f.Cells {
		if c.Row >= 0 && c.Row < h {
			byRow[c.Row] = append(byRow[c.Row], c)
		}
	}

	rows := make([]string, h)
	for row, cells := range byRow {
		if len(cells) == 0 {
			if f.EOFIndicator {
				rows[row] = m.styles.eof.Render(emptyRow)
			}
			continue
		}
		rows[row] = m.renderRow(f, cells, row, width)
	}
	return rows
}

func (m Model) renderRow(f editor.Frame, cells []mapper.Cell, row, width int) string {
	onCursorLine := f.CursorLine && row == f.Cursor.Row
	lineKind := kindText
	if onCursorLine {
		lineKind = kindCursorLine
	}

	var (
		sb      strings.Builder
		run     strings.Builder
		runKind = cellKind(-1)
		used    int
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(m.styles.cells[runKind].Render(run.String()))
		run.Reset()
	}

	for _, c := range cells {
		kind := m.kindOf(f, c, lineKind)
		glyph := cellGlyph(c)
		if c.Char == '\n' && f.EOFIndicator && c.Offset == f.EOFOffset && kind != kindCursor {
			flush()
			sb.WriteString(m.styles.eof.Render(eofGlyph))
			runKind = -1
			used += c.Width
			continue
		}
		if kind != runKind {
			flush()
			runKind = kind
		}
		run.WriteString(glyph)
		used += c.Width
	}
	flush()

	out := sb.String()
	if used > width {
		out = ansi.Truncate(out, width, "")
	} else if onCursorLine {
		out += m.styles.cells[kindCursorLine].Render(strings.Repeat(" ", width-used))
	}
	return out
}

func (m Model) kindOf(f editor.Frame, c mapper.Cell, lineKind cellKind) cellKind {
	switch {
	case c.Offset == f.CursorOffset && f.Modal.Kind == editor.ModalNone:
		return kindCursor
	case f.HasSelection && f.Selection.Contains(c.Offset):
		return kindSelection
	case f.CurrentMatch.Contains(c.Offset):
		return kindCurrentMatch
	}
	for _, s := range f.Matches {
		if s.Contains(c.Offset) {
			return kindMatch
		}
	}
	return lineKind
}

func cellGlyph(c mapper.Cell) string {
	switch c.Char {
	case '\n':
		return " "
	case '\t':
		return strings.Repeat(" ", max(c.Width, 1))
	}
	return string(c.Char)
}

// statusLine shows the open prompt, or the file name and the latest status,
// with the cursor position on the right.
func (m Model) statusLine(f editor.Frame, width int) string {
	var left string
	switch f.Modal.Kind {
	case editor.ModalNone:
		left = " " + displayName(f.Path)
		if f.Modified {
			left += " [+]"
		}
		if m.status.Text != "" {
			left += "  " + m.status.Text
		}
	default:
		left = " " + f.Modal.Prompt() + string(f.Modal.Input)
	}
	right := fmt.Sprintf("Ln %d/%d, Col %d ", f.Line, f.LineCount, f.Col)

	rw := uniseg.StringWidth(right)
	if uniseg.StringWidth(left)+rw+1 > width {
		left = ansi.Truncate(left, max(width-rw-1, 0), "…")
	}
	gap := max(width-uniseg.StringWidth(left)-rw, 1)
	line := ansi.Truncate(left+strings.Repeat(" ", gap)+right, width, "")

	style := m.styles.statusBar
	if f.Modal.Kind == editor.ModalNone && m.status.Text != "" {
		style = m.styles.status(m.status.Severity)
	}
	return style.Render(line)
}

func displayName(path string) string {
	if path == "" {
		return unnamedBuf
	}
	return filepath.Base(path)
}
