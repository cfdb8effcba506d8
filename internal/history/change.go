// Package history records reversible edits and implements undo/redo.
package history

import (
	"errors"
)

// ErrRefused is returned when a change cannot be built at the cursor, such
// as Backspace at the start of the buffer or Delete on the final terminator.
var ErrRefused = errors.New("edit refused")

// Buffer is the mutable side of a document.
type Buffer interface {
	Insert(off int, rs []rune) error
	Delete(off, n int) ([]rune, error)
}

// Change is one reversible edit. Apply and Revert must be exact inverses.
//
// Before is the cursor offset to restore on undo and After the cursor offset
// once the change is (re)applied.
type Change interface {
	Apply(buf Buffer) error
	Revert(buf Buffer) error
	Before() int
	After() int
	Kind() string
}

// ============================================================================
// Base structs shared by the concrete changes
// ============================================================================

// insertion inserts Text at Offset.
type insertion struct {
	Offset int
	Text   []rune
}

func (c insertion) Apply(buf Buffer) error { return buf.Insert(c.Offset, c.Text) }

func (c insertion) Revert(buf Buffer) error {
	_, err := buf.Delete(c.Offset, len(c.Text))
	return err
}

func (c insertion) Before() int { return c.Offset }
func (c insertion) After() int  { return c.Offset + len(c.Text) }

// removal removes Text from Offset. Cursor is where the cursor was when the
// removal was requested.
type removal struct {
	Offset int
	Text   []rune
	Cursor int
}

func (c removal) Apply(buf Buffer) error {
	_, err := buf.Delete(c.Offset, len(c.Text))
	return err
}

func (c removal) Revert(buf Buffer) error { return buf.Insert(c.Offset, c.Text) }
func (c removal) Before() int             { return c.Cursor }
func (c removal) After() int              { return c.Offset }

// ============================================================================
// Insertions
// ============================================================================

// InsertChar types one rune at the cursor.
type InsertChar struct{ insertion }

// NewInsertChar inserts r at off.
func NewInsertChar(off int, r rune) *InsertChar {
	return &InsertChar{insertion{Offset: off, Text: []rune{r}}}
}

func (*InsertChar) Kind() string { return "insert-char" }

// InsertText inserts a run of runes typed as one unit (tab expansion).
type InsertText struct{ insertion }

// NewInsertText inserts text at off as a single undo step.
func NewInsertText(off int, text []rune) *InsertText {
	return &InsertText{insertion{Offset: off, Text: text}}
}

func (*InsertText) Kind() string { return "insert-text" }

// Enter splits the line at the cursor.
type Enter struct{ insertion }

// NewEnter inserts a line terminator at off.
func NewEnter(off int) *Enter {
	return &Enter{insertion{Offset: off, Text: []rune{'\n'}}}
}

func (*Enter) Kind() string { return "enter" }

// Paste inserts clipboard text at the cursor.
type Paste struct{ insertion }

// NewPaste inserts clipboard text at off.
func NewPaste(off int, text []rune) *Paste {
	return &Paste{insertion{Offset: off, Text: text}}
}

func (*Paste) Kind() string { return "paste" }

// InsertLineAbove opens an empty line above the cursor's line. The cursor
// lands on the new line.
type InsertLineAbove struct {
	insertion
	Cursor int
}

func (c *InsertLineAbove) Kind() string { return "insert-line-above" }
func (c *InsertLineAbove) Before() int  { return c.Cursor }
func (c *InsertLineAbove) After() int   { return c.Offset }

// InsertLineBelow opens an empty line below the cursor's line. The cursor
// lands on the new line.
type InsertLineBelow struct {
	insertion
	Cursor int
}

func (c *InsertLineBelow) Kind() string { return "insert-line-below" }
func (c *InsertLineBelow) Before() int  { return c.Cursor }

// ============================================================================
// Removals
// ============================================================================

// Delete removes the rune under the cursor.
type Delete struct{ removal }

func (*Delete) Kind() string { return "delete" }

// Backspace removes the rune before the cursor.
type Backspace struct{ removal }

func (*Backspace) Kind() string { return "backspace" }

// DeleteWord removes from the previous space on the line up to the cursor.
type DeleteWord struct{ removal }

func (*DeleteWord) Kind() string { return "delete-word" }

// DeleteSelection removes a selected span.
type DeleteSelection struct{ removal }

// NewDeleteSelection removes text starting at lo. cursor is restored on undo.
func NewDeleteSelection(lo int, text []rune, cursor int) *DeleteSelection {
	return &DeleteSelection{removal{Offset: lo, Text: text, Cursor: cursor}}
}

func (*DeleteSelection) Kind() string { return "delete-selection" }

// CutLine removes the cursor's whole line.
type CutLine struct{ removal }

func (*CutLine) Kind() string { return "cut-line" }

// Removed returns the text the cut took out of the buffer.
func (c *CutLine) Removed() []rune { return c.Text }
