package history

import "fmt"

func lineBounds(text []rune, cursor int) (start, end int) {
	start = cursor
	for start > 0 && text[start-1] != '\n' {
		start--
	}
	end = cursor
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return start, end
}

func checkCursor(text []rune, cursor int) error {
	if cursor < 0 || cursor >= len(text) {
		return fmt.Errorf("%w: cursor %d outside buffer of %d", ErrRefused, cursor, len(text))
	}
	return nil
}

func clone(rs []rune) []rune {
	out := make([]rune, len(rs))
	copy(out, rs)
	return out
}

// NewDelete removes the rune under cursor. The final terminator cannot be deleted.
func NewDelete(text []rune, cursor int) (*Delete, error) {
	if err := checkCursor(text, cursor); err != nil {
		return nil, err
	}
	if cursor == len(text)-1 {
		return nil, fmt.Errorf("%w: final terminator", ErrRefused)
	}
	return &Delete{removal{Offset: cursor, Text: []rune{text[cursor]}, Cursor: cursor}}, nil
}

// NewBackspace removes the rune before cursor.
func NewBackspace(text []rune, cursor int) (*Backspace, error) {
	if err := checkCursor(text, cursor); err != nil {
		return nil, err
	}
	if cursor == 0 {
		return nil, fmt.Errorf("%w: start of buffer", ErrRefused)
	}
	return &Backspace{removal{Offset: cursor - 1, Text: []rune{text[cursor-1]}, Cursor: cursor}}, nil
}

// NewDeleteWord removes from the nearest space before cursor on its line
// (inclusive) up to cursor. Without such a space nothing is removed.
func NewDeleteWord(text []rune, cursor int) (*DeleteWord, error) {
	if err := checkCursor(text, cursor); err != nil {
		return nil, err
	}
	ls, _ := lineBounds(text, cursor)
	from := -1
	for i := cursor - 1; i >= ls; i-- {
		if text[i] == ' ' {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, fmt.Errorf("%w: no space before cursor", ErrRefused)
	}
	return &DeleteWord{removal{Offset: from, Text: clone(text[from:cursor]), Cursor: cursor}}, nil
}

// NewCutLine removes the cursor's line including its terminator. When that
// terminator is the final one, the preceding terminator goes instead, and on
// a single-line buffer only the content is removed.
func NewCutLine(text []rune, cursor int) (*CutLine, error) {
	if err := checkCursor(text, cursor); err != nil {
		return nil, err
	}
	ls, le := lineBounds(text, cursor)

	lo, hi := ls, le+1
	if le == len(text)-1 {
		if ls == 0 {
			hi = le
		} else {
			lo, hi = ls-1, le
		}
	}
	if lo == hi {
		return nil, fmt.Errorf("%w: empty buffer", ErrRefused)
	}
	return &CutLine{removal{Offset: lo, Text: clone(text[lo:hi]), Cursor: cursor}}, nil
}

// NewInsertLineAbove opens a line above the cursor's line.
func NewInsertLineAbove(text []rune, cursor int) (*InsertLineAbove, error) {
	if err := checkCursor(text, cursor); err != nil {
		return nil, err
	}
	ls, _ := lineBounds(text, cursor)
	return &InsertLineAbove{insertion{Offset: ls, Text: []rune{'\n'}}, cursor}, nil
}

// NewInsertLineBelow opens a line below the cursor's line.
func NewInsertLineBelow(text []rune, cursor int) (*InsertLineBelow, error) {
	if err := checkCursor(text, cursor); err != nil {
		return nil, err
	}
	_, le := lineBounds(text, cursor)
	return &InsertLineBelow{insertion{Offset: le, Text: []rune{'\n'}}, cursor}, nil
}
