package mapper

import "fmt"

// LineCount counts lines in text without an index.
func LineCount(text []rune) int {
	n := 1
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// LastLine is the line holding the final terminator of text.
func LastLine(text []rune) int { return max(LineCount(text)-2, 0) }

// ScanOffsetOf is OffsetOf computed by walking terminators from the start of
// the buffer.
func ScanOffsetOf(text []rune, vp Viewport, pos Position) (int, error) {
	if pos.Row < 0 || pos.Col < 0 || vp.First < 0 {
		return 0, fmt.Errorf("%w: position %+v", ErrIndexOutOfRange, pos)
	}
	target := vp.First + pos.Row
	line, start := 0, 0
	for i := 0; i < len(text) && line < target; i++ {
		if text[i] == '\n' {
			line++
			start = i + 1
		}
	}
	if line < target {
		return 0, fmt.Errorf("%w: line %d", ErrIndexOutOfRange, target)
	}
	end := start
	for end < len(text) && text[end] != '\n' {
		end++
	}
	if pos.Col > end-start {
		return 0, fmt.Errorf("%w: column %d", ErrIndexOutOfRange, pos.Col)
	}
	return start + pos.Col, nil
}

// ScanPositionOf is PositionOf computed by walking the buffer up to off.
func ScanPositionOf(text []rune, vp Viewport, off int) (Position, error) {
	if off < 0 || off > len(text) {
		return Position{}, fmt.Errorf("%w: offset %d", ErrIndexOutOfRange, off)
	}
	line, start := 0, 0
	for i := 0; i < off; i++ {
		if text[i] == '\n' {
			line++
			start = i + 1
		}
	}
	return Position{Col: off - start, Row: line - vp.First}, nil
}
