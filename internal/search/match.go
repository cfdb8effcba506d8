// Package search finds query occurrences in a document and steps through them.
package search

import (
	"unicode"
)

// Match is one occurrence of the query.
type Match struct {
	Number int // position in the result list, counting from 0
	Offset int // buffer offset of the first rune
	Col    int // rune column within the line
	Line   int // logical line
}

// Direction selects which way Find steps through results.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// FindAll returns every non-overlapping occurrence of query in text, line by
// line, left to right. Case-insensitive matching folds each rune with
// unicode.ToLower so columns stay aligned with the original text.
func FindAll(text []rune, query []rune, caseSensitive bool) []Match {
	if len(query) == 0 {
		return nil
	}
	if !caseSensitive {
		query = lower(query)
	}

	var matches []Match
	line, start := 0, 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		content := text[start:i]
		if !caseSensitive {
			content = lower(content)
		}
		for col := 0; col+len(query) <= len(content); {
			if equal(content[col:col+len(query)], query) {
				matches = append(matches, Match{Number: len(matches), Offset: start + col, Col: col, Line: line})
				col += len(query)
				continue
			}
			col++
		}
		line++
		start = i + 1
	}
	return matches
}

func lower(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func equal(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
