// Package document holds the text buffer being edited.
//
// A Document is a sequence of runes split into lines by '\n'. The buffer
// always ends with exactly one trailing terminator so that every offset in
// [0, Len()] is addressable by the cursor. Offsets everywhere are rune
// indices.
package document

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/zjrosen/scribe/internal/log"
)

// Document is an in-memory text buffer loaded from (and saved to) one path.
type Document struct {
	id   uuid.UUID
	path string
	text []rune
	rev  uint64

	saved []rune

	// modification cache, valid while modRev == rev
	modRev   uint64
	modValid bool
	modified bool
}

// Load reads path into a new Document. CRLF line endings become LF and a
// missing final newline is appended.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the file the user asked to edit
	if err != nil {
		log.ErrorErr(log.CatBuffer, "Failed to read file", err, "path", path)
		return nil, &Error{Op: "load", Path: path, Err: errors.Join(ErrOpenFailed, err)}
	}
	if !utf8.Valid(data) {
		log.Warn(log.CatBuffer, "Rejected non UTF-8 file", "path", path)
		return nil, &Error{Op: "load", Path: path, Err: ErrParseFailed}
	}

	d := newDocument(path, normalize(data))
	log.Debug(log.CatBuffer, "Loaded document", "path", path, "runes", len(d.text))
	return d, nil
}

// Open loads path, or returns an empty document bound to path when the file
// does not exist yet. It is created on the first Save.
func Open(path string) (*Document, error) {
	d, err := Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		log.Info(log.CatBuffer, "Opening new file", "path", path)
		return New(path), nil
	}
	return d, err
}

// New returns an empty document ("\n") bound to path.
func New(path string) *Document {
	return newDocument(path, []rune{'\n'})
}

// FromString builds an unbound document from s, normalized like Load.
func FromString(s string) *Document {
	return newDocument("", normalize([]byte(s)))
}

func newDocument(path string, text []rune) *Document {
	saved := make([]rune, len(text))
	copy(saved, text)
	return &Document{
		id:    uuid.New(),
		path:  path,
		text:  text,
		saved: saved,
	}
}

func normalize(data []byte) []rune {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return []rune(string(data))
}

// ID uniquely identifies this document instance.
func (d *Document) ID() string { return d.id.String() }

// Path is the file the document was loaded from. Empty for FromString.
func (d *Document) Path() string { return d.path }

// Revision increases on every successful mutation.
func (d *Document) Revision() uint64 { return d.rev }

// Len returns the number of runes in the buffer.
func (d *Document) Len() int { return len(d.text) }

// String returns the whole buffer.
func (d *Document) String() string { return string(d.text) }

// Runes exposes the underlying buffer. Callers must not modify it.
func (d *Document) Runes() []rune { return d.text }

// RuneAt returns the rune at off.
func (d *Document) RuneAt(off int) (rune, error) {
	if off < 0 || off >= len(d.text) {
		return 0, rangeError("rune-at", "offset %d not in [0,%d)", off, len(d.text))
	}
	return d.text[off], nil
}

// Slice returns a copy of runes [lo, hi).
func (d *Document) Slice(lo, hi int) ([]rune, error) {
	if lo < 0 || hi < lo || hi > len(d.text) {
		return nil, rangeError("slice", "[%d,%d) not within [0,%d]", lo, hi, len(d.text))
	}
	out := make([]rune, hi-lo)
	copy(out, d.text[lo:hi])
	return out, nil
}

// Insert places rs at off. off == Len() is rejected so the trailing
// terminator stays last.
func (d *Document) Insert(off int, rs []rune) error {
	if off < 0 || off >= len(d.text) {
		return rangeError("insert", "offset %d not in [0,%d)", off, len(d.text))
	}
	if len(rs) == 0 {
		return nil
	}
	text := make([]rune, 0, len(d.text)+len(rs))
	text = append(text, d.text[:off]...)
	text = append(text, rs...)
	text = append(text, d.text[off:]...)
	d.text = text
	d.rev++
	return nil
}

// Delete removes n runes starting at off and returns them. Removing the
// final terminator is refused.
func (d *Document) Delete(off, n int) ([]rune, error) {
	if n < 0 || off < 0 || off+n > len(d.text)-1 {
		return nil, rangeError("delete", "[%d,%d) reaches past the final terminator at %d", off, off+n, len(d.text)-1)
	}
	if n == 0 {
		return nil, nil
	}
	removed := make([]rune, n)
	copy(removed, d.text[off:off+n])
	d.text = append(d.text[:off], d.text[off+n:]...)
	d.rev++
	return removed, nil
}

// Modified reports whether the buffer differs from what was last loaded or saved.
func (d *Document) Modified() bool {
	if d.modValid && d.modRev == d.rev {
		return d.modified
	}
	d.modified = !equalRunes(d.text, d.saved)
	d.modRev = d.rev
	d.modValid = true
	return d.modified
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
