package document

import (
	"errors"
	"os"

	"github.com/zjrosen/scribe/internal/log"
)

// Save writes doc to path, truncating any existing content. On success the
// document becomes unmodified and is bound to path.
func Save(path string, doc *Document) error {
	if path == "" {
		return &Error{Op: "save", Err: errors.Join(ErrSaveFailed, errors.New("no path"))}
	}
	if err := os.WriteFile(path, []byte(doc.String()), 0o644); err != nil { //nolint:gosec // G306: user document, not a secret
		log.ErrorErr(log.CatBuffer, "Failed to write file", err, "path", path)
		return &Error{Op: "save", Path: path, Err: errors.Join(ErrSaveFailed, err)}
	}

	doc.path = path
	doc.saved = doc.saved[:0]
	doc.saved = append(doc.saved, doc.text...)
	doc.modified = false
	doc.modRev = doc.rev
	doc.modValid = true

	log.Info(log.CatBuffer, "Saved document", "path", path, "runes", len(doc.text))
	return nil
}

// Save writes the document back to its own path.
func (d *Document) Save() error {
	return Save(d.path, d)
}
