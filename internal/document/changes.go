package document

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeSummary counts runes added and removed relative to the saved state.
type ChangeSummary struct {
	Inserted int
	Deleted  int
}

// IsZero reports whether nothing changed.
func (c ChangeSummary) IsZero() bool { return c.Inserted == 0 && c.Deleted == 0 }

// Changes diffs the buffer against its last saved state.
func (d *Document) Changes() ChangeSummary {
	if !d.Modified() {
		return ChangeSummary{}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(d.saved), string(d.text), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sum ChangeSummary
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			sum.Inserted += utf8.RuneCountInString(diff.Text)
		case diffmatchpatch.DiffDelete:
			sum.Deleted += utf8.RuneCountInString(diff.Text)
		case diffmatchpatch.DiffEqual:
		}
	}
	return sum
}
