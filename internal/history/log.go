package history

import (
	"github.com/zjrosen/scribe/internal/log"
)

// Log holds applied changes (done) and reverted ones available for redo
// (undone). Applying a new change discards the undone stack.
type Log struct {
	done   []Change
	undone []Change
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Apply performs c on buf and records it. It returns the cursor offset after
// the change. A failed change is not recorded.
func (l *Log) Apply(buf Buffer, c Change) (int, error) {
	if err := c.Apply(buf); err != nil {
		log.Debug(log.CatEdit, "Change refused", "kind", c.Kind(), "error", err)
		return 0, err
	}
	l.done = append(l.done, c)
	l.undone = l.undone[:0]
	log.Debug(log.CatEdit, "Applied change", "kind", c.Kind(), "done", len(l.done))
	return c.After(), nil
}

// Undo reverts the most recent change. ok is false when there is nothing to undo.
func (l *Log) Undo(buf Buffer) (cursor int, ok bool, err error) {
	if len(l.done) == 0 {
		return 0, false, nil
	}
	c := l.done[len(l.done)-1]
	if err := c.Revert(buf); err != nil {
		log.ErrorErr(log.CatEdit, "Undo failed", err, "kind", c.Kind())
		return 0, false, err
	}
	l.done = l.done[:len(l.done)-1]
	l.undone = append(l.undone, c)
	log.Debug(log.CatEdit, "Undid change", "kind", c.Kind())
	return c.Before(), true, nil
}

// Redo re-applies the most recently undone change.
func (l *Log) Redo(buf Buffer) (cursor int, ok bool, err error) {
	if len(l.undone) == 0 {
		return 0, false, nil
	}
	c := l.undone[len(l.undone)-1]
	if err := c.Apply(buf); err != nil {
		log.ErrorErr(log.CatEdit, "Redo failed", err, "kind", c.Kind())
		return 0, false, err
	}
	l.undone = l.undone[:len(l.undone)-1]
	l.done = append(l.done, c)
	log.Debug(log.CatEdit, "Redid change", "kind", c.Kind())
	return c.After(), true, nil
}

// CanUndo reports whether Undo would do anything.
func (l *Log) CanUndo() bool { return len(l.done) > 0 }

// CanRedo reports whether Redo would do anything.
func (l *Log) CanRedo() bool { return len(l.undone) > 0 }

// Done returns a copy of the applied changes, oldest first.
func (l *Log) Done() []Change { return append([]Change(nil), l.done...) }

// Undone returns a copy of the redo stack, oldest undo first.
func (l *Log) Undone() []Change { return append([]Change(nil), l.undone...) }

// Clear forgets all history.
func (l *Log) Clear() {
	l.done = nil
	l.undone = nil
}
