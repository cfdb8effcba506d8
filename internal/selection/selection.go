// Package selection tracks the anchored text selection and mouse drags.
package selection

import (
	"time"

	"github.com/zjrosen/scribe/internal/history"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/mapper"
)

// DefaultDragThreshold is how long the button must be held before motion
// starts a drag-selection instead of being treated as part of a click.
const DefaultDragThreshold = 100 * time.Millisecond

// Endpoint is one end of a selection.
type Endpoint struct {
	Offset int
	Pos    mapper.Position
}

// Manager holds at most one selection. The anchor stays put while the moving
// endpoint follows the cursor.
type Manager struct {
	anchor Endpoint
	moving Endpoint
	set    bool

	threshold time.Duration
	pressed   bool
	pressAt   time.Time
	pressEP   Endpoint
	dragging  bool
}

// New returns a manager using threshold for drag detection. A non-positive
// threshold uses DefaultDragThreshold.
func New(threshold time.Duration) *Manager {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Manager{threshold: threshold}
}

// Extend anchors a selection at cur on the first call and moves the other
// endpoint to cur on later calls.
func (m *Manager) Extend(cur Endpoint) {
	if !m.set {
		m.anchor, m.moving, m.set = cur, cur, true
		return
	}
	m.moving = cur
}

// Clear drops the selection.
func (m *Manager) Clear() {
	m.set = false
	m.anchor, m.moving = Endpoint{}, Endpoint{}
}

// Anchored reports whether an anchor has been captured, even if the
// selection is still zero-width.
func (m *Manager) Anchored() bool { return m.set }

// Active reports whether a non-empty selection exists.
func (m *Manager) Active() bool {
	return m.set && m.anchor.Offset != m.moving.Offset
}

// Range returns the endpoints ordered by offset.
func (m *Manager) Range() (lo, hi Endpoint, ok bool) {
	if !m.Active() {
		return Endpoint{}, Endpoint{}, false
	}
	if m.anchor.Offset <= m.moving.Offset {
		return m.anchor, m.moving, true
	}
	return m.moving, m.anchor, true
}

// Span returns the selected runes as [lo, hi) over a buffer of textLen runes.
// Both endpoint cells are included; the final terminator never is.
func (m *Manager) Span(textLen int) (lo, hi int, ok bool) {
	a, b, ok := m.Range()
	if !ok {
		return 0, 0, false
	}
	lo = max(a.Offset, 0)
	hi = min(b.Offset+1, textLen-1)
	if lo >= hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Contains reports whether off is inside the selection.
func (m *Manager) Contains(off, textLen int) bool {
	lo, hi, ok := m.Span(textLen)
	return ok && off >= lo && off < hi
}

// Text returns the selected text.
func (m *Manager) Text(text []rune) (string, bool) {
	lo, hi, ok := m.Span(len(text))
	if !ok {
		return "", false
	}
	return string(text[lo:hi]), true
}

// Delete builds the single change removing the selection. cursor is where
// undo should put the cursor back.
func (m *Manager) Delete(text []rune, cursor int) (*history.DeleteSelection, bool) {
	lo, hi, ok := m.Span(len(text))
	if !ok {
		return nil, false
	}
	removed := make([]rune, hi-lo)
	copy(removed, text[lo:hi])
	log.Debug(log.CatSelection, "Deleting selection", "lo", lo, "hi", hi)
	return history.NewDeleteSelection(lo, removed, cursor), true
}

// ============================================================================
// Mouse
// ============================================================================

// Press records a button press at ep. Any selection is cleared.
func (m *Manager) Press(ep Endpoint, at time.Time) {
	m.Clear()
	m.pressed = true
	m.pressAt = at
	m.pressEP = ep
	m.dragging = false
}

// Motion reports the pointer at ep while the button is held. Once the hold
// reaches the threshold the press point becomes the anchor and ep the moving
// endpoint. It returns true while a drag is in progress.
func (m *Manager) Motion(ep Endpoint, at time.Time) bool {
	if !m.pressed {
		return false
	}
	if !m.dragging {
		if at.Sub(m.pressAt) < m.threshold {
			return false
		}
		m.dragging = true
		m.Extend(m.pressEP)
		log.Debug(log.CatSelection, "Drag started", "anchor", m.pressEP.Offset)
	}
	m.Extend(ep)
	return true
}

// Release ends the gesture. It returns true when the gesture was a click
// (no drag started).
func (m *Manager) Release() bool {
	click := m.pressed && !m.dragging
	m.pressed = false
	m.dragging = false
	return click
}

// Pressed reports whether the button is held.
func (m *Manager) Pressed() bool { return m.pressed }

// Dragging reports whether a drag-selection is in progress.
func (m *Manager) Dragging() bool { return m.dragging }
