package editor

import (
	"time"

	"github.com/zjrosen/scribe/internal/selection"
)

func (e *Editor) pointEndpoint(x, row int) selection.Endpoint {
	pos := e.m.HitTest(e.state.Viewport, e.meas, x, row)
	e.state.Cursor = pos
	return selection.Endpoint{Offset: e.Offset(), Pos: e.state.Cursor}
}

// MousePress moves the cursor to the clicked cell and arms drag detection.
// x is in screen cells from the left of the text area, row from its top.
func (e *Editor) MousePress(x, row int, at time.Time) {
	if e.modal.Kind != ModalNone {
		return
	}
	e.sel.Press(e.pointEndpoint(x, row), at)
}

// MouseMotion extends a drag-selection once the button has been held for
// the drag threshold.
func (e *Editor) MouseMotion(x, row int, at time.Time) {
	if e.modal.Kind != ModalNone || !e.sel.Pressed() {
		return
	}
	saved := e.state.Cursor
	ep := e.pointEndpoint(x, row)
	if !e.sel.Motion(ep, at) {
		e.state.Cursor = saved
	}
}

// MouseRelease ends a click or drag.
func (e *Editor) MouseRelease() {
	e.sel.Release()
}
