package editor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zjrosen/scribe/internal/history"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/notify"
)

// apply records c and moves the cursor to where c leaves it.
func (e *Editor) apply(c history.Change) bool {
	off, err := e.hist.Apply(e.buf, c)
	if err != nil {
		e.fail("Edit failed", err)
		return false
	}
	e.afterEdit(off)
	return true
}

func (e *Editor) afterEdit(off int) {
	e.sel.Clear()
	e.nav.Reveal(&e.state, off)
	e.search.Refresh(e.buf)
}

// replaceSelection deletes an active selection as its own change. It reports
// whether anything was deleted.
func (e *Editor) replaceSelection() bool {
	if !e.sel.Active() {
		return false
	}
	c, ok := e.sel.Delete(e.buf.Runes(), e.Offset())
	if !ok {
		return false
	}
	return e.apply(c)
}

func (e *Editor) typeRunes(rs ...rune) {
	e.replaceSelection()
	if len(rs) == 1 {
		e.apply(history.NewInsertChar(e.Offset(), rs[0]))
		return
	}
	e.apply(history.NewInsertText(e.Offset(), rs))
}

// lineText is the cursor's line including its terminator.
func (e *Editor) lineText() string {
	text := e.buf.Runes()
	off := e.Offset()
	lo, hi := off, off
	for lo > 0 && text[lo-1] != '\n' {
		lo--
	}
	for hi < len(text) && text[hi] != '\n' {
		hi++
	}
	return string(text[lo:min(hi+1, len(text))])
}

func (e *Editor) copy() {
	text, ok := e.sel.Text(e.buf.Runes())
	if !ok {
		text = e.lineText()
	}
	if err := e.clip.WriteAll(text); err != nil {
		e.fail("Copy failed", err)
		return
	}
	log.Debug(log.CatClipboard, "Copied", "runes", len([]rune(text)))
	e.setStatus(notify.Info(fmt.Sprintf("Copied %d characters", len([]rune(text)))))
}

func (e *Editor) cut() {
	if text, ok := e.sel.Text(e.buf.Runes()); ok {
		if err := e.clip.WriteAll(text); err != nil {
			e.fail("Cut failed", err)
			return
		}
		e.replaceSelection()
		return
	}

	line := e.lineText()
	c, err := history.NewCutLine(e.buf.Runes(), e.Offset())
	if err != nil {
		return
	}
	if err := e.clip.WriteAll(line); err != nil {
		e.fail("Cut failed", err)
		return
	}
	e.apply(c)
}

func (e *Editor) paste() {
	text, err := e.clip.ReadAll()
	if err != nil {
		e.fail("Paste failed", err)
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return
	}
	e.replaceSelection()
	e.apply(history.NewPaste(e.Offset(), []rune(text)))
}

func (e *Editor) undo() {
	e.sel.Clear()
	off, ok, err := e.hist.Undo(e.buf)
	switch {
	case err != nil:
		e.fail("Undo failed", err)
	case !ok:
		e.setStatus(notify.Info("Nothing to undo"))
	default:
		e.afterEdit(off)
	}
}

func (e *Editor) redo() {
	e.sel.Clear()
	off, ok, err := e.hist.Redo(e.buf)
	switch {
	case err != nil:
		e.fail("Redo failed", err)
	case !ok:
		e.setStatus(notify.Info("Nothing to redo"))
	default:
		e.afterEdit(off)
	}
}

func (e *Editor) save() {
	if !e.buf.Modified() && e.buf.Path() != "" {
		e.setStatus(notify.Info("No changes to save"))
		return
	}
	if err := e.buf.Save(); err != nil {
		e.fail("Save failed", err)
		return
	}
	e.setStatus(notify.Info("Saved " + filepath.Base(e.buf.Path())))
}

func (e *Editor) requestQuit() {
	if !e.buf.Modified() {
		e.quit = true
		return
	}
	e.openModal(ModalConfirmQuit, false)
}
