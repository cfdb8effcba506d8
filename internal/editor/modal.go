package editor

import (
	"fmt"
	"strconv"

	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/notify"
	"github.com/zjrosen/scribe/internal/search"
)

// ModalKind identifies an open prompt.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalGoToLine
	ModalFind
	ModalHelp
	ModalConfirmQuit
)

// Modal is the state of an open prompt. While one is open, input goes to
// HandleModal instead of Dispatch.
type Modal struct {
	Kind          ModalKind
	Input         []rune
	CaseSensitive bool // for ModalFind
}

// Prompt is the label shown in front of the input.
func (m Modal) Prompt() string {
	switch m.Kind {
	case ModalGoToLine:
		return "Go to line: "
	case ModalFind:
		if m.CaseSensitive {
			return "Find: "
		}
		return "Find (ignore case): "
	case ModalConfirmQuit:
		return "Unsaved changes. Quit anyway? (y/n) "
	case ModalHelp:
		return "Help (esc to close)"
	default:
		return ""
	}
}

// ModalKey is a key understood by prompts.
type ModalKey int

const (
	KeyRune ModalKey = iota
	KeyBackspace
	KeyEnter
	KeyShiftEnter
	KeyEscape
)

// ModalInput is one input event for an open prompt.
type ModalInput struct {
	Key  ModalKey
	Char rune
}

// Modal returns the open prompt, if any.
func (e *Editor) Modal() Modal { return e.modal }

func (e *Editor) openModal(kind ModalKind, caseSensitive bool) {
	e.modal = Modal{Kind: kind, CaseSensitive: caseSensitive}
	if kind == ModalFind {
		if q, _ := e.search.Query(); q != "" {
			e.modal.Input = []rune(q)
		}
	}
	if kind == ModalConfirmQuit {
		c := e.buf.Changes()
		e.setStatus(notify.Warn(fmt.Sprintf("%d characters added, %d removed since last save", c.Inserted, c.Deleted)))
	}
	log.Debug(log.CatUI, "Opened modal", "kind", kind)
}

func (e *Editor) closeModal() {
	e.modal = Modal{}
}

// HandleModal feeds one input to the open prompt.
func (e *Editor) HandleModal(in ModalInput) {
	switch e.modal.Kind {
	case ModalGoToLine:
		e.handleGoToLine(in)
	case ModalFind:
		e.handleFind(in)
	case ModalHelp:
		if in.Key == KeyEscape || in.Key == KeyEnter {
			e.closeModal()
		}
	case ModalConfirmQuit:
		e.handleConfirmQuit(in)
	case ModalNone:
	}
}

func (e *Editor) handleGoToLine(in ModalInput) {
	switch in.Key {
	case KeyRune:
		if in.Char >= '0' && in.Char <= '9' && len(e.modal.Input) < 9 {
			e.modal.Input = append(e.modal.Input, in.Char)
		}
	case KeyBackspace:
		if n := len(e.modal.Input); n > 0 {
			e.modal.Input = e.modal.Input[:n-1]
		}
	case KeyEnter, KeyShiftEnter:
		input := string(e.modal.Input)
		e.closeModal()
		if input == "" {
			return
		}
		n, err := strconv.Atoi(input)
		if err != nil {
			return
		}
		e.sel.Clear()
		e.nav.GoToLine(&e.state, n)
	case KeyEscape:
		e.closeModal()
	}
}

// handleFind edits the query on typing and only moves the cursor on
// Enter or Shift+Enter. Escape leaves the cursor where the last jump put it.
func (e *Editor) handleFind(in ModalInput) {
	switch in.Key {
	case KeyRune:
		e.modal.Input = append(e.modal.Input, in.Char)
	case KeyBackspace:
		if n := len(e.modal.Input); n > 0 {
			e.modal.Input = e.modal.Input[:n-1]
		}
	case KeyEnter:
		e.find(search.Forward)
	case KeyShiftEnter:
		e.find(search.Backward)
	case KeyEscape:
		e.closeModal()
	}
}

func (e *Editor) find(dir search.Direction) {
	query := string(e.modal.Input)
	if query == "" {
		return
	}
	m, ok := e.search.Find(e.buf, query, e.modal.CaseSensitive, dir)
	if !ok {
		e.setStatus(notify.Info(fmt.Sprintf("No matches for %q", query)))
		return
	}
	e.sel.Clear()
	e.nav.Jump(&e.state, m.Line, m.Col)
}

func (e *Editor) handleConfirmQuit(in ModalInput) {
	switch {
	case in.Key == KeyRune && (in.Char == 'y' || in.Char == 'Y'):
		e.closeModal()
		e.quit = true
	case in.Key == KeyRune && (in.Char == 'n' || in.Char == 'N'), in.Key == KeyEscape:
		e.closeModal()
	}
}
