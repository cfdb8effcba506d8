package editor

import (
	"strings"

	"github.com/zjrosen/scribe/internal/history"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/notify"
)

// Action is a semantic editor operation.
type Action int

const (
	ActionNone Action = iota

	// motions
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	WordLeft
	WordRight
	Home
	End
	PageUp
	PageDown
	Top
	Bottom

	// edits
	InsertChar
	InsertText
	Tab
	Enter
	Backspace
	Delete
	DeleteWord
	InsertLineAbove
	InsertLineBelow
	Copy
	Cut
	Paste
	Undo
	Redo

	// session
	Save
	Quit
	GoToLine
	FindCaseSensitive
	FindCaseInsensitive
	Help
	ToggleCursorLine

	// view: the window moves, the selection stays
	ScrollUp
	ScrollDown
)

var actionNames = map[Action]string{
	ActionNone: "none", MoveLeft: "move-left", MoveRight: "move-right", MoveUp: "move-up",
	MoveDown: "move-down", WordLeft: "word-left", WordRight: "word-right", Home: "home",
	End: "end", PageUp: "page-up", PageDown: "page-down", Top: "top", Bottom: "bottom",
	InsertChar: "insert-char", InsertText: "insert-text", Tab: "tab", Enter: "enter", Backspace: "backspace",
	Delete: "delete", DeleteWord: "delete-word", InsertLineAbove: "insert-line-above",
	InsertLineBelow: "insert-line-below", Copy: "copy", Cut: "cut", Paste: "paste",
	Undo: "undo", Redo: "redo", Save: "save", Quit: "quit", GoToLine: "go-to-line",
	FindCaseSensitive: "find", FindCaseInsensitive: "find-insensitive", Help: "help",
	ToggleCursorLine: "toggle-cursor-line", ScrollUp: "scroll-up", ScrollDown: "scroll-down",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// IsMotion reports whether a moves the cursor without editing.
func (a Action) IsMotion() bool { return a >= MoveLeft && a <= Bottom }

// Command is one resolved input.
type Command struct {
	Action Action
	Extend bool // shift held: motions extend the selection
	Char   rune   // for InsertChar
	Text   string // for InsertText: a burst of typed or pasted runes
}

// Dispatch runs one command. It is ignored while a modal prompt is open.
func (e *Editor) Dispatch(cmd Command) {
	if e.modal.Kind != ModalNone {
		return
	}
	log.Debug(log.CatUI, "Dispatch", "action", cmd.Action, "extend", cmd.Extend)

	if cmd.Action.IsMotion() {
		e.move(cmd)
		return
	}

	switch cmd.Action {
	case InsertChar:
		e.typeRunes(cmd.Char)
	case InsertText:
		text := strings.ReplaceAll(cmd.Text, "\r\n", "\n")
		if text != "" {
			e.typeRunes([]rune(text)...)
		}
	case Tab:
		e.typeRunes([]rune(strings.Repeat(" ", e.opts.TabWidth))...)
	case Enter:
		e.replaceSelection()
		e.apply(history.NewEnter(e.Offset()))
	case Backspace:
		if e.replaceSelection() {
			return
		}
		if c, err := history.NewBackspace(e.buf.Runes(), e.Offset()); err == nil {
			e.apply(c)
		}
	case Delete:
		if e.replaceSelection() {
			return
		}
		if c, err := history.NewDelete(e.buf.Runes(), e.Offset()); err == nil {
			e.apply(c)
		}
	case DeleteWord:
		if c, err := history.NewDeleteWord(e.buf.Runes(), e.Offset()); err == nil {
			e.apply(c)
		}
	case InsertLineAbove:
		if c, err := history.NewInsertLineAbove(e.buf.Runes(), e.Offset()); err == nil {
			e.apply(c)
		}
	case InsertLineBelow:
		if c, err := history.NewInsertLineBelow(e.buf.Runes(), e.Offset()); err == nil {
			e.apply(c)
		}
	case Copy:
		e.copy()
	case Cut:
		e.cut()
	case Paste:
		e.paste()
	case Undo:
		e.undo()
	case Redo:
		e.redo()
	case Save:
		e.save()
	case Quit:
		e.requestQuit()
	case GoToLine:
		e.openModal(ModalGoToLine, false)
	case FindCaseSensitive:
		e.openModal(ModalFind, true)
	case FindCaseInsensitive:
		e.openModal(ModalFind, false)
	case Help:
		e.openModal(ModalHelp, false)
	case ToggleCursorLine:
		e.opts.CursorLine = !e.opts.CursorLine
		state := "off"
		if e.opts.CursorLine {
			state = "on"
		}
		e.setStatus(notify.Info("Cursor line " + state))
	case ScrollUp:
		e.nav.Scroll(&e.state, -1)
	case ScrollDown:
		e.nav.Scroll(&e.state, 1)
	case ActionNone:
	default:
		log.Warn(log.CatUI, "Unhandled action", "action", cmd.Action)
	}
}

func (e *Editor) move(cmd Command) {
	if cmd.Extend {
		if !e.sel.Anchored() {
			e.sel.Extend(e.endpoint())
		}
	} else {
		e.sel.Clear()
	}

	s := &e.state
	switch cmd.Action {
	case MoveLeft:
		e.nav.Left(s)
	case MoveRight:
		e.nav.Right(s)
	case MoveUp:
		e.nav.Up(s)
	case MoveDown:
		e.nav.Down(s)
	case WordLeft:
		e.nav.WordLeft(s)
	case WordRight:
		e.nav.WordRight(s)
	case Home:
		e.nav.Home(s)
	case End:
		e.nav.End(s)
	case PageUp:
		e.nav.PageUp(s)
	case PageDown:
		e.nav.PageDown(s)
	case Top:
		e.nav.Top(s)
	case Bottom:
		e.nav.Bottom(s)
	}

	if cmd.Extend {
		e.sel.Extend(e.endpoint())
	}
}
