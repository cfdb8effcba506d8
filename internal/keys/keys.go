// Package keys contains keybinding definitions and resolves terminal key
// events into editor commands.
package keys

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/scribe/internal/editor"
)

// EditorKeyMap holds the bindings active while editing text.
type EditorKeyMap struct {
	// Navigation
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	WordLeft    key.Binding
	WordRight   key.Binding
	Home        key.Binding
	End         key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectUp    key.Binding
	SelectDown  key.Binding
	SelectWordL key.Binding
	SelectWordR key.Binding
	SelectHome  key.Binding
	SelectEnd   key.Binding
	SelectTop   key.Binding
	SelectBot   key.Binding

	// Editing
	Tab             key.Binding
	Enter           key.Binding
	Backspace       key.Binding
	Delete          key.Binding
	DeleteWord      key.Binding
	InsertLineAbove key.Binding
	InsertLineBelow key.Binding
	Copy            key.Binding
	Cut             key.Binding
	Paste           key.Binding
	Undo            key.Binding
	Redo            key.Binding

	// Session
	Save             key.Binding
	Quit             key.Binding
	GoToLine         key.Binding
	Find             key.Binding
	FindIgnoreCase   key.Binding
	Help             key.Binding
	ToggleCursorLine key.Binding
}

// Editor is the default editing keymap.
var Editor = EditorKeyMap{
	Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
	Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),
	Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
	Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
	WordLeft:    key.NewBinding(key.WithKeys("ctrl+left", "alt+b"), key.WithHelp("ctrl+←", "previous word")),
	WordRight:   key.NewBinding(key.WithKeys("ctrl+right", "alt+f"), key.WithHelp("ctrl+→", "next word")),
	Home:        key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
	End:         key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
	PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	Top:         key.NewBinding(key.WithKeys("ctrl+pgup", "ctrl+home"), key.WithHelp("ctrl+pgup", "top of document")),
	Bottom:      key.NewBinding(key.WithKeys("ctrl+pgdown", "ctrl+end"), key.WithHelp("ctrl+pgdown", "bottom of document")),
	SelectLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
	SelectRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
	SelectUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
	SelectDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),
	SelectWordL: key.NewBinding(key.WithKeys("ctrl+shift+left"), key.WithHelp("ctrl+shift+←", "select previous word")),
	SelectWordR: key.NewBinding(key.WithKeys("ctrl+shift+right"), key.WithHelp("ctrl+shift+→", "select next word")),
	SelectHome:  key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("shift+home", "select to line start")),
	SelectEnd:   key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("shift+end", "select to line end")),
	SelectTop:   key.NewBinding(key.WithKeys("ctrl+shift+home"), key.WithHelp("ctrl+shift+home", "select to top")),
	SelectBot:   key.NewBinding(key.WithKeys("ctrl+shift+end"), key.WithHelp("ctrl+shift+end", "select to bottom")),

	Tab:             key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "insert spaces")),
	Enter:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new line")),
	Backspace:       key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete backward")),
	Delete:          key.NewBinding(key.WithKeys("delete"), key.WithHelp("delete", "delete forward")),
	DeleteWord:      key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete word backward")),
	InsertLineAbove: key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "open line above")),
	InsertLineBelow: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open line below")),
	Copy:            key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy selection or line")),
	Cut:             key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut selection or line")),
	Paste:           key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	Undo:            key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
	Redo:            key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),

	Save:             key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Quit:             key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	GoToLine:         key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "go to line")),
	Find:             key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
	FindIgnoreCase:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "find, ignoring case")),
	Help:             key.NewBinding(key.WithKeys("ctrl+h", "f1"), key.WithHelp("ctrl+h", "help")),
	ToggleCursorLine: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "toggle cursor line")),
}

type binding struct {
	b   *key.Binding
	cmd editor.Command
}

func (k *EditorKeyMap) table() []binding {
	c := func(a editor.Action) editor.Command { return editor.Command{Action: a} }
	x := func(a editor.Action) editor.Command { return editor.Command{Action: a, Extend: true} }
	return []binding{
		{&k.Left, c(editor.MoveLeft)},
		{&k.Right, c(editor.MoveRight)},
		{&k.Up, c(editor.MoveUp)},
		{&k.Down, c(editor.MoveDown)},
		{&k.WordLeft, c(editor.WordLeft)},
		{&k.WordRight, c(editor.WordRight)},
		{&k.Home, c(editor.Home)},
		{&k.End, c(editor.End)},
		{&k.PageUp, c(editor.PageUp)},
		{&k.PageDown, c(editor.PageDown)},
		{&k.Top, c(editor.Top)},
		{&k.Bottom, c(editor.Bottom)},
		{&k.SelectLeft, x(editor.MoveLeft)},
		{&k.SelectRight, x(editor.MoveRight)},
		{&k.SelectUp, x(editor.MoveUp)},
		{&k.SelectDown, x(editor.MoveDown)},
		{&k.SelectWordL, x(editor.WordLeft)},
		{&k.SelectWordR, x(editor.WordRight)},
		{&k.SelectHome, x(editor.Home)},
		{&k.SelectEnd, x(editor.End)},
		{&k.SelectTop, x(editor.Top)},
		{&k.SelectBot, x(editor.Bottom)},
		{&k.Tab, c(editor.Tab)},
		{&k.Enter, c(editor.Enter)},
		{&k.Backspace, c(editor.Backspace)},
		{&k.Delete, c(editor.Delete)},
		{&k.DeleteWord, c(editor.DeleteWord)},
		{&k.InsertLineAbove, c(editor.InsertLineAbove)},
		{&k.InsertLineBelow, c(editor.InsertLineBelow)},
		{&k.Copy, c(editor.Copy)},
		{&k.Cut, c(editor.Cut)},
		{&k.Paste, c(editor.Paste)},
		{&k.Undo, c(editor.Undo)},
		{&k.Redo, c(editor.Redo)},
		{&k.Save, c(editor.Save)},
		{&k.Quit, c(editor.Quit)},
		{&k.GoToLine, c(editor.GoToLine)},
		{&k.Find, c(editor.FindCaseSensitive)},
		{&k.FindIgnoreCase, c(editor.FindCaseInsensitive)},
		{&k.Help, c(editor.Help)},
		{&k.ToggleCursorLine, c(editor.ToggleCursorLine)},
	}
}

// Resolve maps a key event to at most one editor command.
func (k *EditorKeyMap) Resolve(msg tea.KeyMsg) (editor.Command, bool) {
	for _, b := range k.table() {
		if key.Matches(msg, *b.b) {
			return b.cmd, true
		}
	}

	switch {
	case msg.Type == tea.KeySpace:
		return editor.Command{Action: editor.InsertChar, Char: ' '}, true
	case msg.Type == tea.KeyRunes && !msg.Alt:
		if len(msg.Runes) == 1 {
			return editor.Command{Action: editor.InsertChar, Char: msg.Runes[0]}, true
		}
		if len(msg.Runes) > 1 {
			return editor.Command{Action: editor.InsertText, Text: string(msg.Runes)}, true
		}
	}
	return editor.Command{}, false
}

// ModalInputs maps a key event to prompt inputs. Up and ctrl+p step to the
// previous match since most terminals cannot report shift+enter.
func ModalInputs(msg tea.KeyMsg) []editor.ModalInput {
	switch msg.String() {
	case "esc", "ctrl+c", "ctrl+q":
		return []editor.ModalInput{{Key: editor.KeyEscape}}
	case "enter", "down", "ctrl+n":
		return []editor.ModalInput{{Key: editor.KeyEnter}}
	case "shift+enter", "up", "ctrl+p":
		return []editor.ModalInput{{Key: editor.KeyShiftEnter}}
	case "backspace":
		return []editor.ModalInput{{Key: editor.KeyBackspace}}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []editor.ModalInput{{Key: editor.KeyRune, Char: ' '}}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]editor.ModalInput, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, editor.ModalInput{Key: editor.KeyRune, Char: r})
		}
		return out
	}
	return nil
}

// ShortHelp returns keybindings for the status bar hint.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit, k.Find, k.Help}
}

// FullHelp returns keybindings grouped for the help page.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.WordLeft, k.WordRight, k.Home, k.End, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.SelectLeft, k.SelectRight, k.SelectUp, k.SelectDown, k.SelectWordL, k.SelectWordR, k.SelectHome, k.SelectEnd, k.SelectTop, k.SelectBot},
		{k.Tab, k.Enter, k.Backspace, k.Delete, k.DeleteWord, k.InsertLineAbove, k.InsertLineBelow, k.Copy, k.Cut, k.Paste, k.Undo, k.Redo},
		{k.Save, k.Quit, k.GoToLine, k.Find, k.FindIgnoreCase, k.Help, k.ToggleCursorLine},
	}
}

var helpSections = []string{"Navigation", "Selection", "Editing", "Session"}

// HelpMarkdown renders the full keymap as a markdown document.
func (k EditorKeyMap) HelpMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# scribe\n\n")
	for i, group := range k.FullHelp() {
		fmt.Fprintf(&sb, "## %s\n\n| Key | Action |\n|-----|--------|\n", helpSections[i])
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("## Prompts\n\n")
	sb.WriteString("In the find prompt `enter` jumps to the next match and `shift+enter` (or `↑`) to the previous one. ")
	sb.WriteString("`esc` closes any prompt. Hold the mouse button briefly before dragging to select text.\n")
	return sb.String()
}
