// Package editor composes the document, cursor, history, selection and
// search into one editing session driven by a single update step.
//
// The frontend resolves each input into at most one Command and passes it to
// Dispatch, or to HandleModal while a prompt is open. Rendering reads Frame
// and never mutates the session.
package editor

import (
	"time"

	"github.com/zjrosen/scribe/internal/clipboard"
	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/history"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/mapper"
	"github.com/zjrosen/scribe/internal/navigator"
	"github.com/zjrosen/scribe/internal/notify"
	"github.com/zjrosen/scribe/internal/search"
	"github.com/zjrosen/scribe/internal/selection"
)

// Buffer is the document capability the editor needs.
type Buffer interface {
	history.Buffer
	search.Document
	Len() int
	Path() string
	Modified() bool
	Save() error
	Changes() document.ChangeSummary
}

// History records changes for undo/redo.
type History interface {
	Apply(buf history.Buffer, c history.Change) (int, error)
	Undo(buf history.Buffer) (int, bool, error)
	Redo(buf history.Buffer) (int, bool, error)
	Clear()
}

// Searcher finds query matches.
type Searcher interface {
	Find(doc search.Document, query string, caseSensitive bool, dir search.Direction) (search.Match, bool)
	Refresh(doc search.Document)
	Highlights(line int) []search.Match
	Current() (search.Match, bool)
	QueryLen() int
	Query() (string, bool)
	Reset()
}

// Options are the behavior settings injected at startup.
type Options struct {
	TabWidth      int
	CursorLine    bool
	EOFIndicator  bool
	DragThreshold time.Duration
}

// OptionsFromConfig maps the editor section of the config file.
func OptionsFromConfig(c config.EditorConfig) Options {
	return Options{
		TabWidth:      c.TabWidth,
		CursorLine:    c.CursorLine,
		EOFIndicator:  c.EOFIndicator,
		DragThreshold: c.DragThreshold,
	}
}

// Deps are the collaborators of an Editor. Zero fields get defaults.
type Deps struct {
	Clipboard clipboard.Clipboard
	History   History
	Searcher  Searcher
	Measurer  mapper.Measurer
	Status    notify.Publisher[notify.Status]
}

// Editor is one editing session over one document.
type Editor struct {
	buf   Buffer
	m     *mapper.Mapper
	nav   *navigator.Navigator
	state navigator.State

	hist   History
	sel    *selection.Manager
	search Searcher
	clip   clipboard.Clipboard
	meas   mapper.Measurer
	pub    notify.Publisher[notify.Status]

	opts       Options
	modal      Modal
	quit       bool
	lastStatus notify.Status
}

// New starts a session on buf with the cursor at the top-left.
func New(buf Buffer, opts Options, deps Deps) *Editor {
	if opts.TabWidth <= 0 {
		opts.TabWidth = config.Defaults().Editor.TabWidth
	}
	if deps.Clipboard == nil {
		deps.Clipboard = &clipboard.Memory{}
	}
	if deps.History == nil {
		deps.History = history.New()
	}
	if deps.Searcher == nil {
		deps.Searcher = search.New()
	}
	if deps.Measurer == nil {
		deps.Measurer = mapper.TerminalMeasurer{TabWidth: opts.TabWidth}
	}

	e := &Editor{
		hist:   deps.History,
		sel:    selection.New(opts.DragThreshold),
		search: deps.Searcher,
		clip:   deps.Clipboard,
		meas:   deps.Measurer,
		pub:    deps.Status,
		opts:   opts,
		state:  navigator.State{Viewport: mapper.Viewport{Height: 1}},
	}
	e.attach(buf)
	return e
}

func (e *Editor) attach(buf Buffer) {
	e.buf = buf
	e.m = mapper.New(buf)
	e.nav = navigator.New(e.m)
	e.state.Viewport.First = 0
	e.state.Cursor = mapper.Position{}
	e.hist.Clear()
	e.sel.Clear()
	e.search.Reset()
}

// Open replaces the session's document, resetting cursor and history.
func (e *Editor) Open(buf Buffer) {
	e.attach(buf)
	e.modal = Modal{}
	log.Info(log.CatBuffer, "Switched document", "path", buf.Path())
}

// Buffer returns the current document.
func (e *Editor) Buffer() Buffer { return e.buf }

// Options returns the current options.
func (e *Editor) Options() Options { return e.opts }

// State returns the cursor and viewport.
func (e *Editor) State() navigator.State { return e.state }

// Quitting reports whether the session asked to exit.
func (e *Editor) Quitting() bool { return e.quit }

// LastStatus is the most recent status message.
func (e *Editor) LastStatus() notify.Status { return e.lastStatus }

// SetHeight sets the number of visible text rows.
func (e *Editor) SetHeight(h int) {
	e.nav.SetHeight(&e.state, h)
}

// Offset returns the buffer offset under the cursor.
func (e *Editor) Offset() int {
	off, err := e.nav.Offset(&e.state)
	if err != nil {
		// cursor drifted off the text; snap it back
		log.Warn(log.CatNav, "Cursor out of range", "cursor", e.state.Cursor, "first", e.state.Viewport.First)
		e.nav.Reveal(&e.state, e.buf.Len()-1)
		off, _ = e.nav.Offset(&e.state)
	}
	return off
}

func (e *Editor) endpoint() selection.Endpoint {
	return selection.Endpoint{Offset: e.Offset(), Pos: e.state.Cursor}
}

func (e *Editor) setStatus(s notify.Status) {
	e.lastStatus = s
	if e.pub != nil {
		e.pub.Publish(notify.KindStatus, s)
	}
}

func (e *Editor) fail(msg string, err error) {
	log.ErrorErr(log.CatEdit, msg, err)
	e.setStatus(notify.Error(msg + ": " + err.Error()))
}
