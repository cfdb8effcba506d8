// Package app contains the root application model.
package app

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/editor"
	"github.com/zjrosen/scribe/internal/keys"
	"github.com/zjrosen/scribe/internal/log"
	"github.com/zjrosen/scribe/internal/notify"
	"github.com/zjrosen/scribe/internal/ui/markdown"
	"github.com/zjrosen/scribe/internal/watcher"
)

// statusTTL is how long an informational status stays on the status line.
const statusTTL = 4 * time.Second

// fileChangedMsg is sent when the watcher reports an external write.
type fileChangedMsg struct{}

// statusExpiredMsg clears the status line if nothing newer arrived.
type statusExpiredMsg struct{ at time.Time }

// Options configure a Model.
type Options struct {
	Config     config.Config
	ConfigPath string // where toggled options are persisted; "" disables
	Watch      bool   // watch the open file for external changes
}

// Model is the root application state.
type Model struct {
	ed     *editor.Editor
	keyMap *keys.EditorKeyMap

	cfg        config.Config
	configPath string
	styles     styles

	width  int
	height int

	status   notify.Status
	statusAt time.Time

	helpView string // rendered help page for the current width

	// Status and external-change events
	ctx      context.Context
	cancel   context.CancelFunc
	broker   *notify.Broker[notify.Status]
	listener *notify.Listener[notify.Status]

	// File watcher for external modification notices
	watcherHandle *watcher.Watcher
	watcherCh     <-chan struct{}

	now func() time.Time
}

// New creates the application model around an editor whose status
// publisher is broker.
func New(ed *editor.Editor, broker *notify.Broker[notify.Status], opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	st, err := newStyles(opts.Config.Theme)
	if err != nil {
		log.Warn(log.CatConfig, "Invalid theme, using defaults", "error", err)
	}

	m := Model{
		ed:         ed,
		keyMap:     &keys.Editor,
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		styles:     st,
		ctx:        ctx,
		cancel:     cancel,
		broker:     broker,
		now:        time.Now,
	}
	if broker != nil {
		m.listener = notify.NewListener(ctx, broker)
	}

	if path := ed.Buffer().Path(); opts.Watch && path != "" {
		w, err := watcher.New(watcher.DefaultConfig(path))
		if err == nil {
			ch, err := w.Start()
			if err == nil {
				m.watcherHandle = w
				m.watcherCh = ch
			} else {
				_ = w.Stop()
				log.Warn(log.CatWatcher, "Failed to start watcher", "error", err)
			}
		} else {
			log.Warn(log.CatWatcher, "Failed to create watcher", "error", err)
		}
	}

	return m
}

// Editor returns the editing session.
func (m Model) Editor() *editor.Editor { return m.ed }

// Status returns the status line message.
func (m Model) Status() notify.Status { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.listener != nil {
		cmds = append(cmds, m.listener.Next())
	}
	if m.watcherCh != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

func (m Model) waitForChange() tea.Cmd {
	ch, ctx := m.watcherCh, m.ctx
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return fileChangedMsg{}
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ed.SetHeight(m.textHeight())
		m.helpView = m.renderHelp()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case notify.Event[notify.Status]:
		m.status = msg.Payload
		m.statusAt = msg.At
		var cmds []tea.Cmd
		if m.listener != nil {
			cmds = append(cmds, m.listener.Next())
		}
		if msg.Payload.Severity == notify.SeverityInfo {
			at := msg.At
			cmds = append(cmds, tea.Tick(statusTTL, func(time.Time) tea.Msg {
				return statusExpiredMsg{at: at}
			}))
		}
		return m, tea.Batch(cmds...)

	case statusExpiredMsg:
		if m.statusAt.Equal(msg.at) {
			m.status = notify.Status{}
		}
		return m, nil

	case fileChangedMsg:
		text := filepath.Base(m.ed.Buffer().Path()) + " changed on disk"
		if m.ed.Buffer().Modified() {
			text += "; saving will overwrite it"
		}
		m.publish(notify.KindExternal, notify.Warn(text))
		return m, m.waitForChange()
	}

	return m, nil
}

func (m *Model) publish(kind notify.Kind, s notify.Status) {
	if m.broker != nil {
		m.broker.Publish(kind, s)
		return
	}
	m.status = s
	m.statusAt = m.now()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ed.Modal().Kind != editor.ModalNone {
		for _, in := range keys.ModalInputs(msg) {
			m.ed.HandleModal(in)
		}
		return m, m.quitIfDone()
	}

	cmd, ok := m.keyMap.Resolve(msg)
	if !ok {
		return m, nil
	}

	if cmd.Action == editor.Save && m.watcherHandle != nil && m.ed.Buffer().Modified() {
		m.watcherHandle.IgnoreOwnWrite()
	}

	m.ed.Dispatch(cmd)

	if cmd.Action == editor.ToggleCursorLine {
		m.persistCursorLine()
	}
	return m, m.quitIfDone()
}

func (m Model) persistCursorLine() {
	if m.configPath == "" {
		return
	}
	on := m.ed.Options().CursorLine
	if err := config.SaveEditorOption(m.configPath, "cursor_line", on); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to persist cursor_line", err, "path", m.configPath)
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ed.Modal().Kind != editor.ModalNone {
		return m, nil
	}
	// the status line is not part of the text area
	row := min(msg.Y, m.textHeight()-1)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ed.Dispatch(editor.Command{Action: editor.ScrollUp})
		return m, nil
	case tea.MouseButtonWheelDown:
		m.ed.Dispatch(editor.Command{Action: editor.ScrollDown})
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.ed.MousePress(msg.X, row, m.now())
		}
	case tea.MouseActionMotion:
		m.ed.MouseMotion(msg.X, row, m.now())
	case tea.MouseActionRelease:
		m.ed.MouseRelease()
	}
	return m, nil
}

func (m Model) renderHelp() string {
	width := max(m.width, 20)
	r, err := markdown.New(width, m.cfg.UI.MarkdownStyle)
	if err != nil {
		log.Warn(log.CatUI, "Help renderer unavailable", "style", m.cfg.UI.MarkdownStyle, "error", err)
	}
	return markdown.RenderOrWrap(r, width, m.keyMap.HelpMarkdown())
}

func (m Model) quitIfDone() tea.Cmd {
	if m.ed.Quitting() {
		return tea.Quit
	}
	return nil
}

// textHeight is the number of rows available for text.
func (m Model) textHeight() int {
	h := m.height
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	return max(h, 1)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
