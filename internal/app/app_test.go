package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scribe/internal/clipboard"
	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/document"
	"github.com/zjrosen/scribe/internal/editor"
	"github.com/zjrosen/scribe/internal/notify"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

// createTestModel creates a sized Model over an unbound document.
func createTestModel(t *testing.T, text string) (Model, *document.Document) {
	t.Helper()
	doc := document.FromString(text)
	broker := notify.NewBroker[notify.Status]()
	t.Cleanup(broker.Close)

	ed := editor.New(doc, editor.Options{TabWidth: 2}, editor.Deps{
		Clipboard: &clipboard.Memory{},
		Status:    broker,
	})
	m := New(ed, broker, Options{Config: config.Defaults()})
	t.Cleanup(func() { _ = m.Close() })

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 6})
	return next.(Model), doc
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m, _ := createTestModel(t, "a\n")

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
	assert.Equal(t, 49, m.Editor().State().Viewport.Height, "one row is reserved for the status bar")
	assert.Contains(t, m.helpView, "Navigation")
}

func TestApp_KeysEditDocument(t *testing.T) {
	m, doc := createTestModel(t, "line1\nline2\nline3\n")

	m = update(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}},
	)

	require.Equal(t, "line1\nline2\nXline3\n", doc.String())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "line1\nline2\nline3\n", doc.String())
	require.Equal(t, 2, m.Editor().State().Line())
}

func TestApp_PasteBurstIsOneChange(t *testing.T) {
	m, doc := createTestModel(t, "\n")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello"), Paste: true})
	require.Equal(t, "hello\n", doc.String())

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, "\n", doc.String())
}

func TestApp_ModalReceivesKeys(t *testing.T) {
	m, _ := createTestModel(t, "a\nb\nc\nd\n")

	m = update(t, m,
		tea.KeyMsg{Type: tea.KeyCtrlG},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")},
	)
	require.Equal(t, editor.ModalGoToLine, m.Editor().Modal().Kind)
	require.Contains(t, m.View(), "Go to line: 3")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, editor.ModalNone, m.Editor().Modal().Kind)
	require.Equal(t, 2, m.Editor().State().Line())
}

func TestApp_QuitUnmodified(t *testing.T) {
	m, _ := createTestModel(t, "a\n")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitModifiedAsks(t *testing.T) {
	m, _ := createTestModel(t, "a\n")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	m = next.(Model)
	require.Nil(t, cmd)
	require.Equal(t, editor.ModalConfirmQuit, m.Editor().Modal().Kind)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_StatusEvent(t *testing.T) {
	m, _ := createTestModel(t, "a\n")
	at := time.Now()

	next, cmd := m.Update(notify.Event[notify.Status]{Kind: notify.KindStatus, Payload: notify.Info("Saved"), At: at})
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Equal(t, "Saved", m.Status().Text)
	require.Contains(t, m.View(), "Saved")

	m = update(t, m, statusExpiredMsg{at: at.Add(-time.Second)})
	require.Equal(t, "Saved", m.Status().Text, "an older expiry leaves a newer status alone")

	m = update(t, m, statusExpiredMsg{at: at})
	require.Empty(t, m.Status().Text)
}

func TestApp_FileChangedPublishesExternal(t *testing.T) {
	m, _ := createTestModel(t, "a\n")
	sub := m.broker.Subscribe(m.ctx)

	update(t, m, fileChangedMsg{})

	select {
	case ev := <-sub:
		require.Equal(t, notify.KindExternal, ev.Kind)
		require.Equal(t, notify.SeverityWarn, ev.Payload.Severity)
		require.Contains(t, ev.Payload.Text, "changed on disk")
	case <-time.After(time.Second):
		t.Fatal("expected external change event")
	}
}

func TestApp_MouseClickAndWheel(t *testing.T) {
	m, _ := createTestModel(t, "hello\nworld\n")

	m = update(t, m,
		tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress},
		tea.MouseMsg{X: 3, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
	)
	require.Equal(t, 1, m.Editor().State().Line())
	require.Equal(t, 3, m.Editor().State().Cursor.Col)

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.Equal(t, 1, m.Editor().State().Line(), "wheel at the top does not move the cursor")
	require.Equal(t, 0, m.Editor().State().Viewport.First)
}

func TestApp_WheelScrollsAndKeepsSelection(t *testing.T) {
	m, _ := createTestModel(t, strings.Repeat("line\n", 20))

	m = update(t, m,
		tea.KeyMsg{Type: tea.KeyShiftRight},
		tea.KeyMsg{Type: tea.KeyShiftRight},
	)
	sel := m.Editor().Frame().Selection
	require.True(t, m.Editor().Frame().HasSelection)

	m = update(t, m,
		tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
		tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
		tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
	)
	require.Equal(t, 3, m.Editor().State().Viewport.First)
	require.True(t, m.Editor().Frame().HasSelection)
	require.Equal(t, sel, m.Editor().Frame().Selection)

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.Equal(t, 2, m.Editor().State().Viewport.First)
	require.True(t, m.Editor().Frame().HasSelection)
}

func TestApp_ToggleCursorLinePersists(t *testing.T) {
	m, _ := createTestModel(t, "a\n")
	path := filepath.Join(t.TempDir(), "config.yaml")
	m.configPath = path

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.True(t, m.Editor().Options().CursorLine)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "cursor_line: true")
}

func TestApp_SaveIgnoresOwnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o644))
	doc, err := document.Open(path)
	require.NoError(t, err)

	broker := notify.NewBroker[notify.Status]()
	t.Cleanup(broker.Close)
	ed := editor.New(doc, editor.Options{}, editor.Deps{Status: broker})
	m := New(ed, broker, Options{Config: config.Defaults(), Watch: true})
	t.Cleanup(func() { _ = m.Close() })
	require.NotNil(t, m.watcherHandle)

	m = update(t, m,
		tea.WindowSizeMsg{Width: 40, Height: 5},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}},
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)
	require.False(t, doc.Modified())

	select {
	case <-m.watcherCh:
		t.Fatal("own save should not be reported as an external change")
	case <-time.After(600 * time.Millisecond):
	}
}

func TestView_StatusLine(t *testing.T) {
	m, _ := createTestModel(t, "abc\n")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 6)
	status := lines[len(lines)-1]
	assert.Contains(t, status, "[No Name] [+]")
	assert.Contains(t, status, "Ln 1/1, Col 2")
	assert.Contains(t, lines[0], "x")
}

func TestView_HelpModal(t *testing.T) {
	m, _ := createTestModel(t, "abc\n")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlH})
	require.Equal(t, editor.ModalHelp, m.Editor().Modal().Kind)
	require.Contains(t, m.View(), "Help (esc to close)")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, editor.ModalNone, m.Editor().Modal().Kind)
}

func TestView_EOFIndicator(t *testing.T) {
	m, _ := createTestModel(t, "a\n")
	m.cfg.UI.ShowStatusBar = false
	m.ed = editor.New(m.ed.Buffer(), editor.Options{EOFIndicator: true}, editor.Deps{})
	m.ed.SetHeight(m.textHeight())

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], eofGlyph)
	assert.Contains(t, lines[1], emptyRow)
}

func TestView_TruncatesLongLines(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.ANSI256) })

	m, _ := createTestModel(t, strings.Repeat("w", 100)+"\n")
	first := strings.Split(m.View(), "\n")[0]
	require.Equal(t, strings.Repeat("w", 40), first)
}

func TestProgram_TypeAndQuit(t *testing.T) {
	m, doc := createTestModel(t, "\n")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(40, 6))
	tm.Type("hi")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.NoError(t, tm.Quit())

	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.Equal(t, "hi\n", doc.String())
	require.Equal(t, 0, final.Editor().State().Line())
	require.Equal(t, 5, final.Editor().State().Viewport.Height)
}

func TestProgram_StatusFromBroker(t *testing.T) {
	m, _ := createTestModel(t, "\n")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(40, 6))
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlZ})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Nothing to undo")
	}, teatest.WithDuration(2*time.Second))

	require.NoError(t, tm.Quit())
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}
