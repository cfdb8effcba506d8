package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scribe/internal/notify"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := defaultLogger
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = prev })
	return &buf
}

func TestLog_FormatsFields(t *testing.T) {
	buf := withBuffer(t)

	Info(CatEdit, "applied change", "kind", "insert-char", "offset", 4)

	out := buf.String()
	require.Contains(t, out, "[INFO] [edit] applied change")
	require.Contains(t, out, "kind=insert-char")
	require.Contains(t, out, "offset=4")
}

func TestLog_OddFieldCount(t *testing.T) {
	buf := withBuffer(t)

	Warn(CatNav, "dangling", "orphan")

	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	buf := withBuffer(t)
	SetMinLevel(LevelWarn)

	Debug(CatSearch, "hidden")
	Error(CatSearch, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestLog_Disabled(t *testing.T) {
	buf := withBuffer(t)
	SetEnabled(false)

	Error(CatBuffer, "nothing")

	require.Empty(t, buf.String())
}

func TestLog_ErrorErr(t *testing.T) {
	buf := withBuffer(t)

	ErrorErr(CatBuffer, "save failed", errors.New("permission denied"), "path", "/tmp/x")
	ErrorErr(CatBuffer, "nil error", nil)

	require.Contains(t, buf.String(), "error=permission denied")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelDebug, ParseLevel("debug"))
	require.Equal(t, LevelWarn, ParseLevel("warn"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelInfo, ParseLevel("info"))
	require.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	withBuffer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(ctx)
	require.NotNil(t, l)

	Info(CatUI, "frame rendered")

	ev, ok := l.Next()().(notify.Event[string])
	require.True(t, ok)
	require.Equal(t, notify.KindLog, ev.Kind)
	require.Contains(t, ev.Payload, "[ui] frame rendered")
}

func TestNewListener_Uninitialized(t *testing.T) {
	prev := defaultLogger
	defaultLogger = nil
	t.Cleanup(func() { defaultLogger = prev })

	require.Nil(t, NewListener(context.Background()))
}
