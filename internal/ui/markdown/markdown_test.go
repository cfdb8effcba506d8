package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsStyle(t *testing.T) {
	r, err := New(40, "")
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())

	out, err := r.Render("# Keys\n\nsave the file")
	require.NoError(t, err)
	require.Contains(t, out, "Keys")
	require.Contains(t, out, "save the file")
}

func TestNew_ClampsWidth(t *testing.T) {
	r, err := New(0, "notty")
	require.NoError(t, err)
	require.Equal(t, 1, r.Width())
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(40, "does-not-exist")
	require.Error(t, err)
}

func TestRenderOrWrap_Fallback(t *testing.T) {
	out := RenderOrWrap(nil, 10, "alpha beta gamma delta")
	for _, line := range strings.Split(out, "\n") {
		require.LessOrEqual(t, len(line), 11)
	}
	require.Contains(t, out, "gamma")
}

func TestRenderOrWrap_UsesRenderer(t *testing.T) {
	r, err := New(30, "notty")
	require.NoError(t, err)
	out := RenderOrWrap(r, 30, "plain *words*")
	require.Contains(t, out, "words")
}
