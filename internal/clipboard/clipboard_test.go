package clipboard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	var c Clipboard = &Memory{}

	got, err := c.ReadAll()
	require.NoError(t, err)
	require.Empty(t, got)

	require.NoError(t, c.WriteAll("hello\nworld"))
	got, err = c.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "hello\nworld", got)
}

func TestAuto_ReturnsUsableClipboard(t *testing.T) {
	require.NotNil(t, Auto())
}
