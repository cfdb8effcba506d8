package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults_Valid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 2, cfg.Editor.TabWidth)
	require.Equal(t, 100*time.Millisecond, cfg.Editor.DragThreshold)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"0,0,0,255", Color{0, 0, 0, 255}},
		{" 200, 200 ,200,255 ", Color{200, 200, 200, 255}},
		{"1,2,3", Color{1, 2, 3, 255}},
		{"#10B981", Color{0x10, 0xb9, 0x81, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "1,2", "256,0,0,0", "a,b,c", "#12345", "#zzzzzz", "1,2,3,4,5"} {
		_, err := ParseColor(bad)
		require.ErrorIs(t, err, ErrParseFailed, bad)
	}
}

func TestColor_Hex(t *testing.T) {
	require.Equal(t, "#c8c8c8", Color{200, 200, 200, 255}.Hex())
}

func TestPalette(t *testing.T) {
	p, err := ThemeConfig{Background: "#000000"}.Palette()
	require.NoError(t, err)
	require.Equal(t, Color{255, 255, 255, 255}, p.Foreground, "empty values use defaults")

	_, err = ThemeConfig{Cursor: "red", Selection: "1"}.Palette()
	require.ErrorIs(t, err, ErrParseFailed)
	require.Contains(t, err.Error(), "theme.cursor")
	require.Contains(t, err.Error(), "theme.selection")
}

func TestValidateEditor(t *testing.T) {
	e := Defaults().Editor
	e.TabWidth = 0
	require.ErrorIs(t, ValidateEditor(e), ErrParseFailed)

	e = Defaults().Editor
	e.DragThreshold = -time.Second
	require.Error(t, ValidateEditor(e))

	e = Defaults().Editor
	e.FontSize = -1
	require.Error(t, ValidateEditor(e))
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{MarkdownStyle: "light"}))
	require.Error(t, ValidateUI(UIConfig{MarkdownStyle: "neon"}))
}

func TestDefaultConfigTemplate_LoadsAsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, Defaults(), cfg)
}
