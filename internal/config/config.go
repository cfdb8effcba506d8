// Package config provides configuration types and defaults for scribe.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/scribe/internal/log"
)

// ErrParseFailed is returned for malformed configuration values.
var ErrParseFailed = errors.New("config parse failed")

// Config holds all configuration options for scribe.
type Config struct {
	Editor EditorConfig `mapstructure:"editor"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	UI     UIConfig     `mapstructure:"ui"`
}

// EditorConfig holds editing behavior options.
type EditorConfig struct {
	TabWidth      int           `mapstructure:"tab_width"`      // spaces inserted for Tab
	CursorLine    bool          `mapstructure:"cursor_line"`    // highlight the cursor's line
	EOFIndicator  bool          `mapstructure:"eof_indicator"`  // mark the end of the document
	DragThreshold time.Duration `mapstructure:"drag_threshold"` // hold time before a mouse drag selects
	Font          string        `mapstructure:"font"`           // font family, for graphical frontends
	FontSize      int           `mapstructure:"font_size"`
}

// ThemeConfig holds colors as "r,g,b,a" or "#rrggbb".
type ThemeConfig struct {
	Background string `mapstructure:"background"`
	Foreground string `mapstructure:"foreground"`
	Cursor     string `mapstructure:"cursor"`
	Selection  string `mapstructure:"selection"`
}

// UIConfig holds terminal frontend options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:      2,
			CursorLine:    false,
			EOFIndicator:  false,
			DragThreshold: 100 * time.Millisecond,
			FontSize:      10,
		},
		Theme: ThemeConfig{
			Background: "0,0,0,255",
			Foreground: "255,255,255,255",
			Cursor:     "200,200,200,255",
			Selection:  "55,95,25,255",
		},
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
	}
}

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Hex renders the color as #rrggbb. Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor accepts "r,g,b[,a]" with 0-255 components or "#rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return Color{}, fmt.Errorf("%w: color %q must be #rrggbb", ErrParseFailed, s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color %q: %w", ErrParseFailed, s, err)
		}
		return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: color %q must have 3 or 4 components", ErrParseFailed, s)
	}
	c := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color %q component %d: %w", ErrParseFailed, s, i, err)
		}
		c[i] = uint8(v)
	}
	return Color{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

// Palette is the parsed theme.
type Palette struct {
	Background Color
	Foreground Color
	Cursor     Color
	Selection  Color
}

// Palette parses every theme color. Empty values fall back to the defaults.
func (t ThemeConfig) Palette() (Palette, error) {
	def := Defaults().Theme
	pick := func(v, fallback string) string {
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	}

	var (
		p    Palette
		errs []error
	)
	for _, f := range []struct {
		name  string
		value string
		dst   *Color
	}{
		{"theme.background", pick(t.Background, def.Background), &p.Background},
		{"theme.foreground", pick(t.Foreground, def.Foreground), &p.Foreground},
		{"theme.cursor", pick(t.Cursor, def.Cursor), &p.Cursor},
		{"theme.selection", pick(t.Selection, def.Selection), &p.Selection},
	} {
		c, err := ParseColor(f.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
			continue
		}
		*f.dst = c
	}
	return p, errors.Join(errs...)
}

// ValidateEditor checks editor options.
func ValidateEditor(e EditorConfig) error {
	if e.TabWidth < 1 || e.TabWidth > 16 {
		return fmt.Errorf("%w: editor.tab_width must be between 1 and 16, got %d", ErrParseFailed, e.TabWidth)
	}
	if e.DragThreshold < 0 {
		return fmt.Errorf("%w: editor.drag_threshold must not be negative, got %s", ErrParseFailed, e.DragThreshold)
	}
	if e.FontSize < 0 {
		return fmt.Errorf("%w: editor.font_size must not be negative, got %d", ErrParseFailed, e.FontSize)
	}
	return nil
}

// ValidateUI checks frontend options.
func ValidateUI(u UIConfig) error {
	switch u.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("%w: ui.markdown_style must be \"dark\" or \"light\", got %q", ErrParseFailed, u.MarkdownStyle)
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if _, err := c.Theme.Palette(); err != nil {
		return err
	}
	return ValidateUI(c.UI)
}

// DefaultConfigTemplate returns the content written by WriteDefaultConfig.
func DefaultConfigTemplate() string {
	return `# Scribe Configuration

# Editing behavior
editor:
  tab_width: 2            # Spaces inserted when pressing Tab
  cursor_line: false      # Highlight the line under the cursor (toggle with ctrl+l)
  eof_indicator: false    # Mark the end of the document
  drag_threshold: 100ms   # Hold time before a mouse drag starts selecting
  # font: JetBrains Mono  # Font family (graphical frontends only)
  font_size: 10

# Colors as "r,g,b,a" (0-255) or "#rrggbb"
theme:
  background: "0,0,0,255"
  foreground: "255,255,255,255"
  cursor: "200,200,200,255"
  selection: "55,95,25,255"

# Terminal UI
ui:
  show_status_bar: true
  markdown_style: dark    # Help page style: "dark" (default) or "light"
`
}

// WriteDefaultConfig creates a config file with default settings.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
