// Package markdown renders the help page for the terminal.
package markdown

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// noMarginStyle removes document margins so the page lines up with the frame.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with scribe's configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and style.
// style is a glamour style name ("dark", "light", "notty", ...) and
// defaults to "dark". A named style avoids WithAutoStyle's terminal query,
// whose reply would otherwise leak into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	if width < 1 {
		width = 1
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// RenderOrWrap renders markdown, falling back to the plain source wrapped
// at width when r is nil or glamour fails.
func RenderOrWrap(r *Renderer, width int, markdown string) string {
	if r != nil {
		if out, err := r.Render(markdown); err == nil {
			return out
		}
	}
	if width < 1 {
		width = 1
	}
	return wordwrap.String(markdown, width)
}
