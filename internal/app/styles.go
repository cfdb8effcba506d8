package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/scribe/internal/config"
	"github.com/zjrosen/scribe/internal/notify"
)

// cellKind is the highlight applied to a run of text cells. Later kinds win.
type cellKind int

const (
	kindText cellKind = iota
	kindCursorLine
	kindMatch
	kindCurrentMatch
	kindSelection
	kindCursor
)

type styles struct {
	cells      [kindCursor + 1]lipgloss.Style
	eof        lipgloss.Style
	statusBar  lipgloss.Style
	statusInfo lipgloss.Style
	statusWarn lipgloss.Style
	statusErr  lipgloss.Style
}

// newStyles builds render styles from the theme. On a bad color it returns
// the default theme's styles with the parse error.
func newStyles(theme config.ThemeConfig) (styles, error) {
	p, err := theme.Palette()
	if err != nil {
		p, _ = config.Defaults().Theme.Palette()
	}

	bg := lipgloss.Color(p.Background.Hex())
	fg := lipgloss.Color(p.Foreground.Hex())
	lineBg := lipgloss.Color(blend(p.Background, p.Foreground, 0.12).Hex())

	base := lipgloss.NewStyle().Foreground(fg).Background(bg)

	var s styles
	s.cells[kindText] = base
	s.cells[kindCursorLine] = base.Background(lineBg)
	s.cells[kindMatch] = base.Underline(true)
	s.cells[kindCurrentMatch] = base.Underline(true).Bold(true).Reverse(true)
	s.cells[kindSelection] = base.Background(lipgloss.Color(p.Selection.Hex()))
	s.cells[kindCursor] = lipgloss.NewStyle().
		Foreground(bg).
		Background(lipgloss.Color(p.Cursor.Hex()))
	s.eof = base.Faint(true)

	s.statusBar = lipgloss.NewStyle().Foreground(bg).Background(fg)
	s.statusInfo = s.statusBar
	s.statusWarn = s.statusBar.Bold(true)
	s.statusErr = s.statusBar.Bold(true).Underline(true)
	return s, err
}

func (s styles) status(sev notify.Severity) lipgloss.Style {
	switch sev {
	case notify.SeverityWarn:
		return s.statusWarn
	case notify.SeverityError:
		return s.statusErr
	default:
		return s.statusInfo
	}
}

// blend mixes a toward b by t in [0,1].
func blend(a, b config.Color, t float64) config.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return config.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
