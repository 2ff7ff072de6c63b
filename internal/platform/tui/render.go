package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pinball/internal/core"
)

// Palette maps the semantic screen colors to terminal styles.
type Palette map[core.Color]lipgloss.Style

// DefaultPalette returns the 256-color table palette.
func DefaultPalette() Palette {
	return Palette{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorWall:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		core.ColorBall:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		core.ColorBumper:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		core.ColorBumped:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("39")),
		core.ColorPin:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		core.ColorFlipper:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		core.ColorGate:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		core.ColorShield:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		core.ColorScore:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		core.ColorMoney:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		core.ColorWarn:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		core.ColorTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		core.ColorRare:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		core.ColorLegendary: lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
	}
}

var defaultPalette = DefaultPalette()

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
