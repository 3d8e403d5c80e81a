package tui

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtext lipgloss.Color = "#a6adc8"
	colorSurface lipgloss.Color = "#313244"
	colorOverlay lipgloss.Color = "#6c7086"
	colorFocus   lipgloss.Color = "#b4befe"
	colorBase    lipgloss.Color = "#1e1e2e"
	colorError   lipgloss.Color = "#f38ba8"
)

var (
	documentStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorOverlay).
			Foreground(colorText).
			Padding(0, 1)
	keyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorSurface).
			Padding(0, 1).
			MarginRight(1)
	focusedKeyStyle = keyStyle.
			Foreground(colorBase).
			Background(colorFocus).
			Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
)

var iconGlyphs = map[keyboard.Icon]string{
	keyboard.IconShift:     "⇧",
	keyboard.IconBackspace: "⌫",
	keyboard.IconGlobe:     "🌐",
}

// keyFace is what a key shows: its icon glyph when it has one, its caption
// otherwise. The space bar gets a wide blank face.
func keyFace(k keyboard.Key) string {
	if k.HasIcon() {
		if glyph, ok := iconGlyphs[k.Icon]; ok {
			return glyph
		}
	}
	if k.Kind == keyboard.KindSpacebar && k.Caption() == "" {
		return "          "
	}
	return k.Caption()
}
