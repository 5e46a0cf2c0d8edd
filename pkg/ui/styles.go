package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors for light and dark terminals. Light mode colors are tuned
// for WCAG AA contrast on white backgrounds.
var (
	ColorBgSubtle = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorText     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorBorder   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"}

	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Series colors: grey bars, blue line, as in the web dashboard.
	ColorSeriesA = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#A0A0A0"}
	ColorSeriesB = lipgloss.AdaptiveColor{Light: "#1E88E5", Dark: "#6699FF"}
)

// Chart glyphs.
const (
	glyphBar  = '█'
	glyphLine = '·'
	glyphDot  = '●'
	glyphGrid = '┄'
)
