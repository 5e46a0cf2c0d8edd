package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Series
	SeriesA   lipgloss.AdaptiveColor
	SeriesB   lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// UI Elements
	Border lipgloss.AdaptiveColor
	Grid   lipgloss.AdaptiveColor
	Muted  lipgloss.AdaptiveColor

	// Styles
	Base   lipgloss.Style
	Header lipgloss.Style
	Panel  lipgloss.Style

	// Chart cell styles, created once instead of per frame.
	Bar       lipgloss.Style
	BarHi     lipgloss.Style
	Line      lipgloss.Style
	Dot       lipgloss.Style
	DotHi     lipgloss.Style
	GridLine  lipgloss.Style
	Hover     lipgloss.Style
	AxisText  lipgloss.Style
	MutedText lipgloss.Style
	InfoBold  lipgloss.Style
	ErrorText lipgloss.Style
	OKText    lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Subtext:   ColorSubtext,

		SeriesA:   ColorSeriesA,
		SeriesB:   ColorSeriesB,
		Highlight: ColorDanger,

		Border: ColorBorder,
		Grid:   ColorBgSubtle,
		Muted:  ColorMuted,
	}

	t.Base = r.NewStyle().Foreground(ColorText)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(ThemeBg("#1E1F29")).
		Padding(0, 1)

	t.Bar = r.NewStyle().Foreground(t.SeriesA)
	t.BarHi = r.NewStyle().Foreground(t.Highlight).Bold(true)
	t.Line = r.NewStyle().Foreground(t.SeriesB)
	t.Dot = r.NewStyle().Foreground(t.SeriesB).Bold(true)
	t.DotHi = r.NewStyle().Foreground(t.Highlight).Bold(true)
	t.GridLine = r.NewStyle().Foreground(t.Grid)
	t.Hover = r.NewStyle().Foreground(ThemeFg("#F1FA8C"))
	t.AxisText = r.NewStyle().Foreground(t.Subtext)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.InfoBold = r.NewStyle().Foreground(ColorInfo).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(ColorDanger).Bold(true)
	t.OKText = r.NewStyle().Foreground(ColorSuccess)

	return t
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
