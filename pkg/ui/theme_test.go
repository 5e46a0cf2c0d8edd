package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	for name, c := range map[string]lipgloss.AdaptiveColor{
		"Primary":   theme.Primary,
		"SeriesA":   theme.SeriesA,
		"SeriesB":   theme.SeriesB,
		"Highlight": theme.Highlight,
	} {
		if isColorEmpty(c) {
			t.Errorf("DefaultTheme %s color is empty", name)
		}
	}
	if theme.SeriesA == theme.Highlight || theme.SeriesB == theme.Highlight {
		t.Error("highlight must differ from both series colors")
	}
}

func isColorEmpty(c lipgloss.AdaptiveColor) bool {
	return c.Light == "" && c.Dark == ""
}

func TestCellStyle(t *testing.T) {
	theme := TestTheme()
	if _, ok := theme.cellStyle(cellEmpty); ok {
		t.Error("empty cells should not be styled")
	}
	for _, k := range []cellKind{cellGrid, cellHover, cellBar, cellBarHi, cellLine, cellDot, cellDotHi} {
		if _, ok := theme.cellStyle(k); !ok {
			t.Errorf("cell kind %d has no style", k)
		}
	}
}

func TestThemeFgBg(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI
	if _, ok := ThemeFg("#FF0000").(lipgloss.ANSIColor); !ok {
		t.Error("16-color terminals should get an ANSI foreground")
	}
	if _, ok := ThemeBg("#FF0000").(lipgloss.NoColor); !ok {
		t.Error("16-color terminals should keep their own background")
	}

	TermProfile = colorprofile.TrueColor
	if got := ThemeFg("#FF0000"); got != lipgloss.Color("#FF0000") {
		t.Errorf("ThemeFg = %v", got)
	}
}
