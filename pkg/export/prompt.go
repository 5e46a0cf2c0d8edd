package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// PromptResult is what the interactive export prompt collected.
type PromptResult struct {
	Path   string
	Format string
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// CanPrompt reports whether an interactive prompt can run.
func CanPrompt() bool {
	return isTerminal()
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Prompt asks for an output path and format, starting from the given
// defaults.
func Prompt(defaultPath, defaultFormat string) (*PromptResult, error) {
	res := &PromptResult{Path: defaultPath, Format: defaultFormat}
	if res.Format == "" {
		res.Format = "all"
	}

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output path").
				Description("Extension is replaced by the chosen format").
				Value(&res.Path).
				Placeholder(defaultPath).
				Validate(validateOutputPath),
			huh.NewSelect[string]().
				Title("Format").
				Options(
					huh.NewOption("All (csv, png, svg)", "all"),
					huh.NewOption("CSV table", "csv"),
					huh.NewOption("PNG image", "png"),
					huh.NewOption("SVG image", "svg"),
					huh.NewOption("SQLite database", "sqlite"),
				).
				Value(&res.Format),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(res.Path) == "" {
		res.Path = defaultPath
	}
	return res, nil
}

func validateOutputPath(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if info, err := os.Stat(s); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	if dir := filepath.Dir(s); dir != "." {
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
	}
	return nil
}
