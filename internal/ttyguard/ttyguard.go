// Package ttyguard stops terminal capability probing for runs that never
// start the TUI. Import it for its side effect before anything renders.
package ttyguard

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal.
//
// Lipgloss background detection writes OSC/DSR queries to stdout. When cv
// only prints export paths or its version, those bytes end up in pipes and
// captured output. Termenv skips probing when CI is set.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv("CV_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

// shouldSuppressTTYQueries reports whether args describe a run without the
// TUI: --version, --help, or --export with a path. "--export -" prompts on
// the terminal and keeps probing.
func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}

	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		switch name {
		case "version", "help", "h":
			return true
		case "export":
			if !hasValue && i+1 < len(args) {
				value = args[i+1]
			}
			if value != "" && value != "-" {
				return true
			}
		}
	}

	return false
}
