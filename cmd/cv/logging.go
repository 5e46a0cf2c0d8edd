package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/chartview/pkg/debug"
)

// setupLogging routes the stdlib logger, Bubble Tea's logger and the
// CV_DEBUG logger to filename. With no filename the stdlib logger is
// discarded so it cannot draw over the TUI.
func setupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	debug.SetOutput(f)

	tf, err := tea.LogToFile(filename, "cv")
	if err != nil {
		f.Close()
		return nil, err
	}

	cleanup = func() {
		debug.SetOutput(os.Stderr)
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}
