package ui

import (
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func TestTruncate_WidthSafe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "zero max", input: "hello", maxWidth: 0, want: ""},
		{name: "fits", input: "hello", maxWidth: 10, want: "hello"},
		{name: "ellipsis", input: "January 03", maxWidth: 5, want: "Janu…"},
		{name: "wide runes", input: "日本語ラベル", maxWidth: 5, want: "日本…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q; want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate output is not valid UTF-8: %q", got)
			}
			if w := runewidth.StringWidth(got); w > tt.maxWidth {
				t.Fatalf("truncate output is %d cells wide; max %d", w, tt.maxWidth)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padLeft("ab", 4); got != "  ab" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padLeft("日本", 5); got != " 日本" {
		t.Errorf("padLeft wide = %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Errorf("padRight should not cut, got %q", got)
	}
}
