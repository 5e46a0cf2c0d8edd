package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func withBuffer(t *testing.T, on bool) *bytes.Buffer {
	t.Helper()
	was := Enabled()
	var buf bytes.Buffer
	SetEnabled(on)
	SetOutput(&buf)
	t.Cleanup(func() { SetEnabled(was) })
	return &buf
}

func TestLogDisabledWritesNothing(t *testing.T) {
	buf := withBuffer(t, false)
	Log("hello %d", 1)
	LogTiming("op", time.Millisecond)
	LogEnterExit("fn")()
	Dump("v", 3)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLogEnabled(t *testing.T) {
	buf := withBuffer(t, true)
	Log("zoom %s", "rejected")
	LogIf(false, "skipped")
	LogIf(true, "kept")
	LogEnterExit("export")()

	out := buf.String()
	for _, want := range []string{"[CV_DEBUG]", "zoom rejected", "kept", "-> export", "<- export"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "skipped") {
		t.Error("LogIf(false) should not write")
	}
}
