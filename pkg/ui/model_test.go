package ui

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/chartview/pkg/config"
	"github.com/vanderheijden86/chartview/pkg/model"
	"github.com/vanderheijden86/chartview/pkg/viewport"
)

func sampleDataset(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := model.NewDataset(model.SamplePoints())
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{WithTheme(TestTheme()), WithClipboard(func(string) error { return nil })}, opts...)
	m := NewModel(sampleDataset(t), config.DefaultConfig(), opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestNewModel_Unavailable(t *testing.T) {
	m := NewModel(nil, config.DefaultConfig(), WithLoadError(errors.New("open orders.csv: no such file")))
	if m.Viewport() != nil {
		t.Fatal("expected no viewport")
	}
	view := m.View()
	if !strings.Contains(view, "Data unavailable") {
		t.Errorf("expected unavailable display, got:\n%s", view)
	}

	// Keys other than quit must not crash.
	m = press(t, m, "+-0/py")
	if _, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should quit from the unavailable display")
	}
}

func TestNewModel_InsufficientData(t *testing.T) {
	ds, err := model.NewDataset(model.SamplePoints()[:1])
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(ds, config.DefaultConfig())
	if !errors.Is(m.LoadError(), viewport.ErrInsufficientData) {
		t.Errorf("LoadError = %v, want ErrInsufficientData", m.LoadError())
	}
}

func TestModel_MountsViewport(t *testing.T) {
	m := newTestModel(t)
	if !m.Viewport().Mounted() {
		t.Fatal("viewport should be mounted")
	}
	s := m.Viewport().Surface()
	if s.Width != float64(m.geo.Width) || s.Height != float64(m.geo.Height) {
		t.Errorf("surface %+v does not match plot %dx%d", s, m.geo.Width, m.geo.Height)
	}
}

func TestModel_WheelZoomAnchorsAtCursor(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.MouseMsg{X: m.geo.Left, Y: m.geo.Top + 1, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})

	d := m.Viewport().Domain()
	if d.X.Min != 0 {
		t.Errorf("x min moved to %v with cursor at the left edge", d.X.Min)
	}
	if math.Abs(d.X.Max-6.3) > 1e-9 {
		t.Errorf("x max = %v, want 6.3", d.X.Max)
	}

	m, _ = send(m, tea.MouseMsg{X: m.geo.Left, Y: m.geo.Top + 1, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.Viewport().Domain().X.Width() <= d.X.Width() {
		t.Error("wheel down should zoom out")
	}
}

func TestModel_WheelOutsidePlotIgnored(t *testing.T) {
	m := newTestModel(t)
	before := m.Viewport().Domain()
	m, _ = send(m, tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.Viewport().Domain() != before {
		t.Error("wheel over the header should not zoom")
	}
}

func TestModel_DragPan(t *testing.T) {
	m := press(t, newTestModel(t), "++")
	before := m.Viewport().Domain()

	x, y := m.geo.Left+m.geo.Width/2, m.geo.Top+m.geo.Height/2
	m, _ = send(m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.Viewport().PanState() != viewport.Panning {
		t.Fatal("expected panning after press")
	}
	m, _ = send(m, tea.MouseMsg{X: x + 10, Y: y, Action: tea.MouseActionMotion})
	m, _ = send(m, tea.MouseMsg{X: x + 10, Y: y, Action: tea.MouseActionRelease})

	after := m.Viewport().Domain()
	if after.X.Min >= before.X.Min {
		t.Errorf("dragging right should move the window left: %v -> %v", before.X, after.X)
	}
	if math.Abs(after.X.Width()-before.X.Width()) > 1e-9 {
		t.Errorf("pan changed x width: %v -> %v", before.X.Width(), after.X.Width())
	}
	if m.binding.Listening(viewport.ListenPointerMove) {
		t.Error("move listener should be dropped after release")
	}
	if m.Viewport().PanState() != viewport.PanIdle {
		t.Error("expected idle after release")
	}
}

func TestModel_MouseDisabled(t *testing.T) {
	off := false
	cfg := config.DefaultConfig()
	cfg.UI.Mouse = &off
	m := NewModel(sampleDataset(t), cfg, WithTheme(TestTheme()))
	before := m.Viewport().Domain()
	m, _ = send(m, tea.MouseMsg{X: m.geo.Left + 2, Y: m.geo.Top + 2, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if m.Viewport().Domain() != before {
		t.Error("mouse input should be ignored when disabled")
	}
}

func TestModel_KeyZoomPanHome(t *testing.T) {
	m := press(t, newTestModel(t), "+")
	zoomed := m.Viewport().Domain()
	if zoomed == viewport.FullExtent(8) {
		t.Fatal("+ should zoom in")
	}

	m = press(t, m, "l")
	if m.Viewport().Domain().X.Min <= zoomed.X.Min {
		t.Error("l should pan towards later points")
	}
	m = press(t, m, "h")

	m = press(t, m, "-0")
	if m.Viewport().Domain() != viewport.FullExtent(8) {
		t.Errorf("0 should restore the full extent, got %v", m.Viewport().Domain())
	}
}

func TestModel_SearchFlow(t *testing.T) {
	m := press(t, newTestModel(t), "/")
	if !m.Viewport().SearchOpen() || !m.input.Focused() {
		t.Fatal("/ should open and focus the search panel")
	}
	m = press(t, m, "Jan 1")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Viewport().Dataset().HighlightedCount(); got != 3 {
		t.Errorf("highlighted = %d, want 3", got)
	}
	if !strings.Contains(m.View(), "Found 3 results") {
		t.Error("expected result indicator in view")
	}

	// Keys reach the chart again once the search is submitted.
	m = press(t, m, "+")
	if m.Viewport().Domain() == viewport.FullExtent(8) {
		t.Error("+ should zoom after submitting the search")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Viewport().SearchOpen() {
		t.Error("esc should close the search panel")
	}
	if got := m.Viewport().Dataset().HighlightedCount(); got != 0 {
		t.Errorf("closing search left %d highlights", got)
	}
}

func TestModel_SearchKeyTogglesPanel(t *testing.T) {
	m := press(t, newTestModel(t), "/")
	m = press(t, m, "Jan/1")
	if got := m.input.Value(); got != "Jan/1" {
		t.Fatalf("focused input should take /, got %q", got)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Viewport().Dataset().HighlightedCount() != 0 {
		t.Fatal("Jan/1 should not match any label")
	}

	m = press(t, m, "/")
	if m.Viewport().SearchOpen() {
		t.Error("/ should close a submitted search panel")
	}

	m = press(t, m, "/")
	if !m.Viewport().SearchOpen() || !m.input.Focused() {
		t.Fatal("/ should reopen and focus the search panel")
	}
	if m.input.Value() != "" {
		t.Errorf("reopened panel kept %q", m.input.Value())
	}
	m = press(t, m, "Jan 1")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, "/")
	if m.Viewport().SearchOpen() {
		t.Error("/ should close the panel")
	}
	if got := m.Viewport().Dataset().HighlightedCount(); got != 0 {
		t.Errorf("closing with / left %d highlights", got)
	}
}

func TestModel_SearchNoMatch(t *testing.T) {
	m := press(t, newTestModel(t), "/")
	m = press(t, m, "Feb")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "0 results") {
		t.Error("expected 0 results indicator")
	}
}

func TestModel_SearchSingleMatchFocuses(t *testing.T) {
	m := press(t, newTestModel(t), "/")
	m = press(t, m, "jan 15")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	x := m.Viewport().Domain().X
	if x.Min != 3 || x.Max != 5 {
		t.Errorf("x = %v, want [3, 5]", x)
	}
}

func TestModel_HoverTooltip(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.MouseMsg{X: m.geo.Left, Y: m.geo.Top + 3, Action: tea.MouseActionMotion})
	if !strings.Contains(m.infoView(), "Jan 03") {
		t.Errorf("tooltip should name the first point, got %q", m.infoView())
	}

	m, _ = send(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	if strings.Contains(m.infoView(), "Number of orders: ") {
		t.Error("tooltip should clear when the mouse leaves the plot")
	}
}

func TestModel_CopyVisible(t *testing.T) {
	var copied string
	m := newTestModel(t, WithClipboard(func(s string) error {
		copied = s
		return nil
	}))
	m = press(t, m, "++y")

	lines := strings.Split(strings.TrimSpace(copied), "\n")
	if lines[0] != "Date,Number of orders,Payments" {
		t.Errorf("header = %q", lines[0])
	}
	if got, want := len(lines)-1, len(m.Viewport().Visible()); got != want {
		t.Errorf("copied %d rows, want %d", got, want)
	}
	if !strings.Contains(m.status, "Copied") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_CopyFailure(t *testing.T) {
	m := newTestModel(t, WithClipboard(func(string) error { return errors.New("no clipboard") }))
	m = press(t, m, "y")
	if !m.statusErr || !strings.Contains(m.status, "no clipboard") {
		t.Errorf("status = %q err=%v", m.status, m.statusErr)
	}
}

func TestModel_PrintView(t *testing.T) {
	m := press(t, newTestModel(t), "p")
	if !m.printOpen {
		t.Fatal("p should open the print view")
	}
	if !strings.Contains(m.View(), "Jan 27") {
		t.Error("print view should list every point")
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.printOpen {
		t.Error("esc should close the print view")
	}
}

func TestModel_Export(t *testing.T) {
	m := newTestModel(t)
	m.cfg.Export.Dir = t.TempDir()
	m.cfg.Export.Format = "csv"
	m.now = func() time.Time { return time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC) }

	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if cmd == nil {
		t.Fatal("e should return an export command")
	}
	msg, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if msg.err != nil {
		t.Fatal(msg.err)
	}
	want := filepath.Join(m.cfg.Export.Dir, "chart-20240131-120000.csv")
	if len(msg.paths) != 1 || msg.paths[0] != want {
		t.Errorf("paths = %v, want [%s]", msg.paths, want)
	}

	m, _ = send(m, msg)
	if !strings.HasPrefix(m.status, "Exported") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_ExportBlockedByHook(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hooks.yaml"), []byte("hooks:\n  pre-export:\n    - name: gate\n      command: exit 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, WithHooksDir(dir))
	m.cfg.Export.Dir = dir
	m.cfg.Export.Format = "csv"

	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	msg := cmd().(exportDoneMsg)
	if msg.err == nil || !strings.Contains(msg.err.Error(), "gate") {
		t.Fatalf("expected gate hook failure, got %v", msg.err)
	}
	if len(msg.paths) != 0 {
		t.Errorf("paths = %v", msg.paths)
	}

	m, _ = send(m, msg)
	if !m.statusErr || !strings.HasPrefix(m.status, "Export failed") {
		t.Errorf("status = %q (err=%v)", m.status, m.statusErr)
	}
}

func TestModel_StatusClears(t *testing.T) {
	m := press(t, newTestModel(t), "y")
	seq := m.statusSeq
	m, _ = send(m, clearStatusMsg{seq: seq - 1})
	if m.status == "" {
		t.Error("stale clear message should be ignored")
	}
	m, _ = send(m, clearStatusMsg{seq: seq})
	if m.status != "" {
		t.Error("status should clear")
	}
}

func TestModel_ConfigReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "chart:\n  title: Weekly\n  series_a: Tickets\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, WithConfigWatcher(nil, path))
	m, _ = send(m, ConfigChangedMsg{})

	if m.cfg.Chart.Title != "Weekly" || m.cols.SeriesA != "Tickets" {
		t.Errorf("config not applied: %+v", m.cfg.Chart)
	}
	if m.cols.SeriesB != "Payments" {
		t.Errorf("unset keys should keep defaults, got %q", m.cols.SeriesB)
	}
	if !strings.Contains(m.View(), "Tickets") {
		t.Error("legend should show the new series name")
	}
}

func TestModel_QuitReleasesBinding(t *testing.T) {
	m := newTestModel(t)
	vp := m.Viewport()
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if vp.Mounted() {
		t.Error("quitting should release the viewport binding")
	}
}

func TestModel_ReleaseMidDrag(t *testing.T) {
	m := press(t, newTestModel(t), "+")
	x, y := m.geo.Left+5, m.geo.Top+5
	m, _ = send(m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m.Close()
	if m.Viewport().PanState() != viewport.PanIdle {
		t.Error("Close should discard the drag")
	}
	before := m.Viewport().Domain()
	m, _ = send(m, tea.MouseMsg{X: x + 20, Y: y, Action: tea.MouseActionMotion})
	if m.Viewport().Domain() != before {
		t.Error("motion after Close should not pan")
	}
}

func TestModel_RendersOnStateChange(t *testing.T) {
	m := newTestModel(t)
	v0 := m.frame.version
	m = press(t, m, "+")
	if m.frame.version == v0 {
		t.Error("zoom should notify the render adapter")
	}
	first := m.chartView()
	if m.chartView() != first {
		t.Error("unchanged state should reuse the cached chart")
	}
}
