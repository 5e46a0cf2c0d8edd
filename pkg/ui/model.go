// Package ui hosts a chart viewport in a bubbletea program: wheel zoom and
// drag pan with the mouse, keyboard zoom and pan, label search, a print view
// and snapshot export.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	scroll "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/chartview/pkg/config"
	"github.com/vanderheijden86/chartview/pkg/debug"
	"github.com/vanderheijden86/chartview/pkg/export"
	"github.com/vanderheijden86/chartview/pkg/model"
	"github.com/vanderheijden86/chartview/pkg/viewport"
	"github.com/vanderheijden86/chartview/pkg/watcher"
)

// Default terminal size used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// statusTTL is how long a status message stays in the info line.
const statusTTL = 3 * time.Second

// ConfigChangedMsg is sent when the config file changes on disk
type ConfigChangedMsg struct{}

// WatchConfigCmd returns a command that waits for config changes and sends ConfigChangedMsg
func WatchConfigCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return ConfigChangedMsg{}
	}
}

type exportDoneMsg struct {
	paths []string
	err   error
}

type clearStatusMsg struct{ seq int }

// frame is the render adapter's copy of the viewport state. Every copy of
// the Model shares one frame, so the subscription survives bubbletea's value
// semantics.
type frame struct {
	state   viewport.State
	version int

	cacheKey frameKey
	cache    string
}

type frameKey struct {
	version, width, height, hover int
}

// Option configures a Model.
type Option func(*Model)

// WithLoadError shows the "data unavailable" display with err.
func WithLoadError(err error) Option {
	return func(m *Model) {
		m.loadErr = err
	}
}

// WithSource sets the data source description shown in the header.
func WithSource(desc string) Option {
	return func(m *Model) {
		m.source = desc
	}
}

// WithConfigWatcher reloads chart text from path whenever w fires.
func WithConfigWatcher(w *watcher.Watcher, path string) Option {
	return func(m *Model) {
		m.watcher = w
		m.configPath = path
	}
}

// WithHooksDir runs export hooks from hooks.yaml in dir. Empty disables them.
func WithHooksDir(dir string) Option {
	return func(m *Model) {
		m.hooksDir = dir
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		m.copy = fn
	}
}

// WithTheme replaces the default theme.
func WithTheme(t Theme) Option {
	return func(m *Model) {
		m.theme = t
	}
}

// Model is the main bubbletea model.
type Model struct {
	cfg    config.Config
	cols   export.Columns
	source string

	vp      *viewport.Viewport
	binding *viewport.Binding
	unsub   func()
	frame   *frame
	loadErr error

	theme Theme
	keys  KeyMap
	help  help.Model
	input textinput.Model

	printOpen bool
	printView scroll.Model

	width, height int
	chartHeight   int
	geo           chartGeometry
	hoverX        int

	status    string
	statusErr bool
	statusSeq int

	watcher    *watcher.Watcher
	configPath string
	hooksDir   string
	copy       func(string) error
	now        func() time.Time
}

// NewModel mounts a viewport over ds. A nil dataset, a dataset too small to
// chart, or a WithLoadError option give the "data unavailable" display.
func NewModel(ds *model.Dataset, cfg config.Config, opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "label"
	input.Prompt = "Search: "
	input.CharLimit = 64
	input.Width = 32

	h := help.New()
	h.ShowAll = cfg.UI.ShowHelp

	m := Model{
		cfg:    cfg,
		cols:   ColumnsFor(cfg),
		theme:  DefaultTheme(lipgloss.DefaultRenderer()),
		keys:   DefaultKeyMap(),
		help:   h,
		input:  input,
		frame:  &frame{},
		width:  defaultWidth,
		height: defaultHeight,
		hoverX: -1,
		copy:   clipboard.WriteAll,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.loadErr == nil {
		if ds == nil {
			m.loadErr = fmt.Errorf("no dataset")
		} else if vp, err := viewport.New(ds); err != nil {
			m.loadErr = err
		} else {
			m.vp = vp
		}
	}
	if m.vp != nil {
		f := m.frame
		f.state = m.vp.State()
		m.unsub = m.vp.Subscribe(func(s viewport.State) {
			f.state = s
			f.version++
		})
		m.binding = m.vp.Mount()
	} else {
		debug.Log("ui: data unavailable: %v", m.loadErr)
	}

	m.relayout()
	return m
}

// ColumnsFor maps the chart config onto export column names.
func ColumnsFor(cfg config.Config) export.Columns {
	return export.Columns{
		Label:   cfg.Chart.LabelHeader,
		SeriesA: cfg.Chart.SeriesA,
		SeriesB: cfg.Chart.SeriesB,
	}
}

// SnapshotOptions describes the current view of v for export.
func SnapshotOptions(v *viewport.Viewport, cfg config.Config) export.SnapshotOptions {
	return export.SnapshotOptions{
		Title:   cfg.Chart.Title,
		Columns: ColumnsFor(cfg),
		Width:   cfg.Export.Width,
		Height:  cfg.Export.Height,
		Domain:  v.Domain(),
		Points:  v.Visible(),
		All:     v.Dataset().Points(),
	}
}

// Viewport returns the hosted viewport, nil when data is unavailable.
func (m Model) Viewport() *viewport.Viewport {
	return m.vp
}

// LoadError returns why data is unavailable.
func (m Model) LoadError() error {
	return m.loadErr
}

// Close releases the viewport's listeners and the render subscription.
func (m Model) Close() {
	if m.binding != nil {
		m.binding.Release()
	}
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchConfigCmd(m.watcher)
	}
	return nil
}

// relayout recomputes the plot geometry and tells the viewport how large the
// drag surface is.
func (m *Model) relayout() {
	rows := 4 // header, legend, info, help
	if m.vp != nil && m.vp.SearchOpen() {
		rows++
	}
	m.chartHeight = max(m.height-rows, 3)
	m.geo = layoutChart(0, 2, m.width, m.chartHeight)
	if m.vp != nil {
		m.vp.SetSurface(m.geo.surface())
	}
	m.help.Width = m.width
	if m.printOpen {
		m.printView.Width = m.width
		m.printView.Height = max(m.height-2, 1)
	}
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()
		if m.printOpen {
			m.renderPrint()
		}
		return m, nil

	case ConfigChangedMsg:
		return m.reloadConfig()

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.setStatus("Export failed: "+msg.err.Error(), true)
		}
		return m, m.setStatus("Exported "+strings.Join(msg.paths, ", "), false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.Close()
		return m, tea.Quit
	}

	if m.printOpen {
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Print):
			m.printOpen = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.printView, cmd = m.printView.Update(msg)
		return m, cmd
	}

	if m.vp != nil && m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.Submit):
			st := m.vp.Search(m.input.Value())
			m.input.Blur()
			if st.Active() {
				debug.Log("ui: search %q -> %s", st.Term, st.Summary())
			}
			return m, nil
		case key.Matches(msg, m.keys.Close):
			m.closeSearch()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.vp == nil {
		return m, nil
	}

	step := func(size int) float64 { return max(float64(size)/10, 1) }

	switch {
	case key.Matches(msg, m.keys.Close):
		if m.vp.SearchOpen() {
			m.closeSearch()
		}
	case key.Matches(msg, m.keys.ZoomIn):
		m.vp.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.vp.ZoomOut()
	case key.Matches(msg, m.keys.Home):
		m.vp.Home()
		m.input.Blur()
		m.input.SetValue("")
		m.relayout()
	case key.Matches(msg, m.keys.PanLeft):
		m.panBy(step(m.geo.Width), 0)
	case key.Matches(msg, m.keys.PanRight):
		m.panBy(-step(m.geo.Width), 0)
	case key.Matches(msg, m.keys.PanUp):
		m.panBy(0, step(m.geo.Height))
	case key.Matches(msg, m.keys.PanDown):
		m.panBy(0, -step(m.geo.Height))
	case key.Matches(msg, m.keys.Search):
		// The input is unfocused here, so an open panel has been submitted.
		if m.vp.SearchOpen() {
			m.closeSearch()
			return m, nil
		}
		m.vp.ToggleSearch()
		m.input.SetValue("")
		m.relayout()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Print):
		m.printOpen = true
		m.relayout()
		m.renderPrint()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyVisible()
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	}
	return m, nil
}

func (m *Model) closeSearch() {
	if m.vp.SearchOpen() {
		m.vp.ToggleSearch()
	}
	m.input.Blur()
	m.input.SetValue("")
	m.relayout()
}

// panBy drags from the centre of the plot by (dx, dy) cells through the same
// binding the mouse uses.
func (m *Model) panBy(dx, dy float64) {
	if m.binding == nil || !m.geo.valid() {
		return
	}
	from := viewport.Point{
		X: float64(m.geo.Left + m.geo.Width/2),
		Y: float64(m.geo.Top + m.geo.Height/2),
	}
	m.binding.PointerDown(from)
	m.binding.PointerMove(viewport.Point{X: from.X + dx, Y: from.Y + dy})
	m.binding.PointerUp(from)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.vp == nil || m.binding == nil || m.printOpen || !m.cfg.MouseEnabled() {
		return m, nil
	}
	at := viewport.Point{X: float64(msg.X), Y: float64(msg.Y)}
	inside := m.geo.contains(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp, msg.Button == tea.MouseButtonWheelDown:
		if !inside {
			return m, nil
		}
		delta := 1.0
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		m.binding.Wheel(viewport.WheelEvent{Delta: delta, CursorX: m.geo.normX(msg.X)})

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside {
			m.binding.PointerDown(at)
		}

	case msg.Action == tea.MouseActionMotion:
		if m.binding.Listening(viewport.ListenPointerMove) {
			m.binding.PointerMove(at)
			return m, nil
		}
		if inside {
			m.hoverX = msg.X
		} else {
			m.hoverX = -1
		}

	case msg.Action == tea.MouseActionRelease:
		m.binding.PointerUp(at)
	}
	return m, nil
}

func (m Model) reloadConfig() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, WatchConfigCmd(m.watcher))
	}

	cfg, err := config.LoadFrom(m.configPath)
	if err != nil {
		debug.Log("ui: config reload: %v", err)
		cmds = append(cmds, m.setStatus("Config error: "+err.Error(), true))
		return m, tea.Batch(cmds...)
	}
	// The dataset is fixed for the session.
	cfg.Data = m.cfg.Data
	m.cfg = cfg
	m.cols = ColumnsFor(cfg)
	m.help.ShowAll = cfg.UI.ShowHelp
	cmds = append(cmds, m.setStatus("Config reloaded", false))
	return m, tea.Batch(cmds...)
}

func (m *Model) copyVisible() tea.Cmd {
	rows := m.vp.Visible()
	text, err := export.CSVString(rows, m.cols)
	if err == nil {
		err = m.copy(text)
	}
	if err != nil {
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m.setStatus(fmt.Sprintf("Copied %d rows", len(rows)), false)
}

func (m Model) exportCmd() tea.Cmd {
	opts := SnapshotOptions(m.vp, m.cfg)
	formats, ferr := export.ExpandFormat(m.cfg.Export.Format)
	base := filepath.Join(m.cfg.Export.Dir, "chart-"+m.now().Format("20060102-150405"))
	hooksDir := m.hooksDir
	return func() tea.Msg {
		if ferr != nil {
			return exportDoneMsg{err: ferr}
		}
		res, err := export.Run(context.Background(), export.Job{
			Base:     base,
			Formats:  formats,
			Options:  opts,
			HooksDir: hooksDir,
		})
		if res.HookSummary != "" {
			debug.Log("export hooks:\n%s", res.HookSummary)
		}
		return exportDoneMsg{paths: res.Paths, err: err}
	}
}

func (m *Model) renderPrint() {
	md := export.MarkdownTable(m.cfg.Chart.Title, m.vp.Dataset().Points(), m.cols)
	content := md
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(m.width-4, 20)),
	)
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			content = out
		}
	}
	m.printView = scroll.New(m.width, max(m.height-2, 1))
	m.printView.SetContent(content)
}

// hoverPoint returns the point under the mouse, if any.
func (m Model) hoverPoint() (model.DataPoint, bool) {
	if m.vp == nil || m.hoverX < 0 {
		return model.DataPoint{}, false
	}
	return m.vp.PointAt(m.geo.normX(m.hoverX))
}
