package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/chartview/pkg/debug"
	"github.com/vanderheijden86/chartview/pkg/metrics"
	"github.com/vanderheijden86/chartview/pkg/model"
	"github.com/vanderheijden86/chartview/pkg/viewport"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// Default snapshot size in pixels.
const (
	DefaultWidth  = 960
	DefaultHeight = 480
)

// SnapshotOptions controls chart snapshot export.
type SnapshotOptions struct {
	Path    string // Output path; format inferred from extension when Format empty
	Format  string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title   string
	Columns Columns
	Width   int
	Height  int
	// Domain is the zoom domain to draw; Points is the slice it projects to.
	Domain viewport.ZoomDomain
	Points []model.DataPoint
	// All is the full dataset, written by the CSV format. Points is used when
	// it is empty.
	All []model.DataPoint
}

// SaveSnapshot renders the visible part of the chart to a PNG or SVG file:
// bars for series A on the left axis, a line with dots for series B on the
// right axis, highlighted points in red.
func SaveSnapshot(opts SnapshotOptions) error {
	defer metrics.TimerWithCallback(metrics.SnapshotExport, func(d time.Duration) {
		debug.LogTiming("snapshot "+opts.Path, d)
	})()

	if len(opts.Points) == 0 {
		return fmt.Errorf("no points to export")
	}

	format, path, err := snapshotFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	opts.Path = path

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildChartLayout(opts)

	switch format {
	case "svg":
		return renderSVG(opts.Path, layout)
	case "png":
		return renderPNG(opts.Path, layout)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

func snapshotFormat(format, path string) (string, string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "png"
			if path != "" && filepath.Ext(path) == "" {
				path += ".png"
			}
		}
	}
	if format != "svg" && format != "png" {
		return "", "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if path == "" {
		return "", "", fmt.Errorf("output path is required")
	}
	return format, path, nil
}

// --- layout computation ----------------------------------------------------

type chartBar struct {
	X, Y, W, H  float64
	Highlighted bool
}

type chartDot struct {
	X, Y        float64
	Highlighted bool
}

type chartTick struct {
	Pos   float64
	Label string
}

type chartLayout struct {
	Width, Height int
	Title         string
	Columns       Columns
	// Plot area.
	PlotX, PlotY, PlotW, PlotH float64

	Bars    []chartBar
	Dots    []chartDot
	XLabels []chartTick
	Y1Ticks []chartTick
	Y2Ticks []chartTick
}

func buildChartLayout(opts SnapshotOptions) chartLayout {
	const (
		padding      = 24.0
		headerHeight = 48.0
		axisGutter   = 56.0
		labelHeight  = 28.0
	)

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	cols := opts.Columns.withDefaults()
	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = "Chart Snapshot"
	}

	l := chartLayout{
		Width:   width,
		Height:  height,
		Title:   title,
		Columns: cols,
		PlotX:   padding + axisGutter,
		PlotY:   padding + headerHeight,
	}
	l.PlotW = math.Max(float64(width)-2*(padding+axisGutter), 1)
	l.PlotH = math.Max(float64(height)-l.PlotY-padding-labelHeight, 1)

	d := opts.Domain
	bottom := l.PlotY + l.PlotH
	xAt := func(i float64) float64 {
		return l.PlotX + (i-d.X.Min)/d.X.Width()*l.PlotW
	}
	yAt := func(r viewport.Range, v float64) float64 {
		y := bottom - (v-r.Min)/r.Width()*l.PlotH
		return math.Min(math.Max(y, l.PlotY), bottom)
	}

	slot := l.PlotW / (d.X.Width() + 1)
	barW := math.Max(slot*0.6, 1)
	for _, p := range opts.Points {
		cx := xAt(float64(p.Index))
		top := yAt(d.Y1, p.ValueA)
		base := yAt(d.Y1, 0)
		l.Bars = append(l.Bars, chartBar{
			X: cx - barW/2, Y: math.Min(top, base), W: barW, H: math.Abs(base - top),
			Highlighted: p.Highlighted,
		})
		l.Dots = append(l.Dots, chartDot{X: cx, Y: yAt(d.Y2, p.ValueB), Highlighted: p.Highlighted})
		l.XLabels = append(l.XLabels, chartTick{Pos: cx, Label: truncate(p.Label, int(math.Max(slot/7, 3)))})
	}

	for _, v := range viewport.Ticks(d.Y1, viewport.DefaultTickCount) {
		l.Y1Ticks = append(l.Y1Ticks, chartTick{Pos: yAt(d.Y1, v), Label: viewport.FormatTick(v)})
	}
	for _, v := range viewport.Ticks(d.Y2, viewport.DefaultTickCount) {
		l.Y2Ticks = append(l.Y2Ticks, chartTick{Pos: yAt(d.Y2, v), Label: viewport.FormatTick(v)})
	}
	return l
}

// --- rendering -------------------------------------------------------------

var (
	colorBackdrop  = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	colorGrid      = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorSeriesA   = color.RGBA{0x75, 0x75, 0x75, 0xff}
	colorSeriesB   = color.RGBA{0x1e, 0x88, 0xe5, 0xff}
	colorHighlight = color.RGBA{0xe5, 0x39, 0x35, 0xff}
)

func barColor(highlighted bool) color.RGBA {
	if highlighted {
		return colorHighlight
	}
	return colorSeriesA
}

func dotColor(highlighted bool) color.RGBA {
	if highlighted {
		return colorHighlight
	}
	return colorSeriesB
}

func renderPNG(path string, l chartLayout) error {
	dc := gg.NewContext(l.Width, l.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(l.Width)-32, 40, 8)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(l.Title, 32, 36, 0, 0.5)
	drawLegend(dc, l)

	// grid and axes
	dc.SetLineWidth(1)
	for _, t := range l.Y1Ticks {
		dc.SetColor(colorGrid)
		dc.DrawLine(l.PlotX, t.Pos, l.PlotX+l.PlotW, t.Pos)
		dc.Stroke()
		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(t.Label, l.PlotX-6, t.Pos, 1, 0.5)
	}
	for _, t := range l.Y2Ticks {
		dc.DrawStringAnchored(t.Label, l.PlotX+l.PlotW+6, t.Pos, 0, 0.5)
	}
	for _, t := range l.XLabels {
		dc.DrawStringAnchored(t.Label, t.Pos, l.PlotY+l.PlotH+14, 0.5, 0.5)
	}

	for _, b := range l.Bars {
		dc.SetColor(barColor(b.Highlighted))
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		dc.Fill()
	}

	dc.SetColor(colorSeriesB)
	dc.SetLineWidth(2)
	for i, p := range l.Dots {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.Stroke()
	for _, p := range l.Dots {
		dc.SetColor(dotColor(p.Highlighted))
		dc.DrawCircle(p.X, p.Y, 4)
		dc.Fill()
	}

	return dc.SavePNG(path)
}

func drawLegend(dc *gg.Context, l chartLayout) {
	x := float64(l.Width) - 320
	y := 36.0
	dc.SetColor(colorSeriesA)
	dc.DrawRectangle(x, y-6, 12, 12)
	dc.Fill()
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(l.Columns.SeriesA, x+18, y, 0, 0.5)
	x += 160
	dc.SetColor(colorSeriesB)
	dc.DrawCircle(x+6, y, 5)
	dc.Fill()
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(l.Columns.SeriesB, x+18, y, 0, 0.5)
}

func renderSVG(path string, l chartLayout) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderSVGToWriter(file, l)
}

func renderSVGToWriter(w io.Writer, l chartLayout) error {
	canvas := svg.New(w)
	canvas.Start(l.Width, l.Height)
	canvas.Rect(0, 0, l.Width, l.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, l.Width-32, 40, 8, 8, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(32, 41, l.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))

	lx := l.Width - 320
	canvas.Rect(lx, 30, 12, 12, fmt.Sprintf("fill:%s", css(colorSeriesA)))
	canvas.Text(lx+18, 41, l.Columns.SeriesA, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	canvas.Circle(lx+166, 36, 5, fmt.Sprintf("fill:%s", css(colorSeriesB)))
	canvas.Text(lx+178, 41, l.Columns.SeriesB, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))

	px, pw := int(l.PlotX), int(l.PlotX+l.PlotW)
	small := fmt.Sprintf("fill:%s;font-size:11px;font-family:monospace", css(colorSubtle))
	for _, t := range l.Y1Ticks {
		canvas.Line(px, int(t.Pos), pw, int(t.Pos), fmt.Sprintf("stroke:%s;stroke-width:1", css(colorGrid)))
		canvas.Text(px-6, int(t.Pos)+4, t.Label, small+";text-anchor:end")
	}
	for _, t := range l.Y2Ticks {
		canvas.Text(pw+6, int(t.Pos)+4, t.Label, small)
	}
	for _, t := range l.XLabels {
		canvas.Text(int(t.Pos), int(l.PlotY+l.PlotH)+16, t.Label, small+";text-anchor:middle")
	}

	for _, b := range l.Bars {
		canvas.Rect(int(b.X), int(b.Y), int(math.Max(b.W, 1)), int(b.H), fmt.Sprintf("fill:%s", css(barColor(b.Highlighted))))
	}

	xs := make([]int, len(l.Dots))
	ys := make([]int, len(l.Dots))
	for i, p := range l.Dots {
		xs[i], ys[i] = int(p.X), int(p.Y)
	}
	canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", css(colorSeriesB)))
	for _, p := range l.Dots {
		canvas.Circle(int(p.X), int(p.Y), 4, fmt.Sprintf("fill:%s", css(dotColor(p.Highlighted))))
	}

	canvas.End()
	return nil
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
