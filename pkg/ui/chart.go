package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/chartview/pkg/model"
	"github.com/vanderheijden86/chartview/pkg/viewport"
)

// gutterWidth is the width of each y-axis label column.
const gutterWidth = 8

// chartGeometry locates the plot area in terminal cells.
type chartGeometry struct {
	Left, Top     int
	Width, Height int
}

func (g chartGeometry) valid() bool {
	return g.Width > 1 && g.Height > 1
}

func (g chartGeometry) contains(x, y int) bool {
	return g.valid() && x >= g.Left && x < g.Left+g.Width && y >= g.Top && y < g.Top+g.Height
}

// normX maps a terminal column to [0, 1] across the plot area, matching
// columnFor so that PointAt lands on the drawn point.
func (g chartGeometry) normX(x int) float64 {
	if g.Width <= 1 {
		return 0
	}
	v := float64(x-g.Left) / float64(g.Width-1)
	return math.Min(math.Max(v, 0), 1)
}

func (g chartGeometry) surface() viewport.Size {
	return viewport.Size{Width: float64(g.Width), Height: float64(g.Height)}
}

// layoutChart places the plot area inside a chart block of the given size
// whose top-left corner is at (left, top).
func layoutChart(left, top, width, height int) chartGeometry {
	return chartGeometry{
		Left:   left + gutterWidth,
		Top:    top,
		Width:  max(width-2*gutterWidth, 0),
		Height: max(height-1, 0), // last row holds x labels
	}
}

func columnFor(d viewport.ZoomDomain, index float64, width int) int {
	if width <= 1 {
		return 0
	}
	return int(math.Round((index - d.X.Min) / d.X.Width() * float64(width-1)))
}

// rowFor maps v on axis r to a row, 0 being the top of the plot.
func rowFor(r viewport.Range, v float64, height int) int {
	frac := (v - r.Min) / r.Width()
	return clampInt(height-1-int(math.Round(frac*float64(height-1))), 0, height-1)
}

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellGrid
	cellHover
	cellBar
	cellBarHi
	cellLine
	cellDot
	cellDotHi
)

func (k cellKind) glyph() rune {
	switch k {
	case cellGrid:
		return glyphGrid
	case cellHover:
		return '│'
	case cellBar, cellBarHi:
		return glyphBar
	case cellLine:
		return glyphLine
	case cellDot, cellDotHi:
		return glyphDot
	default:
		return ' '
	}
}

func (t Theme) cellStyle(k cellKind) (lipgloss.Style, bool) {
	switch k {
	case cellGrid:
		return t.GridLine, true
	case cellHover:
		return t.Hover, true
	case cellBar:
		return t.Bar, true
	case cellBarHi:
		return t.BarHi, true
	case cellLine:
		return t.Line, true
	case cellDot:
		return t.Dot, true
	case cellDotHi:
		return t.DotHi, true
	default:
		return lipgloss.Style{}, false
	}
}

// plotGrid is the plot area as a matrix of cell kinds.
type plotGrid struct {
	w, h  int
	cells [][]cellKind
}

func newPlotGrid(w, h int) *plotGrid {
	g := &plotGrid{w: w, h: h, cells: make([][]cellKind, h)}
	for i := range g.cells {
		g.cells[i] = make([]cellKind, w)
	}
	return g
}

func (g *plotGrid) set(col, row int, k cellKind) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return
	}
	g.cells[row][col] = k
}

func (g *plotGrid) setIfEmpty(col, row int, k cellKind) {
	if col < 0 || col >= g.w || row < 0 || row >= g.h {
		return
	}
	if g.cells[row][col] <= cellHover {
		g.cells[row][col] = k
	}
}

// plotPoints draws bars for series A and a line with dots for series B.
func plotPoints(g *plotGrid, d viewport.ZoomDomain, points []model.DataPoint) {
	slot := float64(g.w-1) / d.X.Width()
	barW := max(1, int(slot*0.6))

	for _, p := range points {
		c := columnFor(d, float64(p.Index), g.w)
		frac := math.Min(math.Max((p.ValueA-d.Y1.Min)/d.Y1.Width(), 0), 1)
		cells := int(math.Round(frac * float64(g.h)))
		kind := cellBar
		if p.Highlighted {
			kind = cellBarHi
		}
		for col := c - barW/2; col < c-barW/2+barW; col++ {
			for r := g.h - cells; r < g.h; r++ {
				g.set(col, r, kind)
			}
		}
	}

	for i := 1; i < len(points); i++ {
		c0 := columnFor(d, float64(points[i-1].Index), g.w)
		c1 := columnFor(d, float64(points[i].Index), g.w)
		r0 := rowFor(d.Y2, points[i-1].ValueB, g.h)
		r1 := rowFor(d.Y2, points[i].ValueB, g.h)
		if c1 <= c0 {
			continue
		}
		for c := max(c0+1, 0); c < c1 && c < g.w; c++ {
			r := r0 + int(math.Round(float64(r1-r0)*float64(c-c0)/float64(c1-c0)))
			g.set(c, r, cellLine)
		}
	}

	for _, p := range points {
		kind := cellDot
		if p.Highlighted {
			kind = cellDotHi
		}
		g.set(columnFor(d, float64(p.Index), g.w), rowFor(d.Y2, p.ValueB, g.h), kind)
	}
}

// renderChart draws the plot with both y axes and the x labels into a block
// of width x height cells. hoverCol marks a plot column, -1 for none.
func renderChart(st viewport.State, t Theme, width, height, hoverCol int) string {
	geo := layoutChart(0, 0, width, height)
	if !geo.valid() {
		return ""
	}
	d := st.Domain
	g := newPlotGrid(geo.Width, geo.Height)

	y1Ticks := viewport.Ticks(d.Y1, viewport.DefaultTickCount)
	y2Ticks := viewport.Ticks(d.Y2, viewport.DefaultTickCount)
	leftLabels := make(map[int]string, len(y1Ticks))
	rightLabels := make(map[int]string, len(y2Ticks))
	for i, v := range y1Ticks {
		r := rowFor(d.Y1, v, g.h)
		leftLabels[r] = viewport.FormatTick(v)
		rightLabels[rowFor(d.Y2, y2Ticks[i], g.h)] = viewport.FormatTick(y2Ticks[i])
		for c := 0; c < g.w; c++ {
			g.set(c, r, cellGrid)
		}
	}
	if hoverCol >= 0 && hoverCol < g.w {
		for r := 0; r < g.h; r++ {
			g.setIfEmpty(hoverCol, r, cellHover)
		}
	}
	plotPoints(g, d, st.Visible)

	var sb strings.Builder
	for r := 0; r < g.h; r++ {
		sb.WriteString(t.AxisText.Render(padLeft(leftLabels[r], gutterWidth-1)))
		sb.WriteByte(' ')
		renderRow(&sb, t, g.cells[r])
		sb.WriteByte(' ')
		sb.WriteString(t.AxisText.Render(padRight(rightLabels[r], gutterWidth-1)))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(" ", gutterWidth))
	sb.WriteString(t.AxisText.Render(xLabelRow(d, st.Visible, g.w)))
	return sb.String()
}

// renderRow styles runs of equal cells together.
func renderRow(sb *strings.Builder, t Theme, row []cellKind) {
	for start := 0; start < len(row); {
		end := start
		for end < len(row) && row[end] == row[start] {
			end++
		}
		run := strings.Repeat(string(row[start].glyph()), end-start)
		if style, ok := t.cellStyle(row[start]); ok {
			sb.WriteString(style.Render(run))
		} else {
			sb.WriteString(run)
		}
		start = end
	}
}

// xLabelRow centres each visible label under its column, dropping labels
// that would overlap the previous one.
func xLabelRow(d viewport.ZoomDomain, points []model.DataPoint, width int) string {
	line := []rune(strings.Repeat(" ", width))
	slot := int(float64(width-1) / d.X.Width())
	maxLabel := max(slot-1, 3)
	next := 0
	for _, p := range points {
		c := columnFor(d, float64(p.Index), width)
		if c < 0 || c >= width {
			continue
		}
		label := runewidth.Truncate(p.Label, maxLabel, "…")
		lw := runewidth.StringWidth(label)
		start := clampInt(c-lw/2, 0, max(width-lw, 0))
		if start < next || start+lw > width {
			continue
		}
		// Labels are placed by rune; wide runes may shift the tail by a cell.
		for i, r := range []rune(label) {
			if start+i < len(line) {
				line[start+i] = r
			}
		}
		next = start + lw + 1
	}
	return string(line)
}
