package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/chartview/pkg/metrics"
	"github.com/vanderheijden86/chartview/pkg/viewport"
)

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if m.vp == nil {
		return m.unavailableView()
	}
	if m.printOpen {
		hint := m.theme.MutedText.Render("esc/p close · ↑/↓ scroll")
		return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.printView.View(), hint)
	}

	parts := []string{m.headerView(), m.legendView(), m.chartView()}
	if m.vp.SearchOpen() {
		parts = append(parts, m.searchView())
	}
	parts = append(parts, m.infoView(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView() string {
	title := m.theme.Header.Render(truncate(m.cfg.Chart.Title, max(m.width/2, 10)))
	if m.source == "" {
		return title
	}
	src := m.theme.MutedText.Render(" " + truncate(m.source, max(m.width-lipgloss.Width(title)-2, 0)))
	return title + src
}

func (m Model) legendView() string {
	t := m.theme
	parts := []string{
		t.Bar.Render(string(glyphBar)) + " " + m.cols.SeriesA,
		t.Dot.Render(string(glyphDot)) + " " + m.cols.SeriesB,
	}
	if n := m.vp.Dataset().HighlightedCount(); n > 0 {
		parts = append(parts, t.BarHi.Render(string(glyphBar))+" "+fmt.Sprintf("%d highlighted", n))
	}
	d := m.frame.state.Domain
	zoom := t.MutedText.Render(fmt.Sprintf("x %s", d.X))
	legend := strings.Join(parts, "   ")
	gap := max(m.width-lipgloss.Width(legend)-lipgloss.Width(zoom), 1)
	return legend + strings.Repeat(" ", gap) + zoom
}

func (m Model) chartView() string {
	hover := -1
	if p, ok := m.hoverPoint(); ok {
		hover = columnFor(m.frame.state.Domain, float64(p.Index), m.geo.Width)
	}
	f := m.frame
	k := frameKey{version: f.version, width: m.width, height: m.chartHeight, hover: hover}
	if f.cacheKey != k || f.cache == "" {
		f.cache = renderChart(f.state, m.theme, m.width, m.chartHeight, hover)
		f.cacheKey = k
	}
	return f.cache
}

func (m Model) searchView() string {
	st := m.vp.SearchState()
	summary := st.Summary()
	switch {
	case summary == "":
	case st.Count() == 0:
		summary = m.theme.ErrorText.Render(summary)
	default:
		summary = m.theme.InfoBold.Render(summary)
	}
	return m.input.View() + "  " + summary
}

func (m Model) infoView() string {
	t := m.theme
	if m.status != "" {
		if m.statusErr {
			return t.ErrorText.Render(truncate(m.status, m.width))
		}
		return t.OKText.Render(truncate(m.status, m.width))
	}
	if p, ok := m.hoverPoint(); ok {
		tip := fmt.Sprintf("%s · %s: %s · %s: %s",
			p.Label,
			m.cols.SeriesA, viewport.FormatTick(p.ValueA),
			m.cols.SeriesB, viewport.FormatTick(p.ValueB))
		return t.InfoBold.Render(truncate(tip, m.width))
	}
	return t.MutedText.Render(truncate(summaryLine(m.frame.state, m.vp.Dataset().Len(), m.cols.SeriesA, m.cols.SeriesB), m.width))
}

// summaryLine describes the visible slice with per-series statistics.
func summaryLine(st viewport.State, total int, nameA, nameB string) string {
	s := viewport.Summarize(st.Visible)
	if s.Count == 0 {
		return fmt.Sprintf("0 of %d points", total)
	}
	first, last := st.Visible[0].Label, st.Visible[len(st.Visible)-1].Label
	return fmt.Sprintf("%s .. %s (%d of %d) · %s avg %.1f min %.1f max %.1f · %s avg %.1f min %.1f max %.1f",
		first, last, s.Count, total,
		nameA, s.A.Mean, s.A.Min, s.A.Max,
		nameB, s.B.Mean, s.B.Min, s.B.Max)
}

func (m Model) unavailableView() string {
	t := m.theme
	body := t.ErrorText.Render("Data unavailable")
	if m.loadErr != nil {
		body += "\n\n" + t.MutedText.Render(truncate(m.loadErr.Error(), max(m.width-8, 10)))
	}
	body += "\n\n" + t.MutedText.Render("press q to quit")
	panel := t.Panel.Render(body)
	return lipgloss.Place(m.width, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, panel)
}
