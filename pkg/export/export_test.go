package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/chartview/pkg/model"
	"github.com/vanderheijden86/chartview/pkg/viewport"
)

func samplePoints(t *testing.T) []model.DataPoint {
	t.Helper()
	ds, err := model.NewDataset(model.SamplePoints())
	if err != nil {
		t.Fatal(err)
	}
	ds.ApplyHighlights([]int{2})
	return ds.Points()
}

func sampleOptions(t *testing.T) SnapshotOptions {
	t.Helper()
	pts := samplePoints(t)
	return SnapshotOptions{
		Title:  "Orders",
		Domain: viewport.FullExtent(len(pts)),
		Points: pts,
		All:    pts,
	}
}

func TestWriteCSV(t *testing.T) {
	pts := []model.DataPoint{
		{Index: 0, Label: "Jan 03", ValueA: 1, ValueB: 2.5},
		{Index: 1, Label: "Jan, 05", ValueA: 3, ValueB: 0},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, pts, Columns{}); err != nil {
		t.Fatal(err)
	}
	want := "Date,Number of orders,Payments\nJan 03,1,2.5\n\"Jan, 05\",3,0\n"
	if buf.String() != want {
		t.Errorf("WriteCSV =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteCSV_CustomColumns(t *testing.T) {
	got, err := CSVString(nil, Columns{Label: "Day", SeriesB: "Revenue"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Day,Number of orders,Revenue\n" {
		t.Errorf("header = %q", got)
	}
}

func TestMarkdownTable(t *testing.T) {
	pts := samplePoints(t)
	md := MarkdownTable("Orders", pts, DefaultColumns())

	if !strings.HasPrefix(md, "# Orders\n") {
		t.Errorf("missing title: %q", md[:20])
	}
	if !strings.Contains(md, "| Date | Number of orders | Payments |") {
		t.Error("missing header row")
	}
	if !strings.Contains(md, "**"+pts[2].Label+"**") {
		t.Error("highlighted row should be bold")
	}
	if strings.Count(md, "\n| ") != len(pts)+1 {
		t.Errorf("expected %d table rows", len(pts)+1)
	}
}

func TestSaveSnapshot_SVGAndPNG(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"chart.svg", "chart.png"} {
		t.Run(name, func(t *testing.T) {
			opts := sampleOptions(t)
			opts.Path = filepath.Join(tmp, name)
			if err := SaveSnapshot(opts); err != nil {
				t.Fatalf("SaveSnapshot error: %v", err)
			}
			info, err := os.Stat(opts.Path)
			if err != nil {
				t.Fatalf("output not created: %v", err)
			}
			if info.Size() == 0 {
				t.Fatalf("output file is empty")
			}
		})
	}
}

func TestSaveSnapshot_Errors(t *testing.T) {
	opts := sampleOptions(t)
	opts.Path = filepath.Join(t.TempDir(), "chart.txt")
	opts.Format = "txt"
	if err := SaveSnapshot(opts); err == nil {
		t.Error("expected error for invalid format")
	}

	opts = sampleOptions(t)
	opts.Path = filepath.Join(t.TempDir(), "chart.svg")
	opts.Points = nil
	if err := SaveSnapshot(opts); err == nil {
		t.Error("expected error for empty points")
	}
}

func TestSnapshotFormat_DefaultsToPNG(t *testing.T) {
	format, path, err := snapshotFormat("", "out/chart")
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || path != "out/chart.png" {
		t.Errorf("got %q %q", format, path)
	}
}

func TestRenderSVG_HighlightsInRed(t *testing.T) {
	opts := sampleOptions(t)
	var buf bytes.Buffer
	if err := renderSVGToWriter(&buf, buildChartLayout(opts)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, css(colorHighlight)) {
		t.Error("highlighted point not drawn in highlight colour")
	}
	if !strings.Contains(out, "Orders") {
		t.Error("title missing")
	}
	if !strings.Contains(out, "Number of orders") || !strings.Contains(out, "Payments") {
		t.Error("legend missing")
	}
}

func TestBuildChartLayout_ZoomedSlice(t *testing.T) {
	pts := samplePoints(t)
	d := viewport.ZoomDomain{
		X:  viewport.Range{Min: 2, Max: 4},
		Y1: viewport.Range{Min: 0, Max: viewport.Y1Ceil},
		Y2: viewport.Range{Min: 0, Max: viewport.Y2Ceil},
	}
	l := buildChartLayout(SnapshotOptions{Domain: d, Points: pts[2:5]})

	if len(l.Bars) != 3 || len(l.Dots) != 3 {
		t.Fatalf("bars=%d dots=%d, want 3", len(l.Bars), len(l.Dots))
	}
	if !l.Bars[0].Highlighted {
		t.Error("first visible bar should be highlighted")
	}
	if got := l.Dots[0].X; got != l.PlotX {
		t.Errorf("left edge dot x = %v, want %v", got, l.PlotX)
	}
	if got := l.Dots[2].X; got != l.PlotX+l.PlotW {
		t.Errorf("right edge dot x = %v, want %v", got, l.PlotX+l.PlotW)
	}
	if len(l.Y1Ticks) != viewport.DefaultTickCount || len(l.Y2Ticks) != viewport.DefaultTickCount {
		t.Errorf("tick counts %d/%d", len(l.Y1Ticks), len(l.Y2Ticks))
	}
	for _, b := range l.Bars {
		if b.Y < l.PlotY || b.Y+b.H > l.PlotY+l.PlotH+1e-9 {
			t.Errorf("bar escapes plot area: %+v", b)
		}
	}
}

func TestExportAll(t *testing.T) {
	opts := sampleOptions(t)
	base := filepath.Join(t.TempDir(), "out", "orders.png")

	formats, err := ExpandFormat("all")
	if err != nil {
		t.Fatal(err)
	}
	paths, err := ExportAll(context.Background(), base, formats, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != len(opts.All)+1 {
		t.Errorf("csv has %d lines, want %d", lines, len(opts.All)+1)
	}
}

func TestExpandFormat(t *testing.T) {
	if _, err := ExpandFormat("gif"); err == nil {
		t.Error("expected error for gif")
	}
	got, err := ExpandFormat("SVG")
	if err != nil || len(got) != 1 || got[0] != "svg" {
		t.Errorf("ExpandFormat(SVG) = %v, %v", got, err)
	}
}
