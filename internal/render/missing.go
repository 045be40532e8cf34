package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/csvscope/internal/analysis"
)

// MissingValues renders a bar chart of missing-cell counts, one bar per
// column, in column order.
func (r *Renderer) MissingValues(stem string, profiles []analysis.ColumnProfile) (Artifact, error) {
	vals := make(plotter.Values, len(profiles))
	names := make([]string, len(profiles))
	for i, p := range profiles {
		vals[i] = float64(p.Missing)
		names[i] = p.Name
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Missing Values: %s", stem)
	p.Y.Label.Text = "missing cells"

	bars, err := plotter.NewBarChart(vals, vg.Points(24))
	if err != nil {
		return Artifact{}, fmt.Errorf("missing-values chart: %w", err)
	}
	bars.Color = color.RGBA{R: 0x4f, G: 0x46, B: 0xe5, A: 0xff}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.785
	p.X.Tick.Label.XAlign = -1

	path := r.artifactPath(stem, "missing_values")
	if err := r.savePlot(p, path); err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindMissing, Path: path}, nil
}
