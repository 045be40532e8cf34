package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/KaramelBytes/csvscope/internal/analysis"
)

// corrGrid adapts a CorrMatrix to plotter.GridXYZ. Rows are mirrored so the
// first column reads top-to-bottom like a table.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int) { return len(g.m.Columns), len(g.m.Columns) }
func (g corrGrid) X(c int) float64  { return float64(c) }
func (g corrGrid) Y(r int) float64  { return float64(r) }
func (g corrGrid) Z(c, r int) float64 {
	n := len(g.m.Columns)
	return g.m.Values[n-1-r][c]
}

// Heatmap renders the correlation matrix with a diverging blue-red scale
// pinned to [-1, 1].
func (r *Renderer) Heatmap(stem string, corr *analysis.CorrMatrix) (Artifact, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Correlation Heatmap: %s", stem)

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	h := plotter.NewHeatMap(corrGrid{m: corr}, cm.Palette(255))
	h.Min = -1
	h.Max = 1
	p.Add(h)

	n := len(corr.Columns)
	xticks := make([]plot.Tick, n)
	yticks := make([]plot.Tick, n)
	for i, name := range corr.Columns {
		xticks[i] = plot.Tick{Value: float64(i), Label: name}
		yticks[n-1-i] = plot.Tick{Value: float64(n - 1 - i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xticks)
	p.Y.Tick.Marker = plot.ConstantTicks(yticks)
	p.X.Tick.Label.Rotation = 0.785 // ~45°
	p.X.Tick.Label.XAlign = -1

	path := r.artifactPath(stem, "correlation_heatmap")
	if err := r.savePlot(p, path); err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindHeatmap, Path: path}, nil
}
