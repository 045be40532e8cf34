package render

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/utils"
)

// Distribution renders a histogram of a numeric column with dashed vertical
// rules at the quartiles.
func (r *Renderer) Distribution(stem string, c *dataset.Column) (Artifact, error) {
	vals := c.Values()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Distribution: %s", c.Name)
	p.X.Label.Text = c.Name
	p.Y.Label.Text = "count"

	if len(vals) > 0 {
		h, err := plotter.NewHist(plotter.Values(vals), r.opt.Bins)
		if err != nil {
			return Artifact{}, fmt.Errorf("histogram %s: %w", c.Name, err)
		}
		h.FillColor = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
		p.Add(h)

		sorted := make([]float64, len(vals))
		copy(sorted, vals)
		sort.Float64s(sorted)
		top := maxBinCount(sorted, r.opt.Bins)
		for _, q := range []float64{0.25, 0.5, 0.75} {
			x := analysis.Quantile(sorted, q)
			line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: top}})
			if err != nil {
				return Artifact{}, fmt.Errorf("quartile rule %s: %w", c.Name, err)
			}
			line.LineStyle.Color = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(line)
		}
	}

	path := r.artifactPath(stem, "dist_"+utils.SanitizeBase(c.Name))
	if err := r.savePlot(p, path); err != nil {
		return Artifact{}, err
	}
	return Artifact{Kind: KindDistribution, Column: c.Name, Path: path}, nil
}

// maxBinCount returns the tallest bin of an equal-width histogram so the
// quartile rules span the full bar height.
func maxBinCount(sorted []float64, bins int) float64 {
	if len(sorted) == 0 || bins <= 0 {
		return 1
	}
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		return float64(len(sorted))
	}
	counts := make([]int, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range sorted {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	return float64(top)
}
