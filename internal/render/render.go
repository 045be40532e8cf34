// Package render draws the correlation heatmap, missing-value chart, and
// per-column distribution images for a dataset and writes them as PNG files.
package render

import (
	"bytes"
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/utils"
)

// ArtifactKind identifies what a generated image represents.
type ArtifactKind string

const (
	KindHeatmap      ArtifactKind = "correlation_heatmap"
	KindMissing      ArtifactKind = "missing_values"
	KindDistribution ArtifactKind = "distribution"
)

// Artifact is a generated image on disk. Column is set only for per-column
// distribution plots.
type Artifact struct {
	Kind   ArtifactKind
	Column string
	Path   string
}

// Options controls rendering.
type Options struct {
	// Size is the square canvas edge. Zero means 5 inches.
	Size vg.Length
	// Bins is the histogram bin count. Zero means 16.
	Bins int
}

// Renderer writes plots for one dataset into an output directory.
type Renderer struct {
	OutDir string
	opt    Options
}

// New returns a Renderer targeting outDir.
func New(outDir string, opt Options) *Renderer {
	if opt.Size <= 0 {
		opt.Size = 5 * vg.Inch
	}
	if opt.Bins <= 0 {
		opt.Bins = 16
	}
	return &Renderer{OutDir: outDir, opt: opt}
}

// RenderAll produces every artifact for the dataset: one correlation heatmap
// (two or more numeric columns required), one missing-values chart, and one
// distribution plot per numeric column. The output directory is created if
// absent. Fails with *utils.IOError when the directory or a file cannot be
// written.
func (r *Renderer) RenderAll(ds *dataset.Dataset, profiles []analysis.ColumnProfile, corr *analysis.CorrMatrix) ([]Artifact, error) {
	if err := utils.EnsureDir(r.OutDir); err != nil {
		return nil, err
	}
	var out []Artifact

	if corr != nil && len(corr.Columns) >= 2 {
		a, err := r.Heatmap(ds.Name, corr)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	a, err := r.MissingValues(ds.Name, profiles)
	if err != nil {
		return nil, err
	}
	out = append(out, a)

	for i := range ds.Columns {
		c := &ds.Columns[i]
		if c.Kind != dataset.KindNumeric {
			continue
		}
		a, err := r.Distribution(ds.Name, c)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *Renderer) artifactPath(stem string, suffix string) string {
	return filepath.Join(r.OutDir, fmt.Sprintf("%s_%s.png", utils.SanitizeBase(stem), suffix))
}

// savePlot renders p to an in-memory PNG and writes it atomically.
func (r *Renderer) savePlot(p *plot.Plot, path string) error {
	wt, err := p.WriterTo(r.opt.Size, r.opt.Size, "png")
	if err != nil {
		return &utils.IOError{Path: path, Err: fmt.Errorf("render: %w", err)}
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return &utils.IOError{Path: path, Err: fmt.Errorf("encode png: %w", err)}
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
