// Package pipeline runs the full analysis pass: load, profile, correlate,
// render, report. Any stage failure aborts the run before the report is
// written.
package pipeline

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/render"
	"github.com/KaramelBytes/csvscope/internal/report"
)

// NarrativeFunc produces the narrative section from the computed results.
// The summary argument is the rendered statistics tables.
type NarrativeFunc func(ctx context.Context, ds *dataset.Dataset, profiles []analysis.ColumnProfile, corr *analysis.CorrMatrix, summary string) (string, error)

// Options configures one run.
type Options struct {
	Input      string
	OutDir     string
	ReportName string // default README.md
	Loader     dataset.Options
	Profile    analysis.ProfileOptions
	Render     render.Options
	// Narrative overrides the default deterministic narrative (the AI path).
	Narrative NarrativeFunc
}

// Result is everything a completed run produced.
type Result struct {
	Dataset    *dataset.Dataset
	Profiles   []analysis.ColumnProfile
	Corr       *analysis.CorrMatrix
	Artifacts  []render.Artifact
	ReportPath string
}

// Run executes the pipeline. The profiler and the correlation analyzer only
// read the immutable dataset, so they run concurrently and join before
// rendering starts.
func Run(ctx context.Context, opt Options) (*Result, error) {
	ds, err := dataset.Load(opt.Input, opt.Loader)
	if err != nil {
		return nil, err
	}

	var (
		profiles []analysis.ColumnProfile
		corr     *analysis.CorrMatrix
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profiles = analysis.Profile(ds, opt.Profile)
		return gctx.Err()
	})
	g.Go(func() error {
		corr = analysis.Correlate(ds)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts, err := render.New(opt.OutDir, opt.Render).RenderAll(ds, profiles, corr)
	if err != nil {
		return nil, err
	}

	narrative := report.Narrative(ds, profiles, corr)
	if opt.Narrative != nil {
		summary := report.Summary(ds, profiles, corr)
		narrative, err = opt.Narrative(ctx, ds, profiles, corr, summary)
		if err != nil {
			return nil, err
		}
	}

	name := opt.ReportName
	if name == "" {
		name = "README.md"
	}
	reportPath := filepath.Join(opt.OutDir, name)
	content := report.Build(report.Input{
		Dataset:   ds,
		Profiles:  profiles,
		Corr:      corr,
		Artifacts: artifacts,
		Narrative: narrative,
	})
	if err := report.Write(reportPath, content); err != nil {
		return nil, err
	}

	return &Result{
		Dataset:    ds,
		Profiles:   profiles,
		Corr:       corr,
		Artifacts:  artifacts,
		ReportPath: reportPath,
	}, nil
}
