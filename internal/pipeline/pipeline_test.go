package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/utils"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.csv")
	csv := "temp,score,label\n20,1,a\n21,2,b\n22,3,a\n23,4,b\n24,,a\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	input := writeFixture(t)
	out := filepath.Join(t.TempDir(), "analysis")

	res, err := Run(context.Background(), Options{Input: input, OutDir: out})
	require.NoError(t, err)

	require.Len(t, res.Profiles, len(res.Dataset.Columns))
	assert.NotNil(t, res.Corr)
	assert.NotEmpty(t, res.Artifacts)
	for _, a := range res.Artifacts {
		_, err := os.Stat(a.Path)
		assert.NoError(t, err, "artifact %s must exist", a.Path)
	}

	b, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "# Analysis of metrics")
	assert.Equal(t, filepath.Join(out, "README.md"), res.ReportPath)
}

func TestRunIdempotentReport(t *testing.T) {
	input := writeFixture(t)
	out := filepath.Join(t.TempDir(), "analysis")

	first, err := Run(context.Background(), Options{Input: input, OutDir: out})
	require.NoError(t, err)
	b1, err := os.ReadFile(first.ReportPath)
	require.NoError(t, err)

	second, err := Run(context.Background(), Options{Input: input, OutDir: out})
	require.NoError(t, err)
	b2, err := os.ReadFile(second.ReportPath)
	require.NoError(t, err)

	assert.Equal(t, string(b1), string(b2), "report bytes must be identical across runs")
}

func TestRunAbortsOnLoadError(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	out := filepath.Join(t.TempDir(), "analysis")

	_, err := Run(context.Background(), Options{Input: empty, OutDir: out})
	var ie *dataset.InputError
	require.ErrorAs(t, err, &ie)
	// the renderer never ran, so the output directory was never created
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunAbortsOnRenderErrorWithoutReport(t *testing.T) {
	input := writeFixture(t)
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	_, err := Run(context.Background(), Options{Input: input, OutDir: blocked})
	var ioErr *utils.IOError
	require.ErrorAs(t, err, &ioErr)
	// no report anywhere: the destination path is not even a directory
	_, statErr := os.Stat(filepath.Join(blocked, "README.md"))
	assert.Error(t, statErr)
}

func TestRunNarrativeOverride(t *testing.T) {
	input := writeFixture(t)
	out := filepath.Join(t.TempDir(), "analysis")

	res, err := Run(context.Background(), Options{
		Input:  input,
		OutDir: out,
		Narrative: func(_ context.Context, _ *dataset.Dataset, _ []analysis.ColumnProfile, _ *analysis.CorrMatrix, summary string) (string, error) {
			assert.Contains(t, summary, "temp")
			return "injected narrative", nil
		},
	})
	require.NoError(t, err)
	b, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "injected narrative")
}

func TestRunNarrativeFailureAbortsReport(t *testing.T) {
	input := writeFixture(t)
	out := filepath.Join(t.TempDir(), "analysis")

	_, err := Run(context.Background(), Options{
		Input:  input,
		OutDir: out,
		Narrative: func(_ context.Context, _ *dataset.Dataset, _ []analysis.ColumnProfile, _ *analysis.CorrMatrix, _ string) (string, error) {
			return "", errors.New("model unavailable")
		},
	})
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(out, "README.md"))
	assert.True(t, os.IsNotExist(statErr))
}
