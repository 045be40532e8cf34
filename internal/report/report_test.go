package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/render"
)

func fixture(t *testing.T) Input {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	csv := "amount,region\n10,north\n20,south\n30,north\n,south\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
	ds, err := dataset.LoadCSV(path, dataset.DefaultOptions())
	require.NoError(t, err)
	profiles := analysis.Profile(ds, analysis.DefaultProfileOptions())
	corr := analysis.Correlate(ds)
	return Input{
		Dataset:  ds,
		Profiles: profiles,
		Corr:     corr,
		Artifacts: []render.Artifact{
			{Kind: render.KindMissing, Path: "/tmp/out/sales_missing_values.png"},
		},
		Narrative: Narrative(ds, profiles, corr),
	}
}

func TestBuildTables(t *testing.T) {
	md := Build(fixture(t))

	assert.Contains(t, md, "# Analysis of sales")
	assert.Contains(t, md, "| column | type | missing | mean | std | min | 25% | 50% | 75% | max |")
	assert.Contains(t, md, "| column | type | missing | distinct |")
	assert.Contains(t, md, "| amount | numeric | 1 | 20 |")
	assert.Contains(t, md, "| region | categorical | 0 | 2 |")
}

func TestBuildRelativeImageLinks(t *testing.T) {
	md := Build(fixture(t))
	assert.Contains(t, md, "![sales_missing_values.png](sales_missing_values.png)")
	assert.NotContains(t, md, "(/tmp/out/")
}

func TestBuildDeterministic(t *testing.T) {
	in := fixture(t)
	assert.Equal(t, Build(in), Build(in))
}

func TestSummaryOmitsImages(t *testing.T) {
	in := fixture(t)
	md := Summary(in.Dataset, in.Profiles, in.Corr)
	assert.Contains(t, md, "| amount | numeric |")
	assert.NotContains(t, md, "![")
}

func TestNarrativeMentionsMissingAndShape(t *testing.T) {
	in := fixture(t)
	n := in.Narrative
	assert.Contains(t, n, "4 rows across 2 columns")
	assert.Contains(t, n, "amount")
	assert.Contains(t, n, "1 missing cells")
}

func TestWriteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))
	require.NoError(t, Write(path, "new content"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(b))
	assert.False(t, strings.Contains(string(b), "old"))
}

func TestCellEscapesTableBreakers(t *testing.T) {
	assert.Equal(t, "a/b", cell("a|b"))
	assert.Equal(t, "(unnamed)", cell(""))
}
