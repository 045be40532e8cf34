// Package report assembles the final markdown document from computed
// statistics and generated images and writes it to disk.
package report

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
	"github.com/KaramelBytes/csvscope/internal/render"
	"github.com/KaramelBytes/csvscope/internal/utils"
)

// Input carries everything the report embeds.
type Input struct {
	Dataset   *dataset.Dataset
	Profiles  []analysis.ColumnProfile
	Corr      *analysis.CorrMatrix
	Artifacts []render.Artifact
	Narrative string
}

// Build renders the full markdown document. Image links are relative, so the
// report must be written into the same directory as the artifacts.
func Build(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis of %s\n\n", in.Dataset.Name)
	fmt.Fprintf(&b, "%d rows, %d columns.\n", in.Dataset.Rows, len(in.Dataset.Columns))
	if in.Dataset.RaggedRows > 0 {
		fmt.Fprintf(&b, "%d rows were padded or truncated to header width.\n", in.Dataset.RaggedRows)
	}
	b.WriteString("\n")

	writeTables(&b, in.Profiles)
	writeCorr(&b, in.Corr)

	if len(in.Artifacts) > 0 {
		b.WriteString("## Visualizations\n\n")
		for _, a := range in.Artifacts {
			name := filepath.Base(a.Path)
			fmt.Fprintf(&b, "![%s](%s)\n", name, name)
		}
		b.WriteString("\n")
	}

	if in.Narrative != "" {
		b.WriteString("## Narrative\n\n")
		b.WriteString(strings.TrimSpace(in.Narrative))
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders the statistics tables only, for terminal output.
func Summary(ds *dataset.Dataset, profiles []analysis.ColumnProfile, corr *analysis.CorrMatrix) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %d rows, %d columns\n\n", ds.Name, ds.Rows, len(ds.Columns))
	writeTables(&b, profiles)
	writeCorr(&b, corr)
	return b.String()
}

func writeTables(b *strings.Builder, profiles []analysis.ColumnProfile) {
	var numeric, categorical []analysis.ColumnProfile
	for _, p := range profiles {
		if p.Kind == dataset.KindNumeric {
			numeric = append(numeric, p)
		} else {
			categorical = append(categorical, p)
		}
	}

	if len(numeric) > 0 {
		b.WriteString("## Numeric Columns\n\n")
		b.WriteString("| column | type | missing | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for _, p := range numeric {
			fmt.Fprintf(b, "| %s | %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
				cell(p.Name), p.Kind, p.Missing,
				num(p.Mean), num(p.Std), num(p.Min), num(p.Q1), num(p.Median), num(p.Q3), num(p.Max))
		}
		b.WriteString("\n")
	}

	if len(categorical) > 0 {
		b.WriteString("## Categorical Columns\n\n")
		b.WriteString("| column | type | missing | distinct |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, p := range categorical {
			fmt.Fprintf(b, "| %s | %s | %d | %d |\n", cell(p.Name), p.Kind, p.Missing, p.Distinct)
		}
		b.WriteString("\n")
		for _, p := range categorical {
			if len(p.TopValues) == 0 {
				continue
			}
			fmt.Fprintf(b, "Top values for %s: ", cell(p.Name))
			for i, tv := range p.TopValues {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(b, "%s (%d)", cell(tv.Value), tv.Count)
			}
			b.WriteString("\n\n")
		}
	}
}

func writeCorr(b *strings.Builder, corr *analysis.CorrMatrix) {
	if corr == nil || len(corr.Columns) < 2 {
		return
	}
	b.WriteString("## Correlations\n\n")
	b.WriteString("| |")
	for _, c := range corr.Columns {
		fmt.Fprintf(b, " %s |", cell(c))
	}
	b.WriteString("\n|")
	for i := 0; i <= len(corr.Columns); i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for i, c := range corr.Columns {
		fmt.Fprintf(b, "| %s |", cell(c))
		for j := range corr.Columns {
			fmt.Fprintf(b, " %.3f |", corr.Values[i][j])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// Write replaces any existing file at path with the report content.
func Write(path string, content string) error {
	return utils.SafeWriteFile(path, []byte(content))
}

func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.4g", v)
}

// cell keeps arbitrary values from breaking markdown table rows.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "/")
	if s == "" {
		return "(unnamed)"
	}
	return s
}
