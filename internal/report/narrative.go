package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/csvscope/internal/analysis"
	"github.com/KaramelBytes/csvscope/internal/dataset"
)

// Narrative produces the default key-findings text. It is a pure function of
// the statistics, so repeated runs over the same input yield byte-identical
// reports.
func Narrative(ds *dataset.Dataset, profiles []analysis.ColumnProfile, corr *analysis.CorrMatrix) string {
	var b strings.Builder

	numeric, categorical := 0, 0
	for _, p := range profiles {
		if p.Kind == dataset.KindNumeric {
			numeric++
		} else {
			categorical++
		}
	}
	fmt.Fprintf(&b, "The dataset has %d rows across %d columns (%d numeric, %d categorical).\n",
		ds.Rows, len(profiles), numeric, categorical)

	if name, count, ok := mostMissing(profiles); ok {
		pct := float64(count) * 100 / float64(ds.Rows)
		fmt.Fprintf(&b, "Column %s has the most gaps: %d missing cells (%.1f%% of rows).\n", name, count, pct)
	} else {
		b.WriteString("No missing values were found.\n")
	}

	if corr != nil {
		if a, c, r, ok := corr.StrongestPair(); ok && math.Abs(r) > 0 {
			direction := "positively"
			if r < 0 {
				direction = "negatively"
			}
			fmt.Fprintf(&b, "The strongest linear association is between %s and %s, which are %s correlated (r=%.3f).\n",
				a, c, direction, r)
		}
	}

	if name, spread, ok := widestSpread(profiles); ok {
		fmt.Fprintf(&b, "Column %s shows the widest relative spread (std/|mean| = %.2f); its distribution plot is worth a look for outliers.\n",
			name, spread)
	}
	return b.String()
}

func mostMissing(profiles []analysis.ColumnProfile) (string, int, bool) {
	best, count := "", 0
	for _, p := range profiles {
		if p.Missing > count {
			best, count = p.Name, p.Missing
		}
	}
	return best, count, count > 0
}

func widestSpread(profiles []analysis.ColumnProfile) (string, float64, bool) {
	best, spread := "", 0.0
	for _, p := range profiles {
		if p.Kind != dataset.KindNumeric || math.IsNaN(p.Std) || p.Mean == 0 {
			continue
		}
		s := p.Std / math.Abs(p.Mean)
		if s > spread {
			best, spread = p.Name, s
		}
	}
	return best, spread, best != ""
}
