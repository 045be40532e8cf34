package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/csvscope/internal/dataset"
)

// CorrMatrix is a symmetric Pearson correlation matrix over the numeric
// columns of a dataset. Values is row-major, Values[i][j].
//
// Policy for undefined entries: a pair where either column has zero variance,
// or where fewer than two rows have both values present, is reported as 0.
// The diagonal is 1 unconditionally.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the coefficient for a pair of column names.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

// Correlate computes pairwise-complete Pearson correlations across the numeric
// columns. Rows where either value is missing are excluded for that pair only.
func Correlate(ds *dataset.Dataset) *CorrMatrix {
	cols := ds.NumericColumns()
	m := &CorrMatrix{
		Columns: make([]string, len(cols)),
		Values:  make([][]float64, len(cols)),
	}
	for i, c := range cols {
		m.Columns[i] = c.Name
		m.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		m.Values[i][i] = 1
		for j := i + 1; j < len(cols); j++ {
			r := pairCorrelation(cols[i], cols[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairCorrelation(a, b *dataset.Column) float64 {
	var xs, ys []float64
	for r := range a.Numbers {
		if a.Missing[r] || b.Missing[r] {
			continue
		}
		xs = append(xs, a.Numbers[r])
		ys = append(ys, b.Numbers[r])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// StrongestPair returns the off-diagonal pair with the largest absolute
// coefficient, or ok=false when fewer than two numeric columns exist.
func (m *CorrMatrix) StrongestPair() (a, b string, r float64, ok bool) {
	best := -1.0
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			if ar := math.Abs(m.Values[i][j]); ar > best {
				best = ar
				a, b, r = m.Columns[i], m.Columns[j], m.Values[i][j]
				ok = true
			}
		}
	}
	return a, b, r, ok
}
