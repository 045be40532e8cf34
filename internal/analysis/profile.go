// Package analysis computes column profiles and pairwise correlations over
// an immutable dataset. Everything here is a pure function of its input.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/csvscope/internal/dataset"
)

// ColumnProfile captures per-column statistics. Numeric fields are valid only
// when Kind is numeric; Distinct and TopValues only when categorical.
type ColumnProfile struct {
	Name    string
	Kind    dataset.Kind
	Count   int // non-missing cells
	Missing int

	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64

	Distinct  int
	TopValues []CategoryCount
}

// CategoryCount is one categorical value with its occurrence count.
type CategoryCount struct {
	Value string
	Count int
}

// ProfileOptions controls profiling behavior.
type ProfileOptions struct {
	// TopK limits the most-frequent categorical values retained per column.
	TopK int
}

// DefaultProfileOptions mirrors the report defaults.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{TopK: 8}
}

// Profile computes one ColumnProfile per dataset column, in column order.
func Profile(ds *dataset.Dataset, opt ProfileOptions) []ColumnProfile {
	topK := opt.TopK
	if topK <= 0 {
		topK = 8
	}
	out := make([]ColumnProfile, 0, len(ds.Columns))
	for i := range ds.Columns {
		c := &ds.Columns[i]
		p := ColumnProfile{
			Name:    c.Name,
			Kind:    c.Kind,
			Missing: c.MissingCount(),
		}
		p.Count = len(c.Raw) - p.Missing
		switch c.Kind {
		case dataset.KindNumeric:
			fillNumeric(&p, c.Values())
		case dataset.KindCategorical:
			fillCategorical(&p, c, topK)
		}
		out = append(out, p)
	}
	return out
}

func fillNumeric(p *ColumnProfile, vals []float64) {
	if len(vals) == 0 {
		p.Mean, p.Std = math.NaN(), math.NaN()
		p.Min, p.Q1, p.Median, p.Q3, p.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	p.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		p.Std = stat.StdDev(vals, nil)
	}
	p.Min = sorted[0]
	p.Max = sorted[len(sorted)-1]
	p.Q1 = Quantile(sorted, 0.25)
	p.Median = Quantile(sorted, 0.5)
	p.Q3 = Quantile(sorted, 0.75)
}

func fillCategorical(p *ColumnProfile, c *dataset.Column, topK int) {
	counts := make(map[string]int)
	for i, v := range c.Raw {
		if c.Missing[i] {
			continue
		}
		counts[v]++
	}
	p.Distinct = len(counts)
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > topK {
		tops = tops[:topK]
	}
	p.TopValues = tops
}

// Quantile interpolates linearly between order statistics of a sorted slice,
// with position q*(n-1).
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
