// Package dataset loads delimited tabular files into an in-memory, read-only
// Dataset with per-column type inference and missing-value tracking.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
)

// InputError indicates the input file is missing, empty, or cannot be parsed
// as delimited text.
type InputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input error: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("input error: %s: %s", e.Path, e.Reason)
}

func (e *InputError) Unwrap() error { return e.Err }

// Column is one named column of a Dataset. Raw and Missing always have one
// entry per row. Numbers is populated only for numeric columns and carries
// NaN at missing positions.
type Column struct {
	Name    string
	Kind    Kind
	Raw     []string
	Missing []bool
	Numbers []float64
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.Missing {
		if m {
			n++
		}
	}
	return n
}

// Values returns the non-missing numeric values of a numeric column.
func (c *Column) Values() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Numbers))
	for i, v := range c.Numbers {
		if !c.Missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Dataset is an ordered collection of equal-length columns. It is created by
// a loader and read-only afterwards.
type Dataset struct {
	Name    string
	Columns []Column
	Rows    int
	// RaggedRows counts rows that were padded or truncated to header width.
	RaggedRows int
}

// NumericColumns returns the columns inferred as numeric, in column order.
func (d *Dataset) NumericColumns() []*Column {
	var out []*Column
	for i := range d.Columns {
		if d.Columns[i].Kind == KindNumeric {
			out = append(out, &d.Columns[i])
		}
	}
	return out
}

// Options controls loading behavior.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects: tab for .tsv, comma otherwise.
	Delimiter rune
	// MissingTokens are the sentinel strings treated as missing values,
	// compared case-insensitively. Empty cells are always missing.
	MissingTokens []string
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// XLSX sheet selection. SheetName wins over SheetIndex (1-based).
	SheetName  string
	SheetIndex int
}

// DefaultOptions returns the documented defaults: comma delimiter and
// "", "NA", "NaN" (plus "null") as missing sentinels.
func DefaultOptions() Options {
	return Options{
		MissingTokens: []string{"", "NA", "NaN", "null"},
	}
}

func (o Options) missingSet() map[string]bool {
	set := make(map[string]bool, len(o.MissingTokens)+1)
	set[""] = true
	for _, t := range o.MissingTokens {
		set[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return set
}

// build assembles a Dataset from a header and raw records, padding or
// truncating ragged rows to header width and inferring a Kind per column.
// A column is numeric only when every non-missing cell parses as a float;
// any parse failure demotes the whole column to categorical.
func build(name string, header []string, records [][]string, opt Options) (*Dataset, error) {
	ncol := len(header)
	if ncol == 0 {
		return nil, &InputError{Path: name, Reason: "no columns in header"}
	}
	missing := opt.missingSet()

	ds := &Dataset{Name: name, Columns: make([]Column, ncol), Rows: len(records)}
	for i, h := range header {
		ds.Columns[i] = Column{
			Name:    strings.TrimSpace(h),
			Raw:     make([]string, len(records)),
			Missing: make([]bool, len(records)),
		}
	}

	numericOK := make([]bool, ncol)
	numericSeen := make([]bool, ncol)
	for i := range numericOK {
		numericOK[i] = true
	}

	for r, rec := range records {
		if len(rec) != ncol {
			ds.RaggedRows++
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			c := &ds.Columns[j]
			c.Raw[r] = v
			if missing[strings.ToLower(v)] {
				c.Missing[r] = true
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				numericOK[j] = false
			} else {
				numericSeen[j] = true
			}
		}
	}

	for j := 0; j < ncol; j++ {
		c := &ds.Columns[j]
		if numericOK[j] && numericSeen[j] {
			c.Kind = KindNumeric
			c.Numbers = make([]float64, len(records))
			for r, v := range c.Raw {
				if c.Missing[r] {
					c.Numbers[r] = math.NaN()
					continue
				}
				x, _ := strconv.ParseFloat(v, 64)
				c.Numbers[r] = x
			}
		} else {
			c.Kind = KindCategorical
		}
	}
	return ds, nil
}
