package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSVBasic(t *testing.T) {
	path := writeTemp(t, "mini.csv", "a,b\n1,x\n2,y\n3,x\n")
	ds, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(ds.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(ds.Columns))
	}
	if ds.Rows != 3 {
		t.Fatalf("rows = %d, want 3", ds.Rows)
	}
	a := ds.Columns[0]
	if a.Kind != KindNumeric {
		t.Errorf("column a kind = %s, want numeric", a.Kind)
	}
	vals := a.Values()
	if len(vals) != 3 || vals[0] != 1 || vals[2] != 3 {
		t.Errorf("column a values = %v", vals)
	}
	b := ds.Columns[1]
	if b.Kind != KindCategorical {
		t.Errorf("column b kind = %s, want categorical", b.Kind)
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.csv", "")
	_, err := LoadCSV(path, DefaultOptions())
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	path := writeTemp(t, "header.csv", "a,b\n")
	_, err := LoadCSV(path, DefaultOptions())
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InputError", err)
	}
}

func TestMissingSentinels(t *testing.T) {
	path := writeTemp(t, "miss.csv", "n,c\n1,\n2,NA\nNaN,z\nnull,z\n")
	ds, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	n := ds.Columns[0]
	if n.Kind != KindNumeric {
		t.Fatalf("column n kind = %s, want numeric", n.Kind)
	}
	if got := n.MissingCount(); got != 2 {
		t.Errorf("n missing = %d, want 2", got)
	}
	if got := ds.Columns[1].MissingCount(); got != 2 {
		t.Errorf("c missing = %d, want 2", got)
	}
	// missing numeric cells must carry NaN
	if !math.IsNaN(n.Numbers[2]) || !math.IsNaN(n.Numbers[3]) {
		t.Errorf("missing cells not NaN: %v", n.Numbers)
	}
}

func TestCustomSentinels(t *testing.T) {
	opt := DefaultOptions()
	opt.MissingTokens = []string{"-", "?"}
	path := writeTemp(t, "custom.csv", "v\n1\n-\n?\n3\n")
	ds, err := LoadCSV(path, opt)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if got := ds.Columns[0].MissingCount(); got != 2 {
		t.Errorf("missing = %d, want 2", got)
	}
	if ds.Columns[0].Kind != KindNumeric {
		t.Errorf("kind = %s, want numeric", ds.Columns[0].Kind)
	}
}

func TestTSVSniffing(t *testing.T) {
	path := writeTemp(t, "data.tsv", "a\tb\n1\t2\n3\t4\n")
	ds, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(ds.Columns) != 2 || ds.Columns[0].Kind != KindNumeric || ds.Columns[1].Kind != KindNumeric {
		t.Fatalf("unexpected columns: %+v", ds.Columns)
	}
}

func TestRaggedRowsPadded(t *testing.T) {
	path := writeTemp(t, "ragged.csv", "a,b,c\n1,x\n2,y,z,extra\n3,w,v\n")
	ds, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.RaggedRows != 2 {
		t.Errorf("ragged = %d, want 2", ds.RaggedRows)
	}
	// padded cell counts as missing
	if got := ds.Columns[2].MissingCount(); got != 1 {
		t.Errorf("c missing = %d, want 1", got)
	}
	if ds.Rows != 3 {
		t.Errorf("rows = %d, want 3", ds.Rows)
	}
}

func TestMaxRows(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxRows = 2
	path := writeTemp(t, "cap.csv", "v\n1\n2\n3\n4\n")
	ds, err := LoadCSV(path, opt)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Rows != 2 {
		t.Errorf("rows = %d, want 2", ds.Rows)
	}
}

func TestMixedColumnFallsBackToCategorical(t *testing.T) {
	path := writeTemp(t, "mixed.csv", "v\n1\ntwo\n3\n")
	ds, err := LoadCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Columns[0].Kind != KindCategorical {
		t.Errorf("kind = %s, want categorical (any parse failure demotes)", ds.Columns[0].Kind)
	}
}
