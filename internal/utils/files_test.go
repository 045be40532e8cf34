package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	if err := SafeWriteFile(path, []byte("first")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	if err := SafeWriteFile(path, []byte("second")); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "second" {
		t.Errorf("content = %q, want %q", b, "second")
	}
	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, got %d entries", len(entries))
	}
}

func TestSafeWriteFileMissingDir(t *testing.T) {
	err := SafeWriteFile(filepath.Join(t.TempDir(), "missing", "out.md"), []byte("x"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want *IOError", err)
	}
}

func TestEnsureDirBlockedByFile(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	err := EnsureDir(blocked)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("err = %v, want *IOError", err)
	}
}

func TestSanitizeBase(t *testing.T) {
	cases := map[string]string{
		"plain":        "plain",
		"two words":    "two_words",
		"a/b\\c":       "abc",
		"α-col":        "-col",
		"":             "column",
		"Score (pts)":  "Score_pts",
		"snake_case-1": "snake_case-1",
	}
	for in, want := range cases {
		if got := SanitizeBase(in); got != want {
			t.Errorf("SanitizeBase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStem(t *testing.T) {
	if got := Stem("/data/sales.csv"); got != "sales" {
		t.Errorf("Stem = %q, want sales", got)
	}
	if got := Stem("book.xlsx"); got != "book" {
		t.Errorf("Stem = %q, want book", got)
	}
}
