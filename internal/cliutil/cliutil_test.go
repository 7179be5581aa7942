package cliutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	_ = os.WriteFile(a, []byte("x\n"), 0o644)
	_ = os.WriteFile(b, []byte("y\n"), 0o644)
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.txt"), "-", "plain"})
	if err != nil || len(got) != 4 || got[2] != "-" || got[3] != "plain" {
		t.Fatalf("expand: err=%v got=%v", err, got)
	}
}

func TestExpandPositionals_NoMatch(t *testing.T) {
	if _, err := ExpandPositionals([]string{filepath.Join(t.TempDir(), "*.none")}); err == nil {
		t.Fatalf("expected error for unmatched glob")
	}
}
