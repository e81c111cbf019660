package clean

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".immo-cache")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "snapshots.db"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Run(dir, io.Discard); err != nil {
		t.Fatalf("Run: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("leftover entries: %v", entries)
	}
}

func TestRunMissingDir(t *testing.T) {
	if err := Run(filepath.Join(t.TempDir(), "nope"), io.Discard); err != nil {
		t.Errorf("Run on a missing dir: %v", err)
	}
}
