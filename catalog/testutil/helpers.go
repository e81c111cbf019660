package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/immo/catalog/models"
)

// CreateTestFilesystemWithContent creates an in-memory filesystem with initial content
func CreateTestFilesystemWithContent(files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	for path, content := range files {
		dir := filepath.Dir(path)
		if err := fs.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	return fs
}

// AssertFileExists checks if a file exists in the filesystem
func AssertFileExists(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	exists, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatalf("Error checking file existence: %v", err)
	}
	if !exists {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// IDs returns the IDs of listings in order
func IDs(listings []models.Listing) []string {
	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	return ids
}

// AssertIDs checks that listings carry exactly the expected IDs in order
func AssertIDs(t *testing.T, got []models.Listing, want ...string) {
	t.Helper()
	ids := IDs(got)
	if len(ids) != len(want) {
		t.Fatalf("Expected %d listings %v, got %d %v", len(want), want, len(ids), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Listing %d: expected %s, got %s (all: %v)", i, want[i], ids[i], ids)
		}
	}
}
