package scaffold

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/immo/catalog/config"
	"github.com/Kush-Singh-26/immo/catalog/loader"
)

func TestRun(t *testing.T) {
	fs := afero.NewMemMapFs()

	created, err := Run(fs, "site", io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(created) != 2 {
		t.Errorf("created %v, want 2 files", created)
	}

	cfg, err := config.Load(fs, filepath.Join("site", "immo.yaml"), "")
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	if cfg.Catalog != "listings.yaml" || cfg.Server.Port != 8080 {
		t.Errorf("config = %+v", cfg)
	}

	res, err := loader.New(fs, nil, 0, 0).Load(context.Background(), filepath.Join("site", "listings.yaml"))
	if err != nil {
		t.Fatalf("starter catalog does not load: %v", err)
	}
	if len(res.Listings) != 3 {
		t.Errorf("got %d listings, want 3", len(res.Listings))
	}
}

func TestRunKeepsExistingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "immo.yaml", []byte("catalog: mine.yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	created, err := Run(fs, ".", io.Discard)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(created) != 1 || created[0] != "listings.yaml" {
		t.Errorf("created = %v", created)
	}
	data, _ := afero.ReadFile(fs, "immo.yaml")
	if string(data) != "catalog: mine.yaml\n" {
		t.Errorf("existing config overwritten: %q", data)
	}
}
