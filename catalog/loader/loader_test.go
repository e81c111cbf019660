package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/immo/catalog/testutil"
)

func newTestLoader(fs afero.Fs) *Loader {
	return New(fs, nil, 2, time.Second)
}

func TestLoad_YAML(t *testing.T) {
	fs := testutil.CreateTestFilesystemWithContent(map[string]string{
		"data/listings.yaml": testutil.CreateSampleCatalogYAML(),
	})

	res, err := newTestLoader(fs).Load(context.Background(), "data/listings.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Listings) != 2 {
		t.Fatalf("got %d listings, want 2", len(res.Listings))
	}

	first := res.Listings[0]
	if first.Price != "2 500 000 DA" || first.Beds != 3 || first.Area != 120 {
		t.Errorf("first listing decoded as %+v", first)
	}
	if len(first.Amenities) != 2 || first.Amenities[0] != "vue_mer" {
		t.Errorf("Amenities = %v", first.Amenities)
	}
	if first.ID == "" || first.ID != ListingID(first) {
		t.Errorf("ID = %q, want derived %q", first.ID, ListingID(first))
	}
	if res.Listings[1].Amenities != nil {
		t.Errorf("absent amenities should stay nil, got %v", res.Listings[1].Amenities)
	}
	if len(res.Checksum) != 64 {
		t.Errorf("Checksum = %q", res.Checksum)
	}
}

func TestLoad_JSONArrayAndNumericPrice(t *testing.T) {
	fs := testutil.CreateTestFilesystemWithContent(map[string]string{
		"listings.json": `[{"id":"x1","title":"Villa","price":45000000,"type":"Vente"}]`,
	})

	res, err := newTestLoader(fs).Load(context.Background(), "listings.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Listings) != 1 || res.Listings[0].ID != "x1" || res.Listings[0].Price != "45000000" {
		t.Errorf("Listings = %+v", res.Listings)
	}
}

func TestLoad_Errors(t *testing.T) {
	fs := testutil.CreateTestFilesystemWithContent(map[string]string{
		"bad-schema.yaml": "listings:\n  - title: Villa\n    beds: -2\n",
		"no-title.yaml":   "listings:\n  - price: 100\n",
		"broken.yaml":     "listings: [\n",
		"listings.csv":    "title,price\n",
	})
	l := newTestLoader(fs)

	tests := []struct {
		name   string
		source string
		is     error
	}{
		{"negative beds", "bad-schema.yaml", nil},
		{"missing title", "no-title.yaml", nil},
		{"malformed yaml", "broken.yaml", nil},
		{"unsupported format", "listings.csv", ErrUnsupportedFormat},
		{"missing file", "nope.yaml", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Load(context.Background(), tt.source)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v is not %v", err, tt.is)
			}
		})
	}
}

func TestLoad_DuplicateRefs(t *testing.T) {
	fs := testutil.CreateTestFilesystemWithContent(map[string]string{
		"dups.yaml": `listings:
  - {ref: A, title: first}
  - {ref: B, title: second}
  - {ref: A, title: again}
  - {title: no ref}
`,
	})

	res, err := newTestLoader(fs).Load(context.Background(), "dups.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Listings) != 3 {
		t.Fatalf("got %d listings, want 3", len(res.Listings))
	}
	if res.Listings[0].Title != "first" {
		t.Errorf("first writer should win, got %q", res.Listings[0].Title)
	}
	if len(res.Duplicates) != 1 || res.Duplicates[0] != "A" {
		t.Errorf("Duplicates = %v", res.Duplicates)
	}
}

func TestLoad_Remote(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(testutil.CreateSampleCatalogYAML()))
	}))
	defer srv.Close()

	res, err := newTestLoader(afero.NewMemMapFs()).Load(context.Background(), srv.URL+"/listings.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Listings) != 2 {
		t.Errorf("got %d listings, want 2", len(res.Listings))
	}
	if calls.Load() != 2 {
		t.Errorf("server called %d times, want a retry after the 503", calls.Load())
	}
}

func TestChecksumTracksContent(t *testing.T) {
	doc := testutil.CreateSampleCatalogYAML()
	fs := testutil.CreateTestFilesystemWithContent(map[string]string{
		"a.yaml": doc,
		"b.yaml": strings.Replace(doc, "120", "121", 1),
	})
	l := newTestLoader(fs)

	a, err := l.Load(context.Background(), "a.yaml")
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.Load(context.Background(), "b.yaml")
	if err != nil {
		t.Fatal(err)
	}
	again, err := l.Load(context.Background(), "a.yaml")
	if err != nil {
		t.Fatal(err)
	}

	if a.Checksum == b.Checksum {
		t.Error("different documents share a checksum")
	}
	if a.Checksum != again.Checksum {
		t.Error("checksum is not stable")
	}
}

func TestListingIDStable(t *testing.T) {
	l := testutil.CreateSampleListing()
	if ListingID(l) != ListingID(l) {
		t.Error("ListingID is not deterministic")
	}
	other := l
	other.Ref = "REF-OTHER"
	if ListingID(l) == ListingID(other) {
		t.Error("different refs share an ID")
	}
}
