// Package loader reads a listing catalog from a local file or an http(s) URL,
// validates it against the embedded JSON schema and decodes the listings.
package loader

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/Kush-Singh-26/immo/catalog/cache"
	"github.com/Kush-Singh-26/immo/catalog/models"
)

var (
	// ErrUnsupportedFormat is returned for sources that are neither YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrDuplicateRef marks listings dropped because an earlier listing
	// carries the same ref. It is reported, never returned.
	ErrDuplicateRef = errors.New("duplicate listing ref")
)

//go:embed schema/catalog.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// listingNamespace seeds deterministic IDs for listings that have none.
var listingNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("immo/listings"))

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("catalog.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("catalog.json")
	})
	return schema, schemaErr
}

// Result is a decoded catalog.
type Result struct {
	Source     string
	Listings   []models.Listing
	Checksum   string   // BLAKE3 of the raw document
	Duplicates []string // refs dropped as duplicates
	LoadedAt   time.Time
}

// Loader reads catalogs. It is safe for concurrent use.
type Loader struct {
	fs     afero.Fs
	client *retryablehttp.Client
	logger *slog.Logger
}

// New creates a loader reading local sources from fs and remote sources with
// up to retries retries and the given per-request timeout.
func New(fs afero.Fs, logger *slog.Logger, retries int, timeout time.Duration) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fs: fs,
		client: &retryablehttp.Client{
			RetryMax:     retries,
			RetryWaitMin: 100 * time.Millisecond,
			RetryWaitMax: 2 * time.Second,
			HTTPClient: &http.Client{
				Timeout: timeout,
			},
			CheckRetry: retryablehttp.DefaultRetryPolicy,
			Backoff:    retryablehttp.DefaultBackoff,
		},
		logger: logger,
	}
}

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads, validates and decodes source.
func (l *Loader) Load(ctx context.Context, source string) (*Result, error) {
	if err := checkFormat(source); err != nil {
		return nil, err
	}

	var data []byte
	var err error
	if IsRemote(source) {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = afero.ReadFile(l.fs, source)
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", source, err)
	}

	listings, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", source, err)
	}

	listings, dups := dedupe(listings)
	for _, ref := range dups {
		l.logger.Warn("Dropped listing", "ref", ref, "source", source, "error", ErrDuplicateRef)
	}

	res := &Result{
		Source:     source,
		Listings:   listings,
		Checksum:   cache.HashContent(data),
		Duplicates: dups,
		LoadedAt:   time.Now(),
	}
	l.logger.Debug("Loaded catalog", "source", source, "listings", len(listings), "checksum", res.Checksum[:12])
	return res, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	res, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	return io.ReadAll(res.Body)
}

// checkFormat accepts .yaml, .yml, .json and extension-less sources.
func checkFormat(source string) error {
	p := source
	if IsRemote(source) {
		u, err := url.Parse(source)
		if err != nil {
			return fmt.Errorf("parse catalog url: %w", err)
		}
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case "", ".yaml", ".yml", ".json":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, source)
	}
}

// Decode parses a YAML or JSON catalog document. The document is either an
// object with a "listings" array or a bare array of listings.
func Decode(data []byte) ([]models.Listing, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	if arr, ok := doc.([]any); ok {
		doc = map[string]any{"listings": arr}
	}
	coercePrices(doc)

	// round-trip through JSON so the validator sees JSON types
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(generic); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var catalog struct {
		Listings []models.Listing `json:"listings"`
	}
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, err
	}

	for i := range catalog.Listings {
		if catalog.Listings[i].ID == "" {
			catalog.Listings[i].ID = ListingID(catalog.Listings[i])
		}
	}
	return catalog.Listings, nil
}

// coercePrices turns numeric prices into strings; feeds often emit both.
func coercePrices(doc any) {
	m, ok := doc.(map[string]any)
	if !ok {
		return
	}
	items, ok := m["listings"].([]any)
	if !ok {
		return
	}
	for _, item := range items {
		l, ok := item.(map[string]any)
		if !ok {
			continue
		}
		switch v := l["price"].(type) {
		case int:
			l["price"] = strconv.Itoa(v)
		case float64:
			l["price"] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
}

// ListingID derives a stable ID from the listing ref, or from its title,
// location and price when there is no ref.
func ListingID(l models.Listing) string {
	name := l.Ref
	if name == "" {
		name = l.Title + "\x00" + l.Location + "\x00" + l.Price
	}
	return uuid.NewSHA1(listingNamespace, []byte(name)).String()
}

// dedupe keeps the first listing of every ref. Listings without ref are kept.
func dedupe(listings []models.Listing) ([]models.Listing, []string) {
	seen := make(map[string]bool, len(listings))
	out := listings[:0:0]
	var dups []string
	for _, l := range listings {
		if l.Ref != "" {
			if seen[l.Ref] {
				dups = append(dups, l.Ref)
				continue
			}
			seen[l.Ref] = true
		}
		out = append(out, l)
	}
	return out, dups
}
