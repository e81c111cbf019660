// Package scaffold writes a starter configuration and catalog.
package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const defaultImmoYaml = `# Catalog source: a local YAML/JSON file or an http(s) URL
catalog: listings.yaml
cacheDir: .immo-cache

# Autocomplete
suggestLimit: 8

# Price slider range used when no listing price parses
price:
  min: 0
  max: 100000000

# Restrict or extend the commune list (defaults to the Oran wilaya)
# communes: [Oran, Bir El Djir, Es Senia, Arzew]

server:
  host: localhost
  port: 8080
  watch: true
  debounceDuration: 500ms
  corsOrigins: ["*"]

log:
  level: info
  json: false
`

const sampleListings = `listings:
  - ref: IMMO-0001
    title: Appartement F4 vue mer
    type: Vente
    category: Appartement
    price: 2 500 000 DA
    location: Canastel, Bir El Djir
    beds: 3
    baths: 2
    area: 120
    amenities: [vue_mer, ascenseur, residence_fermee]
  - ref: IMMO-0002
    title: F3 meublé centre ville
    type: Location
    category: Appartement
    price: 75 000 DA / mois
    location: Oran - Akid Lotfi
    beds: 2
    baths: 1
    area: 85
    amenities: [climatisation, fibre]
  - ref: IMMO-0003
    title: Villa avec piscine
    type: Vente
    category: Villa
    price: 45 M DA
    location: Aïn El Türck
    beds: 5
    baths: 3
    area: 350
`

// Files are the files Run creates, by path relative to the target directory.
var Files = map[string]string{
	"immo.yaml":     defaultImmoYaml,
	"listings.yaml": sampleListings,
}

// Run writes the starter files into dir. Existing files are kept.
// It returns the paths it created.
func Run(fs afero.Fs, dir string, out io.Writer) ([]string, error) {
	fmt.Fprintln(out, "🌱 Initializing immo workspace...")

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	var created []string
	for _, name := range []string{"immo.yaml", "listings.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := fs.Stat(path); err == nil {
			fmt.Fprintf(out, "   ⚠️ '%s' already exists, skipping.\n", path)
			continue
		} else if !os.IsNotExist(err) {
			return created, err
		}
		if err := afero.WriteFile(fs, path, []byte(Files[name]), 0644); err != nil {
			return created, fmt.Errorf("failed to create %s: %w", path, err)
		}
		fmt.Fprintf(out, "   📄 Created '%s'\n", path)
		created = append(created, path)
	}

	fmt.Fprintln(out, "\n✅ Workspace initialized.")
	fmt.Fprintln(out, "   👉 Run 'immo serve' to start the HTTP host.")
	return created, nil
}
