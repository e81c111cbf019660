// Package location parses free-text listing locations into commune/district
// pairs and derives the district alias index of a listing collection.
package location

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/search"
)

// delimiters separating commune and district in a location string
var delimiters = regexp.MustCompile(`\s*[,\-/|·–—]\s*`)

// DefaultCommunes are the communes of the Oran wilaya.
var DefaultCommunes = []string{
	"Oran", "Bir El Djir", "Es Senia", "Arzew", "Bethioua", "Marsat El Hadjadj",
	"Aïn El Türck", "El Ançor", "Oued Tlelat", "Tafraoui", "Sidi Chami",
	"Boufatis", "Mers El Kébir", "Bousfer", "El Kerma", "El Braya",
	"Hassi Bounif", "Hassi Ben Okba", "Ben Freha", "Hassi Mefsoukh",
	"Sidi Ben Yebka", "Misserghin", "Boutlélis", "Aïn El Kerma", "Aïn El Bia",
	"Gdyel",
}

// Catalog is the fixed list of administrative communes.
type Catalog struct {
	names      []string
	normalized map[string]string // normalized -> canonical
	byLength   []string          // canonical names, longest normalized first
}

// NewCatalog builds a catalog from canonical commune names.
// Blank and duplicate names are ignored.
func NewCatalog(communes []string) *Catalog {
	c := &Catalog{normalized: make(map[string]string, len(communes))}
	for _, name := range communes {
		name = strings.TrimSpace(name)
		key := search.Normalize(name)
		if key == "" {
			continue
		}
		if _, dup := c.normalized[key]; dup {
			continue
		}
		c.normalized[key] = name
		c.names = append(c.names, name)
	}
	c.byLength = append([]string(nil), c.names...)
	sort.SliceStable(c.byLength, func(i, j int) bool {
		return len(search.Normalize(c.byLength[i])) > len(search.Normalize(c.byLength[j]))
	})
	return c
}

// DefaultCatalog returns the catalog of DefaultCommunes.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultCommunes)
}

// Communes returns the canonical commune names in declaration order.
func (c *Catalog) Communes() []string {
	return append([]string(nil), c.names...)
}

// Lookup returns the canonical spelling of a commune, if known.
func (c *Catalog) Lookup(name string) (string, bool) {
	canonical, ok := c.normalized[search.Normalize(name)]
	return canonical, ok
}

// SplitParts splits a location string on the location delimiters and
// drops blank parts.
func SplitParts(raw string) []string {
	var parts []string
	for _, p := range delimiters.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Parse splits raw into a commune and a district.
//
// One part is a commune if it is a known commune, a district otherwise.
// With several parts the first part naming a known commune becomes the
// commune and the remaining parts form the district. When no part is a
// commune everything is kept as district.
func (c *Catalog) Parse(raw string) models.Place {
	parts := SplitParts(raw)
	switch len(parts) {
	case 0:
		return models.Place{}
	case 1:
		if canonical, ok := c.Lookup(parts[0]); ok {
			return models.Place{Commune: canonical}
		}
		return models.Place{District: parts[0]}
	}

	for i, part := range parts {
		canonical, ok := c.Lookup(part)
		if !ok {
			continue
		}
		rest := make([]string, 0, len(parts)-1)
		rest = append(rest, parts[:i]...)
		rest = append(rest, parts[i+1:]...)
		return models.Place{Commune: canonical, District: strings.Join(rest, ", ")}
	}
	return models.Place{District: strings.Join(parts, ", ")}
}

// MentionedCommune returns the longest commune named in free text.
func (c *Catalog) MentionedCommune(text string) (string, bool) {
	flat := search.Flatten(text)
	if flat == "" {
		return "", false
	}
	for _, name := range c.byLength {
		if search.ContainsPhrase(flat, name) {
			return name, true
		}
	}
	return "", false
}

// Resolve maps a free-text fragment to a place: a commune mention wins,
// otherwise the longest district alias found in the fragment.
func (c *Catalog) Resolve(text string, idx *AliasIndex) models.Place {
	if commune, ok := c.MentionedCommune(text); ok {
		return models.Place{Commune: commune}
	}
	if idx != nil {
		if entry, ok := idx.Match(text); ok {
			return models.Place{Commune: entry.Commune, District: entry.District}
		}
	}
	return models.Place{}
}
