package location

import (
	"sort"

	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/search"
)

// AliasEntry points a normalized alias back to a commune/district pair.
type AliasEntry struct {
	Alias    string `json:"alias" msgpack:"alias"`
	Commune  string `json:"commune" msgpack:"commune"`
	District string `json:"district" msgpack:"district"`
}

// misspellings is merged after derivation; derived entries win.
var misspellings = []AliasEntry{
	{Alias: "canastel", Commune: "Bir El Djir", District: "Canastel"},
	{Alias: "kanastel", Commune: "Bir El Djir", District: "Canastel"},
	{Alias: "kanastal", Commune: "Bir El Djir", District: "Canastel"},
	{Alias: "hai sabah", Commune: "Bir El Djir", District: "Hai Sabah"},
	{Alias: "hay sabah", Commune: "Bir El Djir", District: "Hai Sabah"},
	{Alias: "akid lotfi", Commune: "Oran", District: "Akid Lotfi"},
	{Alias: "akid loutfi", Commune: "Oran", District: "Akid Lotfi"},
	{Alias: "gambetta", Commune: "Oran", District: "Gambetta"},
	{Alias: "gambeta", Commune: "Oran", District: "Gambetta"},
	{Alias: "saint hubert", Commune: "Oran", District: "Saint Hubert"},
	{Alias: "st hubert", Commune: "Oran", District: "Saint Hubert"},
	{Alias: "maraval", Commune: "Oran", District: "Maraval"},
}

// AliasIndex is the immutable alias table of one listing collection.
// It is derived once per collection and passed to whoever needs it.
type AliasIndex struct {
	entries []AliasEntry
}

// BuildAliasIndex registers, for every listing whose location resolves to both
// a commune and a district, the whole district and each of its delimiter
// parts as aliases. The first writer of an alias wins. Entries are ordered
// longest alias first so more specific aliases are tried before shorter ones.
func BuildAliasIndex(cat *Catalog, listings []models.Listing) *AliasIndex {
	seen := make(map[string]bool)
	var entries []AliasEntry

	add := func(e AliasEntry) {
		if e.Alias == "" || seen[e.Alias] {
			return
		}
		seen[e.Alias] = true
		entries = append(entries, e)
	}

	for _, l := range listings {
		place := cat.Parse(l.Location)
		if place.Commune == "" || place.District == "" {
			continue
		}
		add(AliasEntry{Alias: search.Normalize(place.District), Commune: place.Commune, District: place.District})
		for _, part := range SplitParts(place.District) {
			add(AliasEntry{Alias: search.Normalize(part), Commune: place.Commune, District: place.District})
		}
	}

	for _, e := range misspellings {
		e.Alias = search.Normalize(e.Alias)
		add(e)
	}

	return NewAliasIndex(entries)
}

// NewAliasIndex wraps already derived entries, e.g. from a snapshot.
// The slice is copied and re-sorted.
func NewAliasIndex(entries []AliasEntry) *AliasIndex {
	sorted := append([]AliasEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].Alias) != len(sorted[j].Alias) {
			return len(sorted[i].Alias) > len(sorted[j].Alias)
		}
		return sorted[i].Alias < sorted[j].Alias
	})
	return &AliasIndex{entries: sorted}
}

// Entries returns a copy of the ordered entries.
func (idx *AliasIndex) Entries() []AliasEntry {
	return append([]AliasEntry(nil), idx.entries...)
}

// Len returns the number of aliases.
func (idx *AliasIndex) Len() int {
	return len(idx.entries)
}

// Match returns the first (longest) alias mentioned in text on token boundaries.
func (idx *AliasIndex) Match(text string) (AliasEntry, bool) {
	flat := search.Flatten(text)
	if flat == "" {
		return AliasEntry{}, false
	}
	for _, e := range idx.entries {
		if search.ContainsPhrase(flat, e.Alias) {
			return e, true
		}
	}
	return AliasEntry{}, false
}

// Lookup returns the entry registered for an exact alias.
func (idx *AliasIndex) Lookup(alias string) (AliasEntry, bool) {
	key := search.Normalize(alias)
	for _, e := range idx.entries {
		if e.Alias == key {
			return e, true
		}
	}
	return AliasEntry{}, false
}

// District is a distinct commune/district pair with all of its aliases.
type District struct {
	Commune  string
	District string
	Aliases  []string
}

// Districts groups aliases by their commune/district pair, in index order.
func (idx *AliasIndex) Districts() []District {
	pos := make(map[models.Place]int)
	var out []District
	for _, e := range idx.entries {
		key := models.Place{Commune: e.Commune, District: e.District}
		i, ok := pos[key]
		if !ok {
			i = len(out)
			pos[key] = i
			out = append(out, District{Commune: e.Commune, District: e.District})
		}
		out[i].Aliases = append(out[i].Aliases, e.Alias)
	}
	return out
}
