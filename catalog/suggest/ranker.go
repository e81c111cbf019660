// Package suggest ranks typed autocomplete suggestions for a partial query
// and applies a selected suggestion to the filter state.
package suggest

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/search"
	"github.com/Kush-Singh-26/immo/catalog/vocab"
)

// DefaultLimit is the number of suggestions returned when no limit is given.
const DefaultLimit = 8

// Match scores, lower is better.
const (
	ScoreExact   = 0
	ScorePrefix  = 1
	ScoreLabel   = 2
	ScoreSynonym = 3
)

// candidate is one suggestion source with its precomputed search strings.
type candidate struct {
	base       models.Suggestion
	label      string // normalized
	searchable string // normalized label + synonyms
}

// Ranker holds the candidates of one catalog and alias index.
// It is immutable and safe for concurrent use.
type Ranker struct {
	candidates []candidate
}

// NewRanker collects the candidates of every suggestion kind. idx may be nil.
func NewRanker(cat *location.Catalog, idx *location.AliasIndex) *Ranker {
	if cat == nil {
		cat = location.DefaultCatalog()
	}
	r := &Ranker{}

	for _, t := range vocab.Transactions {
		r.add(models.KindTransaction, t.Label, t.Value, "", "", t.Terms)
	}
	for _, c := range vocab.Categories {
		r.add(models.KindCategory, c.Label, c.Value, "", "", c.Terms)
	}
	for _, name := range cat.Communes() {
		r.add(models.KindCommune, name, name, name, "", nil)
	}
	if idx != nil {
		for _, d := range idx.Districts() {
			r.add(models.KindDistrict, d.District, d.District, d.Commune, d.District, d.Aliases)
		}
	}
	for _, room := range vocab.Rooms {
		r.add(models.KindRoom, room.Label, room.Code, "", "", append([]string{room.Code}, room.Terms...))
	}
	for _, a := range vocab.Amenities {
		r.add(models.KindAmenity, a.Label, a.Key, "", "", a.Terms)
	}

	return r
}

func (r *Ranker) add(kind models.SuggestionKind, label, value, commune, district string, terms []string) {
	parts := make([]string, 0, len(terms)+1)
	parts = append(parts, label)
	parts = append(parts, terms...)

	key := string(kind) + ":" + search.Normalize(value)
	if kind == models.KindDistrict {
		key += "@" + search.Normalize(commune)
	}

	r.candidates = append(r.candidates, candidate{
		base: models.Suggestion{
			Key:      key,
			Kind:     kind,
			Label:    label,
			Value:    value,
			Commune:  commune,
			District: district,
		},
		label:      search.Normalize(label),
		searchable: search.Normalize(strings.Join(parts, " ")),
	})
}

// Len returns the number of candidates.
func (r *Ranker) Len() int {
	return len(r.candidates)
}

// Suggest returns at most limit suggestions whose label or synonyms contain
// the normalized query, best score first. limit <= 0 means DefaultLimit.
// An empty query yields no suggestions.
func (r *Ranker) Suggest(query string, limit int) []models.Suggestion {
	q := search.Normalize(query)
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var matched []models.Suggestion
	for _, c := range r.candidates {
		if !strings.Contains(c.searchable, q) {
			continue
		}
		s := c.base
		s.Score = score(c, q)
		matched = append(matched, s)
	}
	if len(matched) == 0 {
		return nil
	}

	// Collator keeps per-call buffers and is not shared between goroutines.
	col := collate.New(language.French)
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Score != matched[j].Score {
			return matched[i].Score < matched[j].Score
		}
		return col.CompareString(matched[i].Label, matched[j].Label) < 0
	})

	seen := make(map[string]bool, len(matched))
	out := make([]models.Suggestion, 0, limit)
	for _, s := range matched {
		if seen[s.Key] {
			continue
		}
		seen[s.Key] = true
		s.Blocks = Highlight(s.Label, q)
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

func score(c candidate, q string) int {
	switch {
	case c.label == q || c.searchable == q:
		return ScoreExact
	case strings.HasPrefix(c.label, q) || strings.HasPrefix(c.searchable, q):
		return ScorePrefix
	case strings.Contains(c.label, q):
		return ScoreLabel
	default:
		return ScoreSynonym
	}
}

// Apply writes a selected suggestion into the filter state. The query
// becomes the suggestion label; unrelated facets are kept.
func Apply(state models.FilterState, s models.Suggestion) models.FilterState {
	out := state.WithQuery(s.Label)
	switch s.Kind {
	case models.KindTransaction:
		out = out.WithDealType(s.Value)
	case models.KindCommune:
		out = out.WithDistrict(s.Value, s.District)
	case models.KindDistrict:
		out = out.WithDistrict(s.Commune, s.District)
	case models.KindRoom:
		out = out.WithRoom(s.Value)
	case models.KindAmenity:
		out = out.WithAmenity(s.Value)
	}
	return out
}
