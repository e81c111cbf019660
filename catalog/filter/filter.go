// Package filter applies the faceted filter predicate and the selected sort
// order to an in-memory listing collection.
package filter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/pricerange"
	"github.com/Kush-Singh-26/immo/catalog/search"
	"github.com/Kush-Singh-26/immo/catalog/vocab"
)

// predicate is one active facet.
type predicate func(d *document) bool

// Engine applies filter states to listing collections.
type Engine struct {
	cat *location.Catalog
}

// NewEngine creates an engine resolving locations against cat.
func NewEngine(cat *location.Catalog) *Engine {
	if cat == nil {
		cat = location.DefaultCatalog()
	}
	return &Engine{cat: cat}
}

// Apply returns the listings passing every active facet, in the selected
// order. The input slice is never modified and no listing is invented.
func (e *Engine) Apply(listings []models.Listing, f models.FilterState) []models.Listing {
	preds := e.predicates(f)

	docs := make([]document, 0, len(listings))
	for _, l := range listings {
		d := newDocument(e.cat, l)
		if matches(&d, preds) {
			docs = append(docs, d)
		}
	}

	sortDocuments(docs, f.Sort)

	out := make([]models.Listing, len(docs))
	for i := range docs {
		out[i] = docs[i].listing
	}
	return out
}

// Count returns how many listings pass the filters.
func (e *Engine) Count(listings []models.Listing, f models.FilterState) int {
	preds := e.predicates(f)
	n := 0
	for _, l := range listings {
		d := newDocument(e.cat, l)
		if matches(&d, preds) {
			n++
		}
	}
	return n
}

func matches(d *document, preds []predicate) bool {
	for _, p := range preds {
		if !p(d) {
			return false
		}
	}
	return true
}

// predicates builds the list of active facets of f.
func (e *Engine) predicates(f models.FilterState) []predicate {
	var preds []predicate

	if p := dealTypePredicate(f.DealType); p != nil {
		preds = append(preds, p)
	}

	if tokens := search.QueryTokens(f.Query); len(tokens) > 0 {
		preds = append(preds, func(d *document) bool {
			for _, t := range tokens {
				if !strings.Contains(d.haystack, t) {
					return false
				}
			}
			return true
		})
	}

	if c := search.Normalize(f.Commune); c != "" {
		preds = append(preds, func(d *document) bool {
			return search.Normalize(d.place.Commune) == c
		})
	}
	if dist := search.Normalize(f.District); dist != "" {
		preds = append(preds, func(d *document) bool {
			return search.Normalize(d.place.District) == dist
		})
	}

	if room := roomNeedle(f.Room); room != "" {
		preds = append(preds, func(d *document) bool {
			return strings.Contains(d.roomText, room)
		})
	}

	if v, ok := parseBound(f.PriceMin); ok {
		preds = append(preds, func(d *document) bool {
			return !d.hasPrice || d.price >= v
		})
	}
	if v, ok := parseBound(f.PriceMax); ok {
		preds = append(preds, func(d *document) bool {
			return !d.hasPrice || d.price <= v
		})
	}

	if v, ok := positive(f.AreaMin); ok {
		preds = append(preds, func(d *document) bool { return d.listing.Area >= v })
	}
	if v, ok := positive(f.AreaMax); ok {
		preds = append(preds, func(d *document) bool { return d.listing.Area <= v })
	}
	if v, ok := positive(f.BedsMin); ok {
		preds = append(preds, func(d *document) bool { return float64(d.listing.Beds) >= v })
	}
	if v, ok := positive(f.BathsMin); ok {
		preds = append(preds, func(d *document) bool { return float64(d.listing.Baths) >= v })
	}

	// A listing without amenity data is unknown, not lacking, and passes
	// like a listing with an unparsable price.
	if len(f.Amenities) > 0 {
		wanted := append([]string(nil), f.Amenities...)
		preds = append(preds, func(d *document) bool {
			if len(d.listing.Amenities) == 0 {
				return true
			}
			for _, key := range wanted {
				if !d.listing.HasAmenity(key) {
					return false
				}
			}
			return true
		})
	}

	return preds
}

// dealTypePredicate matches base kinds exactly; sub-kinds require a rental
// whose haystack mentions one of the sub-kind terms.
func dealTypePredicate(value string) predicate {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, ok := vocab.TransactionByValue(value)
	if !ok {
		t, ok = transactionByNormalized(value)
	}
	if !ok {
		// unknown facet value: compare against the listing kind label
		want := KindOf(value)
		return func(d *document) bool { return want != vocab.KindUnknown && d.kind == want }
	}
	if !t.SubKind {
		return func(d *document) bool { return d.kind == t.Kind }
	}
	return func(d *document) bool {
		return d.kind == vocab.KindRental && containsAnyTerm(d.haystack, t.Terms)
	}
}

func transactionByNormalized(value string) (vocab.Transaction, bool) {
	key := search.Normalize(value)
	for _, t := range vocab.Transactions {
		if search.Normalize(t.Value) == key || search.Normalize(t.Label) == key {
			return t, true
		}
	}
	return vocab.Transaction{}, false
}

// roomNeedle is the normalized room code without its "+" suffix.
func roomNeedle(code string) string {
	return strings.TrimSuffix(search.Normalize(code), "+")
}

func parseBound(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	return pricerange.ParsePrice(s)
}

func positive(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// sortDocuments orders docs in place. Relevance keeps source order.
func sortDocuments(docs []document, mode models.SortMode) {
	switch mode {
	case models.SortPriceAsc:
		sort.SliceStable(docs, func(i, j int) bool {
			return priceLess(docs[i], docs[j], false)
		})
	case models.SortPriceDesc:
		sort.SliceStable(docs, func(i, j int) bool {
			return priceLess(docs[i], docs[j], true)
		})
	case models.SortAreaDesc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].listing.Area > docs[j].listing.Area
		})
	case models.SortRecent:
		sort.SliceStable(docs, func(i, j int) bool {
			return recencyKey(docs[i].listing) > recencyKey(docs[j].listing)
		})
	}
}

// priceLess puts unparsable prices last in both directions.
func priceLess(a, b document, desc bool) bool {
	if a.hasPrice != b.hasPrice {
		return a.hasPrice
	}
	if desc {
		return a.price > b.price
	}
	return a.price < b.price
}

func recencyKey(l models.Listing) string {
	if l.Ref != "" {
		return l.Ref
	}
	return l.ID
}
