package filter

import (
	"strconv"
	"strings"

	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/pricerange"
	"github.com/Kush-Singh-26/immo/catalog/search"
	"github.com/Kush-Singh-26/immo/catalog/vocab"
)

// document is the per-listing view the predicates work on.
type document struct {
	listing  models.Listing
	place    models.Place
	kind     vocab.Kind
	price    float64
	hasPrice bool
	haystack string // normalized
	roomText string // normalized title + location
}

func newDocument(cat *location.Catalog, l models.Listing) document {
	d := document{
		listing: l,
		place:   cat.Parse(l.Location),
		kind:    KindOf(l.Type),
	}
	d.price, d.hasPrice = pricerange.ParsePrice(l.Price)
	d.roomText = search.Normalize(l.Title + " " + l.Location)
	d.haystack = buildHaystack(l, d.place, d.kind)
	return d
}

// buildHaystack concatenates everything a free-text token may hit.
func buildHaystack(l models.Listing, place models.Place, kind vocab.Kind) string {
	var b strings.Builder
	b.Grow(256)
	write := func(s string) {
		if s == "" {
			return
		}
		b.WriteString(s)
		b.WriteByte(' ')
	}

	write(l.Title)
	write(l.Category)
	write(l.Type)
	write(l.Price)
	write(l.Location)
	write(place.Commune)
	write(place.District)

	for _, c := range InferCategories(l) {
		write(c)
	}

	for _, t := range vocab.Transactions {
		if t.SubKind || t.Kind != kind {
			continue
		}
		write(t.Label)
		for _, term := range t.Terms {
			write(term)
		}
	}

	// rental sub-kinds are named when one of their terms is already present
	if kind == vocab.KindRental {
		seen := search.Normalize(b.String())
		for _, t := range vocab.Transactions {
			if t.SubKind && containsAnyTerm(seen, t.Terms) {
				write(t.Label)
			}
		}
	}

	for _, key := range l.Amenities {
		if a, ok := vocab.AmenityByKey(key); ok {
			write(a.Label)
		}
		write(key)
	}

	if l.Beds > 0 {
		write(strconv.Itoa(l.Beds) + " chambres")
	}
	if l.Baths > 0 {
		write(strconv.Itoa(l.Baths) + " sdb")
	}
	if l.Area > 0 {
		write(strconv.FormatFloat(l.Area, 'f', -1, 64) + " m2")
	}

	return search.Normalize(b.String())
}

// containsAnyTerm matches terms on token boundaries. Terms carrying
// punctuation, such as "/mois", are matched verbatim.
func containsAnyTerm(normalized string, terms []string) bool {
	flat := " " + search.Flatten(normalized) + " "
	for _, term := range terms {
		t := search.Normalize(term)
		if t == "" {
			continue
		}
		if search.Flatten(t) != t {
			if strings.Contains(normalized, t) {
				return true
			}
			continue
		}
		if strings.Contains(flat, " "+t+" ") {
			return true
		}
	}
	return false
}

// KindOf infers the transaction family from a listing's type label.
func KindOf(typ string) vocab.Kind {
	if typ == "" {
		return vocab.KindUnknown
	}
	for _, term := range vocab.SaleTerms() {
		if search.ContainsPhrase(typ, term) {
			return vocab.KindSale
		}
	}
	for _, term := range vocab.RentalTerms() {
		if search.ContainsPhrase(typ, term) {
			return vocab.KindRental
		}
	}
	return vocab.KindUnknown
}

// InferCategories returns the labels of categories whose terms appear in the
// listing's category or title.
func InferCategories(l models.Listing) []string {
	text := l.Category + " " + l.Title
	var out []string
	for _, c := range vocab.Categories {
		for _, term := range c.Terms {
			if search.ContainsPhrase(text, term) {
				out = append(out, c.Label)
				break
			}
		}
	}
	return out
}
