// defines the data structures shared by the search core and its hosts
package models

// Listing is one property record supplied by the data-fetch layer.
// Price and Location are opaque strings parsed on demand, never rewritten.
type Listing struct {
	ID        string   `json:"id" yaml:"id" msgpack:"id"`
	Ref       string   `json:"ref" yaml:"ref" msgpack:"ref"`
	Title     string   `json:"title" yaml:"title" msgpack:"title"`
	Type      string   `json:"type" yaml:"type" msgpack:"type"`
	Category  string   `json:"category" yaml:"category" msgpack:"category"`
	Price     string   `json:"price" yaml:"price" msgpack:"price"`
	Location  string   `json:"location" yaml:"location" msgpack:"location"`
	Beds      int      `json:"beds" yaml:"beds" msgpack:"beds"`
	Baths     int      `json:"baths" yaml:"baths" msgpack:"baths"`
	Area      float64  `json:"area" yaml:"area" msgpack:"area"`
	Images    []string `json:"images,omitempty" yaml:"images,omitempty" msgpack:"images,omitempty"`
	Amenities []string `json:"amenities,omitempty" yaml:"amenities,omitempty" msgpack:"amenities,omitempty"`
}

// HasAmenity reports whether key is in the listing's amenity set.
func (l Listing) HasAmenity(key string) bool {
	for _, a := range l.Amenities {
		if a == key {
			return true
		}
	}
	return false
}

// Place is a parsed location.
type Place struct {
	Commune  string `json:"commune" msgpack:"commune"`
	District string `json:"district" msgpack:"district"`
}

// IsZero reports whether neither part resolved.
func (p Place) IsZero() bool {
	return p.Commune == "" && p.District == ""
}

// SuggestionKind is the facet a suggestion applies to.
type SuggestionKind string

const (
	KindCommune     SuggestionKind = "commune"
	KindDistrict    SuggestionKind = "district"
	KindRoom        SuggestionKind = "room"
	KindAmenity     SuggestionKind = "amenity"
	KindTransaction SuggestionKind = "transaction"
	KindCategory    SuggestionKind = "category"
)

// TextBlock is one segment of a highlighted suggestion label.
type TextBlock struct {
	Text      string `json:"text"`
	Highlight bool   `json:"hl"`
}

// Suggestion is a typed autocomplete entry. Value is the facet value applied
// on selection; Key is the stable dedupe key, e.g. "commune:oran".
type Suggestion struct {
	Key      string         `json:"key"`
	Kind     SuggestionKind `json:"kind"`
	Label    string         `json:"label"`
	Value    string         `json:"value"`
	Commune  string         `json:"commune,omitempty"`
	District string         `json:"district,omitempty"`
	Score    int            `json:"score"`
	Blocks   []TextBlock    `json:"blocks,omitempty"`
}

// FormatIntent tells the host how a raw number should be rendered.
type FormatIntent string

const (
	IntentCompactCurrency FormatIntent = "compact_currency"
	IntentCurrency        FormatIntent = "currency"
)

// DisplayValue is a raw number plus its formatting intent.
type DisplayValue struct {
	Value  float64      `json:"value"`
	Intent FormatIntent `json:"intent"`
}
