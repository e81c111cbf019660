package models

// SortMode is the result ordering.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortAreaDesc  SortMode = "area_desc"
	SortRecent    SortMode = "recent"
)

// ParseSortMode maps unknown values to relevance.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortAreaDesc, SortRecent:
		return SortMode(s)
	}
	return SortRelevance
}

// ViewMode is carried for the host only; it never affects results.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
	ViewMap  ViewMode = "map"
)

// ParseViewMode maps unknown values to grid.
func ParseViewMode(s string) ViewMode {
	switch ViewMode(s) {
	case ViewList, ViewMap:
		return ViewMode(s)
	}
	return ViewGrid
}

// FilterState is the single source of truth of the browsing screen.
// Numeric bounds are strings; an empty string means unbounded.
//
// FilterState is a value: every With* method returns a modified copy and
// never shares the amenity slice with the receiver.
type FilterState struct {
	Query     string   `json:"query"`
	DealType  string   `json:"deal_type"`
	Commune   string   `json:"commune"`
	District  string   `json:"district"`
	Room      string   `json:"room"`
	PriceMin  string   `json:"price_min"`
	PriceMax  string   `json:"price_max"`
	AreaMin   string   `json:"area_min"`
	AreaMax   string   `json:"area_max"`
	BedsMin   string   `json:"beds_min"`
	BathsMin  string   `json:"baths_min"`
	Amenities []string `json:"amenities"`
	View      ViewMode `json:"view"`
	Sort      SortMode `json:"sort"`
}

// NewFilterState returns an empty state with default view and sort.
func NewFilterState() FilterState {
	return FilterState{View: ViewGrid, Sort: SortRelevance}
}

func (f FilterState) clone() FilterState {
	if f.Amenities != nil {
		f.Amenities = append([]string(nil), f.Amenities...)
	}
	return f
}

// WithQuery sets the free-text query.
func (f FilterState) WithQuery(q string) FilterState {
	out := f.clone()
	out.Query = q
	return out
}

// WithDealType sets the deal-type facet.
func (f FilterState) WithDealType(v string) FilterState {
	out := f.clone()
	out.DealType = v
	return out
}

// WithCommune sets the commune. The district is cleared when the commune
// actually changes so that district always belongs to commune.
func (f FilterState) WithCommune(c string) FilterState {
	out := f.clone()
	if out.Commune != c {
		out.District = ""
	}
	out.Commune = c
	return out
}

// WithDistrict sets commune and district together.
func (f FilterState) WithDistrict(commune, district string) FilterState {
	out := f.clone()
	out.Commune = commune
	out.District = district
	return out
}

// WithRoom overwrites the room code.
func (f FilterState) WithRoom(code string) FilterState {
	out := f.clone()
	out.Room = code
	return out
}

// WithPrice overwrites both price bounds.
func (f FilterState) WithPrice(min, max string) FilterState {
	out := f.clone()
	out.PriceMin = min
	out.PriceMax = max
	return out
}

// WithPriceMin overwrites the lower price bound.
func (f FilterState) WithPriceMin(v string) FilterState {
	out := f.clone()
	out.PriceMin = v
	return out
}

// WithPriceMax overwrites the upper price bound.
func (f FilterState) WithPriceMax(v string) FilterState {
	out := f.clone()
	out.PriceMax = v
	return out
}

// WithAreaMin overwrites the lower area bound.
func (f FilterState) WithAreaMin(v string) FilterState {
	out := f.clone()
	out.AreaMin = v
	return out
}

// WithAreaMax overwrites the upper area bound.
func (f FilterState) WithAreaMax(v string) FilterState {
	out := f.clone()
	out.AreaMax = v
	return out
}

// WithAmenity adds key to the amenity set. Adding twice is a no-op.
func (f FilterState) WithAmenity(key string) FilterState {
	out := f.clone()
	if out.HasAmenity(key) {
		return out
	}
	out.Amenities = append(out.Amenities, key)
	return out
}

// WithoutAmenity removes key from the amenity set.
func (f FilterState) WithoutAmenity(key string) FilterState {
	out := f.clone()
	kept := out.Amenities[:0]
	for _, a := range out.Amenities {
		if a != key {
			kept = append(kept, a)
		}
	}
	out.Amenities = kept
	return out
}

// HasAmenity reports whether key is selected.
func (f FilterState) HasAmenity(key string) bool {
	for _, a := range f.Amenities {
		if a == key {
			return true
		}
	}
	return false
}
