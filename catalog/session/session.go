// Package session wires the search core around one immutable listing
// collection: alias index, price bounds, filter engine, suggestion ranker
// and query extractor. Every operation is a pure function of the filter
// state it receives.
package session

import (
	"github.com/Kush-Singh-26/immo/catalog/extract"
	"github.com/Kush-Singh-26/immo/catalog/filter"
	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/pricerange"
	"github.com/Kush-Singh-26/immo/catalog/suggest"
)

// Options tune a session. Zero values select the defaults.
type Options struct {
	Communes       []string
	SuggestLimit   int
	FallbackBounds pricerange.Bounds
}

// Derived is the state computed once per listing collection. It is what the
// snapshot cache stores.
type Derived struct {
	Aliases []location.AliasEntry
	Bounds  pricerange.Bounds
}

// View is everything a host renders after a filter state change.
type View struct {
	State       models.FilterState  `json:"state"`
	Results     []models.Listing    `json:"results"`
	Count       int                 `json:"count"`
	Total       int                 `json:"total"`
	Suggestions []models.Suggestion `json:"suggestions"`
	Bounds      pricerange.Bounds   `json:"bounds"`
	PriceMin    models.DisplayValue `json:"price_min"`
	PriceMax    models.DisplayValue `json:"price_max"`
}

// Session is safe for concurrent use: nothing in it changes after New.
type Session struct {
	listings  []models.Listing
	catalog   *location.Catalog
	aliases   *location.AliasIndex
	bounds    pricerange.Bounds
	engine    *filter.Engine
	ranker    *suggest.Ranker
	extractor *extract.Extractor
	limit     int
}

// New derives the alias index and price bounds of listings and builds a
// session over a private copy of them.
func New(listings []models.Listing, opts Options) *Session {
	cat := catalogFor(opts)
	return build(listings, cat,
		location.BuildAliasIndex(cat, listings),
		pricerange.ComputeBounds(listings, opts.FallbackBounds),
		opts)
}

// Restore builds a session from previously derived state.
func Restore(listings []models.Listing, d Derived, opts Options) *Session {
	return build(listings, catalogFor(opts), location.NewAliasIndex(d.Aliases), d.Bounds, opts)
}

func catalogFor(opts Options) *location.Catalog {
	if len(opts.Communes) > 0 {
		return location.NewCatalog(opts.Communes)
	}
	return location.DefaultCatalog()
}

func build(listings []models.Listing, cat *location.Catalog, idx *location.AliasIndex, b pricerange.Bounds, opts Options) *Session {
	limit := opts.SuggestLimit
	if limit <= 0 {
		limit = suggest.DefaultLimit
	}
	return &Session{
		listings:  append([]models.Listing(nil), listings...),
		catalog:   cat,
		aliases:   idx,
		bounds:    b,
		engine:    filter.NewEngine(cat),
		ranker:    suggest.NewRanker(cat, idx),
		extractor: extract.New(cat, idx),
		limit:     limit,
	}
}

// Derived returns the state a snapshot needs to restore this session.
func (s *Session) Derived() Derived {
	return Derived{Aliases: s.aliases.Entries(), Bounds: s.bounds}
}

// Listings returns a copy of the collection.
func (s *Session) Listings() []models.Listing {
	return append([]models.Listing(nil), s.listings...)
}

// Len returns the collection size.
func (s *Session) Len() int { return len(s.listings) }

// Catalog returns the commune catalog.
func (s *Session) Catalog() *location.Catalog { return s.catalog }

// Aliases returns the alias index.
func (s *Session) Aliases() *location.AliasIndex { return s.aliases }

// Bounds returns the observed price range.
func (s *Session) Bounds() pricerange.Bounds { return s.bounds }

// Recompute derives the full view of state.
func (s *Session) Recompute(state models.FilterState) View {
	results := s.engine.Apply(s.listings, state)
	ctl := pricerange.NewController(s.bounds, state)
	lo, hi := ctl.Display()
	suggestions := s.ranker.Suggest(state.Query, s.limit)
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	return View{
		State:       state,
		Results:     results,
		Count:       len(results),
		Total:       len(s.listings),
		Suggestions: suggestions,
		Bounds:      s.bounds,
		PriceMin:    lo,
		PriceMax:    hi,
	}
}

// Apply returns the filtered and sorted listings only.
func (s *Session) Apply(state models.FilterState) []models.Listing {
	return s.engine.Apply(s.listings, state)
}

// Suggest ranks suggestions for a partial query. limit <= 0 uses the
// session limit.
func (s *Session) Suggest(query string, limit int) []models.Suggestion {
	if limit <= 0 {
		limit = s.limit
	}
	return s.ranker.Suggest(query, limit)
}

// OnQueryChange records new query text and adds the facets it implies.
// Extraction runs only here, so a facet the user removes afterwards is not
// re-added by the next recompute.
func (s *Session) OnQueryChange(state models.FilterState, text string) models.FilterState {
	return s.extractor.Extract(state.WithQuery(text), text)
}

// ApplySuggestion writes a selected suggestion into state.
func (s *Session) ApplySuggestion(state models.FilterState, sug models.Suggestion) models.FilterState {
	return suggest.Apply(state, sug)
}

// Controller positions a price controller on state.
func (s *Session) Controller(state models.FilterState) *pricerange.Controller {
	return pricerange.NewController(s.bounds, state)
}

// SetPriceMin moves the low price cursor and writes both cursors back.
func (s *Session) SetPriceMin(state models.FilterState, v float64) models.FilterState {
	ctl := s.Controller(state)
	ctl.SetMin(v)
	return ctl.Apply(state)
}

// SetPriceMax moves the high price cursor and writes both cursors back.
func (s *Session) SetPriceMax(state models.FilterState, v float64) models.FilterState {
	ctl := s.Controller(state)
	ctl.SetMax(v)
	return ctl.Apply(state)
}

// Recompute is the one-shot form over the default commune catalog.
func Recompute(state models.FilterState, listings []models.Listing) View {
	return New(listings, Options{}).Recompute(state)
}
