package server

import (
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Kush-Singh-26/immo/catalog/cache"
	"github.com/Kush-Singh-26/immo/catalog/metrics"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/pricerange"
	"github.com/Kush-Singh-26/immo/catalog/session"
)

// ListingsResponse is a session view with formatted price cursors.
type ListingsResponse struct {
	session.View
	PriceMinText string `json:"price_min_text"`
	PriceMaxText string `json:"price_max_text"`
}

// PriceRangeResponse describes the price slider.
type PriceRangeResponse struct {
	Bounds pricerange.Bounds `json:"bounds"`
	Min    FormattedValue    `json:"min"`
	Max    FormattedValue    `json:"max"`
}

// PriceFilterRequest moves one or both price cursors.
type PriceFilterRequest struct {
	State models.FilterState `json:"state"`
	Min   *float64           `json:"min,omitempty"`
	Max   *float64           `json:"max,omitempty"`
}

// SuggestionFilterRequest applies a selected suggestion.
type SuggestionFilterRequest struct {
	State      models.FilterState `json:"state"`
	Suggestion models.Suggestion  `json:"suggestion"`
}

// StatsResponse is the /api/stats payload.
type StatsResponse struct {
	Summary string           `json:"summary"`
	Metrics metrics.Snapshot `json:"metrics"`
	Cache   *cache.Stats     `json:"cache,omitempty"`
}

func (s *Server) session(w http.ResponseWriter) *session.Session {
	sess := s.host.Session()
	if sess == nil {
		WriteJSONError(w, http.StatusServiceUnavailable, "catalog not loaded")
	}
	return sess
}

// sanitize strips markup from user text.
func (s *Server) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// stateFromQuery reads a filter state from URL parameters. The query text is
// not included; callers decide whether it runs through extraction.
func (s *Server) stateFromQuery(q url.Values) models.FilterState {
	state := models.NewFilterState()
	state = state.WithDealType(s.sanitize(q.Get("deal")))
	state = state.WithCommune(s.sanitize(q.Get("commune")))
	if d := s.sanitize(q.Get("district")); d != "" {
		state = state.WithDistrict(state.Commune, d)
	}
	state = state.WithRoom(s.sanitize(q.Get("room")))
	state = state.WithPrice(q.Get("price_min"), q.Get("price_max"))
	state = state.WithAreaMin(q.Get("area_min")).WithAreaMax(q.Get("area_max"))
	state.BedsMin = q.Get("beds_min")
	state.BathsMin = q.Get("baths_min")

	for _, raw := range q["amenity"] {
		for _, key := range strings.Split(raw, ",") {
			if key = s.sanitize(key); key != "" {
				state = state.WithAmenity(key)
			}
		}
	}
	state.Sort = models.ParseSortMode(q.Get("sort"))
	state.View = models.ParseViewMode(q.Get("view"))
	return state
}

// handleListings serves GET /api/listings. The q parameter counts as a text
// change: implied facets are extracted unless extract=false.
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w)
	if sess == nil {
		return
	}
	params := r.URL.Query()
	state := s.stateFromQuery(params)

	text := s.sanitize(params.Get("q"))
	if extract, err := strconv.ParseBool(params.Get("extract")); err == nil && !extract {
		state = state.WithQuery(text)
	} else if text != "" {
		state = sess.OnQueryChange(state, text)
	}

	view, err := s.host.Recompute(state)
	if err != nil {
		WriteJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	loggerFrom(r.Context()).Debug("Recomputed", "query", state.Query, "count", view.Count)

	RespondWithJSON(w, http.StatusOK, ListingsResponse{
		View:         view,
		PriceMinText: s.formatter.Format(view.PriceMin),
		PriceMaxText: s.formatter.Format(view.PriceMax),
	})
}

// handleSuggest serves GET /api/suggest?q=&limit=.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	limit, _ := strconv.Atoi(params.Get("limit"))

	sugs, err := s.host.Suggest(s.sanitize(params.Get("q")), limit)
	if err != nil {
		WriteJSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if sugs == nil {
		sugs = []models.Suggestion{}
	}
	RespondWithJSON(w, http.StatusOK, sugs)
}

// handlePriceRange serves GET /api/price-range with cursors positioned on
// the price parameters of the request.
func (s *Server) handlePriceRange(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w)
	if sess == nil {
		return
	}
	state := s.stateFromQuery(r.URL.Query())
	lo, hi := sess.Controller(state).Display()

	RespondWithJSON(w, http.StatusOK, PriceRangeResponse{
		Bounds: sess.Bounds(),
		Min:    s.formatter.value(lo),
		Max:    s.formatter.value(hi),
	})
}

// handlePriceFilter serves POST /api/filters/price.
func (s *Server) handlePriceFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w)
	if sess == nil {
		return
	}
	var req PriceFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Min == nil && req.Max == nil {
		WriteJSONError(w, http.StatusBadRequest, "min or max is required")
		return
	}

	state := req.State
	if req.Min != nil {
		state = sess.SetPriceMin(state, *req.Min)
	}
	if req.Max != nil {
		state = sess.SetPriceMax(state, *req.Max)
	}
	RespondWithJSON(w, http.StatusOK, state)
}

// handleSuggestionFilter serves POST /api/filters/suggestion.
func (s *Server) handleSuggestionFilter(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w)
	if sess == nil {
		return
	}
	var req SuggestionFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Suggestion.Kind == "" {
		WriteJSONError(w, http.StatusBadRequest, "suggestion kind is required")
		return
	}
	RespondWithJSON(w, http.StatusOK, sess.ApplySuggestion(req.State, req.Suggestion))
}

// handleStats serves GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	m := s.host.Metrics()
	resp := StatsResponse{
		Summary: m.String(),
		Metrics: m.Snapshot(),
	}
	if cm := s.host.Cache(); cm != nil {
		if st, err := cm.Stats(); err == nil {
			resp.Cache = &st
		} else {
			loggerFrom(r.Context()).Warn("Cache stats failed", "error", err)
		}
	}
	RespondWithJSON(w, http.StatusOK, resp)
}
