package suggest

import (
	"reflect"
	"testing"

	"github.com/Kush-Singh-26/immo/catalog/location"
	"github.com/Kush-Singh-26/immo/catalog/models"
	"github.com/Kush-Singh-26/immo/catalog/testutil"
)

func labels(ss []models.Suggestion) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Label
	}
	return out
}

func TestSuggestExactBeforeSubstring(t *testing.T) {
	cat := location.NewCatalog([]string{"Sidi Oranais", "Oran"})
	r := NewRanker(cat, nil)

	got := r.Suggest("oran", 0)
	if len(got) != 2 {
		t.Fatalf("Suggest(oran) = %v, want 2 suggestions", labels(got))
	}
	if got[0].Label != "Oran" || got[0].Score != ScoreExact {
		t.Errorf("first = %s (score %d), want Oran (score %d)", got[0].Label, got[0].Score, ScoreExact)
	}
	if got[1].Label != "Sidi Oranais" || got[1].Score != ScoreLabel {
		t.Errorf("second = %s (score %d), want Sidi Oranais (score %d)", got[1].Label, got[1].Score, ScoreLabel)
	}
	if got[0].Key != "commune:oran" {
		t.Errorf("Key = %q, want commune:oran", got[0].Key)
	}
}

func TestSuggestScores(t *testing.T) {
	r := NewRanker(nil, nil)

	tests := []struct {
		name   string
		query  string
		labels []string
		score  int
	}{
		{"exact transaction", "VENTE", []string{"Vente"}, ScoreExact},
		{"prefix", "vue", []string{"Vue sur mer", "Vue sur ville"}, ScorePrefix},
		{"synonym only", "sea view", []string{"Vue sur mer"}, ScoreSynonym},
		{"arabic synonym", "مصعد", []string{"Ascenseur"}, ScoreSynonym},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Suggest(tt.query, 0)
			if !reflect.DeepEqual(labels(got), tt.labels) {
				t.Fatalf("Suggest(%q) = %v, want %v", tt.query, labels(got), tt.labels)
			}
			for _, s := range got {
				if s.Score != tt.score {
					t.Errorf("%s score = %d, want %d", s.Label, s.Score, tt.score)
				}
			}
		})
	}
}

func TestSuggestEmptyAndLimit(t *testing.T) {
	r := NewRanker(nil, nil)

	for _, q := range []string{"", "   ", "\t"} {
		if got := r.Suggest(q, 5); len(got) != 0 {
			t.Errorf("Suggest(%q) = %v, want none", q, labels(got))
		}
	}
	if got := r.Suggest("zzzz", 5); len(got) != 0 {
		t.Errorf("Suggest(zzzz) = %v, want none", labels(got))
	}

	if got := r.Suggest("e", 3); len(got) != 3 {
		t.Errorf("Suggest(e, 3) returned %d suggestions", len(got))
	}
	if got := r.Suggest("e", 0); len(got) != DefaultLimit {
		t.Errorf("Suggest(e, 0) returned %d suggestions, want %d", len(got), DefaultLimit)
	}
}

func TestSuggestSortedAndUnique(t *testing.T) {
	cat := location.DefaultCatalog()
	r := NewRanker(cat, location.BuildAliasIndex(cat, testutil.CreateSampleListings()))

	got := r.Suggest("a", 100)
	seen := make(map[string]bool)
	for i, s := range got {
		if seen[s.Key] {
			t.Errorf("duplicate key %s", s.Key)
		}
		seen[s.Key] = true
		if i > 0 && got[i-1].Score > s.Score {
			t.Errorf("scores out of order at %d: %d > %d", i, got[i-1].Score, s.Score)
		}
	}
}

func TestSuggestDistricts(t *testing.T) {
	cat := location.DefaultCatalog()
	idx := location.BuildAliasIndex(cat, testutil.CreateSampleListings())
	r := NewRanker(cat, idx)

	got := r.Suggest("kanast", 0)
	if len(got) != 1 {
		t.Fatalf("Suggest(kanast) = %v, want one district", labels(got))
	}
	s := got[0]
	if s.Kind != models.KindDistrict || s.Commune != "Bir El Djir" || s.District != "Canastel" {
		t.Errorf("got %+v, want Canastel district of Bir El Djir", s)
	}
	if s.Score != ScoreSynonym {
		t.Errorf("score = %d, want %d", s.Score, ScoreSynonym)
	}
}

func TestApply(t *testing.T) {
	base := models.NewFilterState().
		WithDistrict("Oran", "Akid Lotfi").
		WithAmenity("fibre").
		WithRoom("F3")

	tests := []struct {
		name  string
		s     models.Suggestion
		check func(t *testing.T, f models.FilterState)
	}{
		{
			name: "commune clears district",
			s:    models.Suggestion{Kind: models.KindCommune, Label: "Es Senia", Value: "Es Senia"},
			check: func(t *testing.T, f models.FilterState) {
				if f.Commune != "Es Senia" || f.District != "" {
					t.Errorf("commune/district = %q/%q", f.Commune, f.District)
				}
			},
		},
		{
			name: "same commune clears district",
			s:    models.Suggestion{Kind: models.KindCommune, Label: "Oran", Value: "Oran"},
			check: func(t *testing.T, f models.FilterState) {
				if f.Commune != "Oran" || f.District != "" {
					t.Errorf("commune/district = %q/%q", f.Commune, f.District)
				}
			},
		},
		{
			name: "district sets both",
			s:    models.Suggestion{Kind: models.KindDistrict, Label: "Canastel", Value: "Canastel", Commune: "Bir El Djir", District: "Canastel"},
			check: func(t *testing.T, f models.FilterState) {
				if f.Commune != "Bir El Djir" || f.District != "Canastel" {
					t.Errorf("commune/district = %q/%q", f.Commune, f.District)
				}
			},
		},
		{
			name: "room overwrites",
			s:    models.Suggestion{Kind: models.KindRoom, Label: "F4", Value: "F4"},
			check: func(t *testing.T, f models.FilterState) {
				if f.Room != "F4" {
					t.Errorf("room = %q", f.Room)
				}
			},
		},
		{
			name: "amenity adds",
			s:    models.Suggestion{Kind: models.KindAmenity, Label: "Vue sur mer", Value: "vue_mer"},
			check: func(t *testing.T, f models.FilterState) {
				if !reflect.DeepEqual(f.Amenities, []string{"fibre", "vue_mer"}) {
					t.Errorf("amenities = %v", f.Amenities)
				}
			},
		},
		{
			name: "transaction sets deal type",
			s:    models.Suggestion{Kind: models.KindTransaction, Label: "Location", Value: "Location"},
			check: func(t *testing.T, f models.FilterState) {
				if f.DealType != "Location" || f.Room != "F3" || f.District != "Akid Lotfi" {
					t.Errorf("state = %+v", f)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(base, tt.s)
			if got.Query != tt.s.Label {
				t.Errorf("query = %q, want %q", got.Query, tt.s.Label)
			}
			tt.check(t, got)
		})
	}

	if !reflect.DeepEqual(base.Amenities, []string{"fibre"}) {
		t.Errorf("Apply modified the input state: %v", base.Amenities)
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		label string
		query string
		want  []models.TextBlock
	}{
		{"Aïn El Türck", "turck", []models.TextBlock{{Text: "Aïn El "}, {Text: "Türck", Highlight: true}}},
		{"Vue sur mer", "vue mer", []models.TextBlock{{Text: "Vue", Highlight: true}, {Text: " sur "}, {Text: "mer", Highlight: true}}},
		{"Oran", "or", []models.TextBlock{{Text: "Or", Highlight: true}, {Text: "an"}}},
		{"Oran", "xyz", []models.TextBlock{{Text: "Oran"}}},
	}

	for _, tt := range tests {
		t.Run(tt.label+"/"+tt.query, func(t *testing.T) {
			got := Highlight(tt.label, tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Highlight(%q, %q) = %+v, want %+v", tt.label, tt.query, got, tt.want)
			}
		})
	}
}
