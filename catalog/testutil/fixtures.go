// Package testutil provides testing utilities and fixtures
package testutil

import (
	"github.com/Kush-Singh-26/immo/catalog/models"
)

// CreateSampleListing creates a valid sale listing for testing
func CreateSampleListing() models.Listing {
	return models.Listing{
		ID:        "l-001",
		Ref:       "REF-2026-001",
		Title:     "Appartement F4 vue mer",
		Type:      "Vente",
		Category:  "Appartement",
		Price:     "2 500 000 DA",
		Location:  "Canastel, Bir El Djir",
		Beds:      3,
		Baths:     2,
		Area:      120,
		Amenities: []string{"vue_mer", "ascenseur", "residence_fermee"},
	}
}

// CreateSampleListings creates a small mixed collection covering both
// transaction kinds, unparsable prices and missing amenity data.
func CreateSampleListings() []models.Listing {
	return []models.Listing{
		CreateSampleListing(),
		{
			ID:        "l-002",
			Ref:       "REF-2026-002",
			Title:     "F3 meublé centre ville",
			Type:      "Location",
			Category:  "Appartement",
			Price:     "75 000 DA / mois",
			Location:  "Oran - Akid Lotfi",
			Beds:      2,
			Baths:     1,
			Area:      85,
			Amenities: []string{"climatisation", "fibre"},
		},
		{
			ID:       "l-003",
			Ref:      "REF-2026-003",
			Title:    "Villa avec piscine",
			Type:     "Vente",
			Category: "Villa",
			Price:    "45 M DA",
			Location: "Aïn El Türck",
			Beds:     5,
			Baths:    3,
			Area:     350,
		},
		{
			ID:        "l-004",
			Ref:       "REF-2026-004",
			Title:     "Studio par nuit front de mer",
			Type:      "Location",
			Category:  "Studio",
			Price:     "Prix sur demande",
			Location:  "Canastel",
			Beds:      1,
			Baths:     1,
			Area:      35,
			Amenities: []string{"vue_mer", "climatisation"},
		},
		{
			ID:        "l-005",
			Ref:       "REF-2026-005",
			Title:     "Local commercial",
			Type:      "Vente",
			Category:  "Local",
			Price:     "12 000 000",
			Location:  "Es Senia, Hai El Yasmine",
			Area:      60,
			Amenities: []string{},
		},
	}
}

// CreateSampleFilters creates an empty filter state with the default view
func CreateSampleFilters() models.FilterState {
	return models.NewFilterState()
}

// CreateSampleCatalogYAML returns a catalog document as served by the
// listing feed.
func CreateSampleCatalogYAML() string {
	return `listings:
  - ref: REF-2026-001
    title: Appartement F4 vue mer
    type: Vente
    category: Appartement
    price: 2 500 000 DA
    location: Canastel, Bir El Djir
    beds: 3
    baths: 2
    area: 120
    amenities: [vue_mer, ascenseur]
  - ref: REF-2026-002
    title: F3 meublé centre ville
    type: Location
    category: Appartement
    price: 75 000 DA / mois
    location: Oran - Akid Lotfi
    beds: 2
    baths: 1
    area: 85
`
}
