package vocab

import "testing"

func TestLookups(t *testing.T) {
	if tr, ok := TransactionByValue("Location par nuit"); !ok || tr.Kind != KindRental || !tr.SubKind {
		t.Errorf("TransactionByValue = %+v, %v", tr, ok)
	}
	if _, ok := TransactionByValue("location"); ok {
		t.Error("lookup is by exact value")
	}
	if a, ok := AmenityByKey("vue_mer"); !ok || a.Label != "Vue sur mer" {
		t.Errorf("AmenityByKey = %+v, %v", a, ok)
	}
	if r, ok := RoomByCode("F6+"); !ok || r.Label != "F6+" {
		t.Errorf("RoomByCode = %+v, %v", r, ok)
	}
	if _, ok := RoomByCode("F7"); ok {
		t.Error("F7 should be unknown")
	}
}

func TestUniqueKeys(t *testing.T) {
	seen := make(map[string]bool)
	check := func(kind, key string) {
		t.Helper()
		if key == "" {
			t.Errorf("empty %s key", kind)
		}
		if seen[kind+":"+key] {
			t.Errorf("duplicate %s %q", kind, key)
		}
		seen[kind+":"+key] = true
	}
	for _, tr := range Transactions {
		check("transaction", tr.Value)
	}
	for _, c := range Categories {
		check("category", c.Value)
	}
	for _, r := range Rooms {
		check("room", r.Code)
	}
	for _, a := range Amenities {
		check("amenity", a.Key)
	}
}

func TestTransactionKinds(t *testing.T) {
	for _, tr := range Transactions {
		if tr.SubKind && tr.Kind != KindRental {
			t.Errorf("%s: only rentals have sub-kinds", tr.Value)
		}
		if len(tr.Terms) == 0 {
			t.Errorf("%s has no terms", tr.Value)
		}
	}
	if Transactions[0].Kind != KindSale || Transactions[1].Kind != KindRental {
		t.Error("the two base transactions must come first")
	}
	if len(SaleTerms()) == 0 || len(RentalTerms()) == 0 {
		t.Error("base terms are empty")
	}
}
