// Package vocab holds the static, bilingual facet vocabularies.
// Terms are written in display form; callers normalize before comparing.
package vocab

// Kind is the transaction family of a listing.
type Kind string

const (
	KindUnknown Kind = ""
	KindSale    Kind = "sale"
	KindRental  Kind = "rental"
)

// Transaction is a deal-type facet value.
// Sub-kinds are rentals narrowed by a duration term found in the listing.
type Transaction struct {
	Value   string
	Label   string
	Kind    Kind
	SubKind bool
	Terms   []string
}

// Category is a property category.
type Category struct {
	Value string
	Label string
	Terms []string
}

// Room is a room-size code.
type Room struct {
	Code  string
	Label string
	Terms []string
}

// Amenity is an amenity flag.
type Amenity struct {
	Key   string
	Label string
	Terms []string
}

var Transactions = []Transaction{
	{Value: "Vente", Label: "Vente", Kind: KindSale,
		Terms: []string{"vente", "a vendre", "achat", "acheter", "sale", "for sale", "buy", "بيع", "للبيع"}},
	{Value: "Location", Label: "Location", Kind: KindRental,
		Terms: []string{"location", "a louer", "louer", "loyer", "rent", "for rent", "rental", "كراء", "للكراء", "ايجار"}},
	{Value: "Location mensuelle", Label: "Location mensuelle", Kind: KindRental, SubKind: true,
		Terms: []string{"par mois", "/ mois", "/mois", "mensuel", "mensuelle", "monthly", "per month", "شهري"}},
	{Value: "Location 6 mois", Label: "Location 6 mois", Kind: KindRental, SubKind: true,
		Terms: []string{"6 mois", "six mois", "semestre", "6 months", "ستة أشهر"}},
	{Value: "Location 12 mois", Label: "Location 12 mois", Kind: KindRental, SubKind: true,
		Terms: []string{"12 mois", "1 an", "un an", "annuel", "annuelle", "yearly", "12 months", "سنة"}},
	{Value: "Location par nuit", Label: "Location par nuit", Kind: KindRental, SubKind: true,
		Terms: []string{"par nuit", "nuit", "nuitee", "la nuit", "nightly", "per night", "ليلة"}},
	{Value: "Court séjour", Label: "Court séjour", Kind: KindRental, SubKind: true,
		Terms: []string{"court sejour", "courte duree", "vacances", "saisonnier", "short stay", "holiday", "عطلة"}},
}

var Categories = []Category{
	{Value: "Appartement", Label: "Appartement", Terms: []string{"appartement", "appart", "apartment", "flat", "شقة"}},
	{Value: "Villa", Label: "Villa", Terms: []string{"villa", "فيلا"}},
	{Value: "Maison", Label: "Maison", Terms: []string{"maison", "house", "haouch", "دار", "منزل"}},
	{Value: "Duplex", Label: "Duplex", Terms: []string{"duplex", "triplex", "دوبلكس"}},
	{Value: "Niveau de villa", Label: "Niveau de villa", Terms: []string{"niveau de villa", "etage de villa", "rez de chaussee", "طابق"}},
	{Value: "Terrain", Label: "Terrain", Terms: []string{"terrain", "lot", "land", "plot", "أرض", "قطعة أرض"}},
	{Value: "Local commercial", Label: "Local commercial", Terms: []string{"local", "commerce", "magasin", "boutique", "shop", "محل"}},
	{Value: "Bureau", Label: "Bureau", Terms: []string{"bureau", "office", "plateau", "مكتب"}},
	{Value: "Immeuble", Label: "Immeuble", Terms: []string{"immeuble", "batiment", "building", "عمارة"}},
	{Value: "Hangar", Label: "Hangar", Terms: []string{"hangar", "depot", "entrepot", "warehouse", "مستودع"}},
}

var Rooms = []Room{
	{Code: "Studio", Label: "Studio", Terms: []string{"studio", "t1 bis", "ستوديو"}},
	{Code: "F1", Label: "F1", Terms: []string{"f1", "t1", "1 piece"}},
	{Code: "F2", Label: "F2", Terms: []string{"f2", "t2", "2 pieces"}},
	{Code: "F3", Label: "F3", Terms: []string{"f3", "t3", "3 pieces"}},
	{Code: "F4", Label: "F4", Terms: []string{"f4", "t4", "4 pieces"}},
	{Code: "F5", Label: "F5", Terms: []string{"f5", "t5", "5 pieces"}},
	{Code: "F6+", Label: "F6+", Terms: []string{"f6", "t6", "f6+", "t6+", "6 pieces"}},
}

var Amenities = []Amenity{
	{Key: "vue_mer", Label: "Vue sur mer", Terms: []string{"vue mer", "vue sur mer", "vue sur la mer", "sea view", "إطلالة على البحر"}},
	{Key: "vue_ville", Label: "Vue sur ville", Terms: []string{"vue ville", "vue sur ville", "vue sur la ville", "city view", "إطلالة على المدينة"}},
	{Key: "fibre", Label: "Fibre optique", Terms: []string{"fibre", "fibre optique", "fiber", "internet", "ألياف"}},
	{Key: "climatisation", Label: "Climatisation", Terms: []string{"climatisation", "climatise", "clim", "air conditionne", "air conditioning", "مكيف"}},
	{Key: "chauffage_central", Label: "Chauffage central", Terms: []string{"chauffage central", "chauffage", "central heating", "تدفئة مركزية"}},
	{Key: "residence_fermee", Label: "Résidence fermée", Terms: []string{"residence fermee", "residence securisee", "gated residence", "gated", "إقامة مغلقة"}},
	{Key: "securite_24h", Label: "Sécurité 24h/24", Terms: []string{"securite 24h", "securite 24/24", "gardiennage", "24h security", "حراسة"}},
	{Key: "ascenseur", Label: "Ascenseur", Terms: []string{"ascenseur", "elevator", "lift", "مصعد"}},
	{Key: "balcons", Label: "Balcons", Terms: []string{"balcon", "balcons", "terrasse", "balcony", "شرفة"}},
	{Key: "interphone", Label: "Interphone", Terms: []string{"interphone", "visiophone", "intercom", "انترفون"}},
	{Key: "cuisine_equipee", Label: "Cuisine équipée", Terms: []string{"cuisine equipee", "cuisine americaine", "equipped kitchen", "مطبخ مجهز"}},
	{Key: "sdb_moderne", Label: "Salle de bain moderne", Terms: []string{"salle de bain moderne", "sdb moderne", "modern bathroom", "حمام عصري"}},
}

// TransactionByValue looks up a deal-type facet value.
func TransactionByValue(v string) (Transaction, bool) {
	for _, t := range Transactions {
		if t.Value == v {
			return t, true
		}
	}
	return Transaction{}, false
}

// AmenityByKey looks up an amenity by its key.
func AmenityByKey(key string) (Amenity, bool) {
	for _, a := range Amenities {
		if a.Key == key {
			return a, true
		}
	}
	return Amenity{}, false
}

// RoomByCode looks up a room by its code.
func RoomByCode(code string) (Room, bool) {
	for _, r := range Rooms {
		if r.Code == code {
			return r, true
		}
	}
	return Room{}, false
}

// SaleTerms and RentalTerms return the terms of the two base transactions.
func SaleTerms() []string   { return Transactions[0].Terms }
func RentalTerms() []string { return Transactions[1].Terms }
