package location

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		message string
		known   bool
		want    *string
	}{
		{"category with city", "restaurants in Oran", false, strPtr("restaurants in Oran, Algeria")},
		{"city wins over user location", "restaurants in Oran", true, strPtr("restaurants in Oran, Algeria")},
		{"bare map request", "show me the map", false, strPtr("Algeria map")},
		{"bare map request with location", "show me the map", true, strPtr("places near me")},
		{"no location intent", "Kifach ndir couscous?", false, nil},
		{"no location intent with location", "Kifach ndir couscous?", true, nil},
		{"fillers stripped", "Find me a pharmacy please", true, strPtr("pharmacy near me")},
		{"proximity phrase kept", "hostpitals near me", true, strPtr("hospitals near me")},
		{"fuzzy category and darija preposition", "resturant f Alger?", false, strPtr("restaurant in Algiers, Algeria")},
		{"arabic category", "أين أقرب صيدلية؟", true, strPtr("أقرب صيدلية near me")},
		{"map of a city", "carte de Constantine", false, strPtr("Constantine, Algeria")},
		{"short category", "atm", false, strPtr("atm")},
		{"article after filler", "Where is the hospital?", false, strPtr("hospital")},
		{"arabic city", "خريطة وهران", false, strPtr("Oran, Algeria")},
		{"french proximity", "pharmacie près de moi", true, strPtr("pharmacie près de moi")},
		{"too short falls back", "خريطة ب", false, strPtr("Algeria")},
		{"city-like substring ignored", "I love orange juice", false, nil},
		{"keyword-like substring ignored", "the atmosphere is nice", true, nil},
		{"arabic city with attached preposition", "مطعم بوهران", false, strPtr("مطعم in Oran, Algeria")},
		{"arabic city with attached fa", "صيدلية فوهران", true, strPtr("صيدلية in Oran, Algeria")},
		{"related word is not a typo", "I want to become a pharmacist", false, nil},
		{"related word is not a typo with location", "I want to become a pharmacist", true, nil},
		{"on the map wording dropped", "show me restaurants on the map in Oran", false, strPtr("restaurants in Oran, Algeria")},
		{"sur la carte wording dropped", "pharmacie sur la carte", true, strPtr("pharmacie near me")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.message, tt.known)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestResolveTotality(t *testing.T) {
	messages := []string{
		"", " ", "?", "map", "maps!", "خريطة", "near me", "قريب", "a", "the map of",
		"show me", "please find", "hospital", "Oran", "in Oran", "map Oran",
		"pharmacie", "Sbitar f Batna", "cinema près de moi", "gas station?",
		"salam khoya labas", "وين كاين مطعم مليح",
	}
	for _, msg := range messages {
		for _, known := range []bool{false, true} {
			got := Resolve(msg, known)
			if got != nil {
				assert.GreaterOrEqual(t, utf8.RuneCountInString(*got), 3, "message %q known=%v", msg, known)
				assert.Equal(t, collapse(*got), *got)
			}
		}
	}
}

func TestResolverFallback(t *testing.T) {
	r := Default()
	assert.Equal(t, "hospitals near me", r.fallback("hospital", true, true))
	assert.Equal(t, "hospitals Algeria", r.fallback("hospital", true, false))
	assert.Equal(t, "pharmacies Algeria", r.fallback("صيدلية", true, false))
	assert.Equal(t, "places near me", r.fallback("cafe", true, true))
	assert.Equal(t, "Algeria", r.fallback("cafe", true, false))
	assert.Equal(t, "Algeria", r.fallback("map", false, false))
}

func TestRepairCategory(t *testing.T) {
	r := Default()

	tests := []struct {
		in    string
		want  string
		fixed bool
	}{
		{"hostpitals", "hospitals", true},
		{"farmacies", "pharmacies", true},
		{"the restorant", "the restaurant", true},
		{"couscous", "couscous", false},
		{"policy", "policy", false},
		{"capital", "capital", false},
		{"pharmacist", "pharmacist", false},
		{"a pharmacist", "a pharmacist", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := r.repairCategory(tt.in)
			assert.Equal(t, tt.fixed, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearMiss(t *testing.T) {
	tests := []struct {
		token, keyword string
		want           bool
	}{
		{"resturant", "restaurant", true},
		{"restorant", "restaurant", true},
		{"farmacies", "pharmacies", true},
		{"pharmacist", "pharmacies", false},
		{"pharmacist", "pharmacie", false},
		{"hostpital", "hospital", true},
		{"hostpitals", "hospital", false},
	}
	for _, tt := range tests {
		t.Run(tt.token+"/"+tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, nearMiss(tt.token, tt.keyword))
		})
	}
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/maps/search/restaurants%20in%20Oran%2C%20Algeria",
		SearchURL("restaurants in Oran, Algeria", nil))

	assert.Equal(t,
		"https://www.google.com/maps/search/pharmacy%20near%20me/@35.6971,-0.6308,15z",
		SearchURL("pharmacy near me", &Coordinates{Latitude: 35.6971, Longitude: -0.6308}))
}
