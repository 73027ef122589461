package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name     string
		shopName string
		address  string
		want     string
	}{
		{
			name:     "Simple name and address",
			shopName: "Cafe Luna",
			address:  "123 Main St",
			want:     "cafe_luna__123_main_st",
		},
		{
			name:     "Diacritics stripped",
			shopName: "Café Luna",
			address:  "123 Main St",
			want:     "cafe_luna__123_main_st",
		},
		{
			name:     "Ampersand becomes and",
			shopName: "Boba & Co.",
			address:  "49 2nd Ave",
			want:     "boba_and_co__49_2nd_ave",
		},
		{
			name:     "Punctuation runs collapse",
			shopName: "T4 -- Tea,   For You!",
			address:  "  88/1 King's Rd.  ",
			want:     "t4_tea_for_you__88_1_king_s_rd",
		},
		{
			name:     "Empty parts keep the separator",
			shopName: "",
			address:  "",
			want:     "__",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalKey(tt.shopName, tt.address))
		})
	}
}

func TestCanonicalKey_CaseAndDiacriticInsensitive(t *testing.T) {
	a := CanonicalKey("Café Luna", "123 Main St")
	b := CanonicalKey("cafe luna", "123 MAIN ST")
	assert.Equal(t, a, b)
}

func TestCanonicalKey_Deterministic(t *testing.T) {
	first := CanonicalKey("Três Corações", "Av. Paulista 1000")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CanonicalKey("Três Corações", "Av. Paulista 1000"))
	}
}
