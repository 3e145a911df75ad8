package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pão de Mel", "pao-de-mel"},
		{"Bolo de Cenoura c/ Chocolate", "bolo-de-cenoura-c-chocolate"},
		{"  Croissant  ", "croissant"},
		{"Éclair!!", "eclair"},
		{"12 Grãos", "12-graos"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"19.90", 1990},
		{"19,90", 1990},
		{"20", 2000},
		{"0.5", 50},
		{".99", 99},
		{"999.00", 99900},
	}
	for _, tc := range cases {
		got, err := ParsePriceCents(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParsePriceCentsRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "abc", "1.999", "-5", "10.5.5"} {
		_, err := ParsePriceCents(in)
		assert.Error(t, err, "input %q", in)
	}
}
