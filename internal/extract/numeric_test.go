package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodmarques/counterscan/internal/extract"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "R$ 89,90", "89.9"},
		{"thousands separator", "R$ 1.234,56", "1234.56"},
		{"no currency mark", "45,00", "45"},
		{"whole number", "R$ 120", "120"},
		{"surrounding whitespace", "  R$ 19,99  ", "19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.ParsePrice(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParsePrice_Malformed(t *testing.T) {
	for _, text := range []string{"", "   ", "R$", "indisponível", "R$ -10,00"} {
		assert.Nil(t, extract.ParsePrice(text), "ParsePrice(%q)", text)
	}
}

func TestParseRating(t *testing.T) {
	got := extract.ParseRating("4,5 de 5 estrelas")
	require.NotNil(t, got)
	assert.InDelta(t, 4.5, *got, 1e-9)

	got = extract.ParseRating("3.8 out of 5 stars")
	require.NotNil(t, got)
	assert.InDelta(t, 3.8, *got, 1e-9)
}

func TestParseRating_Malformed(t *testing.T) {
	for _, text := range []string{"", "sem avaliações", "9,9 de 5 estrelas"} {
		assert.Nil(t, extract.ParseRating(text), "ParseRating(%q)", text)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"1.234", 1234},
		{"(567)", 567},
		{"12,345", 12345},
		{"89", 89},
	}

	for _, tt := range tests {
		got := extract.ParseCount(tt.text)
		require.NotNil(t, got, "ParseCount(%q)", tt.text)
		assert.Equal(t, tt.want, *got)
	}
}

func TestParseCount_Malformed(t *testing.T) {
	for _, text := range []string{"", "muitas", "4,5 estrelas"} {
		assert.Nil(t, extract.ParseCount(text), "ParseCount(%q)", text)
	}
}
