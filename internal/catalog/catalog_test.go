package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodmarques/counterscan/internal/logger"
)

const referenceCSV = `familia,preco_sugerido
664,"R$ 39,90"
664,"R$ 49,90"
664XL,"R$ 79,90"
122,defeituoso
60,"R$ 54,90"
`

func parseCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Parse(strings.NewReader(referenceCSV), logger.NewNoOp())
	require.NoError(t, err)
	return cat
}

func TestParse(t *testing.T) {
	cat := parseCatalog(t)

	// The malformed 122 row is skipped, not fatal.
	assert.Len(t, cat.Families(), 3)
}

func TestFamilyFor(t *testing.T) {
	cat := parseCatalog(t)

	tests := []struct {
		title  string
		want   string
		wantOK bool
	}{
		{"Cartucho HP 664 Tricolor", "664", true},
		{"Cartucho HP 664XL Preto Alto Rendimento", "664XL", true},
		{"cartucho hp 664xl preto", "664XL", true},
		{"Cartucho HP 60 Preto", "60", true},
		{"Toner Samsung D111", "", false},
	}

	for _, tt := range tests {
		got, ok := cat.FamilyFor(tt.title)
		assert.Equal(t, tt.wantOK, ok, "title %q", tt.title)
		assert.Equal(t, tt.want, got, "title %q", tt.title)
	}
}

func TestSuggestedPrice(t *testing.T) {
	cat := parseCatalog(t)

	mean, ok := cat.SuggestedPrice("664")
	require.True(t, ok)
	assert.Equal(t, "44.9", mean.String())

	_, ok = cat.SuggestedPrice("desconhecida")
	assert.False(t, ok)
}

func TestPriceRange(t *testing.T) {
	cat := parseCatalog(t)

	min, max, ok := cat.PriceRange("664")
	require.True(t, ok)
	assert.Equal(t, "39.9", min.String())
	assert.Equal(t, "49.9", max.String())

	min, max, ok = cat.PriceRange("664XL")
	require.True(t, ok)
	assert.Equal(t, "79.9", min.String())
	assert.Equal(t, "79.9", max.String())
}
