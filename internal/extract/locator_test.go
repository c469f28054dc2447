package extract_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodmarques/counterscan/internal/extract"
)

func doc(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d.Selection
}

func TestLocate_FirstRuleWins(t *testing.T) {
	html := `<div>
		<h2><a><span>Cartucho HP 664 Original</span></a></h2>
		<h2><span>Segundo título</span></h2>
	</div>`
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	title, ok := locator.Locate(doc(t, html), extract.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "Cartucho HP 664 Original", title)
}

func TestLocate_ShortTextFallsThrough(t *testing.T) {
	// The h2 a span candidate is below the minimum title length, so the
	// chain must keep going and win on the bare h2 span.
	html := `<div>
		<h2><span>Cartucho compatível 664XL</span></h2>
		<h2><a><span>ab</span></a></h2>
	</div>`
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	title, ok := locator.Locate(doc(t, html), extract.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "Cartucho compatível 664XL", title)
}

func TestLocate_MissingField(t *testing.T) {
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	title, ok := locator.Locate(doc(t, `<div><p>nada aqui</p></div>`), extract.FieldTitle)
	assert.False(t, ok)
	assert.Empty(t, title)

	_, ok = locator.Locate(doc(t, `<div></div>`), extract.Field("unknown"))
	assert.False(t, ok)
}

func TestLocate_AttrRule(t *testing.T) {
	html := `<div><h2><a href="/dp/B0TEST123">Cartucho HP 664</a></h2></div>`
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	href, ok := locator.Locate(doc(t, html), extract.FieldURL)
	require.True(t, ok)
	assert.Equal(t, "/dp/B0TEST123", href)
}

func TestLocatePrice(t *testing.T) {
	html := `<div><span class="a-price"><span class="a-offscreen">R$ 1.234,56</span></span></div>`
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	price := locator.LocatePrice(doc(t, html), extract.FieldPrice)
	require.NotNil(t, price)
	assert.Equal(t, "1234.56", price.String())
}

func TestLocatePrice_BadCandidateFallsThrough(t *testing.T) {
	// The offscreen node holds junk; the chain must fall through to the
	// whole-price node instead of giving up.
	html := `<div>
		<span class="a-price"><span class="a-offscreen">indisponível</span></span>
		<span class="a-price-whole">89,90</span>
	</div>`
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	price := locator.LocatePrice(doc(t, html), extract.FieldPrice)
	require.NotNil(t, price)
	assert.Equal(t, "89.9", price.String())
}

func TestLocateRating(t *testing.T) {
	html := `<div><span class="a-icon-alt">4,7 de 5 estrelas</span></div>`
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	rating := locator.LocateRating(doc(t, html), extract.FieldRating)
	require.NotNil(t, rating)
	assert.InDelta(t, 4.7, *rating, 1e-9)
}

func TestLocateCount(t *testing.T) {
	html := `<div><a href="/reviews/all"><span>1.532</span></a></div>`
	locator := extract.NewLocator(extract.DefaultListingRules(), nil)

	count := locator.LocateCount(doc(t, html), extract.FieldReviewCount)
	require.NotNil(t, count)
	assert.Equal(t, 1532, *count)
}
