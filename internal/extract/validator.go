package extract

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Seller-name shape limits. Anything shorter is a fragment, anything longer
// is almost certainly a sentence scraped off the page, not a storefront name.
const (
	minSellerNameLength = 2
	maxSellerNameLength = 100
)

// sellerExclusionTerms is the fixed exclusion vocabulary: UI chrome and
// navigation wording that shows up near the buybox but is never a seller
// name. Matched case-insensitively as substrings.
var sellerExclusionTerms = []string{
	"avaliação", "review", "rating", "estrela", "star",
	"avaliações", "reviews", "disponível", "available",
	"preço", "price", "frete", "shipping", "entrega", "delivery",
	"mais vendidos", "best sellers", "escolha da amazon",
	"amazon choice", "patrocinado", "sponsored",
	"pesquisas relacionadas", "related searches",
	"anterior", "próximo", "next", "previous",
	"departamentos", "departments", "categoria", "category",
	"ver mais", "see more", "ver ofertas", "see offers",
	"produtos similares", "similar products",
	"outras opções", "other options",
	// Connector phrases that survive a sloppy regex capture.
	"vendido por", "enviado por", "sold by", "shipped by",
}

// IsValidSellerName reports whether text is plausibly a seller name.
// Pure predicate: deterministic, no side effects, always returns.
func IsValidSellerName(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	length := utf8.RuneCountInString(text)
	if length < minSellerNameLength || length > maxSellerNameLength {
		return false
	}

	lower := strings.ToLower(text)
	for _, term := range sellerExclusionTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}

	// A bare number is a price fragment or a count, not a name. The comma
	// swap covers pt-BR decimals ("4,5").
	if _, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64); err == nil {
		return false
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
