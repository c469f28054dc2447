package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric normalization for pt-BR marketplace text. All parsers fail soft:
// malformed text yields nil, never an error or panic, so a bad rule hit
// degrades to a locator miss and the chain keeps trying.

var (
	ratingPattern = regexp.MustCompile(`(\d+[,.]\d+)`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

const maxRating = 5.0

// ParsePrice normalizes a pt-BR price string ("R$ 1.234,56") to a decimal.
// Returns nil for malformed or negative values.
func ParsePrice(text string) *decimal.Decimal {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "R$", "")
	cleaned = strings.ReplaceAll(cleaned, " ", " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	// Thousands separator first, then the decimal comma.
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := decimal.NewFromString(cleaned)
	if err != nil || value.IsNegative() {
		return nil
	}
	return &value
}

// ParseRating pulls a rating out of text like "4,5 de 5 estrelas".
// Returns nil when no rating is present or the value falls outside [0,5].
func ParseRating(text string) *float64 {
	match := ratingPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", "."), 64)
	if err != nil || value < 0 || value > maxRating {
		return nil
	}
	return &value
}

// ParseCount normalizes a review count like "1.234" or "12,345" to an int.
// Returns nil for anything that is not a plain grouped integer.
func ParseCount(text string) *int {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.Trim(cleaned, "()")
	if !digitsPattern.MatchString(cleaned) {
		return nil
	}

	value, err := strconv.Atoi(cleaned)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}
