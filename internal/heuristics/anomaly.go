package heuristics

import "github.com/shopspring/decimal"

// Price anomaly verdicts. An empty string means the price is inside the
// expected band or no reference band exists.
const (
	PriceAnomalyLow  = "PRECO_ABAIXO_DO_SUGERIDO"
	PriceAnomalyHigh = "PRECO_ACIMA_DO_SUGERIDO"
)

// Band tolerances around the suggested price range.
var (
	lowBandFactor  = decimal.NewFromFloat(0.80)
	highBandFactor = decimal.NewFromFloat(1.30)
)

// PriceBand is the acceptable price interval derived from a product
// family's suggested prices.
type PriceBand struct {
	Low  decimal.Decimal
	High decimal.Decimal
}

// BandFor derives the acceptable interval from the minimum and maximum
// suggested price of a family: 80% of the minimum up to 130% of the
// maximum.
func BandFor(minSuggested, maxSuggested decimal.Decimal) PriceBand {
	return PriceBand{
		Low:  minSuggested.Mul(lowBandFactor),
		High: maxSuggested.Mul(highBandFactor),
	}
}

// Check reports whether price falls outside the band. The result is
// advisory only and never feeds back into label or risk scoring.
func (b PriceBand) Check(price *decimal.Decimal) string {
	if price == nil {
		return ""
	}
	switch {
	case price.LessThan(b.Low):
		return PriceAnomalyLow
	case price.GreaterThan(b.High):
		return PriceAnomalyHigh
	default:
		return ""
	}
}
