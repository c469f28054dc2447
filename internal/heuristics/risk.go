package heuristics

import (
	"strings"

	"github.com/rodmarques/counterscan/internal/domain"
)

// Risk score points and thresholds.
const (
	riskPointsSuspect       = 3
	riskPointsCompatible    = 1
	riskPointsLowConfidence = 1
	riskPointsLowPrice      = 2
	riskPointsHighPrice     = 1
	riskPointsMarketplace   = 1

	lowConfidenceBound = 0.7

	riskHighThreshold   = 4
	riskMediumThreshold = 2
)

const marketplaceSellerMark = "marketplace"

// RiskScore accumulates risk points for a classified record. The
// category contributes most of the weight; low classifier confidence,
// out-of-band prices and marketplace sellers add the rest.
func RiskScore(rec *domain.ProductRecord, category domain.Category, confidence float64) int {
	points := 0

	switch category {
	case domain.CategorySuspect:
		points += riskPointsSuspect
	case domain.CategoryCompatible:
		points += riskPointsCompatible
	}

	if confidence < lowConfidenceBound {
		points += riskPointsLowConfidence
	}

	if price := rec.EffectivePrice(); price != nil {
		if price.LessThan(lowPriceBound) {
			points += riskPointsLowPrice
		} else if price.GreaterThan(highPriceBound) {
			points += riskPointsHighPrice
		}
	}

	if strings.Contains(strings.ToLower(rec.EffectiveSeller()), marketplaceSellerMark) {
		points += riskPointsMarketplace
	}

	return points
}

// RiskLevelFor maps a risk score onto a level. The high band is checked
// first so boundary scores land on the more severe level.
func RiskLevelFor(score int) domain.RiskLevel {
	switch {
	case score >= riskHighThreshold:
		return domain.RiskHigh
	case score >= riskMediumThreshold:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
