package heuristics

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/rodmarques/counterscan/internal/domain"
)

// Label score weights. Positive pushes toward SUSPEITO, negative toward
// ORIGINAL.
const (
	weightSuspiciousKeyword = 2.0
	weightOriginalityTerm   = -1.0
	weightTrustedSeller     = -1.0
	weightSuspiciousSeller  = 2.0
	weightLowPrice          = 1.0
	weightHighPrice         = 0.5
	weightShortDescription  = 1.0
)

// Label score thresholds and price/description cut-offs.
const (
	suspectThreshold  = 2.0
	originalThreshold = -1.0

	shortDescriptionChars = 50
)

var (
	lowPriceBound  = decimal.NewFromInt(30)
	highPriceBound = decimal.NewFromInt(200)
)

// Labeler synthesizes a category label for a product from keyword,
// seller, price and description signals. It exists so the classifier can
// be trained without hand-labeled data.
type Labeler struct {
	vocabs *Vocabularies
}

// NewLabeler builds a labeler over the given vocabularies.
func NewLabeler(vocabs *Vocabularies) *Labeler {
	return &Labeler{vocabs: vocabs}
}

// Score computes the raw heuristic score for a record. Each distinct
// suspicious keyword in the title or description adds 2, each distinct
// originality term subtracts 1. A trusted seller subtracts 1 and takes
// priority over the suspicious seller check, which adds 2. Prices below
// 30 add 1, above 200 add 0.5, and a description under 50 characters
// adds 1.
func (l *Labeler) Score(rec *domain.ProductRecord) float64 {
	score := 0.0

	// Keyword terms count once whether they appear in the title, the
	// description, or both. Terms never contain a newline, so joining
	// on one cannot create a match that spans both fields.
	text := rec.Title + "\n" + rec.Description
	score += float64(l.vocabs.Suspicious.Count(text)) * weightSuspiciousKeyword
	score += float64(l.vocabs.Originality.Count(text)) * weightOriginalityTerm

	if seller := rec.EffectiveSeller(); seller != "" {
		if l.vocabs.TrustedSellers.Contains(seller) {
			score += weightTrustedSeller
		} else if l.vocabs.SuspiciousSellers.Contains(seller) {
			score += weightSuspiciousSeller
		}
	}

	if price := rec.EffectivePrice(); price != nil {
		if price.LessThan(lowPriceBound) {
			score += weightLowPrice
		} else if price.GreaterThan(highPriceBound) {
			score += weightHighPrice
		}
	}

	if desc := strings.TrimSpace(rec.Description); utf8.RuneCountInString(desc) < shortDescriptionChars {
		score += weightShortDescription
	}

	return score
}

// Categorize maps a raw score onto a category label.
func Categorize(score float64) domain.Category {
	switch {
	case score >= suspectThreshold:
		return domain.CategorySuspect
	case score <= originalThreshold:
		return domain.CategoryOriginal
	default:
		return domain.CategoryCompatible
	}
}

// Label scores a record and returns its category.
func (l *Labeler) Label(rec *domain.ProductRecord) domain.Category {
	return Categorize(l.Score(rec))
}
