// Package features turns product records into the fixed-width vectors
// the classifier consumes.
package features

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/rodmarques/counterscan/internal/domain"
	"github.com/rodmarques/counterscan/internal/heuristics"
)

// Seller trust scores. Sellers matching the trusted vocabulary score
// 1.0, sellers matching the suspicious vocabulary 0.0, everything else
// (including a missing seller) 0.5.
const (
	trustTrusted    = 1.0
	trustSuspicious = 0.0
	trustUnknown    = 0.5
)

// defaultPriceRatio is used when no suggested price is known for the
// record's family.
const defaultPriceRatio = 1.0

// Builder derives feature vectors from records using the same keyword
// vocabularies the labeler scores with, so the numeric features and the
// synthesized labels never disagree on what counts as a match.
type Builder struct {
	vocabs *heuristics.Vocabularies
}

// NewBuilder builds a feature builder over the given vocabularies.
func NewBuilder(vocabs *heuristics.Vocabularies) *Builder {
	return &Builder{vocabs: vocabs}
}

// Build derives the feature vector for a record. suggestedPrice may be
// nil when the record's family has no reference price, in which case
// the price ratio falls back to 1.0.
func (b *Builder) Build(rec *domain.ProductRecord, suggestedPrice *decimal.Decimal) domain.FeatureVector {
	var vec domain.FeatureVector

	text := strings.TrimSpace(rec.Title + " " + rec.Description + " " + rec.EffectiveSeller())
	vec.Text = text

	price := rec.EffectivePrice()
	if price != nil {
		priceF, _ := price.Float64()
		vec.Numeric[domain.FeaturePrice] = priceF
		vec.Numeric[domain.FeatureHasPrice] = 1
	}

	vec.Numeric[domain.FeatureTitleLength] = float64(utf8.RuneCountInString(rec.Title))
	vec.Numeric[domain.FeatureDescriptionLength] = float64(utf8.RuneCountInString(rec.Description))

	ratio := defaultPriceRatio
	if price != nil && suggestedPrice != nil && !suggestedPrice.IsZero() {
		ratio, _ = price.Div(*suggestedPrice).Float64()
	}
	vec.Numeric[domain.FeaturePriceRatio] = ratio

	vec.Numeric[domain.FeatureWordCount] = float64(len(strings.Fields(text)))
	vec.Numeric[domain.FeatureSuspiciousWordCount] = float64(b.vocabs.Suspicious.Count(text))
	vec.Numeric[domain.FeatureOriginalWordCount] = float64(b.vocabs.Originality.Count(text))
	vec.Numeric[domain.FeatureSellerTrustScore] = b.sellerTrust(rec.EffectiveSeller())

	return vec
}

func (b *Builder) sellerTrust(seller string) float64 {
	if seller == "" {
		return trustUnknown
	}
	if b.vocabs.TrustedSellers.Contains(seller) {
		return trustTrusted
	}
	if b.vocabs.SuspiciousSellers.Contains(seller) {
		return trustSuspicious
	}
	return trustUnknown
}
