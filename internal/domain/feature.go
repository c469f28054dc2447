package domain

// Numeric feature indices. The order is part of the persisted model
// format and must not change between train and predict.
const (
	FeaturePrice = iota
	FeatureTitleLength
	FeatureDescriptionLength
	FeatureHasPrice
	FeaturePriceRatio
	FeatureWordCount
	FeatureSuspiciousWordCount
	FeatureOriginalWordCount
	FeatureSellerTrustScore

	NumericFeatureCount
)

// FeatureVector is the classifier input for one record: the free-text
// blob fed to the vectorizer plus the fixed-width numeric features.
type FeatureVector struct {
	Text    string
	Numeric [NumericFeatureCount]float64
}
