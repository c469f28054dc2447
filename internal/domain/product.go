// Package domain holds the core types shared across the scanning,
// scoring and reporting layers.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FirstPartySeller is the sentinel seller name for listings sold
// directly by the marketplace operator.
const FirstPartySeller = "Amazon.com.br"

// ProductRecord is one scraped product listing. Pointer fields are nil
// when the page did not expose the value; extraction never invents
// data.
type ProductRecord struct {
	ASIN           string            `json:"asin" db:"asin"`
	Title          string            `json:"title" db:"title"`
	URL            string            `json:"url" db:"url"`
	Price          *decimal.Decimal  `json:"price,omitempty" db:"price"`
	PriceDetailed  *decimal.Decimal  `json:"price_detailed,omitempty" db:"price_detailed"`
	Rating         *float64          `json:"rating,omitempty" db:"rating"`
	ReviewCount    *int              `json:"review_count,omitempty" db:"review_count"`
	Seller         string            `json:"seller" db:"seller"`
	SellerDetailed string            `json:"seller_detailed" db:"seller_detailed"`
	Description    string            `json:"description" db:"description"`
	Specifications map[string]string `json:"specifications,omitempty" db:"-"`
	ScrapedAt      time.Time         `json:"scraped_at" db:"scraped_at"`
}

// EffectiveSeller returns the detail-page seller when present, falling
// back to the listing-page seller.
func (p *ProductRecord) EffectiveSeller() string {
	if p.SellerDetailed != "" {
		return p.SellerDetailed
	}
	return p.Seller
}

// EffectivePrice returns the detail-page price when present, falling
// back to the listing-page price.
func (p *ProductRecord) EffectivePrice() *decimal.Decimal {
	if p.PriceDetailed != nil {
		return p.PriceDetailed
	}
	return p.Price
}

// HasSeller reports whether any seller was extracted for the record.
func (p *ProductRecord) HasSeller() bool {
	return p.EffectiveSeller() != ""
}

// Category is the classification label for a listing.
type Category string

// Classification labels.
const (
	CategoryOriginal   Category = "ORIGINAL"
	CategorySuspect    Category = "SUSPEITO"
	CategoryCompatible Category = "COMPATIVEL"
)

// Valid reports whether c is one of the known labels.
func (c Category) Valid() bool {
	switch c {
	case CategoryOriginal, CategorySuspect, CategoryCompatible:
		return true
	}
	return false
}

// RiskLevel is the severity band derived from the risk score.
type RiskLevel string

// Risk severity bands.
const (
	RiskLow    RiskLevel = "BAIXO"
	RiskMedium RiskLevel = "MÉDIO"
	RiskHigh   RiskLevel = "ALTO"
)

// Verdict is the full assessment of a single listing.
type Verdict struct {
	Category   Category  `json:"category" db:"category"`
	Confidence float64   `json:"confidence" db:"confidence"`
	RiskScore  int       `json:"risk_score" db:"risk_score"`
	RiskLevel  RiskLevel `json:"risk_level" db:"risk_level"`

	// PriceAnomaly is advisory only and never feeds back into the
	// category or risk score. Empty when the price is in band.
	PriceAnomaly string `json:"price_anomaly,omitempty" db:"price_anomaly"`
}

// AnalyzedProduct pairs a record with its verdict.
type AnalyzedProduct struct {
	ProductRecord
	Verdict
	AnalyzedAt time.Time `json:"analyzed_at" db:"analyzed_at"`
}

// LabeledRecord pairs a record with its heuristic training label.
type LabeledRecord struct {
	Record *ProductRecord
	Label  Category
}
