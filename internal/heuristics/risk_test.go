package heuristics

import (
	"testing"

	"github.com/rodmarques/counterscan/internal/domain"
)

func TestRiskScore_WorstCase(t *testing.T) {
	rec := &domain.ProductRecord{
		Title:  "Cartucho genérico",
		Seller: "Marketplace XYZ",
		Price:  price("25.00"),
	}
	// suspect +3, low confidence +1, cheap +2, marketplace seller +1.
	if got := RiskScore(rec, domain.CategorySuspect, 0.55); got != 7 {
		t.Errorf("RiskScore() = %v, want 7", got)
	}
	if got := RiskLevelFor(7); got != domain.RiskHigh {
		t.Errorf("RiskLevelFor(7) = %v, want %v", got, domain.RiskHigh)
	}
}

func TestRiskScore_CleanListing(t *testing.T) {
	rec := &domain.ProductRecord{
		Title:  "Cartucho HP 664 Original",
		Seller: "Amazon.com.br",
		Price:  price("89.90"),
	}
	if got := RiskScore(rec, domain.CategoryOriginal, 0.95); got != 0 {
		t.Errorf("RiskScore() = %v, want 0", got)
	}
	if got := RiskLevelFor(0); got != domain.RiskLow {
		t.Errorf("RiskLevelFor(0) = %v, want %v", got, domain.RiskLow)
	}
}

func TestRiskScore_Signals(t *testing.T) {
	tests := []struct {
		name       string
		rec        *domain.ProductRecord
		category   domain.Category
		confidence float64
		want       int
	}{
		{
			"compatible adds one",
			&domain.ProductRecord{Price: price("89.90")},
			domain.CategoryCompatible, 0.9, 1,
		},
		{
			"expensive adds one",
			&domain.ProductRecord{Price: price("250.00")},
			domain.CategoryOriginal, 0.9, 1,
		},
		{
			"missing price adds nothing",
			&domain.ProductRecord{},
			domain.CategoryOriginal, 0.9, 0,
		},
		{
			"low confidence adds one",
			&domain.ProductRecord{Price: price("89.90")},
			domain.CategoryOriginal, 0.69, 1,
		},
		{
			"confidence boundary is exclusive",
			&domain.ProductRecord{Price: price("89.90")},
			domain.CategoryOriginal, 0.7, 0,
		},
		{
			"marketplace seller case-insensitive",
			&domain.ProductRecord{Seller: "MARKETPLACE BR", Price: price("89.90")},
			domain.CategoryOriginal, 0.9, 1,
		},
		{
			"detailed seller considered",
			&domain.ProductRecord{Seller: "HP", SellerDetailed: "Marketplace BR", Price: price("89.90")},
			domain.CategoryOriginal, 0.9, 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RiskScore(tt.rec, tt.category, tt.confidence); got != tt.want {
				t.Errorf("RiskScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiskLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  domain.RiskLevel
	}{
		{0, domain.RiskLow},
		{1, domain.RiskLow},
		{2, domain.RiskMedium},
		{3, domain.RiskMedium},
		{4, domain.RiskHigh},
		{9, domain.RiskHigh},
	}

	for _, tt := range tests {
		if got := RiskLevelFor(tt.score); got != tt.want {
			t.Errorf("RiskLevelFor(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
