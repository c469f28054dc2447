package heuristics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rodmarques/counterscan/internal/domain"
)

func price(v string) *decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return &d
}

const longDescription = "Cartucho de tinta para impressoras da linha DeskJet, " +
	"rendimento aproximado de 120 páginas, cor preta."

func TestScore_SuspiciousKeywords(t *testing.T) {
	labeler := NewLabeler(DefaultVocabularies())

	rec := &domain.ProductRecord{
		Title:       "Cartucho genérico recondicionado para HP 664",
		Description: longDescription,
		Price:       price("89.90"),
	}
	// genérico +2, recondicionado +2.
	if got := labeler.Score(rec); got != 4 {
		t.Errorf("Score() = %v, want 4", got)
	}
	if got := labeler.Label(rec); got != domain.CategorySuspect {
		t.Errorf("Label() = %v, want %v", got, domain.CategorySuspect)
	}
}

func TestScore_DistinctKeywordsCountOnce(t *testing.T) {
	labeler := NewLabeler(DefaultVocabularies())

	once := &domain.ProductRecord{Title: "Cartucho genérico", Description: longDescription, Price: price("89.90")}
	twice := &domain.ProductRecord{
		Title:       "Cartucho genérico",
		Description: longDescription + " Produto genérico.",
		Price:       price("89.90"),
	}
	if a, b := labeler.Score(once), labeler.Score(twice); a != b {
		t.Errorf("repeated keyword changed score: %v vs %v", a, b)
	}
}

func TestScore_OriginalListing(t *testing.T) {
	labeler := NewLabeler(DefaultVocabularies())

	rec := &domain.ProductRecord{
		Title:       "Cartucho HP 664 Original Lacrado",
		Description: longDescription + " Com garantia e nota fiscal.",
		Seller:      "Amazon.com.br",
		Price:       price("89.90"),
	}
	// original -1, lacrado -1, garantia -1, nota fiscal -1, trusted seller -1.
	if got := labeler.Score(rec); got != -5 {
		t.Errorf("Score() = %v, want -5", got)
	}
	if got := labeler.Label(rec); got != domain.CategoryOriginal {
		t.Errorf("Label() = %v, want %v", got, domain.CategoryOriginal)
	}
}

func TestScore_TrustedSellerTakesPriority(t *testing.T) {
	labeler := NewLabeler(DefaultVocabularies())

	// Seller matches both vocabularies; the trusted branch must win so
	// the suspicious bonus never applies.
	trusted := &domain.ProductRecord{
		Title:       "Cartucho 664",
		Description: longDescription,
		Seller:      "HP Marketplace Brasil",
		Price:       price("89.90"),
	}
	suspicious := &domain.ProductRecord{
		Title:       "Cartucho 664",
		Description: longDescription,
		Seller:      "Loja Marketplace Terceiros",
		Price:       price("89.90"),
	}
	if got := labeler.Score(trusted); got != -1 {
		t.Errorf("Score(trusted) = %v, want -1", got)
	}
	if got := labeler.Score(suspicious); got != 2 {
		t.Errorf("Score(suspicious) = %v, want 2", got)
	}
}

func TestScore_PriceAndDescriptionSignals(t *testing.T) {
	labeler := NewLabeler(DefaultVocabularies())

	tests := []struct {
		name string
		rec  *domain.ProductRecord
		want float64
	}{
		{
			"cheap with short description",
			&domain.ProductRecord{Title: "Cartucho 664", Price: price("25.00")},
			2, // low price +1, short description +1
		},
		{
			"expensive",
			&domain.ProductRecord{Title: "Cartucho 664", Description: longDescription, Price: price("250.00")},
			0.5,
		},
		{
			"no price",
			&domain.ProductRecord{Title: "Cartucho 664", Description: longDescription},
			0,
		},
		{
			"boundary prices score nothing",
			&domain.ProductRecord{Title: "Cartucho 664", Description: longDescription, Price: price("30.00")},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := labeler.Score(tt.rec); got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	labeler := NewLabeler(DefaultVocabularies())
	rec := &domain.ProductRecord{
		Title:       "Cartucho compatível usado",
		Description: "curta",
		Seller:      "Loja Genérica LTDA",
		Price:       price("19.90"),
	}
	first := labeler.Score(rec)
	for i := 0; i < 3; i++ {
		if got := labeler.Score(rec); got != first {
			t.Fatalf("Score() changed between calls: %v vs %v", first, got)
		}
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Category
	}{
		{2, domain.CategorySuspect},
		{5.5, domain.CategorySuspect},
		{1.5, domain.CategoryCompatible},
		{0, domain.CategoryCompatible},
		{-0.5, domain.CategoryCompatible},
		{-1, domain.CategoryOriginal},
		{-4, domain.CategoryOriginal},
	}

	for _, tt := range tests {
		if got := Categorize(tt.score); got != tt.want {
			t.Errorf("Categorize(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
