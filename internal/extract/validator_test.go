package extract_test

import (
	"strings"
	"testing"

	"github.com/rodmarques/counterscan/internal/extract"
)

func TestIsValidSellerName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"storefront name", "HP Brasil", true},
		{"accented storefront", "Eletrônicos São Paulo", true},
		{"name with digits", "Loja 123 Importados", true},
		{"first party", "Amazon.com.br", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"single rune", "A", false},
		{"too long", strings.Repeat("a", 101), false},
		{"rating fragment", "5 estrelas", false},
		{"review chrome", "1.234 reviews", false},
		{"shipping chrome", "Frete GRÁTIS", false},
		{"sponsored chrome", "Patrocinado", false},
		{"connector survives capture", "Vendido por", false},
		{"english connector", "Sold by HP", false},
		{"plain integer", "42", false},
		{"decimal comma", "4,5", false},
		{"decimal dot", "89.90", false},
		{"punctuation only", "--..", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.IsValidSellerName(tt.text); got != tt.want {
				t.Errorf("IsValidSellerName(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsValidSellerName_CaseInsensitiveExclusions(t *testing.T) {
	for _, text := range []string{"AVALIAÇÃO geral", "Best Sellers em Informática"} {
		if extract.IsValidSellerName(text) {
			t.Errorf("IsValidSellerName(%q) = true, want false", text)
		}
	}
}
