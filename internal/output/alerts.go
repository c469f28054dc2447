package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rodmarques/counterscan/internal/domain"
)

// WriteAlerts writes a plain-text dump of the high risk findings to
// path. Nothing is written and no file is created when there are no
// high risk products.
func WriteAlerts(path string, products []domain.AnalyzedProduct) (int, error) {
	var high []*domain.AnalyzedProduct
	for i := range products {
		if products[i].RiskLevel == domain.RiskHigh {
			high = append(high, &products[i])
		}
	}
	if len(high) == 0 {
		return 0, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ALERTAS DE RISCO ALTO - %s\n", time.Now().Format("02/01/2006 15:04"))
	fmt.Fprintf(&b, "%d produto(s) com risco ALTO\n\n", len(high))
	for _, p := range high {
		fmt.Fprintf(&b, "ASIN: %s\n", p.ASIN)
		fmt.Fprintf(&b, "Título: %s\n", p.Title)
		if ep := p.EffectivePrice(); ep != nil {
			fmt.Fprintf(&b, "Preço: R$ %s\n", ep.StringFixed(2))
		}
		if seller := p.EffectiveSeller(); seller != "" {
			fmt.Fprintf(&b, "Vendedor: %s\n", seller)
		}
		fmt.Fprintf(&b, "Categoria: %s (confiança %.0f%%)\n", p.Category, p.Confidence*100)
		fmt.Fprintf(&b, "Pontuação de risco: %d\n", p.RiskScore)
		if p.PriceAnomaly != "" {
			fmt.Fprintf(&b, "Alerta de preço: %s\n", p.PriceAnomaly)
		}
		fmt.Fprintf(&b, "URL: %s\n\n", p.URL)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return 0, fmt.Errorf("output: writing alerts file: %w", err)
	}
	return len(high), nil
}
