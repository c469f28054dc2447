// Package output renders analysis runs as CSV exports, HTML reports and
// plain-text alert dumps.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rodmarques/counterscan/internal/domain"
)

var csvHeader = []string{
	"asin", "title", "url", "price", "seller", "description", "category",
	"confidence", "risk_score", "risk_level", "price_anomaly", "analyzed_at",
}

// WriteCSV writes the analyzed products to path. Missing prices render
// as empty cells.
func WriteCSV(path string, products []domain.AnalyzedProduct) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("output: writing csv header: %w", err)
	}

	for i := range products {
		p := &products[i]
		price := ""
		if ep := p.EffectivePrice(); ep != nil {
			price = ep.StringFixed(2)
		}
		row := []string{
			p.ASIN,
			p.Title,
			p.URL,
			price,
			p.EffectiveSeller(),
			p.Description,
			string(p.Category),
			strconv.FormatFloat(p.Confidence, 'f', 4, 64),
			strconv.Itoa(p.RiskScore),
			string(p.RiskLevel),
			p.PriceAnomaly,
			p.AnalyzedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("output: writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("output: flushing csv: %w", err)
	}
	return nil
}
