package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodmarques/counterscan/internal/domain"
)

// ReadProductsCSV loads product records back from a CSV export. Columns
// are resolved by header name, so exports from older runs with extra
// columns still load. Rows without an asin or title are skipped.
func ReadProductsCSV(path string) ([]*domain.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("output: opening csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("output: reading csv file: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var records []*domain.ProductRecord
	for _, row := range rows[1:] {
		asin := field(row, "asin")
		title := field(row, "title")
		if asin == "" || title == "" {
			continue
		}
		rec := &domain.ProductRecord{
			ASIN:        asin,
			Title:       title,
			URL:         field(row, "url"),
			Seller:      field(row, "seller"),
			Description: field(row, "description"),
			ScrapedAt:   time.Now(),
		}
		// Exports use plain dot-decimal prices.
		if raw := field(row, "price"); raw != "" {
			if price, perr := decimal.NewFromString(raw); perr == nil {
				rec.Price = &price
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
