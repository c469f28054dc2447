// Package catalog loads the suggested-price reference table and
// resolves product families from listing titles.
package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rodmarques/counterscan/internal/extract"
	"github.com/rodmarques/counterscan/internal/logger"
)

// familyPrices holds the observed suggested prices for one product
// family.
type familyPrices struct {
	min  decimal.Decimal
	max  decimal.Decimal
	sum  decimal.Decimal
	n    int64
	name string
}

// Catalog is the suggested-price reference table keyed by product
// family. Family names are matched case-insensitively as substrings of
// listing titles, longest name first.
type Catalog struct {
	families map[string]*familyPrices
	// ordered holds lowercase family names, longest first, so "664xl"
	// wins over "664" when both occur in a title.
	ordered []string
	logger  logger.Interface
}

// Load reads a CSV reference table with a header row and rows of
// family,suggested_price. Prices use Brazilian formatting.
func Load(path string, log logger.Interface) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening reference table: %w", err)
	}
	defer f.Close()
	return Parse(f, log)
}

// Parse reads the reference table from r. Rows with an unparseable
// price are skipped with a warning rather than failing the load.
func Parse(r io.Reader, log logger.Interface) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("catalog: reading reference table: %w", err)
	}

	cat := &Catalog{
		families: make(map[string]*familyPrices),
		logger:   log,
	}

	for i, row := range records {
		if i == 0 || len(row) < 2 {
			continue
		}
		family := strings.TrimSpace(row[0])
		if family == "" {
			continue
		}
		price := extract.ParsePrice(row[1])
		if price == nil {
			log.Warn("skipping reference row with unparseable price",
				"row", i+1, "family", family, "raw", row[1])
			continue
		}
		cat.add(family, *price)
	}

	cat.ordered = make([]string, 0, len(cat.families))
	for name := range cat.families {
		cat.ordered = append(cat.ordered, name)
	}
	sort.Slice(cat.ordered, func(i, j int) bool {
		if len(cat.ordered[i]) != len(cat.ordered[j]) {
			return len(cat.ordered[i]) > len(cat.ordered[j])
		}
		return cat.ordered[i] < cat.ordered[j]
	})

	log.Info("reference table loaded", "families", len(cat.families))
	return cat, nil
}

func (c *Catalog) add(family string, price decimal.Decimal) {
	key := strings.ToLower(family)
	fp, ok := c.families[key]
	if !ok {
		c.families[key] = &familyPrices{
			min: price, max: price, sum: price, n: 1, name: family,
		}
		return
	}
	if price.LessThan(fp.min) {
		fp.min = price
	}
	if price.GreaterThan(fp.max) {
		fp.max = price
	}
	fp.sum = fp.sum.Add(price)
	fp.n++
}

// FamilyFor returns the family whose name occurs in the title,
// preferring longer names. The second result is false when no family
// matches.
func (c *Catalog) FamilyFor(title string) (string, bool) {
	lower := strings.ToLower(title)
	for _, name := range c.ordered {
		if strings.Contains(lower, name) {
			return c.families[name].name, true
		}
	}
	return "", false
}

// SuggestedPrice returns the mean suggested price for a family.
func (c *Catalog) SuggestedPrice(family string) (decimal.Decimal, bool) {
	fp, ok := c.families[strings.ToLower(family)]
	if !ok {
		return decimal.Decimal{}, false
	}
	return fp.sum.Div(decimal.NewFromInt(fp.n)), true
}

// PriceRange returns the minimum and maximum suggested price for a
// family.
func (c *Catalog) PriceRange(family string) (min, max decimal.Decimal, ok bool) {
	fp, found := c.families[strings.ToLower(family)]
	if !found {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	return fp.min, fp.max, true
}

// Families returns the known family names.
func (c *Catalog) Families() []string {
	out := make([]string, 0, len(c.families))
	for _, name := range c.ordered {
		out = append(out, c.families[name].name)
	}
	return out
}
