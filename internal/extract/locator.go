// Package extract resolves structured product fields out of rendered
// marketplace markup using ordered fallback rule lists.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/rodmarques/counterscan/internal/logger"
)

// Field names a logical product field the locator can resolve.
type Field string

// Logical fields with locator rule lists.
const (
	FieldTitle         Field = "title"
	FieldURL           Field = "url"
	FieldPrice         Field = "price"
	FieldPriceDetailed Field = "price_detailed"
	FieldRating        Field = "rating"
	FieldReviewCount   Field = "review_count"
	FieldDescription   Field = "description"
)

// Rule is one structural query: a CSS selector, optionally reading an
// attribute instead of the element text.
type Rule struct {
	Selector string
	// Attr, when non-empty, reads this attribute off the first match
	// instead of its text content.
	Attr string
}

// FieldRules is the ordered rule list for one field. Rule lists are
// configuration data: the resolution algorithm never branches on the field
// name, only on this description.
type FieldRules struct {
	// Rules are tried in order; the first one producing well-formed text
	// wins and later rules are not consulted.
	Rules []Rule
	// MinLength rejects trimmed text shorter than this many runes, so a
	// rule that matches an empty or truncated node falls through to the
	// next rule instead of winning with junk.
	MinLength int
}

// RuleSet maps each logical field to its ordered rule list.
type RuleSet map[Field]FieldRules

// Locator resolves logical fields against document nodes. Read-only over
// both the rules and the node; safe for concurrent use.
type Locator struct {
	rules  RuleSet
	logger logger.Interface
}

// NewLocator creates a locator over the given rule set.
func NewLocator(rules RuleSet, log logger.Interface) *Locator {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Locator{rules: rules, logger: log.WithComponent("locator")}
}

// Locate resolves a field to text. The bool is false when every rule in the
// field's list failed, or the field has no rules; Locate never fails any
// other way.
func (l *Locator) Locate(node *goquery.Selection, field Field) (string, bool) {
	fieldRules, ok := l.rules[field]
	if !ok || node == nil {
		return "", false
	}

	for _, rule := range fieldRules.Rules {
		text, found := applyRule(node, rule)
		if !found {
			continue
		}
		if len([]rune(text)) < fieldRules.MinLength {
			l.logger.Debug("candidate below minimum length",
				"field", string(field), "selector", rule.Selector, "text", text)
			continue
		}
		return text, true
	}

	return "", false
}

// LocatePrice resolves a price field. A rule whose text does not normalize
// to a valid price counts as a miss and the chain falls through.
func (l *Locator) LocatePrice(node *goquery.Selection, field Field) *decimal.Decimal {
	return locateNumeric(l, node, field, ParsePrice)
}

// LocateRating resolves a rating field to a value in [0,5], or nil.
func (l *Locator) LocateRating(node *goquery.Selection, field Field) *float64 {
	return locateNumeric(l, node, field, ParseRating)
}

// LocateCount resolves a review-count field, or nil.
func (l *Locator) LocateCount(node *goquery.Selection, field Field) *int {
	return locateNumeric(l, node, field, ParseCount)
}

// locateNumeric walks a field's rule list applying a per-field
// normalization step to each candidate. First rule whose text both matches
// and normalizes wins.
func locateNumeric[T any](l *Locator, node *goquery.Selection, field Field, parse func(string) *T) *T {
	fieldRules, ok := l.rules[field]
	if !ok || node == nil {
		return nil
	}

	for _, rule := range fieldRules.Rules {
		text, found := applyRule(node, rule)
		if !found {
			continue
		}
		if value := parse(text); value != nil {
			return value
		}
		l.logger.Debug("candidate failed numeric normalization",
			"field", string(field), "selector", rule.Selector, "text", text)
	}

	return nil
}

// applyRule evaluates one rule against the node. Invalid selectors and
// absent elements read as misses; goquery matches nothing for selectors it
// cannot compile, so this never raises.
func applyRule(node *goquery.Selection, rule Rule) (string, bool) {
	if rule.Selector == "" {
		return "", false
	}

	match := node.Find(rule.Selector).First()
	if match.Length() == 0 {
		return "", false
	}

	var text string
	if rule.Attr != "" {
		value, exists := match.Attr(rule.Attr)
		if !exists {
			return "", false
		}
		text = value
	} else {
		text = match.Text()
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}
