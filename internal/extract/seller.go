package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rodmarques/counterscan/internal/domain"
	"github.com/rodmarques/counterscan/internal/logger"
)

// SellerPattern is a regular expression searched against the node's visible
// text. Group selects which capture holds the seller name: "Enviado por X /
// Vendido por NAME" captures the fulfiller first, so only the second capture
// is the seller.
type SellerPattern struct {
	Pattern *regexp.Regexp
	Group   int
}

// SellerRules configures the seller resolution chain. Like locator rule
// lists, this is data: swapping marketplaces means swapping rules, not code.
type SellerRules struct {
	// FirstPartySelectors short-circuit to the first-party sentinel when a
	// matched link points at or names the platform itself.
	FirstPartySelectors []string
	// Selectors are the generic locator rules; every candidate goes through
	// the seller-name validator.
	Selectors []string
	// Patterns searched against the node family's full visible text.
	Patterns []SellerPattern
	// FirstPartyMarkers searched in free text after the patterns.
	FirstPartyMarkers []string
	// FallbackLinkSelector is the broad last-resort scan for links whose
	// target suggests a marketplace storefront.
	FallbackLinkSelector string
}

// DefaultSellerRules returns the Amazon.com.br seller rules.
func DefaultSellerRules() SellerRules {
	return SellerRules{
		FirstPartySelectors: []string{
			"#merchant-info a[href*='amazon.com.br']",
			"#merchant-info a[href*='amazon.com']",
			"#sellerProfileTriggerId[href*='amazon']",
			".tabular-buybox-text a[href*='amazon']",
			"#shipsFromSoldByMessage_feature_div a[href*='amazon']",
			"[data-cel-widget='desktop-merchant-info'] a[href*='amazon']",
		},
		Selectors: []string{
			"#sellerProfileTriggerId",
			"#merchantInfoFeature_feature_div div.offer-display-feature-text",
			"#fulfillerInfoFeature_feature_div div.offer-display-feature-text",
			"#merchant-info a",
			"#shipsFromSoldByMessage_feature_div a",
			".tabular-buybox-text a",
			"[data-cel-widget='desktop-merchant-info'] a",
			"a[href*='seller']",
			"a[href*='merchant']",
			"a[href*='storefront']",
			".a-size-small .a-link-normal[href*='seller']",
			".a-size-small .a-link-normal[href*='merchant']",
		},
		Patterns: []SellerPattern{
			{regexp.MustCompile(`(?im)Enviado por\s+([^/]+?)\s*/\s*Vendido por\s+([^\n\r,]+?)(?:\s*$|\s*\(|\s*\|)`), 2},
			{regexp.MustCompile(`(?im)Vendido por\s+([^\n\r,]+?)(?:\s*$|\s*\(|\s*\|)`), 1},
			{regexp.MustCompile(`(?im)Shipped by\s+([^/]+?)\s*/\s*Sold by\s+([^\n\r,]+?)(?:\s*$|\s*\(|\s*\|)`), 2},
			{regexp.MustCompile(`(?im)Sold by\s+([^\n\r,]+?)(?:\s*$|\s*\(|\s*\|)`), 1},
			{regexp.MustCompile(`(?im)Vendedor:\s*([^\n\r,]+?)(?:\s*$|\s*\(|\s*\|)`), 1},
			{regexp.MustCompile(`(?im)Seller:\s*([^\n\r,]+?)(?:\s*$|\s*\(|\s*\|)`), 1},
		},
		FirstPartyMarkers: []string{
			"Vendido por Amazon.com.br",
			"Vendido por Amazon",
			"Sold by Amazon.com.br",
			"Sold by Amazon",
			"Amazon.com.br",
		},
		FallbackLinkSelector: "a[href*='seller'], a[href*='merchant'], a[href*='storefront']",
	}
}

// sellerNameCleaner strips punctuation a loose regex capture drags along.
var sellerNameCleaner = regexp.MustCompile(`[^\p{L}\p{N}\s\-.]`)

// SellerResolver runs the ordered seller resolution chain against a
// document node. Stateless after construction; safe for concurrent use.
type SellerResolver struct {
	rules  SellerRules
	logger logger.Interface
}

// NewSellerResolver creates a resolver over the given rules.
func NewSellerResolver(rules SellerRules, log logger.Interface) *SellerResolver {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &SellerResolver{rules: rules, logger: log.WithComponent("seller")}
}

// Resolve walks the chain and returns the first accepted candidate:
// the first-party sentinel, a validated seller name, or "" when no stage
// produced anything.
func (r *SellerResolver) Resolve(node *goquery.Selection) string {
	if node == nil {
		return ""
	}

	if r.matchFirstPartyLinks(node) {
		return domain.FirstPartySeller
	}

	if name := r.matchSelectors(node); name != "" {
		return name
	}

	text := node.Text()

	if name := r.matchPatterns(text); name != "" {
		return name
	}

	for _, marker := range r.rules.FirstPartyMarkers {
		if strings.Contains(text, marker) {
			return domain.FirstPartySeller
		}
	}

	return r.matchFallbackLinks(node)
}

func (r *SellerResolver) matchFirstPartyLinks(node *goquery.Selection) bool {
	for _, selector := range r.rules.FirstPartySelectors {
		found := false
		node.Find(selector).EachWithBreak(func(_ int, link *goquery.Selection) bool {
			href, _ := link.Attr("href")
			text := strings.TrimSpace(link.Text())
			if strings.Contains(strings.ToLower(href), "amazon") ||
				strings.Contains(strings.ToLower(text), "amazon") {
				found = true
				return false
			}
			return true
		})
		if found {
			r.logger.Debug("first-party seller matched", "selector", selector)
			return true
		}
	}
	return false
}

func (r *SellerResolver) matchSelectors(node *goquery.Selection) string {
	for _, selector := range r.rules.Selectors {
		name := ""
		node.Find(selector).EachWithBreak(func(_ int, candidate *goquery.Selection) bool {
			href, _ := candidate.Attr("href")
			if strings.Contains(strings.ToLower(href), "amazon") {
				return true
			}
			text := strings.TrimSpace(candidate.Text())
			if IsValidSellerName(text) {
				name = text
				return false
			}
			return true
		})
		if name != "" {
			r.logger.Debug("seller matched by selector", "selector", selector, "seller", name)
			return name
		}
	}
	return ""
}

func (r *SellerResolver) matchPatterns(text string) string {
	for _, pattern := range r.rules.Patterns {
		match := pattern.Pattern.FindStringSubmatch(text)
		if match == nil || pattern.Group >= len(match) {
			continue
		}
		name := strings.TrimSpace(sellerNameCleaner.ReplaceAllString(match[pattern.Group], ""))
		if IsValidSellerName(name) {
			r.logger.Debug("seller matched by pattern", "seller", name)
			return name
		}
	}
	return ""
}

func (r *SellerResolver) matchFallbackLinks(node *goquery.Selection) string {
	name := ""
	node.Find(r.rules.FallbackLinkSelector).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if strings.Contains(strings.ToLower(href), "amazon") {
			return true
		}
		text := strings.TrimSpace(link.Text())
		if IsValidSellerName(text) {
			name = text
			return false
		}
		return true
	})
	if name != "" {
		r.logger.Debug("seller matched by fallback link scan", "seller", name)
	}
	return name
}
