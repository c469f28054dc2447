package extract

// Default rule lists for Amazon.com.br listing tiles and detail pages.
// These are configuration: the selectors mirror the markup variants the
// source actually serves, ordered most-specific first, and can be replaced
// wholesale without touching the resolver.

const minTitleLength = 3

// DefaultListingRules returns the rule set resolved against one [data-asin]
// tile on a search results page.
func DefaultListingRules() RuleSet {
	return RuleSet{
		FieldTitle: {
			MinLength: minTitleLength,
			Rules: []Rule{
				{Selector: "h2 a span"},
				{Selector: "h2 span"},
				{Selector: "h2 a"},
				{Selector: ".s-size-mini .s-link-style .s-color-base"},
				{Selector: "h2 .a-link-normal .a-text-normal"},
			},
		},
		FieldURL: {
			Rules: []Rule{
				{Selector: "h2 a", Attr: "href"},
				{Selector: "a[href*='/dp/']", Attr: "href"},
				{Selector: "a[href*='/product/']", Attr: "href"},
				{Selector: ".s-link-style a", Attr: "href"},
				{Selector: "a[data-csa-c-content-id]", Attr: "href"},
			},
		},
		FieldPrice: {
			Rules: []Rule{
				{Selector: ".a-price .a-offscreen"},
				{Selector: ".a-price-whole"},
				{Selector: ".a-price-range .a-offscreen"},
			},
		},
		FieldRating: {
			Rules: []Rule{
				{Selector: ".a-icon-alt"},
				{Selector: "[aria-label*='estrelas']", Attr: "aria-label"},
			},
		},
		FieldReviewCount: {
			Rules: []Rule{
				{Selector: "a[href*='reviews'] span"},
				{Selector: "span[aria-label*='avalia'] span"},
			},
		},
	}
}

// DefaultDetailRules returns the rule set resolved against a product detail
// page document.
func DefaultDetailRules() RuleSet {
	return RuleSet{
		FieldPriceDetailed: {
			Rules: []Rule{
				{Selector: "#corePrice_feature_div .a-offscreen"},
				{Selector: "#corePrice_feature_div .a-price-whole"},
				{Selector: ".a-price .a-offscreen"},
				{Selector: ".a-price-whole"},
				{Selector: ".a-price-range .a-offscreen"},
				{Selector: "#apex_desktop .a-offscreen"},
				{Selector: "#apex_desktop .a-price-whole"},
			},
		},
		FieldDescription: {
			Rules: []Rule{
				{Selector: "#feature-bullets ul"},
				{Selector: ".a-unordered-list .a-list-item"},
				{Selector: "[data-feature-name='featureList']"},
			},
		},
	}
}

// DefaultSpecificationSelectors are tried in order against the detail page
// to find the specifications table; rows are read as key/value cell pairs.
var DefaultSpecificationSelectors = []string{
	"#productDetails_techSpec_section_1 tr",
	".a-keyvalue tr",
	"[data-feature-name='productDetails'] tr",
}
