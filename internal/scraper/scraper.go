// Package scraper collects product listings from marketplace search
// result pages and enriches them from product detail pages.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	colly "github.com/gocolly/colly/v2"

	"github.com/rodmarques/counterscan/internal/domain"
	"github.com/rodmarques/counterscan/internal/extract"
	"github.com/rodmarques/counterscan/internal/logger"
)

// Collector defaults.
const (
	defaultDelay          = 2 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultMaxPages       = 3
	defaultParallelism    = 1
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// listingTileSelector matches one product tile on a search result page.
const listingTileSelector = "div[data-asin]"

// Config controls the collector.
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	Delay          time.Duration `mapstructure:"delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxPages       int           `mapstructure:"max_pages"`
	Parallelism    int           `mapstructure:"parallelism"`
}

// DefaultConfig returns a config pointed at the Brazilian marketplace
// with conservative pacing.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://www.amazon.com.br",
		UserAgent:      defaultUserAgent,
		Delay:          defaultDelay,
		RequestTimeout: defaultRequestTimeout,
		MaxPages:       defaultMaxPages,
		Parallelism:    defaultParallelism,
	}
}

// Scraper turns search result and detail pages into product records.
// Field resolution is delegated to the extract package so selector
// changes never touch collection logic.
type Scraper struct {
	cfg     Config
	listing *extract.Locator
	detail  *extract.Locator
	seller  *extract.SellerResolver
	logger  logger.Interface
}

// New builds a scraper with the default extraction rules.
func New(cfg Config, log logger.Interface) *Scraper {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = defaultParallelism
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Scraper{
		cfg:     cfg,
		listing: extract.NewLocator(extract.DefaultListingRules(), log),
		detail:  extract.NewLocator(extract.DefaultDetailRules(), log),
		seller:  extract.NewSellerResolver(extract.DefaultSellerRules(), log),
		logger:  log,
	}
}

func (s *Scraper) newCollector(ctx context.Context) (*colly.Collector, error) {
	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(s.cfg.UserAgent),
		colly.AllowedDomains(allowedDomains(s.cfg.BaseURL)...),
	)
	c.SetRequestTimeout(s.cfg.RequestTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       s.cfg.Delay,
		RandomDelay: s.cfg.Delay / 2,
		Parallelism: s.cfg.Parallelism,
	}); err != nil {
		return nil, fmt.Errorf("scraper: setting rate limit: %w", err)
	}

	c.OnError(func(r *colly.Response, err error) {
		s.logger.Warn("request failed",
			"url", r.Request.URL.String(), "status", r.StatusCode, "error", err)
	})
	return c, nil
}

// Search collects listing records for a query across result pages.
// Tiles without a resolvable title are dropped.
func (s *Scraper) Search(ctx context.Context, query string) ([]*domain.ProductRecord, error) {
	c, err := s.newCollector(ctx)
	if err != nil {
		return nil, err
	}

	var records []*domain.ProductRecord
	c.OnHTML(listingTileSelector, func(e *colly.HTMLElement) {
		if rec := s.recordFromTile(e.DOM); rec != nil {
			records = append(records, rec)
		}
	})

	for page := 1; page <= s.cfg.MaxPages; page++ {
		if ctx.Err() != nil {
			break
		}
		pageURL := fmt.Sprintf("%s/s?k=%s&page=%d",
			strings.TrimRight(s.cfg.BaseURL, "/"), url.QueryEscape(query), page)
		if err := c.Visit(pageURL); err != nil {
			s.logger.Warn("skipping result page", "page", page, "error", err)
		}
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return records, err
	}
	s.logger.Info("search finished", "query", query, "products", len(records))
	return records, nil
}

// recordFromTile resolves one search result tile into a record.
func (s *Scraper) recordFromTile(tile *goquery.Selection) *domain.ProductRecord {
	asin := strings.TrimSpace(tile.AttrOr("data-asin", ""))
	if asin == "" {
		return nil
	}

	title, ok := s.listing.Locate(tile, extract.FieldTitle)
	if !ok {
		return nil
	}

	rec := &domain.ProductRecord{
		ASIN:      asin,
		Title:     title,
		Price:     s.listing.LocatePrice(tile, extract.FieldPrice),
		Rating:    s.listing.LocateRating(tile, extract.FieldRating),
		Seller:    s.seller.Resolve(tile),
		ScrapedAt: time.Now(),
	}
	rec.ReviewCount = s.listing.LocateCount(tile, extract.FieldReviewCount)

	if href, ok := s.listing.Locate(tile, extract.FieldURL); ok {
		rec.URL = s.absoluteURL(href)
	}
	return rec
}

// Enrich visits each record's detail page and fills in the detailed
// price, seller, description and specifications. Records without a URL
// are left untouched; a failed fetch keeps the listing data.
func (s *Scraper) Enrich(ctx context.Context, records []*domain.ProductRecord) error {
	c, err := s.newCollector(ctx)
	if err != nil {
		return err
	}

	byURL := make(map[string]*domain.ProductRecord, len(records))
	c.OnHTML("html", func(e *colly.HTMLElement) {
		rec, ok := byURL[e.Request.URL.String()]
		if !ok {
			return
		}
		s.enrichFromPage(rec, e.DOM)
	})

	for _, rec := range records {
		if rec.URL == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		byURL[rec.URL] = rec
		if err := c.Visit(rec.URL); err != nil {
			s.logger.Warn("skipping detail page", "asin", rec.ASIN, "error", err)
		}
	}
	c.Wait()
	return ctx.Err()
}

func (s *Scraper) enrichFromPage(rec *domain.ProductRecord, page *goquery.Selection) {
	rec.PriceDetailed = s.detail.LocatePrice(page, extract.FieldPriceDetailed)
	if desc, ok := s.detail.Locate(page, extract.FieldDescription); ok {
		rec.Description = desc
	}
	if seller := s.seller.Resolve(page); seller != "" {
		rec.SellerDetailed = seller
	}
	if specs := ExtractSpecifications(page); len(specs) > 0 {
		rec.Specifications = specs
	}
	s.logger.Debug("detail page enriched",
		"asin", rec.ASIN, "seller", rec.SellerDetailed, "has_price", rec.PriceDetailed != nil)
}

// ExtractSpecifications reads the key-value specification tables off a
// detail page.
func ExtractSpecifications(page *goquery.Selection) map[string]string {
	specs := make(map[string]string)
	for _, selector := range extract.DefaultSpecificationSelectors {
		page.Find(selector).Each(func(_ int, row *goquery.Selection) {
			key := strings.TrimSpace(row.Find("th").First().Text())
			value := strings.TrimSpace(row.Find("td").First().Text())
			if key != "" && value != "" {
				specs[key] = value
			}
		})
	}
	if len(specs) == 0 {
		return nil
	}
	return specs
}

func (s *Scraper) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/" + strings.TrimLeft(href, "/")
}

func allowedDomains(baseURL string) []string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil
	}
	host := u.Host
	return []string{host, strings.TrimPrefix(host, "www.")}
}
