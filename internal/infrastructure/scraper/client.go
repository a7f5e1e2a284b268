package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/truthlens/backend/internal/domain"
)

const maxPageTextLength = 5000

// Config holds scraper configuration.
type Config struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
}

// Scraper fetches product pages and normalizes them into ProductData.
// Outbound requests are rate limited to stay polite toward retail sites.
type Scraper struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	debug      bool
}

// New creates a scraper with the given configuration.
func New(config Config) *Scraper {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}

	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 5),
		userAgent:  userAgent,
	}
}

// SetDebug enables request logging.
func (s *Scraper) SetDebug(debug bool) {
	s.debug = debug
}

// titleSelectors is the ladder of product-title selectors, most specific
// first, tried until one yields substantial text.
var titleSelectors = []string{
	`h1[id*="title"]`,
	`h1[id*="productTitle"]`,
	`h1.product-title`,
	`h1[class*="product"]`,
	`[data-testid="product-title"]`,
	`h1[class*="title"]`,
	`.product-name h1`,
	`#product-title`,
	`h1`,
}

var descriptionSelectors = []string{
	`[id*="description"]`,
	`[class*="description"]`,
	`[data-testid*="description"]`,
	`div.product-details`,
	`[id*="feature"]`,
	`[class*="feature"]`,
	`.product-description`,
	`#product-description`,
}

var priceSelectors = []string{
	`[class*="price"]`,
	`[id*="price"]`,
	`[data-testid*="price"]`,
	`.price-current`,
	`#priceblock_ourprice`,
	`#priceblock_dealprice`,
	`.a-price .a-offscreen`,
	`span.price`,
}

// FromURL fetches and parses a product page into normalized ProductData.
func (s *Scraper) FromURL(ctx context.Context, url string) (*domain.ProductData, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	if s.debug {
		log.Printf("[SCRAPE] GET %s", url)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request timed out", domain.ErrPageUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPageUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status 403", domain.ErrPageBlocked)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", domain.ErrPageUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse page", domain.ErrPageUnavailable)
	}

	return s.parseDocument(doc), nil
}

func (s *Scraper) parseDocument(doc *goquery.Document) *domain.ProductData {
	title := extractTitle(doc)
	if title == "" {
		title = extractMetaTitle(doc)
	}
	if title == "" {
		title = extractJSONLDName(doc)
	}
	if title == "" {
		title = "Unknown Product"
	}

	description := extractDescription(doc)
	if description == "" {
		description = extractMetaDescription(doc)
	}
	if description == "" {
		description = "No description available"
	}

	price := extractPriceFromDocument(doc)
	pageText := cleanPageText(doc)

	fullText := title + ". " + description + ". " + pageText
	if len(fullText) > maxPageTextLength {
		fullText = fullText[:maxPageTextLength]
	}

	if s.debug {
		log.Printf("[SCRAPE] parsed %q (price found: %v)", title, price != nil)
	}

	return &domain.ProductData{
		Title:       title,
		Description: description,
		Price:       price,
		Currency:    detectCurrency(pageText, price),
		Specs:       extractSpecsFromDocument(doc),
		RawText:     fullText,
	}
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(text) > 10 {
			return text
		}
	}
	return ""
}

func extractMetaTitle(doc *goquery.Document) string {
	for _, selector := range []string{`meta[property="og:title"]`, `meta[name="twitter:title"]`} {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); len(trimmed) > 10 {
				return trimmed
			}
		}
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); len(title) > 10 {
		return title
	}
	return ""
}

// extractDescription joins up to three matches per selector; retail pages
// commonly split descriptions across feature blocks.
func extractDescription(doc *goquery.Document) string {
	var parts []string
	for _, selector := range descriptionSelectors {
		doc.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= 3 {
				return false
			}
			if text := strings.TrimSpace(sel.Text()); len(text) > 20 {
				parts = append(parts, text)
			}
			return true
		})
	}

	description := strings.Join(parts, " ")
	if len(description) > 1000 {
		description = description[:1000]
	}
	return description
}

func extractMetaDescription(doc *goquery.Document) string {
	selectors := []string{
		`meta[property="og:description"]`,
		`meta[name="description"]`,
		`meta[name="twitter:description"]`,
	}
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); len(trimmed) > 20 {
				return trimmed
			}
		}
	}
	return ""
}

func extractPriceFromDocument(doc *goquery.Document) *float64 {
	for _, selector := range priceSelectors {
		var price *float64
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if p := extractPriceFromText(strings.TrimSpace(sel.Text())); p != nil && *p > 0 {
				price = p
				return false
			}
			return true
		})
		if price != nil {
			return price
		}
	}
	return extractPriceFromText(doc.Text())
}

// extractSpecsFromDocument pulls key:value rows out of spec tables and lists.
func extractSpecsFromDocument(doc *goquery.Document) map[string]any {
	specs := make(map[string]any)

	doc.Find(`table[class*="spec"], table[class*="feature"], table[class*="detail"], ul[class*="spec"], ul[class*="feature"], ul[class*="detail"]`).
		Each(func(_ int, table *goquery.Selection) {
			table.Find("tr, li").Each(func(_ int, row *goquery.Selection) {
				text := row.Text()
				key, value, found := strings.Cut(text, ":")
				if !found {
					return
				}
				key = strings.TrimSpace(key)
				value = strings.TrimSpace(value)
				if key != "" && value != "" {
					specs[key] = value
				}
			})
		})

	return specs
}

// cleanPageText returns the page text with scripts and styles removed and
// whitespace collapsed.
func cleanPageText(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find("script, style").Remove()

	text := strings.Join(strings.Fields(clone.Text()), " ")
	if len(text) > maxPageTextLength {
		text = text[:maxPageTextLength]
	}
	return text
}

// extractJSONLDName reads the product name from JSON-LD structured data.
func extractJSONLDName(doc *goquery.Document) string {
	var name string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return true
		}

		switch v := data.(type) {
		case map[string]any:
			name = productName(v)
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					if name = productName(obj); name != "" {
						break
					}
				}
			}
		}
		return name == ""
	})
	return name
}

func productName(obj map[string]any) string {
	if obj["@type"] != "Product" {
		return ""
	}
	name, _ := obj["name"].(string)
	return name
}
