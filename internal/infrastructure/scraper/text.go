package scraper

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/truthlens/backend/internal/domain"
)

const (
	maxRawTextLength = 10000
	maxTitleLength   = 200
)

// pricePatterns is the extraction ladder for prices embedded in text,
// tried in order. Rupee formats come first because they are the noisiest.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`₹\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`Rs\.?\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`INR\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`MRP[:\s]*₹?\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`Price[:\s]*₹?\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`\$\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`[€£¥]\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`([0-9,]+\.?[0-9]*)\s*(?:INR|USD|EUR|GBP|rupees?|dollars?)`),
	regexp.MustCompile(`(?:Price|price|Cost:|cost:|MRP|mrp)[:\s]*[₹$€£¥]?\s*([0-9,]+\.?[0-9]*)`),
	regexp.MustCompile(`\b([0-9]{2,6})\b`),
}

// textSpecPatterns pull common spec mentions out of free text.
var textSpecPatterns = map[string]*regexp.Regexp{
	"battery":       regexp.MustCompile(`(?i)(\d+)\s*mAh`),
	"power":         regexp.MustCompile(`(?i)(\d+)\s*[Ww]att?s?`),
	"voltage":       regexp.MustCompile(`(?i)(\d+\.?\d*)\s*[Vv]olt?s?`),
	"current":       regexp.MustCompile(`(?i)(\d+\.?\d*)\s*[Aa]mp?s?`),
	"speed":         regexp.MustCompile(`(?i)(\d+)\s*(?:mph|km/h|kmph)`),
	"range":         regexp.MustCompile(`(?i)(\d+)\s*(?:km|miles?|meters?|metres?)`),
	"capacity":      regexp.MustCompile(`(?i)(\d+)\s*(?:GB|TB|MB|L|ml|liters?|litres?)`),
	"weight":        regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:kg|g|grams?|lbs?|oz|ounce)`),
	"charging_time": regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:hour|hr|minute|min)s?\s*(?:charge|charging)?`),
	"output":        regexp.MustCompile(`(?i)(\d+\.?\d*)\s*[Ww]\s*output`),
}

// FromText builds ProductData from a plain-text product description.
func (s *Scraper) FromText(text string) (*domain.ProductData, error) {
	if len(strings.TrimSpace(text)) < 10 {
		return nil, domain.ErrTextTooShort
	}

	if len(text) > maxRawTextLength {
		text = text[:maxRawTextLength]
	}

	title := firstLine(text)
	if title == "" {
		title = "Product"
	}

	price := extractPriceFromText(text)

	return &domain.ProductData{
		Title:       title,
		Description: text,
		Price:       price,
		Currency:    detectCurrency(text, price),
		Specs:       extractSpecsFromText(text),
		RawText:     text,
	}, nil
}

func firstLine(text string) string {
	line := strings.TrimSpace(text)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	if len(line) > maxTitleLength {
		line = line[:maxTitleLength]
	}
	return strings.TrimSpace(line)
}

// extractPriceFromText tries each price pattern in order and returns the
// first capture that parses into a sane price.
func extractPriceFromText(text string) *float64 {
	for _, pattern := range pricePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		raw := strings.ReplaceAll(match[1], ",", "")
		raw = strings.ReplaceAll(raw, " ", "")
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		// Sanity band; the upper bound is wide to accommodate INR prices.
		if price >= 1 && price <= 10000000 {
			return &price
		}
	}
	return nil
}

// detectCurrency guesses the currency from explicit indicators in the text,
// falling back to a whole-number heuristic for symbol-less INR listings.
func detectCurrency(text string, price *float64) string {
	if price == nil {
		return "USD"
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(text, "₹") || strings.Contains(lower, "inr") ||
		strings.Contains(lower, "rupee") || strings.Contains(lower, "rs.") ||
		strings.Contains(lower, "rs "):
		return "INR"
	case strings.Contains(text, "€") || strings.Contains(lower, "eur") || strings.Contains(lower, "euro"):
		return "EUR"
	case strings.Contains(text, "£") || strings.Contains(lower, "gbp") || strings.Contains(lower, "pound"):
		return "GBP"
	case strings.Contains(text, "$") || strings.Contains(lower, "usd") || strings.Contains(lower, "dollar"):
		return "USD"
	}

	// Symbol-less large whole numbers are usually INR listings.
	if *price > 500 && *price == math.Trunc(*price) {
		return "INR"
	}
	return "USD"
}

func extractSpecsFromText(text string) map[string]any {
	specs := make(map[string]any)
	for name, pattern := range textSpecPatterns {
		if match := pattern.FindString(text); match != "" {
			specs[name] = match
		}
	}
	return specs
}
