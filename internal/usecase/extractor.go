package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/truthlens/backend/internal/domain"
)

// contextWindow is how many bytes of surrounding text are kept on each
// side of a pattern match when building the claim snippet.
const contextWindow = 50

// categoryPatterns holds the ordered regex patterns for one claim category.
// Patterns within a category may overlap; every non-duplicate hit becomes a
// candidate claim.
type categoryPatterns struct {
	category domain.Category
	unit     string
	patterns []*regexp.Regexp
}

// claimPatterns is the fixed extraction table. Order matters: it fixes the
// order claims appear in for identical input text.
var claimPatterns = []categoryPatterns{
	{
		category: domain.CategoryBatteryCapacity,
		unit:     "mAh",
		patterns: compile(
			`(\d+)\s*mAh`,
			`(\d+)\s*milliamp hour`,
			`battery.*?(\d+)\s*mAh`,
			`(\d+)\s*[Ww]h(?:our)?`,
			`capacity[:\s]+(\d+)\s*mAh`,
			`(\d+,\d+)\s*mAh`,
			`battery\s+size[:\s]+(\d+)\s*mAh`,
		),
	},
	{
		category: domain.CategoryChargingTime,
		unit:     "time",
		patterns: compile(
			`charges?\s+(?:in|within)\s+(\d+)\s*(minutes?|mins?|hours?|hrs?)`,
			`(\d+)\s*(minutes?|mins?|hours?|hrs?)\s+(?:fast\s+)?(?:charg(?:e|ing)|to\s+full)`,
			`quick\s+charge.*?(\d+)\s*(minutes?|mins?|hours?|hrs?)`,
			`full\s+charge.*?(\d+)\s*(hours?|hrs?)`,
			`charging\s+time[:\s]+(\d+)\s*(hours?|hrs?|minutes?|mins?)`,
			`(?:0|zero)\s*-?\s*(\d+)\s*%\s+(?:in|within)\s+(\d+)\s*(minutes?|mins?)`,
			`recharge.*?(?:in|within)\s+(\d+)\s*(hours?|hrs?|minutes?|mins?)`,
			`(\d+)\s*(min|hr)\s+(?:charge|charging)`,
		),
	},
	{
		category: domain.CategoryPowerOutput,
		unit:     "W",
		patterns: compile(
			`(\d+\.?\d*)\s*[Ww](?:att)?(?:\s+(?:output|power|charging|fast))?`,
			`(\d+\.?\d*)\s*[Ww]\s+(?:fast|quick|rapid|super|hyper)`,
			`power.*?(\d+\.?\d*)\s*[Ww]`,
			`output[:\s]+(\d+\.?\d*)\s*[Ww]`,
			`(\d+\.?\d*)\s*[Ww]\s+(?:Type-?C|USB|PD|QC)`,
		),
	},
	{
		category: domain.CategorySpeed,
		unit:     "speed",
		patterns: compile(
			`(\d+)\s*(?:mph|km/h|kmph|kilometers?\s+per\s+hour)`,
			`top\s+speed.*?(\d+)`,
			`speed.*?(\d+)\s*(?:mph|km/h)`,
		),
	},
	{
		category: domain.CategoryRange,
		unit:     "distance",
		patterns: compile(
			`(?:range|distance).*?(\d+)\s*(?:km|miles?|kilometers?)`,
			`(\d+)\s*(?:km|miles?)\s+range`,
			`up\s+to\s+(\d+)\s*(?:km|miles?)`,
		),
	},
	{
		category: domain.CategoryEfficiency,
		unit:     "%",
		patterns: compile(
			`(\d+)%\s+efficien(?:cy|t)`,
			`efficien(?:cy|t).*?(\d+)%`,
			`(\d+)\s*percent\s+efficient`,
		),
	},
	{
		category: domain.CategoryWeight,
		unit:     "weight",
		patterns: compile(
			`(\d+\.?\d*)\s*(?:kg|g|grams?|kilograms?|lbs?|pounds?)`,
			`weighs?.*?(\d+\.?\d*)\s*(?:kg|g|lbs?)`,
			`(?:ultra|super)?\s*light.*?(\d+\.?\d*)\s*(?:kg|g)`,
		),
	},
	{
		category: domain.CategoryStorage,
		unit:     "capacity",
		patterns: compile(
			`(\d+)\s*(?:GB|TB|MB)`,
			`storage.*?(\d+)\s*(?:GB|TB)`,
			`(\d+)\s*(?:liter|litre|L|ml)`,
		),
	},
	{
		category: domain.CategoryVoltage,
		unit:     "V",
		patterns: compile(
			`(\d+\.?\d*)\s*[Vv](?:olt)?(?:\s+(?:input|output))?`,
			`voltage[:\s]+(\d+\.?\d*)\s*[Vv]`,
			`(\d+\.?\d*)\s*[Vv]\s+(?:DC|AC)`,
		),
	},
	{
		category: domain.CategoryCurrent,
		unit:     "A",
		patterns: compile(
			`(\d+\.?\d*)\s*[Aa](?:mp)?(?:\s+(?:input|output))?`,
			`current[:\s]+(\d+\.?\d*)\s*[Aa]`,
			`(\d+\.?\d*)\s*[Aa]\s+(?:fast|quick)`,
		),
	},
	{
		category: domain.CategoryChargeCycles,
		unit:     "cycles",
		patterns: compile(
			`(\d+)\+?\s*(?:charge\s+)?cycles?`,
			`(?:up\s+to\s+)?(\d+)\s+(?:charge\s+)?cycles?`,
			`cycle\s+life[:\s]+(\d+)`,
			`lifespan[:\s]+(\d+)\s+cycles?`,
		),
	},
	{
		category: domain.CategoryWarranty,
		unit:     "period",
		patterns: compile(
			`(\d+)\s*(?:year|month|yr|mo)\s+warranty`,
			`warranty[:\s]+(\d+)\s+(?:year|month)`,
			`(\d+)\s*(?:year|yr)\s+(?:guarantee|coverage)`,
		),
	},
	{
		category: domain.CategoryTemperature,
		unit:     "temp",
		patterns: compile(
			`(?:operating|working)\s+temp.*?([-\d]+)\s*[°]?[CcFf]`,
			`([-\d]+)[°]?\s*[Cc]\s+to\s+([-\d]+)[°]?\s*[Cc]`,
			`temperature.*?([-\d]+)\s*[°]?[CcFf]`,
		),
	},
	{
		category: domain.CategoryCertifications,
		unit:     "certification",
		patterns: compile(
			`\b(CE|FCC|RoHS|UL|ETL|CSA)\s+certified`,
			`\b(ISO\s*\d+)`,
			`certified\s+(?:by\s+)?(CE|FCC|RoHS|UL)`,
			`\b(MFi|Made\s+for\s+iPhone)`,
		),
	},
}

// buzzwordPhrases are marketing phrases that always produce a
// marketing_buzzword claim when present.
var buzzwordPhrases = []string{
	"AI-powered", "AI powered", "artificial intelligence",
	"medical-grade", "medical grade", "hospital grade",
	"military-grade", "military grade", "military spec",
	"NASA-approved", "NASA grade", "space grade",
	"quantum", "revolutionary", "breakthrough", "patent pending",
	"miracle", "magic", "ultimate", "absolute",
	"guaranteed", "100% safe", "zero risk", "risk-free",
	"clinically proven", "scientifically proven", "lab tested",
	"professional grade", "industrial strength",
	"never seen before", "world first", "industry leading",
	"unlimited", "infinite", "perpetual", "lifetime",
	"award winning", "best in class", "#1 rated",
}

var buzzwordPatterns = compileBuzzwords(buzzwordPhrases)

// numericCleanup strips everything but digits and dots from a captured value.
var numericCleanup = regexp.MustCompile(`[^\d.]`)

func compile(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return compiled
}

func compileBuzzwords(phrases []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(phrases))
	for i, phrase := range phrases {
		compiled[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
	}
	return compiled
}

// ClaimExtractor scans normalized product text for category-tagged claims
// and marketing buzzwords. It is immutable and safe for concurrent use.
type ClaimExtractor struct{}

// NewClaimExtractor creates a claim extractor. The pattern tables are
// package-level and compiled once at init.
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{}
}

// ExtractClaims extracts all claims from product data: one pass over the
// category pattern tables, one pass over the buzzword list, then a final
// dedup on (category, value, unit).
func (e *ClaimExtractor) ExtractClaims(product *domain.ProductData) []domain.Claim {
	text := prepareText(product)

	var claims []domain.Claim
	for _, cp := range claimPatterns {
		claims = append(claims, extractCategoryClaims(text, cp)...)
	}

	claims = append(claims, extractBuzzwords(text)...)

	return deduplicateClaims(claims)
}

// prepareText concatenates title, description, and serialized specs.
// Spec keys are sorted so identical inputs always produce identical text.
func prepareText(product *domain.ProductData) string {
	parts := []string{product.Title, product.Description}

	keys := make([]string, 0, len(product.Specs))
	for key := range product.Specs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", key, product.Specs[key]))
	}

	return strings.Join(parts, " ")
}

// extractCategoryClaims applies every pattern of one category to the text.
// A hit with the same trimmed snippet as an earlier hit in this category is
// skipped; overlapping hits with distinct snippets are all kept.
func extractCategoryClaims(text string, cp categoryPatterns) []domain.Claim {
	var claims []domain.Claim

	for _, pattern := range cp.patterns {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			value := parseClaimValue(text, loc)
			snippet := snippetAround(text, loc[0], loc[1])

			if hasSnippet(claims, snippet, cp.category) {
				continue
			}

			claims = append(claims, domain.Claim{
				Text:     snippet,
				Category: cp.category,
				Value:    value,
				Unit:     cp.unit,
			})
		}
	}

	return claims
}

// extractBuzzwords scans for marketing buzzword phrases. All buzzword claims
// share the same dedup key, so at most one survives per product.
func extractBuzzwords(text string) []domain.Claim {
	var claims []domain.Claim

	for _, pattern := range buzzwordPatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			claims = append(claims, domain.Claim{
				Text:     snippetAround(text, loc[0], loc[1]),
				Category: domain.CategoryMarketingBuzzword,
			})
		}
	}

	return deduplicateClaims(claims)
}

// parseClaimValue extracts the first captured group as a float. Malformed
// captures mean "no value", never a failed extraction.
func parseClaimValue(text string, loc []int) *float64 {
	if len(loc) < 4 || loc[2] < 0 {
		return nil
	}

	raw := strings.ReplaceAll(text[loc[2]:loc[3]], ",", "")
	raw = numericCleanup.ReplaceAllString(raw, "")

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

// snippetAround returns the trimmed context window around a match,
// clamped to the text and aligned to rune boundaries.
func snippetAround(text string, start, end int) string {
	from := start - contextWindow
	if from < 0 {
		from = 0
	}
	to := end + contextWindow
	if to > len(text) {
		to = len(text)
	}

	for from > 0 && !utf8.RuneStart(text[from]) {
		from--
	}
	for to < len(text) && !utf8.RuneStart(text[to]) {
		to++
	}

	return strings.TrimSpace(text[from:to])
}

func hasSnippet(claims []domain.Claim, snippet string, category domain.Category) bool {
	for _, c := range claims {
		if c.Text == snippet && c.Category == category {
			return true
		}
	}
	return false
}

// dedupKey identifies duplicate claims: same category, same extracted value
// (or both missing), same unit.
type dedupKey struct {
	category domain.Category
	hasValue bool
	value    float64
	unit     string
}

// deduplicateClaims collapses duplicates, keeping the first occurrence and
// preserving insertion order otherwise.
func deduplicateClaims(claims []domain.Claim) []domain.Claim {
	seen := make(map[dedupKey]struct{}, len(claims))
	unique := make([]domain.Claim, 0, len(claims))

	for _, claim := range claims {
		key := dedupKey{category: claim.Category, unit: claim.Unit}
		if claim.Value != nil {
			key.hasValue = true
			key.value = *claim.Value
		}

		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, claim)
	}

	return unique
}
