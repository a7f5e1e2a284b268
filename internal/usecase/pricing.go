package usecase

import (
	"math"
	"strings"

	"github.com/truthlens/backend/internal/domain"
)

// Brand tiers for per-spec pricing rates. Tier detection from product text
// was never implemented upstream of this model; every product is priced as
// mid_range.
const (
	tierBudget   = "budget"
	tierMidRange = "mid_range"
	tierPremium  = "premium"
)

// exchangeRates converts listed prices to USD equivalents for comparison
// against the benchmarks. Unknown currencies pass through at 1.0.
var exchangeRates = map[string]float64{
	"USD": 1.0,
	"INR": 0.012,
	"EUR": 1.09,
	"GBP": 1.27,
}

// categoryBenchmark is the fair-market model for one product category.
type categoryBenchmark struct {
	basePrice         float64
	brandPremium      float64
	typicalMin        float64
	typicalMax        float64
	pricePerMAh       map[string]float64 // power banks only
	pricePerWatt      map[string]float64 // chargers only
	fastChargePremium float64            // multiplier, 0 when not applicable
}

// categoryBenchmarks holds the fixed fair-market constants per category.
// These encode the pricing model; verdicts depend on them bit-for-bit.
var categoryBenchmarks = map[string]categoryBenchmark{
	"power_bank": {
		basePrice:    8,
		brandPremium: 1.5,
		typicalMin:   10,
		typicalMax:   80,
		pricePerMAh: map[string]float64{
			tierBudget:   0.001,
			tierMidRange: 0.0015,
			tierPremium:  0.003,
		},
		fastChargePremium: 1.2,
	},
	"charger": {
		basePrice:    5,
		brandPremium: 1.4,
		typicalMin:   10,
		typicalMax:   60,
		pricePerWatt: map[string]float64{
			tierBudget:   0.25,
			tierMidRange: 0.4,
			tierPremium:  0.7,
		},
	},
	"electronics": {
		basePrice:    20,
		brandPremium: 1.5,
		typicalMin:   30,
		typicalMax:   500,
	},
	"gadget": {
		basePrice:    15,
		brandPremium: 1.4,
		typicalMin:   20,
		typicalMax:   300,
	},
}

// PricingEngine estimates a fair price range for a product and classifies
// the listed price against it. Immutable; safe for concurrent use.
type PricingEngine struct{}

// NewPricingEngine creates a pricing engine.
func NewPricingEngine() *PricingEngine {
	return &PricingEngine{}
}

// AnalyzePrice returns the price-fairness analysis, or nil when no usable
// price was supplied (pricing is then treated as neutral downstream).
func (e *PricingEngine) AnalyzePrice(product *domain.ProductData, claims []domain.Claim) *domain.PriceAnalysis {
	if product.Price == nil || *product.Price <= 0 {
		return nil
	}

	currency := product.Currency
	if currency == "" {
		currency = "USD"
	}
	rate, ok := exchangeRates[currency]
	if !ok {
		rate = 1.0
	}
	priceUSD := *product.Price * rate

	category := inferCategory(product)
	fairMin, fairMax := fairPriceRange(claims, category)

	marketAvg := (fairMin + fairMax) / 2
	overpricing := (priceUSD - marketAvg) / marketAvg * 100

	return &domain.PriceAnalysis{
		ListedPrice:           *product.Price,
		FairPriceMin:          round2(fairMin),
		FairPriceMax:          round2(fairMax),
		MarketAverage:         round2(marketAvg),
		OverpricingPercentage: round1(overpricing),
		Verdict:               priceVerdict(priceUSD, fairMin, fairMax, overpricing),
	}
}

// inferCategory picks a product category by keyword search over the
// lowercased title and description. First match wins, in priority order.
func inferCategory(product *domain.ProductData) string {
	text := strings.ToLower(product.Title + " " + product.Description)

	switch {
	case containsAny(text, "power bank", "powerbank", "portable charger"):
		return "power_bank"
	case containsAny(text, "charger", "adapter", "charging"):
		return "charger"
	case containsAny(text, "electronics", "gadget", "device"):
		return "electronics"
	default:
		return "gadget"
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// fairPriceRange computes the USD band justified by the category and the
// claimed specs: min is 20% below fair, max is fair times the brand premium,
// both clamped to the category's typical range.
func fairPriceRange(claims []domain.Claim, category string) (float64, float64) {
	benchmark, ok := categoryBenchmarks[category]
	if !ok {
		benchmark = categoryBenchmarks["gadget"]
	}

	fair := benchmark.basePrice + specValue(claims, category, benchmark)

	minPrice := fair * 0.8
	maxPrice := fair * benchmark.brandPremium

	minPrice = math.Max(minPrice, benchmark.typicalMin)
	maxPrice = math.Min(maxPrice, benchmark.typicalMax)

	return minPrice, maxPrice
}

// specValue accumulates the extra value the claimed specifications justify.
func specValue(claims []domain.Claim, category string, benchmark categoryBenchmark) float64 {
	value := 0.0

	for _, claim := range claims {
		if claim.Value == nil {
			continue
		}
		v := *claim.Value

		switch {
		case claim.Category == domain.CategoryBatteryCapacity && category == "power_bank":
			rate, ok := benchmark.pricePerMAh[tierMidRange]
			if !ok {
				rate = 0.0015
			}
			value += v * rate

			// Fast-charge premium multiplies the whole accumulated value.
			if benchmark.fastChargePremium > 0 && hasFastCharge(claims) {
				value *= benchmark.fastChargePremium
			}

		case claim.Category == domain.CategoryPowerOutput:
			if category == "charger" {
				rate, ok := benchmark.pricePerWatt[tierMidRange]
				if !ok {
					rate = 0.4
				}
				value += v * rate
			} else {
				value += v * 0.3
			}

		case claim.Category == domain.CategoryEfficiency && v > 85:
			value += 5

		case claim.Category == domain.CategoryChargingTime:
			if claim.Unit == "time" && v != 0 {
				minutes := v
				if strings.Contains(strings.ToLower(claim.Text), "hour") {
					minutes *= 60
				}
				if minutes < 120 {
					value += 8
				}
			}

		case claim.Category == domain.CategoryChargeCycles && v > 500:
			value += 5

		case claim.Category == domain.CategoryWarranty && v >= 12:
			value += 3
		}
	}

	return value
}

func hasFastCharge(claims []domain.Claim) bool {
	for _, c := range claims {
		if c.Category == domain.CategoryPowerOutput && c.Value != nil && *c.Value > 18 {
			return true
		}
	}
	return false
}

// priceVerdict classifies the USD-normalized listed price against the fair
// band. Checked strictly in this order.
func priceVerdict(listedUSD, fairMin, fairMax, overpricingPct float64) domain.PriceVerdict {
	switch {
	case listedUSD < fairMin*0.6:
		return domain.PriceSuspiciouslyCheap
	case listedUSD < fairMin:
		return domain.PriceExcellentValue
	case listedUSD <= fairMax:
		if listedUSD <= (fairMin+fairMax)/2 {
			return domain.PriceGoodValue
		}
		return domain.PriceFair
	case overpricingPct <= 20:
		return domain.PriceSlightlyOverpriced
	case overpricingPct <= 40:
		return domain.PriceOverpriced
	default:
		return domain.PriceHighlyOverpriced
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
