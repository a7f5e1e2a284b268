package domain

// PriceVerdict classifies a listed price against the computed fair range.
type PriceVerdict string

const (
	PriceSuspiciouslyCheap  PriceVerdict = "suspiciously_cheap"
	PriceExcellentValue     PriceVerdict = "excellent_value"
	PriceGoodValue          PriceVerdict = "good_value"
	PriceFair               PriceVerdict = "fair"
	PriceSlightlyOverpriced PriceVerdict = "slightly_overpriced"
	PriceOverpriced         PriceVerdict = "overpriced"
	PriceHighlyOverpriced   PriceVerdict = "highly_overpriced"
)

// PriceAnalysis is the pricing-fairness result. Fair prices and the market
// average are USD equivalents; ListedPrice stays in the original currency.
type PriceAnalysis struct {
	ListedPrice           float64      `json:"listed_price"`
	FairPriceMin          float64      `json:"fair_price_min"`
	FairPriceMax          float64      `json:"fair_price_max"`
	MarketAverage         float64      `json:"market_average"`
	OverpricingPercentage float64      `json:"overpricing_percentage"`
	Verdict               PriceVerdict `json:"verdict"`
}

// OverallVerdict is the final recommendation for a product.
type OverallVerdict string

const (
	VerdictExcellentChoice  OverallVerdict = "excellent_choice"
	VerdictGoodValue        OverallVerdict = "good_value"
	VerdictAcceptable       OverallVerdict = "acceptable"
	VerdictOverpriced       OverallVerdict = "overpriced"
	VerdictMisleadingClaims OverallVerdict = "misleading_claims"
	VerdictNotRecommended   OverallVerdict = "not_recommended"
)

// ProductAnalysis is the terminal artifact of the pipeline.
type ProductAnalysis struct {
	ProductTitle    string              `json:"product_title"`
	ClaimsFound     []Claim             `json:"claims_found"`
	Verifications   []ClaimVerification `json:"verifications"`
	PriceAnalysis   *PriceAnalysis      `json:"price_analysis,omitempty"`
	RealityScore    float64             `json:"reality_score"` // 0-100
	PricingScore    float64             `json:"pricing_score"` // 0-100
	OverallVerdict  OverallVerdict      `json:"overall_verdict"`
	Summary         string              `json:"summary"`
	RedFlags        []string            `json:"red_flags"`
	Recommendations []string            `json:"recommendations"`
}
