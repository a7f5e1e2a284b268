package usecase

import (
	"fmt"

	"github.com/truthlens/backend/internal/domain"
)

// Reality score constants. Absence of extractable claims is not penalized,
// hence the neutral-positive default.
const (
	neutralRealityScore = 75.0
	neutralPricingScore = 50.0

	scoreFeasible       = 100.0
	scoreFeasibleEdge   = 85.0 // feasible but flagged high_capacity/unusually_high
	scoreExaggerated    = 40.0
	scoreImpossible     = 0.0
	penaltyTwoCritical  = 0.7
	penaltyManyCritical = 0.5
)

// pricingVerdictScores maps price verdicts to base pricing scores.
var pricingVerdictScores = map[domain.PriceVerdict]float64{
	domain.PriceSuspiciouslyCheap:  20.0,
	domain.PriceExcellentValue:     100.0,
	domain.PriceGoodValue:          90.0,
	domain.PriceFair:               75.0,
	domain.PriceSlightlyOverpriced: 55.0,
	domain.PriceOverpriced:         30.0,
	domain.PriceHighlyOverpriced:   10.0,
}

// verdictSummaries are the base summary templates keyed by overall verdict.
var verdictSummaries = map[domain.OverallVerdict]string{
	domain.VerdictExcellentChoice:  "Excellent product with realistic claims and great value. Highly recommended.",
	domain.VerdictGoodValue:        "Good product with realistic claims and fair pricing. Recommended.",
	domain.VerdictAcceptable:       "Acceptable product with some valid points but also concerns worth noting.",
	domain.VerdictOverpriced:       "Product is significantly overpriced compared to market value.",
	domain.VerdictMisleadingClaims: "Product makes several misleading or exaggerated claims. Proceed with caution.",
	domain.VerdictNotRecommended:   "Product makes technically impossible claims or has major red flags. Not recommended.",
}

// ScoringEngine aggregates verifications and the price analysis into final
// scores, a verdict, and user-facing summary material. Pure function of its
// inputs; safe for concurrent use.
type ScoringEngine struct{}

// NewScoringEngine creates a scoring engine.
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// GenerateAnalysis produces the terminal ProductAnalysis.
func (e *ScoringEngine) GenerateAnalysis(
	product *domain.ProductData,
	claims []domain.Claim,
	verifications []domain.ClaimVerification,
	priceAnalysis *domain.PriceAnalysis,
) *domain.ProductAnalysis {
	realityScore := realityScore(verifications)
	pricingScore := pricingScore(priceAnalysis)
	verdict := overallVerdict(realityScore, pricingScore, verifications)

	return &domain.ProductAnalysis{
		ProductTitle:    product.Title,
		ClaimsFound:     claims,
		Verifications:   verifications,
		PriceAnalysis:   priceAnalysis,
		RealityScore:    round1(realityScore),
		PricingScore:    round1(pricingScore),
		OverallVerdict:  verdict,
		Summary:         buildSummary(realityScore, pricingScore, verdict),
		RedFlags:        buildRedFlags(verifications, priceAnalysis, claims),
		Recommendations: buildRecommendations(realityScore, pricingScore, verifications, priceAnalysis, claims),
	}
}

// realityScore is the confidence-weighted feasibility aggregate, with a
// multiplicative penalty when two or more verifications carry critical flags.
func realityScore(verifications []domain.ClaimVerification) float64 {
	if len(verifications) == 0 {
		return neutralRealityScore
	}

	criticalFlags := 0
	for _, v := range verifications {
		if v.HasFlag(domain.FlagImpossible) || v.HasFlag(domain.FlagUnrealistic) {
			criticalFlags++
		}
	}

	totalScore := 0.0
	totalWeight := 0.0
	for _, v := range verifications {
		var score float64
		switch v.Status {
		case domain.StatusFeasible:
			if v.HasFlag(domain.FlagHighCapacity) || v.HasFlag(domain.FlagUnusuallyHigh) {
				score = scoreFeasibleEdge
			} else {
				score = scoreFeasible
			}
		case domain.StatusExaggerated:
			score = scoreExaggerated
		default:
			score = scoreImpossible
		}

		totalScore += score * v.Confidence
		totalWeight += v.Confidence
	}

	if totalWeight == 0 {
		return neutralRealityScore
	}

	base := totalScore / totalWeight
	switch {
	case criticalFlags >= 3:
		base *= penaltyManyCritical
	case criticalFlags >= 2:
		base *= penaltyTwoCritical
	}

	return clamp(base, 0, 100)
}

// pricingScore converts the price verdict into a score and adjusts it by the
// overpricing percentage. A zero percentage skips the adjustment entirely.
func pricingScore(priceAnalysis *domain.PriceAnalysis) float64 {
	if priceAnalysis == nil {
		return neutralPricingScore
	}

	base, ok := pricingVerdictScores[priceAnalysis.Verdict]
	if !ok {
		base = 50.0
	}

	if pct := priceAnalysis.OverpricingPercentage; pct != 0 {
		switch {
		case pct < -30:
			// Too good to be true territory.
			if base-10 < 85 {
				base = base - 10
			} else {
				base = 85
			}
		case pct < -10:
			if base+5 > 100 {
				base = 100
			} else {
				base = base + 5
			}
		case pct > 150:
			base -= 30
		case pct > 100:
			base -= 20
		}
	}

	return clamp(base, 0, 100)
}

// overallVerdict combines the scores. Any impossible verification is a hard
// override; price and reality scores are irrelevant once it fires.
func overallVerdict(realityScore, pricingScore float64, verifications []domain.ClaimVerification) domain.OverallVerdict {
	impossible := 0
	exaggerated := 0
	for _, v := range verifications {
		switch v.Status {
		case domain.StatusImpossible:
			impossible++
		case domain.StatusExaggerated:
			exaggerated++
		}
	}

	if impossible > 0 {
		return domain.VerdictNotRecommended
	}
	if float64(exaggerated) > float64(len(verifications))*0.5 {
		return domain.VerdictMisleadingClaims
	}

	combined := realityScore*0.65 + pricingScore*0.35

	switch {
	case combined >= 85 && realityScore >= 75 && pricingScore >= 70:
		return domain.VerdictExcellentChoice
	case combined >= 75 && realityScore >= 65:
		return domain.VerdictGoodValue
	case pricingScore < 40:
		return domain.VerdictOverpriced
	case realityScore < 50:
		return domain.VerdictMisleadingClaims
	case combined >= 60:
		return domain.VerdictAcceptable
	default:
		return domain.VerdictNotRecommended
	}
}

// buildSummary selects the verdict template and appends score-band clauses.
func buildSummary(realityScore, pricingScore float64, verdict domain.OverallVerdict) string {
	summary, ok := verdictSummaries[verdict]
	if !ok {
		summary = "Product has mixed characteristics requiring careful consideration."
	}

	switch {
	case realityScore < 50:
		summary += " Many claims appear exaggerated or physically impossible."
	case realityScore < 70:
		summary += " Some claims appear questionable or exaggerated."
	case realityScore >= 85:
		summary += " Product claims are largely credible."
	}

	switch {
	case pricingScore < 50:
		summary += " Pricing is higher than justified by features."
	case pricingScore >= 85:
		summary += " Pricing is fair or better than average."
	}

	return summary
}

// buildRedFlags collects warnings in fixed priority order: impossible claims,
// exaggeration counts, price, safety, buzzword overuse, then a sentinel when
// nothing else applies.
func buildRedFlags(verifications []domain.ClaimVerification, priceAnalysis *domain.PriceAnalysis, claims []domain.Claim) []string {
	var redFlags []string

	var impossible []domain.ClaimVerification
	exaggerated := 0
	safety := false
	for _, v := range verifications {
		switch v.Status {
		case domain.StatusImpossible:
			impossible = append(impossible, v)
		case domain.StatusExaggerated:
			exaggerated++
		}
		if v.HasFlag(domain.FlagSafetyConcern) {
			safety = true
		}
	}

	for i, v := range impossible {
		if i >= 3 {
			break
		}
		redFlags = append(redFlags, fmt.Sprintf(
			"Impossible claim: %s... (%s)", truncate(v.Claim, 80), truncate(v.Reasoning, 60)))
	}
	if len(impossible) > 3 {
		redFlags = append(redFlags, fmt.Sprintf("Plus %d more impossible claims", len(impossible)-3))
	}

	switch {
	case exaggerated >= 4:
		redFlags = append(redFlags, fmt.Sprintf(
			"Multiple exaggerated claims detected (%d found) - marketing hype likely", exaggerated))
	case exaggerated >= 2:
		redFlags = append(redFlags, fmt.Sprintf(
			"Some claims appear exaggerated (%d found)", exaggerated))
	}

	if priceAnalysis != nil {
		switch {
		case priceAnalysis.Verdict == domain.PriceSuspiciouslyCheap:
			redFlags = append(redFlags,
				"Price is suspiciously low - possible counterfeit or quality issues")
		case priceAnalysis.OverpricingPercentage > 100:
			redFlags = append(redFlags, fmt.Sprintf(
				"Severely overpriced (%.0f%% above fair value)", priceAnalysis.OverpricingPercentage))
		case priceAnalysis.OverpricingPercentage > 50:
			redFlags = append(redFlags, fmt.Sprintf(
				"Overpriced by %.0f%% compared to similar products", priceAnalysis.OverpricingPercentage))
		}
	}

	if safety {
		redFlags = append(redFlags,
			"Safety concerns detected - verify certifications and user reviews")
	}

	if countCategory(claims, domain.CategoryMarketingBuzzword) > 3 {
		redFlags = append(redFlags,
			"Heavy use of marketing buzzwords without substantiation")
	}

	if len(redFlags) == 0 {
		redFlags = append(redFlags, "No major red flags detected")
	}

	return redFlags
}

// buildRecommendations emits actionable advice banded by score and flag
// presence, with a generic fallback when nothing applies.
func buildRecommendations(
	realityScore, pricingScore float64,
	verifications []domain.ClaimVerification,
	priceAnalysis *domain.PriceAnalysis,
	claims []domain.Claim,
) []string {
	var recommendations []string

	switch {
	case realityScore < 50:
		recommendations = append(recommendations,
			"Strongly recommend avoiding - claims are unrealistic or impossible",
			"Check consumer protection reviews and complaint databases")
	case realityScore < 70:
		recommendations = append(recommendations,
			"Research thoroughly - verify all claims with independent sources",
			"Contact the seller for detailed specifications and proof of claims")
	}

	if priceAnalysis != nil {
		switch {
		case priceAnalysis.Verdict == domain.PriceSuspiciouslyCheap:
			recommendations = append(recommendations,
				"Verify authenticity - price may indicate a counterfeit product",
				"Buy from authorized sellers only to ensure a genuine product")
		case pricingScore < 40:
			recommendations = append(recommendations, fmt.Sprintf(
				"Overpriced - fair value is $%.0f-$%.0f. Consider alternatives",
				priceAnalysis.FairPriceMin, priceAnalysis.FairPriceMax),
				"Wait for sales or compare with similar products from other brands")
		case pricingScore > 85:
			recommendations = append(recommendations,
				"Price is fair or better - good value if claims are verified")
		}
	}

	impossible := 0
	for _, v := range verifications {
		if v.Status == domain.StatusImpossible {
			impossible++
		}
	}
	if impossible > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Avoid products with %d impossible claim(s) - indicates dishonest marketing", impossible))
	}

	if countCategory(claims, domain.CategoryCertifications) > 0 {
		recommendations = append(recommendations,
			"Verify certifications on official regulatory websites (FCC, CE, etc.)")
	}

	if countCategory(claims, domain.CategoryWarranty) > 0 {
		recommendations = append(recommendations,
			"Read warranty terms carefully - check coverage limits and the claim process")
	}

	if realityScore >= 80 && pricingScore >= 70 {
		recommendations = append(recommendations,
			"Product appears genuine with realistic specs - recommended if it fits your needs",
			"Still check recent user reviews for real-world performance feedback")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Product is acceptable but do basic research before purchasing")
	}

	return recommendations
}

func countCategory(claims []domain.Claim, category domain.Category) int {
	count := 0
	for _, c := range claims {
		if c.Category == category {
			count++
		}
	}
	return count
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
