package usecase

import (
	"strings"
	"testing"

	"github.com/truthlens/backend/internal/domain"
)

func TestRealityScore(t *testing.T) {
	t.Run("no verifications yields neutral score", func(t *testing.T) {
		if got := realityScore(nil); got != 75 {
			t.Errorf("realityScore() = %v, want 75", got)
		}
	})

	t.Run("single feasible claim scores high", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 0.9, Flags: []string{}},
		}
		if got := realityScore(verifications); got != 100 {
			t.Errorf("realityScore() = %v, want 100", got)
		}
	})

	t.Run("feasible with capacity flag scores at the edge", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 0.85, Flags: []string{domain.FlagHighCapacity}},
		}
		if got := realityScore(verifications); got != 85 {
			t.Errorf("realityScore() = %v, want 85", got)
		}
	})

	t.Run("single impossible claim scores zero", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusImpossible, Confidence: 0.95,
				Flags: []string{domain.FlagImpossible, domain.FlagUnrealistic}},
		}
		if got := realityScore(verifications); got != 0 {
			t.Errorf("realityScore() = %v, want 0", got)
		}
	})

	t.Run("two critical flags apply a 0.7 penalty", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 1.0, Flags: []string{domain.FlagUnrealistic}},
			{Status: domain.StatusFeasible, Confidence: 1.0, Flags: []string{domain.FlagUnrealistic}},
		}
		if got := realityScore(verifications); got != 70 {
			t.Errorf("realityScore() = %v, want 100*0.7 = 70", got)
		}
	})

	t.Run("three critical flags apply a 0.5 penalty", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 1.0, Flags: []string{domain.FlagUnrealistic}},
			{Status: domain.StatusFeasible, Confidence: 1.0, Flags: []string{domain.FlagImpossible}},
			{Status: domain.StatusFeasible, Confidence: 1.0, Flags: []string{domain.FlagUnrealistic}},
		}
		if got := realityScore(verifications); got != 50 {
			t.Errorf("realityScore() = %v, want 100*0.5 = 50", got)
		}
	})

	t.Run("confidence weights the aggregate", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 0.9, Flags: []string{}},
			{Status: domain.StatusExaggerated, Confidence: 0.3, Flags: []string{}},
		}
		// (100*0.9 + 40*0.3) / 1.2 = 85
		if got := realityScore(verifications); got != 85 {
			t.Errorf("realityScore() = %v, want 85", got)
		}
	})
}

func TestPricingScore(t *testing.T) {
	t.Run("nil analysis yields neutral score", func(t *testing.T) {
		if got := pricingScore(nil); got != 50 {
			t.Errorf("pricingScore(nil) = %v, want 50", got)
		}
	})

	t.Run("verdict maps to base score", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{Verdict: domain.PriceFair}
		if got := pricingScore(analysis); got != 75 {
			t.Errorf("pricingScore() = %v, want 75", got)
		}
	})

	t.Run("zero overpricing skips adjustment", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{
			Verdict:               domain.PriceExcellentValue,
			OverpricingPercentage: 0,
		}
		if got := pricingScore(analysis); got != 100 {
			t.Errorf("pricingScore() = %v, want 100 unadjusted", got)
		}
	})

	t.Run("severe underpricing caps the score", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{
			Verdict:               domain.PriceExcellentValue,
			OverpricingPercentage: -40,
		}
		if got := pricingScore(analysis); got != 85 {
			t.Errorf("pricingScore() = %v, want 85", got)
		}
	})

	t.Run("mild underpricing adds a bonus", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{
			Verdict:               domain.PriceGoodValue,
			OverpricingPercentage: -15,
		}
		if got := pricingScore(analysis); got != 95 {
			t.Errorf("pricingScore() = %v, want 90+5 = 95", got)
		}
	})

	t.Run("overpricing above 100 percent subtracts 20", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{
			Verdict:               domain.PriceOverpriced,
			OverpricingPercentage: 120,
		}
		if got := pricingScore(analysis); got != 10 {
			t.Errorf("pricingScore() = %v, want 30-20 = 10", got)
		}
	})

	t.Run("overpricing above 150 percent subtracts 30 and clamps", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{
			Verdict:               domain.PriceHighlyOverpriced,
			OverpricingPercentage: 200,
		}
		if got := pricingScore(analysis); got != 0 {
			t.Errorf("pricingScore() = %v, want clamped to 0", got)
		}
	})
}

func TestOverallVerdict(t *testing.T) {
	t.Run("any impossible claim overrides everything", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 0.9},
			{Status: domain.StatusImpossible, Confidence: 0.95},
		}
		got := overallVerdict(90, 90, verifications)
		if got != domain.VerdictNotRecommended {
			t.Errorf("verdict = %s, want not_recommended", got)
		}
	})

	t.Run("majority exaggerated is misleading", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusExaggerated, Confidence: 0.8},
			{Status: domain.StatusExaggerated, Confidence: 0.8},
			{Status: domain.StatusFeasible, Confidence: 0.9},
		}
		got := overallVerdict(60, 60, verifications)
		if got != domain.VerdictMisleadingClaims {
			t.Errorf("verdict = %s, want misleading_claims", got)
		}
	})

	t.Run("high scores yield excellent choice", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 0.9},
		}
		got := overallVerdict(95, 90, verifications)
		if got != domain.VerdictExcellentChoice {
			t.Errorf("verdict = %s, want excellent_choice", got)
		}
	})

	t.Run("low pricing score yields overpriced", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 0.9},
		}
		got := overallVerdict(70, 20, verifications)
		if got != domain.VerdictOverpriced {
			t.Errorf("verdict = %s, want overpriced", got)
		}
	})

	t.Run("middling combined score is acceptable", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusFeasible, Confidence: 0.9},
		}
		got := overallVerdict(60, 70, verifications)
		if got != domain.VerdictAcceptable {
			t.Errorf("verdict = %s, want acceptable", got)
		}
	})
}

func TestGenerateAnalysis(t *testing.T) {
	engine := NewScoringEngine()

	t.Run("no claims produces neutral analysis", func(t *testing.T) {
		product := &domain.ProductData{Title: "Plain Widget"}

		got := engine.GenerateAnalysis(product, nil, nil, nil)

		if got.RealityScore != 75 {
			t.Errorf("RealityScore = %v, want 75", got.RealityScore)
		}
		if got.PricingScore != 50 {
			t.Errorf("PricingScore = %v, want 50", got.PricingScore)
		}
		if got.OverallVerdict != domain.VerdictAcceptable {
			t.Errorf("OverallVerdict = %s, want acceptable", got.OverallVerdict)
		}
		if len(got.RedFlags) != 1 || got.RedFlags[0] != "No major red flags detected" {
			t.Errorf("RedFlags = %v, want the no-flags sentinel", got.RedFlags)
		}
		if len(got.Recommendations) == 0 {
			t.Error("Recommendations empty, want fallback advice")
		}
	})

	t.Run("impossible claims produce a hard not_recommended", func(t *testing.T) {
		product := &domain.ProductData{Title: "Quantum Pad"}
		verifications := []domain.ClaimVerification{
			{
				Claim: "100% efficient", Status: domain.StatusImpossible, Confidence: 1.0,
				Reasoning: "violates thermodynamics",
				Flags:     []string{domain.FlagImpossible, domain.FlagUnrealistic},
			},
		}

		got := engine.GenerateAnalysis(product, nil, verifications, nil)

		if got.OverallVerdict != domain.VerdictNotRecommended {
			t.Errorf("OverallVerdict = %s, want not_recommended", got.OverallVerdict)
		}
		if got.RealityScore != 0 {
			t.Errorf("RealityScore = %v, want 0", got.RealityScore)
		}
		if !containsPrefix(got.RedFlags, "Impossible claim:") {
			t.Errorf("RedFlags = %v, want an impossible-claim entry", got.RedFlags)
		}
	})

	t.Run("carries product title and inputs through", func(t *testing.T) {
		product := &domain.ProductData{Title: "Power Bank 10000mAh"}
		claims := []domain.Claim{
			{Text: "10000 mAh", Category: domain.CategoryBatteryCapacity, Value: floatPtr(10000), Unit: "mAh"},
		}
		verifications := []domain.ClaimVerification{
			{Claim: "10000 mAh", Status: domain.StatusFeasible, Confidence: 0.9, Flags: []string{}},
		}

		got := engine.GenerateAnalysis(product, claims, verifications, nil)

		if got.ProductTitle != "Power Bank 10000mAh" {
			t.Errorf("ProductTitle = %s", got.ProductTitle)
		}
		if len(got.ClaimsFound) != 1 || len(got.Verifications) != 1 {
			t.Errorf("claims/verifications = %d/%d, want 1/1", len(got.ClaimsFound), len(got.Verifications))
		}
	})
}

func TestBuildRedFlags(t *testing.T) {
	t.Run("caps impossible claims at three plus overflow", func(t *testing.T) {
		var verifications []domain.ClaimVerification
		for i := 0; i < 5; i++ {
			verifications = append(verifications, domain.ClaimVerification{
				Claim: "bogus", Status: domain.StatusImpossible, Confidence: 0.9,
				Reasoning: "nope",
			})
		}

		flags := buildRedFlags(verifications, nil, nil)

		impossible := 0
		overflow := false
		for _, f := range flags {
			if strings.HasPrefix(f, "Impossible claim:") {
				impossible++
			}
			if f == "Plus 2 more impossible claims" {
				overflow = true
			}
		}
		if impossible != 3 {
			t.Errorf("impossible entries = %d, want 3", impossible)
		}
		if !overflow {
			t.Errorf("flags = %v, want overflow entry", flags)
		}
	})

	t.Run("reports exaggeration counts", func(t *testing.T) {
		verifications := []domain.ClaimVerification{
			{Status: domain.StatusExaggerated, Confidence: 0.8},
			{Status: domain.StatusExaggerated, Confidence: 0.8},
		}

		flags := buildRedFlags(verifications, nil, nil)
		if !containsSubstring(flags, "Some claims appear exaggerated (2 found)") {
			t.Errorf("flags = %v, want exaggeration entry", flags)
		}
	})

	t.Run("flags suspicious pricing", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{Verdict: domain.PriceSuspiciouslyCheap}

		flags := buildRedFlags(nil, analysis, nil)
		if !containsSubstring(flags, "suspiciously low") {
			t.Errorf("flags = %v, want suspicious-price entry", flags)
		}
	})

	t.Run("flags severe overpricing", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{
			Verdict:               domain.PriceHighlyOverpriced,
			OverpricingPercentage: 130,
		}

		flags := buildRedFlags(nil, analysis, nil)
		if !containsSubstring(flags, "Severely overpriced (130% above fair value)") {
			t.Errorf("flags = %v, want severe-overpricing entry", flags)
		}
	})

	t.Run("flags heavy buzzword use", func(t *testing.T) {
		claims := []domain.Claim{
			{Category: domain.CategoryMarketingBuzzword},
			{Category: domain.CategoryMarketingBuzzword},
			{Category: domain.CategoryMarketingBuzzword},
			{Category: domain.CategoryMarketingBuzzword},
		}

		flags := buildRedFlags(nil, nil, claims)
		if !containsSubstring(flags, "marketing buzzwords") {
			t.Errorf("flags = %v, want buzzword entry", flags)
		}
	})
}

func TestBuildRecommendations(t *testing.T) {
	t.Run("overpriced product quotes the fair range", func(t *testing.T) {
		analysis := &domain.PriceAnalysis{
			Verdict:      domain.PriceOverpriced,
			FairPriceMin: 20,
			FairPriceMax: 40,
		}

		recs := buildRecommendations(75, 30, nil, analysis, nil)
		if !containsSubstring(recs, "fair value is $20-$40") {
			t.Errorf("recs = %v, want fair-range entry", recs)
		}
	})

	t.Run("low reality score warns strongly", func(t *testing.T) {
		recs := buildRecommendations(40, 50, nil, nil, nil)
		if !containsSubstring(recs, "Strongly recommend avoiding") {
			t.Errorf("recs = %v, want avoidance advice", recs)
		}
	})

	t.Run("certification claims prompt verification", func(t *testing.T) {
		claims := []domain.Claim{
			{Category: domain.CategoryCertifications, Text: "CE certified"},
		}

		recs := buildRecommendations(75, 50, nil, nil, claims)
		if !containsSubstring(recs, "Verify certifications") {
			t.Errorf("recs = %v, want certification advice", recs)
		}
	})

	t.Run("good product gets a positive recommendation", func(t *testing.T) {
		recs := buildRecommendations(90, 80, nil, nil, nil)
		if !containsSubstring(recs, "appears genuine") {
			t.Errorf("recs = %v, want positive entry", recs)
		}
	})

	t.Run("falls back to generic advice", func(t *testing.T) {
		recs := buildRecommendations(75, 50, nil, nil, nil)
		if len(recs) != 1 || !strings.Contains(recs[0], "basic research") {
			t.Errorf("recs = %v, want single fallback entry", recs)
		}
	})
}

func containsSubstring(items []string, substr string) bool {
	for _, item := range items {
		if strings.Contains(item, substr) {
			return true
		}
	}
	return false
}

func containsPrefix(items []string, prefix string) bool {
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			return true
		}
	}
	return false
}
