package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/truthlens/backend/internal/domain"
)

// maxClaimLen is the truncation limit for claim text echoed in verifications.
const maxClaimLen = 200

// ruleOutcome is the verdict a rule produces for a matching value.
type ruleOutcome struct {
	status     domain.VerificationStatus
	confidence float64
	reasoning  string
	details    string
	flags      []string
}

// feasibilityRule pairs a value predicate with an outcome builder. Rules are
// evaluated in order; the first match wins. Keeping them as ordered tables
// (instead of branching code) makes each category's ruleset independently
// auditable.
type feasibilityRule struct {
	when    func(v float64) bool
	verdict func(v float64) ruleOutcome
}

func above(limit float64) func(float64) bool   { return func(v float64) bool { return v > limit } }
func atLeast(limit float64) func(float64) bool { return func(v float64) bool { return v >= limit } }
func below(limit float64) func(float64) bool   { return func(v float64) bool { return v < limit } }
func otherwise() func(float64) bool            { return func(float64) bool { return true } }

var batteryCapacityRules = []feasibilityRule{
	{above(100000), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.95,
			fmt.Sprintf("Claimed %gmAh is unrealistic for portable devices. Even large power banks rarely exceed 100000mAh.", v),
			"Would require an extremely large and heavy battery. Typical range: 1000-50000mAh",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic, domain.FlagHighCapacity}}
	}},
	{above(50000), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusExaggerated, 0.85,
			fmt.Sprintf("%gmAh is unusually high. Possible but would be very large and heavy.", v),
			"Most portable power banks are 1000-50000mAh",
			[]string{domain.FlagUnusuallyHigh, domain.FlagHighCapacity}}
	}},
	{atLeast(1000), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.9,
			reasoning: fmt.Sprintf("%gmAh is within normal range for portable power banks.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.85,
			reasoning: fmt.Sprintf("%gmAh is low capacity but technically valid.", v)}
	}},
}

// chargingTimeRules operate on minutes. The feasible band at <30 sits behind
// the exaggerated band with the same threshold and so never fires; the
// ordering is kept as-is because changing it would change scoring outcomes.
var chargingTimeRules = []feasibilityRule{
	{below(5), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.95,
			fmt.Sprintf("Charging in %g minutes is physically impossible for typical batteries. Battery chemistry requires minimum time even at the highest charging rates.", v),
			"Current technology limits: minimum ~15-30 minutes for fast charge of small batteries",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic}}
	}},
	{below(30), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusExaggerated, 0.90,
			fmt.Sprintf("Charging in %g minutes is extremely aggressive and likely unsafe. High risk of battery damage, overheating, or reduced lifespan.", v),
			"Safe fast charging typically takes at least 30 minutes",
			[]string{domain.FlagUnrealistic, domain.FlagUnsafe}}
	}},
	{below(30), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.8,
			reasoning: fmt.Sprintf("Fast charging in %g minutes is possible with modern fast-charge technology, though it may reduce battery lifespan over time.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.95,
			reasoning: fmt.Sprintf("Charging time of %g minutes is reasonable and safe.", v)}
	}},
}

// powerOutputRules: the impossible band at >65W precedes the exaggerated band
// at >100W, leaving the latter unreachable. Preserved verbatim; the intended
// threshold split is ambiguous and reordering would alter scores.
var powerOutputRules = []feasibilityRule{
	{above(65), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.90,
			fmt.Sprintf("%gW output is unrealistic for portable devices. USB-PD max is 100W; higher power requires a wall outlet.", v),
			"Portable devices are typically limited to 100W due to battery and safety constraints",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic}}
	}},
	{above(100), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusExaggerated, 0.85,
			fmt.Sprintf("%gW exceeds the USB Power Delivery standard (100W max). Likely marketing exaggeration or requires special conditions.", v),
			"",
			[]string{domain.FlagUnusuallyHigh}}
	}},
	{above(18), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%gW is high power output but achievable with USB-PD technology.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.95,
			reasoning: fmt.Sprintf("%gW is standard power output for modern USB devices.", v)}
	}},
}

var efficiencyRules = []feasibilityRule{
	{atLeast(100), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 1.0,
			"100% or higher efficiency violates the laws of thermodynamics. All real devices lose some energy as heat.",
			"Second law of thermodynamics: no process can be 100% efficient",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic, domain.FlagPhysicsViolation}}
	}},
	{above(95), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.95,
			fmt.Sprintf("%g%% efficiency is not achievable with current technology. Even best-in-class devices rarely exceed 95%%.", v),
			"Best laboratory conditions achieve ~95-98% for power converters",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic}}
	}},
	{above(92), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusExaggerated, 0.85,
			fmt.Sprintf("%g%% efficiency is very high and unlikely for consumer products. Possible only in ideal laboratory conditions.", v),
			"",
			[]string{domain.FlagUnusuallyHigh}}
	}},
	{atLeast(75), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%g%% efficiency is reasonable for modern electronic devices.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.85,
			reasoning: fmt.Sprintf("%g%% efficiency is low but technically possible for older or inefficient designs.", v)}
	}},
}

var speedRules = []feasibilityRule{
	{above(80), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusExaggerated, confidence: 0.80,
			reasoning: fmt.Sprintf("%g km/h is very high for small electric vehicles. May be dangerous and likely illegal for street use.", v),
			details:   "Typical e-bikes/scooters: 25-40 km/h"}
	}},
	{above(40), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.75,
			reasoning: fmt.Sprintf("%g km/h is fast but achievable. Check local regulations - may be restricted.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%g km/h is a reasonable speed for personal electric vehicles.", v)}
	}},
}

var rangeRules = []feasibilityRule{
	{above(600), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusExaggerated, confidence: 0.80,
			reasoning: fmt.Sprintf("%g km range is very high for small electric vehicles. Would require a very large battery. Verify test conditions.", v),
			details:   "Typical small EV range: 100-600 km"}
	}},
	{atLeast(100), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.85,
			reasoning: fmt.Sprintf("%g km range is achievable for modern electric vehicles.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%g km is a conservative range estimate.", v)}
	}},
}

var chargeCycleRules = []feasibilityRule{
	{above(10000), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.95,
			fmt.Sprintf("%.0f cycles is unrealistic. Even premium batteries rarely exceed 2000-3000 cycles.", v),
			"Typical Li-ion: 300-1000 cycles",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic}}
	}},
	{above(2000), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusExaggerated, 0.80,
			fmt.Sprintf("%.0f cycles is exceptionally high. Possible for premium batteries but uncommon.", v),
			"Good quality range: 500-2000 cycles",
			[]string{domain.FlagUnusuallyHigh}}
	}},
	{atLeast(500), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%.0f cycles is a good quality battery lifespan.", v)}
	}},
	{atLeast(300), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.85,
			reasoning: fmt.Sprintf("%.0f cycles is a typical battery lifespan.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.75,
			reasoning: fmt.Sprintf("%.0f cycles is low quality but technically possible.", v)}
	}},
}

// warrantyRules operate on months.
var warrantyRules = []feasibilityRule{
	{above(120), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusExaggerated, 0.80,
			fmt.Sprintf("%.0f year warranty is unusually long. Verify the fine print for conditions.", v/12),
			"Typical warranties: 3-24 months",
			[]string{domain.FlagUnusuallyHigh}}
	}},
	{atLeast(24), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%.0f year warranty is good coverage.", v/12)}
	}},
	{atLeast(3), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.85,
			reasoning: fmt.Sprintf("%.0f month warranty is standard.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.75,
			reasoning: fmt.Sprintf("%.0f month warranty is minimal coverage.", v)}
	}},
}

var temperatureRules = []feasibilityRule{
	{func(v float64) bool { return v < -40 || v > 85 }, func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.90,
			fmt.Sprintf("Operating at %g°C is unrealistic for consumer electronics.", v),
			"Typical range: -20 to 60°C",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic}}
	}},
	{func(v float64) bool { return v < -20 || v > 60 }, func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusExaggerated, 0.75,
			fmt.Sprintf("%g°C is extreme but possible with special design.", v),
			"Most consumer electronics operate in a narrower range",
			[]string{domain.FlagExtremeConditions}}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%g°C is within normal operating range for electronics.", v)}
	}},
}

// standardPDVoltages are the USB Power Delivery fixed voltages.
var standardPDVoltages = map[float64]bool{5: true, 9: true, 12: true, 15: true, 20: true}

var voltageRules = []feasibilityRule{
	{above(20), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.90,
			fmt.Sprintf("%gV exceeds safe limits for consumer portable devices.", v),
			"USB-PD max: 20V. Higher voltages require special handling.",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic, domain.FlagSafetyConcern}}
	}},
	{func(v float64) bool { return standardPDVoltages[v] }, func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.95,
			reasoning: fmt.Sprintf("%gV is a standard USB Power Delivery voltage.", v)}
	}},
	{func(v float64) bool { return v == 5 }, func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.95,
			reasoning: fmt.Sprintf("%gV is the standard USB voltage.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.75,
			reasoning: fmt.Sprintf("%gV is non-standard but technically possible. Verify compatibility.", v)}
	}},
}

var currentRules = []feasibilityRule{
	{above(5), func(v float64) ruleOutcome {
		return ruleOutcome{domain.StatusImpossible, 0.85,
			fmt.Sprintf("%gA exceeds safe limits for portable USB devices.", v),
			"Typical USB fast charge: 3A max. Higher requires specialized cables.",
			[]string{domain.FlagImpossible, domain.FlagUnrealistic, domain.FlagSafetyConcern}}
	}},
	{atLeast(3), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.90,
			reasoning: fmt.Sprintf("%gA is fast charging current. Requires proper cables and port.", v)}
	}},
	{atLeast(1), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.95,
			reasoning: fmt.Sprintf("%gA is standard to moderate charging current.", v)}
	}},
	{otherwise(), func(v float64) ruleOutcome {
		return ruleOutcome{status: domain.StatusFeasible, confidence: 0.85,
			reasoning: fmt.Sprintf("%gA is low current, slower charging.", v)}
	}},
}

// redFlagKeywords make a buzzword claim outright impossible when present.
var redFlagKeywords = []string{
	"quantum", "miracle", "magic", "infinite", "unlimited",
	"100% guaranteed", "never fails", "perpetual", "eternal",
	"defies physics", "breakthrough", "revolutionary",
	"zero maintenance", "maintenance-free", "lasts forever",
	"impossible to break", "indestructible", "unbreakable",
}

// legitimateCerts are recognized regulatory certification marks.
var legitimateCerts = []string{"ce", "fcc", "rohs", "ul", "etl", "csa", "mfi", "iso"}

// FeasibilityEngine classifies claims against fixed physical and engineering
// constraints. All rule tables are immutable; one engine instance is shared
// across requests.
type FeasibilityEngine struct{}

// NewFeasibilityEngine creates a feasibility engine.
func NewFeasibilityEngine() *FeasibilityEngine {
	return &FeasibilityEngine{}
}

// VerifyClaims verifies each claim in order, one verification per claim.
// It never fails: missing values and unknown categories downgrade to
// low-confidence feasible verifications.
func (e *FeasibilityEngine) VerifyClaims(claims []domain.Claim) []domain.ClaimVerification {
	verifications := make([]domain.ClaimVerification, 0, len(claims))
	for _, claim := range claims {
		verifications = append(verifications, e.VerifyClaim(claim))
	}
	return verifications
}

// VerifyClaim verifies a single claim by category.
func (e *FeasibilityEngine) VerifyClaim(claim domain.Claim) domain.ClaimVerification {
	switch claim.Category {
	case domain.CategoryBatteryCapacity:
		return verifyValue(claim, batteryCapacityRules,
			"Battery capacity mentioned but value not clearly specified")
	case domain.CategoryChargingTime:
		return verifyChargingTime(claim)
	case domain.CategoryPowerOutput:
		return verifyValue(claim, powerOutputRules,
			"Power output mentioned but value not clear")
	case domain.CategoryEfficiency:
		return verifyValue(claim, efficiencyRules,
			"Efficiency mentioned but percentage not specified")
	case domain.CategorySpeed:
		return verifyValue(claim, speedRules,
			"Speed mentioned but value not clear")
	case domain.CategoryRange:
		return verifyValue(claim, rangeRules,
			"Range mentioned but value not specified")
	case domain.CategoryMarketingBuzzword:
		return verifyBuzzword(claim)
	case domain.CategoryComparative:
		return verifyComparative(claim)
	case domain.CategoryChargeCycles:
		return verifyValue(claim, chargeCycleRules,
			"Charge cycles mentioned but value not specified")
	case domain.CategoryWarranty:
		return verifyWarranty(claim)
	case domain.CategoryTemperature:
		return verifyValue(claim, temperatureRules,
			"Temperature mentioned but range not specified")
	case domain.CategoryCertifications:
		return verifyCertifications(claim)
	case domain.CategoryVoltage:
		return verifyValue(claim, voltageRules,
			"Voltage mentioned but value not specified")
	case domain.CategoryCurrent:
		return verifyValue(claim, currentRules,
			"Current mentioned but value not specified")
	default:
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusFeasible,
			confidence: 0.5,
			reasoning:  "Unable to verify - category not recognized",
		})
	}
}

// verifyValue evaluates the rules against a claim's numeric value. A missing
// value is not evidence of infeasibility; it yields a low-confidence feasible
// verdict with the category's explanatory reasoning.
func verifyValue(claim domain.Claim, rules []feasibilityRule, missingReason string) domain.ClaimVerification {
	if claim.Value == nil {
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusFeasible,
			confidence: 0.6,
			reasoning:  missingReason,
		})
	}

	v := *claim.Value
	for _, rule := range rules {
		if rule.when(v) {
			return newVerification(claim.Text, rule.verdict(v))
		}
	}

	// Tables end with a catch-all rule; this is unreachable.
	return newVerification(claim.Text, ruleOutcome{
		status:     domain.StatusFeasible,
		confidence: 0.5,
		reasoning:  "No rule matched",
	})
}

func verifyChargingTime(claim domain.Claim) domain.ClaimVerification {
	normalized := claim
	if claim.Value != nil {
		minutes := *claim.Value
		lower := strings.ToLower(claim.Text)
		if strings.Contains(lower, "hour") || strings.Contains(lower, "hr") {
			minutes *= 60
		}
		normalized.Value = &minutes
	}
	return verifyValue(normalized, chargingTimeRules,
		"Charging time mentioned but specifics unclear")
}

func verifyWarranty(claim domain.Claim) domain.ClaimVerification {
	normalized := claim
	if claim.Value != nil {
		months := *claim.Value
		lower := strings.ToLower(claim.Text)
		if strings.Contains(lower, "year") || strings.Contains(lower, "yr") {
			months *= 12
		}
		normalized.Value = &months
	}
	return verifyValue(normalized, warrantyRules,
		"Warranty mentioned but period not specified")
}

func verifyBuzzword(claim domain.Claim) domain.ClaimVerification {
	lower := strings.ToLower(claim.Text)

	for _, keyword := range redFlagKeywords {
		if strings.Contains(lower, keyword) {
			return newVerification(claim.Text, ruleOutcome{
				status:     domain.StatusImpossible,
				confidence: 0.90,
				reasoning:  fmt.Sprintf("'%s' is a red flag term. Likely marketing hype with no scientific basis.", keyword),
				details:    "Be skeptical of extraordinary claims without evidence",
				flags:      []string{domain.FlagImpossible, domain.FlagUnrealistic, domain.FlagMarketingHype},
			})
		}
	}

	if strings.Contains(lower, "ai-powered") || strings.Contains(lower, "ai powered") {
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusExaggerated,
			confidence: 0.75,
			reasoning:  "'AI-powered' is often marketing hype. True AI requires significant computational resources; this may just be simple microcontroller logic.",
			details:    "Ask: what specific AI technology, trained on what data, running what model?",
			flags:      []string{domain.FlagMarketingHype},
		})
	}

	if strings.Contains(lower, "medical-grade") || strings.Contains(lower, "medical grade") {
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusExaggerated,
			confidence: 0.80,
			reasoning:  "'Medical-grade' is a loosely regulated term. Unless FDA/CE certified, it is likely marketing.",
			details:    "True medical devices require regulatory approval and clinical testing",
		})
	}

	if strings.Contains(lower, "military-grade") || strings.Contains(lower, "military grade") {
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusExaggerated,
			confidence: 0.75,
			reasoning:  "'Military-grade' has no standard definition for consumer products. Often just means 'durable' or 'rugged'.",
			details:    "Military specifications (MIL-STD) are specific - ask which one",
		})
	}

	return newVerification(claim.Text, ruleOutcome{
		status:     domain.StatusExaggerated,
		confidence: 0.70,
		reasoning:  "Marketing buzzword detected. Claims may be exaggerated or lack substance.",
		details:    "Look for specific, measurable specifications instead of vague marketing terms",
	})
}

func verifyComparative(claim domain.Claim) domain.ClaimVerification {
	lower := strings.ToLower(claim.Text)

	if claim.Value != nil && *claim.Value > 10 {
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusExaggerated,
			confidence: 0.85,
			reasoning:  fmt.Sprintf("%gx better/faster is extremely high. Marketing exaggeration likely; comparative claims without a specific baseline are meaningless.", *claim.Value),
			details:    "Ask: compared to what? Under what conditions? Measured how?",
		})
	}

	if strings.Contains(lower, "best") || strings.Contains(lower, "fastest") || strings.Contains(lower, "most powerful") {
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusExaggerated,
			confidence: 0.80,
			reasoning:  "Superlative claims ('best', 'fastest') are subjective and usually unprovable. Marketing hyperbole.",
			details:    "Look for independent third-party testing and reviews",
		})
	}

	if claim.Value != nil && *claim.Value > 2 {
		return newVerification(claim.Text, ruleOutcome{
			status:     domain.StatusExaggerated,
			confidence: 0.75,
			reasoning:  fmt.Sprintf("%gx improvement is significant. May be true in specific scenarios but verify independently.", *claim.Value),
			details:    "Ask for details: compared to what specific product or standard?",
		})
	}

	return newVerification(claim.Text, ruleOutcome{
		status:     domain.StatusFeasible,
		confidence: 0.65,
		reasoning:  "Comparative claim made. Verify against independent benchmarks.",
		details:    "Without a baseline comparison this is hard to validate",
	})
}

func verifyCertifications(claim domain.Claim) domain.ClaimVerification {
	lower := strings.ToLower(claim.Text)

	for _, cert := range legitimateCerts {
		if strings.Contains(lower, cert) {
			return newVerification(claim.Text, ruleOutcome{
				status:     domain.StatusFeasible,
				confidence: 0.85,
				reasoning:  "Legitimate certifications mentioned. Verify on the manufacturer website.",
				details:    "Check for certification numbers and regulatory body verification",
			})
		}
	}

	return newVerification(claim.Text, ruleOutcome{
		status:     domain.StatusExaggerated,
		confidence: 0.70,
		reasoning:  "Certification claimed but unclear if legitimate. Verify independently.",
		details:    "Look for specific certification numbers and the issuing body",
	})
}

func newVerification(claimText string, out ruleOutcome) domain.ClaimVerification {
	flags := out.flags
	if flags == nil {
		flags = []string{}
	}
	return domain.ClaimVerification{
		Claim:            truncate(claimText, maxClaimLen),
		Status:           out.status,
		Confidence:       out.confidence,
		Reasoning:        out.reasoning,
		TechnicalDetails: out.details,
		Flags:            flags,
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
