package domain

// Category tags a claim with the kind of specification it asserts.
// The set is closed; anything the feasibility engine does not recognize
// falls through to a neutral low-confidence verification.
type Category string

const (
	CategoryBatteryCapacity   Category = "battery_capacity"
	CategoryChargingTime      Category = "charging_time"
	CategoryPowerOutput       Category = "power_output"
	CategorySpeed             Category = "speed"
	CategoryRange             Category = "range"
	CategoryEfficiency        Category = "efficiency"
	CategoryWeight            Category = "weight"
	CategoryStorage           Category = "capacity_storage"
	CategoryVoltage           Category = "voltage"
	CategoryCurrent           Category = "current"
	CategoryChargeCycles      Category = "charge_cycles"
	CategoryWarranty          Category = "warranty"
	CategoryTemperature       Category = "temperature"
	CategoryCertifications    Category = "certifications"
	CategoryMarketingBuzzword Category = "marketing_buzzword"
	CategoryComparative       Category = "comparative"
)

// Claim is a single extracted assertion from product text.
type Claim struct {
	Text     string   `json:"text"` // context snippet around the match
	Category Category `json:"category"`
	Value    *float64 `json:"extracted_value,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// VerificationStatus is the feasibility judgment for one claim.
type VerificationStatus string

const (
	StatusFeasible    VerificationStatus = "feasible"
	StatusExaggerated VerificationStatus = "exaggerated"
	StatusImpossible  VerificationStatus = "impossible"
)

// Flags attached to verifications. They drive scoring penalties and
// red-flag generation downstream.
const (
	FlagImpossible        = "impossible"
	FlagUnrealistic       = "unrealistic"
	FlagHighCapacity      = "high_capacity"
	FlagUnusuallyHigh     = "unusually_high"
	FlagUnsafe            = "unsafe"
	FlagSafetyConcern     = "safety_concern"
	FlagPhysicsViolation  = "physics_violation"
	FlagMarketingHype     = "marketing_hype"
	FlagExtremeConditions = "extreme_conditions"
)

// ClaimVerification is the feasibility result for a single claim.
// Exactly one verification is produced per claim, in input order.
type ClaimVerification struct {
	Claim            string             `json:"claim"` // truncated to 200 chars
	Status           VerificationStatus `json:"status"`
	Confidence       float64            `json:"confidence"` // 0-1
	Reasoning        string             `json:"reasoning"`
	TechnicalDetails string             `json:"technical_details,omitempty"`
	Flags            []string           `json:"flags"`
}

// HasFlag reports whether the verification carries the given flag.
func (v ClaimVerification) HasFlag(flag string) bool {
	for _, f := range v.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
