package matcher

import "time"

// Config carries the tunable matching constants. It is passed by value into
// NewService and never changes afterwards; DefaultConfig documents the
// production defaults.
type Config struct {
	// Base confidence per matching method.
	VATConfidence      float64
	AccountConfidence  float64
	SupplierConfidence float64

	// Penalty subtracted from the base confidence per fallback tier. Tier 1
	// never incurs a penalty.
	Tier2Penalty float64
	Tier3Penalty float64
	Tier4Penalty float64

	// TierFloors are the nominal per-tier confidence levels reported to
	// clients, indexed by tier-1. The resolver itself only applies the
	// penalties above.
	TierFloors [4]float64

	// LearningEnabled turns on the supplier-mapping usage counter.
	LearningEnabled bool

	// VATCacheEnabled turns on VAT-registry cache consultation. With it off
	// the VAT strategy can never produce a candidate.
	VATCacheEnabled bool

	// CacheTTL bounds how long the external VAT cache keeps entries. It is
	// surfaced for reporting; eviction happens in the collaborator.
	CacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		VATConfidence:      0.95,
		AccountConfidence:  0.85,
		SupplierConfidence: 0.75,
		Tier2Penalty:       0.10,
		Tier3Penalty:       0.20,
		Tier4Penalty:       0.30,
		TierFloors:         [4]float64{0.95, 0.85, 0.75, 0.65},
		LearningEnabled:    true,
		VATCacheEnabled:    true,
		CacheTTL:           30 * 24 * time.Hour,
	}
}
