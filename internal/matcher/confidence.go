package matcher

// Confidence derives the final score for a match: the method's base
// confidence minus the tier penalty, clamped to [0,1]. It is a deterministic
// function of (base, tier); no learning or history involved.
func (c Config) Confidence(base float64, tier Tier) float64 {
	switch tier {
	case TierCountryAverage:
		base -= c.Tier2Penalty
	case TierRegionAverage:
		base -= c.Tier3Penalty
	case TierSectorAverage:
		base -= c.Tier4Penalty
	}

	return clamp01(base)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
