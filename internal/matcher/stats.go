package matcher

import (
	"fmt"

	"github.com/google/uuid"
)

// Stats summarizes the tier and confidence distribution of a result set.
type Stats struct {
	Total         int             `json:"total"`
	Matched       int             `json:"matched"`
	Unmatched     int             `json:"unmatched"`
	TierCounts    map[Tier]int    `json:"tier_counts"`
	MethodCounts  map[Method]int  `json:"method_counts"`
	MatchRate     string          `json:"match_rate"`
	AvgConfidence string          `json:"avg_confidence"`
	TierRates     map[Tier]string `json:"tier_rates"`
}

// ComputeStats aggregates match results into distribution metrics. The rate
// and average computations divide by the total: they are undefined for an
// empty input, which callers must guard against themselves.
func ComputeStats(results map[uuid.UUID]*MatchResult) Stats {
	st := Stats{
		Total:        len(results),
		TierCounts:   make(map[Tier]int, 4),
		MethodCounts: make(map[Method]int, 5),
		TierRates:    make(map[Tier]string, 4),
	}

	var confidenceSum float64

	for _, r := range results {
		confidenceSum += r.Confidence
		st.MethodCounts[r.Method]++

		if !r.Matched() {
			st.Unmatched++
			continue
		}

		st.Matched++
		st.TierCounts[r.Tier]++
	}

	total := float64(st.Total)
	st.MatchRate = fmt.Sprintf("%.1f%%", float64(st.Matched)/total*100)
	st.AvgConfidence = fmt.Sprintf("%.2f", confidenceSum/total)

	for _, tier := range []Tier{TierExact, TierCountryAverage, TierRegionAverage, TierSectorAverage} {
		st.TierRates[tier] = fmt.Sprintf("%.1f%%", float64(st.TierCounts[tier])/total*100)
	}

	return st
}
