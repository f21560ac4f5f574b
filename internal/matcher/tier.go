package matcher

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/carbo/internal/factor"
)

// euCountryCodes is the fixed member-state set behind the region-average
// tier.
var euCountryCodes = []string{
	"AT", "BE", "BG", "HR", "CY", "CZ", "DK", "EE", "FI", "FR",
	"DE", "GR", "HU", "IE", "IT", "LV", "LT", "LU", "MT", "NL",
	"PL", "PT", "RO", "SK", "SI", "ES", "SE",
}

// Resolution is the outcome of the tier walk: the factor, the tier it came
// from, and a human-readable account of why.
type Resolution struct {
	Factor    *factor.EmissionFactor
	Tier      Tier
	Reasoning string
}

// ResolveFactor finds the most specific factor available for a NACE code,
// walking four decreasing-specificity tiers in order and stopping at the
// first hit: exact product/country match, country average, EU average,
// global sector average. A nil resolution with a nil error means the code
// has no factor anywhere in the catalog; misses are never errors.
func (s *Service) ResolveFactor(ctx context.Context, naceCode string, countryCode *string, hints []string) (*Resolution, error) {
	if countryCode != nil && *countryCode != "" {
		res, err := s.resolveExact(ctx, naceCode, *countryCode, hints)
		if err != nil || res != nil {
			return res, err
		}

		res, err = s.resolveCountryAverage(ctx, naceCode, *countryCode)
		if err != nil || res != nil {
			return res, err
		}
	}

	res, err := s.resolveRegionAverage(ctx, naceCode)
	if err != nil || res != nil {
		return res, err
	}

	return s.resolveSectorAverage(ctx, naceCode)
}

// resolveExact tries each product hint in scan order before falling back to
// an unhinted country lookup. First hit wins; no secondary ranking beyond
// what the repository returns.
func (s *Service) resolveExact(ctx context.Context, naceCode, countryCode string, hints []string) (*Resolution, error) {
	for _, hint := range hints {
		f, err := s.repo.FindFactor(ctx, naceCode, countryCode, hint)
		if err != nil {
			return nil, fmt.Errorf("tier 1 lookup: %w", err)
		}

		if f != nil {
			return &Resolution{
				Factor: f,
				Tier:   TierExact,
				Reasoning: fmt.Sprintf("exact factor for NACE %s in %s matching product hint %q",
					naceCode, countryCode, hint),
			}, nil
		}
	}

	f, err := s.repo.FindFactor(ctx, naceCode, countryCode, "")
	if err != nil {
		return nil, fmt.Errorf("tier 1 lookup: %w", err)
	}

	if f == nil {
		return nil, nil
	}

	return &Resolution{
		Factor:    f,
		Tier:      TierExact,
		Reasoning: fmt.Sprintf("exact factor for NACE %s in %s", naceCode, countryCode),
	}, nil
}

func (s *Service) resolveCountryAverage(ctx context.Context, naceCode, countryCode string) (*Resolution, error) {
	factors, err := s.repo.FindFactors(ctx, naceCode, countryCode)
	if err != nil {
		return nil, fmt.Errorf("tier 2 lookup: %w", err)
	}

	if len(factors) == 0 {
		return nil, nil
	}

	reason := fmt.Sprintf("no exact product factor; averaged %d factors for NACE %s in %s",
		len(factors), naceCode, countryCode)
	label := fmt.Sprintf("Country average (%d factors)", len(factors))
	f := synthesizeAverage(factors, TierCountryAverage, label, reason)

	return &Resolution{Factor: f, Tier: TierCountryAverage, Reasoning: reason}, nil
}

func (s *Service) resolveRegionAverage(ctx context.Context, naceCode string) (*Resolution, error) {
	factors, err := s.repo.FindFactorsByCountries(ctx, naceCode, euCountryCodes)
	if err != nil {
		return nil, fmt.Errorf("tier 3 lookup: %w", err)
	}

	if len(factors) == 0 {
		return nil, nil
	}

	reason := fmt.Sprintf("no country-level factor; averaged %d EU factors for NACE %s",
		len(factors), naceCode)
	label := fmt.Sprintf("EU average (%d factors)", len(factors))
	f := synthesizeAverage(factors, TierRegionAverage, label, reason)

	code := "EU"
	name := "European Union (Average)"
	f.CountryCode = &code
	f.CountryName = &name

	return &Resolution{Factor: f, Tier: TierRegionAverage, Reasoning: reason}, nil
}

func (s *Service) resolveSectorAverage(ctx context.Context, naceCode string) (*Resolution, error) {
	agg, err := s.repo.FindAggregate(ctx, naceCode)
	if err != nil {
		return nil, fmt.Errorf("tier 4 lookup: %w", err)
	}

	if agg == nil {
		return nil, nil
	}

	reason := fmt.Sprintf("no regional factor; global sector average for NACE %s", naceCode)

	var (
		code         = agg.NACECode
		countryCode  = "XX"
		countryName  = "Global Average"
		label        = "Global sector average"
		scope        = factor.ScopeSupplyChain
		low          = factor.ConfidenceLow
		countryCount = agg.CountryCount
	)

	f := &factor.EmissionFactor{
		NACECode:        &code,
		Category:        agg.NACECode,
		ProductName:     &label,
		CountryCode:     &countryCode,
		CountryName:     &countryName,
		IntensityPerEUR: agg.Scope3Intensity,
		Scope:           &scope,
		Source:          agg.Source,
		ConfidenceLevel: &low,
		CountryCount:    &countryCount,
		Active:          true,
		Metadata: map[string]any{
			"tier":            int(TierSectorAverage),
			"fallback_reason": reason,
		},
	}

	return &Resolution{Factor: f, Tier: TierSectorAverage, Reasoning: reason}, nil
}

// synthesizeAverage fabricates an in-memory factor whose intensity is the
// unweighted arithmetic mean of the given rows. Non-numeric template fields
// come from the first row, product fields are replaced by the label, and
// confidence is downgraded to medium. The value is derived, never stored.
func synthesizeAverage(factors []*factor.EmissionFactor, tier Tier, label, reason string) *factor.EmissionFactor {
	var sum float64
	for _, f := range factors {
		sum += f.IntensityPerEUR
	}

	tmpl := factors[0]
	medium := factor.ConfidenceMedium

	return &factor.EmissionFactor{
		NACECode:        tmpl.NACECode,
		Category:        tmpl.Category,
		ProductName:     &label,
		CountryCode:     tmpl.CountryCode,
		CountryName:     tmpl.CountryName,
		IntensityPerEUR: sum / float64(len(factors)),
		Scope:           tmpl.Scope,
		Region:          tmpl.Region,
		Source:          tmpl.Source,
		ConfidenceLevel: &medium,
		Active:          true,
		Metadata: map[string]any{
			"tier":            int(tier),
			"averaged_count":  len(factors),
			"fallback_reason": reason,
		},
	}
}
