package matcher

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carbo/internal/factor"
	"github.com/MrJamesThe3rd/carbo/internal/transaction"
)

//go:generate mockgen -source=matcher.go -destination=repository_mock.go -package=matcher

// Repository is the data-access capability the matcher depends on. A miss is
// a nil value with a nil error; a non-nil error means the lookup itself
// failed and aborts the match in progress.
type Repository interface {
	// FindFactor returns one active supply-chain factor for the NACE code
	// and country, optionally narrowed to products whose name contains hint.
	// Result ordering within the candidate set is the repository's call.
	FindFactor(ctx context.Context, naceCode, countryCode, hint string) (*factor.EmissionFactor, error)
	// FindFactors returns all active supply-chain factors for the NACE code
	// and country.
	FindFactors(ctx context.Context, naceCode, countryCode string) ([]*factor.EmissionFactor, error)
	// FindFactorsByCountries returns all active supply-chain factors for the
	// NACE code across the given countries.
	FindFactorsByCountries(ctx context.Context, naceCode string, countryCodes []string) ([]*factor.EmissionFactor, error)
	GetFactor(ctx context.Context, id uuid.UUID) (*factor.EmissionFactor, error)
	FindAggregate(ctx context.Context, naceCode string) (*factor.NACEAggregate, error)
	FindVATEntry(ctx context.Context, vatNumber string) (*factor.VATCacheEntry, error)
	FindAccountMapping(ctx context.Context, companyID uuid.UUID, accountCode string) (*factor.AccountMapping, error)
	FindSupplierMapping(ctx context.Context, normalizedName string) (*factor.SupplierMapping, error)
	IncrementSupplierUsage(ctx context.Context, id uuid.UUID) error
}

// Tier is the specificity level of a match, 1 (exact) to 4 (global sector
// average). TierNone marks an unmatched transaction.
type Tier int

const (
	TierNone           Tier = 0
	TierExact          Tier = 1
	TierCountryAverage Tier = 2
	TierRegionAverage  Tier = 3
	TierSectorAverage  Tier = 4
)

// Method names the strategy that produced a match.
type Method string

const (
	MethodVAT           Method = "vat_lookup"
	MethodAccount       Method = "account_mapping"
	MethodAccountDirect Method = "account_direct"
	MethodSupplier      Method = "supplier_name"
	MethodNone          Method = "none"
)

// MatchResult is the outcome of matching one transaction. It is built once
// and never mutated afterwards. An unmatched transaction carries TierNone,
// MethodNone and zero confidence.
type MatchResult struct {
	Factor          *factor.EmissionFactor
	NACECode        *string
	CountryCode     *string
	ProductCode     *string
	Confidence      float64
	Tier            Tier
	Method          Method
	Reasoning       string
	FallbackApplied bool
	Emissions       *float64 // kgCO2e, set only for EUR amounts
}

// Matched reports whether a factor was resolved at any tier.
func (r *MatchResult) Matched() bool { return r.Tier != TierNone }

const reasonNoMatch = "no strategy produced a usable factor; manual assignment required"

// Service matches transactions to emission factors by trying the VAT,
// account-code and supplier-name strategies in that fixed order.
type Service struct {
	repo       Repository
	cfg        Config
	strategies []strategy
}

func NewService(repo Repository, cfg Config) *Service {
	s := &Service{repo: repo, cfg: cfg}
	s.strategies = []strategy{
		&vatStrategy{svc: s},
		&accountStrategy{svc: s},
		&supplierStrategy{svc: s},
	}

	return s
}

// Config returns the matching constants the service was built with.
func (s *Service) Config() Config { return s.cfg }

// MatchTransaction resolves the best available emission factor for one
// transaction. companyID scopes the account-code strategy; without it that
// strategy is skipped. Repository failures abort the match and propagate; a
// plain miss never does.
func (s *Service) MatchTransaction(ctx context.Context, tx *transaction.Transaction, companyID *uuid.UUID) (*MatchResult, error) {
	var hints []string
	if tx.Description != nil {
		hints = ExtractProductHints(*tx.Description)
	}

	for _, strat := range s.strategies {
		res, err := strat.attempt(ctx, tx, companyID, hints)
		if err != nil {
			return nil, fmt.Errorf("%s strategy: %w", strat.name(), err)
		}

		if res == nil {
			continue
		}

		s.applyEmissions(tx, res)

		return res, nil
	}

	return &MatchResult{
		Method:    MethodNone,
		Reasoning: reasonNoMatch,
	}, nil
}

// resolve runs the tier resolver for a candidate NACE code and assembles the
// final result. A nil result means the candidate had no factor at any tier,
// so the next strategy should get its turn.
func (s *Service) resolve(ctx context.Context, method Method, base float64, prefix, naceCode string, countryCode *string, hints []string) (*MatchResult, error) {
	resolution, err := s.ResolveFactor(ctx, naceCode, countryCode, hints)
	if err != nil {
		return nil, err
	}

	if resolution == nil {
		return nil, nil
	}

	f := resolution.Factor

	return &MatchResult{
		Factor:          f,
		NACECode:        f.NACECode,
		CountryCode:     f.CountryCode,
		ProductCode:     f.ProductCode,
		Confidence:      s.cfg.Confidence(base, resolution.Tier),
		Tier:            resolution.Tier,
		Method:          method,
		Reasoning:       prefix + " → " + resolution.Reasoning,
		FallbackApplied: resolution.Tier != TierExact,
	}, nil
}

// applyEmissions fills in the estimated emissions for EUR amounts. Foreign
// currencies need a caller-supplied exchange rate, so they stay nil here.
func (s *Service) applyEmissions(tx *transaction.Transaction, res *MatchResult) {
	if res.Factor == nil {
		return
	}

	currency := tx.CurrencyOrDefault()
	if currency != BaseCurrency {
		return
	}

	emissions, err := CalculateEmissions(tx.Amount, currency, nil, res.Factor.IntensityPerEUR)
	if err != nil {
		return
	}

	res.Emissions = &emissions
}

// BatchOutcome carries per-transaction match results keyed by transaction
// id. Failed holds transactions whose repository lookups errored; they are
// absent from Results, and one failure never aborts the rest of the batch.
type BatchOutcome struct {
	Results map[uuid.UUID]*MatchResult
	Failed  map[uuid.UUID]error
}

// MatchBatch matches a collection of transactions in a plain sequential
// loop. Transactions share no state beyond the repository, so callers that
// need throughput can shard the input and run several batches concurrently.
func (s *Service) MatchBatch(ctx context.Context, txs []*transaction.Transaction, companyID *uuid.UUID) *BatchOutcome {
	out := &BatchOutcome{
		Results: make(map[uuid.UUID]*MatchResult, len(txs)),
		Failed:  make(map[uuid.UUID]error),
	}

	for _, tx := range txs {
		res, err := s.MatchTransaction(ctx, tx, companyID)
		if err != nil {
			out.Failed[tx.ID] = err
			continue
		}

		out.Results[tx.ID] = res
	}

	return out
}
