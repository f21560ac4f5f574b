package matcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carbo/internal/transaction"
)

// strategy is one way of deriving a NACE candidate from a transaction. A
// (nil, nil) return means the strategy is inapplicable or missed, and the
// next one in priority order runs.
type strategy interface {
	name() string
	attempt(ctx context.Context, tx *transaction.Transaction, companyID *uuid.UUID, hints []string) (*MatchResult, error)
}

type vatStrategy struct {
	svc *Service
}

func (v *vatStrategy) name() string { return "vat" }

func (v *vatStrategy) attempt(ctx context.Context, tx *transaction.Transaction, _ *uuid.UUID, hints []string) (*MatchResult, error) {
	if tx.VATNumber == nil || *tx.VATNumber == "" {
		return nil, nil
	}

	if !v.svc.cfg.VATCacheEnabled {
		// The NACE candidate only ever comes from the registry cache, so
		// with the cache off this strategy can never match.
		return nil, nil
	}

	entry, err := v.svc.repo.FindVATEntry(ctx, *tx.VATNumber)
	if err != nil {
		return nil, fmt.Errorf("vat cache lookup: %w", err)
	}

	if entry == nil || !entry.Valid || entry.NACECode == nil {
		return nil, nil
	}

	// The identifier-derived country wins; the cached country is only a
	// fallback when prefix derivation fails.
	country := CountryFromIdentifier(*tx.VATNumber)
	if country == nil {
		country = entry.CountryCode
	}

	prefix := fmt.Sprintf("VAT lookup (%s)", *tx.VATNumber)

	return v.svc.resolve(ctx, MethodVAT, v.svc.cfg.VATConfidence, prefix, *entry.NACECode, country, hints)
}

type accountStrategy struct {
	svc *Service
}

func (a *accountStrategy) name() string { return "account" }

func (a *accountStrategy) attempt(ctx context.Context, tx *transaction.Transaction, companyID *uuid.UUID, hints []string) (*MatchResult, error) {
	if tx.AccountCode == nil || *tx.AccountCode == "" || companyID == nil {
		return nil, nil
	}

	mapping, err := a.svc.repo.FindAccountMapping(ctx, *companyID, *tx.AccountCode)
	if err != nil {
		return nil, fmt.Errorf("account mapping lookup: %w", err)
	}

	if mapping == nil {
		return nil, nil
	}

	if mapping.FactorID != nil {
		f, err := a.svc.repo.GetFactor(ctx, *mapping.FactorID)
		if err != nil {
			return nil, fmt.Errorf("linked factor lookup: %w", err)
		}

		if f != nil {
			return &MatchResult{
				Factor:      f,
				NACECode:    f.NACECode,
				CountryCode: f.CountryCode,
				ProductCode: f.ProductCode,
				Confidence:  a.svc.cfg.Confidence(a.svc.cfg.AccountConfidence, TierExact),
				Tier:        TierExact,
				Method:      MethodAccountDirect,
				Reasoning:   fmt.Sprintf("account %s is linked directly to factor %s", *tx.AccountCode, f.ID),
			}, nil
		}
	}

	if mapping.NACECode == nil {
		return nil, nil
	}

	prefix := fmt.Sprintf("account mapping (%s)", *tx.AccountCode)

	return a.svc.resolve(ctx, MethodAccount, a.svc.cfg.AccountConfidence, prefix, *mapping.NACECode, tx.SupplierCountry, hints)
}

type supplierStrategy struct {
	svc *Service
}

func (p *supplierStrategy) name() string { return "supplier" }

func (p *supplierStrategy) attempt(ctx context.Context, tx *transaction.Transaction, _ *uuid.UUID, hints []string) (*MatchResult, error) {
	name := NormalizeSupplierName(tx.SupplierName)
	if name == "" {
		return nil, nil
	}

	mapping, err := p.svc.repo.FindSupplierMapping(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("supplier mapping lookup: %w", err)
	}

	if mapping == nil {
		return nil, nil
	}

	if p.svc.cfg.LearningEnabled {
		// Best-effort usage bump; a failure here must not sink the match.
		if err := p.svc.repo.IncrementSupplierUsage(ctx, mapping.ID); err != nil {
			slog.Warn("failed to increment supplier mapping usage",
				"mapping_id", mapping.ID, "error", err)
		}
	}

	country := mapping.CountryCode
	if country == nil {
		country = tx.SupplierCountry
	}

	prefix := fmt.Sprintf("supplier mapping (%q)", name)

	return p.svc.resolve(ctx, MethodSupplier, p.svc.cfg.SupplierConfidence, prefix, mapping.NACECode, country, hints)
}
