package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carbo/internal/factor"
)

// Store is the Postgres implementation of matcher.Repository. Every miss is
// translated to a nil value at this boundary; sql.ErrNoRows never escapes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectFactorColumns = `
	f.id, f.nace_code, f.category, f.product_name, f.product_code,
	f.country_code, f.country_name, f.intensity_per_eur, f.intensity_per_unit,
	f.unit, f.scope, f.region, f.source, f.confidence_level,
	f.total_output, f.country_count, f.metadata, f.active, f.created_at, f.updated_at
`

// factorOrdering puts high-confidence rows first and breaks ties by recency.
const factorOrdering = `
	ORDER BY CASE f.confidence_level
		WHEN 'high' THEN 0
		WHEN 'medium' THEN 1
		WHEN 'low' THEN 2
		ELSE 3
	END, f.created_at DESC
`

func scanFactor(s scanner) (*factor.EmissionFactor, error) {
	var f factor.EmissionFactor

	var metadata []byte

	if err := s.Scan(
		&f.ID, &f.NACECode, &f.Category, &f.ProductName, &f.ProductCode,
		&f.CountryCode, &f.CountryName, &f.IntensityPerEUR, &f.IntensityPerUnit,
		&f.Unit, &f.Scope, &f.Region, &f.Source, &f.ConfidenceLevel,
		&f.TotalOutput, &f.CountryCount, &metadata, &f.Active, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &f.Metadata); err != nil {
			return nil, fmt.Errorf("decoding factor metadata: %w", err)
		}
	}

	return &f, nil
}

func (s *Store) FindFactor(ctx context.Context, naceCode, countryCode, hint string) (*factor.EmissionFactor, error) {
	query := `SELECT ` + selectFactorColumns + `
		FROM emission_factors f
		WHERE f.nace_code = $1 AND f.country_code = $2 AND f.scope = 'scope3' AND f.active`

	args := []any{naceCode, countryCode}

	if hint != "" {
		query += ` AND f.product_name ILIKE '%' || $3 || '%'`

		args = append(args, hint)
	}

	query += factorOrdering + ` LIMIT 1`

	f, err := scanFactor(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding factor: %w", err)
	}

	return f, nil
}

func (s *Store) FindFactors(ctx context.Context, naceCode, countryCode string) ([]*factor.EmissionFactor, error) {
	query := `SELECT ` + selectFactorColumns + `
		FROM emission_factors f
		WHERE f.nace_code = $1 AND f.country_code = $2 AND f.scope = 'scope3' AND f.active` +
		factorOrdering

	return s.queryFactors(ctx, query, naceCode, countryCode)
}

func (s *Store) FindFactorsByCountries(ctx context.Context, naceCode string, countryCodes []string) ([]*factor.EmissionFactor, error) {
	query := `SELECT ` + selectFactorColumns + `
		FROM emission_factors f
		WHERE f.nace_code = $1 AND f.country_code = ANY($2) AND f.scope = 'scope3' AND f.active` +
		factorOrdering

	return s.queryFactors(ctx, query, naceCode, countryCodes)
}

func (s *Store) queryFactors(ctx context.Context, query string, args ...any) ([]*factor.EmissionFactor, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing factors: %w", err)
	}
	defer rows.Close()

	var factors []*factor.EmissionFactor

	for rows.Next() {
		f, err := scanFactor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning factor: %w", err)
		}

		factors = append(factors, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating factor rows: %w", err)
	}

	return factors, nil
}

func (s *Store) GetFactor(ctx context.Context, id uuid.UUID) (*factor.EmissionFactor, error) {
	query := `SELECT ` + selectFactorColumns + `
		FROM emission_factors f
		WHERE f.id = $1 AND f.active`

	f, err := scanFactor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting factor: %w", err)
	}

	return f, nil
}

func (s *Store) FindAggregate(ctx context.Context, naceCode string) (*factor.NACEAggregate, error) {
	query := `
		SELECT nace_code, scope1_intensity, scope2_intensity, scope3_intensity,
			country_count, source, updated_at
		FROM nace_aggregates
		WHERE nace_code = $1
	`

	var agg factor.NACEAggregate

	err := s.db.QueryRowContext(ctx, query, naceCode).Scan(
		&agg.NACECode, &agg.Scope1Intensity, &agg.Scope2Intensity, &agg.Scope3Intensity,
		&agg.CountryCount, &agg.Source, &agg.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding aggregate: %w", err)
	}

	return &agg, nil
}

func (s *Store) FindVATEntry(ctx context.Context, vatNumber string) (*factor.VATCacheEntry, error) {
	query := `
		SELECT vat_number, valid, company_name, nace_code, country_code, cached_at
		FROM vat_cache
		WHERE vat_number = $1
	`

	var entry factor.VATCacheEntry

	err := s.db.QueryRowContext(ctx, query, vatNumber).Scan(
		&entry.VATNumber, &entry.Valid, &entry.CompanyName,
		&entry.NACECode, &entry.CountryCode, &entry.CachedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding vat cache entry: %w", err)
	}

	return &entry, nil
}

func (s *Store) FindAccountMapping(ctx context.Context, companyID uuid.UUID, accountCode string) (*factor.AccountMapping, error) {
	query := `
		SELECT id, company_id, account_code, nace_code, factor_id, description, created_at
		FROM account_mappings
		WHERE company_id = $1 AND account_code = $2
	`

	var m factor.AccountMapping

	err := s.db.QueryRowContext(ctx, query, companyID, accountCode).Scan(
		&m.ID, &m.CompanyID, &m.AccountCode, &m.NACECode,
		&m.FactorID, &m.Description, &m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding account mapping: %w", err)
	}

	return &m, nil
}

func (s *Store) FindSupplierMapping(ctx context.Context, normalizedName string) (*factor.SupplierMapping, error) {
	query := `
		SELECT id, normalized_name, nace_code, country_code, usage_count, source, created_at, updated_at
		FROM supplier_mappings
		WHERE normalized_name = $1
		ORDER BY usage_count DESC, created_at DESC
		LIMIT 1
	`

	var m factor.SupplierMapping

	err := s.db.QueryRowContext(ctx, query, normalizedName).Scan(
		&m.ID, &m.NormalizedName, &m.NACECode, &m.CountryCode,
		&m.UsageCount, &m.Source, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding supplier mapping: %w", err)
	}

	return &m, nil
}

func (s *Store) IncrementSupplierUsage(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE supplier_mappings
		SET usage_count = usage_count + 1, updated_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("incrementing supplier usage: %w", err)
	}

	return nil
}
