package factor

import (
	"time"

	"github.com/google/uuid"
)

// Scope identifies the GHG Protocol emissions scope a factor covers.
type Scope string

const (
	ScopeDirect      Scope = "scope1"
	ScopeEnergy      Scope = "scope2"
	ScopeSupplyChain Scope = "scope3"
)

// ConfidenceLevel grades the reliability of a catalog entry.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// EmissionFactor is a catalog entry mapping an economic activity to an
// emission intensity. Aggregated rows leave the product and country columns
// nil; the matcher also builds factor values in memory when it averages
// catalog rows, and those are never persisted.
type EmissionFactor struct {
	ID               uuid.UUID
	NACECode         *string
	Category         string
	ProductName      *string
	ProductCode      *string // Exiobase-style product identifier
	CountryCode      *string
	CountryName      *string
	IntensityPerEUR  float64 // kgCO2e per EUR spent; never negative
	IntensityPerUnit *float64
	Unit             *string
	Scope            *Scope
	Region           *string
	Source           string
	ConfidenceLevel  *ConfidenceLevel
	TotalOutput      *float64
	CountryCount     *int
	Metadata         map[string]any
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// NACEAggregate is a pre-computed sector-wide average kept in its own table,
// used as the last-resort fallback when no per-country factor exists.
type NACEAggregate struct {
	NACECode        string
	Scope1Intensity *float64
	Scope2Intensity *float64
	Scope3Intensity float64
	CountryCount    int
	Source          string
	UpdatedAt       time.Time
}

// VATCacheEntry is a cached result from the external VAT registry. Validity
// and eviction are owned by the caching collaborator.
type VATCacheEntry struct {
	VATNumber   string
	Valid       bool
	CompanyName *string
	NACECode    *string
	CountryCode *string
	CachedAt    time.Time
}

// MappingSource records how a learned mapping entered the system.
type MappingSource string

const (
	SourceManual      MappingSource = "manual"
	SourceAISuggested MappingSource = "ai_suggested"
	SourceCrowd       MappingSource = "crowd"
	SourceVerified    MappingSource = "verified"
)

// SupplierMapping is a learned association between a normalized supplier
// name and a NACE code. UsageCount is bumped every time the mapping wins a
// match, so popular mappings sort first on lookup.
type SupplierMapping struct {
	ID             uuid.UUID
	NormalizedName string
	NACECode       string
	CountryCode    *string
	UsageCount     int
	Source         MappingSource
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// AccountMapping links a company-scoped account code to either a NACE code
// or directly to a catalog factor. A direct factor link skips tiering.
type AccountMapping struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	AccountCode string
	NACECode    *string
	FactorID    *uuid.UUID
	Description *string
	CreatedAt   time.Time
}
