package matcher_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/carbo/internal/factor"
	"github.com/MrJamesThe3rd/carbo/internal/matcher"
	"github.com/MrJamesThe3rd/carbo/internal/transaction"
)

func newServiceWithConfig(t *testing.T, cfg matcher.Config) (*matcher.Service, *matcher.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := matcher.NewMockRepository(ctrl)

	return matcher.NewService(repo, cfg), repo
}

func TestMatchTransaction_VATTier1(t *testing.T) {
	svc, repo := newTestService(t)

	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Vattenfall AB",
		VATNumber:    new("DE123456789"),
		Amount:       2300,
		Description:  new("Monthly electricity - wind power"),
	}

	repo.EXPECT().FindVATEntry(gomock.Any(), "DE123456789").Return(&factor.VATCacheEntry{
		VATNumber: "DE123456789",
		Valid:     true,
		NACECode:  new("35.11"),
	}, nil)
	repo.EXPECT().
		FindFactor(gomock.Any(), "35.11", "DE", "electricity").
		Return(catalogFactor("35.11", "DE", 0.012), nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodVAT, res.Method)
	assert.Equal(t, matcher.TierExact, res.Tier)
	assert.InDelta(t, 0.95, res.Confidence, 1e-12)
	assert.False(t, res.FallbackApplied)
	assert.Contains(t, res.Reasoning, "VAT lookup")

	require.NotNil(t, res.Emissions)
	assert.InDelta(t, 27.6, *res.Emissions, 1e-9)
}

func TestMatchTransaction_StrategyPriorityIsStrict(t *testing.T) {
	svc, repo := newTestService(t)

	companyID := uuid.New()
	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Vattenfall AB",
		VATNumber:    new("SE556036213801"),
		AccountCode:  new("4010"),
		Amount:       100,
	}

	// The account mapping would also resolve, but the VAT strategy wins and
	// FindAccountMapping must never be called.
	repo.EXPECT().FindVATEntry(gomock.Any(), "SE556036213801").Return(&factor.VATCacheEntry{
		VATNumber: "SE556036213801",
		Valid:     true,
		NACECode:  new("35.11"),
	}, nil)
	repo.EXPECT().
		FindFactor(gomock.Any(), "35.11", "SE", "").
		Return(catalogFactor("35.11", "SE", 0.01), nil)

	res, err := svc.MatchTransaction(context.Background(), tx, &companyID)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodVAT, res.Method)
}

func TestMatchTransaction_CachedCountryUsedWhenDerivationFails(t *testing.T) {
	svc, repo := newTestService(t)

	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Acme Utilities",
		VATNumber:    new("99123456789"), // unknown prefix
		Amount:       100,
	}

	repo.EXPECT().FindVATEntry(gomock.Any(), "99123456789").Return(&factor.VATCacheEntry{
		VATNumber:   "99123456789",
		Valid:       true,
		NACECode:    new("35.11"),
		CountryCode: new("FI"),
	}, nil)
	repo.EXPECT().
		FindFactor(gomock.Any(), "35.11", "FI", "").
		Return(catalogFactor("35.11", "FI", 0.01), nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.TierExact, res.Tier)
}

func TestMatchTransaction_VATCacheDisabled(t *testing.T) {
	cfg := matcher.DefaultConfig()
	cfg.VATCacheEnabled = false
	svc, repo := newServiceWithConfig(t, cfg)

	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Unknown Vendor",
		VATNumber:    new("DE123456789"),
		Amount:       100,
	}

	// No FindVATEntry call; only the supplier strategy runs.
	repo.EXPECT().FindSupplierMapping(gomock.Any(), "unknown vendor").Return(nil, nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodNone, res.Method)
}

func TestMatchTransaction_AccountDirectLink(t *testing.T) {
	svc, repo := newTestService(t)

	companyID := uuid.New()
	factorID := uuid.New()
	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Acme Freight",
		AccountCode:  new("5810"),
		Amount:       100,
	}

	linked := catalogFactor("49.41", "DE", 0.09)
	linked.ID = factorID

	repo.EXPECT().FindAccountMapping(gomock.Any(), companyID, "5810").Return(&factor.AccountMapping{
		ID:          uuid.New(),
		CompanyID:   companyID,
		AccountCode: "5810",
		FactorID:    &factorID,
	}, nil)
	repo.EXPECT().GetFactor(gomock.Any(), factorID).Return(linked, nil)

	res, err := svc.MatchTransaction(context.Background(), tx, &companyID)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodAccountDirect, res.Method)
	assert.Equal(t, matcher.TierExact, res.Tier)
	assert.InDelta(t, 0.85, res.Confidence, 1e-12)
	assert.False(t, res.FallbackApplied)
}

func TestMatchTransaction_AccountNACETiered(t *testing.T) {
	svc, repo := newTestService(t)

	companyID := uuid.New()
	tx := &transaction.Transaction{
		ID:              uuid.New(),
		SupplierName:    "Acme Freight",
		AccountCode:     new("5810"),
		SupplierCountry: new("SE"),
		Amount:          100,
	}

	repo.EXPECT().FindAccountMapping(gomock.Any(), companyID, "5810").Return(&factor.AccountMapping{
		ID:          uuid.New(),
		CompanyID:   companyID,
		AccountCode: "5810",
		NACECode:    new("49.41"),
	}, nil)
	repo.EXPECT().FindFactor(gomock.Any(), "49.41", "SE", "").Return(nil, nil)
	repo.EXPECT().FindFactors(gomock.Any(), "49.41", "SE").Return([]*factor.EmissionFactor{
		catalogFactor("49.41", "SE", 0.08),
		catalogFactor("49.41", "SE", 0.10),
	}, nil)

	res, err := svc.MatchTransaction(context.Background(), tx, &companyID)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodAccount, res.Method)
	assert.Equal(t, matcher.TierCountryAverage, res.Tier)
	assert.InDelta(t, 0.75, res.Confidence, 1e-12)
	assert.True(t, res.FallbackApplied)
}

func TestMatchTransaction_AccountStrategyNeedsCompanyScope(t *testing.T) {
	svc, repo := newTestService(t)

	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Acme Freight",
		AccountCode:  new("5810"),
		Amount:       100,
	}

	// Without a company id the account strategy is inapplicable and only the
	// supplier strategy runs.
	repo.EXPECT().FindSupplierMapping(gomock.Any(), "acme freight").Return(nil, nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodNone, res.Method)
}

func TestMatchTransaction_SupplierMappingWithFallback(t *testing.T) {
	svc, repo := newTestService(t)

	mappingID := uuid.New()
	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Vattenfall AB",
		Amount:       100,
	}

	repo.EXPECT().FindSupplierMapping(gomock.Any(), "vattenfall").Return(&factor.SupplierMapping{
		ID:             mappingID,
		NormalizedName: "vattenfall",
		NACECode:       "35.11",
		Source:         factor.SourceVerified,
	}, nil)
	repo.EXPECT().IncrementSupplierUsage(gomock.Any(), mappingID).Return(nil)
	repo.EXPECT().FindFactorsByCountries(gomock.Any(), "35.11", gomock.Any()).Return([]*factor.EmissionFactor{
		catalogFactor("35.11", "DE", 0.02),
	}, nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodSupplier, res.Method)
	assert.Equal(t, matcher.TierRegionAverage, res.Tier)
	assert.InDelta(t, 0.55, res.Confidence, 1e-12)
	assert.True(t, res.FallbackApplied)
}

func TestMatchTransaction_LearningDisabledSkipsIncrement(t *testing.T) {
	cfg := matcher.DefaultConfig()
	cfg.LearningEnabled = false
	svc, repo := newServiceWithConfig(t, cfg)

	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Vattenfall AB",
		Amount:       100,
	}

	repo.EXPECT().FindSupplierMapping(gomock.Any(), "vattenfall").Return(&factor.SupplierMapping{
		ID:             uuid.New(),
		NormalizedName: "vattenfall",
		NACECode:       "35.11",
		CountryCode:    new("SE"),
	}, nil)
	repo.EXPECT().
		FindFactor(gomock.Any(), "35.11", "SE", "").
		Return(catalogFactor("35.11", "SE", 0.01), nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodSupplier, res.Method)
}

func TestMatchTransaction_IncrementFailureDoesNotSinkMatch(t *testing.T) {
	svc, repo := newTestService(t)

	mappingID := uuid.New()
	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Vattenfall AB",
		Amount:       100,
	}

	repo.EXPECT().FindSupplierMapping(gomock.Any(), "vattenfall").Return(&factor.SupplierMapping{
		ID:             mappingID,
		NormalizedName: "vattenfall",
		NACECode:       "35.11",
		CountryCode:    new("SE"),
	}, nil)
	repo.EXPECT().IncrementSupplierUsage(gomock.Any(), mappingID).Return(errors.New("deadlock"))
	repo.EXPECT().
		FindFactor(gomock.Any(), "35.11", "SE", "").
		Return(catalogFactor("35.11", "SE", 0.01), nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.TierExact, res.Tier)
}

func TestMatchTransaction_NoMatch(t *testing.T) {
	svc, repo := newTestService(t)

	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Totally Unknown Ltd",
		Amount:       100,
	}

	repo.EXPECT().FindSupplierMapping(gomock.Any(), "totally unknown").Return(nil, nil)

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	require.NoError(t, err)
	assert.Equal(t, matcher.MethodNone, res.Method)
	assert.Equal(t, matcher.TierNone, res.Tier)
	assert.Zero(t, res.Confidence)
	assert.False(t, res.FallbackApplied)
	assert.Nil(t, res.Factor)
	assert.Nil(t, res.NACECode)
	assert.Contains(t, res.Reasoning, "manual assignment")
}

func TestMatchTransaction_RepositoryFailurePropagates(t *testing.T) {
	svc, repo := newTestService(t)

	tx := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Vattenfall AB",
		VATNumber:    new("DE123456789"),
		Amount:       100,
	}

	repo.EXPECT().
		FindVATEntry(gomock.Any(), "DE123456789").
		Return(nil, errors.New("connection refused"))

	res, err := svc.MatchTransaction(context.Background(), tx, nil)

	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestMatchBatch_IsolatesFailures(t *testing.T) {
	svc, repo := newTestService(t)

	good := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Vattenfall AB",
		Amount:       100,
	}
	bad := &transaction.Transaction{
		ID:           uuid.New(),
		SupplierName: "Acme GmbH",
		VATNumber:    new("DE999999999"),
		Amount:       50,
	}

	repo.EXPECT().FindSupplierMapping(gomock.Any(), "vattenfall").Return(&factor.SupplierMapping{
		ID:             uuid.New(),
		NormalizedName: "vattenfall",
		NACECode:       "35.11",
		CountryCode:    new("SE"),
	}, nil)
	repo.EXPECT().IncrementSupplierUsage(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().
		FindFactor(gomock.Any(), "35.11", "SE", "").
		Return(catalogFactor("35.11", "SE", 0.01), nil)

	repo.EXPECT().
		FindVATEntry(gomock.Any(), "DE999999999").
		Return(nil, errors.New("connection refused"))

	out := svc.MatchBatch(context.Background(), []*transaction.Transaction{good, bad}, nil)

	require.Len(t, out.Results, 1)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, matcher.TierExact, out.Results[good.ID].Tier)
	assert.Error(t, out.Failed[bad.ID])
}
