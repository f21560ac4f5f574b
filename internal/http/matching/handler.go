package matching

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/carbo/internal/factor"
	"github.com/MrJamesThe3rd/carbo/internal/http/auth"
	"github.com/MrJamesThe3rd/carbo/internal/matcher"
	"github.com/MrJamesThe3rd/carbo/internal/transaction"
)

type Handler struct {
	svc *matcher.Service
}

func NewHandler(svc *matcher.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/match", h.match)
	r.Post("/batch", h.batch)
	r.Get("/config", h.config)
}

type transactionRequest struct {
	ID              uuid.UUID `json:"id"`
	SupplierName    string    `json:"supplier_name"`
	VATNumber       *string   `json:"vat_number,omitempty"`
	AccountCode     *string   `json:"account_code,omitempty"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency,omitempty"`
	Description     *string   `json:"description,omitempty"`
	SupplierCountry *string   `json:"supplier_country,omitempty"`
	CategoryHint    *string   `json:"category_hint,omitempty"`
	Date            time.Time `json:"date,omitzero"`
}

func (r *transactionRequest) toTransaction() *transaction.Transaction {
	id := r.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &transaction.Transaction{
		ID:              id,
		SupplierName:    r.SupplierName,
		VATNumber:       r.VATNumber,
		AccountCode:     r.AccountCode,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Description:     r.Description,
		SupplierCountry: r.SupplierCountry,
		CategoryHint:    r.CategoryHint,
		Date:            r.Date,
	}
}

type factorResponse struct {
	ID              uuid.UUID               `json:"id,omitzero"`
	NACECode        *string                 `json:"nace_code"`
	Category        string                  `json:"category"`
	ProductName     *string                 `json:"product_name"`
	ProductCode     *string                 `json:"product_code"`
	CountryCode     *string                 `json:"country_code"`
	CountryName     *string                 `json:"country_name"`
	IntensityPerEUR float64                 `json:"intensity_per_eur"`
	Scope           *factor.Scope           `json:"scope"`
	Source          string                  `json:"source"`
	ConfidenceLevel *factor.ConfidenceLevel `json:"confidence_level"`
	Metadata        map[string]any          `json:"metadata,omitempty"`
}

type matchResponse struct {
	Factor          *factorResponse `json:"factor"`
	NACECode        *string         `json:"nace_code"`
	CountryCode     *string         `json:"country_code"`
	ProductCode     *string         `json:"product_code"`
	Confidence      float64         `json:"confidence"`
	Tier            *int            `json:"tier"`
	Method          matcher.Method  `json:"method"`
	Reasoning       string          `json:"reasoning"`
	FallbackApplied bool            `json:"fallback_applied"`
	Emissions       *float64        `json:"emissions_kg_co2e"`
}

func toResponse(res *matcher.MatchResult) matchResponse {
	out := matchResponse{
		NACECode:        res.NACECode,
		CountryCode:     res.CountryCode,
		ProductCode:     res.ProductCode,
		Confidence:      res.Confidence,
		Method:          res.Method,
		Reasoning:       res.Reasoning,
		FallbackApplied: res.FallbackApplied,
		Emissions:       res.Emissions,
	}

	if res.Matched() {
		tier := int(res.Tier)
		out.Tier = &tier
	}

	if f := res.Factor; f != nil {
		out.Factor = &factorResponse{
			ID:              f.ID,
			NACECode:        f.NACECode,
			Category:        f.Category,
			ProductName:     f.ProductName,
			ProductCode:     f.ProductCode,
			CountryCode:     f.CountryCode,
			CountryName:     f.CountryName,
			IntensityPerEUR: f.IntensityPerEUR,
			Scope:           f.Scope,
			Source:          f.Source,
			ConfidenceLevel: f.ConfidenceLevel,
			Metadata:        f.Metadata,
		}
	}

	return out
}

func (h *Handler) match(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.SupplierName == "" {
		http.Error(w, "supplier_name is required", http.StatusBadRequest)
		return
	}

	res, err := h.svc.MatchTransaction(r.Context(), req.toTransaction(), auth.CompanyID(r.Context()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type batchRequest struct {
	Transactions []transactionRequest `json:"transactions"`
}

type batchResponse struct {
	Results map[uuid.UUID]matchResponse `json:"results"`
	Errors  map[uuid.UUID]string        `json:"errors,omitempty"`
	Stats   *matcher.Stats              `json:"stats,omitempty"`
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Transactions) == 0 {
		http.Error(w, "transactions must not be empty", http.StatusBadRequest)
		return
	}

	txs := make([]*transaction.Transaction, 0, len(req.Transactions))

	for _, t := range req.Transactions {
		if t.SupplierName == "" {
			http.Error(w, "supplier_name is required on every transaction", http.StatusBadRequest)
			return
		}

		txs = append(txs, t.toTransaction())
	}

	outcome := h.svc.MatchBatch(r.Context(), txs, auth.CompanyID(r.Context()))

	resp := batchResponse{
		Results: make(map[uuid.UUID]matchResponse, len(outcome.Results)),
	}

	for id, res := range outcome.Results {
		resp.Results[id] = toResponse(res)
	}

	if len(outcome.Failed) > 0 {
		resp.Errors = make(map[uuid.UUID]string, len(outcome.Failed))
		for id, err := range outcome.Failed {
			resp.Errors[id] = err.Error()
		}
	}

	// ComputeStats divides by the result count; skip it when every
	// transaction failed.
	if len(outcome.Results) > 0 {
		stats := matcher.ComputeStats(outcome.Results)
		resp.Stats = &stats
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type configResponse struct {
	VATConfidence      float64    `json:"vat_confidence"`
	AccountConfidence  float64    `json:"account_confidence"`
	SupplierConfidence float64    `json:"supplier_confidence"`
	Tier2Penalty       float64    `json:"tier2_penalty"`
	Tier3Penalty       float64    `json:"tier3_penalty"`
	Tier4Penalty       float64    `json:"tier4_penalty"`
	TierFloors         [4]float64 `json:"tier_floors"`
	LearningEnabled    bool       `json:"learning_enabled"`
	VATCacheEnabled    bool       `json:"vat_cache_enabled"`
	CacheTTL           string     `json:"cache_ttl"`
}

func (h *Handler) config(w http.ResponseWriter, r *http.Request) {
	cfg := h.svc.Config()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(configResponse{
		VATConfidence:      cfg.VATConfidence,
		AccountConfidence:  cfg.AccountConfidence,
		SupplierConfidence: cfg.SupplierConfidence,
		Tier2Penalty:       cfg.Tier2Penalty,
		Tier3Penalty:       cfg.Tier3Penalty,
		Tier4Penalty:       cfg.Tier4Penalty,
		TierFloors:         cfg.TierFloors,
		LearningEnabled:    cfg.LearningEnabled,
		VATCacheEnabled:    cfg.VATCacheEnabled,
		CacheTTL:           cfg.CacheTTL.String(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
