package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is a single accounting entry to be matched against the
// emission-factor catalog. It is owned by the caller and never mutated by
// the matcher; amounts are passed through unvalidated.
type Transaction struct {
	ID              uuid.UUID
	SupplierName    string
	VATNumber       *string
	AccountCode     *string
	Amount          float64
	Currency        string // empty means EUR
	Description     *string
	SupplierCountry *string // two-letter code, if the caller knows it
	CategoryHint    *string
	Date            time.Time
}

// CurrencyOrDefault returns the transaction currency, defaulting to EUR.
func (t *Transaction) CurrencyOrDefault() string {
	if t.Currency == "" {
		return "EUR"
	}

	return t.Currency
}
