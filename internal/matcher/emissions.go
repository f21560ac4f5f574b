package matcher

import "fmt"

// BaseCurrency is the currency emission intensities are denominated in.
const BaseCurrency = "EUR"

// CalculateEmissions estimates kgCO2e for a spend amount: amount times
// intensity, after converting into EUR when the currency differs. No rate
// table is embedded here; foreign-currency amounts need a caller-supplied
// exchange rate into EUR.
func CalculateEmissions(amount float64, currency string, exchangeRate *float64, intensity float64) (float64, error) {
	if currency != "" && currency != BaseCurrency {
		if exchangeRate == nil {
			return 0, fmt.Errorf("no exchange rate supplied for currency %s", currency)
		}

		amount *= *exchangeRate
	}

	return amount * intensity, nil
}
