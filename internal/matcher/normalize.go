package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vatCountries are the two-letter prefixes accepted on VAT-style
// identifiers. EL is the VAT prefix for Greece; XI covers Northern Ireland.
var vatCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "CH": true, "CY": true,
	"CZ": true, "DE": true, "DK": true, "EE": true, "EL": true,
	"ES": true, "FI": true, "FR": true, "GB": true, "GR": true,
	"HR": true, "HU": true, "IE": true, "IS": true, "IT": true,
	"LI": true, "LT": true, "LU": true, "LV": true, "MT": true,
	"NL": true, "NO": true, "PL": true, "PT": true, "RO": true,
	"SE": true, "SI": true, "SK": true, "XI": true,
}

// legalSuffixes are company-form tokens stripped from the end of supplier
// names before they become learning-cache keys. Dots are removed from the
// candidate token first, so "S.A." and "SA" both match.
var legalSuffixes = map[string]bool{
	"ab": true, "ag": true, "a/s": true, "aps": true, "as": true,
	"bv": true, "co": true, "corp": true, "gmbh": true, "inc": true,
	"kg": true, "llc": true, "ltd": true, "nv": true, "oy": true,
	"oyj": true, "plc": true, "sa": true, "sarl": true, "sl": true,
	"spa": true, "srl": true, "ug": true,
}

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CountryFromIdentifier reads the country prefix off a VAT-style identifier.
// Purely syntactic: it returns nil for identifiers shorter than two
// characters or with an unknown prefix, and is knowingly unreliable for
// non-conforming identifiers.
func CountryFromIdentifier(id string) *string {
	if len(id) < 2 {
		return nil
	}

	prefix := strings.ToUpper(id[:2])
	if !vatCountries[prefix] {
		return nil
	}

	return &prefix
}

// NormalizeSupplierName lowercases, folds diacritics, trims, and strips one
// trailing legal-form token. Distinct entities sharing a short name will
// collide; that approximation is accepted for a cache key.
func NormalizeSupplierName(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}

	s := strings.TrimSpace(strings.ToLower(folded))

	if i := strings.LastIndexByte(s, ' '); i > 0 {
		last := strings.ReplaceAll(s[i+1:], ".", "")
		if legalSuffixes[s[i+1:]] || legalSuffixes[last] {
			s = strings.TrimSpace(s[:i])
		}
	}

	return s
}

// Hint keyword tables, scanned in a fixed order: energy sources first, then
// transport modes, then general sustainability terms.
var (
	energyHints = []string{
		"electricity", "natural gas", "district heating", "wind", "solar",
		"hydro", "nuclear", "coal", "biomass",
	}
	transportHints = []string{
		"flight", "air travel", "rail", "train", "shipping", "freight",
		"diesel", "petrol", "fuel",
	}
	generalHints = []string{
		"renewable", "green", "recycled", "organic", "waste",
	}
)

// ExtractProductHints pulls known product keywords out of free-form text.
// Hints only sharpen tier-1 lookups; an empty result never blocks a match.
func ExtractProductHints(description string) []string {
	if description == "" {
		return nil
	}

	text := strings.ToLower(description)

	var hints []string

	for _, group := range [][]string{energyHints, transportHints, generalHints} {
		for _, h := range group {
			if strings.Contains(text, h) {
				hints = append(hints, h)
			}
		}
	}

	return hints
}
