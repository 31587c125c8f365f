package invoice

import "strings"

// taxRates maps "COUNTRY/REGION" to a sales-tax percentage. Canadian rates
// are combined HST/GST+PST; US entries are state base rates.
var taxRates = map[string]float64{
	"CA/ON": 13, // HST
	"CA/NB": 15, // HST
	"CA/NL": 15, // HST
	"CA/NS": 15, // HST
	"CA/PE": 15, // HST
	"CA/BC": 12, // GST + PST
	"CA/MB": 12, // GST + RST
	"CA/SK": 11, // GST + PST
	"CA/QC": 14.975,
	"CA/AB": 5, // GST only
	"CA/NT": 5,
	"CA/NU": 5,
	"CA/YT": 5,
	"US/CA": 7.25,
	"US/NY": 4,
	"US/TX": 6.25,
	"US/WA": 6.5,
	"US/FL": 6,
}

// RateFor returns the tax percentage for a jurisdiction, or 0 when the pair
// is unknown or unset. Fail-open on purpose: an unconfigured jurisdiction
// bills tax-free rather than blocking invoicing. Review before adding
// jurisdictions that must never fall through.
func RateFor(country, region string) float64 {
	country = strings.ToUpper(strings.TrimSpace(country))
	region = strings.ToUpper(strings.TrimSpace(region))
	if country == "" || region == "" {
		return 0
	}
	return taxRates[country+"/"+region]
}
