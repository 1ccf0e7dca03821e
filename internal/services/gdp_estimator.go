package services

import "math/rand"

// EstimateGDP derives the (exchange_rate, estimated_gdp) pair for one
// country. The policy is deliberately asymmetric:
//
//   - no currency code: GDP is defined as exactly 0, not unknown
//   - code absent from the rate table, or rate <= 0: both unknown
//   - positive rate: estimated_gdp = population * multiplier / rate, with the
//     multiplier drawn uniformly from [1000, 2000] on every call
//
// The random multiplier makes the estimate non-reproducible across refreshes
// on purpose; it stands in for a real economic model. Do not replace it with
// a deterministic formula without confirming with the data owner.
func EstimateGDP(population int64, currencyCode *string, rates map[string]float64) (*float64, *float64) {
	if currencyCode == nil {
		zero := 0.0
		return nil, &zero
	}

	rate, ok := rates[*currencyCode]
	if !ok || rate <= 0 {
		return nil, nil
	}

	multiplier := 1000.0 + rand.Float64()*1000.0
	estimate := float64(population) * multiplier / rate
	return &rate, &estimate
}
