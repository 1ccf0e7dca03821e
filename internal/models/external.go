package models

// Shapes of the two external provider payloads. They exist only for the
// duration of one refresh and are never persisted.

type ExternalCurrency struct {
	Code *string `json:"code"`
}

type ExternalCountry struct {
	Name       string             `json:"name"`
	Capital    *string            `json:"capital"`
	Region     *string            `json:"region"`
	Population *int64             `json:"population"`
	Flag       *string            `json:"flag"`
	Currencies []ExternalCurrency `json:"currencies"`
}

// ExchangeRateResponse is the envelope of the rate provider, keyed by the
// configured base currency.
type ExchangeRateResponse struct {
	Rates map[string]float64 `json:"rates"`
}
