package models

import "time"

// Country is one cached row of the reference table. Optional columns are
// pointers so NULLs survive the sqlx round trip.
type Country struct {
	ID              int64      `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Capital         *string    `json:"capital,omitempty" db:"capital"`
	Region          *string    `json:"region,omitempty" db:"region"`
	Population      int64      `json:"population" db:"population"`
	CurrencyCode    *string    `json:"currency_code,omitempty" db:"currency_code"`
	ExchangeRate    *float64   `json:"exchange_rate,omitempty" db:"exchange_rate"`
	EstimatedGDP    *float64   `json:"estimated_gdp,omitempty" db:"estimated_gdp"`
	FlagURL         *string    `json:"flag_url,omitempty" db:"flag_url"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at,omitempty" db:"last_refreshed_at"`
}

// RefreshResult is the response body of POST /countries/refresh.
type RefreshResult struct {
	Inserted        int    `json:"inserted"`
	Updated         int    `json:"updated"`
	LastRefreshedAt string `json:"last_refreshed_at"`
}

// CacheStatus is the response body of GET /status.
type CacheStatus struct {
	TotalCountries  int64   `json:"total_countries"`
	LastRefreshedAt *string `json:"last_refreshed_at"`
}
