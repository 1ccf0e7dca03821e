package services

import (
	"country-service/internal/config"
	"country-service/internal/models"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// CountryFetcher talks to the two external providers: the country catalog
// source and the exchange-rate source. Failures are total; a malformed
// payload is reported the same way as a network error. Retrying is the
// caller's decision.
type CountryFetcher struct {
	cfg    config.ExternalSourceConfig
	client *http.Client
}

type ICountryFetcher interface {
	FetchCountries() ([]models.ExternalCountry, error)
	FetchExchangeRates() (map[string]float64, error)
}

func NewCountryFetcher(cfg config.ExternalSourceConfig) ICountryFetcher {
	return &CountryFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.ExternalTimeoutMS) * time.Millisecond,
		},
	}
}

func (f *CountryFetcher) FetchCountries() ([]models.ExternalCountry, error) {
	body, err := f.get(f.cfg.CountriesURL)
	if err != nil {
		return nil, fmt.Errorf("%w: could not fetch country catalog: %v", models.ErrExternalUnavailable, err)
	}

	var countries []models.ExternalCountry
	if err := json.Unmarshal(body, &countries); err != nil {
		slog.Error("Failed to parse country catalog payload", "error", err)
		return nil, fmt.Errorf("%w: could not parse country catalog: %v", models.ErrExternalUnavailable, err)
	}
	return countries, nil
}

func (f *CountryFetcher) FetchExchangeRates() (map[string]float64, error) {
	body, err := f.get(f.cfg.RatesURL)
	if err != nil {
		return nil, fmt.Errorf("%w: could not fetch exchange rates: %v", models.ErrExternalUnavailable, err)
	}

	var rates models.ExchangeRateResponse
	if err := json.Unmarshal(body, &rates); err != nil {
		slog.Error("Failed to parse exchange rate payload", "error", err)
		return nil, fmt.Errorf("%w: could not parse exchange rates: %v", models.ErrExternalUnavailable, err)
	}
	if rates.Rates == nil {
		return nil, fmt.Errorf("%w: exchange rate payload missing rates table", models.ErrExternalUnavailable)
	}
	return rates.Rates, nil
}

func (f *CountryFetcher) get(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		slog.Error("External request failed", "url", url, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("Failed to read external response body", "url", url, "error", err)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("External source returned non-200 status",
			"url", url,
			"status", resp.StatusCode)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
