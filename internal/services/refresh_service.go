package services

import (
	"context"
	"country-service/internal/event"
	"country-service/internal/models"
	"country-service/internal/repository"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RefreshService drives one end-to-end cache refresh: fetch both external
// datasets, merge and estimate per country, replace the cached snapshot in a
// single transaction, then kick off the post-commit side effects. If either
// fetch fails the store is never touched.
type RefreshService struct {
	fetcher   ICountryFetcher
	repo      repository.ICountryRepository
	summary   ISummaryImageService
	publisher *event.CacheEventPublisher
}

type IRefreshService interface {
	RefreshCountries(ctx context.Context) (*models.RefreshResult, error)
}

// NewRefreshService wires the refresh pipeline. publisher may be nil when the
// broker is unavailable; the refresh then runs without cache events.
func NewRefreshService(fetcher ICountryFetcher, repo repository.ICountryRepository, summary ISummaryImageService, publisher *event.CacheEventPublisher) IRefreshService {
	return &RefreshService{
		fetcher:   fetcher,
		repo:      repo,
		summary:   summary,
		publisher: publisher,
	}
}

func (s *RefreshService) RefreshCountries(ctx context.Context) (*models.RefreshResult, error) {
	slog.Info("Starting country cache refresh")
	start := time.Now()

	// Both fetches must succeed before any store write begins. They have no
	// ordering dependency, so run them concurrently inside the shared
	// timeout budget.
	var (
		wg        sync.WaitGroup
		catalog   []models.ExternalCountry
		rates     map[string]float64
		fetchErrs [2]error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		catalog, fetchErrs[0] = s.fetcher.FetchCountries()
	}()
	go func() {
		defer wg.Done()
		rates, fetchErrs[1] = s.fetcher.FetchExchangeRates()
	}()
	wg.Wait()

	for _, err := range fetchErrs {
		if err != nil {
			slog.Error("External fetch failed, cache left untouched", "error", err)
			return nil, err
		}
	}

	refreshedAt := time.Now().UTC()
	countries := make([]models.Country, 0, len(catalog))
	for _, record := range catalog {
		countries = append(countries, normalizeCountry(record, rates))
	}

	inserted, updated, err := s.repo.RefreshSnapshot(ctx, countries, refreshedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	result := &models.RefreshResult{
		Inserted:        inserted,
		Updated:         updated,
		LastRefreshedAt: refreshedAt.Format(time.RFC3339),
	}

	// Post-commit side effects: best effort, never awaited, never part of
	// the refresh outcome.
	go func() {
		if err := s.summary.Generate(); err != nil {
			slog.Error("Failed to regenerate summary image", "error", err)
		}
	}()
	if s.publisher != nil {
		go func() {
			cacheEvent := event.CacheEvent{
				ID:              uuid.NewString(),
				EventType:       event.CacheRefreshed,
				Inserted:        inserted,
				Updated:         updated,
				LastRefreshedAt: result.LastRefreshedAt,
				Timestamp:       time.Now(),
			}
			if err := s.publisher.PublishEvent(context.Background(), cacheEvent); err != nil {
				slog.Error("Failed to publish cache refresh event", "error", err)
			}
		}()
	}

	slog.Info("Country cache refresh complete",
		"inserted", inserted,
		"updated", updated,
		"duration", time.Since(start))
	return result, nil
}

// normalizeCountry trims the raw catalog record, picks the first listed
// currency code, and attaches the derived estimate.
func normalizeCountry(record models.ExternalCountry, rates map[string]float64) models.Country {
	country := models.Country{
		Name:    strings.TrimSpace(record.Name),
		Capital: trimPtr(record.Capital),
		Region:  trimPtr(record.Region),
		FlagURL: trimPtr(record.Flag),
	}
	if record.Population != nil {
		country.Population = *record.Population
	}

	if len(record.Currencies) > 0 && record.Currencies[0].Code != nil {
		country.CurrencyCode = trimPtr(record.Currencies[0].Code)
	}

	country.ExchangeRate, country.EstimatedGDP = EstimateGDP(country.Population, country.CurrencyCode, rates)
	return country
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
