package repository

import (
	"context"
	"country-service/internal/models"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

const lastRefreshedAtKey = "last_refreshed_at"

type ICountryRepository interface {
	RefreshSnapshot(ctx context.Context, countries []models.Country, refreshedAt time.Time) (inserted int, updated int, err error)
	ListCountries(params models.ListCountriesParams) ([]models.Country, error)
	GetCountryByName(name string) (*models.Country, error)
	DeleteCountryByName(name string) error
	CountCountries() (int64, error)
	TopCountriesByGDP(n int) ([]models.Country, error)
	GetLastRefreshedAt() (*string, error)
}

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) ICountryRepository {
	return &CountryRepository{db: db}
}

// upsertQuery writes one country keyed case-insensitively by name. The
// RETURNING clause reports whether the row was newly created (xmax = 0) or
// overwrote an existing one, so insert/update counting comes from the store
// itself and stays correct under concurrent refreshes.
const upsertQuery = `
	INSERT INTO countries (
		name, capital, region, population, currency_code,
		exchange_rate, estimated_gdp, flag_url, last_refreshed_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT ((lower(name))) DO UPDATE SET
		name = EXCLUDED.name,
		capital = EXCLUDED.capital,
		region = EXCLUDED.region,
		population = EXCLUDED.population,
		currency_code = EXCLUDED.currency_code,
		exchange_rate = EXCLUDED.exchange_rate,
		estimated_gdp = EXCLUDED.estimated_gdp,
		flag_url = EXCLUDED.flag_url,
		last_refreshed_at = EXCLUDED.last_refreshed_at
	RETURNING (xmax = 0) AS inserted`

// RefreshSnapshot upserts the whole fetched batch and the provenance record
// in a single transaction. Every row and the provenance value carry the same
// refreshedAt instant. Any failure rolls the whole batch back.
func (r *CountryRepository) RefreshSnapshot(ctx context.Context, countries []models.Country, refreshedAt time.Time) (int, int, error) {
	slog.Info("Refreshing country snapshot", "count", len(countries))
	start := time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		slog.Error("Failed to begin refresh transaction", "error", err)
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	updated := 0
	for _, c := range countries {
		var wasInserted bool
		err := tx.QueryRowxContext(ctx, upsertQuery,
			c.Name, c.Capital, c.Region, c.Population, c.CurrencyCode,
			c.ExchangeRate, c.EstimatedGDP, c.FlagURL, refreshedAt,
		).Scan(&wasInserted)
		if err != nil {
			slog.Error("Failed to upsert country", "name", c.Name, "error", err)
			return 0, 0, fmt.Errorf("failed to upsert country %s: %w", c.Name, err)
		}
		if wasInserted {
			inserted++
		} else {
			updated++
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO app_meta (k, v) VALUES ($1, $2)
		 ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v`,
		lastRefreshedAtKey, refreshedAt.Format(time.RFC3339))
	if err != nil {
		slog.Error("Failed to update refresh provenance", "error", err)
		return 0, 0, fmt.Errorf("failed to update refresh provenance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("Failed to commit refresh transaction", "error", err)
		return 0, 0, fmt.Errorf("failed to commit refresh transaction: %w", err)
	}

	slog.Info("Successfully refreshed country snapshot",
		"inserted", inserted,
		"updated", updated,
		"duration", time.Since(start))
	return inserted, updated, nil
}

func (r *CountryRepository) ListCountries(params models.ListCountriesParams) ([]models.Country, error) {
	query := `
		SELECT id, name, capital, region, population, currency_code,
		       exchange_rate, estimated_gdp, flag_url, last_refreshed_at
		FROM countries WHERE 1=1`
	args := []any{}
	argPos := 1

	if params.Region != nil {
		query += fmt.Sprintf(" AND region = $%d", argPos)
		args = append(args, *params.Region)
		argPos++
	}
	if params.Currency != nil {
		query += fmt.Sprintf(" AND currency_code = $%d", argPos)
		args = append(args, *params.Currency)
		argPos++
	}

	// Whitelisted sort orders only; anything else falls back to insertion key.
	orderBy := map[string]string{
		models.SortGDPDesc:        " ORDER BY estimated_gdp DESC",
		models.SortGDPAsc:         " ORDER BY estimated_gdp ASC",
		models.SortNameAsc:        " ORDER BY name ASC",
		models.SortPopulationDesc: " ORDER BY population DESC",
	}
	if clause, ok := orderBy[params.Sort]; ok {
		query += clause
	} else {
		query += " ORDER BY id ASC"
	}

	offset := (params.Page - 1) * params.Limit
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, params.Limit, offset)

	var countries []models.Country
	if err := r.db.Select(&countries, query, args...); err != nil {
		slog.Error("Failed to list countries", "error", err)
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

func (r *CountryRepository) GetCountryByName(name string) (*models.Country, error) {
	var country models.Country
	query := `
		SELECT id, name, capital, region, population, currency_code,
		       exchange_rate, estimated_gdp, flag_url, last_refreshed_at
		FROM countries WHERE lower(name) = lower($1) LIMIT 1`
	err := r.db.Get(&country, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrNotFound
		}
		slog.Error("Failed to get country", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get country %s: %w", name, err)
	}
	return &country, nil
}

func (r *CountryRepository) DeleteCountryByName(name string) error {
	res, err := r.db.Exec(`DELETE FROM countries WHERE lower(name) = lower($1)`, name)
	if err != nil {
		slog.Error("Failed to delete country", "name", name, "error", err)
		return fmt.Errorf("failed to delete country %s: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	slog.Info("Deleted country", "name", name)
	return nil
}

func (r *CountryRepository) CountCountries() (int64, error) {
	var count int64
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM countries`); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return count, nil
}

func (r *CountryRepository) TopCountriesByGDP(n int) ([]models.Country, error) {
	var countries []models.Country
	query := `
		SELECT id, name, capital, region, population, currency_code,
		       exchange_rate, estimated_gdp, flag_url, last_refreshed_at
		FROM countries WHERE estimated_gdp IS NOT NULL
		ORDER BY estimated_gdp DESC LIMIT $1`
	if err := r.db.Select(&countries, query, n); err != nil {
		return nil, fmt.Errorf("failed to get top countries by gdp: %w", err)
	}
	return countries, nil
}

func (r *CountryRepository) GetLastRefreshedAt() (*string, error) {
	var value string
	err := r.db.Get(&value, `SELECT v FROM app_meta WHERE k = $1`, lastRefreshedAtKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh provenance: %w", err)
	}
	return &value, nil
}
