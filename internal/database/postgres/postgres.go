package postgres

import (
	"country-service/internal/config"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS countries (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	capital TEXT,
	region TEXT,
	population BIGINT NOT NULL DEFAULT 0,
	currency_code TEXT,
	exchange_rate DOUBLE PRECISION,
	estimated_gdp DOUBLE PRECISION,
	flag_url TEXT,
	last_refreshed_at TIMESTAMPTZ
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_countries_name_lower ON countries ((lower(name)));

CREATE TABLE IF NOT EXISTS app_meta (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
);
`

func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}

	return db, nil
}

// InitSchema creates the countries and app_meta tables if they do not exist.
// Safe to run on every startup.
func InitSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
