package config

import (
	"os"
	"strconv"
)

type CountryServiceConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RabbitMQCfg RabbitMQConfig
	ExternalCfg ExternalSourceConfig
	SummaryCfg  SummaryImageConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
}

// ExternalSourceConfig carries the two provider endpoints and the shared
// timeout budget. Endpoints are overridable so tests can point the fetcher
// at local mocks.
type ExternalSourceConfig struct {
	CountriesURL      string
	RatesURL          string
	BaseCurrency      string
	ExternalTimeoutMS int
}

type SummaryImageConfig struct {
	ImagePath string
}

func New() *CountryServiceConfig {
	baseCurrency := getEnvOrDefault("BASE_CURRENCY", "USD")
	return &CountryServiceConfig{
		Port: getEnvOrDefault("COUNTRY_SERVICE_PORT", "8080"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "country_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "user"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "password"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "rabbitmq"),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		ExternalCfg: ExternalSourceConfig{
			CountriesURL: getEnvOrDefault("COUNTRIES_URL",
				"https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"),
			RatesURL:          getEnvOrDefault("RATES_URL", "https://open.er-api.com/v6/latest/"+baseCurrency),
			BaseCurrency:      baseCurrency,
			ExternalTimeoutMS: getEnvIntOrDefault("EXTERNAL_TIMEOUT_MS", 12000),
		},
		SummaryCfg: SummaryImageConfig{
			ImagePath: getEnvOrDefault("SUMMARY_IMAGE_PATH", "cache/summary.png"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
