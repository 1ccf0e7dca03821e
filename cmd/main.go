package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"country-service/internal/config"
	"country-service/internal/database/postgres"
	"country-service/internal/event"
	"country-service/internal/handlers"
	"country-service/internal/repository"
	"country-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("log", "country_service")
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}
	defer logFile.Close()

	cfg := config.New()
	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)

	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	defer db.Close()

	if err := postgres.InitSchema(db); err != nil {
		log.Fatalf("Error initializing schema: %v", err)
	}

	// RabbitMQ is optional: without a broker the service still refreshes,
	// it just skips cache events.
	var publisher *event.CacheEventPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("RabbitMQ unavailable, cache events disabled: %v", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewCacheEventPublisher(rabbitConn)
	}

	r := gin.Default()

	// repositories
	countryRepository := repository.NewCountryRepository(db)

	// services
	countryFetcher := services.NewCountryFetcher(cfg.ExternalCfg)
	summaryImageService := services.NewSummaryImageService(countryRepository, cfg.SummaryCfg.ImagePath)
	refreshService := services.NewRefreshService(countryFetcher, countryRepository, summaryImageService, publisher)
	countryService := services.NewCountryService(countryRepository)

	// handlers
	countryHandler := handlers.NewCountryHandler(countryService, refreshService, db, cfg.SummaryCfg.ImagePath)
	countryHandler.RegisterRoutes(r)

	log.Printf("Starting country-service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
