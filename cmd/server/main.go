package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/pawait/weatherview/internal/config"
	"github.com/pawait/weatherview/internal/delivery/http"
	"github.com/pawait/weatherview/internal/presenter"
	"github.com/pawait/weatherview/internal/repository/postgres"
	"github.com/pawait/weatherview/internal/repository/sqlite"
	"github.com/pawait/weatherview/internal/service"
	"github.com/pawait/weatherview/internal/telemetry"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Configuration
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	shutdownTracing, err := telemetry.Setup("weatherview", cfg.ZipkinURL)
	if err != nil {
		log.Fatalf("Tracing error: %v", err)
	}

	// Dependency Injection: Repositories
	dataRepo := openSearchLog(cfg)
	searchLog := service.NewSearchLog(dataRepo)

	// Dependency Injection: Services
	var provider service.WeatherProvider = service.NewHTTPProvider(cfg.ProviderURL, cfg.ProviderTimeout)
	if cfg.ProviderRateLimit > 0 {
		provider = service.NewRateLimitedProvider(provider, cfg.ProviderRateLimit, cfg.ProviderRateBurst)
		log.Printf("Provider rate limited to %.2f req/s (burst %d)", cfg.ProviderRateLimit, cfg.ProviderRateBurst)
	}
	sessions := service.NewSessions(func() *service.WeatherView {
		return service.NewWeatherView(provider, searchLog)
	})

	stopPrune := func() {}
	if cfg.SessionTTL > 0 {
		stopPrune = sessions.PruneEvery(cfg.SessionTTL/2, cfg.SessionTTL)
	}

	// Fiber App
	handler := http.NewHandler(sessions, searchLog, presenter.Options{
		IconBaseURL: cfg.IconBaseURL,
		Location:    loc,
	})
	app := http.NewApp(handler, cfg.Env)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s (provider %s)", cfg.Port, cfg.ProviderURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	stopPrune()
	sessions.Close()
	searchLog.WaitBackground()
	if err := dataRepo.Close(); err != nil {
		log.Printf("Search log close error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		log.Printf("Tracing shutdown error: %v", err)
	}
	log.Println("Server exited gracefully")
}

// openSearchLog picks PostgreSQL, then SQLite, then the in-memory log
func openSearchLog(cfg *config.Config) service.DataRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			repo, err := postgres.NewPostgresRepository(ctx, pool)
			if err == nil {
				log.Println("Connected to PostgreSQL")
				return repo
			}
			pool.Close()
			log.Printf("Warning: Could not prepare search log table: %v", err)
		} else {
			log.Printf("Warning: Could not connect to database: %v", err)
		}
	}

	if cfg.SearchLogPath != "" {
		store, err := sqlite.Open(cfg.SearchLogPath)
		if err == nil {
			log.Printf("Search log at %s", cfg.SearchLogPath)
			return store
		}
		log.Printf("Warning: Could not open search log %s: %v", cfg.SearchLogPath, err)
	}

	log.Println("Keeping search log in memory only")
	return postgres.NewMockRepository()
}
