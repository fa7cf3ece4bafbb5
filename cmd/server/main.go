package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "calapan-rental-backend/internal/api/http"
	"calapan-rental-backend/internal/config"
	"calapan-rental-backend/internal/logger"
	"calapan-rental-backend/internal/pricing"
	"calapan-rental-backend/internal/repository/postgres"
	"calapan-rental-backend/internal/security"
	"calapan-rental-backend/internal/service"
	"calapan-rental-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Calapan Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	documentStore, err := storage.NewLocalDocumentStore(cfg.Storage.UploadDir, cfg.Storage.MaxFileSizeMB)
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}
	logger.Info("Document storage initialized", "upload_dir", cfg.Storage.UploadDir)

	emailSvc := service.NewEmailService(cfg.Email)
	notificationSvc := service.NewNotificationService(store)
	vehicleSvc := service.NewVehicleService(store)

	pricer := pricing.NewEngine(cfg.Pricing.SecurityDepositCents, cfg.Pricing.LateFeePercent)
	policy := service.NewAvailabilityPolicy()
	rentalSvc := service.NewRentalService(store, policy, pricer, notificationSvc, emailSvc, nil)

	router := httpapi.NewRouter(tokenManager, rentalSvc, vehicleSvc, notificationSvc, documentStore)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
