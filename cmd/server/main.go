package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "sainath-backend/internal/api/http"
	"sainath-backend/internal/config"
	"sainath-backend/internal/logger"
	"sainath-backend/internal/realtime"
	"sainath-backend/internal/repository/postgres"
	"sainath-backend/internal/security"
	"sainath-backend/internal/service"
	"sainath-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Sainath Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.Auth.Secret,
		time.Duration(cfg.Auth.AccessTokenExpiryMins)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenExpiryMins)*time.Minute,
	)
	var firebaseVerifier *security.FirebaseVerifier
	if cfg.Auth.Provider == "firebase" {
		firebaseVerifier, err = security.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseProjectID, cfg.Auth.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase verifier", "error", err)
			log.Fatalf("Failed to initialize firebase verifier: %v", err)
		}
		logger.Info("Firebase token verification enabled", "project_id", cfg.Auth.FirebaseProjectID)
	}

	// Initialize Storage
	blobs, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize blob storage", "error", err)
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}
	logger.Info("Using local blob storage", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Realtime Hub
	hub := realtime.NewHub()

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	authSvc := service.NewAuthService(store.Users, tokenManager, emailSvc, cfg.Auth.DefaultMemberPassword)
	adminSvc := service.NewAdminService(store.Users, emailSvc, hub)
	eventSvc := service.NewEventService(store.Events, store.Users, hub)
	inventorySvc := service.NewInventoryService(store.Items, store.Events, store.Users, hub)
	orderSvc := service.NewOrderService(store.Orders, store.Items, store.Events, store.Users, hub)
	expenseSvc := service.NewExpenseService(store.Expenses, store.Events, store.Users, hub)
	noteSvc := service.NewNoteService(store.Notes, store.Events, store.Users, hub)
	fileSvc := service.NewFileService(store.Files, store.Users, blobs)

	// Set up HTTP server
	authMw := httpapi.NewAuthMiddleware(tokenManager, firebaseVerifier, store.Users)
	router := httpapi.NewRouter(httpapi.Services{
		Auth:      authSvc,
		Admin:     adminSvc,
		Events:    eventSvc,
		Inventory: inventorySvc,
		Orders:    orderSvc,
		Expenses:  expenseSvc,
		Notes:     noteSvc,
		Files:     fileSvc,
	}, authMw, hub)

	server := &http.Server{
		Addr:        cfg.GetServerAddress(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// No write timeout: the change stream holds its connection open.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
