package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/yumeno/gachapon-api/internal/config"
	"github.com/yumeno/gachapon-api/internal/handlers"
	"github.com/yumeno/gachapon-api/internal/jobs"
	"github.com/yumeno/gachapon-api/internal/version"
	"github.com/yumeno/gachapon-api/pkg/auth"
	"github.com/yumeno/gachapon-api/pkg/database"
	"github.com/yumeno/gachapon-api/pkg/database/repository"
	"github.com/yumeno/gachapon-api/pkg/gacha"
	"github.com/yumeno/gachapon-api/pkg/logging"
)

func main() {
	// Initialize application with proper error handling
	if err := initializeApplication(); err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
}

// initializeApplication handles the complete application initialization process
func initializeApplication() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		// Continue execution as .env file might not exist in production
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize PostgreSQL database
	db, err := database.NewGormDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Get the underlying *sql.DB for Close() method
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	defer sqlDB.Close()

	// Initialize centralized logging with database persistence for WARN/ERROR
	errorLogs := repository.NewErrorLogRepository(db)
	loggerFactory := logging.NewDatabaseLoggerFactory(errorLogs)
	logging.SetGlobalLoggerFactory(loggerFactory)
	logger := loggerFactory.CreateLogger("main")

	// Repositories
	users := repository.NewUserRepository(db)
	gachas := repository.NewGachaRepository(db)
	rolls := repository.NewRollRepository(db)

	// Roll executor over the catalog and history stores
	executor := gacha.NewExecutor(gachas, rolls, gacha.DefaultSource(), loggerFactory.CreateLogger("gacha"))

	// Token service and HTTP handlers
	tokens := auth.NewTokenService(cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(users, tokens, loggerFactory.CreateHandlerLogger("auth"))
	gachaHandler := handlers.NewGachaHandler(gachas, loggerFactory.CreateHandlerLogger("gachas"))
	rollHandler := handlers.NewRollHandler(executor, rolls, loggerFactory.CreateHandlerLogger("rolls"))

	router := handlers.NewRouter(cfg, tokens, authHandler, gachaHandler, rollHandler)

	// Background maintenance
	janitor := jobs.NewLockoutJanitor(users, loggerFactory.CreateJobLogger("lockout-janitor"))
	if err := janitor.Start(); err != nil {
		return fmt.Errorf("failed to start lockout janitor: %w", err)
	}
	defer janitor.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("API running", map[string]interface{}{
			"port":    cfg.Port,
			"version": version.Get().Version,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped unexpectedly", err, nil)
		}
	}()

	// Wait for a termination signal, then drain in-flight requests
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
