package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"comptable/internal/config"
	"comptable/internal/database"
	apperrors "comptable/internal/errors"
	"comptable/internal/format"
	"comptable/internal/handlers"
	"comptable/internal/logger"
	"comptable/internal/middleware"
	"comptable/internal/session"
	"comptable/internal/validator"
)

// @title           Comptable API
// @version         1.0
// @description     Comptable is a personal ledger: accounts, operations, categories and monthly balances.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	configPath := config.Path()
	appConfig, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	formatter, err := format.New(appConfig.Locale, appConfig.Currency)
	if err != nil {
		return fmt.Errorf("failed to configure formatting: %w", err)
	}

	loc, err := time.LoadLocation(appConfig.Database.Timezone)
	if err != nil {
		// Connecting fails on the same value and starts setup mode.
		log.Warnw("invalid DB_TIMEZONE, using UTC", "timezone", appConfig.Database.Timezone, "error", err)
		loc = time.UTC
	}

	sess := session.New()
	if err := sess.Start(); err != nil {
		return err
	}

	db, err := connect(&appConfig.Database)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConnectionFailed) {
			return err
		}
		// The client shows the connection settings screen until a test
		// connection succeeds and the application is restarted.
		log.Warnw("database unavailable, starting in setup mode", "error", err)
		sess.ReportError(err)
	}

	validator.Register()
	router := handlers.NewRouter(handlers.RouterOptions{
		DB:         db,
		Session:    sess,
		Tokens:     middleware.NewTokenIssuer(appConfig.JWTSecret, appConfig.JWTExpirationDur),
		Formatter:  formatter,
		ConfigPath: configPath,
		Location:   loc,
	})

	log.Infof("Starting Comptable server on port %s", appConfig.Port)
	return router.Run("localhost:" + appConfig.Port)
}

// connect opens the database and applies pending migrations.
func connect(cfg *database.Config) (*gorm.DB, error) {
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return nil, err
	}
	if err := dbManager.RunMigrations(); err != nil {
		_ = dbManager.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return dbManager.DB(), nil
}
