// Package config loads application settings from a key-value file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"comptable/internal/database"
	"comptable/internal/logger"
)

// DefaultFile is the key-value file read when COMPTABLE_CONFIG is unset.
const DefaultFile = "comptable.env"

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	Database database.Config

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Display
	Locale   string
	Currency string
}

// Path returns the configuration file path.
func Path() string {
	if p := os.Getenv("COMPTABLE_CONFIG"); p != "" {
		return p
	}
	return DefaultFile
}

// Load reads the key-value file at path (a missing file is not an error),
// overlays the process environment and fills in defaults. Invalid database
// settings are kept as read; opening the database reports them.
func Load(path string) (*Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		logger.Get().Debugw("configuration file not found, using defaults", "path", path)
		values = map[string]string{}
	}

	get := func(key, defaultValue string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		if v, ok := values[key]; ok {
			return v
		}
		return defaultValue
	}

	cfg := &Config{
		Env:  get("ENV", "development"),
		Port: get("PORT", "8080"),

		Database: database.Config{
			Driver:     get("DB_DRIVER", database.DriverMySQL),
			Host:       get("DB_HOST", "localhost"),
			Port:       get("DB_PORT", "3306"),
			User:       get("DB_USER", "root"),
			Password:   get("DB_PASSWORD", ""),
			Name:       get("DB_NAME", "comptable"),
			Timezone:   get("DB_TIMEZONE", "UTC"),
			SQLitePath: get("DB_SQLITE_PATH", "comptable.db"),
		},

		JWTSecret: get("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		Locale:    get("LOCALE", "fr-FR"),
		Currency:  get("CURRENCY", "EUR"),
	}

	disableTLS, err := strconv.ParseBool(get("DB_DISABLE_TLS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_DISABLE_TLS: %w", err)
	}
	cfg.Database.DisableTLS = disableTLS

	expStr := get("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		logger.Get().Warnf("invalid JWT_EXPIRES_IN value '%s', falling back to 24h", expStr)
		expDur = 24 * time.Hour
	}
	cfg.JWTExpirationDur = expDur

	// Database settings are checked when connecting, so bad values lead to
	// the connection settings screen rather than a failed start.
	if err := cfg.Database.Validate(); err != nil {
		logger.Get().Warnw("invalid database settings", "path", path, "error", err)
	}
	return cfg, nil
}

// Save writes the database section of cfg to path, keeping every other key
// already present in the file.
func Save(path string, db database.Config) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		values = map[string]string{}
	}

	values["DB_DRIVER"] = db.Driver
	values["DB_HOST"] = db.Host
	values["DB_PORT"] = db.Port
	values["DB_USER"] = db.User
	values["DB_PASSWORD"] = db.Password
	values["DB_NAME"] = db.Name
	values["DB_DISABLE_TLS"] = strconv.FormatBool(db.DisableTLS)
	values["DB_TIMEZONE"] = db.Timezone
	values["DB_SQLITE_PATH"] = db.SQLitePath

	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
