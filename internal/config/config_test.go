package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"comptable/internal/database"
	apperrors "comptable/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	db := cfg.Database
	if db.Driver != database.DriverMySQL || db.Host != "localhost" || db.Port != "3306" {
		t.Errorf("unexpected connection defaults: %+v", db)
	}
	if db.Name != "comptable" || db.User != "root" || db.Password != "" {
		t.Errorf("unexpected credential defaults: %+v", db)
	}
	if !db.DisableTLS || db.Timezone != "UTC" {
		t.Errorf("unexpected flag defaults: %+v", db)
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected 24h token lifetime, got %v", cfg.JWTExpirationDur)
	}
	if cfg.Locale != "fr-FR" || cfg.Currency != "EUR" {
		t.Errorf("unexpected display defaults: %s %s", cfg.Locale, cfg.Currency)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comptable.env")
	content := "DB_HOST=db.internal\nDB_PORT=3307\nDB_DISABLE_TLS=false\nJWT_EXPIRES_IN=nonsense\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("DB_PORT", "3310")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected host from file, got %s", cfg.Database.Host)
	}
	if cfg.Database.Port != "3310" {
		t.Errorf("expected environment to override file, got %s", cfg.Database.Port)
	}
	if cfg.Database.DisableTLS {
		t.Error("expected TLS enabled from file")
	}
	if cfg.JWTExpirationDur != 24*time.Hour {
		t.Errorf("expected fallback token lifetime, got %v", cfg.JWTExpirationDur)
	}
}

func TestLoadKeepsInvalidDatabaseSettings(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "DB_DRIVER", "oracle"},
		{"empty host", "DB_HOST", ""},
		{"unknown timezone", "DB_TIMEZONE", "Mars/Olympus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// The settings screen is reached through a failed connection.
			_, err = database.Open(&cfg.Database)
			if apperrors.KindOf(err) != apperrors.KindConnection {
				t.Errorf("expected a connection failure, got %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comptable.env")
	if err := os.WriteFile(path, []byte("LOCALE=en-US\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	want := database.Config{
		Driver:     database.DriverPostgres,
		Host:       "pg.local",
		Port:       "5432",
		User:       "ledger",
		Password:   "s3cret word",
		Name:       "books",
		DisableTLS: true,
		Timezone:   "Europe/Paris",
		SQLitePath: "ledger.db",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database != want {
		t.Errorf("expected %+v, got %+v", want, cfg.Database)
	}
	if cfg.Locale != "en-US" {
		t.Errorf("expected unrelated keys to survive, got locale %s", cfg.Locale)
	}
}
