package database

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
	"comptable/internal/models"
)

func init() {
	logger.Init("test")
}

func sqliteConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Driver:     DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ledger.db"),
	}
}

func TestConfigDSN(t *testing.T) {
	mysqlCfg := &Config{
		Driver:     DriverMySQL,
		Host:       "localhost",
		Port:       "3306",
		User:       "root",
		Password:   "pw",
		Name:       "comptable",
		DisableTLS: true,
		Timezone:   "UTC",
	}
	dsn := mysqlCfg.DSN()
	if !strings.HasPrefix(dsn, "root:pw@tcp(localhost:3306)/comptable?") {
		t.Errorf("unexpected mysql DSN: %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime in DSN: %s", dsn)
	}
	if url := mysqlCfg.MigrationURL(); !strings.HasPrefix(url, "mysql://") || !strings.Contains(url, "multiStatements=true") {
		t.Errorf("unexpected mysql migration URL: %s", url)
	}

	pgCfg := &Config{
		Driver:   DriverPostgres,
		Host:     "db",
		Port:     "5432",
		User:     "ledger",
		Password: "pw",
		Name:     "books",
	}
	if url := pgCfg.MigrationURL(); url != "postgres://ledger:pw@db:5432/books?sslmode=require" {
		t.Errorf("unexpected postgres migration URL: %s", url)
	}
	if !strings.Contains(pgCfg.DSN(), "dbname=books") {
		t.Errorf("unexpected postgres DSN: %s", pgCfg.DSN())
	}

	if url := sqliteConfig(t).MigrationURL(); url != "" {
		t.Errorf("expected no migration URL for sqlite, got %s", url)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"mysql ok", Config{Driver: DriverMySQL, Host: "h", Name: "n"}, false},
		{"mysql missing host", Config{Driver: DriverMySQL, Name: "n"}, true},
		{"sqlite missing path", Config{Driver: DriverSQLite}, true},
		{"unknown driver", Config{Driver: "oracle"}, true},
		{"bad timezone", Config{Driver: DriverSQLite, SQLitePath: "x.db", Timezone: "Mars/Olympus"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestManagerSQLite(t *testing.T) {
	m, err := NewManager(sqliteConfig(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	for _, table := range []string{"users", "etablissements", "typecomptes", "categories", "comptes", "operations"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("table %q should exist after migration", table)
		}
	}
}

func TestTestConnectionInvalidConfig(t *testing.T) {
	err := TestConnection(&Config{Driver: "oracle"})
	if !errors.Is(err, apperrors.ErrConnectionFailed) {
		t.Fatalf("expected CONNECTION_FAILED, got %v", err)
	}
}

func TestRunInTransaction(t *testing.T) {
	m, err := NewManager(sqliteConfig(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	db := m.DB()

	count := func() int64 {
		var n int64
		db.Model(&models.Category{}).Count(&n)
		return n
	}

	t.Run("commit", func(t *testing.T) {
		err := RunInTransaction(db, func(tx *gorm.DB) error {
			return tx.Create(&models.Category{Name: "Food"}).Error
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count() != 1 {
			t.Errorf("expected 1 category, got %d", count())
		}
	})

	t.Run("rollback on error", func(t *testing.T) {
		err := RunInTransaction(db, func(tx *gorm.DB) error {
			if err := tx.Create(&models.Category{Name: "Rent"}).Error; err != nil {
				return err
			}
			return errors.New("boom")
		})
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != "TRANSACTION_FAILED" {
			t.Fatalf("expected TRANSACTION_FAILED, got %v", err)
		}
		if appErr.Message != "boom" {
			t.Errorf("expected message to surface, got %q", appErr.Message)
		}
		if count() != 1 {
			t.Errorf("expected rollback, got %d categories", count())
		}
	})

	t.Run("rollback on panic", func(t *testing.T) {
		err := RunInTransaction(db, func(tx *gorm.DB) error {
			tx.Create(&models.Category{Name: "Travel"})
			panic("driver exploded")
		})
		if !errors.Is(err, apperrors.ErrTransactionFailed) {
			t.Fatalf("expected TRANSACTION_FAILED, got %v", err)
		}
		if count() != 1 {
			t.Errorf("expected rollback, got %d categories", count())
		}
	})

	t.Run("app errors pass through", func(t *testing.T) {
		err := RunInTransaction(db, func(tx *gorm.DB) error {
			return apperrors.ErrDuplicateLogin
		})
		if !errors.Is(err, apperrors.ErrDuplicateLogin) {
			t.Fatalf("expected DUPLICATE_LOGIN, got %v", err)
		}
	})
}
