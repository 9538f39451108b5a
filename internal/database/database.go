package database

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
	"comptable/internal/models"
)

//go:embed migrations
var migrations embed.FS

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config Config
}

// Open returns a gorm handle for the configured driver. Unique-key
// violations are translated to gorm.ErrDuplicatedKey.
func Open(config *Config) (*gorm.DB, error) {
	if err := config.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConnectionFailed, err)
	}

	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres:
		dialector = postgres.Open(config.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(config.DSN())
	default:
		dialector = mysql.Open(config.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConnectionFailed, err)
	}
	return db, nil
}

// NewManager creates a new database manager and verifies the connection.
func NewManager(config *Config) (*Manager, error) {
	db, err := Open(config)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrConnectionFailed, err)
	}
	if config.Driver == DriverSQLite {
		// SQLite allows one writer at a time.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, apperrors.Wrap(apperrors.ErrConnectionFailed, err)
	}

	logger.Named("database").Infow("connected", "driver", config.Driver, "name", config.Name)
	return &Manager{db: db, config: *config}, nil
}

// TestConnection opens, pings and closes a connection with the given
// settings. It backs the configuration retry screen.
func TestConnection(config *Config) error {
	m, err := NewManager(config)
	if err != nil {
		return err
	}
	return m.Close()
}

// RunMigrations applies pending schema migrations. MySQL and PostgreSQL use
// the embedded SQL files; SQLite is migrated from the models.
func (m *Manager) RunMigrations() error {
	log := logger.Named("database")
	log.Info("Running database migrations...")

	if m.config.Driver == DriverSQLite {
		if err := m.db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Info("Database migrations completed successfully")
		return nil
	}

	mig, err := NewMigrate(&m.config)
	if err != nil {
		return err
	}
	defer closeMigrate(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// NewMigrate returns a migrate instance reading the embedded SQL files for
// the configured driver.
func NewMigrate(config *Config) (*migrate.Migrate, error) {
	url := config.MigrationURL()
	if url == "" {
		return nil, fmt.Errorf("driver %q does not use SQL migrations", config.Driver)
	}

	src, err := iofs.New(migrations, "migrations/"+config.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

func closeMigrate(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil {
		logger.Get().Warnf("migrate source close error: %v", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnf("migrate database close error: %v", dbErr)
	}
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
