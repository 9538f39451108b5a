package database

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Driver names accepted in DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database connection settings.
type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	DisableTLS bool
	Timezone   string
	SQLitePath string
}

// Validate checks that the settings can produce a usable DSN.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Host == "" || c.Name == "" {
			return fmt.Errorf("%s driver requires a host and a database name", c.Driver)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite driver requires a database path")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}
	if _, err := c.location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// mysqlConfig builds the go-sql-driver configuration shared by the gorm
// dialector and the migration URL.
func (c *Config) mysqlConfig(multiStatements bool) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, c.Port)
	cfg.DBName = c.Name
	cfg.ParseTime = true
	cfg.MultiStatements = multiStatements
	if loc, err := c.location(); err == nil {
		cfg.Loc = loc
	}
	if c.DisableTLS {
		cfg.TLSConfig = "false"
	} else {
		cfg.TLSConfig = "true"
	}
	return cfg
}

func (c *Config) sslMode() string {
	if c.DisableTLS {
		return "disable"
	}
	return "require"
}

// DSN returns the driver-specific connection string used by gorm.
func (c *Config) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		tz := c.Timezone
		if tz == "" {
			tz = "UTC"
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.sslMode(), tz)
	case DriverSQLite:
		return c.SQLitePath
	default:
		return c.mysqlConfig(false).FormatDSN()
	}
}

// MigrationURL returns the golang-migrate database URL, or "" for drivers
// migrated through gorm.
func (c *Config) MigrationURL() string {
	switch c.Driver {
	case DriverMySQL:
		return "mysql://" + c.mysqlConfig(true).FormatDSN()
	case DriverPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.Host, c.Port),
			Path:     "/" + c.Name,
			RawQuery: "sslmode=" + c.sslMode(),
		}
		return u.String()
	default:
		return ""
	}
}
