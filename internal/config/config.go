// Package config provides centralized configuration management for exopop.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "time"

// DefaultArchiveURL queries the archive for every required column plus the
// discovery facility, in bar-delimited format.
const DefaultArchiveURL = "http://exoplanetarchive.ipac.caltech.edu/cgi-bin/nstedAPI/nph-nstedAPI?table=exoplanets" +
	"&select=pl_hostname,pl_letter,pl_orbper,pl_tranmid,pl_trandur,st_teff,st_rad,st_mass,st_j,ra,dec," +
	"pl_rade,pl_radeerr1,pl_radeerr2,pl_ratdor,pl_rvamp,pl_masse,pl_masseerr1,pl_masseerr2,pl_ratror," +
	"pl_imppar,st_dist,st_disterr1,st_disterr2,pl_tranflag,pl_facility&format=bar-delimited"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Archive  ArchiveConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
}

// ArchiveConfig holds archive snapshot settings.
type ArchiveConfig struct {
	// URL is the archive query returning a bar-delimited table
	URL string `env:"ARCHIVE_URL"`

	// CachePath is where the downloaded snapshot is kept (default: data/exoplanetArchiveConfirmedPlanets.psv)
	CachePath string `env:"ARCHIVE_CACHE_PATH" default:"data/exoplanetArchiveConfirmedPlanets.psv"`

	// FetchTimeout bounds each download attempt (default: 60s)
	FetchTimeout time.Duration `env:"ARCHIVE_FETCH_TIMEOUT" default:"60s"`

	// FetchAttempts is the number of download attempts before giving up (default: 3)
	FetchAttempts int `env:"ARCHIVE_FETCH_ATTEMPTS" default:"3"`
}

// CatalogConfig holds curation settings.
type CatalogConfig struct {
	// SurveysFile is an optional YAML file of survey labels
	SurveysFile string `env:"CATALOG_SURVEYS_FILE"`

	// MassThreshold is the mass signal-to-noise threshold (default: 2.5)
	MassThreshold float64 `env:"CATALOG_MASS_THRESHOLD" default:"2.5"`

	// CacheDir holds parquet copies of standard tables and subsets (default: data/standard)
	CacheDir string `env:"CATALOG_CACHE_DIR" default:"data/standard"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Publishing is disabled when empty.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Enabled reports whether a database is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 120s)
	// A cold request may download and build the master table.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"120s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics on the HTTP server (default: true)
	Enabled bool `env:"METRICS_ENABLED" default:"true"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
