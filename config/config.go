// Package config provides configuration management for the movie API.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting:
// every problem found is returned at once instead of failing on the first one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// MongoConfig holds the document database connection settings.
type MongoConfig struct {
	URI      string // CONNECTION_URI
	Database string
}

// PostgresConfig holds settings for the pgx connection pool.
type PostgresConfig struct {
	URL            string
	MaxConns       int
	MigrationsPath string
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Driver   string
	Mongo    *MongoConfig
	Postgres *PostgresConfig
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret      string        // Secret key for signing JWTs
	TokenDuration  time.Duration // Lifetime of issued bearer tokens
	LoginRateLimit int           // Login attempts per minute per client IP
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	StaticDir      string
	AccessLogPath  string // Empty disables the access log file
	AllowedOrigins []string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Store  *StoreConfig
	Auth   *AuthConfig
	Server *ServerConfig
	Log    *LogConfig
}

// getRequiredEnv returns a required environment variable, recording an error when it is unset or empty.
func getRequiredEnv(key string, errs *multierror.Error) (string, *multierror.Error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return "", multierror.Append(errs, fmt.Errorf("missing required environment variable: %s", key))
	}
	return value, errs
}

// getOptionalEnv returns an environment variable or defaultValue when unset.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt parses an optional integer variable.
// On a parse failure the default is returned and the error recorded.
func getOptionalEnvInt(key string, defaultValue int, errs *multierror.Error) (int, *multierror.Error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, errs
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, multierror.Append(errs, fmt.Errorf("invalid value for %s: expected integer, got '%s': %w", key, valueStr, err))
	}
	return valueInt, errs
}

// getOptionalEnvDuration parses an optional duration variable such as "168h".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *multierror.Error) (time.Duration, *multierror.Error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, errs
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue, multierror.Append(errs, fmt.Errorf("invalid value for %s: expected duration string, got '%s': %w", key, valueStr, err))
	}
	if valueDuration <= 0 {
		return defaultValue, multierror.Append(errs, fmt.Errorf("invalid value for %s: duration must be positive", key))
	}
	return valueDuration, errs
}

// clampMaxConns keeps the pool size between 1 and 100.
func clampMaxConns(size int) int {
	if size < 1 {
		return 1
	}
	if size > 100 {
		return 100
	}
	return size
}

// splitList splits a comma separated list, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadStoreConfig reads only the persistence settings. The `migrate` and `seed`
// commands need a store but not a signing secret.
func LoadStoreConfig() (*StoreConfig, error) {
	var errs *multierror.Error
	cfg, errs := loadStore(errs)
	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("configuration errors: %w", err)
	}
	return cfg, nil
}

func loadStore(errs *multierror.Error) (*StoreConfig, *multierror.Error) {
	driver := strings.ToLower(getOptionalEnv("STORE_DRIVER", DriverMongo))
	cfg := &StoreConfig{Driver: driver}

	switch driver {
	case DriverMongo:
		cfg.Mongo = &MongoConfig{
			URI:      getOptionalEnv("CONNECTION_URI", "mongodb://localhost:27017"),
			Database: getOptionalEnv("MONGO_DATABASE", "movieAPI_DB"),
		}
	case DriverPostgres:
		var url string
		url, errs = getRequiredEnv("DATABASE_URL", errs)
		var maxConns int
		maxConns, errs = getOptionalEnvInt("DB_MAX_CONNS", 10, errs)
		cfg.Postgres = &PostgresConfig{
			URL:            url,
			MaxConns:       clampMaxConns(maxConns),
			MigrationsPath: getOptionalEnv("MIGRATIONS_PATH", "db/migrations"),
		}
	case DriverMemory:
	default:
		errs = multierror.Append(errs, fmt.Errorf("invalid value for STORE_DRIVER: %q (want %s, %s or %s)", driver, DriverMongo, DriverPostgres, DriverMemory))
	}
	return cfg, errs
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns them as a single error.
func LoadConfig() (*AppConfig, error) {
	var errs *multierror.Error

	storeCfg, errs := loadStore(errs)

	jwtSecret, errs := getRequiredEnv("JWT_SECRET", errs)
	tokenDuration, errs := getOptionalEnvDuration("JWT_EXPIRY", 7*24*time.Hour, errs)
	loginRate, errs := getOptionalEnvInt("LOGIN_RATE_LIMIT", 10, errs)
	if loginRate < 1 {
		errs = multierror.Append(errs, fmt.Errorf("invalid value for LOGIN_RATE_LIMIT: must be at least 1"))
	}

	authConfig := &AuthConfig{
		JWTSecret:      jwtSecret,
		TokenDuration:  tokenDuration,
		LoginRateLimit: loginRate,
	}

	serverConfig := &ServerConfig{
		Port:           getOptionalEnv("PORT", "8080"),
		StaticDir:      getOptionalEnv("STATIC_DIR", "public"),
		AccessLogPath:  getOptionalEnv("ACCESS_LOG", "log.txt"),
		AllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	logConfig := &LogConfig{
		Level:  getOptionalEnv("LOG_LEVEL", "info"),
		Format: getOptionalEnv("LOG_FORMAT", "json"),
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("configuration errors: %w", err)
	}

	return &AppConfig{
		Store:  storeCfg,
		Auth:   authConfig,
		Server: serverConfig,
		Log:    logConfig,
	}, nil
}
