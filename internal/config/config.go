package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the plantdex service configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Pagination PaginationConfig `yaml:"pagination"`
	Cache      CacheConfig      `yaml:"cache"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	Driver              string        `yaml:"driver"` // postgres, sqlite (default: postgres)
	DSN                 string        `yaml:"dsn"`
	Path                string        `yaml:"path"` // sqlite only
	MaxOpenConns        int           `yaml:"max_open_conns"`
	MaxIdleConns        int           `yaml:"max_idle_conns"`
	ConnMaxLifetimeSec  int           `yaml:"conn_max_lifetime_sec"`
	AcquireTimeoutSec   int           `yaml:"acquire_timeout_sec"`
	ReadinessTimeout    int           `yaml:"readiness_timeout_sec"`
	SimilarityThreshold float64       `yaml:"similarity_threshold"`
	ConsistentPages     bool          `yaml:"consistent_pages"`
	Breaker             BreakerConfig `yaml:"breaker"`
}

// BreakerConfig guards connection acquisition.
type BreakerConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MaxRequests  uint32  `yaml:"max_requests"`
	MinRequests  uint32  `yaml:"min_requests"`
	IntervalSec  int     `yaml:"interval_sec"`
	TimeoutSec   int     `yaml:"timeout_sec"`
	FailureRatio float64 `yaml:"failure_ratio"`
}

// PaginationConfig holds page size limits.
type PaginationConfig struct {
	DefaultPerPage int `yaml:"default_per_page"`
	MaxPerPage     int `yaml:"max_per_page"`
}

// CacheConfig holds the Redis page cache settings.
type CacheConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Addrs     []string `yaml:"addrs"`
	Password  string   `yaml:"password"`
	TTLSec    int      `yaml:"ttl_sec"`
	KeyPrefix string   `yaml:"key_prefix"`
	// Standalone disables cluster discovery; needed for `cache flush` to reach every key.
	Standalone bool `yaml:"standalone"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	c.Database.applyDefaults()
	if c.Pagination.DefaultPerPage <= 0 {
		c.Pagination.DefaultPerPage = 20
	}
	if c.Pagination.MaxPerPage <= 0 {
		c.Pagination.MaxPerPage = 100
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 3600
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "plantdex:"
	}
}

func (d *DatabaseConfig) applyDefaults() {
	if d.Driver == "" {
		d.Driver = DriverPostgres
	}
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = 25
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = 5
	}
	if d.ConnMaxLifetimeSec <= 0 {
		d.ConnMaxLifetimeSec = 300
	}
	if d.AcquireTimeoutSec <= 0 {
		d.AcquireTimeoutSec = 5
	}
	if d.ReadinessTimeout <= 0 {
		d.ReadinessTimeout = 10
	}
	if d.SimilarityThreshold == 0 {
		d.SimilarityThreshold = 0.3
	}
	if d.Breaker.MaxRequests == 0 {
		d.Breaker.MaxRequests = 1
	}
	if d.Breaker.MinRequests == 0 {
		d.Breaker.MinRequests = 5
	}
	if d.Breaker.IntervalSec <= 0 {
		d.Breaker.IntervalSec = 60
	}
	if d.Breaker.TimeoutSec <= 0 {
		d.Breaker.TimeoutSec = 10
	}
	if d.Breaker.FailureRatio == 0 {
		d.Breaker.FailureRatio = 0.6
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Pagination.DefaultPerPage > c.Pagination.MaxPerPage {
		return fmt.Errorf("pagination.default_per_page (%d) must not exceed pagination.max_per_page (%d)",
			c.Pagination.DefaultPerPage, c.Pagination.MaxPerPage)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	return nil
}

// Validate checks the database section alone. The CLI's migrate command needs nothing else.
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %q", d.Driver)
		}
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("database.path is required for driver %q", d.Driver)
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, d.Driver)
	}
	if d.SimilarityThreshold <= 0 || d.SimilarityThreshold > 1 {
		return fmt.Errorf("database.similarity_threshold must be in (0, 1], got %g", d.SimilarityThreshold)
	}
	if d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) must not exceed database.max_open_conns (%d)",
			d.MaxIdleConns, d.MaxOpenConns)
	}
	if d.Breaker.FailureRatio < 0 || d.Breaker.FailureRatio > 1 {
		return fmt.Errorf("database.breaker.failure_ratio must be in [0, 1], got %g", d.Breaker.FailureRatio)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
