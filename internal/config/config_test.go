package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "plantdex.db"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Database.MaxIdleConns != 5 {
		t.Errorf("pool = %d/%d, want 25/5", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	}
	if cfg.Database.AcquireTimeoutSec != 5 {
		t.Errorf("acquire timeout = %d, want 5", cfg.Database.AcquireTimeoutSec)
	}
	if cfg.Database.SimilarityThreshold != 0.3 {
		t.Errorf("threshold = %g, want 0.3", cfg.Database.SimilarityThreshold)
	}
	if cfg.Database.ConsistentPages {
		t.Error("consistent_pages must default to false")
	}
	if cfg.Pagination.DefaultPerPage != 20 || cfg.Pagination.MaxPerPage != 100 {
		t.Errorf("pagination = %d/%d, want 20/100", cfg.Pagination.DefaultPerPage, cfg.Pagination.MaxPerPage)
	}
	if cfg.Cache.TTLSec != 3600 || cfg.Cache.KeyPrefix != "plantdex:" {
		t.Errorf("cache = %d/%q", cfg.Cache.TTLSec, cfg.Cache.KeyPrefix)
	}
}

func TestApplyDefaults_KeepsExplicit(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{SimilarityThreshold: 0.25, MaxOpenConns: 4, MaxIdleConns: 2}}
	cfg.ApplyDefaults()

	if cfg.Database.SimilarityThreshold != 0.25 {
		t.Errorf("threshold = %g, want 0.25", cfg.Database.SimilarityThreshold)
	}
	if cfg.Database.MaxOpenConns != 4 || cfg.Database.MaxIdleConns != 2 {
		t.Errorf("pool = %d/%d, want 4/2", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"postgres dsn", func(c *Config) { c.Database.Driver = DriverPostgres }, "database.dsn"},
		{"sqlite path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"threshold above one", func(c *Config) { c.Database.SimilarityThreshold = 1.5 }, "similarity_threshold"},
		{"threshold negative", func(c *Config) { c.Database.SimilarityThreshold = -0.1 }, "similarity_threshold"},
		{"idle over open", func(c *Config) { c.Database.MaxIdleConns = 30 }, "max_idle_conns"},
		{"failure ratio", func(c *Config) { c.Database.Breaker.FailureRatio = 2 }, "failure_ratio"},
		{"default over max", func(c *Config) { c.Pagination.DefaultPerPage = 200 }, "default_per_page"},
		{"cache without addrs", func(c *Config) { c.Cache.Enabled = true }, "cache.addrs"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PLANTDEX_TEST_DSN", "postgres://db/plants")

	got := string(expandEnvVars([]byte("dsn: ${PLANTDEX_TEST_DSN}\nport: ${PLANTDEX_TEST_UNSET:-8080}\n")))
	want := "dsn: postgres://db/plants\nport: 8080\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: ${PLANTDEX_TEST_PORT:-9090}
database:
  driver: sqlite
  path: ./plants.db
  similarity_threshold: 0.25
  consistent_pages: true
pagination:
  default_per_page: 10
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unittest.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("unittest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.Path != "./plants.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Database.SimilarityThreshold != 0.25 || !cfg.Database.ConsistentPages {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Pagination.DefaultPerPage != 10 || cfg.Pagination.MaxPerPage != 100 {
		t.Errorf("pagination = %+v", cfg.Pagination)
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}
