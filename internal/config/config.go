package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort         = "8080"
	DefaultEndpoint     = "https://graphql-pokemon2.vercel.app/"
	DefaultTimeoutSecs  = 10
	DefaultCatalogLimit = 151
	DefaultLogLevel     = "info"
	DefaultDBPath       = "./pokedex.db"
)

// Config is the full application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Logging  LoggingConfig  `yaml:"logging"`
	Storage  StorageConfig  `yaml:"storage"`
}

// ServerConfig controls the web viewer
type ServerConfig struct {
	Port           string   `yaml:"port"`
	StaticDir      string   `yaml:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// UpstreamConfig points at the remote GraphQL API
type UpstreamConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSecs    int    `yaml:"timeout_seconds"`
	CatalogLimit   int    `yaml:"catalog_limit"`
	CatalogTTLSecs int    `yaml:"catalog_ttl_seconds"`
}

// LoggingConfig controls the zerolog output
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// StorageConfig is used by the fixture upstream only
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// Timeout returns the per-request upstream timeout
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSecs) * time.Second
}

// CatalogTTL returns how long a fetched collection may be reused; zero disables caching
func (u UpstreamConfig) CatalogTTL() time.Duration {
	return time.Duration(u.CatalogTTLSecs) * time.Second
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           DefaultPort,
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Upstream: UpstreamConfig{
			Endpoint:     DefaultEndpoint,
			TimeoutSecs:  DefaultTimeoutSecs,
			CatalogLimit: DefaultCatalogLimit,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Storage: StorageConfig{DBPath: DefaultDBPath},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Port = v
	}
	if v, ok := lookup("POKEDEX_UPSTREAM_URL"); ok && v != "" {
		c.Upstream.Endpoint = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("DB_PATH"); ok && v != "" {
		c.Storage.DBPath = v
	}
	if v, ok := lookup("POKEDEX_CATALOG_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POKEDEX_CATALOG_LIMIT %q: %w", v, err)
		}
		c.Upstream.CatalogLimit = n
	}
	if v, ok := lookup("POKEDEX_CATALOG_TTL"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid POKEDEX_CATALOG_TTL %q: %w", v, err)
		}
		c.Upstream.CatalogTTLSecs = n
	}
	return nil
}

// Validate checks the values the viewer depends on
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Upstream.Endpoint == "" {
		errs = append(errs, errors.New("upstream.endpoint is required"))
	}
	if c.Upstream.TimeoutSecs <= 0 {
		errs = append(errs, fmt.Errorf("upstream.timeout_seconds must be > 0, got %d", c.Upstream.TimeoutSecs))
	}
	if c.Upstream.CatalogLimit <= 0 {
		errs = append(errs, fmt.Errorf("upstream.catalog_limit must be > 0, got %d", c.Upstream.CatalogLimit))
	}
	if c.Upstream.CatalogTTLSecs < 0 {
		errs = append(errs, fmt.Errorf("upstream.catalog_ttl_seconds must be >= 0, got %d", c.Upstream.CatalogTTLSecs))
	}
	return errors.Join(errs...)
}
