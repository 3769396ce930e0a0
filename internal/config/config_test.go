package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultEndpoint, cfg.Upstream.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout())
	assert.Zero(t, cfg.Upstream.CatalogTTL())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokedex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
upstream:
  endpoint: http://localhost:7070/graphql
  catalog_limit: 12
  catalog_ttl_seconds: 60
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:7070/graphql", cfg.Upstream.Endpoint)
	assert.Equal(t, 12, cfg.Upstream.CatalogLimit)
	assert.Equal(t, time.Minute, cfg.Upstream.CatalogTTL())
	assert.Equal(t, DefaultTimeoutSecs, cfg.Upstream.TimeoutSecs)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":                  "3000",
		"POKEDEX_UPSTREAM_URL":  "http://upstream/graphql",
		"POKEDEX_CATALOG_LIMIT": "20",
		"POKEDEX_CATALOG_TTL":   "5",
		"LOG_LEVEL":             "warn",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "http://upstream/graphql", cfg.Upstream.Endpoint)
	assert.Equal(t, 20, cfg.Upstream.CatalogLimit)
	assert.Equal(t, 5, cfg.Upstream.CatalogTTLSecs)
	assert.Equal(t, "warn", cfg.Logging.Level)

	env["POKEDEX_CATALOG_LIMIT"] = "lots"
	assert.Error(t, Default().applyEnv(lookup))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Upstream.Endpoint = ""
	cfg.Upstream.CatalogLimit = 0
	cfg.Upstream.CatalogTTLSecs = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.endpoint")
	assert.Contains(t, err.Error(), "catalog_limit")
	assert.Contains(t, err.Error(), "catalog_ttl_seconds")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", &buf)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, zerolog.InfoLevel, NewLogger("nonsense", &buf).GetLevel())
}
