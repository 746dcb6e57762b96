package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/dealdocs/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnvName, "")

	dir := t.TempDir()
	full := map[string]any{
		"endpoint_addr_grpc":       "www.example:9000",
		"endpoint_addr_http":       "www.example:8000",
		"documents_dsn":            "docs-dsn",
		"catalog_dsn":              "catalog-dsn",
		"secret_key":               "my_secret_key",
		"s3_root_user":             "user",
		"s3_root_password":         "password",
		"s3_bucket":                "bucket",
		"s3_region":                "region",
		"s3_base_endpoint":         "base_endpoint",
		"presign_expiry":           "10m",
		"store_timeout":            "2s",
		"completeness_concurrency": 6,
		"log_backend":              "zap",
		"environment":              "production",
	}
	pathFlag := writeTempJSON(t, dir, "flag.json", full)

	check := func(t *testing.T, cfg *Config) {
		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "www.example:8000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "docs-dsn", cfg.DocumentsDSN)
		assert.Equal(t, "catalog-dsn", cfg.CatalogDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, 10*time.Minute, cfg.PresignExpiry)
		assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
		assert.Equal(t, 6, cfg.CompletenessConcurrency)
		assert.Equal(t, "zap", cfg.LogBackend)
		assert.Equal(t, "production", cfg.Environment)
	}

	t.Run("loads from json flag", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)
		check(t, cfg)
	})

	t.Run("loads from env", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv(flagx.ConfigEnvName, pathFlag)

		cfg := &Config{}
		parseJson(cfg)
		check(t, cfg)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"catalog_dsn": "only-catalog"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "only-catalog", cfg.CatalogDSN)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
		assert.Equal(t, 4, cfg.CompletenessConcurrency)
	})

	t.Run("no config → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg
		parseJson(cfg)

		assert.Equal(t, want, *cfg)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
