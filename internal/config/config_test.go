package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"SESSION_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, DefaultServerPort, cfg.ServerPort)
	assert.Equal(t, 0, cfg.ImportConcurrency)
	assert.Equal(t, DefaultScanSessionTTL, cfg.ScanSessionTTL)
	assert.Equal(t, "", cfg.DBDSN)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"SESSION_SECRET":     "s3cret",
		"BACKEND_URL":        "http://inventory.local:5000/",
		"SERVER_PORT":        "9000",
		"IMPORT_CONCURRENCY": "8",
		"SCAN_SESSION_TTL":   "30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://inventory.local:5000", cfg.BackendURL)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 8, cfg.ImportConcurrency)
	assert.Equal(t, 30*time.Second, cfg.ScanSessionTTL)
}

func TestFromEnvRejects(t *testing.T) {
	_, err := FromEnv(envOf(map[string]string{}))
	assert.EqualError(t, err, "SESSION_SECRET is not set")

	_, err = FromEnv(envOf(map[string]string{"SESSION_SECRET": "x", "IMPORT_CONCURRENCY": "-1"}))
	assert.Error(t, err)

	_, err = FromEnv(envOf(map[string]string{"SESSION_SECRET": "x", "SCAN_SESSION_TTL": "soon"}))
	assert.Error(t, err)
}
