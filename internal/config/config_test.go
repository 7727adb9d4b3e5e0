package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HOST", "PORT", "FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "ALLOWED_ORIGINS",
		"SDK_BACKEND", "SDK_DEFAULT_UID", "FIREBASE_SERVICE_ACCOUNT_JSON",
		"FIREBASE_SERVICE_ACCOUNT_PATH", "LOG_LEVEL", "SDK_LOG_LEVEL", "LOG_JSON",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "0.0.0.0:8090", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, BackendFirestore, cfg.SDKBackend)
	assert.Equal(t, "local-user", cfg.SDKDefaultUID)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "debug", cfg.SDKLogLevel)
	assert.False(t, cfg.LogJSON)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "fallback-project")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SDK_BACKEND", "Memory")
	t.Setenv("LOG_JSON", "true")

	cfg := Load()

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
	assert.Equal(t, "fallback-project", cfg.ProjectID)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, BackendMemory, cfg.SDKBackend)
	assert.True(t, cfg.LogJSON)

	t.Setenv("FIREBASE_PROJECT_ID", "primary-project")
	assert.Equal(t, "primary-project", Load().ProjectID)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Config{
		Port:        "http",
		SDKBackend:  "postgres",
		LogLevel:    "loud",
		SDKLogLevel: "debug",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "SDK_BACKEND")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.NotContains(t, err.Error(), "SDK_LOG_LEVEL")
}
