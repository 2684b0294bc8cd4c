package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv clears every variable LoadConfig reads and points the secrets
// file into a temp dir.
func setupEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{envAPIKey, envListen, envLogLevel, envLogFile} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "secrets.toml")
	t.Setenv(envSecretsFile, path)
	return path
}

func writeSecrets(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	setupEnv(t)
	t.Setenv(envAPIKey, "env-key")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, defaultModels, cfg.Models)
	assert.False(t, cfg.WebMode())
}

func TestLoadConfig_SecretsWin(t *testing.T) {
	path := setupEnv(t)
	t.Setenv(envAPIKey, "env-key")
	writeSecrets(t, path, `GOOGLE_API_KEY = "secret-key"`)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, path, cfg.SecretsPath)
}

func TestLoadConfig_EmptySecretFallsBackToEnv(t *testing.T) {
	path := setupEnv(t)
	t.Setenv(envAPIKey, "env-key")
	writeSecrets(t, path, `GOOGLE_API_KEY = ""`)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadConfig_MissingKey(t *testing.T) {
	path := setupEnv(t)
	writeSecrets(t, path, `OTHER_KEY = "x"`)

	_, err := LoadConfig()

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "Google API Key not found")
}

func TestLoadConfig_MalformedSecrets(t *testing.T) {
	path := setupEnv(t)
	t.Setenv(envAPIKey, "env-key")
	writeSecrets(t, path, `GOOGLE_API_KEY = `)

	_, err := LoadConfig()

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "invalid secrets file")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setupEnv(t)
	t.Setenv(envAPIKey, "env-key")
	t.Setenv(envLogLevel, "loud")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_Ambient(t *testing.T) {
	setupEnv(t)
	t.Setenv(envAPIKey, "env-key")
	t.Setenv(envListen, ":8501")
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFile, "funfact.log")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.WebMode())
	assert.Equal(t, ":8501", cfg.ListenAddr)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "funfact.log", cfg.LogFile)
}
