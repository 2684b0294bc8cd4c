package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

const (
	// Credential key, shared by the secrets file and the environment
	envAPIKey = "GOOGLE_API_KEY"

	// Ambient settings
	envSecretsFile = "FUNFACT_SECRETS_FILE"
	envListen      = "FUNFACT_LISTEN"
	envLogLevel    = "FUNFACT_LOG_LEVEL"
	envLogFile     = "FUNFACT_LOG_FILE"

	defaultSecretsFile = "secrets.toml"
)

// ErrMissingAPIKey is returned when neither the secrets file nor the
// environment provides a credential. Its text is shown to the user as-is.
var ErrMissingAPIKey = errors.New("Google API Key not found. Please set it in secrets.toml or as an environment variable (e.g., GOOGLE_API_KEY).")

// Config holds everything resolved at startup. It is built once and
// never modified afterwards.
type Config struct {
	APIKey      string
	SecretsPath string
	ListenAddr  string
	LogLevel    logrus.Level
	LogFile     string
	Models      []string
}

// WebMode reports whether the single-page web server should be started
// instead of the terminal UI.
func (c Config) WebMode() bool {
	return c.ListenAddr != ""
}

// secretsFile mirrors the layout of secrets.toml.
type secretsFile struct {
	GoogleAPIKey string `toml:"GOOGLE_API_KEY"`
}

// LoadConfig resolves the configuration from the secrets file and the
// process environment.
func LoadConfig() (Config, error) {
	cfg := Config{
		SecretsPath: os.Getenv(envSecretsFile),
		ListenAddr:  os.Getenv(envListen),
		LogFile:     os.Getenv(envLogFile),
		LogLevel:    logrus.InfoLevel,
		Models:      append([]string(nil), defaultModels...),
	}
	if cfg.SecretsPath == "" {
		cfg.SecretsPath = defaultSecretsFile
	}

	if raw := os.Getenv(envLogLevel); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", envLogLevel, err)
		}
		cfg.LogLevel = level
	}

	apiKey, err := resolveAPIKey(cfg.SecretsPath)
	if err != nil {
		return Config{}, err
	}
	cfg.APIKey = apiKey

	return cfg, nil
}

// resolveAPIKey prefers a non-empty value from the secrets file and falls
// back to the environment variable.
func resolveAPIKey(secretsPath string) (string, error) {
	secrets, err := readSecrets(secretsPath)
	if err != nil {
		return "", err
	}
	if secrets.GoogleAPIKey != "" {
		return secrets.GoogleAPIKey, nil
	}
	if key := os.Getenv(envAPIKey); key != "" {
		return key, nil
	}
	return "", ErrMissingAPIKey
}

// readSecrets parses the secrets file. A file that does not exist yields
// empty secrets.
func readSecrets(path string) (secretsFile, error) {
	var secrets secretsFile

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return secrets, nil
	}
	if err != nil {
		return secrets, fmt.Errorf("failed to read secrets file: %w", err)
	}

	if err := toml.Unmarshal(raw, &secrets); err != nil {
		return secrets, fmt.Errorf("invalid secrets file %s: %w", path, err)
	}
	return secrets, nil
}
