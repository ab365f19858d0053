// Package app resolves process-level configuration: where the local database
// lives, which backend the client talks to, and how verbosely it logs.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL = "http://localhost:5000"

	EnvAPIURL   = "FITCOACH_API_URL"
	EnvDBPath   = "FITCOACH_DB"
	EnvLogLevel = "FITCOACH_LOG_LEVEL"
	EnvLogDev   = "FITCOACH_LOG_DEV"
	EnvLogFile  = "FITCOACH_LOG_FILE"

	appDirName = "fitcoach"
	dbFileName = "fitcoach.db"
)

// Env is the environment-derived part of the configuration. Flags and
// persisted settings are layered on top by the caller.
type Env struct {
	APIURL   string
	DBPath   string
	LogLevel string
	LogDev   bool
	LogFile  string
}

// LoadEnv reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func LoadEnv() Env {
	_ = godotenv.Load()
	return Env{
		APIURL:   getEnv(EnvAPIURL, ""),
		DBPath:   getEnv(EnvDBPath, ""),
		LogLevel: strings.ToLower(getEnv(EnvLogLevel, "")),
		LogDev:   getEnvBool(EnvLogDev, false),
		LogFile:  getEnv(EnvLogFile, ""),
	}
}

// ResolveAPIURL picks the first non-empty candidate in precedence order and
// falls back to DefaultAPIURL.
func ResolveAPIURL(candidates ...string) string {
	for _, c := range candidates {
		if v := strings.TrimSpace(c); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return DefaultAPIURL
}

// ResolveDBPath returns flagPath, then envPath, then the per-user default.
func ResolveDBPath(flagPath, envPath string) (string, error) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(envPath); p != "" {
		return p, nil
	}
	return DefaultDBPath()
}

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
