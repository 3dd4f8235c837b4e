package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that provide defaults for command-line flags.
const (
	EnvDB      = "MAZECHASE_DB"
	EnvFPS     = "MAZECHASE_FPS"
	EnvSSHAddr = "MAZECHASE_SSH_ADDR"
	EnvConfig  = "MAZECHASE_CONFIG"
)

// LoadEnv loads variables from the given .env files, or ./.env when none
// are given. Variables already set in the process are not overridden.
// A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// EnvOr retrieves the value of an environment variable or returns a default value if not set.
func EnvOr(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// EnvIntOr retrieves an integer environment variable. Unset or malformed
// values yield the default.
func EnvIntOr(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
