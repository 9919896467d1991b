// Package config loads runtime configuration from the environment, with a
// .env file picked up in development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the knobs shared by the CLI, the stdio server and the HTTP
// server. The core pipeline itself is configuration-free.
type Config struct {
	Port     string // HTTP API listen port
	WorkDir  string // where cloned/extracted repositories land
	DataDir  string // where reports and the history index live
	Semantic bool   // semantic template matching on/off
}

// Load reads configuration, preferring real environment variables over a
// local .env file. Missing values fall back to defaults; Load never fails.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     getEnv("REPOPROBE_PORT", "8080"),
		WorkDir:  getEnv("REPOPROBE_WORK_DIR", "working_repos"),
		DataDir:  getEnv("REPOPROBE_DATA_DIR", ".repoprobe"),
		Semantic: getEnvBool("REPOPROBE_SEMANTIC", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "1", "true", "on", "yes":
		return true
	case "0", "false", "off", "no":
		return false
	default:
		return fallback
	}
}
