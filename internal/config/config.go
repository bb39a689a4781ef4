package config

import (
	"os"
)

type Config struct {
	ConfigsDir string
	RunsDBPath string
	LogLevel   string
	BindAddr   string
}

func Load() *Config {
	return &Config{
		ConfigsDir: getEnv("SYNTHGEN_CONFIGS_DIR", "./configs"),
		RunsDBPath: getEnv("SYNTHGEN_RUNS_DB", "./synthgen-runs.sqlite"),
		LogLevel:   getEnv("SYNTHGEN_LOG_LEVEL", "info"),
		BindAddr:   getEnv("SYNTHGEN_BIND_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
