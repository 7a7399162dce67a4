package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type envConfig struct {
	APP_PORT        string
	APP_PASSWORD    string
	TEMPLATE_PATH   string
	LAYOUT_PATH     string
	OUTPUT_FILENAME string
	LOG_FILE_PATH   string
	LOG_LEVEL       string
	MAX_UPLOAD_MB   int
	SESSION_SECRET  string
}

// DefaultEnvConfig is populated by LoadEnvConfig and read by the rest of the app.
var DefaultEnvConfig = defaults()

func defaults() envConfig {
	return envConfig{
		APP_PORT:        "8080",
		TEMPLATE_PATH:   "SampleOfficeNote.docx",
		OUTPUT_FILENAME: "OfficeNote.docx",
		LOG_LEVEL:       "info",
		MAX_UPLOAD_MB:   10,
	}
}

// LoadEnvConfig reads .env (when present) and the process environment into DefaultEnvConfig.
func LoadEnvConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	cfg.APP_PORT = getEnv("APP_PORT", cfg.APP_PORT)
	// An unset password leaves the gate open: "" always matches.
	cfg.APP_PASSWORD = os.Getenv("APP_PASSWORD")
	cfg.TEMPLATE_PATH = getEnv("TEMPLATE_PATH", cfg.TEMPLATE_PATH)
	cfg.LAYOUT_PATH = os.Getenv("LAYOUT_PATH")
	cfg.OUTPUT_FILENAME = getEnv("OUTPUT_FILENAME", cfg.OUTPUT_FILENAME)
	cfg.LOG_FILE_PATH = os.Getenv("LOG_FILE_PATH")
	cfg.LOG_LEVEL = getEnv("LOG_LEVEL", cfg.LOG_LEVEL)
	cfg.SESSION_SECRET = os.Getenv("SESSION_SECRET")

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid MAX_UPLOAD_MB %q: must be a positive integer", v)
		}
		cfg.MAX_UPLOAD_MB = n
	}

	DefaultEnvConfig = cfg
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
