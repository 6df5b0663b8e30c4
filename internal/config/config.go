package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	APITimeout time.Duration
	TokenFile  string
}

// Load reads configuration from the environment, merging a .env file in the
// working directory when one exists.
func Load() Config {
	_ = godotenv.Load()

	timeout, err := strconv.Atoi(get("API_TIMEOUT", "10"))
	if err != nil || timeout <= 0 {
		timeout = 10
	}

	return Config{
		APIBaseURL: get("API_BASE_URL", "http://localhost:3333"),
		APITimeout: time.Duration(timeout) * time.Second,
		TokenFile:  get("TOKEN_FILE", defaultTokenFile()),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".marketspace-token"
	}
	return filepath.Join(home, ".marketspace", "token")
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
