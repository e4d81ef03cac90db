package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env style files into the process environment.
// Missing files are skipped; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides credentials with ALGOLIA_* variables, accepting the
// NEXT_PUBLIC_ forms too
func ApplyEnv(cfg *Config) {
	cfg.Algolia.AppID = envOrDefault(cfg.Algolia.AppID, "ALGOLIA_APP_ID", "NEXT_PUBLIC_ALGOLIA_APP_ID")
	cfg.Algolia.SearchAPIKey = envOrDefault(cfg.Algolia.SearchAPIKey, "ALGOLIA_SEARCH_API_KEY", "NEXT_PUBLIC_ALGOLIA_SEARCH_API_KEY")
	cfg.Algolia.AdminAPIKey = envOrDefault(cfg.Algolia.AdminAPIKey, "ALGOLIA_WRITE_API_KEY", "ALGOLIA_ADMIN_API_KEY")
}

func envOrDefault(fallback string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return fallback
}
