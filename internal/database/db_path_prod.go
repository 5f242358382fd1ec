//go:build prod

package database

import (
	"log"
	"os"
	"path/filepath"
)

// GetDefaultDBPath returns the database path under the user's config directory.
func GetDefaultDBPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: Failed to get user config dir: %v. Using fallback.", err)
		return "bhindi.db"
	}

	appDir := filepath.Join(configDir, "bhindi")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		log.Printf("Warning: Failed to create app config dir: %v. Using fallback.", err)
		return "bhindi.db"
	}

	return filepath.Join(appDir, "bhindi.db")
}

func IsDevelopment() bool {
	return false
}
