package utils

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

var rootMarkers = []string{"go.mod", "wails.json"}

// FindProjectRoot walks up from the working directory to the first
// directory holding a root marker.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		for _, m := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// LoadEnv loads .env and then .env.local from the project root. Variables
// already set in the process win. A missing .env is reported as
// os.ErrNotExist; a missing .env.local is ignored.
func LoadEnv() error {
	root, err := FindProjectRoot()
	if err != nil {
		return err
	}
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil {
		return err
	}
	if err := godotenv.Load(filepath.Join(root, ".env.local")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
