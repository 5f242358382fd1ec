//go:build !prod

package database

// GetDefaultDBPath keeps the dev database next to the working directory.
func GetDefaultDBPath() string {
	return "bhindi.db"
}

func IsDevelopment() bool {
	return true
}
