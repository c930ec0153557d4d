package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from the first .env file found in the current or
// parent directory. Variables already set in the environment win. It returns
// the file loaded, or "" when none exists.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return "", fmt.Errorf("error loading %s: %w", envFile, err)
		}
		return envFile, nil
	}
	return "", nil
}
