package utils

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/kelsos/meili-go/internal/logger"
)

// LoadEnvironment loads environment variables from a .env file, first from
// the current directory and then from the directory of the executable.
// Variables already set in the environment win over file values.
func LoadEnvironment() {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file from current directory")
	}

	execPath, err := os.Executable()
	if err != nil {
		logger.Debug("Could not determine executable path: %v", err)
		return
	}

	envPath := filepath.Join(filepath.Dir(execPath), ".env")
	if err := godotenv.Load(envPath); err == nil {
		logger.Debug("Loaded .env file from %s", envPath)
	}
}
