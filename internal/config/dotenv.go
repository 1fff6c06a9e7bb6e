package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error. Variables already set in the environment
// win over the file.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadConfig loads configuration from a .env file (optional) and environment
// variables.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, err
	}
	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return envCfg.ToAppConfig(), nil
}
