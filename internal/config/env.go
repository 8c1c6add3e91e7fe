package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order. Variables already set in the process
// environment are never overwritten.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() error {
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
		slog.Debug("Loaded environment file", slog.String("path", name))
	}
	return nil
}
