package infra

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// Initialize loads a .env file into the process environment when present.
func Initialize() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found; using environment variables")
	}
}
