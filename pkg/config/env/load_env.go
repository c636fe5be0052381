package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads environment variables from a dotenv file. The file
// location comes from ENV_PATH when set, otherwise defaultPath. A
// missing file is fatal for local development, where the dotenv file is
// the only configuration source, and ignored everywhere else.
func LoadDotEnv(appEnv string, defaultPath string) error {
	path := os.Getenv("ENV_PATH")
	if path == "" {
		path = defaultPath
	}

	if err := godotenv.Load(path); err != nil {
		if appEnv == "local" || appEnv == "" {
			slog.Error("Failed to load env file", "path", path, "error", err)
			return err
		}
		slog.Debug("No env file, relying on process environment", "path", path)
	}
	return nil
}
