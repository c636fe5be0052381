package server

import (
	"fmt"
	"os"
	"strconv"

	"github.com/agriscience/journal-api/pkg/stringsutil"
)

const defaultPort = "8080"

type Config struct {
	Port        string
	CorsOrigins []string
}

func LoadConfig() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return nil, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", port)
	}

	origins := stringsutil.SplitNonEmpty(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:        port,
		CorsOrigins: origins,
	}, nil
}
