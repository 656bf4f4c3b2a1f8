package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters. DatabaseDSN and
// SessionSecret are required; the process refuses to start without them.
type Config struct {
	Port          string `env:"CATALOG_PORT" envDefault:"8080"`
	DatabaseDSN   string `env:"CATALOG_DATABASE_DSN,required,notEmpty"`
	SessionSecret string `env:"CATALOG_SESSION_SECRET,required,notEmpty"`
	UploadDir     string `env:"CATALOG_UPLOAD_DIR" envDefault:"./uploads"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
