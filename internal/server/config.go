package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the HTTP listener. Values are read from the environment at
// startup.
type Config struct {
	Addr              string        `env:"FURNISH_ADDR"                envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"FURNISH_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"FURNISH_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
	MaxBodyBytes      int64         `env:"FURNISH_MAX_BODY_BYTES"      envDefault:"1048576"`
}

// LoadConfigFromEnv parses Config from environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
