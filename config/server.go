// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type ServerConfig struct {
	Port           string   `env:"PORT, default=8080"`
	AllowedOrigins []string `env:"STEGO_ALLOWED_ORIGINS, default=http://localhost:3000"`
	MaxUploadMB    int64    `env:"STEGO_MAX_UPLOAD_MB, default=32"`
	LogLevel       string   `env:"STEGO_LOG_LEVEL, default=info"`
	GinMode        string   `env:"GIN_MODE, default=release"`
}

// LoadEnv loads a .env file from the working directory if there is one.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func NewServerConfigFromEnv() (*ServerConfig, error) {
	return NewServerConfig(context.Background(), envconfig.OsLookuper())
}

// NewServerConfig resolves the configuration through lookuper, which lets
// tests supply a map instead of the process environment.
func NewServerConfig(ctx context.Context, lookuper envconfig.Lookuper) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ServerConfig) Validate() error {
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("STEGO_MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("GIN_MODE must be one of debug, release or test, got %q", c.GinMode)
	}
	return nil
}

func (c *ServerConfig) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

func (c *ServerConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("STEGO_LOG_LEVEL: %w", err)
	}
	return level, nil
}
