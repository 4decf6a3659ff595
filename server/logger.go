package server

import (
	"log/slog"
	"os"

	"wav-steganography/config"
)

// NewLogger builds the process logger at the configured level and installs
// it as the slog default.
func NewLogger(cfg *config.ServerConfig) *slog.Logger {
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
