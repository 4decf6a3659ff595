package main

import (
	"log/slog"
	"os"

	"wav-steganography/config"
	"wav-steganography/server"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		slog.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.NewServerConfigFromEnv()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := server.NewLogger(cfg)

	if err := server.Run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
