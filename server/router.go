// Package server wires the HTTP routes for the steganography API.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"wav-steganography/config"
	"wav-steganography/handlers"
)

func NewRouter(cfg *config.ServerConfig, logger *slog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"X-Stego-PSNR", "X-Stego-Bits", "X-Stego-Capacity", "X-Stego-Message", "Content-Disposition"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	stegoHandler := handlers.NewStegoHandler(cfg.MaxUploadBytes(), logger)

	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/encode", stegoHandler.EncodeMessage)
			stego.POST("/decode", stegoHandler.DecodeMessage)
			stego.POST("/capacity", stegoHandler.Capacity)
		}
	}

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

// Run starts the API and blocks until the server stops.
func Run(cfg *config.ServerConfig, logger *slog.Logger) error {
	router := NewRouter(cfg, logger)

	logger.Info("server starting", "addr", cfg.Addr())
	logger.Info("API endpoints",
		"encode", "POST /api/v1/stego/encode",
		"decode", "POST /api/v1/stego/decode",
		"capacity", "POST /api/v1/stego/capacity",
		"health", "GET /api/v1/health",
	)

	return router.Run(cfg.Addr())
}
