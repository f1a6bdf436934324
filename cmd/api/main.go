package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bookcatalog-backend/internal/config"
	"bookcatalog-backend/pkg/logger"
)

func main() {
	// Load từ .env file (development/local)
	// Production dùng system environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	if envErr != nil {
		logger.Info("⚠️  No .env file found, using system environment variables", nil)
	}

	// development: debug logs, còn lại: release mode
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve(cfg)
}
