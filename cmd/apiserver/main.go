package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/config"
	"github.com/Znerf/headacheFront/internal/metrics"
	"github.com/Znerf/headacheFront/internal/openmeteo"
	"github.com/Znerf/headacheFront/internal/server"
	"github.com/Znerf/headacheFront/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.DBType == "file" {
		for _, f := range []string{cfg.FileUsers, cfg.FileRecords, cfg.FileWeather} {
			if dir := filepath.Dir(f); dir != "." {
				_ = os.MkdirAll(dir, 0755)
			}
		}
	}

	repos, err := storage.NewRepositories(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer repos.Close()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := server.NewServer(
		logger,
		repos,
		auth.NewTokenManager(cfg.JWTSecret),
		openmeteo.New(cfg.OpenMeteoURL, logger),
		metrics.New(),
	)

	r := server.NewRouter(app)
	logger.Infof("API server running on :%s (storage=%s)", cfg.Port, cfg.DBType)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
