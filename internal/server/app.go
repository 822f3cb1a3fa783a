package server

import (
	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/metrics"
	"github.com/Znerf/headacheFront/internal/service"
	"github.com/Znerf/headacheFront/internal/storage"
)

type App interface {
	Logger() internal.Logger
	UserRepo() storage.UserRepository
	RecordRepo() storage.RecordRepository
	WeatherRepo() storage.WeatherRepository
	Tokens() *auth.TokenManager
	Weather() service.ForecastProvider
	Metrics() *metrics.Collector
}
