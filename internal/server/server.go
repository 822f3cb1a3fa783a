package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/metrics"
	"github.com/Znerf/headacheFront/internal/service"
	"github.com/Znerf/headacheFront/internal/storage"
)

// Server wires repositories, auth and the weather provider behind the App
// interface the handlers consume.
type Server struct {
	logger  internal.Logger
	repos   *storage.Repositories
	tokens  *auth.TokenManager
	weather service.ForecastProvider
	metrics *metrics.Collector
}

func NewServer(logger internal.Logger, repos *storage.Repositories, tokens *auth.TokenManager, weather service.ForecastProvider, collector *metrics.Collector) *Server {
	return &Server{
		logger:  logger,
		repos:   repos,
		tokens:  tokens,
		weather: weather,
		metrics: collector,
	}
}

func (s *Server) Logger() internal.Logger                { return s.logger }
func (s *Server) UserRepo() storage.UserRepository       { return s.repos.Users }
func (s *Server) RecordRepo() storage.RecordRepository   { return s.repos.Records }
func (s *Server) WeatherRepo() storage.WeatherRepository { return s.repos.Weather }
func (s *Server) Tokens() *auth.TokenManager             { return s.tokens }
func (s *Server) Weather() service.ForecastProvider      { return s.weather }
func (s *Server) Metrics() *metrics.Collector            { return s.metrics }

var _ App = (*Server)(nil)

// NewRouter builds the full route table.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	r.Use(app.Metrics().Middleware())
	r.GET("/metrics", gin.WrapH(app.Metrics().Handler()))

	r.POST("/auth/signup", PostSignUp(app))
	r.POST("/auth/login", PostLogin(app))

	authed := r.Group("/")
	authed.Use(auth.AuthMiddleware(app.Tokens(), app.UserRepo()))
	{
		authed.POST("/auth/logout", PostLogout(app))
		authed.GET("/auth/me", GetMe(app))
		authed.PUT("/auth/profile", PutProfile(app))

		authed.POST("/headache", PostRecord(app))
		authed.GET("/headache", GetRecords(app))
		authed.GET("/headache/by-date", GetRecordByDate(app))
		authed.PUT("/headache/:id", PutRecord(app))
		authed.DELETE("/headache/:id", DeleteRecord(app))

		authed.GET("/weather/latest", GetLatestWeather(app))
	}

	return r
}
