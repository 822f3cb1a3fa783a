package service

import (
	"context"
	"time"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/storage"
)

const MsgNoWeatherData = "No weather data available yet. Set your location in your profile."

// ForecastProvider is what openmeteo.Client implements.
type ForecastProvider interface {
	Forecast(ctx context.Context, lat, lon float64) (*internal.WeatherData, error)
}

// LatestWeather returns the freshest snapshot for the user. With coordinates
// on the profile it fetches a live forecast and stores it; without them, or
// when the provider is down and nothing is cached, it returns a message-only
// snapshot, which is still a 200 to clients.
func LatestWeather(ctx context.Context, weather storage.WeatherRepository, provider ForecastProvider, logger internal.Logger, user *internal.StoredUser) (*internal.WeatherSnapshot, error) {
	loc := user.Location
	if loc == nil || loc.Latitude == nil || loc.Longitude == nil {
		return &internal.WeatherSnapshot{Message: MsgNoWeatherData}, nil
	}

	data, err := provider.Forecast(ctx, *loc.Latitude, *loc.Longitude)
	if err != nil {
		logger.Warnf("weather fetch failed for user %s, falling back to cache: %v", user.ID, err)
		cached, cacheErr := weather.GetLatest(ctx, user.ID)
		if cacheErr == nil && cached != nil {
			return cached, nil
		}
		return &internal.WeatherSnapshot{Message: MsgNoWeatherData}, nil
	}

	now := time.Now()
	snap := &internal.WeatherSnapshot{
		RecordedAt: &now,
		Location:   loc,
		Provider:   "open-meteo",
		Weather:    data,
	}
	if err := weather.SaveSnapshot(ctx, user.ID, snap); err != nil {
		logger.Errorf("failed to store weather snapshot for user %s: %v", user.ID, err)
	}
	return snap, nil
}
