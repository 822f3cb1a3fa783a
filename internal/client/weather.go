package client

import (
	"context"

	"github.com/Znerf/headacheFront/internal"
)

// GetLatestWeather fetches the most recent snapshot for the user's configured
// location. A snapshot whose Message is set means "no data available yet" and
// is valid data, not a failure.
func (c *Client) GetLatestWeather(ctx context.Context) (*internal.WeatherSnapshot, error) {
	var snap internal.WeatherSnapshot
	if err := c.get(ctx, "/weather/latest", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
